// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package follow manages the directed follow graph between readers.

Following is asymmetric: "A follows B" grants A access to B's shared records
and says nothing about the reverse direction. Edges are stored one row per
(follower, followed) pair, so following is naturally idempotent and a user
can never hold two edges to the same target.

# Architecture

  - Entities: Edge (graph row), Person (directory DTO for listings).
  - Storage: Single table with a composite primary key, written via upsert
    so concurrent first-follow requests collapse into one row.
  - Directory: Username resolution is delegated to the identity store.
*/
package follow

import (
	"context"
	"time"

	"github.com/taibuivan/tsundoku/internal/users/auth"
)

// # Domain Entities

// Edge is a single directed follow relationship.
type Edge struct {
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Person is the directory view of a user exposed in follower listings and
// people search. It carries no credentials or private profile data.
type Person struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// # Repository Contracts

// Repository defines the persistence contract for the follow graph.
type Repository interface {
	/*
		Upsert adds a follow edge if it does not already exist.

		Description: Must be atomic. Two concurrent requests to create the
		same edge result in exactly one row and neither request fails.

		Parameters:
		  - context: context.Context
		  - followerID: string
		  - followedID: string

		Returns:
		  - error: Storage failures
	*/
	Upsert(context context.Context, followerID, followedID string) error

	/*
		Delete removes a follow edge. Removing an absent edge is a no-op.

		Parameters:
		  - context: context.Context
		  - followerID: string
		  - followedID: string

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, followerID, followedID string) error

	/*
		Exists reports whether followerID currently follows followedID.

		Parameters:
		  - context: context.Context
		  - followerID: string
		  - followedID: string

		Returns:
		  - bool: True if the edge exists
		  - error: Storage failures
	*/
	Exists(context context.Context, followerID, followedID string) (bool, error)

	/*
		FollowedIDs returns the IDs of every user that userID follows.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []string: Followed user IDs, possibly empty
		  - error: Storage failures
	*/
	FollowedIDs(context context.Context, userID string) ([]string, error)

	/*
		ListFollowing returns directory entries for every user that userID follows.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []Person: Followed users ordered by username
		  - error: Storage failures
	*/
	ListFollowing(context context.Context, userID string) ([]Person, error)

	/*
		ListFollowers returns directory entries for every user following userID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []Person: Followers ordered by username
		  - error: Storage failures
	*/
	ListFollowers(context context.Context, userID string) ([]Person, error)
}

// UserDirectory resolves usernames to identities. Satisfied by the identity
// store from the auth package.
type UserDirectory interface {
	FindByUsername(context context.Context, username string) (*auth.User, error)
	SearchUsernames(context context.Context, query string, limit int) ([]string, error)
}
