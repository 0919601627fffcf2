// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/visibility"
)

// # Service Definition

// Service orchestrates follow graph mutations and lookups.
type Service struct {
	repository Repository
	directory  UserDirectory
}

// NewService creates a new follow [Service].
func NewService(repository Repository, directory UserDirectory) *Service {
	return &Service{repository: repository, directory: directory}
}

// # Service Operations

/*
Follow creates a directed edge from the caller to the named user.

Description: Idempotent. Following someone already followed succeeds without
change. Following yourself is rejected before any storage access.

Parameters:
  - context: context.Context
  - followerID: string (The authenticated caller)
  - targetUsername: string

Returns:
  - error: apperr.NotFound if the target does not exist,
    apperr.Unprocessable on self-follow, or storage failures
*/
func (service *Service) Follow(context context.Context, followerID, targetUsername string) error {
	target, err := service.directory.FindByUsername(context, targetUsername)
	if err != nil {
		return err
	}

	if target.ID == followerID {
		return apperr.Unprocessable("You cannot follow yourself")
	}

	return service.repository.Upsert(context, followerID, target.ID)
}

/*
Unfollow removes the directed edge from the caller to the named user.

Description: Idempotent. Unfollowing someone never followed succeeds with no
mutation. Only an unknown username is an error.

Parameters:
  - context: context.Context
  - followerID: string
  - targetUsername: string

Returns:
  - error: apperr.NotFound if the target does not exist, or storage failures
*/
func (service *Service) Unfollow(context context.Context, followerID, targetUsername string) error {
	target, err := service.directory.FindByUsername(context, targetUsername)
	if err != nil {
		return err
	}

	return service.repository.Delete(context, followerID, target.ID)
}

/*
Toggle flips the follow edge from the caller to the named user.

Description: A single endpoint for follow buttons. If the edge exists it is
removed, otherwise it is created. Self-follow is rejected the same way
Follow rejects it.

Parameters:
  - context: context.Context
  - followerID: string
  - targetUsername: string

Returns:
  - bool: True if the caller follows the target after the flip
  - error: apperr.NotFound if the target does not exist,
    apperr.Unprocessable on self-follow, or storage failures
*/
func (service *Service) Toggle(context context.Context, followerID, targetUsername string) (bool, error) {
	target, err := service.directory.FindByUsername(context, targetUsername)
	if err != nil {
		return false, err
	}

	if target.ID == followerID {
		return false, apperr.Unprocessable("You cannot follow yourself")
	}

	exists, err := service.repository.Exists(context, followerID, target.ID)
	if err != nil {
		return false, err
	}

	if exists {
		return false, service.repository.Delete(context, followerID, target.ID)
	}

	return true, service.repository.Upsert(context, followerID, target.ID)
}

/*
IsFollowing reports whether the caller follows the named user.

Parameters:
  - context: context.Context
  - followerID: string
  - targetUsername: string

Returns:
  - bool: True if the edge exists
  - error: apperr.NotFound if the target does not exist, or storage failures
*/
func (service *Service) IsFollowing(context context.Context, followerID, targetUsername string) (bool, error) {
	target, err := service.directory.FindByUsername(context, targetUsername)
	if err != nil {
		return false, err
	}

	return service.repository.Exists(context, followerID, target.ID)
}

/*
Following lists the users the caller follows.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Person: Followed users ordered by username
  - error: Storage failures
*/
func (service *Service) Following(context context.Context, userID string) ([]Person, error) {
	return service.repository.ListFollowing(context, userID)
}

/*
Followers lists the users following the caller.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Person: Followers ordered by username
  - error: Storage failures
*/
func (service *Service) Followers(context context.Context, userID string) ([]Person, error) {
	return service.repository.ListFollowers(context, userID)
}

/*
Scope resolves the viewer's visibility scope from the follow graph.

Description: The scope is computed once per request and handed to catalog
queries so each of them applies the same owner-or-shared-by-followed rule.

Parameters:
  - context: context.Context
  - viewerID: string

Returns:
  - visibility.Scope: The viewer plus their followed owner set
  - error: Storage failures
*/
func (service *Service) Scope(context context.Context, viewerID string) (visibility.Scope, error) {
	followedIDs, err := service.repository.FollowedIDs(context, viewerID)
	if err != nil {
		return visibility.Scope{}, err
	}

	return visibility.NewScope(viewerID, visibility.Dedupe(followedIDs)), nil
}

/*
SearchPeople finds usernames matching a case-insensitive substring.

Parameters:
  - context: context.Context
  - query: string (Empty matches everyone)
  - limit: int

Returns:
  - []string: Matching usernames ordered alphabetically
  - error: Storage failures
*/
func (service *Service) SearchPeople(context context.Context, query string, limit int) ([]string, error) {
	return service.directory.SearchUsernames(context, query, limit)
}
