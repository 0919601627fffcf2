// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package activity maintains the append-only social event log.

Every write path that followers care about (progress updates, posted reviews,
posted comments) appends one immutable row here. The feed is a pure
projection: the newest rows whose actor the viewer follows.

# Architecture

  - Entities: Activity (immutable after creation).
  - Write side: Recorder, invoked by the catalog services inside their own
    mutation paths.
  - Read side: Feed, keyed on the actor's identity relative to the viewer's
    follow set. The feed does not consult the referenced record's shared
    flag; an activity is visible whenever its actor is followed.
*/
package activity

import (
	"context"
	"time"
)

// # Event Kinds

const (
	// KindProgressUpdate marks a reading progress save.
	KindProgressUpdate = "progress-update"

	// KindReviewPosted marks a newly created review.
	KindReviewPosted = "review-posted"

	// KindCommentPosted marks a comment added to a review.
	KindCommentPosted = "comment-posted"
)

// # Domain Entities

// Activity is one immutable entry in the social event log.
//
// Exactly one of ReviewID, CommentID, ReadingProgressID is set, matching Kind.
type Activity struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	BookID            string    `json:"book_id"`
	ReviewID          *string   `json:"review_id,omitempty"`
	CommentID         *string   `json:"comment_id,omitempty"`
	ReadingProgressID *string   `json:"reading_progress_id,omitempty"`
	Kind              string    `json:"kind"`
	Text              string    `json:"text"`
	Backlink          string    `json:"backlink"`
	CreatedAt         time.Time `json:"created_at"`
}

// # Repository Contracts

// Repository defines the persistence contract for the event log.
type Repository interface {
	/*
		Insert appends one activity row.

		Parameters:
		  - context: context.Context
		  - entry: *Activity (fully hydrated, including ID and CreatedAt)

		Returns:
		  - error: Storage failures
	*/
	Insert(context context.Context, entry *Activity) error

	/*
		ListByActors returns the newest activity rows whose actor is in the
		given set, ordered newest-first.

		Parameters:
		  - context: context.Context
		  - actorIDs: []string (Empty set yields an empty result)
		  - limit: int

		Returns:
		  - []Activity: At most limit rows
		  - error: Storage failures
	*/
	ListByActors(context context.Context, actorIDs []string, limit int) ([]Activity, error)
}

// FollowSource resolves the set of users an actor follows. Satisfied by the
// follow graph repository.
type FollowSource interface {
	FollowedIDs(context context.Context, userID string) ([]string, error)
}
