// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/tsundoku/internal/platform/constants"
	"github.com/taibuivan/tsundoku/pkg/uuidv7"
)

// # Service Definition

// Service records events and serves the social feed.
type Service struct {
	repository   Repository
	followSource FollowSource
	logger       *slog.Logger
}

// NewService creates a new activity [Service].
func NewService(repository Repository, followSource FollowSource, logger *slog.Logger) *Service {
	return &Service{repository: repository, followSource: followSource, logger: logger}
}

// RecordInput describes one event to append to the log.
//
// Exactly one of ReviewID, CommentID, ReadingProgressID should be set,
// matching Kind.
type RecordInput struct {
	ActorID           string
	BookID            string
	Kind              string
	ReviewID          *string
	CommentID         *string
	ReadingProgressID *string
	Text              string
	Backlink          string
}

// # Service Operations

/*
Record appends one immutable event row.

Description: Called by catalog write paths after their own mutation commits.
A failed append is logged and swallowed so a feed hiccup never rolls back or
fails the user's primary action.

Parameters:
  - context: context.Context
  - input: RecordInput
*/
func (service *Service) Record(context context.Context, input RecordInput) {
	entry := &Activity{
		ID:                uuidv7.New(),
		UserID:            input.ActorID,
		BookID:            input.BookID,
		ReviewID:          input.ReviewID,
		CommentID:         input.CommentID,
		ReadingProgressID: input.ReadingProgressID,
		Kind:              input.Kind,
		Text:              input.Text,
		Backlink:          input.Backlink,
		CreatedAt:         time.Now(),
	}

	if err := service.repository.Insert(context, entry); err != nil {
		service.logger.Error("activity_record_failed",
			slog.String("actor_id", input.ActorID),
			slog.String("kind", input.Kind),
			slog.String("error", err.Error()),
		)
	}
}

/*
Feed returns the newest events from the users the viewer follows.

Description: Visibility is keyed on the actor alone. If the viewer follows
the actor, the event shows, whether or not the referenced review or progress
record is itself shared.

Parameters:
  - context: context.Context
  - viewerID: string
  - limit: int (Non-positive falls back to the default feed size)

Returns:
  - []Activity: Newest-first, at most limit entries
  - error: Storage failures
*/
func (service *Service) Feed(context context.Context, viewerID string, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = constants.FeedDefaultLimit
	}

	actorIDs, err := service.followSource.FollowedIDs(context, viewerID)
	if err != nil {
		return nil, err
	}

	if len(actorIDs) == 0 {
		return []Activity{}, nil
	}

	entries, err := service.repository.ListByActors(context, actorIDs, limit)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []Activity{}
	}

	return entries, nil
}
