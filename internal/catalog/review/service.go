// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/social/activity"
	"github.com/taibuivan/tsundoku/internal/users/settings"
	"github.com/taibuivan/tsundoku/internal/visibility"
	"github.com/taibuivan/tsundoku/pkg/uuidv7"
)

// ScopeSource builds the viewer's visibility scope. Satisfied by the follow
// service.
type ScopeSource interface {
	Scope(context context.Context, viewerID string) (visibility.Scope, error)
}

// SettingsSource resolves per-user sharing defaults. Satisfied by the
// settings service.
type SettingsSource interface {
	Get(context context.Context, userID string) (*settings.Settings, error)
}

// Recorder appends entries to the activity feed. Satisfied by the activity
// service.
type Recorder interface {
	Record(context context.Context, input activity.RecordInput)
}

// Service implements review and comment use cases.
type Service struct {
	repository Repository
	comments   CommentRepository
	books      BookSource
	scopes     ScopeSource
	defaults   SettingsSource
	recorder   Recorder
}

// NewService creates a review service.
func NewService(
	repository Repository,
	comments CommentRepository,
	books BookSource,
	scopes ScopeSource,
	defaults SettingsSource,
	recorder Recorder,
) *Service {
	return &Service{
		repository: repository,
		comments:   comments,
		books:      books,
		scopes:     scopes,
		defaults:   defaults,
		recorder:   recorder,
	}
}

// PostInput carries the fields for writing a review.
type PostInput struct {
	BookID string
	Text   string
	Shared *bool
}

// UpdateInput carries the mutable review fields.
type UpdateInput struct {
	Text   string
	Shared *bool
}

/*
Post writes the review for one of the actor's books, replacing any earlier
review of the same book.

Description: Only the book's owner can review it. When the input leaves the
shared flag unset, an existing review keeps its flag and a new review falls
back to the account's share-all-reviews default. Posting also lands an entry
in the activity feed.

Parameters:
  - context: context.Context
  - actorID: string
  - input: PostInput

Returns:
  - *Review: The stored review, hydrated
  - error: apperr.NotFound when the book is missing or foreign
*/
func (s *Service) Post(context context.Context, actorID string, input PostInput) (*Review, error) {
	book, err := s.books.Info(context, input.BookID)
	if err != nil {
		return nil, err
	}
	if book.OwnerID != actorID {
		return nil, apperr.NotFound("Book")
	}

	shared, err := s.resolveShared(context, actorID, input.BookID, input.Shared)
	if err != nil {
		return nil, err
	}

	record := &Review{
		ID:     uuidv7.New(),
		BookID: input.BookID,
		Text:   input.Text,
		Shared: shared,
	}
	if err := s.repository.Upsert(context, record); err != nil {
		return nil, err
	}

	stored, err := s.repository.FindByID(context, record.ID)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(context, activity.RecordInput{
		ActorID:  actorID,
		BookID:   stored.BookID,
		ReviewID: &stored.ID,
		Kind:     activity.KindReviewPosted,
		Text:     fmt.Sprintf("%s posted a review of %s", stored.OwnerUsername, stored.BookTitle),
		Backlink: fmt.Sprintf("/user/%s", stored.OwnerUsername),
	})
	return stored, nil
}

/*
Get retrieves one review with its comment thread.

Description: The owner always sees their review. Anyone else sees it only
when shared; hidden reviews read as missing.

Parameters:
  - context: context.Context
  - viewerID: string
  - id: string

Returns:
  - *Review: Hydrated review with comments attached
  - error: apperr.NotFound when missing or not visible
*/
func (s *Service) Get(context context.Context, viewerID, id string) (*Review, error) {
	record, err := s.visibleReview(context, viewerID, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByReviewID(context, record.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []Comment{}
	}
	record.Comments = comments
	return record, nil
}

/*
Update rewrites an owned review.

Parameters:
  - context: context.Context
  - actorID: string
  - id: string
  - input: UpdateInput

Returns:
  - *Review: The updated review
  - error: apperr.NotFound when missing or foreign
*/
func (s *Service) Update(context context.Context, actorID, id string, input UpdateInput) (*Review, error) {
	existing, err := s.findOwned(context, actorID, id)
	if err != nil {
		return nil, err
	}

	existing.Text = input.Text
	if input.Shared != nil {
		existing.Shared = *input.Shared
	}
	if err := s.repository.Upsert(context, existing); err != nil {
		return nil, err
	}
	return s.repository.FindByID(context, existing.ID)
}

/*
Delete removes an owned review together with its comments.

Parameters:
  - context: context.Context
  - actorID: string
  - id: string

Returns:
  - error: apperr.NotFound when missing or foreign
*/
func (s *Service) Delete(context context.Context, actorID, id string) error {
	record, err := s.findOwned(context, actorID, id)
	if err != nil {
		return err
	}
	return s.repository.Delete(context, record.ID)
}

/*
List returns the reviews visible to the viewer.

Description: Without a username filter the result unions the viewer's own
reviews with shared reviews of followed users. With a filter the follow
graph is bypassed and the named user's reviews come back, reduced to shared
ones unless the viewer is that user.

Parameters:
  - context: context.Context
  - viewerID: string
  - username: string (empty for the feed-style listing)

Returns:
  - []Review: Hydrated reviews, newest-first
  - error: Storage failures
*/
func (s *Service) List(context context.Context, viewerID, username string) ([]Review, error) {
	var records []Review
	var err error

	if username != "" {
		records, err = s.repository.ListByOwnerUsername(context, username, viewerID)
	} else {
		var scope visibility.Scope
		scope, err = s.scopes.Scope(context, viewerID)
		if err != nil {
			return nil, err
		}
		records, err = s.repository.ListVisible(context, viewerID, scope.Followed())
	}
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Review{}
	}
	return records, nil
}

/*
Comments returns the thread under a review.

Description: Comments carry no visibility of their own. The viewer sees the
whole thread exactly when the parent review is visible.

Parameters:
  - context: context.Context
  - viewerID: string
  - reviewID: string

Returns:
  - []Comment: Oldest-first
  - error: apperr.NotFound when the review is missing or hidden
*/
func (s *Service) Comments(context context.Context, viewerID, reviewID string) ([]Comment, error) {
	if _, err := s.visibleReview(context, viewerID, reviewID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByReviewID(context, reviewID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []Comment{}
	}
	return comments, nil
}

/*
AddComment appends a comment to a visible review.

Parameters:
  - context: context.Context
  - actorID: string
  - reviewID: string
  - text: string

Returns:
  - *Comment: The stored comment with author hydrated
  - error: apperr.NotFound when the review is missing or hidden
*/
func (s *Service) AddComment(context context.Context, actorID, reviewID, text string) (*Comment, error) {
	record, err := s.visibleReview(context, actorID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuidv7.New(),
		ReviewID: record.ID,
		UserID:   &actorID,
		Text:     text,
	}
	if err := s.comments.Create(context, comment); err != nil {
		return nil, err
	}

	stored, err := s.comments.FindCommentByID(context, comment.ID)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(context, activity.RecordInput{
		ActorID:   actorID,
		BookID:    record.BookID,
		ReviewID:  &record.ID,
		CommentID: &stored.ID,
		Kind:      activity.KindCommentPosted,
		Text:      fmt.Sprintf("%s commented on a review of %s", stored.AuthorUsername, record.BookTitle),
		Backlink:  fmt.Sprintf("/user/%s", record.OwnerUsername),
	})
	return stored, nil
}

/*
DeleteComment removes a comment from a review's thread.

Description: The comment's author and the review's owner can delete it.
Other viewers of the thread cannot.

Parameters:
  - context: context.Context
  - actorID: string
  - reviewID: string
  - commentID: string

Returns:
  - error: apperr.NotFound when hidden or missing, apperr.Forbidden when
    visible but not deletable by the actor
*/
func (s *Service) DeleteComment(context context.Context, actorID, reviewID, commentID string) error {
	record, err := s.visibleReview(context, actorID, reviewID)
	if err != nil {
		return err
	}

	comment, err := s.comments.FindCommentByID(context, commentID)
	if err != nil {
		return err
	}
	if comment.ReviewID != record.ID {
		return apperr.NotFound("Comment")
	}

	isAuthor := comment.UserID != nil && *comment.UserID == actorID
	if !isAuthor && record.OwnerID != actorID {
		return apperr.Forbidden("You cannot delete this comment")
	}
	return s.comments.DeleteComment(context, comment.ID)
}

// visibleReview fetches a review and applies the owner-or-shared rule.
// Hidden reviews surface as not found so their existence never leaks.
func (s *Service) visibleReview(context context.Context, viewerID, id string) (*Review, error) {
	record, err := s.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != viewerID && !record.Shared {
		return nil, apperr.NotFound("Review")
	}
	return record, nil
}

func (s *Service) findOwned(context context.Context, actorID, id string) (*Review, error) {
	record, err := s.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != actorID {
		return nil, apperr.NotFound("Review")
	}
	return record, nil
}

// resolveShared picks the shared flag for a write: explicit input first,
// then the existing review's flag, then the account default.
func (s *Service) resolveShared(context context.Context, actorID, bookID string, explicit *bool) (bool, error) {
	if explicit != nil {
		return *explicit, nil
	}

	existing, err := s.repository.FindByBookID(context, bookID)
	if err == nil {
		return existing.Shared, nil
	}
	if appErr := apperr.As(err); appErr == nil || appErr.HTTPStatus != http.StatusNotFound {
		return false, err
	}

	preferences, err := s.defaults.Get(context, actorID)
	if err != nil {
		return false, err
	}
	return preferences.ShareAllReviews, nil
}
