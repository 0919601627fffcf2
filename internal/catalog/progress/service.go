// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/social/activity"
	"github.com/taibuivan/tsundoku/internal/users/settings"
	"github.com/taibuivan/tsundoku/internal/visibility"
	"github.com/taibuivan/tsundoku/pkg/slice"
	"github.com/taibuivan/tsundoku/pkg/uuidv7"
)

// # Collaborator Contracts

// ScopeSource resolves a viewer's visibility scope from the follow graph.
// Satisfied by the follow service.
type ScopeSource interface {
	Scope(context context.Context, viewerID string) (visibility.Scope, error)
}

// SettingsSource supplies sharing defaults for new records. Satisfied by the
// settings service.
type SettingsSource interface {
	Get(context context.Context, userID string) (*settings.Settings, error)
}

// Recorder appends events to the social log. Satisfied by the activity service.
type Recorder interface {
	Record(context context.Context, input activity.RecordInput)
}

// # Service Definition

// Service orchestrates progress reads and writes.
type Service struct {
	repository Repository
	books      BookSource
	scopes     ScopeSource
	defaults   SettingsSource
	recorder   Recorder
}

// NewService creates a new progress [Service].
func NewService(repository Repository, books BookSource, scopes ScopeSource, defaults SettingsSource, recorder Recorder) *Service {
	return &Service{
		repository: repository,
		books:      books,
		scopes:     scopes,
		defaults:   defaults,
		recorder:   recorder,
	}
}

// TrackInput describes a progress save against a book.
type TrackInput struct {
	BookID      string
	Status      string
	CurrentPage int

	// Shared left nil keeps the existing flag, or falls back to the owner's
	// sharing default when the record is being created.
	Shared *bool
}

// # Service Operations

/*
Track creates or replaces the progress record for a book.

Description: Only the book's owner may write. The write is a single atomic
upsert keyed on the book, so concurrent saves cannot produce two records.
Every save appends a progress-update event to the social log, whether or not
the record is shared.

Parameters:
  - context: context.Context
  - actorID: string
  - input: TrackInput

Returns:
  - *Progress: Hydrated state after the write
  - error: apperr.NotFound when the book is absent or foreign, or storage failures
*/
func (service *Service) Track(context context.Context, actorID string, input TrackInput) (*Progress, error) {
	info, err := service.books.Info(context, input.BookID)
	if err != nil {
		return nil, err
	}
	if info.OwnerID != actorID {
		return nil, apperr.NotFound("Book")
	}

	shared, err := service.resolveShared(context, actorID, input.BookID, input.Shared)
	if err != nil {
		return nil, err
	}

	record := &Progress{
		ID:          uuidv7.New(),
		BookID:      input.BookID,
		Status:      input.Status,
		CurrentPage: input.CurrentPage,
		Shared:      shared,
	}

	if err := service.repository.Upsert(context, record); err != nil {
		return nil, err
	}

	saved, err := service.repository.FindByID(context, record.ID)
	if err != nil {
		return nil, err
	}

	service.recordUpdate(context, saved)

	return saved, nil
}

/*
Get retrieves one progress record visible to the viewer.

Description: Owners see their own records unconditionally. Anyone else sees
a record only when it is shared. A private foreign record reads as absent.

Parameters:
  - context: context.Context
  - viewerID: string
  - id: string

Returns:
  - *Progress: Hydrated record
  - error: apperr.NotFound for absent or invisible records
*/
func (service *Service) Get(context context.Context, viewerID, id string) (*Progress, error) {
	record, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if record.OwnerID != viewerID && !record.Shared {
		return nil, apperr.NotFound("Reading progress")
	}

	return record, nil
}

/*
Update rewrites an existing progress record by its ID.

Parameters:
  - context: context.Context
  - actorID: string
  - id: string
  - input: TrackInput (BookID is ignored, the record's book is fixed)

Returns:
  - *Progress: Hydrated state after the write
  - error: apperr.NotFound for absent or foreign records, or storage failures
*/
func (service *Service) Update(context context.Context, actorID, id string, input TrackInput) (*Progress, error) {
	existing, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != actorID {
		return nil, apperr.NotFound("Reading progress")
	}

	shared := existing.Shared
	if input.Shared != nil {
		shared = *input.Shared
	}

	record := &Progress{
		ID:          existing.ID,
		BookID:      existing.BookID,
		Status:      input.Status,
		CurrentPage: input.CurrentPage,
		Shared:      shared,
	}

	if err := service.repository.Upsert(context, record); err != nil {
		return nil, err
	}

	saved, err := service.repository.FindByID(context, record.ID)
	if err != nil {
		return nil, err
	}

	service.recordUpdate(context, saved)

	return saved, nil
}

/*
Delete removes one of the caller's progress records.

Parameters:
  - context: context.Context
  - actorID: string
  - id: string

Returns:
  - error: apperr.NotFound for absent or foreign records, or storage failures
*/
func (service *Service) Delete(context context.Context, actorID, id string) error {
	existing, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != actorID {
		return apperr.NotFound("Reading progress")
	}

	return service.repository.Delete(context, id)
}

/*
List returns progress records visible to the viewer.

Description: Without a username filter this is the social listing: the
viewer's own records plus shared records of followed owners. With a filter
it is one user's records, follow graph bypassed, shared-only for non-owners.
A non-empty status set reduces the result to records in those statuses.

Parameters:
  - context: context.Context
  - viewerID: string
  - usernameFilter: string (Empty for the social listing)
  - statuses: []string (Empty keeps every status)

Returns:
  - []Progress: Hydrated records, newest-first
  - error: Storage failures
*/
func (service *Service) List(context context.Context, viewerID, usernameFilter string, statuses []string) ([]Progress, error) {
	var records []Progress
	var err error

	if usernameFilter != "" {
		records, err = service.repository.ListByOwnerUsername(context, usernameFilter, viewerID)
	} else {
		var scope visibility.Scope
		scope, err = service.scopes.Scope(context, viewerID)
		if err == nil {
			records, err = service.repository.ListVisible(context, viewerID, scope.Followed())
		}
	}

	if err != nil {
		return nil, err
	}

	if len(statuses) > 0 {
		wanted := make(map[string]struct{}, len(statuses))
		for _, status := range statuses {
			wanted[status] = struct{}{}
		}
		records = slice.Filter(records, func(record Progress) bool {
			_, ok := wanted[record.Status]
			return ok
		})
	}

	if records == nil {
		records = []Progress{}
	}

	return records, nil
}

// resolveShared picks the shared flag for a save: explicit input first, then
// the existing record, then the owner's sharing default for new records.
func (service *Service) resolveShared(context context.Context, ownerID, bookID string, requested *bool) (bool, error) {
	if requested != nil {
		return *requested, nil
	}

	existing, err := service.repository.FindByBookID(context, bookID)
	if err == nil {
		return existing.Shared, nil
	}
	if appErr := apperr.As(err); appErr == nil || appErr.HTTPStatus != http.StatusNotFound {
		return false, err
	}

	prefs, err := service.defaults.Get(context, ownerID)
	if err != nil {
		return false, err
	}
	return prefs.ShareAllReadingProgress, nil
}

// recordUpdate appends the progress-update event for a saved record.
func (service *Service) recordUpdate(context context.Context, saved *Progress) {
	service.recorder.Record(context, activity.RecordInput{
		ActorID:           saved.OwnerID,
		BookID:            saved.BookID,
		Kind:              activity.KindProgressUpdate,
		ReadingProgressID: &saved.ID,
		Text:              fmt.Sprintf("%s updated reading progress for %s", saved.OwnerUsername, saved.BookTitle),
		Backlink:          fmt.Sprintf("/user/%s", saved.OwnerUsername),
	})
}
