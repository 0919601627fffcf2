// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsundoku/internal/catalog/progress"
	"github.com/taibuivan/tsundoku/internal/catalog/review"
	"github.com/taibuivan/tsundoku/internal/catalog/shelf"
	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/visibility"
	"github.com/taibuivan/tsundoku/pkg/pointer"
)

// memoryBooks is an in-memory [Repository] for service tests.
type memoryBooks struct {
	records map[string]*Book
	// attachments drive ListVisibleCatalog's shared-attachment check.
	sharedAttachment map[string]bool
	usernames        map[string]string
}

func newMemoryBooks() *memoryBooks {
	return &memoryBooks{
		records:          make(map[string]*Book),
		sharedAttachment: make(map[string]bool),
		usernames:        map[string]string{"alice": "alice", "bob": "bob", "carol": "carol"},
	}
}

func (m *memoryBooks) hydrate(record *Book) *Book {
	copied := *record
	copied.Owner = m.usernames[record.UserID]
	return &copied
}

func (m *memoryBooks) Create(_ context.Context, record *Book) error {
	stored := *record
	m.records[record.ID] = &stored
	return nil
}

func (m *memoryBooks) FindByID(_ context.Context, id string) (*Book, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return m.hydrate(record), nil
}

func (m *memoryBooks) ListByOwner(_ context.Context, ownerID string) ([]Book, error) {
	var records []Book
	for _, record := range m.records {
		if record.UserID == ownerID {
			records = append(records, *m.hydrate(record))
		}
	}
	return records, nil
}

func (m *memoryBooks) ListByOwnerUsername(_ context.Context, username string) ([]Book, error) {
	var records []Book
	for _, record := range m.records {
		hydrated := m.hydrate(record)
		if hydrated.Owner == username {
			records = append(records, *hydrated)
		}
	}
	return records, nil
}

func (m *memoryBooks) ListVisibleCatalog(_ context.Context, viewerID string, followedIDs []string) ([]Book, error) {
	followed := make(map[string]struct{})
	for _, id := range followedIDs {
		followed[id] = struct{}{}
	}

	var records []Book
	for _, record := range m.records {
		if record.UserID == viewerID {
			records = append(records, *m.hydrate(record))
			continue
		}
		if _, ok := followed[record.UserID]; ok && m.sharedAttachment[record.ID] {
			records = append(records, *m.hydrate(record))
		}
	}
	return records, nil
}

func (m *memoryBooks) Update(_ context.Context, record *Book) error {
	stored := *record
	m.records[record.ID] = &stored
	return nil
}

func (m *memoryBooks) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

// staticShelves is a fixed [ShelfSource].
type staticShelves map[string]*shelf.Shelf

func (s staticShelves) FindByID(_ context.Context, id string) (*shelf.Shelf, error) {
	record, ok := s[id]
	if !ok {
		return nil, apperr.NotFound("Shelf")
	}
	return record, nil
}

// staticReviews is a fixed [ReviewFinder] keyed by book ID.
type staticReviews map[string]*review.Review

func (s staticReviews) FindByBookID(_ context.Context, bookID string) (*review.Review, error) {
	record, ok := s[bookID]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	return record, nil
}

// staticProgress is a fixed [ProgressFinder] keyed by book ID.
type staticProgress map[string]*progress.Progress

func (s staticProgress) FindByBookID(_ context.Context, bookID string) (*progress.Progress, error) {
	record, ok := s[bookID]
	if !ok {
		return nil, apperr.NotFound("Reading progress")
	}
	return record, nil
}

// staticScopes is a fixed [ScopeSource].
type staticScopes map[string][]string

func (s staticScopes) Scope(_ context.Context, viewerID string) (visibility.Scope, error) {
	return visibility.NewScope(viewerID, s[viewerID]), nil
}

type fixture struct {
	service  *Service
	repo     *memoryBooks
	reviews  staticReviews
	progress staticProgress
}

func newFixture(follows staticScopes) *fixture {
	repo := newMemoryBooks()
	shelves := staticShelves{
		"shelf-alice": {ID: "shelf-alice", UserID: "alice", Title: "Favorites"},
		"shelf-bob":   {ID: "shelf-bob", UserID: "bob", Title: "To Read"},
	}
	reviews := staticReviews{}
	progressRecords := staticProgress{}
	if follows == nil {
		follows = staticScopes{}
	}
	return &fixture{
		service:  NewService(repo, shelves, reviews, progressRecords, follows),
		repo:     repo,
		reviews:  reviews,
		progress: progressRecords,
	}
}

func (f *fixture) create(t *testing.T, ownerID, title, author string, input Input) *Book {
	t.Helper()
	input.Title = title
	input.Author = author
	record, err := f.service.Create(context.Background(), ownerID, input)
	require.NoError(t, err)
	return record
}

func TestCreateAssignsOwnShelf(t *testing.T) {
	f := newFixture(nil)

	record := f.create(t, "alice", "The Trial", "Franz Kafka", Input{
		ShelfID: pointer.To("shelf-alice"),
	})

	require.NotNil(t, record.ShelfID)
	assert.Equal(t, "shelf-alice", *record.ShelfID)
	assert.Equal(t, "alice", record.Owner)
}

func TestAssignShelfRejectsForeignShelf(t *testing.T) {
	f := newFixture(nil)

	_, err := f.service.Create(context.Background(), "alice", Input{
		Title: "The Trial", Author: "Franz Kafka",
		ShelfID: pointer.To("shelf-bob"),
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus, "foreign shelves read as absent")
	assert.Empty(t, f.repo.records)
}

func TestRedact(t *testing.T) {
	sharedReview := &review.Review{ID: "r1", Shared: true}
	privateProgress := &progress.Progress{ID: "p1", Shared: false}
	detail := &Detail{
		Book:            Book{ID: "b1", UserID: "alice", Title: "The Trial"},
		Review:          sharedReview,
		ReadingProgress: privateProgress,
	}

	t.Run("owner keeps everything", func(t *testing.T) {
		reduced := Redact(detail, "alice")
		assert.NotNil(t, reduced.Review)
		assert.NotNil(t, reduced.ReadingProgress)
	})

	t.Run("viewer loses the private attachment only", func(t *testing.T) {
		reduced := Redact(detail, "bob")
		assert.NotNil(t, reduced.Review, "shared attachments survive")
		assert.Nil(t, reduced.ReadingProgress)
		assert.Equal(t, "The Trial", reduced.Title, "base fields always survive")
	})

	t.Run("original detail is untouched", func(t *testing.T) {
		Redact(detail, "bob")
		assert.NotNil(t, detail.ReadingProgress)
	})
}

func TestGetRedactsForViewer(t *testing.T) {
	f := newFixture(nil)
	record := f.create(t, "alice", "The Trial", "Franz Kafka", Input{})
	f.reviews[record.ID] = &review.Review{ID: "r1", BookID: record.ID, Shared: false}
	f.progress[record.ID] = &progress.Progress{ID: "p1", BookID: record.ID, Shared: true}

	detail, err := f.service.Get(context.Background(), "bob", record.ID)
	require.NoError(t, err)

	assert.Nil(t, detail.Review)
	require.NotNil(t, detail.ReadingProgress)
	assert.Equal(t, "p1", detail.ReadingProgress.ID)
	assert.Equal(t, "The Trial", detail.Title)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	f := newFixture(nil)
	record := f.create(t, "alice", "The Trial", "Franz Kafka", Input{})

	_, err := f.service.Update(context.Background(), "bob", record.ID, Input{
		Title: "Hijacked", Author: "Nobody",
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
	assert.Equal(t, "The Trial", f.repo.records[record.ID].Title)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	f := newFixture(nil)
	record := f.create(t, "alice", "The Trial", "Franz Kafka", Input{})

	err := f.service.Delete(context.Background(), "bob", record.ID)

	require.Error(t, err)
	assert.Len(t, f.repo.records, 1)
	require.NoError(t, f.service.Delete(context.Background(), "alice", record.ID))
	assert.Empty(t, f.repo.records)
}

func TestSearchLocalFoldsAccentsAndCase(t *testing.T) {
	f := newFixture(nil)
	matched := f.create(t, "alice", "Jane Eyre", "Charlotte Brontë", Input{})
	f.create(t, "alice", "Dune", "Frank Herbert", Input{})

	records, err := f.service.SearchLocal(context.Background(), "alice", "BRONTE")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, matched.ID, records[0].ID)
}

func TestSearchLocalMatchesReleaseYear(t *testing.T) {
	f := newFixture(nil)
	matched := f.create(t, "alice", "Dune", "Frank Herbert", Input{ReleaseYear: pointer.To(1965)})
	f.create(t, "alice", "Jane Eyre", "Charlotte Brontë", Input{ReleaseYear: pointer.To(1847)})

	records, err := f.service.SearchLocal(context.Background(), "alice", "1965")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, matched.ID, records[0].ID)
}

func TestSearchLocalScopedToVisibleCatalog(t *testing.T) {
	follows := staticScopes{"alice": {"bob"}}
	f := newFixture(follows)
	visibleForeign := f.create(t, "bob", "Dune", "Frank Herbert", Input{})
	hiddenForeign := f.create(t, "bob", "Dune Messiah", "Frank Herbert", Input{})
	unfollowed := f.create(t, "carol", "Dune Chronicles", "Frank Herbert", Input{})
	f.repo.sharedAttachment[visibleForeign.ID] = true
	f.repo.sharedAttachment[unfollowed.ID] = true

	records, err := f.service.SearchLocal(context.Background(), "alice", "dune")
	require.NoError(t, err)

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	assert.ElementsMatch(t, []string{visibleForeign.ID}, ids)
	assert.NotContains(t, ids, hiddenForeign.ID, "followed owner without a shared attachment stays hidden")
	assert.NotContains(t, ids, unfollowed.ID, "sharing without a follow edge is not enough for search")
}
