// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/social/activity"
	"github.com/taibuivan/tsundoku/internal/users/settings"
	"github.com/taibuivan/tsundoku/internal/visibility"
	"github.com/taibuivan/tsundoku/pkg/pointer"
)

// memoryProgress is an in-memory [Repository] for service tests.
type memoryProgress struct {
	records map[string]*Progress
	books   map[string]*BookInfo
}

func newMemoryProgress(books map[string]*BookInfo) *memoryProgress {
	return &memoryProgress{records: make(map[string]*Progress), books: books}
}

func (m *memoryProgress) hydrate(record *Progress) *Progress {
	copied := *record
	if info, ok := m.books[record.BookID]; ok {
		copied.OwnerID = info.OwnerID
		copied.OwnerUsername = info.OwnerUsername
		copied.BookTitle = info.Title
		copied.TotalPages = info.TotalPages
		copied.Book = &BookRef{ID: info.ID, Title: info.Title, Owner: info.OwnerUsername}
	}
	copied.Recalculate()
	return &copied
}

func (m *memoryProgress) Upsert(_ context.Context, record *Progress) error {
	for _, existing := range m.records {
		if existing.BookID == record.BookID {
			record.ID = existing.ID
			break
		}
	}
	stored := *record
	m.records[record.ID] = &stored
	return nil
}

func (m *memoryProgress) FindByID(_ context.Context, id string) (*Progress, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, apperr.NotFound("Reading progress")
	}
	return m.hydrate(record), nil
}

func (m *memoryProgress) FindByBookID(_ context.Context, bookID string) (*Progress, error) {
	for _, record := range m.records {
		if record.BookID == bookID {
			return m.hydrate(record), nil
		}
	}
	return nil, apperr.NotFound("Reading progress")
}

func (m *memoryProgress) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *memoryProgress) ListVisible(_ context.Context, viewerID string, followedIDs []string) ([]Progress, error) {
	followed := make(map[string]struct{})
	for _, id := range followedIDs {
		followed[id] = struct{}{}
	}

	var visible []Progress
	for _, record := range m.records {
		hydrated := m.hydrate(record)
		if hydrated.OwnerID == viewerID {
			visible = append(visible, *hydrated)
			continue
		}
		if _, ok := followed[hydrated.OwnerID]; ok && hydrated.Shared {
			visible = append(visible, *hydrated)
		}
	}
	return visible, nil
}

func (m *memoryProgress) ListByOwnerUsername(_ context.Context, username, viewerID string) ([]Progress, error) {
	var visible []Progress
	for _, record := range m.records {
		hydrated := m.hydrate(record)
		if hydrated.OwnerUsername != username {
			continue
		}
		if hydrated.OwnerID == viewerID || hydrated.Shared {
			visible = append(visible, *hydrated)
		}
	}
	return visible, nil
}

// staticBooks is a fixed [BookSource].
type staticBooks map[string]*BookInfo

func (s staticBooks) Info(_ context.Context, bookID string) (*BookInfo, error) {
	info, ok := s[bookID]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return info, nil
}

// staticScopes is a fixed [ScopeSource].
type staticScopes map[string][]string

func (s staticScopes) Scope(_ context.Context, viewerID string) (visibility.Scope, error) {
	return visibility.NewScope(viewerID, s[viewerID]), nil
}

// staticSettings is a fixed [SettingsSource].
type staticSettings map[string]*settings.Settings

func (s staticSettings) Get(_ context.Context, userID string) (*settings.Settings, error) {
	if stored, ok := s[userID]; ok {
		return stored, nil
	}
	return settings.Defaults(userID), nil
}

// spyRecorder captures recorded events.
type spyRecorder struct {
	inputs []activity.RecordInput
}

func (s *spyRecorder) Record(_ context.Context, input activity.RecordInput) {
	s.inputs = append(s.inputs, input)
}

type fixture struct {
	service  *Service
	repo     *memoryProgress
	recorder *spyRecorder
}

func newFixture(prefs staticSettings, follows staticScopes) *fixture {
	books := map[string]*BookInfo{
		"book-a": {ID: "book-a", OwnerID: "alice", OwnerUsername: "alice", Title: "The Trial", TotalPages: pointer.To(300)},
		"book-b": {ID: "book-b", OwnerID: "bob", OwnerUsername: "bob", Title: "Dune", TotalPages: pointer.To(412)},
		"book-n": {ID: "book-n", OwnerID: "alice", OwnerUsername: "alice", Title: "Untitled Draft", TotalPages: nil},
	}
	repo := newMemoryProgress(books)
	recorder := &spyRecorder{}
	if prefs == nil {
		prefs = staticSettings{}
	}
	if follows == nil {
		follows = staticScopes{}
	}
	return &fixture{
		service:  NewService(repo, staticBooks(books), follows, prefs, recorder),
		repo:     repo,
		recorder: recorder,
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name        string
		currentPage int
		totalPages  *int
		expected    float64
	}{
		{name: "halfway", currentPage: 150, totalPages: pointer.To(300), expected: 50.0},
		{name: "no page count", currentPage: 150, totalPages: nil, expected: 0},
		{name: "zero page count", currentPage: 150, totalPages: pointer.To(0), expected: 0},
		{name: "unread", currentPage: 0, totalPages: pointer.To(300), expected: 0},
		{name: "past the last page stays unclamped", currentPage: 450, totalPages: pointer.To(300), expected: 150.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Percentage(tt.currentPage, tt.totalPages), 0.0001)
		})
	}
}

func TestTrackRequiresBookOwnership(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-b", Status: StatusIsReading, CurrentPage: 10,
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus, "foreign books read as absent")
	assert.Empty(t, f.repo.records)
}

func TestTrackComputesPercentage(t *testing.T) {
	f := newFixture(nil, nil)

	record, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-a", Status: StatusIsReading, CurrentPage: 150,
	})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, record.ReadingPercentage, 0.0001)
}

func TestTrackZeroPercentageWithoutPageCount(t *testing.T) {
	f := newFixture(nil, nil)

	record, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-n", Status: StatusIsReading, CurrentPage: 150,
	})
	require.NoError(t, err)

	assert.Zero(t, record.ReadingPercentage)
}

func TestTrackDefaultsSharedFromSettings(t *testing.T) {
	prefs := staticSettings{
		"alice": {UserID: "alice", ShareAllReadingProgress: true},
	}
	f := newFixture(prefs, nil)

	record, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-a", Status: StatusIsReading, CurrentPage: 1,
	})
	require.NoError(t, err)

	assert.True(t, record.Shared)
}

func TestTrackExplicitSharedOverridesSettings(t *testing.T) {
	prefs := staticSettings{
		"alice": {UserID: "alice", ShareAllReadingProgress: true},
	}
	f := newFixture(prefs, nil)

	record, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-a", Status: StatusIsReading, CurrentPage: 1, Shared: pointer.To(false),
	})
	require.NoError(t, err)

	assert.False(t, record.Shared)
}

func TestTrackRecordsActivityEvenWhenPrivate(t *testing.T) {
	f := newFixture(nil, nil)

	record, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-a", Status: StatusIsReading, CurrentPage: 42, Shared: pointer.To(false),
	})
	require.NoError(t, err)

	require.Len(t, f.recorder.inputs, 1)
	event := f.recorder.inputs[0]
	assert.Equal(t, activity.KindProgressUpdate, event.Kind)
	assert.Equal(t, "alice", event.ActorID)
	assert.Equal(t, record.ID, pointer.Val(event.ReadingProgressID))
	assert.Contains(t, event.Text, "The Trial")
	assert.Equal(t, "/user/alice", event.Backlink)
}

func TestGetVisibility(t *testing.T) {
	f := newFixture(nil, nil)

	private, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-a", Status: StatusIsReading, CurrentPage: 10, Shared: pointer.To(false),
	})
	require.NoError(t, err)

	shared, err := f.service.Track(context.Background(), "bob", TrackInput{
		BookID: "book-b", Status: StatusFinishedReading, CurrentPage: 412, Shared: pointer.To(true),
	})
	require.NoError(t, err)

	// Owner always sees their own record.
	_, err = f.service.Get(context.Background(), "alice", private.ID)
	assert.NoError(t, err)

	// A shared record is fetchable by anyone, follow graph not consulted.
	_, err = f.service.Get(context.Background(), "alice", shared.ID)
	assert.NoError(t, err)

	// A private foreign record reads as absent.
	_, err = f.service.Get(context.Background(), "bob", private.ID)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
}

func TestListVisibleUnion(t *testing.T) {
	follows := staticScopes{"alice": {"bob"}}
	f := newFixture(nil, follows)

	_, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-a", Status: StatusIsReading, CurrentPage: 10, Shared: pointer.To(false),
	})
	require.NoError(t, err)

	_, err = f.service.Track(context.Background(), "bob", TrackInput{
		BookID: "book-b", Status: StatusIsReading, CurrentPage: 20, Shared: pointer.To(true),
	})
	require.NoError(t, err)

	records, err := f.service.List(context.Background(), "alice", "", nil)
	require.NoError(t, err)

	// Own private record plus the followed owner's shared record.
	assert.Len(t, records, 2)

	// Bob follows nobody: only his own record.
	records, err = f.service.List(context.Background(), "bob", "", nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestListFollowedPrivateRecordExcluded(t *testing.T) {
	follows := staticScopes{"alice": {"bob"}}
	f := newFixture(nil, follows)

	_, err := f.service.Track(context.Background(), "bob", TrackInput{
		BookID: "book-b", Status: StatusIsReading, CurrentPage: 20, Shared: pointer.To(false),
	})
	require.NoError(t, err)

	records, err := f.service.List(context.Background(), "alice", "", nil)
	require.NoError(t, err)
	assert.Empty(t, records, "following alone never exposes a private record")
}

func TestListUsernameFilterBypassesFollowGraph(t *testing.T) {
	// Bob does not follow Alice.
	f := newFixture(nil, nil)

	_, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-a", Status: StatusIsReading, CurrentPage: 150, Shared: pointer.To(true),
	})
	require.NoError(t, err)

	_, err = f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-n", Status: StatusWantToRead, CurrentPage: 0, Shared: pointer.To(false),
	})
	require.NoError(t, err)

	records, err := f.service.List(context.Background(), "bob", "alice", nil)
	require.NoError(t, err)

	require.Len(t, records, 1, "only the shared record crosses user boundaries")
	assert.Equal(t, "book-a", records[0].BookID)
	assert.InDelta(t, 50.0, records[0].ReadingPercentage, 0.0001)
}

func TestListFiltersByStatus(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-a", Status: StatusIsReading, CurrentPage: 150, Shared: pointer.To(false),
	})
	require.NoError(t, err)

	_, err = f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-n", Status: StatusWantToRead, CurrentPage: 0, Shared: pointer.To(false),
	})
	require.NoError(t, err)

	records, err := f.service.List(context.Background(), "alice", "", []string{StatusWantToRead})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "book-n", records[0].BookID)

	records, err = f.service.List(context.Background(), "alice", "", []string{StatusWantToRead, StatusIsReading})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// A status nobody holds yields an empty list, not nil.
	records, err = f.service.List(context.Background(), "alice", "", []string{StatusNotToFinish})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	f := newFixture(nil, nil)

	record, err := f.service.Track(context.Background(), "alice", TrackInput{
		BookID: "book-a", Status: StatusIsReading, CurrentPage: 10,
	})
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), "bob", record.ID)
	require.Error(t, err)

	require.NoError(t, f.service.Delete(context.Background(), "alice", record.ID))
	_, err = f.service.Get(context.Background(), "alice", record.ID)
	assert.Error(t, err)
}
