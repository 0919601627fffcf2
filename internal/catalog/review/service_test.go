// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

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

// memoryReviews is an in-memory [Repository] and [CommentRepository] for
// service tests.
type memoryReviews struct {
	records  map[string]*Review
	comments map[string]*Comment
	books    map[string]*BookInfo
	authors  map[string]string
}

func newMemoryReviews(books map[string]*BookInfo, authors map[string]string) *memoryReviews {
	return &memoryReviews{
		records:  make(map[string]*Review),
		comments: make(map[string]*Comment),
		books:    books,
		authors:  authors,
	}
}

func (m *memoryReviews) hydrate(record *Review) *Review {
	copied := *record
	if info, ok := m.books[record.BookID]; ok {
		copied.OwnerID = info.OwnerID
		copied.OwnerUsername = info.OwnerUsername
		copied.BookTitle = info.Title
		copied.Book = &BookRef{ID: info.ID, Title: info.Title, Owner: info.OwnerUsername}
	}
	return &copied
}

func (m *memoryReviews) Upsert(_ context.Context, record *Review) error {
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

func (m *memoryReviews) FindByID(_ context.Context, id string) (*Review, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	return m.hydrate(record), nil
}

func (m *memoryReviews) FindByBookID(_ context.Context, bookID string) (*Review, error) {
	for _, record := range m.records {
		if record.BookID == bookID {
			return m.hydrate(record), nil
		}
	}
	return nil, apperr.NotFound("Review")
}

func (m *memoryReviews) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	for commentID, comment := range m.comments {
		if comment.ReviewID == id {
			delete(m.comments, commentID)
		}
	}
	return nil
}

func (m *memoryReviews) ListVisible(_ context.Context, viewerID string, followedIDs []string) ([]Review, error) {
	followed := make(map[string]struct{})
	for _, id := range followedIDs {
		followed[id] = struct{}{}
	}

	var visible []Review
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

func (m *memoryReviews) ListByOwnerUsername(_ context.Context, username, viewerID string) ([]Review, error) {
	var visible []Review
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

func (m *memoryReviews) Create(_ context.Context, comment *Comment) error {
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *memoryReviews) FindCommentByID(_ context.Context, id string) (*Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	copied := *comment
	if copied.UserID != nil {
		copied.AuthorUsername = m.authors[*copied.UserID]
	}
	return &copied, nil
}

func (m *memoryReviews) ListByReviewID(_ context.Context, reviewID string) ([]Comment, error) {
	var thread []Comment
	for _, comment := range m.comments {
		if comment.ReviewID != reviewID {
			continue
		}
		copied := *comment
		if copied.UserID != nil {
			copied.AuthorUsername = m.authors[*copied.UserID]
		}
		thread = append(thread, copied)
	}
	return thread, nil
}

func (m *memoryReviews) DeleteComment(_ context.Context, id string) error {
	delete(m.comments, id)
	return nil
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
	repo     *memoryReviews
	recorder *spyRecorder
}

func newFixture(prefs staticSettings, follows staticScopes) *fixture {
	books := map[string]*BookInfo{
		"book-a": {ID: "book-a", OwnerID: "alice", OwnerUsername: "alice", Title: "The Trial"},
		"book-b": {ID: "book-b", OwnerID: "bob", OwnerUsername: "bob", Title: "Dune"},
	}
	authors := map[string]string{"alice": "alice", "bob": "bob", "carol": "carol"}
	repo := newMemoryReviews(books, authors)
	recorder := &spyRecorder{}
	if prefs == nil {
		prefs = staticSettings{}
	}
	if follows == nil {
		follows = staticScopes{}
	}
	return &fixture{
		service:  NewService(repo, repo, staticBooks(books), follows, prefs, recorder),
		repo:     repo,
		recorder: recorder,
	}
}

func (f *fixture) post(t *testing.T, actorID, bookID string, shared *bool) *Review {
	t.Helper()
	record, err := f.service.Post(context.Background(), actorID, PostInput{
		BookID: bookID, Text: "A dense, rewarding read.", Shared: shared,
	})
	require.NoError(t, err)
	return record
}

func TestPostRequiresBookOwnership(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.service.Post(context.Background(), "alice", PostInput{
		BookID: "book-b", Text: "not my book",
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus, "foreign books read as absent")
	assert.Empty(t, f.repo.records)
}

func TestPostReplacesExistingReview(t *testing.T) {
	f := newFixture(nil, nil)

	first := f.post(t, "alice", "book-a", pointer.To(true))
	second, err := f.service.Post(context.Background(), "alice", PostInput{
		BookID: "book-a", Text: "On reflection, even better.",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "one review per book")
	assert.Len(t, f.repo.records, 1)
	assert.Equal(t, "On reflection, even better.", second.Text)
	assert.True(t, second.Shared, "unset flag keeps the earlier review's value")
}

func TestPostDefaultsSharedFromSettings(t *testing.T) {
	prefs := staticSettings{
		"alice": {UserID: "alice", ShareAllReviews: true},
	}
	f := newFixture(prefs, nil)

	record := f.post(t, "alice", "book-a", nil)

	assert.True(t, record.Shared)
}

func TestPostExplicitSharedOverridesSettings(t *testing.T) {
	prefs := staticSettings{
		"alice": {UserID: "alice", ShareAllReviews: true},
	}
	f := newFixture(prefs, nil)

	record := f.post(t, "alice", "book-a", pointer.To(false))

	assert.False(t, record.Shared)
}

func TestPostRecordsActivityEvenWhenPrivate(t *testing.T) {
	f := newFixture(nil, nil)

	record := f.post(t, "alice", "book-a", pointer.To(false))

	require.Len(t, f.recorder.inputs, 1)
	input := f.recorder.inputs[0]
	assert.Equal(t, activity.KindReviewPosted, input.Kind)
	assert.Equal(t, "alice", input.ActorID)
	require.NotNil(t, input.ReviewID)
	assert.Equal(t, record.ID, *input.ReviewID)
	assert.Equal(t, "alice posted a review of The Trial", input.Text)
	assert.Equal(t, "/user/alice", input.Backlink)
}

func TestGetVisibility(t *testing.T) {
	f := newFixture(nil, nil)
	shared := f.post(t, "alice", "book-a", pointer.To(true))
	private := f.post(t, "bob", "book-b", pointer.To(false))

	t.Run("owner sees a private review", func(t *testing.T) {
		record, err := f.service.Get(context.Background(), "bob", private.ID)
		require.NoError(t, err)
		assert.Equal(t, private.ID, record.ID)
	})

	t.Run("shared review needs no follow edge", func(t *testing.T) {
		record, err := f.service.Get(context.Background(), "carol", shared.ID)
		require.NoError(t, err)
		assert.Equal(t, shared.ID, record.ID)
	})

	t.Run("private foreign review reads as absent", func(t *testing.T) {
		_, err := f.service.Get(context.Background(), "alice", private.ID)
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 404, appErr.HTTPStatus)
	})
}

func TestListVisibleUnion(t *testing.T) {
	follows := staticScopes{"alice": {"bob"}}
	f := newFixture(nil, follows)
	own := f.post(t, "alice", "book-a", pointer.To(false))
	followedShared := f.post(t, "bob", "book-b", pointer.To(true))

	records, err := f.service.List(context.Background(), "alice", "")
	require.NoError(t, err)

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	assert.ElementsMatch(t, []string{own.ID, followedShared.ID}, ids)
}

func TestListFollowedPrivateReviewExcluded(t *testing.T) {
	follows := staticScopes{"alice": {"bob"}}
	f := newFixture(nil, follows)
	f.post(t, "bob", "book-b", pointer.To(false))

	records, err := f.service.List(context.Background(), "alice", "")
	require.NoError(t, err)

	assert.Empty(t, records)
}

func TestListUsernameFilterBypassesFollowGraph(t *testing.T) {
	f := newFixture(nil, nil)
	shared := f.post(t, "bob", "book-b", pointer.To(true))

	records, err := f.service.List(context.Background(), "carol", "bob")
	require.NoError(t, err)

	require.Len(t, records, 1, "shared reviews are reachable without a follow edge")
	assert.Equal(t, shared.ID, records[0].ID)
}

func TestCommentVisibilityFollowsParentReview(t *testing.T) {
	f := newFixture(nil, nil)
	private := f.post(t, "bob", "book-b", pointer.To(false))
	_, err := f.service.AddComment(context.Background(), "bob", private.ID, "note to self")
	require.NoError(t, err)

	t.Run("owner reads the thread", func(t *testing.T) {
		thread, err := f.service.Comments(context.Background(), "bob", private.ID)
		require.NoError(t, err)
		assert.Len(t, thread, 1)
	})

	t.Run("hidden review hides its thread", func(t *testing.T) {
		_, err := f.service.Comments(context.Background(), "alice", private.ID)
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 404, appErr.HTTPStatus)
	})

	t.Run("sharing the review exposes the thread", func(t *testing.T) {
		_, err := f.service.Update(context.Background(), "bob", private.ID, UpdateInput{
			Text: private.Text, Shared: pointer.To(true),
		})
		require.NoError(t, err)

		thread, err := f.service.Comments(context.Background(), "alice", private.ID)
		require.NoError(t, err)
		assert.Len(t, thread, 1)
	})
}

func TestAddCommentOnHiddenReviewFails(t *testing.T) {
	f := newFixture(nil, nil)
	private := f.post(t, "bob", "book-b", pointer.To(false))

	_, err := f.service.AddComment(context.Background(), "alice", private.ID, "can you see me")

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
	assert.Empty(t, f.repo.comments)
}

func TestAddCommentRecordsActivity(t *testing.T) {
	f := newFixture(nil, nil)
	shared := f.post(t, "bob", "book-b", pointer.To(true))
	f.recorder.inputs = nil

	comment, err := f.service.AddComment(context.Background(), "carol", shared.ID, "loved this one too")
	require.NoError(t, err)

	assert.Equal(t, "carol", comment.AuthorUsername)
	require.Len(t, f.recorder.inputs, 1)
	input := f.recorder.inputs[0]
	assert.Equal(t, activity.KindCommentPosted, input.Kind)
	assert.Equal(t, "carol", input.ActorID)
	require.NotNil(t, input.CommentID)
	assert.Equal(t, comment.ID, *input.CommentID)
	assert.Equal(t, "carol commented on a review of Dune", input.Text)
	assert.Equal(t, "/user/bob", input.Backlink)
}

func TestDeleteCommentPermissions(t *testing.T) {
	newThread := func(t *testing.T) (*fixture, *Review, *Comment) {
		t.Helper()
		f := newFixture(nil, nil)
		shared := f.post(t, "bob", "book-b", pointer.To(true))
		comment, err := f.service.AddComment(context.Background(), "carol", shared.ID, "drive-by remark")
		require.NoError(t, err)
		return f, shared, comment
	}

	t.Run("author deletes their comment", func(t *testing.T) {
		f, shared, comment := newThread(t)
		require.NoError(t, f.service.DeleteComment(context.Background(), "carol", shared.ID, comment.ID))
		assert.Empty(t, f.repo.comments)
	})

	t.Run("review owner moderates the thread", func(t *testing.T) {
		f, shared, comment := newThread(t)
		require.NoError(t, f.service.DeleteComment(context.Background(), "bob", shared.ID, comment.ID))
		assert.Empty(t, f.repo.comments)
	})

	t.Run("bystander cannot delete", func(t *testing.T) {
		f, shared, comment := newThread(t)
		err := f.service.DeleteComment(context.Background(), "alice", shared.ID, comment.ID)
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 403, appErr.HTTPStatus)
		assert.Len(t, f.repo.comments, 1)
	})
}

func TestDeleteReviewRemovesThread(t *testing.T) {
	f := newFixture(nil, nil)
	shared := f.post(t, "bob", "book-b", pointer.To(true))
	_, err := f.service.AddComment(context.Background(), "carol", shared.ID, "gone soon")
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), "bob", shared.ID))

	assert.Empty(t, f.repo.records)
	assert.Empty(t, f.repo.comments)
}
