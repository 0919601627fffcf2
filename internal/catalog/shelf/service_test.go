// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
)

// memoryShelves is an in-memory [Repository] that also tracks simulated
// book-to-shelf references so delete semantics can be observed.
type memoryShelves struct {
	shelves    map[string]Shelf
	bookShelf  map[string]string
	deletedIDs []string
}

func newMemoryShelves() *memoryShelves {
	return &memoryShelves{
		shelves:   make(map[string]Shelf),
		bookShelf: make(map[string]string),
	}
}

func (m *memoryShelves) Create(_ context.Context, shelf *Shelf) error {
	m.shelves[shelf.ID] = *shelf
	return nil
}

func (m *memoryShelves) FindByID(_ context.Context, id string) (*Shelf, error) {
	found, ok := m.shelves[id]
	if !ok {
		return nil, apperr.NotFound("Shelf")
	}
	return &found, nil
}

func (m *memoryShelves) ListByOwner(_ context.Context, ownerID string) ([]Shelf, error) {
	var result []Shelf
	for _, item := range m.shelves {
		if item.UserID == ownerID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *memoryShelves) Update(_ context.Context, shelf *Shelf) error {
	m.shelves[shelf.ID] = *shelf
	return nil
}

func (m *memoryShelves) Delete(_ context.Context, id string) error {
	for bookID, shelfID := range m.bookShelf {
		if shelfID == id {
			delete(m.bookShelf, bookID)
		}
	}
	delete(m.shelves, id)
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func TestCreateAndGet(t *testing.T) {
	service := NewService(newMemoryShelves())

	created, err := service.Create(context.Background(), "alice", CreateInput{Title: "Currently Reading"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := service.Get(context.Background(), "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Currently Reading", found.Title)
	assert.Equal(t, "alice", found.UserID)
}

func TestGetForeignShelfReadsAsAbsent(t *testing.T) {
	repo := newMemoryShelves()
	service := NewService(repo)

	created, err := service.Create(context.Background(), "alice", CreateInput{Title: "Private"})
	require.NoError(t, err)

	_, err = service.Get(context.Background(), "bob", created.ID)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus, "foreign shelves 404, never 403")
}

func TestUpdateRequiresOwnership(t *testing.T) {
	service := NewService(newMemoryShelves())

	created, err := service.Create(context.Background(), "alice", CreateInput{Title: "Old"})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), "bob", created.ID, UpdateInput{Title: "Hijacked"})
	require.Error(t, err)

	unchanged, err := service.Get(context.Background(), "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old", unchanged.Title)
}

func TestDeleteUnshelvesBooks(t *testing.T) {
	repo := newMemoryShelves()
	service := NewService(repo)

	created, err := service.Create(context.Background(), "alice", CreateInput{Title: "To Clear"})
	require.NoError(t, err)

	repo.bookShelf["book-1"] = created.ID
	repo.bookShelf["book-2"] = created.ID

	require.NoError(t, service.Delete(context.Background(), "alice", created.ID))

	_, stillShelved1 := repo.bookShelf["book-1"]
	_, stillShelved2 := repo.bookShelf["book-2"]
	assert.False(t, stillShelved1)
	assert.False(t, stillShelved2)
	assert.Equal(t, []string{created.ID}, repo.deletedIDs)
}

func TestDeleteForeignShelfLeavesState(t *testing.T) {
	repo := newMemoryShelves()
	service := NewService(repo)

	created, err := service.Create(context.Background(), "alice", CreateInput{Title: "Mine"})
	require.NoError(t, err)

	err = service.Delete(context.Background(), "bob", created.ID)
	require.Error(t, err)
	assert.Empty(t, repo.deletedIDs)
}
