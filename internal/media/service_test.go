// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsundoku/internal/catalog/book"
	"github.com/taibuivan/tsundoku/internal/catalog/shelf"
	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/pkg/pointer"
)

type memoryAssets struct {
	assets map[string]*Asset
}

func (m *memoryAssets) Create(_ context.Context, asset *Asset) error {
	stored := *asset
	m.assets[asset.ID] = &stored
	return nil
}

func (m *memoryAssets) FindByID(_ context.Context, id string) (*Asset, error) {
	asset, ok := m.assets[id]
	if !ok {
		return nil, apperr.NotFound("Image")
	}
	return asset, nil
}

// memoryBlobs records saved names without touching disk.
type memoryBlobs struct {
	saved []string
}

func (m *memoryBlobs) Save(_ context.Context, name string, content io.Reader) (string, error) {
	io.Copy(io.Discard, content)
	m.saved = append(m.saved, name)
	return "/media/" + name, nil
}

type staticBooks map[string]*book.Book

func (s staticBooks) FindByID(_ context.Context, id string) (*book.Book, error) {
	record, ok := s[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return record, nil
}

type staticShelves map[string]*shelf.Shelf

func (s staticShelves) FindByID(_ context.Context, id string) (*shelf.Shelf, error) {
	record, ok := s[id]
	if !ok {
		return nil, apperr.NotFound("Shelf")
	}
	return record, nil
}

type fixture struct {
	service *Service
	assets  *memoryAssets
	blobs   *memoryBlobs
}

func newFixture() *fixture {
	assets := &memoryAssets{assets: make(map[string]*Asset)}
	blobs := &memoryBlobs{}
	books := staticBooks{
		"book-a": {ID: "book-a", UserID: "alice"},
	}
	shelves := staticShelves{
		"shelf-a": {ID: "shelf-a", UserID: "alice"},
	}
	return &fixture{
		service: NewService(assets, blobs, books, shelves),
		assets:  assets,
		blobs:   blobs,
	}
}

func imageInput(bookID, shelfID *string) UploadInput {
	return UploadInput{
		BookID:      bookID,
		ShelfID:     shelfID,
		Filename:    "cover.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   1024,
		Content:     strings.NewReader("not really a jpeg"),
	}
}

func TestUploadTargetMatrix(t *testing.T) {
	tests := []struct {
		name    string
		bookID  *string
		shelfID *string
		wantErr string
	}{
		{name: "book only", bookID: pointer.To("book-a")},
		{name: "shelf only", shelfID: pointer.To("shelf-a")},
		{
			name: "both targets", bookID: pointer.To("book-a"), shelfID: pointer.To("shelf-a"),
			wantErr: "An image can be associated with either a book or a shelf, not both.",
		},
		{
			name:    "no target",
			wantErr: "An image must be associated with either a book or a shelf.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			asset, err := f.service.Upload(context.Background(), "alice", imageInput(tt.bookID, tt.shelfID))

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, asset.URL)
				assert.Len(t, f.assets.assets, 1)
				return
			}

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 400, appErr.HTTPStatus)
			assert.Equal(t, tt.wantErr, appErr.Message)
			assert.Empty(t, f.assets.assets)
			assert.Empty(t, f.blobs.saved)
		})
	}
}

func TestUploadRequiresTargetOwnership(t *testing.T) {
	f := newFixture()

	_, err := f.service.Upload(context.Background(), "bob", imageInput(pointer.To("book-a"), nil))

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus, "foreign targets read as absent")
	assert.Empty(t, f.blobs.saved)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	f := newFixture()
	input := imageInput(pointer.To("book-a"), nil)
	input.ContentType = "application/pdf"

	_, err := f.service.Upload(context.Background(), "alice", input)

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "Unsupported image type.", appErr.Message)
}

func TestUploadRejectsOversizedImage(t *testing.T) {
	f := newFixture()
	input := imageInput(pointer.To("book-a"), nil)
	input.SizeBytes = MaxUploadBytes + 1

	_, err := f.service.Upload(context.Background(), "alice", input)

	require.Error(t, err)
	assert.Empty(t, f.blobs.saved)
}

func TestUploadStoresUnderGeneratedName(t *testing.T) {
	f := newFixture()
	input := imageInput(pointer.To("book-a"), nil)
	input.Filename = "../../../etc/passwd.jpg"

	asset, err := f.service.Upload(context.Background(), "alice", input)
	require.NoError(t, err)

	require.Len(t, f.blobs.saved, 1)
	assert.Equal(t, asset.ID+".jpg", f.blobs.saved[0], "stored name comes from the asset id")
	assert.Equal(t, "passwd.jpg", asset.Filename, "original name survives as metadata only")
}
