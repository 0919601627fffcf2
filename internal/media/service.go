// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/taibuivan/tsundoku/internal/catalog/book"
	"github.com/taibuivan/tsundoku/internal/catalog/shelf"
	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/pkg/uuidv7"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 5 << 20

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// BookSource resolves books for ownership checks. Satisfied by the book
// storage layer.
type BookSource interface {
	FindByID(context context.Context, id string) (*book.Book, error)
}

// ShelfSource resolves shelves for ownership checks. Satisfied by the shelf
// storage layer.
type ShelfSource interface {
	FindByID(context context.Context, id string) (*shelf.Shelf, error)
}

// Service implements image upload use cases.
type Service struct {
	repository Repository
	blobs      BlobStore
	books      BookSource
	shelves    ShelfSource
}

// NewService creates a media service.
func NewService(repository Repository, blobs BlobStore, books BookSource, shelves ShelfSource) *Service {
	return &Service{
		repository: repository,
		blobs:      blobs,
		books:      books,
		shelves:    shelves,
	}
}

// UploadInput carries one incoming image.
type UploadInput struct {
	BookID      *string
	ShelfID     *string
	Filename    string
	ContentType string
	SizeBytes   int64
	Content     io.Reader
}

/*
Upload validates, stores and records one image.

Description: The image must target exactly one of the actor's own books or
shelves. Foreign targets read as missing. The stored file gets a generated
name; the original filename is kept as metadata only.

Parameters:
  - context: context.Context
  - actorID: string
  - input: UploadInput

Returns:
  - *Asset: The stored asset with its public URL
  - error: apperr.ValidationError, apperr.NotFound or storage failures
*/
func (s *Service) Upload(context context.Context, actorID string, input UploadInput) (*Asset, error) {
	if input.BookID != nil && input.ShelfID != nil {
		return nil, apperr.ValidationError("An image can be associated with either a book or a shelf, not both.")
	}
	if input.BookID == nil && input.ShelfID == nil {
		return nil, apperr.ValidationError("An image must be associated with either a book or a shelf.")
	}

	extension, ok := allowedContentTypes[input.ContentType]
	if !ok {
		return nil, apperr.ValidationError("Unsupported image type.")
	}
	if input.SizeBytes > MaxUploadBytes {
		return nil, apperr.ValidationError("Image exceeds the upload size limit.")
	}

	if err := s.checkTarget(context, actorID, input.BookID, input.ShelfID); err != nil {
		return nil, err
	}

	asset := &Asset{
		ID:          uuidv7.New(),
		BookID:      input.BookID,
		ShelfID:     input.ShelfID,
		Filename:    filepath.Base(input.Filename),
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
	}

	url, err := s.blobs.Save(context, fmt.Sprintf("%s%s", asset.ID, extension), input.Content)
	if err != nil {
		return nil, err
	}
	asset.URL = url

	if err := s.repository.Create(context, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Service) checkTarget(context context.Context, actorID string, bookID, shelfID *string) error {
	if bookID != nil {
		target, err := s.books.FindByID(context, *bookID)
		if err != nil {
			return err
		}
		if target.UserID != actorID {
			return apperr.NotFound("Book")
		}
		return nil
	}

	target, err := s.shelves.FindByID(context, *shelfID)
	if err != nil {
		return err
	}
	if target.UserID != actorID {
		return apperr.NotFound("Shelf")
	}
	return nil
}
