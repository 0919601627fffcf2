// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media manages uploaded cover images.

Every image belongs to exactly one catalog object: a book or a shelf, never
both and never neither. Uploads are owner-gated through the target object,
stored on local disk and exposed under a static media URL.
*/
package media

import (
	"context"
	"io"
	"time"
)

// Field identifiers for validation messages.
const (
	FieldImage   = "image"
	FieldBookID  = "book_id"
	FieldShelfID = "shelf_id"
)

// Asset is one stored image.
type Asset struct {
	ID          string    `json:"id"`
	BookID      *string   `json:"book_id,omitempty"`
	ShelfID     *string   `json:"shelf_id,omitempty"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository defines the persistence contract for image assets.
type Repository interface {
	/*
		Create persists a new asset row.

		Parameters:
		  - context: context.Context
		  - asset: *Asset

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, asset *Asset) error

	/*
		FindByID retrieves one asset.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Asset: The stored asset
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Asset, error)
}

// BlobStore writes image bytes somewhere durable and hands back a public
// URL. Implemented by [DiskStore].
type BlobStore interface {
	Save(context context.Context, name string, content io.Reader) (string, error)
}
