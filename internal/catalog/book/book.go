// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book manages the owned book catalog.

Books are the anchor of the catalog: shelves group them, reviews and
reading progress hang off them, and every visibility decision upstream
resolves through the book's owner. The base fields of any book are readable
by any signed-in user; only the attached review and progress are gated.

# Architecture

  - Entity: Book, plus Detail which bundles the gated attachments.
  - Redaction: Detail is assembled in full and then reduced for the viewer,
    so the gating rule lives in one function.
  - Search: The local catalog search folds accents and case in-process over
    the viewer's visible set.
*/
package book

import (
	"context"
	"time"

	"github.com/taibuivan/tsundoku/internal/catalog/progress"
	"github.com/taibuivan/tsundoku/internal/catalog/review"
)

// Field identifiers for validation messages.
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldISBN        = "isbn"
	FieldTotalPages  = "total_pages"
	FieldReleaseYear = "release_year"
)

// Book is one owned catalog entry.
type Book struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ShelfID     *string   `json:"shelf_id,omitempty"`
	ISBN        string    `json:"isbn,omitempty"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	TotalPages  *int      `json:"total_pages,omitempty"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Detail is a book with its gated attachments resolved.
type Detail struct {
	Book
	Review          *review.Review     `json:"review,omitempty"`
	ReadingProgress *progress.Progress `json:"reading_progress,omitempty"`
}

// Redact reduces a detail view to what the viewer may see. The base book
// fields stay; a non-shared review or progress record disappears for
// everyone but the owner.
func Redact(detail *Detail, viewerID string) *Detail {
	if detail.UserID == viewerID {
		return detail
	}

	reduced := *detail
	if reduced.Review != nil && !reduced.Review.Shared {
		reduced.Review = nil
	}
	if reduced.ReadingProgress != nil && !reduced.ReadingProgress.Shared {
		reduced.ReadingProgress = nil
	}
	return &reduced
}

// Repository defines the persistence contract for books.
type Repository interface {
	/*
		Create persists a new book.

		Parameters:
		  - context: context.Context
		  - record: *Book

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, record *Book) error

	/*
		FindByID retrieves one book with its owner username hydrated.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Book: Hydrated book
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Book, error)

	/*
		ListByOwner returns a user's books, newest-first.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - []Book: Hydrated books
		  - error: Storage failures
	*/
	ListByOwner(context context.Context, ownerID string) ([]Book, error)

	/*
		ListByOwnerUsername returns a user's books looked up by username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - []Book: Hydrated books
		  - error: Storage failures
	*/
	ListByOwnerUsername(context context.Context, username string) ([]Book, error)

	/*
		ListVisibleCatalog returns the searchable set for a viewer: their
		own books plus followed owners' books that carry at least one
		shared attachment.

		Parameters:
		  - context: context.Context
		  - viewerID: string
		  - followedIDs: []string

		Returns:
		  - []Book: Hydrated books
		  - error: Storage failures
	*/
	ListVisibleCatalog(context context.Context, viewerID string, followedIDs []string) ([]Book, error)

	/*
		Update rewrites a book's mutable fields.

		Parameters:
		  - context: context.Context
		  - record: *Book

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, record *Book) error

	/*
		Delete removes a book and everything attached to it.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, id string) error
}
