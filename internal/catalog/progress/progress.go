// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package progress tracks how far a reader is through each book.

Every book has at most one progress record, written only by the book's
owner. The record carries its own shared flag: followers of the owner see
shared records in their listings, and anyone may look up a shared record
through a username filter, but a private record is visible to the owner
alone.

# Architecture

  - Entities: Progress (1:1 with a book), BookRef (embedded book summary).
  - Ownership: Transitive. The owner of a progress record is the owner of
    its book.
  - Percentage: Derived, never stored. Zero when the book has no page count,
    deliberately unclamped above 100 when a reader logs past the last page.
*/
package progress

import (
	"context"
	"time"
)

// # Reading Status

const (
	StatusWantToRead      = "want_to_read"
	StatusIsReading       = "is_reading"
	StatusFinishedReading = "finished_reading"
	StatusNotToFinish     = "not_to_finish"
)

// Statuses lists every accepted reading status.
var Statuses = []string{StatusWantToRead, StatusIsReading, StatusFinishedReading, StatusNotToFinish}

// Field identifiers for validation messages.
const (
	FieldBookID      = "book_id"
	FieldStatus      = "status"
	FieldCurrentPage = "current_page"
)

// # Domain Entities

// BookRef is the compact book summary embedded in progress listings.
type BookRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Owner  string `json:"owner"`
}

// Progress is one reader's position in one book.
type Progress struct {
	ID                string    `json:"id"`
	BookID            string    `json:"book_id"`
	Status            string    `json:"status"`
	CurrentPage       int       `json:"current_page"`
	Shared            bool      `json:"shared"`
	ReadingPercentage float64   `json:"reading_percentage"`
	Book              *BookRef  `json:"book,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Hydrated from the book join, never serialized.
	OwnerID       string `json:"-"`
	OwnerUsername string `json:"-"`
	BookTitle     string `json:"-"`
	TotalPages    *int   `json:"-"`
}

// Recalculate refreshes the derived percentage from the hydrated page count.
func (p *Progress) Recalculate() {
	p.ReadingPercentage = Percentage(p.CurrentPage, p.TotalPages)
}

// Percentage computes how far through a book a reader is.
//
// A nil or zero page count yields 0 rather than dividing by zero. The result
// is not clamped: logging past the last page reads over 100.
func Percentage(currentPage int, totalPages *int) float64 {
	if totalPages == nil || *totalPages == 0 {
		return 0
	}
	return float64(currentPage) / float64(*totalPages) * 100
}

// # Repository Contracts

// Repository defines the persistence contract for progress records.
type Repository interface {
	/*
		Upsert writes the progress record for a book, creating or replacing
		in one atomic statement keyed on the book's uniqueness.

		Parameters:
		  - context: context.Context
		  - record: *Progress (ID is filled in from the stored row)

		Returns:
		  - error: Storage failures
	*/
	Upsert(context context.Context, record *Progress) error

	/*
		FindByID retrieves one hydrated progress record.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Progress: With owner and book reference hydrated
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Progress, error)

	/*
		FindByBookID retrieves the progress record attached to a book.

		Parameters:
		  - context: context.Context
		  - bookID: string

		Returns:
		  - *Progress: With owner and book reference hydrated
		  - error: apperr.NotFound or storage failures
	*/
	FindByBookID(context context.Context, bookID string) (*Progress, error)

	/*
		Delete removes a progress record.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, id string) error

	/*
		ListVisible returns the viewer's own records plus shared records of
		the followed owners, newest-first.

		Parameters:
		  - context: context.Context
		  - viewerID: string
		  - followedIDs: []string

		Returns:
		  - []Progress: Hydrated records
		  - error: Storage failures
	*/
	ListVisible(context context.Context, viewerID string, followedIDs []string) ([]Progress, error)

	/*
		ListByOwnerUsername returns one user's records as seen by a viewer.

		Description: The username filter bypasses the follow graph entirely,
		but non-owners still only receive shared records.

		Parameters:
		  - context: context.Context
		  - username: string
		  - viewerID: string

		Returns:
		  - []Progress: Hydrated records
		  - error: Storage failures
	*/
	ListByOwnerUsername(context context.Context, username, viewerID string) ([]Progress, error)
}

// BookInfo is the slice of book state the write path needs.
type BookInfo struct {
	ID            string
	OwnerID       string
	OwnerUsername string
	Title         string
	TotalPages    *int
}

// BookSource resolves book ownership for write validation. Satisfied by the
// book storage layer.
type BookSource interface {
	Info(context context.Context, bookID string) (*BookInfo, error)
}
