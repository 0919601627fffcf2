// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package shelf manages a reader's personal book shelves.

Shelves are strictly private: they are created, listed, and modified by their
owner alone, and no sharing flag exists on them. Deleting a shelf never
deletes the books on it. The books survive with their shelf reference
cleared.

# Architecture

  - Entities: Shelf.
  - Ownership: Every operation resolves the shelf and compares owners before
    touching anything. A foreign shelf reads as absent, not forbidden.
*/
package shelf

import (
	"context"
	"time"
)

// # Domain Entities

// Shelf is a named grouping of one reader's books.
type Shelf struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Field identifiers for validation messages.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
)

// # Repository Contracts

// Repository defines the persistence contract for shelves.
type Repository interface {
	/*
		Create persists a new shelf.

		Parameters:
		  - context: context.Context
		  - shelf: *Shelf

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, shelf *Shelf) error

	/*
		FindByID retrieves a shelf by its ID, regardless of owner.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Shelf: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Shelf, error)

	/*
		ListByOwner returns every shelf belonging to one user.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - []Shelf: Ordered by title
		  - error: Storage failures
	*/
	ListByOwner(context context.Context, ownerID string) ([]Shelf, error)

	/*
		Update replaces the mutable fields of a shelf.

		Parameters:
		  - context: context.Context
		  - shelf: *Shelf

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, shelf *Shelf) error

	/*
		Delete removes a shelf and clears the shelf reference of every book
		on it, atomically. The books themselves are untouched.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, id string) error
}
