// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"context"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/pkg/uuidv7"
)

// # Service Definition

// Service orchestrates shelf CRUD with ownership checks.
type Service struct {
	repository Repository
}

// NewService creates a new shelf [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the data for a new shelf.
type CreateInput struct {
	Title       string
	Description string
	ImageURL    string
}

// UpdateInput holds the replacement state for an existing shelf.
type UpdateInput struct {
	Title       string
	Description string
	ImageURL    string
}

// # Service Operations

/*
Create adds a new shelf owned by the caller.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: CreateInput

Returns:
  - *Shelf: The created entity
  - error: Storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Shelf, error) {
	created := &Shelf{
		ID:          uuidv7.New(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}

	if err := service.repository.Create(context, created); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, created.ID)
}

/*
Get retrieves one of the caller's shelves.

Description: A shelf owned by someone else reads as absent. Shelves carry no
sharing flag, so no other user can ever see them.

Parameters:
  - context: context.Context
  - viewerID: string
  - shelfID: string

Returns:
  - *Shelf: Hydrated entity
  - error: apperr.NotFound for absent or foreign shelves
*/
func (service *Service) Get(context context.Context, viewerID, shelfID string) (*Shelf, error) {
	return service.findOwned(context, viewerID, shelfID)
}

/*
List returns every shelf owned by the caller.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - []Shelf: Ordered by title, possibly empty
  - error: Storage failures
*/
func (service *Service) List(context context.Context, ownerID string) ([]Shelf, error) {
	shelves, err := service.repository.ListByOwner(context, ownerID)
	if err != nil {
		return nil, err
	}

	if shelves == nil {
		shelves = []Shelf{}
	}

	return shelves, nil
}

/*
Update replaces the mutable fields of one of the caller's shelves.

Parameters:
  - context: context.Context
  - ownerID: string
  - shelfID: string
  - input: UpdateInput

Returns:
  - *Shelf: The state after the write
  - error: apperr.NotFound for absent or foreign shelves, or storage failures
*/
func (service *Service) Update(context context.Context, ownerID, shelfID string, input UpdateInput) (*Shelf, error) {
	existing, err := service.findOwned(context, ownerID, shelfID)
	if err != nil {
		return nil, err
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.ImageURL = input.ImageURL

	if err := service.repository.Update(context, existing); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, shelfID)
}

/*
Delete removes one of the caller's shelves and unshelves its books.

Parameters:
  - context: context.Context
  - ownerID: string
  - shelfID: string

Returns:
  - error: apperr.NotFound for absent or foreign shelves, or storage failures
*/
func (service *Service) Delete(context context.Context, ownerID, shelfID string) error {
	if _, err := service.findOwned(context, ownerID, shelfID); err != nil {
		return err
	}

	return service.repository.Delete(context, shelfID)
}

// findOwned fetches a shelf and hides it behind NotFound when the viewer is
// not the owner.
func (service *Service) findOwned(context context.Context, viewerID, shelfID string) (*Shelf, error) {
	existing, err := service.repository.FindByID(context, shelfID)
	if err != nil {
		return nil, err
	}

	if existing.UserID != viewerID {
		return nil, apperr.NotFound("Shelf")
	}

	return existing, nil
}
