// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"context"
	"net/http"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
)

// # Service Definition

// Service orchestrates sharing preference reads and writes.
type Service struct {
	repository Repository
}

// NewService creates a new settings [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Service Operations

/*
Get returns the sharing defaults for a user.

Description: Users never have to save settings before using the app. When no
row exists the private-by-default settings are returned instead of an error.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Settings: Stored or implicit settings
  - error: Storage failures other than absence
*/
func (service *Service) Get(context context.Context, userID string) (*Settings, error) {
	stored, err := service.repository.FindByUserID(context, userID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == http.StatusNotFound {
			return Defaults(userID), nil
		}
		return nil, err
	}
	return stored, nil
}

// UpdateInput carries the full replacement state of a user's sharing defaults.
type UpdateInput struct {
	ShareAllReviews         bool
	ShareAllReadingProgress bool
}

/*
Update replaces the sharing defaults for a user.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateInput

Returns:
  - *Settings: The stored state after the write
  - error: Storage failures
*/
func (service *Service) Update(context context.Context, userID string, input UpdateInput) (*Settings, error) {
	updated := &Settings{
		UserID:                  userID,
		ShareAllReviews:         input.ShareAllReviews,
		ShareAllReadingProgress: input.ShareAllReadingProgress,
	}

	if err := service.repository.Upsert(context, updated); err != nil {
		return nil, err
	}

	return service.Get(context, userID)
}
