// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package settings handles per-user sharing preferences.

Readers decide once, globally, whether the reviews and reading progress they
create should default to being shared with their followers. Individual records
still carry their own shared flag and can be toggled afterwards.

# Architecture

  - Entities: Settings (1:1 with users.account).
  - Defaults: A user without a stored row behaves as if everything is private.
  - Consumers: The review and reading progress services read these defaults
    when creating new records.
*/
package settings

import (
	"context"
	"time"
)

// # Domain Entities

// Settings represents the sharing defaults for a single user.
type Settings struct {
	UserID                  string    `json:"user_id"`
	ShareAllReviews         bool      `json:"share_all_reviews"`
	ShareAllReadingProgress bool      `json:"share_all_reading_progress"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// Defaults returns the implicit settings for a user without a stored row.
// Everything starts private.
func Defaults(userID string) *Settings {
	return &Settings{UserID: userID}
}

// # Repository Contracts

// Repository defines the persistence contract for sharing preferences.
type Repository interface {
	/*
		FindByUserID retrieves the stored settings for a specific user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Settings: Hydrated settings entity
		  - error: apperr.NotFound if the user never saved settings
	*/
	FindByUserID(context context.Context, userID string) (*Settings, error)

	/*
		Upsert saves or updates settings for a user using an idempotent strategy.

		Parameters:
		  - context: context.Context
		  - settings: *Settings

		Returns:
		  - error: Storage failure errors
	*/
	Upsert(context context.Context, settings *Settings) error
}
