// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for sharing preferences.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByUserID retrieves the stored sharing defaults for a specific user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Settings: Hydrated settings entity
  - error: apperr.NotFound if no row exists
*/
func (repository *PostgresRepository) FindByUserID(context context.Context, userID string) (*Settings, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserSettings.UserID, schema.UserSettings.ShareAllReviews,
		schema.UserSettings.ShareAllReadingProgress, schema.UserSettings.UpdatedAt,
		schema.UserSettings.Table,
		schema.UserSettings.UserID,
	)

	stored := &Settings{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&stored.UserID,
		&stored.ShareAllReviews,
		&stored.ShareAllReadingProgress,
		&stored.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Settings")
		}
		return nil, fmt.Errorf("postgres_settings_repo_find_failed: %w", err)
	}

	return stored, nil
}

/*
Upsert saves a user's sharing defaults using an ON CONFLICT UPDATE strategy.

Parameters:
  - context: context.Context
  - settings: *Settings

Returns:
  - error: Synchronization failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, settings *Settings) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s`,
		schema.UserSettings.Table,
		schema.UserSettings.UserID, schema.UserSettings.ShareAllReviews,
		schema.UserSettings.ShareAllReadingProgress, schema.UserSettings.UpdatedAt,
		schema.UserSettings.UserID,
		schema.UserSettings.ShareAllReviews, schema.UserSettings.ShareAllReviews,
		schema.UserSettings.ShareAllReadingProgress, schema.UserSettings.ShareAllReadingProgress,
		schema.UserSettings.UpdatedAt, schema.UserSettings.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		settings.UserID,
		settings.ShareAllReviews,
		settings.ShareAllReadingProgress,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("postgres_settings_repo_upsert_failed: %w", err)
	}

	return nil
}
