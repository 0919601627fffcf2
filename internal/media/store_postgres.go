// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media (Postgres) persists image asset metadata.

# Schema Table Mapping

  - media.imageasset: One row per stored image, with a check constraint
    holding the exactly-one-target rule at the database level too.
*/
package media

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsundoku/internal/platform/database/schema"
	"github.com/taibuivan/tsundoku/internal/platform/dberr"
)

// PostgresRepository implements Repository backed by a pgx connection pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed asset repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(context context.Context, asset *Asset) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.MediaImageAsset.Table,
		schema.MediaImageAsset.ID, schema.MediaImageAsset.BookID, schema.MediaImageAsset.ShelfID,
		schema.MediaImageAsset.FileName, schema.MediaImageAsset.ContentType,
		schema.MediaImageAsset.SizeBytes, schema.MediaImageAsset.URL,
	)

	_, err := r.pool.Exec(context, query,
		asset.ID, asset.BookID, asset.ShelfID,
		asset.Filename, asset.ContentType, asset.SizeBytes, asset.URL,
	)
	if err != nil {
		return fmt.Errorf("postgres_media_repo_create_failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByID(context context.Context, id string) (*Asset, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.MediaImageAsset.ID, schema.MediaImageAsset.BookID, schema.MediaImageAsset.ShelfID,
		schema.MediaImageAsset.FileName, schema.MediaImageAsset.ContentType,
		schema.MediaImageAsset.SizeBytes, schema.MediaImageAsset.URL, schema.MediaImageAsset.CreatedAt,
		schema.MediaImageAsset.Table,
		schema.MediaImageAsset.ID,
	)

	var asset Asset
	err := r.pool.QueryRow(context, query, id).Scan(
		&asset.ID, &asset.BookID, &asset.ShelfID,
		&asset.Filename, &asset.ContentType,
		&asset.SizeBytes, &asset.URL, &asset.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Image", "postgres_media_repo_find_by_id_failed")
	}
	return &asset, nil
}
