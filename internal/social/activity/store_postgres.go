// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package activity (Postgres) implements the event log storage layer.

# Schema Table Mapping
  - social.activity: Append-only event rows, indexed by actor and timestamp.
*/
package activity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsundoku/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation of the event log.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Insert appends one activity row.

Parameters:
  - context: context.Context
  - entry: *Activity

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Insert(context context.Context, entry *Activity) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.SocialActivity.Table,
		schema.SocialActivity.ID, schema.SocialActivity.UserID, schema.SocialActivity.BookID,
		schema.SocialActivity.ReviewID, schema.SocialActivity.CommentID,
		schema.SocialActivity.ReadingProgressID,
		schema.SocialActivity.Kind, schema.SocialActivity.Text, schema.SocialActivity.Backlink,
		schema.SocialActivity.CreatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		entry.ID,
		entry.UserID,
		entry.BookID,
		entry.ReviewID,
		entry.CommentID,
		entry.ReadingProgressID,
		entry.Kind,
		entry.Text,
		entry.Backlink,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_activity_repo_insert_failed: %w", err)
	}

	return nil
}

/*
ListByActors returns the newest rows for a set of actors, newest-first.

Parameters:
  - context: context.Context
  - actorIDs: []string
  - limit: int

Returns:
  - []Activity: At most limit rows
  - error: Query failures
*/
func (repository *PostgresRepository) ListByActors(context context.Context, actorIDs []string, limit int) ([]Activity, error) {
	if len(actorIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s DESC
		LIMIT $2`,
		schema.SocialActivity.ID, schema.SocialActivity.UserID, schema.SocialActivity.BookID,
		schema.SocialActivity.ReviewID, schema.SocialActivity.CommentID,
		schema.SocialActivity.ReadingProgressID,
		schema.SocialActivity.Kind, schema.SocialActivity.Text, schema.SocialActivity.Backlink,
		schema.SocialActivity.CreatedAt,
		schema.SocialActivity.Table,
		schema.SocialActivity.UserID,
		schema.SocialActivity.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, actorIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_activity_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var entries []Activity
	for rows.Next() {
		var entry Activity
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.BookID,
			&entry.ReviewID,
			&entry.CommentID,
			&entry.ReadingProgressID,
			&entry.Kind,
			&entry.Text,
			&entry.Backlink,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
