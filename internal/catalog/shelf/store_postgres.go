// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package shelf (Postgres) implements the shelf storage layer.

# Schema Table Mapping
  - catalog.shelf: Shelf rows.
  - catalog.book: Touched only on delete, to clear shelf references.
*/
package shelf

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

// NewPostgresRepository creates a new Postgres implementation for shelves.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new shelf row.

Parameters:
  - context: context.Context
  - shelf: *Shelf

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Create(context context.Context, shelf *Shelf) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.CatalogShelf.Table,
		schema.CatalogShelf.ID, schema.CatalogShelf.UserID, schema.CatalogShelf.Title,
		schema.CatalogShelf.Description, schema.CatalogShelf.ImageURL,
	)

	_, err := repository.pool.Exec(context, query,
		shelf.ID, shelf.UserID, shelf.Title, shelf.Description, shelf.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("postgres_shelf_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a single shelf row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Shelf: Hydrated entity
  - error: apperr.NotFound or query failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Shelf, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CatalogShelf.ID, schema.CatalogShelf.UserID, schema.CatalogShelf.Title,
		schema.CatalogShelf.Description, schema.CatalogShelf.ImageURL,
		schema.CatalogShelf.CreatedAt, schema.CatalogShelf.UpdatedAt,
		schema.CatalogShelf.Table,
		schema.CatalogShelf.ID,
	)

	found := &Shelf{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&found.ID, &found.UserID, &found.Title, &found.Description,
		&found.ImageURL, &found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Shelf")
		}
		return nil, fmt.Errorf("postgres_shelf_repo_find_failed: %w", err)
	}

	return found, nil
}

/*
ListByOwner returns every shelf owned by one user, ordered by title.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - []Shelf: Possibly empty
  - error: Query failures
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]Shelf, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC`,
		schema.CatalogShelf.ID, schema.CatalogShelf.UserID, schema.CatalogShelf.Title,
		schema.CatalogShelf.Description, schema.CatalogShelf.ImageURL,
		schema.CatalogShelf.CreatedAt, schema.CatalogShelf.UpdatedAt,
		schema.CatalogShelf.Table,
		schema.CatalogShelf.UserID,
		schema.CatalogShelf.Title,
	)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_shelf_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var shelves []Shelf
	for rows.Next() {
		var item Shelf
		err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Description,
			&item.ImageURL, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		shelves = append(shelves, item)
	}

	return shelves, rows.Err()
}

/*
Update replaces the mutable fields of a shelf.

Parameters:
  - context: context.Context
  - shelf: *Shelf

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Update(context context.Context, shelf *Shelf) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1`,
		schema.CatalogShelf.Table,
		schema.CatalogShelf.Title, schema.CatalogShelf.Description,
		schema.CatalogShelf.ImageURL, schema.CatalogShelf.UpdatedAt,
		schema.CatalogShelf.ID,
	)

	_, err := repository.pool.Exec(context, query,
		shelf.ID, shelf.Title, shelf.Description, shelf.ImageURL, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("postgres_shelf_repo_update_failed: %w", err)
	}

	return nil
}

/*
Delete removes a shelf and unshelves its books in one transaction.

Description: Books referencing the shelf get a NULL shelf reference and
stay fully retrievable by their owner.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Transaction failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_shelf_repo_delete_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	unshelve := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		schema.CatalogBook.Table, schema.CatalogBook.ShelfID, schema.CatalogBook.ShelfID,
	)
	if _, err := transaction.Exec(context, unshelve, id); err != nil {
		return fmt.Errorf("postgres_shelf_repo_unshelve_failed: %w", err)
	}

	remove := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogShelf.Table, schema.CatalogShelf.ID,
	)
	if _, err := transaction.Exec(context, remove, id); err != nil {
		return fmt.Errorf("postgres_shelf_repo_delete_failed: %w", err)
	}

	return transaction.Commit(context)
}
