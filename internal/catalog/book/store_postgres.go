// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book (Postgres) persists the book catalog.

# Schema Table Mapping

  - catalog.book: One row per owned book, shelfid nullable.
  - Deletes cascade to catalog.review, catalog.readingprogress and
    media.imageasset through foreign keys.
*/
package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/platform/database/schema"
)

// PostgresRepository implements Repository backed by a pgx connection pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed book repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func hydratedSelect() string {
	return fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		       a.%s
		FROM %s b
		JOIN %s a ON a.%s = b.%s`,
		schema.CatalogBook.ID, schema.CatalogBook.UserID, schema.CatalogBook.ShelfID,
		schema.CatalogBook.ISBN, schema.CatalogBook.Title, schema.CatalogBook.Author,
		schema.CatalogBook.TotalPages, schema.CatalogBook.ReleaseYear, schema.CatalogBook.ImageURL,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.UserAccount.Username,
		schema.CatalogBook.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CatalogBook.UserID,
	)
}

func scanBook(row pgx.Row) (*Book, error) {
	var record Book
	err := row.Scan(
		&record.ID, &record.UserID, &record.ShelfID,
		&record.ISBN, &record.Title, &record.Author,
		&record.TotalPages, &record.ReleaseYear, &record.ImageURL,
		&record.CreatedAt, &record.UpdatedAt,
		&record.Owner,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Create(context context.Context, record *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.CatalogBook.Table,
		schema.CatalogBook.ID, schema.CatalogBook.UserID, schema.CatalogBook.ShelfID,
		schema.CatalogBook.ISBN, schema.CatalogBook.Title, schema.CatalogBook.Author,
		schema.CatalogBook.TotalPages, schema.CatalogBook.ReleaseYear, schema.CatalogBook.ImageURL,
	)

	_, err := r.pool.Exec(context, query,
		record.ID, record.UserID, record.ShelfID,
		record.ISBN, record.Title, record.Author,
		record.TotalPages, record.ReleaseYear, record.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("postgres_book_repo_create_failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := hydratedSelect() + fmt.Sprintf(" WHERE b.%s = $1", schema.CatalogBook.ID)

	record, err := scanBook(r.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres_book_repo_find_by_id_failed: %w", err)
	}
	return record, nil
}

func (r *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]Book, error) {
	query := hydratedSelect() + fmt.Sprintf(
		" WHERE b.%s = $1 ORDER BY b.%s DESC",
		schema.CatalogBook.UserID, schema.CatalogBook.CreatedAt,
	)
	return r.queryBooks(context, query, ownerID)
}

func (r *PostgresRepository) ListByOwnerUsername(context context.Context, username string) ([]Book, error) {
	query := hydratedSelect() + fmt.Sprintf(
		" WHERE a.%s = $1 ORDER BY b.%s DESC",
		schema.UserAccount.Username, schema.CatalogBook.CreatedAt,
	)
	return r.queryBooks(context, query, username)
}

func (r *PostgresRepository) ListVisibleCatalog(context context.Context, viewerID string, followedIDs []string) ([]Book, error) {
	query := hydratedSelect() + fmt.Sprintf(`
		WHERE b.%s = $1 OR (
			b.%s = ANY($2) AND (
				EXISTS (SELECT 1 FROM %s r WHERE r.%s = b.%s AND r.%s = TRUE)
				OR EXISTS (SELECT 1 FROM %s p WHERE p.%s = b.%s AND p.%s = TRUE)
			)
		)
		ORDER BY b.%s DESC`,
		schema.CatalogBook.UserID,
		schema.CatalogBook.UserID,
		schema.CatalogReview.Table, schema.CatalogReview.BookID, schema.CatalogBook.ID, schema.CatalogReview.Shared,
		schema.CatalogReadingProgress.Table, schema.CatalogReadingProgress.BookID, schema.CatalogBook.ID, schema.CatalogReadingProgress.Shared,
		schema.CatalogBook.CreatedAt,
	)
	return r.queryBooks(context, query, viewerID, followedIDs)
}

func (r *PostgresRepository) Update(context context.Context, record *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
		    %s = NOW()
		WHERE %s = $1`,
		schema.CatalogBook.Table,
		schema.CatalogBook.ShelfID, schema.CatalogBook.ISBN, schema.CatalogBook.Title,
		schema.CatalogBook.Author, schema.CatalogBook.TotalPages, schema.CatalogBook.ReleaseYear,
		schema.CatalogBook.ImageURL,
		schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID,
	)

	_, err := r.pool.Exec(context, query,
		record.ID, record.ShelfID, record.ISBN, record.Title,
		record.Author, record.TotalPages, record.ReleaseYear, record.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("postgres_book_repo_update_failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogBook.Table, schema.CatalogBook.ID)

	if _, err := r.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_book_repo_delete_failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) queryBooks(context context.Context, query string, args ...any) ([]Book, error) {
	rows, err := r.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_book_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var records []Book
	for rows.Next() {
		record, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_book_repo_list_scan_failed: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_book_repo_list_rows_failed: %w", err)
	}
	return records, nil
}
