// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package progress (Postgres) implements the progress storage layer.

# Schema Table Mapping
  - catalog.readingprogress: Progress rows, one per book.
  - catalog.book: Joined for ownership and page counts.
  - users.account: Joined for owner usernames.
*/
package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for progress records.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// hydratedSelect is the shared SELECT joining progress rows with their book
// and owner. Query placeholders continue from $1.
func hydratedSelect() string {
	return fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
		       b.%s, b.%s, b.%s, b.%s,
		       a.%s
		FROM %s p
		JOIN %s b ON b.%s = p.%s
		JOIN %s a ON a.%s = b.%s`,
		schema.CatalogReadingProgress.ID, schema.CatalogReadingProgress.BookID,
		schema.CatalogReadingProgress.Status, schema.CatalogReadingProgress.CurrentPage,
		schema.CatalogReadingProgress.Shared,
		schema.CatalogReadingProgress.CreatedAt, schema.CatalogReadingProgress.UpdatedAt,
		schema.CatalogBook.UserID, schema.CatalogBook.Title, schema.CatalogBook.Author,
		schema.CatalogBook.TotalPages,
		schema.UserAccount.Username,
		schema.CatalogReadingProgress.Table,
		schema.CatalogBook.Table, schema.CatalogBook.ID, schema.CatalogReadingProgress.BookID,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CatalogBook.UserID,
	)
}

// scanRecord hydrates one row from a hydratedSelect query.
func scanRecord(row pgx.Row) (*Progress, error) {
	record := &Progress{}
	var author string
	err := row.Scan(
		&record.ID, &record.BookID, &record.Status, &record.CurrentPage, &record.Shared,
		&record.CreatedAt, &record.UpdatedAt,
		&record.OwnerID, &record.BookTitle, &author, &record.TotalPages,
		&record.OwnerUsername,
	)
	if err != nil {
		return nil, err
	}

	record.Book = &BookRef{
		ID:     record.BookID,
		Title:  record.BookTitle,
		Author: author,
		Owner:  record.OwnerUsername,
	}
	record.Recalculate()

	return record, nil
}

/*
Upsert writes the progress record for a book in one atomic statement.

Description: The bookid uniqueness makes concurrent first writes collapse
into a single row. The stored row's ID is scanned back into the record.

Parameters:
  - context: context.Context
  - record: *Progress

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, record *Progress) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = NOW()
		RETURNING %s`,
		schema.CatalogReadingProgress.Table,
		schema.CatalogReadingProgress.ID, schema.CatalogReadingProgress.BookID,
		schema.CatalogReadingProgress.Status, schema.CatalogReadingProgress.CurrentPage,
		schema.CatalogReadingProgress.Shared,
		schema.CatalogReadingProgress.BookID,
		schema.CatalogReadingProgress.Status, schema.CatalogReadingProgress.Status,
		schema.CatalogReadingProgress.CurrentPage, schema.CatalogReadingProgress.CurrentPage,
		schema.CatalogReadingProgress.Shared, schema.CatalogReadingProgress.Shared,
		schema.CatalogReadingProgress.UpdatedAt,
		schema.CatalogReadingProgress.ID,
	)

	err := repository.pool.QueryRow(context, query,
		record.ID, record.BookID, record.Status, record.CurrentPage, record.Shared,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("postgres_progress_repo_upsert_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves one hydrated progress record.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Progress: With owner, book reference, and percentage hydrated
  - error: apperr.NotFound or query failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Progress, error) {
	query := hydratedSelect() + fmt.Sprintf(` WHERE p.%s = $1`, schema.CatalogReadingProgress.ID)

	record, err := scanRecord(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Reading progress")
		}
		return nil, fmt.Errorf("postgres_progress_repo_find_failed: %w", err)
	}

	return record, nil
}

/*
FindByBookID retrieves the progress record attached to a book.

Parameters:
  - context: context.Context
  - bookID: string

Returns:
  - *Progress: Hydrated record
  - error: apperr.NotFound or query failures
*/
func (repository *PostgresRepository) FindByBookID(context context.Context, bookID string) (*Progress, error) {
	query := hydratedSelect() + fmt.Sprintf(` WHERE p.%s = $1`, schema.CatalogReadingProgress.BookID)

	record, err := scanRecord(repository.pool.QueryRow(context, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Reading progress")
		}
		return nil, fmt.Errorf("postgres_progress_repo_find_by_book_failed: %w", err)
	}

	return record, nil
}

/*
Delete removes one progress record.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogReadingProgress.Table, schema.CatalogReadingProgress.ID,
	)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_progress_repo_delete_failed: %w", err)
	}

	return nil
}

/*
ListVisible returns mine plus shared-by-followed, newest-first.

Parameters:
  - context: context.Context
  - viewerID: string
  - followedIDs: []string

Returns:
  - []Progress: Hydrated records
  - error: Query failures
*/
func (repository *PostgresRepository) ListVisible(context context.Context, viewerID string, followedIDs []string) ([]Progress, error) {
	query := hydratedSelect() + fmt.Sprintf(`
		WHERE b.%s = $1 OR (b.%s = ANY($2) AND p.%s = TRUE)
		ORDER BY p.%s DESC`,
		schema.CatalogBook.UserID, schema.CatalogBook.UserID,
		schema.CatalogReadingProgress.Shared,
		schema.CatalogReadingProgress.UpdatedAt,
	)

	return repository.queryRecords(context, query, viewerID, followedIDs)
}

/*
ListByOwnerUsername returns one user's records, shared-only for non-owners.

Parameters:
  - context: context.Context
  - username: string
  - viewerID: string

Returns:
  - []Progress: Hydrated records
  - error: Query failures
*/
func (repository *PostgresRepository) ListByOwnerUsername(context context.Context, username, viewerID string) ([]Progress, error) {
	query := hydratedSelect() + fmt.Sprintf(`
		WHERE a.%s = $1 AND (b.%s = $2 OR p.%s = TRUE)
		ORDER BY p.%s DESC`,
		schema.UserAccount.Username, schema.CatalogBook.UserID,
		schema.CatalogReadingProgress.Shared,
		schema.CatalogReadingProgress.UpdatedAt,
	)

	return repository.queryRecords(context, query, username, viewerID)
}

// queryRecords runs a hydrated listing query and scans every row.
func (repository *PostgresRepository) queryRecords(context context.Context, query string, args ...any) ([]Progress, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_progress_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var records []Progress
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}
