// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review (Postgres) persists reviews and comments.

# Schema Table Mapping

  - catalog.review: One row per reviewed book, bookid unique.
  - catalog.comment: Replies, userid nullable so comments outlive authors.
*/
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/platform/database/schema"
)

// PostgresRepository implements Repository and CommentRepository backed by
// a pgx connection pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed review repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// hydratedSelect joins reviews with their book and the book's owner.
func hydratedSelect() string {
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
		       b.%s, b.%s, b.%s,
		       a.%s
		FROM %s r
		JOIN %s b ON b.%s = r.%s
		JOIN %s a ON a.%s = b.%s`,
		schema.CatalogReview.ID, schema.CatalogReview.BookID, schema.CatalogReview.Text,
		schema.CatalogReview.Shared, schema.CatalogReview.CreatedAt, schema.CatalogReview.UpdatedAt,
		schema.CatalogBook.UserID, schema.CatalogBook.Title, schema.CatalogBook.Author,
		schema.UserAccount.Username,
		schema.CatalogReview.Table,
		schema.CatalogBook.Table, schema.CatalogBook.ID, schema.CatalogReview.BookID,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CatalogBook.UserID,
	)
}

func scanReview(row pgx.Row) (*Review, error) {
	var record Review
	var bookAuthor string

	err := row.Scan(
		&record.ID, &record.BookID, &record.Text,
		&record.Shared, &record.CreatedAt, &record.UpdatedAt,
		&record.OwnerID, &record.BookTitle, &bookAuthor,
		&record.OwnerUsername,
	)
	if err != nil {
		return nil, err
	}

	record.Book = &BookRef{
		ID:     record.BookID,
		Title:  record.BookTitle,
		Author: bookAuthor,
		Owner:  record.OwnerUsername,
	}
	return &record, nil
}

func (r *PostgresRepository) Upsert(context context.Context, record *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s,
		    %s = EXCLUDED.%s,
		    %s = NOW()
		RETURNING %s`,
		schema.CatalogReview.Table,
		schema.CatalogReview.ID, schema.CatalogReview.BookID, schema.CatalogReview.Text, schema.CatalogReview.Shared,
		schema.CatalogReview.BookID,
		schema.CatalogReview.Text, schema.CatalogReview.Text,
		schema.CatalogReview.Shared, schema.CatalogReview.Shared,
		schema.CatalogReview.UpdatedAt,
		schema.CatalogReview.ID,
	)

	err := r.pool.QueryRow(context, query,
		record.ID, record.BookID, record.Text, record.Shared,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("postgres_review_repo_upsert_failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByID(context context.Context, id string) (*Review, error) {
	query := hydratedSelect() + fmt.Sprintf(" WHERE r.%s = $1", schema.CatalogReview.ID)

	record, err := scanReview(r.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, fmt.Errorf("postgres_review_repo_find_by_id_failed: %w", err)
	}
	return record, nil
}

func (r *PostgresRepository) FindByBookID(context context.Context, bookID string) (*Review, error) {
	query := hydratedSelect() + fmt.Sprintf(" WHERE r.%s = $1", schema.CatalogReview.BookID)

	record, err := scanReview(r.pool.QueryRow(context, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, fmt.Errorf("postgres_review_repo_find_by_book_failed: %w", err)
	}
	return record, nil
}

// Delete removes the review and its comments in one transaction.
func (r *PostgresRepository) Delete(context context.Context, id string) error {
	transaction, err := r.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_review_repo_delete_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	deleteComments := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogComment.Table, schema.CatalogComment.ReviewID)
	if _, err := transaction.Exec(context, deleteComments, id); err != nil {
		return fmt.Errorf("postgres_review_repo_delete_comments_failed: %w", err)
	}

	deleteReview := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogReview.Table, schema.CatalogReview.ID)
	if _, err := transaction.Exec(context, deleteReview, id); err != nil {
		return fmt.Errorf("postgres_review_repo_delete_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_review_repo_delete_commit_failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListVisible(context context.Context, viewerID string, followedIDs []string) ([]Review, error) {
	query := hydratedSelect() + fmt.Sprintf(`
		WHERE b.%s = $1 OR (b.%s = ANY($2) AND r.%s = TRUE)
		ORDER BY r.%s DESC`,
		schema.CatalogBook.UserID, schema.CatalogBook.UserID, schema.CatalogReview.Shared,
		schema.CatalogReview.UpdatedAt,
	)

	return r.queryReviews(context, query, viewerID, followedIDs)
}

func (r *PostgresRepository) ListByOwnerUsername(context context.Context, username, viewerID string) ([]Review, error) {
	query := hydratedSelect() + fmt.Sprintf(`
		WHERE a.%s = $1 AND (b.%s = $2 OR r.%s = TRUE)
		ORDER BY r.%s DESC`,
		schema.UserAccount.Username, schema.CatalogBook.UserID, schema.CatalogReview.Shared,
		schema.CatalogReview.UpdatedAt,
	)

	return r.queryReviews(context, query, username, viewerID)
}

func (r *PostgresRepository) queryReviews(context context.Context, query string, args ...any) ([]Review, error) {
	rows, err := r.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_review_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var records []Review
	for rows.Next() {
		record, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_review_repo_list_scan_failed: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_review_repo_list_rows_failed: %w", err)
	}
	return records, nil
}

// commentSelect joins comments with the authoring account. The join is a
// left join so comments from deleted accounts still come back.
func commentSelect() string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, COALESCE(a.%s, ''), c.%s, c.%s
		FROM %s c
		LEFT JOIN %s a ON a.%s = c.%s`,
		schema.CatalogComment.ID, schema.CatalogComment.ReviewID, schema.CatalogComment.UserID,
		schema.UserAccount.Username, schema.CatalogComment.Text, schema.CatalogComment.CreatedAt,
		schema.CatalogComment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CatalogComment.UserID,
	)
}

func scanComment(row pgx.Row) (*Comment, error) {
	var comment Comment
	err := row.Scan(
		&comment.ID, &comment.ReviewID, &comment.UserID,
		&comment.AuthorUsername, &comment.Text, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)`,
		schema.CatalogComment.Table,
		schema.CatalogComment.ID, schema.CatalogComment.ReviewID, schema.CatalogComment.UserID, schema.CatalogComment.Text,
	)

	_, err := r.pool.Exec(context, query,
		comment.ID, comment.ReviewID, comment.UserID, comment.Text,
	)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindCommentByID(context context.Context, id string) (*Comment, error) {
	query := commentSelect() + fmt.Sprintf(" WHERE c.%s = $1", schema.CatalogComment.ID)

	comment, err := scanComment(r.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_by_id_failed: %w", err)
	}
	return comment, nil
}

func (r *PostgresRepository) ListByReviewID(context context.Context, reviewID string) ([]Comment, error) {
	query := commentSelect() + fmt.Sprintf(
		" WHERE c.%s = $1 ORDER BY c.%s ASC",
		schema.CatalogComment.ReviewID, schema.CatalogComment.CreatedAt,
	)

	rows, err := r.pool.Query(context, query, reviewID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_list_scan_failed: %w", err)
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_rows_failed: %w", err)
	}
	return comments, nil
}

func (r *PostgresRepository) DeleteComment(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogComment.Table, schema.CatalogComment.ID)

	if _, err := r.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}
	return nil
}
