// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package follow (Postgres) implements the follow graph storage layer.

# Schema Table Mapping
  - social.following: One row per directed (follower, followed) edge.
  - users.account: Joined for directory listings.
*/
package follow

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

// NewPostgresRepository creates a new Postgres implementation of the follow graph.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Upsert adds a follow edge, relying on the composite primary key for idempotency.

Description: ON CONFLICT DO NOTHING makes the write atomic under concurrent
first-follow races. Losing the race is success, not an error.

Parameters:
  - context: context.Context
  - followerID: string
  - followedID: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, followerID, followedID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO NOTHING`,
		schema.SocialFollowing.Table,
		schema.SocialFollowing.FollowerID, schema.SocialFollowing.FollowedID,
		schema.SocialFollowing.FollowerID, schema.SocialFollowing.FollowedID,
	)

	if _, err := repository.pool.Exec(context, query, followerID, followedID); err != nil {
		return fmt.Errorf("postgres_follow_repo_upsert_failed: %w", err)
	}

	return nil
}

/*
Delete removes a follow edge. Deleting an absent edge succeeds silently.

Parameters:
  - context: context.Context
  - followerID: string
  - followedID: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, followerID, followedID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialFollowing.Table,
		schema.SocialFollowing.FollowerID, schema.SocialFollowing.FollowedID,
	)

	if _, err := repository.pool.Exec(context, query, followerID, followedID); err != nil {
		return fmt.Errorf("postgres_follow_repo_delete_failed: %w", err)
	}

	return nil
}

/*
Exists reports whether the directed edge is present.

Parameters:
  - context: context.Context
  - followerID: string
  - followedID: string

Returns:
  - bool: True if followerID follows followedID
  - error: Query failures
*/
func (repository *PostgresRepository) Exists(context context.Context, followerID, followedID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialFollowing.Table,
		schema.SocialFollowing.FollowerID, schema.SocialFollowing.FollowedID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, followerID, followedID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_follow_repo_exists_failed: %w", err)
	}

	return exists, nil
}

/*
FollowedIDs returns the raw ID set of everyone userID follows.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []string: Followed user IDs
  - error: Query failures
*/
func (repository *PostgresRepository) FollowedIDs(context context.Context, userID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.SocialFollowing.FollowedID, schema.SocialFollowing.Table,
		schema.SocialFollowing.FollowerID,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_follow_repo_followed_ids_failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

/*
ListFollowing returns directory entries for everyone userID follows.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Person: Followed users ordered by username
  - error: Query failures
*/
func (repository *PostgresRepository) ListFollowing(context context.Context, userID string) ([]Person, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s
		FROM %s f
		JOIN %s a ON a.%s = f.%s
		WHERE f.%s = $1 AND a.%s IS NULL
		ORDER BY a.%s ASC`,
		schema.UserAccount.ID, schema.UserAccount.Username,
		schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL,
		schema.SocialFollowing.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialFollowing.FollowedID,
		schema.SocialFollowing.FollowerID, schema.UserAccount.DeletedAt,
		schema.UserAccount.Username,
	)

	return repository.queryPeople(context, query, userID)
}

/*
ListFollowers returns directory entries for everyone following userID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Person: Followers ordered by username
  - error: Query failures
*/
func (repository *PostgresRepository) ListFollowers(context context.Context, userID string) ([]Person, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s
		FROM %s f
		JOIN %s a ON a.%s = f.%s
		WHERE f.%s = $1 AND a.%s IS NULL
		ORDER BY a.%s ASC`,
		schema.UserAccount.ID, schema.UserAccount.Username,
		schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL,
		schema.SocialFollowing.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialFollowing.FollowerID,
		schema.SocialFollowing.FollowedID, schema.UserAccount.DeletedAt,
		schema.UserAccount.Username,
	)

	return repository.queryPeople(context, query, userID)
}

// queryPeople runs a directory query and hydrates the result rows.
func (repository *PostgresRepository) queryPeople(context context.Context, query, userID string) ([]Person, error) {
	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_follow_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var people []Person
	for rows.Next() {
		var person Person
		if err := rows.Scan(&person.ID, &person.Username, &person.DisplayName, &person.AvatarURL); err != nil {
			return nil, err
		}
		people = append(people, person)
	}

	return people, rows.Err()
}
