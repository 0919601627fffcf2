// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
)

/*
Wrap inspects a database error and classifies it for a named resource.

Description: Row absence becomes a client-safe NotFound and a unique
constraint violation becomes a Conflict, both hiding storage details.
Anything else keeps the operation tag so the log line stays greppable.

Parameters:
  - err: error (May be nil)
  - resource: string (Client-facing resource name, e.g. "User")
  - operation: string (snake_case tag for the wrapped error)

Returns:
  - error: nil, an [apperr.AppError], or the tagged original
*/
func Wrap(err error, resource, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict(resource + " already exists")
	}

	return fmt.Errorf("%s: %w", operation, err)
}
