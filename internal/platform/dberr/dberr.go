// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

// Package dberr maps low-level pgx errors onto application errors so that
// the moderation stores never leak SQLSTATE details to handlers.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

// Wrap classifies a database error into an [apperr.AppError]. The action
// label names the failed query and is carried only on internal errors, so
// clients see a generic message while logs keep the query context.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Resource")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("The record already exists")
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
