// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package portrait

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enniomrk/wendessen-api/internal/moderation"
	"github.com/enniomrk/wendessen-api/internal/platform/dberr"
	"github.com/enniomrk/wendessen-api/pkg/slice"
)

// portraitColumns is the canonical column list for full-row scans.
const portraitColumns = `
	id, name, quote, submittername, submitteremail, imageurl, imagemime,
	imagefilename, status, reviewedat, reviewedby, rejectionreason,
	submittedat, updatedat
`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed portrait store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// scanPortrait hydrates one row in canonical column order.
func scanPortrait(row interface{ Scan(...any) error }, extra ...any) (*Portrait, error) {
	portrait := &Portrait{}
	dest := []any{
		&portrait.ID, &portrait.Name, &portrait.Quote, &portrait.SubmitterName,
		&portrait.SubmitterEmail, &portrait.ImageURL, &portrait.ImageMIME,
		&portrait.ImageFilename, &portrait.Status, &portrait.ReviewedAt,
		&portrait.ReviewedBy, &portrait.RejectionReason,
		&portrait.SubmittedAt, &portrait.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return portrait, nil
}

// # Retrieval

/*
List returns a filtered and paginated review queue.

Parameters:
  - context: context.Context
  - status: []moderation.Status
  - limit: int
  - offset: int

Returns:
  - []*Portrait: Matching portraits, newest first
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, status []moderation.Status, limit, offset int) ([]*Portrait, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + portraitColumns + `,
			COUNT(*) OVER() as total
		FROM content.portrait
		WHERE 1=1
	`)

	args := []any{}
	argID := 1

	if len(status) > 0 {
		statuses := slice.Map(status, func(entry moderation.Status) string { return string(entry) })
		queryBuilder.WriteString(fmt.Sprintf(" AND status = ANY($%d)", argID))
		args = append(args, statuses)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY submittedat DESC, id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_portraits")
	}
	defer rows.Close()

	var portraits []*Portrait
	var total int
	for rows.Next() {
		portrait, err := scanPortrait(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_portrait")
		}
		portraits = append(portraits, portrait)
	}

	return portraits, total, nil
}

/*
ListApproved returns the paginated public page of approved portraits.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Portrait: Approved portraits, newest first
  - int: Total approved count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListApproved(context context.Context, limit, offset int) ([]*Portrait, int, error) {
	return repository.List(context, []moderation.Status{moderation.StatusApproved}, limit, offset)
}

/*
FindByID retrieves a single portrait by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Portrait: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Portrait, error) {
	query := `
		SELECT ` + portraitColumns + `
		FROM content.portrait
		WHERE id = $1
	`
	portrait, err := scanPortrait(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_portrait_by_id")
	}
	return portrait, nil
}

// # Mutation

/*
Create inserts a new pending portrait.

Parameters:
  - context: context.Context
  - portrait: *Portrait

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, portrait *Portrait) error {
	const query = `
		INSERT INTO content.portrait (
			id, name, quote, submittername, submitteremail, imageurl, imagemime,
			imagefilename, status, submittedat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := repository.db.Exec(context, query,
		portrait.ID, portrait.Name, portrait.Quote, portrait.SubmitterName,
		portrait.SubmitterEmail, portrait.ImageURL, portrait.ImageMIME,
		portrait.ImageFilename, portrait.Status, portrait.SubmittedAt, portrait.UpdatedAt,
	)
	return dberr.Wrap(err, "create_portrait")
}

/*
ApplyReview writes a review verdict to one portrait unconditionally.

Parameters:
  - context: context.Context
  - id: string
  - review: moderation.Review

Returns:
  - *Portrait: The updated row
  - error: apperr.NotFound when the id matches no row
*/
func (repository *PostgresRepository) ApplyReview(context context.Context, id string, review moderation.Review) (*Portrait, error) {
	query := `
		UPDATE content.portrait
		SET status = $2, reviewedat = $3, reviewedby = $4, rejectionreason = $5, updatedat = NOW()
		WHERE id = $1
		RETURNING ` + portraitColumns

	portrait, err := scanPortrait(repository.db.QueryRow(context, query,
		id, review.Status, review.ReviewedAt, review.ReviewedBy, review.RejectionReason,
	))
	if err != nil {
		return nil, dberr.Wrap(err, "apply_portrait_review")
	}
	return portrait, nil
}

/*
ApplyReviewToIDs writes a review verdict to the eligible rows of an id list.

Description: Eligibility mirrors [moderation.Review.Applies] in SQL — a
review toward pending only touches reviewed rows, any other review only
touches pending rows.

Parameters:
  - context: context.Context
  - ids: []string
  - review: moderation.Review

Returns:
  - int: Number of rows changed
  - error: Persistence failures
*/
func (repository *PostgresRepository) ApplyReviewToIDs(context context.Context, ids []string, review moderation.Review) (int, error) {
	eligibility := "status = 'pending'"
	if review.Status == moderation.StatusPending {
		eligibility = "status <> 'pending'"
	}

	query := `
		UPDATE content.portrait
		SET status = $2, reviewedat = $3, reviewedby = $4, rejectionreason = $5, updatedat = NOW()
		WHERE id = ANY($1) AND ` + eligibility

	result, err := repository.db.Exec(context, query,
		ids, review.Status, review.ReviewedAt, review.ReviewedBy, review.RejectionReason,
	)
	if err != nil {
		return 0, dberr.Wrap(err, "apply_portrait_selected_review")
	}
	return int(result.RowsAffected()), nil
}

/*
Delete hard-deletes one portrait.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - bool: Whether a row was removed
  - error: Persistence failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) (bool, error) {
	const query = `DELETE FROM content.portrait WHERE id = $1`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_portrait")
	}
	return result.RowsAffected() > 0, nil
}
