// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package gallery

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enniomrk/wendessen-api/internal/moderation"
	"github.com/enniomrk/wendessen-api/internal/platform/dberr"
	"github.com/enniomrk/wendessen-api/pkg/slice"
)

// submissionColumns is the canonical column list for full-row scans.
const submissionColumns = `
	id, submissiongroupid, title, description, submittername, submitteremail,
	imageurl, imagemime, imagefilename, status, reviewedat, reviewedby,
	rejectionreason, submittedat, updatedat
`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed submission store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// scanSubmission hydrates one row in canonical column order.
func scanSubmission(row interface{ Scan(...any) error }, extra ...any) (*Submission, error) {
	submission := &Submission{}
	dest := []any{
		&submission.ID, &submission.SubmissionGroupID, &submission.Title, &submission.Description,
		&submission.SubmitterName, &submission.SubmitterEmail, &submission.ImageURL,
		&submission.ImageMIME, &submission.ImageFilename, &submission.Status,
		&submission.ReviewedAt, &submission.ReviewedBy, &submission.RejectionReason,
		&submission.SubmittedAt, &submission.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return submission, nil
}

// # Submission Retrieval

/*
List returns a filtered and paginated moderation queue.

Description: Uses COUNT(*) OVER() for total metadata in a single round trip.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Submission: Slice of matching submissions, newest first
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Submission, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + submissionColumns + `,
			COUNT(*) OVER() as total
		FROM content.gallerysubmission
		WHERE 1=1
	`)

	args := []any{}
	argID := 1

	if len(filter.Status) > 0 {
		statuses := slice.Map(filter.Status, func(status moderation.Status) string { return string(status) })
		queryBuilder.WriteString(fmt.Sprintf(" AND status = ANY($%d)", argID))
		args = append(args, statuses)
		argID++
	}

	if filter.GroupID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND submissiongroupid = $%d", argID))
		args = append(args, filter.GroupID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY submittedat DESC, id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_submissions")
	}
	defer rows.Close()

	var submissions []*Submission
	var total int
	for rows.Next() {
		submission, err := scanSubmission(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_submission")
		}
		submissions = append(submissions, submission)
	}

	return submissions, total, nil
}

/*
ListApproved returns the paginated public page of approved photos.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Submission: Approved photos, newest first
  - int: Total approved count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListApproved(context context.Context, limit, offset int) ([]*Submission, int, error) {
	return repository.List(context, Filter{Status: []moderation.Status{moderation.StatusApproved}}, limit, offset)
}

/*
ListByGroup retrieves every member of one submission group.

Parameters:
  - context: context.Context
  - groupID: string

Returns:
  - []*Submission: All members in submission order
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByGroup(context context.Context, groupID string) ([]*Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM content.gallerysubmission
		WHERE submissiongroupid = $1
		ORDER BY submittedat ASC, id ASC
	`
	rows, err := repository.db.Query(context, query, groupID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_group_submissions")
	}
	defer rows.Close()

	var submissions []*Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_submission")
		}
		submissions = append(submissions, submission)
	}

	return submissions, nil
}

/*
FindByID retrieves a single submission by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Submission: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM content.gallerysubmission
		WHERE id = $1
	`
	submission, err := scanSubmission(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_submission_by_id")
	}
	return submission, nil
}

// # Submission Mutation

/*
CreateBatch inserts all rows of one submission group atomically.

Description: Wraps the inserts in a transaction so that a public upload is
never half-stored.

Parameters:
  - context: context.Context
  - submissions: []*Submission

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) CreateBatch(context context.Context, submissions []*Submission) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_submission_batch")
	}
	defer transaction.Rollback(context)

	const query = `
		INSERT INTO content.gallerysubmission (
			id, submissiongroupid, title, description, submittername, submitteremail,
			imageurl, imagemime, imagefilename, status, submittedat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, submission := range submissions {
		_, err := transaction.Exec(context, query,
			submission.ID, submission.SubmissionGroupID, submission.Title, submission.Description,
			submission.SubmitterName, submission.SubmitterEmail, submission.ImageURL,
			submission.ImageMIME, submission.ImageFilename, submission.Status,
			submission.SubmittedAt, submission.UpdatedAt,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_submission")
		}
	}

	return transaction.Commit(context)
}

/*
ApplyReview writes a review verdict to one submission unconditionally.

Parameters:
  - context: context.Context
  - id: string
  - review: moderation.Review

Returns:
  - *Submission: The updated row
  - error: apperr.NotFound when the id matches no row
*/
func (repository *PostgresRepository) ApplyReview(context context.Context, id string, review moderation.Review) (*Submission, error) {
	query := `
		UPDATE content.gallerysubmission
		SET status = $2, reviewedat = $3, reviewedby = $4, rejectionreason = $5, updatedat = NOW()
		WHERE id = $1
		RETURNING ` + submissionColumns

	submission, err := scanSubmission(repository.db.QueryRow(context, query,
		id, review.Status, review.ReviewedAt, review.ReviewedBy, review.RejectionReason,
	))
	if err != nil {
		return nil, dberr.Wrap(err, "apply_review")
	}
	return submission, nil
}

/*
ApplyReviewToGroup writes a review verdict to the eligible members of a group.

Description: Eligibility mirrors [moderation.Review.Applies] in SQL — a review
toward pending only touches reviewed rows, any other review only touches
pending rows. Already-settled members are left untouched.

Parameters:
  - context: context.Context
  - groupID: string
  - review: moderation.Review

Returns:
  - int: Number of rows changed
  - error: Persistence failures
*/
func (repository *PostgresRepository) ApplyReviewToGroup(context context.Context, groupID string, review moderation.Review) (int, error) {
	query := `
		UPDATE content.gallerysubmission
		SET status = $2, reviewedat = $3, reviewedby = $4, rejectionreason = $5, updatedat = NOW()
		WHERE submissiongroupid = $1 AND ` + eligibilityClause(review)

	result, err := repository.db.Exec(context, query,
		groupID, review.Status, review.ReviewedAt, review.ReviewedBy, review.RejectionReason,
	)
	if err != nil {
		return 0, dberr.Wrap(err, "apply_group_review")
	}
	return int(result.RowsAffected()), nil
}

/*
ApplyReviewToIDs writes a review verdict to the eligible rows of an id list.

Description: Ids that match no row or whose current status makes them
ineligible are skipped without error.

Parameters:
  - context: context.Context
  - ids: []string
  - review: moderation.Review

Returns:
  - int: Number of rows changed
  - error: Persistence failures
*/
func (repository *PostgresRepository) ApplyReviewToIDs(context context.Context, ids []string, review moderation.Review) (int, error) {
	query := `
		UPDATE content.gallerysubmission
		SET status = $2, reviewedat = $3, reviewedby = $4, rejectionreason = $5, updatedat = NOW()
		WHERE id = ANY($1) AND ` + eligibilityClause(review)

	result, err := repository.db.Exec(context, query,
		ids, review.Status, review.ReviewedAt, review.ReviewedBy, review.RejectionReason,
	)
	if err != nil {
		return 0, dberr.Wrap(err, "apply_selected_review")
	}
	return int(result.RowsAffected()), nil
}

/*
Delete hard-deletes one submission.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - bool: Whether a row was removed
  - error: Persistence failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) (bool, error) {
	const query = `DELETE FROM content.gallerysubmission WHERE id = $1`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_submission")
	}
	return result.RowsAffected() > 0, nil
}

/*
DeleteGroup hard-deletes every member of a submission group.

Parameters:
  - context: context.Context
  - groupID: string

Returns:
  - int: Number of rows removed
  - error: Persistence failures
*/
func (repository *PostgresRepository) DeleteGroup(context context.Context, groupID string) (int, error) {
	const query = `DELETE FROM content.gallerysubmission WHERE submissiongroupid = $1`
	result, err := repository.db.Exec(context, query, groupID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_submission_group")
	}
	return int(result.RowsAffected()), nil
}

// eligibilityClause translates the bulk-review policy into a status predicate.
func eligibilityClause(review moderation.Review) string {
	if review.Status == moderation.StatusPending {
		return "status <> 'pending'"
	}
	return "status = 'pending'"
}
