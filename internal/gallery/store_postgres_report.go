// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package gallery

import (
	"context"
	"fmt"
	"strings"

	"github.com/enniomrk/wendessen-api/internal/platform/dberr"
)

// reportColumns is the canonical column list for report scans.
const reportColumns = `
	id, submissionid, reason, reporterinfo, status, reviewedat, reviewedby,
	createdat, updatedat
`

// scanReport hydrates one report row in canonical column order.
func scanReport(row interface{ Scan(...any) error }, extra ...any) (*Report, error) {
	report := &Report{}
	dest := []any{
		&report.ID, &report.SubmissionID, &report.Reason, &report.ReporterInfo,
		&report.Status, &report.ReviewedAt, &report.ReviewedBy,
		&report.CreatedAt, &report.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return report, nil
}

// # Report Retrieval

/*
ListReports returns a filtered and paginated report queue.

Parameters:
  - context: context.Context
  - status: ReportStatus (Empty string lists all)
  - limit: int
  - offset: int

Returns:
  - []*Report: Matching reports, newest first
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListReports(context context.Context, status ReportStatus, limit, offset int) ([]*Report, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + reportColumns + `,
			COUNT(*) OVER() as total
		FROM content.galleryreport
		WHERE 1=1
	`)

	args := []any{}
	argID := 1

	if status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, status)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY createdat DESC, id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reports")
	}
	defer rows.Close()

	var reports []*Report
	var total int
	for rows.Next() {
		report, err := scanReport(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_report")
		}
		reports = append(reports, report)
	}

	return reports, total, nil
}

/*
FindReportByID retrieves a single report by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Report: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindReportByID(context context.Context, id string) (*Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM content.galleryreport
		WHERE id = $1
	`
	report, err := scanReport(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_report_by_id")
	}
	return report, nil
}

// # Report Mutation

/*
CreateReport inserts a new visitor report.

Parameters:
  - context: context.Context
  - report: *Report

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) CreateReport(context context.Context, report *Report) error {
	const query = `
		INSERT INTO content.galleryreport (
			id, submissionid, reason, reporterinfo, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := repository.db.Exec(context, query,
		report.ID, report.SubmissionID, report.Reason, report.ReporterInfo,
		report.Status, report.CreatedAt, report.UpdatedAt,
	)
	return dberr.Wrap(err, "create_report")
}

/*
SetReportStatus moves a report to the given status.

Description: A move to pending clears the reviewer metadata; the terminal
statuses stamp the current time and acting editor.

Parameters:
  - context: context.Context
  - id: string
  - status: ReportStatus
  - reviewedBy: *string (nil for a reset)

Returns:
  - *Report: The updated row
  - error: apperr.NotFound when the id matches no row
*/
func (repository *PostgresRepository) SetReportStatus(context context.Context, id string, status ReportStatus, reviewedBy *string) (*Report, error) {
	query := `
		UPDATE content.galleryreport
		SET status = $2,
			reviewedat = CASE WHEN $2 = 'pending' THEN NULL ELSE NOW() END,
			reviewedby = $3,
			updatedat = NOW()
		WHERE id = $1
		RETURNING ` + reportColumns

	report, err := scanReport(repository.db.QueryRow(context, query, id, status, reviewedBy))
	if err != nil {
		return nil, dberr.Wrap(err, "set_report_status")
	}
	return report, nil
}

/*
DeleteReport hard-deletes one report.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - bool: Whether a row was removed
  - error: Persistence failures
*/
func (repository *PostgresRepository) DeleteReport(context context.Context, id string) (bool, error) {
	const query = `DELETE FROM content.galleryreport WHERE id = $1`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_report")
	}
	return result.RowsAffected() > 0, nil
}
