// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package gallery

import "context"

// # Report Data Access

// ReportRepository defines the data access contract for visitor reports.
type ReportRepository interface {

	/*
		ListReports returns reports, optionally filtered by status, newest first.

		Parameters:
		  - context: context.Context
		  - status: ReportStatus (Empty string means all)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Report: Matching reports
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	ListReports(context context.Context, status ReportStatus, limit, offset int) ([]*Report, int, error)

	/*
		FindReportByID retrieves a single report.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Report: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindReportByID(context context.Context, id string) (*Report, error)

	/*
		CreateReport persists a new pending report.

		Parameters:
		  - context: context.Context
		  - report: *Report

		Returns:
		  - error: Persistence failures
	*/
	CreateReport(context context.Context, report *Report) error

	/*
		SetReportStatus updates a report's resolution state.

		Setting pending clears the review metadata; reviewed/dismissed stamp it.

		Parameters:
		  - context: context.Context
		  - id: string
		  - status: ReportStatus
		  - reviewedBy: *string (nil when resetting to pending)

		Returns:
		  - *Report: The updated row
		  - error: ErrNotFound if no row matches id
	*/
	SetReportStatus(context context.Context, id string, status ReportStatus, reviewedBy *string) (*Report, error)

	/*
		DeleteReport permanently removes one report row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - bool: Whether a row was actually removed
		  - error: Database execution failures
	*/
	DeleteReport(context context.Context, id string) (bool, error)
}
