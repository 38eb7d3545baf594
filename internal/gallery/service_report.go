// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package gallery

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/validate"
	"github.com/enniomrk/wendessen-api/pkg/uuidv7"
)

// errReportNotFound is returned when a report id matches no row.
var errReportNotFound = apperr.NotFound("Report")

// # Report Workflow
//
// Reports run their own lifecycle next to the submission one. Resolving a
// report never touches the photo, and removing a photo never touches its
// reports.

/*
CreateReport records a visitor complaint against a published photo.

The photo must exist at submission time; duplicate reports from the same
visitor are accepted as-is, since reporting is anonymous.

Parameters:
  - context: context.Context
  - submissionID: string
  - reason: string
  - reporterInfo: *string (Optional contact details)

Returns:
  - *Report: The stored pending report
  - error: Validation failures or apperr.NotFound for an unknown photo
*/
func (service *Service) CreateReport(context context.Context, submissionID, reason string, reporterInfo *string) (*Report, error) {
	validator := &validate.Validator{}
	validator.Required(FieldReason, reason).MaxLen(FieldReason, reason, 500)
	validator.UUID("submission_id", submissionID)

	if reporterInfo != nil {
		validator.MaxLen("reporter_info", *reporterInfo, 200)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByID(context, submissionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report := &Report{
		ID:           uuidv7.New(),
		SubmissionID: submissionID,
		Reason:       reason,
		ReporterInfo: reporterInfo,
		Status:       ReportStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.reports.CreateReport(context, report); err != nil {
		return nil, err
	}

	service.logger.Info("gallery_report_created",
		slog.String("report_id", report.ID),
		slog.String("submission_id", submissionID),
	)

	return report, nil
}

/*
ListReports retrieves reports for the admin review queue.

Parameters:
  - context: context.Context
  - status: ReportStatus (Empty string lists all)
  - limit, offset: int

Returns:
  - []*Report: Matching reports, newest first
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListReports(context context.Context, status ReportStatus, limit, offset int) ([]*Report, int, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, validate.RequiredError(FieldStatus, "Unknown report status")
	}

	return service.reports.ListReports(context, status, limit, offset)
}

/*
GetReport returns one report by id.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Report: The report
  - error: apperr.NotFound if absent
*/
func (service *Service) GetReport(context context.Context, id string) (*Report, error) {
	return service.reports.FindReportByID(context, id)
}

/*
ResolveReport closes a report as reviewed or dismissed.

Only the two terminal statuses are accepted here; returning a report to
pending goes through [Service.ResetReport].

Parameters:
  - context: context.Context
  - id: string
  - status: ReportStatus (reviewed or dismissed)
  - reviewedBy: string

Returns:
  - *Report: The updated report
  - error: Validation failures or apperr.NotFound
*/
func (service *Service) ResolveReport(context context.Context, id string, status ReportStatus, reviewedBy string) (*Report, error) {
	if !status.IsResolution() {
		return nil, validate.RequiredError(FieldStatus, "Status must be reviewed or dismissed")
	}

	report, err := service.reports.SetReportStatus(context, id, status, &reviewedBy)
	if err != nil {
		return nil, err
	}

	service.logger.Info("gallery_report_resolved",
		slog.String("report_id", id),
		slog.String("status", string(status)),
		slog.String("reviewed_by", reviewedBy),
	)

	return report, nil
}

/*
ResetReport returns a closed report to the pending queue, clearing the
reviewer metadata.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Report: The updated report
  - error: apperr.NotFound if absent
*/
func (service *Service) ResetReport(context context.Context, id string) (*Report, error) {
	report, err := service.reports.SetReportStatus(context, id, ReportStatusPending, nil)
	if err != nil {
		return nil, err
	}

	service.logger.Info("gallery_report_reset", slog.String("report_id", id))

	return report, nil
}

/*
DeleteReport permanently removes one report.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound if the report does not exist
*/
func (service *Service) DeleteReport(context context.Context, id string) error {
	removed, err := service.reports.DeleteReport(context, id)
	if err != nil {
		return err
	}
	if !removed {
		return errReportNotFound
	}

	service.logger.Info("gallery_report_deleted", slog.String("report_id", id))

	return nil
}

// RemoveAction selects what happens to the reported photo when a report is
// closed via [Service.ResolveAndRemove].
type RemoveAction string

const (
	// RemoveActionReject keeps the photo but rejects it off the public page.
	RemoveActionReject RemoveAction = "reject"
	// RemoveActionDelete removes the photo permanently.
	RemoveActionDelete RemoveAction = "delete"
)

/*
ResolveAndRemove closes a report as reviewed and takes the reported photo
off the public gallery in one admin action.

The two steps are independent writes: if the photo was already deleted by
another editor, the report is still resolved and no error is returned.

Parameters:
  - context: context.Context
  - reportID: string
  - reviewedBy: string
  - action: RemoveAction (reject or delete)
  - reason: *string (Rejection reason when action is reject)

Returns:
  - *Report: The resolved report
  - error: Validation failures, apperr.NotFound, or storage failures
*/
func (service *Service) ResolveAndRemove(context context.Context, reportID, reviewedBy string, action RemoveAction, reason *string) (*Report, error) {
	if action != RemoveActionReject && action != RemoveActionDelete {
		return nil, validate.RequiredError("action", "Action must be reject or delete")
	}

	report, err := service.reports.SetReportStatus(context, reportID, ReportStatusReviewed, &reviewedBy)
	if err != nil {
		return nil, err
	}

	switch action {
	case RemoveActionReject:
		_, err = service.Reject(context, report.SubmissionID, reviewedBy, reason)
	case RemoveActionDelete:
		err = service.Delete(context, report.SubmissionID)
	}

	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == http.StatusNotFound {
			service.logger.Warn("gallery_report_target_missing",
				slog.String("report_id", reportID),
				slog.String("submission_id", report.SubmissionID),
			)
			return report, nil
		}
		return nil, err
	}

	service.logger.Info("gallery_report_resolved_with_removal",
		slog.String("report_id", reportID),
		slog.String("submission_id", report.SubmissionID),
		slog.String("action", string(action)),
		slog.String("reviewed_by", reviewedBy),
	)

	return report, nil
}
