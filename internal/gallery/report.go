// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package gallery

import "time"

// # Report Enums

// ReportStatus is the resolution state of a visitor complaint.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// IsValid reports whether s is one of the three known states.
func (s ReportStatus) IsValid() bool {
	return s == ReportStatusPending || s == ReportStatusReviewed || s == ReportStatusDismissed
}

// IsResolution reports whether s is a state an admin may set directly.
// Pending is only reachable through an explicit reset.
func (s ReportStatus) IsResolution() bool {
	return s == ReportStatusReviewed || s == ReportStatusDismissed
}

// # Report Entity

// Report is a visitor-raised flag against a specific gallery submission.
//
// The report references the submission but does not own it: resolving a
// report never changes the photo's own moderation status, and deleting the
// photo leaves its reports in place. Multiple reports against the same photo
// may coexist; public reporting is deliberately never deduplicated.
type Report struct {
	ID           string       `json:"id"` // UUIDv7
	SubmissionID string       `json:"submission_id"`
	Reason       string       `json:"reason"`
	ReporterInfo *string      `json:"reporter_info,omitempty"`
	Status       ReportStatus `json:"status"`
	ReviewedAt   *time.Time   `json:"reviewed_at,omitempty"`
	ReviewedBy   *string      `json:"reviewed_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
