// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package moderation defines the shared review lifecycle for visitor-submitted
content (shared-gallery photos and portraits).

Every submission starts as pending and is moved to approved or rejected by an
editor. Both review outcomes are reversible through an explicit reset back to
pending; there is no direct approved↔rejected transition.

# Core Responsibility

  - Vocabulary: The [Status] enum and its transition rules.
  - Review values: [Review] captures the full per-row outcome of a single
    moderation action so that stores can apply it as one atomic UPDATE.
  - Bulk policy: Bulk actions only ever advance pending rows or reset
    non-pending rows — they never silently overturn an editor's earlier
    per-photo decision inside a batch.

Both the gallery and portrait packages build their state transitions from
these primitives, so the invariants live in exactly one place.
*/
package moderation

import "time"

// # Lifecycle States

// Status is the review state of a submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid reports whether s is one of the three known states.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// IsPending reports whether the submission still awaits review.
func (s Status) IsPending() bool {
	return s == StatusPending
}

// # Review Values

// Review is the complete moderation outcome applied to a submission row.
//
// # Invariants
//
//   - ReviewedAt and ReviewedBy are non-nil exactly when Status != pending.
//   - RejectionReason is nil unless Status == rejected.
//
// Constructing Review values only through [Approve], [Reject] and [Reset]
// makes these invariants hold by construction; stores write all four fields
// in a single UPDATE so a row can never hold a mixed state.
type Review struct {
	Status          Status
	ReviewedAt      *time.Time
	ReviewedBy      *string
	RejectionReason *string
}

// Approve builds the review outcome for accepting a submission.
// Any previous rejection reason is cleared.
func Approve(reviewedBy string, now time.Time) Review {
	return Review{
		Status:     StatusApproved,
		ReviewedAt: &now,
		ReviewedBy: &reviewedBy,
	}
}

// Reject builds the review outcome for declining a submission.
// The reason is optional free text shown to the submitter.
func Reject(reviewedBy string, reason *string, now time.Time) Review {
	review := Review{
		Status:     StatusRejected,
		ReviewedAt: &now,
		ReviewedBy: &reviewedBy,
	}

	if reason != nil && *reason != "" {
		review.RejectionReason = reason
	}

	return review
}

// Reset builds the review outcome that returns a submission to pending,
// clearing all review metadata.
func Reset() Review {
	return Review{Status: StatusPending}
}

// # Bulk Policy

// Applies reports whether this review may be applied to a row currently in
// the given state when executed as part of a bulk (group or selected)
// operation.
//
// Approve/reject bulk actions only advance rows that are still pending;
// reset bulk actions only touch rows that have already been reviewed. Rows
// outside the policy are skipped, never errors.
func (r Review) Applies(current Status) bool {
	if r.Status == StatusPending {
		return current != StatusPending
	}
	return current == StatusPending
}

// # Aggregation

// Counts partitions a set of submissions by status.
type Counts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// CountByStatus tallies the members of a submission group.
func CountByStatus(statuses []Status) Counts {
	counts := Counts{Total: len(statuses)}

	for _, status := range statuses {
		switch status {
		case StatusPending:
			counts.Pending++
		case StatusApproved:
			counts.Approved++
		case StatusRejected:
			counts.Rejected++
		}
	}

	return counts
}
