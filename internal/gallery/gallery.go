// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package gallery manages the shared village gallery ("Impressionen").

Visitors upload batches of photos which enter a moderation queue; editors
approve or reject them individually or per batch before they appear on the
public page. Visitors can also flag published photos, which raises a
[Report] handled independently of the photo's own review state.

# Core Responsibility

  - Submission: Defines the [Submission] entity and its review lifecycle.
  - Grouping: Derives [Group] views for batches uploaded together.
  - Reporting: Tracks visitor complaints against published photos.

The moderation rules themselves live in the [moderation] package and are
shared with portraits.
*/
package gallery

import (
	"slices"
	"time"

	"github.com/enniomrk/wendessen-api/internal/moderation"
)

// # Core Entities

// Submission represents a single uploaded gallery photo under moderation.
//
// Content fields are immutable after creation; only the review state and
// UpdatedAt change over the row's lifetime.
type Submission struct {
	ID                string            `json:"id"` // UUIDv7
	SubmissionGroupID string            `json:"submission_group_id"`
	Title             string            `json:"title"`
	Description       *string           `json:"description,omitempty"`
	SubmitterName     string            `json:"submitter_name"`
	SubmitterEmail    *string           `json:"submitter_email,omitempty"`
	ImageURL          string            `json:"image_url"`
	ImageMIME         string            `json:"image_mime"`
	ImageFilename     string            `json:"image_filename"`
	Status            moderation.Status `json:"status"`
	ReviewedAt        *time.Time        `json:"reviewed_at,omitempty"`
	ReviewedBy        *string           `json:"reviewed_by,omitempty"`
	RejectionReason   *string           `json:"rejection_reason,omitempty"`
	SubmittedAt       time.Time         `json:"submitted_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Group is the read-time aggregation of all submissions sharing a
// SubmissionGroupID. It is never persisted: it exists only as a query-time
// view and disappears when its last member is deleted.
type Group struct {
	SubmissionGroupID string            `json:"submission_group_id"`
	Title             string            `json:"title"`
	Description       *string           `json:"description,omitempty"`
	SubmitterNames    []string          `json:"submitter_names"`
	Images            []*Submission     `json:"images"`
	Counts            moderation.Counts `json:"counts"`
}

// # Search & Filtering

// Filter holds parameters for the admin submission listing.
type Filter struct {
	Status  []moderation.Status `json:"status"`
	GroupID string              `json:"submission_group_id"`
}

// # Field Identifiers

const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldSubmitterName = "submitter_name"
	FieldEmail         = "submitter_email"
	FieldImages        = "images"
	FieldIDs           = "ids"
	FieldReason        = "reason"
	FieldStatus        = "status"
)

// # Aggregation

// BuildGroups folds a flat submission list into derived [Group] views.
//
// Title and description are taken from the first member seen (uploads in one
// batch share them by construction). Submitter names are deduplicated while
// preserving first-seen order, as is the group order itself.
func BuildGroups(submissions []*Submission) []*Group {
	groups := make([]*Group, 0)
	index := make(map[string]*Group)

	for _, submission := range submissions {
		group, ok := index[submission.SubmissionGroupID]
		if !ok {
			group = &Group{
				SubmissionGroupID: submission.SubmissionGroupID,
				Title:             submission.Title,
				Description:       submission.Description,
			}
			index[submission.SubmissionGroupID] = group
			groups = append(groups, group)
		}

		group.Images = append(group.Images, submission)

		if !slices.Contains(group.SubmitterNames, submission.SubmitterName) {
			group.SubmitterNames = append(group.SubmitterNames, submission.SubmitterName)
		}
	}

	for _, group := range groups {
		statuses := make([]moderation.Status, len(group.Images))
		for i, image := range group.Images {
			statuses[i] = image.Status
		}
		group.Counts = moderation.CountByStatus(statuses)
	}

	return groups
}
