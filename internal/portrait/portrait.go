// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package portrait manages the "Gesichter des Dorfes" section: resident
portraits submitted by visitors and curated by the editorial team.

Portraits run through the same review lifecycle as gallery photos but are
submitted one at a time, so there is no batch grouping.
*/
package portrait

import (
	"time"

	"github.com/enniomrk/wendessen-api/internal/moderation"
)

// Portrait is one submitted resident portrait.
type Portrait struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Quote          string  `json:"quote"`
	SubmitterName  string  `json:"submitter_name"`
	SubmitterEmail *string `json:"submitter_email,omitempty"`
	ImageURL       string  `json:"image_url"`
	ImageMIME      string  `json:"image_mime"`
	ImageFilename  string  `json:"image_filename"`

	Status          moderation.Status `json:"status"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty"`
	ReviewedBy      *string           `json:"reviewed_by,omitempty"`
	RejectionReason *string           `json:"rejection_reason,omitempty"`

	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldName          = "name"
	FieldQuote         = "quote"
	FieldSubmitterName = "submitter_name"
	FieldEmail         = "submitter_email"
	FieldImage         = "image_url"
	FieldReason        = "reason"
	FieldStatus        = "status"
)
