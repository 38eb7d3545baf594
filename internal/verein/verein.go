// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package verein manages the village club directory ("Vereine").

The directory is plain reference data: name, description, and contact
details per club. Per-club news was retired with the old site; only the
permission exclusion in the admin package remembers it.
*/
package verein

import "time"

// Verein is one club directory entry.
type Verein struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	Website      *string   `json:"website,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldContactName  = "contact_name"
	FieldContactEmail = "contact_email"
	FieldWebsite      = "website"
)
