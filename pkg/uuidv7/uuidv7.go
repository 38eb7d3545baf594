// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values,
// the primary key format for every portal table. Time-sortable keys keep
// insertion order and index order aligned in PostgreSQL, which random
// UUIDv4 keys do not.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string. It panics only when the OS random
// source is unavailable, which is not a recoverable condition.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}
