// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package event

import (
	"context"
	"time"
)

// Repository defines the persistence contract for calendar entries.
type Repository interface {
	/*
		ListUpcoming returns events starting inside [from, until), soonest
		first.

		Returns:
		  - []*Event: The page
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	ListUpcoming(ctx context.Context, from, until time.Time, limit, offset int) ([]*Event, int, error)

	/*
		List returns every event for the editorial listing, soonest first.

		Returns:
		  - []*Event: The page
		  - int: Total count
		  - error: Retrieval failures
	*/
	List(ctx context.Context, limit, offset int) ([]*Event, int, error)

	/*
		FindByID retrieves one event by primary key.

		Returns:
		  - *Event: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*Event, error)

	/*
		Create inserts a new event.

		Returns:
		  - error: Persistence failures
	*/
	Create(ctx context.Context, event *Event) error

	/*
		Update rewrites an event.

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(ctx context.Context, event *Event) error

	/*
		Delete hard-deletes one event.

		Returns:
		  - bool: Whether a row was removed
		  - error: Persistence failures
	*/
	Delete(ctx context.Context, id string) (bool, error)
}
