// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package verein

import "context"

// Repository defines the persistence contract for the club directory.
type Repository interface {
	/*
		List returns the directory ordered by name.

		Returns:
		  - []*Verein: The page
		  - int: Total club count
		  - error: Retrieval failures
	*/
	List(ctx context.Context, limit, offset int) ([]*Verein, int, error)

	/*
		FindByID retrieves one club by primary key.

		Returns:
		  - *Verein: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*Verein, error)

	/*
		FindBySlug retrieves one club by its unique slug.

		Returns:
		  - *Verein: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindBySlug(ctx context.Context, slug string) (*Verein, error)

	/*
		Create inserts a new club.

		Returns:
		  - error: apperr.Conflict on a duplicate slug, persistence failures
	*/
	Create(ctx context.Context, verein *Verein) error

	/*
		Update rewrites a club entry.

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(ctx context.Context, verein *Verein) error

	/*
		Delete hard-deletes one club.

		Returns:
		  - bool: Whether a row was removed
		  - error: Persistence failures
	*/
	Delete(ctx context.Context, id string) (bool, error)
}
