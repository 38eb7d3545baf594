// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package portrait

import (
	"context"

	"github.com/enniomrk/wendessen-api/internal/moderation"
)

// Repository defines the persistence contract for portraits.
type Repository interface {
	/*
		List returns a filtered and paginated moderation queue.

		Returns:
		  - []*Portrait: Matching portraits, newest first
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	List(ctx context.Context, status []moderation.Status, limit, offset int) ([]*Portrait, int, error)

	/*
		ListApproved returns the paginated public page.

		Returns:
		  - []*Portrait: Approved portraits, newest first
		  - int: Total approved count
		  - error: Retrieval failures
	*/
	ListApproved(ctx context.Context, limit, offset int) ([]*Portrait, int, error)

	/*
		FindByID retrieves one portrait by primary key.

		Returns:
		  - *Portrait: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*Portrait, error)

	/*
		Create inserts a new pending portrait.

		Returns:
		  - error: Persistence failures
	*/
	Create(ctx context.Context, portrait *Portrait) error

	/*
		ApplyReview writes a review verdict to one portrait unconditionally.

		Returns:
		  - *Portrait: The updated row
		  - error: apperr.NotFound when the id matches no row
	*/
	ApplyReview(ctx context.Context, id string, review moderation.Review) (*Portrait, error)

	/*
		ApplyReviewToIDs writes a verdict to the eligible rows of an id list.
		Ineligible and missing ids are skipped without error.

		Returns:
		  - int: Number of rows changed
		  - error: Persistence failures
	*/
	ApplyReviewToIDs(ctx context.Context, ids []string, review moderation.Review) (int, error)

	/*
		Delete hard-deletes one portrait.

		Returns:
		  - bool: Whether a row was removed
		  - error: Persistence failures
	*/
	Delete(ctx context.Context, id string) (bool, error)
}
