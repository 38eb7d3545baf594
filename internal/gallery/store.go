// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package gallery

import (
	"context"

	"github.com/enniomrk/wendessen-api/internal/moderation"
)

// # Submission Data Access

// Repository defines the data access contract for gallery submissions.
type Repository interface {

	/*
		List returns a filtered, paginated slice of submissions and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Status set, group id)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Submission: Slice of matching submissions, newest first
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Submission, int, error)

	/*
		ListApproved returns the public gallery page (approved photos only).

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Submission: Approved photos, newest first
		  - int: Total approved count
		  - error: Database retrieval failures
	*/
	ListApproved(context context.Context, limit, offset int) ([]*Submission, int, error)

	/*
		ListByGroup returns every submission sharing a group id, upload order.

		Parameters:
		  - context: context.Context
		  - groupID: string

		Returns:
		  - []*Submission: Group members (may be empty)
		  - error: Database retrieval failures
	*/
	ListByGroup(context context.Context, groupID string) ([]*Submission, error)

	/*
		FindByID retrieves a single submission by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Submission: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Submission, error)

	/*
		CreateBatch persists a freshly submitted batch of photos, all pending.

		Parameters:
		  - context: context.Context
		  - submissions: []*Submission (Share one SubmissionGroupID)

		Returns:
		  - error: Persistence failures
	*/
	CreateBatch(context context.Context, submissions []*Submission) error

	/*
		ApplyReview sets the review outcome on one row, unconditionally.

		Single-row actions are permitted from any prior state; re-approving an
		approved photo simply refreshes its review metadata.

		Parameters:
		  - context: context.Context
		  - id: string
		  - review: moderation.Review

		Returns:
		  - *Submission: The updated row
		  - error: ErrNotFound if no row matches id
	*/
	ApplyReview(context context.Context, id string, review moderation.Review) (*Submission, error)

	/*
		ApplyReviewToGroup applies the review to every group member the bulk
		policy allows (see [moderation.Review.Applies]).

		Parameters:
		  - context: context.Context
		  - groupID: string
		  - review: moderation.Review

		Returns:
		  - int: Number of rows changed (0 is success, not an error)
		  - error: Database execution failures
	*/
	ApplyReviewToGroup(context context.Context, groupID string, review moderation.Review) (int, error)

	/*
		ApplyReviewToIDs applies the review to an explicit id list, cutting
		across groups. Missing ids and rows outside the bulk policy are
		silently skipped.

		Parameters:
		  - context: context.Context
		  - ids: []string
		  - review: moderation.Review

		Returns:
		  - int: Number of rows changed
		  - error: Database execution failures
	*/
	ApplyReviewToIDs(context context.Context, ids []string, review moderation.Review) (int, error)

	/*
		Delete permanently removes one submission row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - bool: Whether a row was actually removed
		  - error: Database execution failures
	*/
	Delete(context context.Context, id string) (bool, error)

	/*
		DeleteGroup permanently removes every row sharing the group id.

		Parameters:
		  - context: context.Context
		  - groupID: string

		Returns:
		  - int: Number of rows removed
		  - error: Database execution failures
	*/
	DeleteGroup(context context.Context, groupID string) (int, error)
}
