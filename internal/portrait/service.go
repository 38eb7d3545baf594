// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package portrait

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/enniomrk/wendessen-api/internal/moderation"
	"github.com/enniomrk/wendessen-api/internal/platform/constants"
	"github.com/enniomrk/wendessen-api/internal/platform/validate"
	"github.com/enniomrk/wendessen-api/pkg/pointer"
	"github.com/enniomrk/wendessen-api/pkg/uuidv7"
)

// Cache abstracts the tag-invalidated read cache.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error
	Invalidate(ctx context.Context, tags ...string) error
}

// Service orchestrates the portrait review workflow.
type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

// NewService constructs a new portrait [Service].
func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// publicPage is the cached shape of one public page.
type publicPage struct {
	Items []*Portrait `json:"items"`
	Total int         `json:"total"`
}

/*
ListPublic returns the approved portraits shown on the public page.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Portrait: Approved portraits, newest first
  - int: Total approved count
  - error: Retrieval errors
*/
func (service *Service) ListPublic(context context.Context, limit, offset int) ([]*Portrait, int, error) {
	cacheKey := fmt.Sprintf("portraits:public:%d:%d", limit, offset)

	var page publicPage
	if err := service.cache.Get(context, cacheKey, &page); err == nil {
		return page.Items, page.Total, nil
	}

	items, total, err := service.repo.ListApproved(context, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	_ = service.cache.Set(context, cacheKey, publicPage{Items: items, Total: total},
		constants.CacheTTL, constants.CacheTagPortraits)

	return items, total, nil
}

// SubmitInput holds one public portrait submission.
type SubmitInput struct {
	Name           string  `json:"name"`
	Quote          string  `json:"quote"`
	SubmitterName  string  `json:"submitter_name"`
	SubmitterEmail *string `json:"submitter_email,omitempty"`
	ImageURL       string  `json:"image_url"`
	ImageMIME      string  `json:"image_mime"`
	ImageFilename  string  `json:"image_filename"`
}

/*
Submit stores a visitor's portrait as pending.

Parameters:
  - context: context.Context
  - input: SubmitInput

Returns:
  - *Portrait: The created pending row
  - error: Validation or persistence failures
*/
func (service *Service) Submit(context context.Context, input SubmitInput) (*Portrait, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 100)
	validator.Required(FieldQuote, input.Quote).MaxLen(FieldQuote, input.Quote, 1000)
	validator.Required(FieldSubmitterName, input.SubmitterName).MaxLen(FieldSubmitterName, input.SubmitterName, 100)
	validator.Required(FieldImage, input.ImageURL)

	if input.SubmitterEmail != nil && *input.SubmitterEmail != "" {
		validator.Email(FieldEmail, *input.SubmitterEmail)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	portrait := &Portrait{
		ID:             uuidv7.New(),
		Name:           input.Name,
		Quote:          input.Quote,
		SubmitterName:  input.SubmitterName,
		SubmitterEmail: input.SubmitterEmail,
		ImageURL:       input.ImageURL,
		ImageMIME:      input.ImageMIME,
		ImageFilename:  input.ImageFilename,
		Status:         moderation.StatusPending,
		SubmittedAt:    now,
		UpdatedAt:      now,
	}

	if err := service.repo.Create(context, portrait); err != nil {
		return nil, err
	}

	service.logger.Info("portrait_submitted", slog.String("id", portrait.ID))

	return portrait, nil
}

/*
List retrieves the admin review queue.

Parameters:
  - context: context.Context
  - status: []moderation.Status (Empty lists all)
  - limit, offset: int

Returns:
  - []*Portrait: Matching portraits, newest first
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) List(context context.Context, status []moderation.Status, limit, offset int) ([]*Portrait, int, error) {
	return service.repo.List(context, status, limit, offset)
}

/*
Get returns one portrait by id.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Portrait: Hydrated entity
  - error: apperr.NotFound if absent
*/
func (service *Service) Get(context context.Context, id string) (*Portrait, error) {
	return service.repo.FindByID(context, id)
}

// # Review Verdicts

/*
Approve marks one portrait as approved, from any prior state.

Parameters:
  - context: context.Context
  - id: string
  - reviewedBy: string

Returns:
  - *Portrait: The updated row
  - error: apperr.NotFound if the portrait no longer exists
*/
func (service *Service) Approve(context context.Context, id, reviewedBy string) (*Portrait, error) {
	portrait, err := service.repo.ApplyReview(context, id, moderation.Approve(reviewedBy, time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("portrait_approved",
		slog.String("id", id),
		slog.String("reviewed_by", reviewedBy),
	)

	return portrait, nil
}

/*
Reject marks one portrait as rejected, optionally recording a reason.

Parameters:
  - context: context.Context
  - id: string
  - reviewedBy: string
  - reason: *string

Returns:
  - *Portrait: The updated row
  - error: Validation failures or apperr.NotFound
*/
func (service *Service) Reject(context context.Context, id, reviewedBy string, reason *string) (*Portrait, error) {
	validator := &validate.Validator{}
	validator.MaxLen(FieldReason, pointer.Val(reason), 500)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	portrait, err := service.repo.ApplyReview(context, id, moderation.Reject(reviewedBy, reason, time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("portrait_rejected",
		slog.String("id", id),
		slog.String("reviewed_by", reviewedBy),
	)

	return portrait, nil
}

/*
ResetToPending returns one portrait to the review queue, clearing all
review metadata.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Portrait: The updated row
  - error: apperr.NotFound if the portrait no longer exists
*/
func (service *Service) ResetToPending(context context.Context, id string) (*Portrait, error) {
	portrait, err := service.repo.ApplyReview(context, id, moderation.Reset())
	if err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("portrait_reset", slog.String("id", id))

	return portrait, nil
}

/*
ApproveSelected approves an explicit list of pending portraits.

Missing ids and portraits no longer pending are silently skipped.

Parameters:
  - context: context.Context
  - ids: []string
  - reviewedBy: string

Returns:
  - int: Number of portraits changed
  - error: Storage failures
*/
func (service *Service) ApproveSelected(context context.Context, ids []string, reviewedBy string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	changed, err := service.repo.ApplyReviewToIDs(context, ids, moderation.Approve(reviewedBy, time.Now().UTC()))
	if err != nil {
		return 0, err
	}

	service.invalidate(context)
	service.logger.Info("portrait_selected_approved",
		slog.Int("requested", len(ids)),
		slog.Int("changed", changed),
		slog.String("reviewed_by", reviewedBy),
	)

	return changed, nil
}

/*
RejectSelected rejects an explicit list of pending portraits.

Parameters:
  - context: context.Context
  - ids: []string
  - reviewedBy: string
  - reason: *string

Returns:
  - int: Number of portraits changed
  - error: Storage failures
*/
func (service *Service) RejectSelected(context context.Context, ids []string, reviewedBy string, reason *string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	changed, err := service.repo.ApplyReviewToIDs(context, ids, moderation.Reject(reviewedBy, reason, time.Now().UTC()))
	if err != nil {
		return 0, err
	}

	service.invalidate(context)
	service.logger.Info("portrait_selected_rejected",
		slog.Int("requested", len(ids)),
		slog.Int("changed", changed),
		slog.String("reviewed_by", reviewedBy),
	)

	return changed, nil
}

/*
ResetSelected returns an explicit list of reviewed portraits to pending.

Parameters:
  - context: context.Context
  - ids: []string

Returns:
  - int: Number of portraits changed
  - error: Storage failures
*/
func (service *Service) ResetSelected(context context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	changed, err := service.repo.ApplyReviewToIDs(context, ids, moderation.Reset())
	if err != nil {
		return 0, err
	}

	service.invalidate(context)
	service.logger.Info("portrait_selected_reset",
		slog.Int("requested", len(ids)),
		slog.Int("changed", changed),
	)

	return changed, nil
}

/*
Delete permanently removes one portrait.

A zero-row delete is treated as success, matching the review UI's retry
behavior.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Storage failures only
*/
func (service *Service) Delete(context context.Context, id string) error {
	removed, err := service.repo.Delete(context, id)
	if err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Info("portrait_deleted",
		slog.String("id", id),
		slog.Bool("removed", removed),
	)

	return nil
}

// invalidate evicts all cached public portrait pages.
func (service *Service) invalidate(context context.Context) {
	_ = service.cache.Invalidate(context, constants.CacheTagPortraits)
}
