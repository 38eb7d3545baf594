// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/enniomrk/wendessen-api/internal/moderation"
	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/constants"
	"github.com/enniomrk/wendessen-api/internal/platform/validate"
	"github.com/enniomrk/wendessen-api/pkg/pointer"
	"github.com/enniomrk/wendessen-api/pkg/uuidv7"
)

// errGroupNotFound is returned when a group id matches no submissions.
var errGroupNotFound = apperr.NotFound("Submission group")

// Cache abstracts the tag-invalidated read cache.
//
// # Why an interface?
//
// Declaring the contract here decouples the service from Redis, so unit
// tests can run against a no-op fake.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error
	Invalidate(ctx context.Context, tags ...string) error
}

// # Service Layer

// Service orchestrates the gallery moderation workflow.
type Service struct {
	repo    Repository
	reports ReportRepository
	cache   Cache
	logger  *slog.Logger
}

// NewService constructs a new gallery [Service].
func NewService(repo Repository, reports ReportRepository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		reports: reports,
		cache:   cache,
		logger:  logger,
	}
}

// # Public Gallery

// publicPage is the cached shape of one public gallery page.
type publicPage struct {
	Items []*Submission `json:"items"`
	Total int           `json:"total"`
}

/*
ListPublic returns the approved photos shown on the public page.

Results are cached under the gallery tag with a short TTL; every moderation
action invalidates the tag.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Submission: Approved photos, newest first
  - int: Total approved count
  - error: Retrieval errors
*/
func (service *Service) ListPublic(context context.Context, limit, offset int) ([]*Submission, int, error) {
	cacheKey := fmt.Sprintf("gallery:public:%d:%d", limit, offset)

	var page publicPage
	if err := service.cache.Get(context, cacheKey, &page); err == nil {
		return page.Items, page.Total, nil
	}

	items, total, err := service.repo.ListApproved(context, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	_ = service.cache.Set(context, cacheKey, publicPage{Items: items, Total: total},
		constants.CacheTTL, constants.CacheTagGallery)

	return items, total, nil
}

// # Submission Intake

// SubmitInput holds one public photo-batch upload.
type SubmitInput struct {
	Title          string        `json:"title"`
	Description    *string       `json:"description,omitempty"`
	SubmitterName  string        `json:"submitter_name"`
	SubmitterEmail *string       `json:"submitter_email,omitempty"`
	Images         []SubmitImage `json:"images"`
}

// SubmitImage is one uploaded file reference within a batch.
type SubmitImage struct {
	URL      string `json:"url"`
	MIME     string `json:"mime"`
	Filename string `json:"filename"`
}

/*
Submit stores a visitor's photo batch as one pending submission group.

Every image becomes its own [Submission] row sharing a fresh group id, so
editors can later approve or reject photos individually or per batch.

Parameters:
  - context: context.Context
  - input: SubmitInput

Returns:
  - []*Submission: The created pending rows
  - error: Validation or persistence failures
*/
func (service *Service) Submit(context context.Context, input SubmitInput) ([]*Submission, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.Required(FieldSubmitterName, input.SubmitterName).MaxLen(FieldSubmitterName, input.SubmitterName, 100)

	if input.SubmitterEmail != nil && *input.SubmitterEmail != "" {
		validator.Email(FieldEmail, *input.SubmitterEmail)
	}

	validator.Custom(FieldImages, len(input.Images) == 0, "At least one image is required")
	validator.Custom(FieldImages, len(input.Images) > 20, "At most 20 images per submission")

	for _, image := range input.Images {
		validator.Required(FieldImages, image.URL)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	groupID := uuidv7.New()
	now := time.Now().UTC()

	submissions := make([]*Submission, 0, len(input.Images))
	for _, image := range input.Images {
		submissions = append(submissions, &Submission{
			ID:                uuidv7.New(),
			SubmissionGroupID: groupID,
			Title:             input.Title,
			Description:       input.Description,
			SubmitterName:     input.SubmitterName,
			SubmitterEmail:    input.SubmitterEmail,
			ImageURL:          image.URL,
			ImageMIME:         image.MIME,
			ImageFilename:     image.Filename,
			Status:            moderation.StatusPending,
			SubmittedAt:       now,
			UpdatedAt:         now,
		})
	}

	if err := service.repo.CreateBatch(context, submissions); err != nil {
		return nil, err
	}

	service.logger.Info("gallery_batch_submitted",
		slog.String("group_id", groupID),
		slog.Int("images", len(submissions)),
	)

	return submissions, nil
}

// # Admin Listings

/*
ListSubmissions retrieves the admin moderation queue.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Submission: Matching submissions, newest first
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListSubmissions(context context.Context, filter Filter, limit, offset int) ([]*Submission, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
ListGroups retrieves the admin moderation queue folded into batch views.

Grouping is applied to the requested page of submissions, so a very large
batch may span two pages. The detail modal uses [Service.GetGroup] for the
complete member list.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Group: Derived group views
  - int: Total matching submission count
  - error: Retrieval errors
*/
func (service *Service) ListGroups(context context.Context, filter Filter, limit, offset int) ([]*Group, int, error) {
	submissions, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return BuildGroups(submissions), total, nil
}

/*
GetGroup returns the complete derived view of one submission group.

Parameters:
  - context: context.Context
  - groupID: string

Returns:
  - *Group: The aggregation of all members
  - error: apperr.NotFound if the group has no members
*/
func (service *Service) GetGroup(context context.Context, groupID string) (*Group, error) {
	members, err := service.repo.ListByGroup(context, groupID)
	if err != nil {
		return nil, err
	}

	groups := BuildGroups(members)
	if len(groups) == 0 {
		return nil, errGroupNotFound
	}

	return groups[0], nil
}

// # Single-Photo Moderation

/*
Approve marks one photo as approved, from any prior state.

Parameters:
  - context: context.Context
  - id: string
  - reviewedBy: string (Acting editor)

Returns:
  - *Submission: The updated row
  - error: apperr.NotFound if the photo no longer exists
*/
func (service *Service) Approve(context context.Context, id, reviewedBy string) (*Submission, error) {
	submission, err := service.repo.ApplyReview(context, id, moderation.Approve(reviewedBy, time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("gallery_submission_approved",
		slog.String("id", id),
		slog.String("reviewed_by", reviewedBy),
	)

	return submission, nil
}

/*
Reject marks one photo as rejected, optionally recording a reason.

Parameters:
  - context: context.Context
  - id: string
  - reviewedBy: string
  - reason: *string (Optional free text)

Returns:
  - *Submission: The updated row
  - error: Validation failures or apperr.NotFound
*/
func (service *Service) Reject(context context.Context, id, reviewedBy string, reason *string) (*Submission, error) {
	validator := &validate.Validator{}
	validator.MaxLen(FieldReason, pointer.Val(reason), 500)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	submission, err := service.repo.ApplyReview(context, id, moderation.Reject(reviewedBy, reason, time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("gallery_submission_rejected",
		slog.String("id", id),
		slog.String("reviewed_by", reviewedBy),
	)

	return submission, nil
}

/*
ResetToPending returns one photo to the moderation queue, clearing all
review metadata.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Submission: The updated row
  - error: apperr.NotFound if the photo no longer exists
*/
func (service *Service) ResetToPending(context context.Context, id string) (*Submission, error) {
	submission, err := service.repo.ApplyReview(context, id, moderation.Reset())
	if err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("gallery_submission_reset", slog.String("id", id))

	return submission, nil
}

// # Batch Moderation

/*
ApproveGroup approves every still-pending photo of a batch.

Members already reviewed keep their prior status and reviewer untouched, so
a bulk approval can never overturn an earlier explicit rejection.

Parameters:
  - context: context.Context
  - groupID: string
  - reviewedBy: string

Returns:
  - int: Number of photos changed (0 for an empty or fully reviewed group)
  - error: Storage failures
*/
func (service *Service) ApproveGroup(context context.Context, groupID, reviewedBy string) (int, error) {
	changed, err := service.repo.ApplyReviewToGroup(context, groupID, moderation.Approve(reviewedBy, time.Now().UTC()))
	if err != nil {
		return 0, err
	}

	service.invalidate(context)
	service.logger.Info("gallery_group_approved",
		slog.String("group_id", groupID),
		slog.String("reviewed_by", reviewedBy),
		slog.Int("changed", changed),
	)

	return changed, nil
}

/*
RejectGroup rejects every still-pending photo of a batch.

Parameters:
  - context: context.Context
  - groupID: string
  - reviewedBy: string
  - reason: *string (Applied to every row changed)

Returns:
  - int: Number of photos changed
  - error: Validation or storage failures
*/
func (service *Service) RejectGroup(context context.Context, groupID, reviewedBy string, reason *string) (int, error) {
	validator := &validate.Validator{}
	validator.MaxLen(FieldReason, pointer.Val(reason), 500)
	if err := validator.Err(); err != nil {
		return 0, err
	}

	changed, err := service.repo.ApplyReviewToGroup(context, groupID, moderation.Reject(reviewedBy, reason, time.Now().UTC()))
	if err != nil {
		return 0, err
	}

	service.invalidate(context)
	service.logger.Info("gallery_group_rejected",
		slog.String("group_id", groupID),
		slog.String("reviewed_by", reviewedBy),
		slog.Int("changed", changed),
	)

	return changed, nil
}

/*
ResetGroup returns every already-reviewed photo of a batch to pending.

Parameters:
  - context: context.Context
  - groupID: string

Returns:
  - int: Number of photos changed
  - error: Storage failures
*/
func (service *Service) ResetGroup(context context.Context, groupID string) (int, error) {
	changed, err := service.repo.ApplyReviewToGroup(context, groupID, moderation.Reset())
	if err != nil {
		return 0, err
	}

	service.invalidate(context)
	service.logger.Info("gallery_group_reset",
		slog.String("group_id", groupID),
		slog.Int("changed", changed),
	)

	return changed, nil
}

/*
ApproveSelected approves an explicit list of pending photos across groups.

Missing ids and photos no longer pending are silently skipped; batches are
applied best-effort per row, so callers should re-query state afterwards
rather than assume all-or-nothing.

Parameters:
  - context: context.Context
  - ids: []string
  - reviewedBy: string

Returns:
  - int: Number of photos changed
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
	service.logger.Info("gallery_selected_approved",
		slog.Int("requested", len(ids)),
		slog.Int("changed", changed),
		slog.String("reviewed_by", reviewedBy),
	)

	return changed, nil
}

/*
RejectSelected rejects an explicit list of pending photos across groups.

Parameters:
  - context: context.Context
  - ids: []string
  - reviewedBy: string
  - reason: *string

Returns:
  - int: Number of photos changed
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
	service.logger.Info("gallery_selected_rejected",
		slog.Int("requested", len(ids)),
		slog.Int("changed", changed),
		slog.String("reviewed_by", reviewedBy),
	)

	return changed, nil
}

/*
ResetSelected returns an explicit list of reviewed photos to pending.

Parameters:
  - context: context.Context
  - ids: []string

Returns:
  - int: Number of photos changed
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
	service.logger.Info("gallery_selected_reset",
		slog.Int("requested", len(ids)),
		slog.Int("changed", changed),
	)

	return changed, nil
}

// # Removal

/*
Delete permanently removes one photo.

The moderation UI treats deleting an already-gone photo as success, so a
zero-row delete is not surfaced as an error.

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
	service.logger.Info("gallery_submission_deleted",
		slog.String("id", id),
		slog.Bool("removed", removed),
	)

	return nil
}

/*
DeleteGroup permanently removes every photo of a batch in one operation.

Associated visitor reports are left in place; see [Service.ResolveAndRemove]
for the combined clean-up action.

Parameters:
  - context: context.Context
  - groupID: string

Returns:
  - int: Number of photos removed
  - error: Storage failures
*/
func (service *Service) DeleteGroup(context context.Context, groupID string) (int, error) {
	removed, err := service.repo.DeleteGroup(context, groupID)
	if err != nil {
		return 0, err
	}

	service.invalidate(context)
	service.logger.Info("gallery_group_deleted",
		slog.String("group_id", groupID),
		slog.Int("removed", removed),
	)

	return removed, nil
}

// invalidate evicts all cached public gallery pages.
func (service *Service) invalidate(context context.Context) {
	_ = service.cache.Invalidate(context, constants.CacheTagGallery)
}
