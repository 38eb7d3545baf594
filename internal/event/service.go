// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/constants"
	"github.com/enniomrk/wendessen-api/internal/platform/validate"
	"github.com/enniomrk/wendessen-api/pkg/uuidv7"
)

// Cache abstracts the tag-invalidated read cache.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error
	Invalidate(ctx context.Context, tags ...string) error
}

// Service orchestrates the event calendar.
type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

// NewService constructs a new event [Service].
func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// publicPage is the cached shape of one public page.
type publicPage struct {
	Items []*Event `json:"items"`
	Total int      `json:"total"`
}

/*
ListUpcoming returns events inside a look-ahead window.

Description: The window runs from the given date over the given number of
days. Default-window pages (from = today) are cached; explicit from-date
queries bypass the cache since their key space is unbounded.

Parameters:
  - context: context.Context
  - from: time.Time (Truncated to the day)
  - days: int (Look-ahead horizon)
  - limit, offset: int

Returns:
  - []*Event: Soonest first
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListUpcoming(context context.Context, from time.Time, days, limit, offset int) ([]*Event, int, error) {
	if days <= 0 {
		days = constants.DefaultEventHorizonDays
	}
	from = from.UTC().Truncate(24 * time.Hour)
	until := from.AddDate(0, 0, days)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	cacheable := from.Equal(today)

	cacheKey := fmt.Sprintf("events:upcoming:%d:%d:%d", days, limit, offset)
	if cacheable {
		var page publicPage
		if err := service.cache.Get(context, cacheKey, &page); err == nil {
			return page.Items, page.Total, nil
		}
	}

	items, total, err := service.repo.ListUpcoming(context, from, until, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		_ = service.cache.Set(context, cacheKey, publicPage{Items: items, Total: total},
			constants.CacheTTL, constants.CacheTagEvents)
	}

	return items, total, nil
}

/*
List returns every event for the editorial listing.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Event: Soonest first
  - int: Total count
  - error: Retrieval errors
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*Event, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
Get returns one event by id.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Event: Hydrated entity
  - error: apperr.NotFound if absent
*/
func (service *Service) Get(context context.Context, id string) (*Event, error) {
	return service.repo.FindByID(context, id)
}

// EventInput holds the editor-supplied fields.
type EventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Organizer   string     `json:"organizer"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// validateInput applies the shared field rules.
func validateInput(input EventInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.Required(FieldLocation, input.Location).MaxLen(FieldLocation, input.Location, 200)
	validator.MaxLen(FieldOrganizer, input.Organizer, 200)
	validator.Custom(FieldStartsAt, input.StartsAt.IsZero(), "This field is required")
	validator.Custom(FieldEndsAt, input.EndsAt != nil && input.EndsAt.Before(input.StartsAt),
		"Must not be before the start")
	return validator.Err()
}

/*
Create inserts a new calendar entry.

Parameters:
  - context: context.Context
  - input: EventInput

Returns:
  - *Event: The created entry
  - error: Validation or persistence failures
*/
func (service *Service) Create(context context.Context, input EventInput) (*Event, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &Event{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Organizer:   input.Organizer,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, entry); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("event_created", slog.String("id", entry.ID))

	return entry, nil
}

/*
Update rewrites a calendar entry.

Parameters:
  - context: context.Context
  - id: string
  - input: EventInput

Returns:
  - *Event: The updated entry
  - error: Validation failures, apperr.NotFound
*/
func (service *Service) Update(context context.Context, id string, input EventInput) (*Event, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	entry, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	entry.Title = input.Title
	entry.Description = input.Description
	entry.Location = input.Location
	entry.Organizer = input.Organizer
	entry.StartsAt = input.StartsAt
	entry.EndsAt = input.EndsAt

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("event_updated", slog.String("id", id))

	return entry, nil
}

/*
Delete permanently removes a calendar entry.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound if absent
*/
func (service *Service) Delete(context context.Context, id string) error {
	removed, err := service.repo.Delete(context, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("Event")
	}

	service.invalidate(context)
	service.logger.Info("event_deleted", slog.String("id", id))

	return nil
}

// invalidate evicts all cached upcoming pages.
func (service *Service) invalidate(context context.Context) {
	_ = service.cache.Invalidate(context, constants.CacheTagEvents)
}
