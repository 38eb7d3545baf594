// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package verein

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/constants"
	"github.com/enniomrk/wendessen-api/internal/platform/validate"
	"github.com/enniomrk/wendessen-api/pkg/slug"
	"github.com/enniomrk/wendessen-api/pkg/uuidv7"
)

// Cache abstracts the tag-invalidated read cache.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error
	Invalidate(ctx context.Context, tags ...string) error
}

// Service orchestrates the club directory.
type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

// NewService constructs a new verein [Service].
func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// publicPage is the cached shape of one directory page.
type publicPage struct {
	Items []*Verein `json:"items"`
	Total int       `json:"total"`
}

/*
ListPublic returns the club directory.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Verein: Clubs ordered by name
  - int: Total club count
  - error: Retrieval errors
*/
func (service *Service) ListPublic(context context.Context, limit, offset int) ([]*Verein, int, error) {
	cacheKey := fmt.Sprintf("vereine:public:%d:%d", limit, offset)

	var page publicPage
	if err := service.cache.Get(context, cacheKey, &page); err == nil {
		return page.Items, page.Total, nil
	}

	items, total, err := service.repo.List(context, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	_ = service.cache.Set(context, cacheKey, publicPage{Items: items, Total: total},
		constants.CacheTTL, constants.CacheTagVereine)

	return items, total, nil
}

/*
List returns the club directory without the cache, for the maintenance view.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Verein: Clubs ordered by name
  - int: Total club count
  - error: Retrieval errors
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*Verein, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
GetBySlug returns one club for the public detail page.

Parameters:
  - context: context.Context
  - vereinSlug: string

Returns:
  - *Verein: The club
  - error: apperr.NotFound if absent
*/
func (service *Service) GetBySlug(context context.Context, vereinSlug string) (*Verein, error) {
	return service.repo.FindBySlug(context, vereinSlug)
}

/*
Get returns one club by id.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Verein: The club
  - error: apperr.NotFound if absent
*/
func (service *Service) Get(context context.Context, id string) (*Verein, error) {
	return service.repo.FindByID(context, id)
}

// VereinInput holds the editor-supplied fields.
type VereinInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ContactName  string  `json:"contact_name"`
	ContactEmail string  `json:"contact_email"`
	Website      *string `json:"website,omitempty"`
}

// validateInput applies the shared field rules.
func validateInput(input VereinInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	validator.Required(FieldContactName, input.ContactName).MaxLen(FieldContactName, input.ContactName, 100)
	validator.Required(FieldContactEmail, input.ContactEmail).Email(FieldContactEmail, input.ContactEmail)
	return validator.Err()
}

/*
Create inserts a new club. The slug is derived from the name.

Parameters:
  - context: context.Context
  - input: VereinInput

Returns:
  - *Verein: The created club
  - error: Validation failures, apperr.Conflict on a slug collision
*/
func (service *Service) Create(context context.Context, input VereinInput) (*Verein, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	club := &Verein{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Slug:         slug.From(input.Name),
		Description:  input.Description,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		Website:      input.Website,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.repo.Create(context, club); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("verein_created",
		slog.String("id", club.ID),
		slog.String("slug", club.Slug),
	)

	return club, nil
}

/*
Update rewrites a club entry. The slug follows the new name.

Parameters:
  - context: context.Context
  - id: string
  - input: VereinInput

Returns:
  - *Verein: The updated club
  - error: Validation failures, apperr.NotFound
*/
func (service *Service) Update(context context.Context, id string, input VereinInput) (*Verein, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	club, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	club.Name = input.Name
	club.Slug = slug.From(input.Name)
	club.Description = input.Description
	club.ContactName = input.ContactName
	club.ContactEmail = input.ContactEmail
	club.Website = input.Website

	if err := service.repo.Update(context, club); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("verein_updated", slog.String("id", id))

	return club, nil
}

/*
Delete permanently removes a club from the directory.

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
		return apperr.NotFound("Verein")
	}

	service.invalidate(context)
	service.logger.Info("verein_deleted", slog.String("id", id))

	return nil
}

// invalidate evicts all cached directory pages.
func (service *Service) invalidate(context context.Context) {
	_ = service.cache.Invalidate(context, constants.CacheTagVereine)
}
