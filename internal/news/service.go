// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package news

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

// Service orchestrates article authoring and publication.
type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

// NewService constructs a new news [Service].
func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// publicPage is the cached shape of one public page.
type publicPage struct {
	Items []*Article `json:"items"`
	Total int        `json:"total"`
}

/*
ListPublic returns the published articles, pinned first.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Article: The page
  - int: Total published count
  - error: Retrieval errors
*/
func (service *Service) ListPublic(context context.Context, limit, offset int) ([]*Article, int, error) {
	cacheKey := fmt.Sprintf("news:public:%d:%d", limit, offset)

	var page publicPage
	if err := service.cache.Get(context, cacheKey, &page); err == nil {
		return page.Items, page.Total, nil
	}

	items, total, err := service.repo.ListPublished(context, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	_ = service.cache.Set(context, cacheKey, publicPage{Items: items, Total: total},
		constants.CacheTTL, constants.CacheTagNews)

	return items, total, nil
}

/*
GetBySlug returns one published article for the public detail page.

Parameters:
  - context: context.Context
  - articleSlug: string

Returns:
  - *Article: The article
  - error: apperr.NotFound for drafts and unknown slugs alike
*/
func (service *Service) GetBySlug(context context.Context, articleSlug string) (*Article, error) {
	return service.repo.FindPublishedBySlug(context, articleSlug)
}

// # Editorial Operations

/*
List returns the editorial listing, drafts included.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Article: Articles, newest first
  - int: Total count
  - error: Retrieval errors
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*Article, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
Get returns one article by id, drafts included.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Article: The article
  - error: apperr.NotFound if absent
*/
func (service *Service) Get(context context.Context, id string) (*Article, error) {
	return service.repo.FindByID(context, id)
}

// ArticleInput holds the author-editable fields.
type ArticleInput struct {
	Title        string  `json:"title"`
	Summary      string  `json:"summary"`
	Body         string  `json:"body"`
	HeroImageURL *string `json:"hero_image_url,omitempty"`
}

// validateInput applies the shared field rules.
func validateInput(input ArticleInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.Required(FieldSummary, input.Summary).MaxLen(FieldSummary, input.Summary, 500)
	validator.Required(FieldBody, input.Body)
	return validator.Err()
}

/*
Create drafts a new article. The slug is derived from the title.

Parameters:
  - context: context.Context
  - input: ArticleInput

Returns:
  - *Article: The created draft
  - error: Validation failures, apperr.Conflict on a slug collision
*/
func (service *Service) Create(context context.Context, input ArticleInput) (*Article, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	article := &Article{
		ID:           uuidv7.New(),
		Title:        input.Title,
		Slug:         slug.From(input.Title),
		Summary:      input.Summary,
		Body:         input.Body,
		HeroImageURL: input.HeroImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.repo.Create(context, article); err != nil {
		return nil, err
	}

	service.logger.Info("news_article_created",
		slog.String("id", article.ID),
		slog.String("slug", article.Slug),
	)

	return article, nil
}

/*
Update rewrites an article's content. The slug follows the new title.

Parameters:
  - context: context.Context
  - id: string
  - input: ArticleInput

Returns:
  - *Article: The updated article
  - error: Validation failures, apperr.NotFound
*/
func (service *Service) Update(context context.Context, id string, input ArticleInput) (*Article, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	article, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	article.Title = input.Title
	article.Slug = slug.From(input.Title)
	article.Summary = input.Summary
	article.Body = input.Body
	article.HeroImageURL = input.HeroImageURL

	if err := service.repo.Update(context, article); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("news_article_updated", slog.String("id", id))

	return article, nil
}

/*
Publish makes an article publicly visible.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Article: The published article
  - error: apperr.NotFound if absent
*/
func (service *Service) Publish(context context.Context, id string) (*Article, error) {
	article, err := service.repo.SetPublishedAt(context, id, true)
	if err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("news_article_published", slog.String("id", id))

	return article, nil
}

/*
Unpublish pulls an article back to draft state.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Article: The article, now a draft
  - error: apperr.NotFound if absent
*/
func (service *Service) Unpublish(context context.Context, id string) (*Article, error) {
	article, err := service.repo.SetPublishedAt(context, id, false)
	if err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("news_article_unpublished", slog.String("id", id))

	return article, nil
}

/*
Pin fixes an article to the top of the public page.

Description: At most [constants.MaxPinnedArticles] articles may be pinned at
once; beyond that the call fails with LIMIT_EXCEEDED and the editor must
unpin something first.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Article: The pinned article
  - error: apperr.LimitExceeded at the cap, apperr.NotFound if absent
*/
func (service *Service) Pin(context context.Context, id string) (*Article, error) {
	article, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if article.IsPinned {
		return article, nil
	}

	pinned, err := service.repo.CountPinned(context)
	if err != nil {
		return nil, err
	}
	if pinned >= constants.MaxPinnedArticles {
		return nil, apperr.LimitExceeded(
			fmt.Sprintf("At most %d articles can be pinned", constants.MaxPinnedArticles))
	}

	article, err = service.repo.SetPinned(context, id, true)
	if err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("news_article_pinned", slog.String("id", id))

	return article, nil
}

/*
Unpin releases an article from the top of the public page.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Article: The unpinned article
  - error: apperr.NotFound if absent
*/
func (service *Service) Unpin(context context.Context, id string) (*Article, error) {
	article, err := service.repo.SetPinned(context, id, false)
	if err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("news_article_unpinned", slog.String("id", id))

	return article, nil
}

/*
Delete permanently removes an article.

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
		return apperr.NotFound("Article")
	}

	service.invalidate(context)
	service.logger.Info("news_article_deleted", slog.String("id", id))

	return nil
}

// invalidate evicts all cached public news pages.
func (service *Service) invalidate(context context.Context) {
	_ = service.cache.Invalidate(context, constants.CacheTagNews)
}
