// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package news_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enniomrk/wendessen-api/internal/news"
	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/constants"
)

// memoryStore is an in-memory news repository.
type memoryStore struct {
	articles []*news.Article
}

func (store *memoryStore) find(id string) *news.Article {
	for _, article := range store.articles {
		if article.ID == id {
			return article
		}
	}
	return nil
}

func (store *memoryStore) ListPublished(_ context.Context, limit, offset int) ([]*news.Article, int, error) {
	var published []*news.Article
	for _, article := range store.articles {
		if article.Published() {
			published = append(published, article)
		}
	}
	return published, len(published), nil
}

func (store *memoryStore) List(_ context.Context, limit, offset int) ([]*news.Article, int, error) {
	return store.articles, len(store.articles), nil
}

func (store *memoryStore) FindByID(_ context.Context, id string) (*news.Article, error) {
	if article := store.find(id); article != nil {
		return article, nil
	}
	return nil, apperr.NotFound("Article")
}

func (store *memoryStore) FindPublishedBySlug(_ context.Context, slug string) (*news.Article, error) {
	for _, article := range store.articles {
		if article.Slug == slug && article.Published() {
			return article, nil
		}
	}
	return nil, apperr.NotFound("Article")
}

func (store *memoryStore) Create(_ context.Context, article *news.Article) error {
	for _, existing := range store.articles {
		if existing.Slug == article.Slug {
			return apperr.Conflict("An article with this title already exists")
		}
	}
	store.articles = append(store.articles, article)
	return nil
}

func (store *memoryStore) Update(_ context.Context, article *news.Article) error {
	if store.find(article.ID) == nil {
		return apperr.NotFound("Article")
	}
	return nil
}

func (store *memoryStore) SetPublishedAt(_ context.Context, id string, publish bool) (*news.Article, error) {
	article := store.find(id)
	if article == nil {
		return nil, apperr.NotFound("Article")
	}
	if publish {
		now := time.Now()
		article.PublishedAt = &now
	} else {
		article.PublishedAt = nil
	}
	return article, nil
}

func (store *memoryStore) SetPinned(_ context.Context, id string, pinned bool) (*news.Article, error) {
	article := store.find(id)
	if article == nil {
		return nil, apperr.NotFound("Article")
	}
	article.IsPinned = pinned
	return article, nil
}

func (store *memoryStore) CountPinned(context.Context) (int, error) {
	count := 0
	for _, article := range store.articles {
		if article.IsPinned {
			count++
		}
	}
	return count, nil
}

func (store *memoryStore) Delete(_ context.Context, id string) (bool, error) {
	for index, article := range store.articles {
		if article.ID == id {
			store.articles = append(store.articles[:index], store.articles[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) error                           { return apperr.NotFound("Cache") }
func (noopCache) Set(context.Context, string, any, time.Duration, ...string) error { return nil }
func (noopCache) Invalidate(context.Context, ...string) error                      { return nil }

func newTestService() (*news.Service, *memoryStore) {
	store := &memoryStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return news.NewService(store, noopCache{}, logger), store
}

func draft(t *testing.T, service *news.Service, title string) *news.Article {
	t.Helper()

	article, err := service.Create(context.Background(), news.ArticleInput{
		Title:   title,
		Summary: "Kurzmeldung aus dem Dorf",
		Body:    "Volltext der Meldung.",
	})
	require.NoError(t, err)
	return article
}

func TestCreate(t *testing.T) {
	service, _ := newTestService()

	article := draft(t, service, "Neues vom Dorffest")
	assert.Equal(t, "neues-vom-dorffest", article.Slug)
	assert.False(t, article.Published())
	assert.False(t, article.IsPinned)

	t.Run("duplicate_title", func(t *testing.T) {
		_, err := service.Create(context.Background(), news.ArticleInput{
			Title:   "Neues vom Dorffest",
			Summary: "Nochmal",
			Body:    "Text",
		})
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
	})

	t.Run("missing_body", func(t *testing.T) {
		_, err := service.Create(context.Background(), news.ArticleInput{Title: "T", Summary: "S"})
		assert.Error(t, err)
	})
}

func TestPublishLifecycle(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	article := draft(t, service, "Baustelle Leipziger Strasse")

	published, err := service.Publish(ctx, article.ID)
	require.NoError(t, err)
	assert.True(t, published.Published())

	found, err := service.GetBySlug(ctx, article.Slug)
	require.NoError(t, err)
	assert.Equal(t, article.ID, found.ID)

	unpublished, err := service.Unpublish(ctx, article.ID)
	require.NoError(t, err)
	assert.False(t, unpublished.Published())

	_, err = service.GetBySlug(ctx, article.Slug)
	assert.Error(t, err)
}

/*
TestPin_Cap verifies the pin limit: once the cap is reached further pins are
refused, re-pinning a pinned article stays a success, and unpinning frees a
slot.
*/
func TestPin_Cap(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	var pinned []*news.Article
	for _, title := range []string{"Erste", "Zweite", "Dritte"} {
		article := draft(t, service, title)
		_, err := service.Pin(ctx, article.ID)
		require.NoError(t, err)
		pinned = append(pinned, article)
	}
	require.Equal(t, 3, constants.MaxPinnedArticles)

	overflow := draft(t, service, "Vierte")
	_, err := service.Pin(ctx, overflow.ID)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "LIMIT_EXCEEDED", appErr.Code)

	// Re-pinning an already pinned article never counts against the cap.
	again, err := service.Pin(ctx, pinned[0].ID)
	require.NoError(t, err)
	assert.True(t, again.IsPinned)

	_, err = service.Unpin(ctx, pinned[0].ID)
	require.NoError(t, err)

	freed, err := service.Pin(ctx, overflow.ID)
	require.NoError(t, err)
	assert.True(t, freed.IsPinned)
}

func TestDelete(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()
	article := draft(t, service, "Wird entfernt")

	require.NoError(t, service.Delete(ctx, article.ID))
	assert.Empty(t, store.articles)

	err := service.Delete(ctx, article.ID)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}
