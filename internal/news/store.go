// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package news

import "context"

// Repository defines the persistence contract for articles.
type Repository interface {
	/*
		ListPublished returns the public page: published articles only,
		pinned first, then newest by publication date.

		Returns:
		  - []*Article: The page
		  - int: Total published count
		  - error: Retrieval failures
	*/
	ListPublished(ctx context.Context, limit, offset int) ([]*Article, int, error)

	/*
		List returns every article for the editorial listing, drafts included.

		Returns:
		  - []*Article: Articles, newest first
		  - int: Total count
		  - error: Retrieval failures
	*/
	List(ctx context.Context, limit, offset int) ([]*Article, int, error)

	/*
		FindByID retrieves one article by primary key.

		Returns:
		  - *Article: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*Article, error)

	/*
		FindPublishedBySlug retrieves one published article by slug.

		Returns:
		  - *Article: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindPublishedBySlug(ctx context.Context, slug string) (*Article, error)

	/*
		Create inserts a new article.

		Returns:
		  - error: apperr.Conflict on a duplicate slug, persistence failures
	*/
	Create(ctx context.Context, article *Article) error

	/*
		Update writes the mutable content fields.

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(ctx context.Context, article *Article) error

	/*
		SetPublishedAt publishes or unpublishes an article.

		Returns:
		  - *Article: The updated row
		  - error: apperr.NotFound or persistence failures
	*/
	SetPublishedAt(ctx context.Context, id string, publish bool) (*Article, error)

	/*
		SetPinned flips the pinned flag.

		Returns:
		  - *Article: The updated row
		  - error: apperr.NotFound or persistence failures
	*/
	SetPinned(ctx context.Context, id string, pinned bool) (*Article, error)

	/*
		CountPinned returns how many articles are currently pinned.

		Returns:
		  - int: The pinned count
		  - error: Retrieval failures
	*/
	CountPinned(ctx context.Context) (int, error)

	/*
		Delete hard-deletes one article.

		Returns:
		  - bool: Whether a row was removed
		  - error: Persistence failures
	*/
	Delete(ctx context.Context, id string) (bool, error)
}
