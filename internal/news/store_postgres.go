// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package news

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed article store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// articleColumns joins the canonical column list for scans.
var articleColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.ContentNewsArticle.ID, schema.ContentNewsArticle.Title, schema.ContentNewsArticle.Slug,
	schema.ContentNewsArticle.Summary, schema.ContentNewsArticle.Body, schema.ContentNewsArticle.HeroImageURL,
	schema.ContentNewsArticle.IsPinned, schema.ContentNewsArticle.PublishedAt,
	schema.ContentNewsArticle.CreatedAt, schema.ContentNewsArticle.UpdatedAt,
)

// scanArticle hydrates one row in canonical column order.
func scanArticle(row interface{ Scan(...any) error }, extra ...any) (*Article, error) {
	article := &Article{}
	dest := []any{
		&article.ID, &article.Title, &article.Slug, &article.Summary, &article.Body,
		&article.HeroImageURL, &article.IsPinned, &article.PublishedAt,
		&article.CreatedAt, &article.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return article, nil
}

// # Retrieval

func (repository *PostgresRepository) ListPublished(context context.Context, limit, offset int) ([]*Article, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() as total
		FROM %s
		WHERE %s IS NOT NULL AND %s <= NOW()
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2`,
		articleColumns, schema.ContentNewsArticle.Table,
		schema.ContentNewsArticle.PublishedAt, schema.ContentNewsArticle.PublishedAt,
		schema.ContentNewsArticle.IsPinned, schema.ContentNewsArticle.PublishedAt,
	)

	return repository.queryPage(context, query, limit, offset)
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Article, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() as total
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		articleColumns, schema.ContentNewsArticle.Table, schema.ContentNewsArticle.CreatedAt,
	)

	return repository.queryPage(context, query, limit, offset)
}

// queryPage runs one paginated article query with a trailing total column.
func (repository *PostgresRepository) queryPage(context context.Context, query string, limit, offset int) ([]*Article, int, error) {
	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_news_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var articles []*Article
	var total int
	for rows.Next() {
		article, err := scanArticle(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_news_repo_scan_failed: %w", err)
		}
		articles = append(articles, article)
	}

	return articles, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		articleColumns, schema.ContentNewsArticle.Table, schema.ContentNewsArticle.ID,
	)

	article, err := scanArticle(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, fmt.Errorf("postgres_news_repo_find_by_id_failed: %w", err)
	}
	return article, nil
}

func (repository *PostgresRepository) FindPublishedBySlug(context context.Context, slug string) (*Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s IS NOT NULL AND %s <= NOW()`,
		articleColumns, schema.ContentNewsArticle.Table,
		schema.ContentNewsArticle.Slug, schema.ContentNewsArticle.PublishedAt, schema.ContentNewsArticle.PublishedAt,
	)

	article, err := scanArticle(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, fmt.Errorf("postgres_news_repo_find_by_slug_failed: %w", err)
	}
	return article, nil
}

// # Mutation

func (repository *PostgresRepository) Create(context context.Context, article *Article) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s`,
		schema.ContentNewsArticle.Table,
		schema.ContentNewsArticle.ID, schema.ContentNewsArticle.Title, schema.ContentNewsArticle.Slug,
		schema.ContentNewsArticle.Summary, schema.ContentNewsArticle.Body, schema.ContentNewsArticle.HeroImageURL,
		schema.ContentNewsArticle.IsPinned, schema.ContentNewsArticle.CreatedAt, schema.ContentNewsArticle.UpdatedAt,
		schema.ContentNewsArticle.CreatedAt, schema.ContentNewsArticle.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		article.ID, article.Title, article.Slug, article.Summary, article.Body,
		article.HeroImageURL, article.IsPinned,
	).Scan(&article.CreatedAt, &article.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("An article with this title already exists")
	}
	if err != nil {
		return fmt.Errorf("postgres_news_repo_create_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, article *Article) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.ContentNewsArticle.Table,
		schema.ContentNewsArticle.Title, schema.ContentNewsArticle.Slug, schema.ContentNewsArticle.Summary,
		schema.ContentNewsArticle.Body, schema.ContentNewsArticle.HeroImageURL, schema.ContentNewsArticle.UpdatedAt,
		schema.ContentNewsArticle.ID, schema.ContentNewsArticle.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		article.ID, article.Title, article.Slug, article.Summary, article.Body, article.HeroImageURL,
	).Scan(&article.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("An article with this title already exists")
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Article")
	}
	if err != nil {
		return fmt.Errorf("postgres_news_repo_update_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) SetPublishedAt(context context.Context, id string, publish bool) (*Article, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = CASE WHEN $2 THEN NOW() ELSE NULL END, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.ContentNewsArticle.Table,
		schema.ContentNewsArticle.PublishedAt, schema.ContentNewsArticle.UpdatedAt,
		schema.ContentNewsArticle.ID, articleColumns,
	)

	article, err := scanArticle(repository.pool.QueryRow(context, query, id, publish))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, fmt.Errorf("postgres_news_repo_set_published_failed: %w", err)
	}
	return article, nil
}

func (repository *PostgresRepository) SetPinned(context context.Context, id string, pinned bool) (*Article, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.ContentNewsArticle.Table,
		schema.ContentNewsArticle.IsPinned, schema.ContentNewsArticle.UpdatedAt,
		schema.ContentNewsArticle.ID, articleColumns,
	)

	article, err := scanArticle(repository.pool.QueryRow(context, query, id, pinned))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, fmt.Errorf("postgres_news_repo_set_pinned_failed: %w", err)
	}
	return article, nil
}

func (repository *PostgresRepository) CountPinned(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`,
		schema.ContentNewsArticle.Table, schema.ContentNewsArticle.IsPinned,
	)

	var count int
	if err := repository.pool.QueryRow(context, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_news_repo_count_pinned_failed: %w", err)
	}
	return count, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContentNewsArticle.Table, schema.ContentNewsArticle.ID,
	)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, fmt.Errorf("postgres_news_repo_delete_failed: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
