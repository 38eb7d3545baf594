// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package verein

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

// NewPostgresRepository constructs a PostgreSQL backed directory store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// vereinColumns joins the canonical column list for scans.
var vereinColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.ContentVerein.ID, schema.ContentVerein.Name, schema.ContentVerein.Slug,
	schema.ContentVerein.Description, schema.ContentVerein.ContactName, schema.ContentVerein.ContactEmail,
	schema.ContentVerein.Website, schema.ContentVerein.CreatedAt, schema.ContentVerein.UpdatedAt,
)

// scanVerein hydrates one row in canonical column order.
func scanVerein(row interface{ Scan(...any) error }, extra ...any) (*Verein, error) {
	club := &Verein{}
	dest := []any{
		&club.ID, &club.Name, &club.Slug, &club.Description, &club.ContactName,
		&club.ContactEmail, &club.Website, &club.CreatedAt, &club.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return club, nil
}

// # Retrieval

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Verein, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() as total
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2`,
		vereinColumns, schema.ContentVerein.Table, schema.ContentVerein.Name,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_verein_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var clubs []*Verein
	var total int
	for rows.Next() {
		club, err := scanVerein(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_verein_repo_scan_failed: %w", err)
		}
		clubs = append(clubs, club)
	}

	return clubs, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Verein, error) {
	return repository.findBy(context, schema.ContentVerein.ID, id)
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Verein, error) {
	return repository.findBy(context, schema.ContentVerein.Slug, slug)
}

// findBy loads one club by an exact column match.
func (repository *PostgresRepository) findBy(context context.Context, column, value string) (*Verein, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		vereinColumns, schema.ContentVerein.Table, column,
	)

	club, err := scanVerein(repository.pool.QueryRow(context, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Verein")
		}
		return nil, fmt.Errorf("postgres_verein_repo_find_failed: %w", err)
	}
	return club, nil
}

// # Mutation

func (repository *PostgresRepository) Create(context context.Context, club *Verein) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s`,
		schema.ContentVerein.Table,
		schema.ContentVerein.ID, schema.ContentVerein.Name, schema.ContentVerein.Slug,
		schema.ContentVerein.Description, schema.ContentVerein.ContactName, schema.ContentVerein.ContactEmail,
		schema.ContentVerein.Website, schema.ContentVerein.CreatedAt, schema.ContentVerein.UpdatedAt,
		schema.ContentVerein.CreatedAt, schema.ContentVerein.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		club.ID, club.Name, club.Slug, club.Description, club.ContactName, club.ContactEmail, club.Website,
	).Scan(&club.CreatedAt, &club.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("A club with this name already exists")
	}
	if err != nil {
		return fmt.Errorf("postgres_verein_repo_create_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, club *Verein) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.ContentVerein.Table,
		schema.ContentVerein.Name, schema.ContentVerein.Slug, schema.ContentVerein.Description,
		schema.ContentVerein.ContactName, schema.ContentVerein.ContactEmail, schema.ContentVerein.Website,
		schema.ContentVerein.UpdatedAt,
		schema.ContentVerein.ID, schema.ContentVerein.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		club.ID, club.Name, club.Slug, club.Description, club.ContactName, club.ContactEmail, club.Website,
	).Scan(&club.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("A club with this name already exists")
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Verein")
	}
	if err != nil {
		return fmt.Errorf("postgres_verein_repo_update_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContentVerein.Table, schema.ContentVerein.ID,
	)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, fmt.Errorf("postgres_verein_repo_delete_failed: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
