// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed event store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// eventColumns joins the canonical column list for scans.
var eventColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.ContentEvent.ID, schema.ContentEvent.Title, schema.ContentEvent.Description,
	schema.ContentEvent.Location, schema.ContentEvent.Organizer, schema.ContentEvent.StartsAt,
	schema.ContentEvent.EndsAt, schema.ContentEvent.CreatedAt, schema.ContentEvent.UpdatedAt,
)

// scanEvent hydrates one row in canonical column order.
func scanEvent(row interface{ Scan(...any) error }, extra ...any) (*Event, error) {
	entry := &Event{}
	dest := []any{
		&entry.ID, &entry.Title, &entry.Description, &entry.Location, &entry.Organizer,
		&entry.StartsAt, &entry.EndsAt, &entry.CreatedAt, &entry.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return entry, nil
}

// # Retrieval

func (repository *PostgresRepository) ListUpcoming(context context.Context, from, until time.Time, limit, offset int) ([]*Event, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() as total
		FROM %s
		WHERE %s >= $1 AND %s < $2
		ORDER BY %s ASC
		LIMIT $3 OFFSET $4`,
		eventColumns, schema.ContentEvent.Table,
		schema.ContentEvent.StartsAt, schema.ContentEvent.StartsAt, schema.ContentEvent.StartsAt,
	)

	rows, err := repository.pool.Query(context, query, from, until, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_event_repo_list_upcoming_failed: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Event, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() as total
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2`,
		eventColumns, schema.ContentEvent.Table, schema.ContentEvent.StartsAt,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_event_repo_list_failed: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// collectEvents drains a query with a trailing total column.
func collectEvents(rows pgx.Rows) ([]*Event, int, error) {
	var events []*Event
	var total int
	for rows.Next() {
		entry, err := scanEvent(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_event_repo_scan_failed: %w", err)
		}
		events = append(events, entry)
	}
	return events, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		eventColumns, schema.ContentEvent.Table, schema.ContentEvent.ID,
	)

	entry, err := scanEvent(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Event")
		}
		return nil, fmt.Errorf("postgres_event_repo_find_by_id_failed: %w", err)
	}
	return entry, nil
}

// # Mutation

func (repository *PostgresRepository) Create(context context.Context, entry *Event) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s`,
		schema.ContentEvent.Table,
		schema.ContentEvent.ID, schema.ContentEvent.Title, schema.ContentEvent.Description,
		schema.ContentEvent.Location, schema.ContentEvent.Organizer, schema.ContentEvent.StartsAt,
		schema.ContentEvent.EndsAt, schema.ContentEvent.CreatedAt, schema.ContentEvent.UpdatedAt,
		schema.ContentEvent.CreatedAt, schema.ContentEvent.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		entry.ID, entry.Title, entry.Description, entry.Location, entry.Organizer,
		entry.StartsAt, entry.EndsAt,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_event_repo_create_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, entry *Event) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.ContentEvent.Table,
		schema.ContentEvent.Title, schema.ContentEvent.Description, schema.ContentEvent.Location,
		schema.ContentEvent.Organizer, schema.ContentEvent.StartsAt, schema.ContentEvent.EndsAt,
		schema.ContentEvent.UpdatedAt,
		schema.ContentEvent.ID, schema.ContentEvent.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		entry.ID, entry.Title, entry.Description, entry.Location, entry.Organizer,
		entry.StartsAt, entry.EndsAt,
	).Scan(&entry.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Event")
	}
	if err != nil {
		return fmt.Errorf("postgres_event_repo_update_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContentEvent.Table, schema.ContentEvent.ID,
	)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, fmt.Errorf("postgres_event_repo_delete_failed: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
