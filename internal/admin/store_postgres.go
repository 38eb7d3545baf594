// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package admin (Postgres) implements the storage layer for editorial accounts.

# Schema Table Mapping
  - admin."user": Accounts, role assignment, and custom permission grants.
  - admin.role: Named roles.
  - admin.permission: The grantable permission catalog.
  - admin.rolepermission: Role-to-permission assignments.
*/
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/database/schema"
	"github.com/enniomrk/wendessen-api/pkg/slice"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// # User Retrieval

func (repository *PostgresRepository) FindUserByID(context context.Context, id string) (*AdminUser, error) {
	return repository.findUser(context, schema.AdminUser.ID, id)
}

func (repository *PostgresRepository) FindUserByUsername(context context.Context, username string) (*AdminUser, error) {
	return repository.findUser(context, schema.AdminUser.Username, username)
}

// findUser loads one account by an exact column match and hydrates its role.
func (repository *PostgresRepository) findUser(context context.Context, column, value string) (*AdminUser, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.AdminUser.ID, schema.AdminUser.Username, schema.AdminUser.PasswordHash,
		schema.AdminUser.MustChangePassword, schema.AdminUser.RoleID, schema.AdminUser.CustomPermissions,
		schema.AdminUser.VereinID, schema.AdminUser.LastLogin, schema.AdminUser.CreatedAt,
		schema.AdminUser.UpdatedAt,
		schema.AdminUser.Table, column,
	)

	user := &AdminUser{}
	var rawCustom []byte
	err := repository.pool.QueryRow(context, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.MustChangePassword,
		&user.RoleID,
		&rawCustom,
		&user.VereinID,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_admin_repo_find_user_failed: %w", err)
	}

	if err := unmarshalPermissions(rawCustom, &user.CustomPermissions); err != nil {
		return nil, err
	}

	if user.RoleID != nil {
		role, err := repository.FindRoleByID(context, *user.RoleID)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}

	return user, nil
}

func (repository *PostgresRepository) ListUsers(context context.Context, limit, offset int) ([]*AdminUser, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s,
			COUNT(*) OVER() as total
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2`,
		schema.AdminUser.ID, schema.AdminUser.Username, schema.AdminUser.MustChangePassword,
		schema.AdminUser.RoleID, schema.AdminUser.CustomPermissions, schema.AdminUser.VereinID,
		schema.AdminUser.LastLogin, schema.AdminUser.CreatedAt, schema.AdminUser.UpdatedAt,
		schema.AdminUser.Table, schema.AdminUser.Username,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_admin_repo_list_users_failed: %w", err)
	}
	defer rows.Close()

	roles, err := repository.rolesByID(context)
	if err != nil {
		return nil, 0, err
	}

	var users []*AdminUser
	var total int
	for rows.Next() {
		user := &AdminUser{}
		var rawCustom []byte
		err := rows.Scan(
			&user.ID, &user.Username, &user.MustChangePassword, &user.RoleID,
			&rawCustom, &user.VereinID, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_admin_repo_scan_user_failed: %w", err)
		}

		if err := unmarshalPermissions(rawCustom, &user.CustomPermissions); err != nil {
			return nil, 0, err
		}
		if user.RoleID != nil {
			user.Role = roles[*user.RoleID]
		}

		users = append(users, user)
	}

	return users, total, nil
}

// # User Mutation

func (repository *PostgresRepository) CreateUser(context context.Context, user *AdminUser) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s`,
		schema.AdminUser.Table,
		schema.AdminUser.ID, schema.AdminUser.Username, schema.AdminUser.PasswordHash,
		schema.AdminUser.MustChangePassword, schema.AdminUser.RoleID, schema.AdminUser.CustomPermissions,
		schema.AdminUser.VereinID, schema.AdminUser.CreatedAt, schema.AdminUser.UpdatedAt,
		schema.AdminUser.CreatedAt, schema.AdminUser.UpdatedAt,
	)

	rawCustom, err := json.Marshal(NormalizeCustomPermissions(user.CustomPermissions))
	if err != nil {
		return fmt.Errorf("postgres_admin_repo_marshal_permissions_failed: %w", err)
	}

	err = repository.pool.QueryRow(context, query,
		user.ID, user.Username, user.PasswordHash, user.MustChangePassword, user.RoleID, rawCustom, user.VereinID,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("Username already taken")
	}
	if err != nil {
		return fmt.Errorf("postgres_admin_repo_create_user_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) UpdateUserAccess(context context.Context, user *AdminUser) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.AdminUser.Table,
		schema.AdminUser.RoleID, schema.AdminUser.CustomPermissions, schema.AdminUser.VereinID,
		schema.AdminUser.UpdatedAt,
		schema.AdminUser.ID, schema.AdminUser.UpdatedAt,
	)

	rawCustom, err := json.Marshal(NormalizeCustomPermissions(user.CustomPermissions))
	if err != nil {
		return fmt.Errorf("postgres_admin_repo_marshal_permissions_failed: %w", err)
	}

	err = repository.pool.QueryRow(context, query, user.ID, user.RoleID, rawCustom, user.VereinID).Scan(&user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("User")
	}
	if err != nil {
		return fmt.Errorf("postgres_admin_repo_update_access_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) UpdatePassword(context context.Context, id, passwordHash string, mustChange bool) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1`,
		schema.AdminUser.Table,
		schema.AdminUser.PasswordHash, schema.AdminUser.MustChangePassword, schema.AdminUser.UpdatedAt,
		schema.AdminUser.ID,
	)

	result, err := repository.pool.Exec(context, query, id, passwordHash, mustChange)
	if err != nil {
		return fmt.Errorf("postgres_admin_repo_update_password_failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresRepository) TouchLastLogin(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`,
		schema.AdminUser.Table, schema.AdminUser.LastLogin, schema.AdminUser.ID,
	)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_admin_repo_touch_last_login_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) DeleteUser(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.AdminUser.Table, schema.AdminUser.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, fmt.Errorf("postgres_admin_repo_delete_user_failed: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// # Roles & Permission Catalog

// roleQuery aggregates each role's permission names in one round trip.
var roleQuery = fmt.Sprintf(`
	SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
		COALESCE(array_agg(p.%s ORDER BY p.%s) FILTER (WHERE p.%s IS NOT NULL), '{}') as permissions
	FROM %s r
	LEFT JOIN %s rp ON rp.%s = r.%s
	LEFT JOIN %s p ON p.%s = rp.%s`,
	schema.AdminRole.ID, schema.AdminRole.Name, schema.AdminRole.DisplayName,
	schema.AdminRole.Description, schema.AdminRole.CreatedAt, schema.AdminRole.UpdatedAt,
	schema.AdminPermission.Name, schema.AdminPermission.Name, schema.AdminPermission.Name,
	schema.AdminRole.Table,
	schema.AdminRolePermission.Table, schema.AdminRolePermission.RoleID, schema.AdminRole.ID,
	schema.AdminPermission.Table, schema.AdminPermission.ID, schema.AdminRolePermission.PermissionID,
)

func (repository *PostgresRepository) ListRoles(context context.Context) ([]*Role, error) {
	query := roleQuery + fmt.Sprintf(`
		GROUP BY r.%s
		ORDER BY r.%s ASC`,
		schema.AdminRole.ID, schema.AdminRole.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_list_roles_failed: %w", err)
	}
	defer rows.Close()

	var roles []*Role
	for rows.Next() {
		role := &Role{}
		err := rows.Scan(
			&role.ID, &role.Name, &role.DisplayName, &role.Description,
			&role.CreatedAt, &role.UpdatedAt, &role.Permissions,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_admin_repo_scan_role_failed: %w", err)
		}
		roles = append(roles, role)
	}

	return roles, nil
}

func (repository *PostgresRepository) FindRoleByID(context context.Context, id string) (*Role, error) {
	query := roleQuery + fmt.Sprintf(`
		WHERE r.%s = $1
		GROUP BY r.%s`,
		schema.AdminRole.ID, schema.AdminRole.ID,
	)

	role := &Role{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&role.ID, &role.Name, &role.DisplayName, &role.Description,
		&role.CreatedAt, &role.UpdatedAt, &role.Permissions,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Role")
		}
		return nil, fmt.Errorf("postgres_admin_repo_find_role_failed: %w", err)
	}

	return role, nil
}

// rolesByID loads all roles keyed by id for listing hydration.
func (repository *PostgresRepository) rolesByID(context context.Context) (map[string]*Role, error) {
	roles, err := repository.ListRoles(context)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*Role, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
	}
	return byID, nil
}

func (repository *PostgresRepository) ListPermissions(context context.Context) ([]*Permission, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC`,
		schema.AdminPermission.ID, schema.AdminPermission.Name, schema.AdminPermission.DisplayName,
		schema.AdminPermission.Description, schema.AdminPermission.Category,
		schema.AdminPermission.Table,
		schema.AdminPermission.Category, schema.AdminPermission.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_list_permissions_failed: %w", err)
	}
	defer rows.Close()

	var permissions []*Permission
	for rows.Next() {
		permission := &Permission{}
		err := rows.Scan(
			&permission.ID, &permission.Name, &permission.DisplayName,
			&permission.Description, &permission.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_admin_repo_scan_permission_failed: %w", err)
		}
		permissions = append(permissions, permission)
	}

	return permissions, nil
}

// unmarshalPermissions decodes the stored JSONB grant list. A NULL column
// yields an empty slice rather than nil, and names from the excluded
// namespace are dropped on the way out: a grant persisted before its
// namespace was excluded must not resurface in API responses.
func unmarshalPermissions(raw []byte, dest *[]string) error {
	if len(raw) == 0 {
		*dest = []string{}
		return nil
	}

	var stored []string
	if err := json.Unmarshal(raw, &stored); err != nil {
		return fmt.Errorf("postgres_admin_repo_decode_permissions_failed: %w", err)
	}

	granted := slice.Filter(stored, func(name string) bool { return !IsExcluded(name) })
	if granted == nil {
		granted = []string{}
	}
	*dest = granted
	return nil
}
