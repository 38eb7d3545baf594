// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package admin

import "context"

// Repository defines the persistence contract for accounts, roles, and the
// permission catalog.
//
// # Implementation Notes
//
// User reads return the account hydrated with its role and the role's
// default permissions, so callers can resolve effective permissions without
// a second round trip.
type Repository interface {
	/*
		FindUserByID retrieves one account by primary key.

		Returns:
		  - *AdminUser: Hydrated with role and role permissions
		  - error: apperr.NotFound or retrieval failures
	*/
	FindUserByID(ctx context.Context, id string) (*AdminUser, error)

	/*
		FindUserByUsername retrieves one account by its unique username.

		Returns:
		  - *AdminUser: Hydrated with role and role permissions
		  - error: apperr.NotFound or retrieval failures
	*/
	FindUserByUsername(ctx context.Context, username string) (*AdminUser, error)

	/*
		ListUsers returns a paginated account listing.

		Returns:
		  - []*AdminUser: Accounts ordered by username
		  - int: Total account count
		  - error: Retrieval failures
	*/
	ListUsers(ctx context.Context, limit, offset int) ([]*AdminUser, int, error)

	/*
		CreateUser inserts a new account.

		Returns:
		  - error: apperr.Conflict on a duplicate username, or persistence failures
	*/
	CreateUser(ctx context.Context, user *AdminUser) error

	/*
		UpdateUserAccess writes the role assignment and custom permission list.

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateUserAccess(ctx context.Context, user *AdminUser) error

	/*
		UpdatePassword writes a new password hash and the change-required flag.

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdatePassword(ctx context.Context, id, passwordHash string, mustChange bool) error

	/*
		TouchLastLogin stamps the account's last successful login.

		Returns:
		  - error: Persistence failures
	*/
	TouchLastLogin(ctx context.Context, id string) error

	/*
		DeleteUser hard-deletes one account.

		Returns:
		  - bool: Whether a row was removed
		  - error: Persistence failures
	*/
	DeleteUser(ctx context.Context, id string) (bool, error)

	/*
		ListRoles returns every role with its default permissions.

		Returns:
		  - []*Role: Roles ordered by name
		  - error: Retrieval failures
	*/
	ListRoles(ctx context.Context) ([]*Role, error)

	/*
		FindRoleByID retrieves one role with its default permissions.

		Returns:
		  - *Role: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindRoleByID(ctx context.Context, id string) (*Role, error)

	/*
		ListPermissions returns the grantable permission catalog.

		Returns:
		  - []*Permission: Catalog ordered by category, then name
		  - error: Retrieval failures
	*/
	ListPermissions(ctx context.Context) ([]*Permission, error)
}
