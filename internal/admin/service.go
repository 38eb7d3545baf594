// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package admin

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/sec"
	"github.com/enniomrk/wendessen-api/internal/platform/validate"
	"github.com/enniomrk/wendessen-api/pkg/slice"
	"github.com/enniomrk/wendessen-api/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates account management and request authorization.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new admin [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// errPasswordChangeRequired locks every permission-gated endpoint until the
// account replaces its provisional password.
var errPasswordChangeRequired = &apperr.AppError{
	Code:       "PASSWORD_CHANGE_REQUIRED",
	Message:    "Password change required before continuing",
	HTTPStatus: http.StatusForbidden,
}

/*
Authorize checks whether an account holds one permission right now.

Description: Implements the middleware authorization contract. The account
and its role are loaded per request, so role edits and revocations apply on
the user's next call without reissuing tokens. Accounts flagged for a
password change are denied everything until they set a new password.

Parameters:
  - context: context.Context
  - userID: string
  - permission: string

Returns:
  - error: nil when granted; apperr.Forbidden, PASSWORD_CHANGE_REQUIRED, or
    retrieval failures otherwise
*/
func (service *Service) Authorize(context context.Context, userID, permission string) error {
	user, err := service.repo.FindUserByID(context, userID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == http.StatusNotFound {
			return apperr.Unauthorized("Account no longer exists")
		}
		return err
	}

	if user.MustChangePassword {
		return errPasswordChangeRequired
	}

	if !HasPermission(user.Effective(), permission) {
		return apperr.Forbidden("Missing permission: " + permission)
	}

	return nil
}

// # Account Management

// CreateUserInput holds a new editorial account.
type CreateUserInput struct {
	Username          string   `json:"username"`
	RoleID            *string  `json:"role_id,omitempty"`
	CustomPermissions []string `json:"custom_permissions"`
	VereinID          *string  `json:"verein_id,omitempty"`
}

// CreatedUser carries the generated initial password exactly once, in the
// creation response. It is never retrievable again.
type CreatedUser struct {
	*AdminUser
	InitialPassword string `json:"initial_password"`
}

/*
CreateUser provisions a new editorial account with a generated password.

Description: The initial password is provisional; the account must replace
it on first login before any permission-gated endpoint works.

Parameters:
  - context: context.Context
  - input: CreateUserInput

Returns:
  - *CreatedUser: The created account plus its one-time initial password
  - error: Validation failures, apperr.Conflict on duplicate username
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*CreatedUser, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).MinLen(FieldUsername, input.Username, 3).MaxLen(FieldUsername, input.Username, 50)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.RoleID != nil {
		if _, err := service.repo.FindRoleByID(context, *input.RoleID); err != nil {
			return nil, err
		}
	}

	password, err := generatePassword()
	if err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &AdminUser{
		ID:                 uuidv7.New(),
		Username:           input.Username,
		PasswordHash:       hash,
		MustChangePassword: true,
		RoleID:             input.RoleID,
		CustomPermissions:  NormalizeCustomPermissions(input.CustomPermissions),
		VereinID:           input.VereinID,
	}

	if err := service.repo.CreateUser(context, user); err != nil {
		return nil, err
	}

	if user.RoleID != nil {
		user.Role, _ = service.repo.FindRoleByID(context, *user.RoleID)
	}

	service.logger.Info("admin_user_created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &CreatedUser{AdminUser: user, InitialPassword: password}, nil
}

// passwordAlphabet excludes visually ambiguous characters.
const passwordAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generatePassword produces a 16-character random initial password.
func generatePassword() (string, error) {
	buffer := make([]byte, 16)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("admin: generate password: %w", err)
	}
	for i, b := range buffer {
		buffer[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(buffer), nil
}

/*
GetUser returns one account with its role and effective permissions.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *AdminUser: Hydrated account
  - error: apperr.NotFound if absent
*/
func (service *Service) GetUser(context context.Context, id string) (*AdminUser, error) {
	return service.repo.FindUserByID(context, id)
}

/*
ListUsers returns the paginated account listing.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*AdminUser: Accounts ordered by username
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, limit, offset int) ([]*AdminUser, int, error) {
	return service.repo.ListUsers(context, limit, offset)
}

// UpdateAccessInput is a partial update of an account's role, grants, and
// club association.
//
// A nil field leaves that aspect untouched; RoleID or VereinID pointing at
// the empty string detaches the account from its role or club.
type UpdateAccessInput struct {
	RoleID            *string   `json:"role_id,omitempty"`
	CustomPermissions *[]string `json:"custom_permissions,omitempty"`
	VereinID          *string   `json:"verein_id,omitempty"`
}

/*
UpdateUserAccess changes an account's role assignment, custom grants, or both.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateAccessInput

Returns:
  - *AdminUser: The account after the update
  - error: apperr.NotFound for the account or role, persistence failures
*/
func (service *Service) UpdateUserAccess(context context.Context, id string, input UpdateAccessInput) (*AdminUser, error) {
	user, err := service.repo.FindUserByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.RoleID != nil {
		if *input.RoleID == "" {
			user.RoleID = nil
			user.Role = nil
		} else {
			role, err := service.repo.FindRoleByID(context, *input.RoleID)
			if err != nil {
				return nil, err
			}
			user.RoleID = input.RoleID
			user.Role = role
		}
	}

	if input.CustomPermissions != nil {
		user.CustomPermissions = NormalizeCustomPermissions(*input.CustomPermissions)
	}

	if input.VereinID != nil {
		if *input.VereinID == "" {
			user.VereinID = nil
		} else {
			user.VereinID = input.VereinID
		}
	}

	if err := service.repo.UpdateUserAccess(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("admin_user_access_updated", slog.String("user_id", id))

	return user, nil
}

/*
ResetPassword sets a new provisional password for an account.

Description: An administrative action. The target account must change the
password on its next login.

Parameters:
  - context: context.Context
  - id: string
  - password: string

Returns:
  - error: Validation failures, apperr.NotFound, persistence failures
*/
func (service *Service) ResetPassword(context context.Context, id, password string) error {
	validator := &validate.Validator{}
	validator.Required(FieldPassword, password).MinLen(FieldPassword, password, 10)
	if err := validator.Err(); err != nil {
		return err
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return err
	}

	if err := service.repo.UpdatePassword(context, id, hash, true); err != nil {
		return err
	}

	service.logger.Info("admin_user_password_reset", slog.String("user_id", id))

	return nil
}

/*
DeleteUser removes an editorial account.

Parameters:
  - context: context.Context
  - id: string
  - actingUserID: string

Returns:
  - error: apperr.NotFound if absent, apperr.Conflict for self-deletion
*/
func (service *Service) DeleteUser(context context.Context, id, actingUserID string) error {
	if id == actingUserID {
		return apperr.Conflict("You cannot delete your own account")
	}

	removed, err := service.repo.DeleteUser(context, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("User")
	}

	service.logger.Info("admin_user_deleted", slog.String("user_id", id))

	return nil
}

// # Roles & Catalog

/*
ListRoles returns every role with its default permissions.

Parameters:
  - context: context.Context

Returns:
  - []*Role: Roles ordered by name
  - error: Retrieval failures
*/
func (service *Service) ListRoles(context context.Context) ([]*Role, error) {
	return service.repo.ListRoles(context)
}

/*
ListGrantablePermissions returns the permission catalog offered in the
account editor.

Description: The stored catalog is filtered through the exclusion rules and
a synthetic wildcard entry is prepended, so the editor can offer full access
without a catalog row for it.

Parameters:
  - context: context.Context

Returns:
  - []*Permission: The grantable catalog
  - error: Retrieval failures
*/
func (service *Service) ListGrantablePermissions(context context.Context) ([]*Permission, error) {
	catalog, err := service.repo.ListPermissions(context)
	if err != nil {
		return nil, err
	}

	grantable := []*Permission{{
		ID:          Wildcard,
		Name:        Wildcard,
		DisplayName: "Vollzugriff",
		Category:    "system",
	}}

	offered := slice.Filter(catalog, func(permission *Permission) bool {
		return !IsExcluded(permission.Name)
	})

	return append(grantable, offered...), nil
}
