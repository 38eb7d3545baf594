// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package auth implements login and password management for editorial accounts.

# Token Model

Access tokens are RS256 JWTs carrying only identity (user id and username).
Permissions are deliberately not embedded: they are resolved per request by
the admin service, so role edits apply without reissuing tokens.
*/
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/enniomrk/wendessen-api/internal/admin"
	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/constants"
	"github.com/enniomrk/wendessen-api/internal/platform/sec"
	"github.com/enniomrk/wendessen-api/internal/platform/validate"
)

// UserStore is the slice of account persistence login needs.
//
// The admin Postgres repository satisfies it.
type UserStore interface {
	FindUserByID(ctx context.Context, id string) (*admin.AdminUser, error)
	FindUserByUsername(ctx context.Context, username string) (*admin.AdminUser, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, mustChange bool) error
	TouchLastLogin(ctx context.Context, id string) error
}

// Service handles credential verification and token issuance.
type Service struct {
	users  UserStore
	tokens *sec.TokenService
	logger *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(users UserStore, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// LoginResult is returned after successful credential verification.
type LoginResult struct {
	AccessToken        string    `json:"access_token"`
	ExpiresAt          time.Time `json:"expires_at"`
	UserID             string    `json:"user_id"`
	Username           string    `json:"username"`
	MustChangePassword bool      `json:"must_change_password"`
	Permissions        []string  `json:"permissions"`
}

// errBadCredentials deliberately does not reveal which part was wrong.
var errBadCredentials = apperr.Unauthorized("Invalid username or password")

/*
Login verifies credentials and issues an access token.

Description: An account flagged for a password change can still log in — the
flag is surfaced in the result so the frontend can route straight to the
change-password form, while every other admin endpoint stays locked.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *LoginResult: Token, expiry, and the resolved permission set
  - error: apperr.Unauthorized on bad credentials
*/
func (service *Service) Login(context context.Context, username, password string) (*LoginResult, error) {
	validator := &validate.Validator{}
	validator.Required(admin.FieldUsername, username)
	validator.Required(admin.FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindUserByUsername(context, username)
	if err != nil {
		// A missing account and a wrong password look identical to the caller.
		if apperr.IsAppError(err) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		service.logger.Warn("auth_login_failed", slog.String("username", username))
		return nil, errBadCredentials
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, constants.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	if err := service.users.TouchLastLogin(context, user.ID); err != nil {
		// Login still succeeds; the stamp is advisory.
		service.logger.Warn("auth_last_login_stamp_failed", slog.String("user_id", user.ID))
	}

	service.logger.Info("auth_login_succeeded",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &LoginResult{
		AccessToken:        token,
		ExpiresAt:          time.Now().UTC().Add(constants.AccessTokenTTL),
		UserID:             user.ID,
		Username:           user.Username,
		MustChangePassword: user.MustChangePassword,
		Permissions:        user.Effective(),
	}, nil
}

/*
ChangePassword replaces the caller's own password.

Description: Clears the change-required flag, unlocking the permission-gated
endpoints for accounts provisioned with a provisional password.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: apperr.Unauthorized on a wrong current password, validation or
    persistence failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required("current_password", currentPassword)
	validator.Required("new_password", newPassword).MinLen("new_password", newPassword, 10)
	validator.Custom("new_password", currentPassword == newPassword && newPassword != "",
		"New password must differ from the current one")
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.users.FindUserByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := sec.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := service.users.UpdatePassword(context, userID, hash, false); err != nil {
		return err
	}

	service.logger.Info("auth_password_changed", slog.String("user_id", userID))

	return nil
}
