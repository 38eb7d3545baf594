// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enniomrk/wendessen-api/internal/admin"
	"github.com/enniomrk/wendessen-api/internal/auth"
	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/platform/sec"
)

// memoryUsers is an in-memory [auth.UserStore].
type memoryUsers struct {
	byUsername map[string]*admin.AdminUser
}

func (store *memoryUsers) FindUserByID(_ context.Context, id string) (*admin.AdminUser, error) {
	for _, user := range store.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *memoryUsers) FindUserByUsername(_ context.Context, username string) (*admin.AdminUser, error) {
	if user, ok := store.byUsername[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (store *memoryUsers) UpdatePassword(_ context.Context, id, passwordHash string, mustChange bool) error {
	for _, user := range store.byUsername {
		if user.ID == id {
			user.PasswordHash = passwordHash
			user.MustChangePassword = mustChange
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (store *memoryUsers) TouchLastLogin(context.Context, string) error { return nil }

// newTokenService writes a throwaway RSA key pair and loads it.
func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "jwt.key")
	pubPath := filepath.Join(dir, "jwt.pub")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0o600))

	tokens, err := sec.NewTokenService(privPath, pubPath, "wendessen-api-test")
	require.NoError(t, err)
	return tokens
}

func newTestService(t *testing.T) (*auth.Service, *memoryUsers) {
	t.Helper()

	hash, err := sec.HashPassword("korrekt-pferd-batterie")
	require.NoError(t, err)

	store := &memoryUsers{byUsername: map[string]*admin.AdminUser{
		"anna": {
			ID:                "user-anna",
			Username:          "anna",
			PasswordHash:      hash,
			CustomPermissions: []string{"news.edit"},
		},
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(store, newTokenService(t), logger), store
}

func TestLogin(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	result, err := service.Login(ctx, "anna", "korrekt-pferd-batterie")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "user-anna", result.UserID)
	assert.False(t, result.MustChangePassword)
	assert.Equal(t, []string{"news.edit"}, result.Permissions)

	t.Run("wrong_password", func(t *testing.T) {
		_, err := service.Login(ctx, "anna", "falsch")
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("unknown_user_looks_identical", func(t *testing.T) {
		_, err := service.Login(ctx, "niemand", "egal")
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("provisional_account_flag_surfaces", func(t *testing.T) {
		store.byUsername["anna"].MustChangePassword = true
		result, err := service.Login(ctx, "anna", "korrekt-pferd-batterie")
		require.NoError(t, err)
		assert.True(t, result.MustChangePassword)
	})
}

func TestChangePassword(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()
	store.byUsername["anna"].MustChangePassword = true

	t.Run("wrong_current_password", func(t *testing.T) {
		err := service.ChangePassword(ctx, "user-anna", "falsch", "neues-sicheres-passwort")
		assert.Error(t, err)
	})

	t.Run("too_short", func(t *testing.T) {
		err := service.ChangePassword(ctx, "user-anna", "korrekt-pferd-batterie", "kurz")
		assert.Error(t, err)
	})

	t.Run("must_differ", func(t *testing.T) {
		err := service.ChangePassword(ctx, "user-anna", "korrekt-pferd-batterie", "korrekt-pferd-batterie")
		assert.Error(t, err)
	})

	t.Run("success_clears_the_flag", func(t *testing.T) {
		err := service.ChangePassword(ctx, "user-anna", "korrekt-pferd-batterie", "neues-sicheres-passwort")
		require.NoError(t, err)
		assert.False(t, store.byUsername["anna"].MustChangePassword)

		_, err = service.Login(ctx, "anna", "neues-sicheres-passwort")
		assert.NoError(t, err)
	})
}
