// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/enniomrk/wendessen-api/internal/platform/ctxutil"
	"github.com/enniomrk/wendessen-api/internal/platform/sec"
)

/*
TestContext_RequestID verifies that correlation IDs round-trip through the context.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()

	// 1. Bare contexts carry no correlation ID
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, "req-9d41")
	assert.Equal(t, "req-9d41", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a request-scoped logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Without a request logger the default logger is returned
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies that verified token claims can be stored in context.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()
	claims := &sec.AuthClaims{
		UserID:   "user-anna",
		Username: "anna",
	}

	// 1. Anonymous requests yield nil claims
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithAuthUser(ctx, claims)
	retrieved := ctxutil.GetAuthUser(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-anna", retrieved.UserID)
	assert.Equal(t, "anna", retrieved.Username)
}
