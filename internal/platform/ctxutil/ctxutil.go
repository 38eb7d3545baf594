// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

// Package ctxutil stores and retrieves the per-request values the middleware
// chain attaches to a [context.Context]: the correlation ID, the request
// logger, and the authenticated admin's token claims.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/enniomrk/wendessen-api/internal/platform/ctxkey"
	"github.com/enniomrk/wendessen-api/internal/platform/sec"
)

// WithRequestID attaches the X-Request-ID correlation value to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation ID, or "" when none was attached.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// WithLogger attaches a request-scoped logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request-scoped logger. Outside a request (startup,
// shutdown, background work) it falls back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// WithAuthUser attaches the verified token claims to the context. Only the
// authentication middleware writes this value.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the verified [*sec.AuthClaims], or nil for anonymous
// requests (the public gallery and news endpoints).
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}
