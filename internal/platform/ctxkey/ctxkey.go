// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

// Package ctxkey defines the typed context keys shared between the
// middleware chain (which writes them) and ctxutil (which reads them).
// The unexported key type makes collisions with other packages that use
// context storage impossible: context lookups match on value and type.
package ctxkey

// key is the private type behind all context keys in this module.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser is the context key for the verified token claims of the
	// logged-in admin ([sec.AuthClaims]).
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
