// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and token lifetimes.
  - Caching: TTLs and tag names for the read-path cache.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "wendessen-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// SubmitRateLimitRPS throttles the public photo-submission and report
	// endpoints far below the global limit to discourage spam uploads.
	SubmitRateLimitRPS = 0.2

	// SubmitRateLimitBurst allows a small batch of submissions in one sitting.
	SubmitRateLimitBurst = 5

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "wendessen.de"

	// AccessTokenTTL is the lifetime of an admin access token.
	AccessTokenTTL = 12 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaContent = "content"
	SchemaAdmin   = "admin"
)

// # Cache Taxonomy

const (
	// CacheTTL is the short default TTL for read-path cache entries. Mutating
	// operations invalidate by tag, so the TTL is only a safety net.
	CacheTTL = 5 * time.Minute

	// CacheTagGallery covers the public shared-gallery listing.
	CacheTagGallery = "gallery"

	// CacheTagPortraits covers the public portrait wall.
	CacheTagPortraits = "portraits"

	// CacheTagNews covers public news listings and detail pages.
	CacheTagNews = "news"

	// CacheTagEvents covers the public event calendar.
	CacheTagEvents = "events"

	// CacheTagVereine covers the club directory.
	CacheTagVereine = "vereine"
)

// # Editorial Limits

const (
	// MaxPinnedArticles caps how many news articles may be pinned to the
	// front page at once.
	MaxPinnedArticles = 3

	// DefaultEventHorizonDays is the public calendar's look-ahead window.
	DefaultEventHorizonDays = 365
)
