// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package cache provides a Redis-backed read-path cache with tag invalidation.

Public pages of the portal (news, events, club directory, approved gallery
photos) are read far more often than they change. Entries are stored as JSON
under a TTL and additionally indexed in per-tag Redis sets, so a mutating
operation can evict every cached query touching its entity family with one
Invalidate call instead of tracking individual keys.

Core Responsibilities:

  - Volatility: Every entry carries a short TTL as a safety net.
  - Tagging: Set/Invalidate maintain "cache:tag:<name>" index sets.
  - Degradation: Cache failures are logged and treated as misses; the
    request is always served from PostgreSQL instead of failing.

The cache must never sit in front of a mutation path.
*/
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by [Cache.Get] when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// keyPrefix namespaces all cache entries away from auth tokens and sessions.
const keyPrefix = "cache:entry:"

// tagPrefix namespaces the tag index sets.
const tagPrefix = "cache:tag:"

// tagTTL keeps tag index sets alive slightly longer than any member entry,
// so invalidation always sees the full member list.
const tagTTL = 15 * time.Minute

// Cache is a process-wide memoization layer keyed by query identity.
type Cache struct {
	client *redis.Client
	logger *slog.Logger
}

// New constructs a [Cache] on top of an established Redis client.
func New(client *redis.Client, logger *slog.Logger) *Cache {
	return &Cache{client: client, logger: logger}
}

/*
Get loads a cached entry into dest.

Parameters:
  - context: context.Context
  - key: string (Query identity, e.g. "news:list:page=1")
  - dest: any (Pointer to the destination value)

Returns:
  - error: ErrMiss when absent; connectivity errors are downgraded to ErrMiss
*/
func (cache *Cache) Get(context context.Context, key string, dest any) error {
	payload, err := cache.client.Get(context, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.Warn("cache_get_failed", slog.String("key", key), slog.Any("error", err))
		}
		return ErrMiss
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		// A corrupt entry is removed so it cannot poison later reads.
		cache.client.Del(context, keyPrefix+key)
		return ErrMiss
	}

	return nil
}

/*
Set stores value under key with the given TTL and registers it in every tag index.

Parameters:
  - context: context.Context
  - key: string
  - value: any (JSON-marshalable)
  - ttl: time.Duration
  - tags: ...string (Entity families this entry belongs to)

Returns:
  - error: Marshalling failures. Redis failures are logged, not returned —
    a cold cache is not an application error.
*/
func (cache *Cache) Set(context context.Context, key string, value any, ttl time.Duration, tags ...string) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal %q: %w", key, err)
	}

	fullKey := keyPrefix + key

	pipe := cache.client.TxPipeline()
	pipe.Set(context, fullKey, payload, ttl)
	for _, tag := range tags {
		tagKey := tagPrefix + tag
		pipe.SAdd(context, tagKey, fullKey)
		pipe.Expire(context, tagKey, tagTTL)
	}

	if _, err := pipe.Exec(context); err != nil {
		cache.logger.Warn("cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}

	return nil
}

/*
Invalidate evicts every entry registered under the given tags.

Called from every mutating operation touching the same entity family.

Parameters:
  - context: context.Context
  - tags: ...string

Returns:
  - error: Never fails the caller; eviction problems self-heal via entry TTLs.
*/
func (cache *Cache) Invalidate(context context.Context, tags ...string) error {
	for _, tag := range tags {
		tagKey := tagPrefix + tag

		members, err := cache.client.SMembers(context, tagKey).Result()
		if err != nil {
			cache.logger.Warn("cache_invalidate_failed", slog.String("tag", tag), slog.Any("error", err))
			continue
		}

		if len(members) > 0 {
			cache.client.Del(context, members...)
		}
		cache.client.Del(context, tagKey)
	}

	return nil
}
