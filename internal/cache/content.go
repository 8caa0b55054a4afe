// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Content caches JSON-encoded public reads, keyed per resource so a write
// to one resource drops only that resource's entries.
type Content struct {
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewContent wraps a cache. A nil cache disables caching.
func NewContent(c Cache, ttl time.Duration, logger *slog.Logger) *Content {
	return &Content{cache: c, ttl: ttl, logger: logger}
}

// Key builds the cache key for a read of resource.
func Key(resource, query string) string {
	return resource + ":" + query
}

// Remember returns the cached value for key, or calls load and caches its
// result. Cache failures are logged and never fail the read.
func Remember[T any](ctx context.Context, c *Content, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil || c.cache == nil {
		return load(ctx)
	}

	if data, err := c.cache.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
	} else if err != ErrCacheMiss {
		c.logger.Warn("cache read failed", "key", key, "error", err)
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return v, nil
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return v, nil
}

// Invalidate drops every cached read of the given resources.
func (c *Content) Invalidate(ctx context.Context, resources ...string) {
	if c == nil || c.cache == nil {
		return
	}
	for _, r := range resources {
		if err := c.cache.DeleteByPrefix(ctx, r+":"); err != nil {
			c.logger.Warn("cache invalidation failed", "resource", r, "error", err)
		}
	}
}
