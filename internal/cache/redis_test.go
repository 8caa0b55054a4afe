// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(RedisCacheOptions{
		URL:        "redis://" + mr.Addr() + "/0",
		Prefix:     "test:",
		DefaultTTL: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.Equal(t, ErrCacheMiss, err)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	// Keys carry the prefix and the default TTL.
	assert.True(t, mr.Exists("test:k"))
	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	mr.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, "k")
	assert.Equal(t, ErrCacheMiss, err)
}

func TestRedisCache_DeleteByPrefix(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "projects:list", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "projects:slug", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "news:list", []byte("3"), 0))
	require.NoError(t, mr.Set("other:projects:x", "keep"))

	require.NoError(t, c.DeleteByPrefix(ctx, "projects:"))

	assert.False(t, mr.Exists("test:projects:list"))
	assert.False(t, mr.Exists("test:projects:slug"))
	assert.True(t, mr.Exists("test:news:list"))
	assert.True(t, mr.Exists("other:projects:x"))
}

func TestRedisCache_Closed(t *testing.T) {
	c, _ := newTestRedis(t)
	require.NoError(t, c.Close())

	_, err := c.Get(context.Background(), "k")
	assert.Equal(t, ErrCacheClosed, err)
	assert.Equal(t, ErrCacheClosed, c.Set(context.Background(), "k", []byte("v"), 0))
	assert.Equal(t, ErrCacheClosed, c.DeleteByPrefix(context.Background(), "k"))
	assert.NoError(t, c.Close(), "second Close is a no-op")
}

func TestRedisCache_DeleteByPrefixManyKeys(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	for i := range 2*redisDeleteBatch + 7 {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("works:id/%d", i), []byte("x"), 0))
	}
	require.NoError(t, c.Set(ctx, "team:list", []byte("keep"), 0))

	require.NoError(t, c.DeleteByPrefix(ctx, "works:"))

	assert.Equal(t, []string{"test:team:list"}, mr.Keys())
}

func TestNewRedisCache_Errors(t *testing.T) {
	_, err := NewRedisCache(RedisCacheOptions{})
	assert.Error(t, err)

	_, err = NewRedisCache(RedisCacheOptions{URL: "not a url"})
	assert.Error(t, err)
}
