// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/cache"
	"github.com/olegiv/studio-go/internal/identity"
	"github.com/olegiv/studio-go/internal/service"
	"github.com/olegiv/studio-go/internal/storage"
	"github.com/olegiv/studio-go/internal/store"
	"github.com/olegiv/studio-go/internal/testutil"
)

const testSecret = "test-secret-key-that-is-32-bytes!!"

// fakeChecker reports a fixed session state.
type fakeChecker bool

func (f fakeChecker) Authenticated(*http.Request) bool { return bool(f) }

// testAPI bundles a handler over a fresh database.
type testAPI struct {
	handler *Handler
	router  http.Handler
	stores  *store.Stores
	bucket  *storage.LocalBucket
	tokens  *auth.TokenService
}

type apiOption func(*Config)

func withSession(c *Config) { c.Checker = fakeChecker(true) }

func withCache(t *testing.T) apiOption {
	return func(c *Config) {
		mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
		t.Cleanup(func() { _ = mc.Close() })
		c.Cache = cache.NewContent(mc, time.Minute, testutil.TestLogger())
	}
}

func newTestAPI(t *testing.T, opts ...apiOption) *testAPI {
	t.Helper()

	stores, _ := testutil.TestStores(t)
	logger := testutil.TestLogger()

	bucket, err := storage.NewLocalBucket(t.TempDir(), "/uploads")
	require.NoError(t, err)

	tokens := auth.NewTokenService(testSecret, "studio-test")
	cfg := Config{
		Stores:        stores,
		Bucket:        bucket,
		Tokens:        tokens,
		Checker:       fakeChecker(false),
		Authenticator: auth.NewAuthenticator(stores.Admins, logger),
		Registrar:     service.NewRegistrar(identity.NewSQLDirectory(stores.Identities), stores.Admins, logger),
		Logger:        logger,
		IsDev:         false,
	}
	for _, o := range opts {
		o(&cfg)
	}

	h := NewHandler(cfg)
	return &testAPI{handler: h, router: h.Routes(), stores: stores, bucket: bucket, tokens: tokens}
}

// do sends a request with an optional JSON body to the API router.
func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, a.router, method, path, body)
}

func serve(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// envelope is the decoded JSON response.
type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &v), rec.Body.String())
	return v
}

func seedAdmin(t *testing.T, stores *store.Stores, username, password string) {
	t.Helper()
	err := store.Seed(context.Background(), stores, store.SeedAdmin{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
	}, auth.HashPassword)
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }
