// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func TestRequestHandlerAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	handler := chimw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		logger.InfoContext(r.Context(), "handled")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "msg=handled")
	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestRequestHandlerWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.InfoContext(context.Background(), "startup")
	logger.Info("no context")

	assert.NotContains(t, buf.String(), RequestIDKey)
	assert.Contains(t, buf.String(), "msg=startup")
}

func TestRequestHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestRequestHandlerKeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo).With("component", "api").WithGroup("req")

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "abc")
	logger.InfoContext(ctx, "grouped", "path", "/api/team")

	out := buf.String()
	assert.Contains(t, out, "component=api")
	assert.Contains(t, out, "req.path=/api/team")
	assert.Contains(t, out, "req.request_id=abc")
}
