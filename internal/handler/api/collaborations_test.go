// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/store"
)

func TestCollaborateValidation(t *testing.T) {
	valid := map[string]any{
		"name":    "Grace Hopper",
		"email":   "grace@example.com",
		"message": "We would like a new library building.",
	}
	with := func(key string, value any) map[string]any {
		m := map[string]any{}
		for k, v := range valid {
			m[k] = v
		}
		m[key] = value
		return m
	}

	tests := []struct {
		name    string
		body    any
		wantErr string
	}{
		{"invalid email", with("email", "not-an-email"), "Invalid email address"},
		{"short name", with("name", "G"), "name must be at least 2 characters"},
		{"short message", with("message", "hi there"), "message must be at least 10 characters"},
		{"whitespace message", with("message", "          x"), "message must be at least 10 characters"},
		{"missing fields", map[string]any{"name": "Grace"}, "Missing required fields: email, message"},
		{"empty body", "", MsgInvalidBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAPI(t)
			rec := a.do(t, http.MethodPost, "/collaborate", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantErr, decode(t, rec).Error)

			items, err := a.stores.Collaborations.List(context.Background(), 0)
			require.NoError(t, err)
			assert.Empty(t, items, "nothing is stored for an invalid submission")
		})
	}
}

func TestCollaborateStoresNewLead(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodPost, "/collaborate", map[string]any{
		"name":         "Grace Hopper",
		"email":        " Grace@Example.com ",
		"message":      "We would like a new library building.",
		"project_type": "public",
		"budget":       "1M+",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c := decodeData[store.Collaboration](t, rec)
	assert.Equal(t, store.CollaborationStatusNew, c.Status)
	assert.Equal(t, "grace@example.com", c.Email)
	assert.Equal(t, "public", c.ProjectType)
}

func TestCollaborateRateLimited(t *testing.T) {
	a := newTestAPI(t, func(c *Config) {
		c.CollaborateLimiter = middleware.NewClientRateLimiter(0.001, 1)
	})
	body := map[string]any{
		"name":    "Grace Hopper",
		"email":   "grace@example.com",
		"message": "We would like a new library building.",
	}

	assert.Equal(t, http.StatusOK, a.do(t, http.MethodPost, "/collaborate", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, a.do(t, http.MethodPost, "/collaborate", body).Code)
}

func TestListCollaborationsRequiresSession(t *testing.T) {
	a := newTestAPI(t)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/collaborations", nil).Code)

	b := newTestAPI(t, withSession)
	_, err := b.stores.Collaborations.Create(context.Background(), store.CreateCollaborationParams{
		Name: "Lead", Email: "lead@example.com", Message: "Please call me back.",
	})
	require.NoError(t, err)

	rec := b.do(t, http.MethodGet, "/collaborations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]store.Collaboration](t, rec), 1)
}
