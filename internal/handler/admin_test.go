// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-go/internal/session"
	"github.com/olegiv/studio-go/internal/store"
	"github.com/olegiv/studio-go/internal/testutil"
)

func TestDashboard(t *testing.T) {
	stores, _ := testutil.TestStores(t)
	ctx := context.Background()

	_, err := stores.Projects.Create(ctx, store.CreateProjectParams{Title: "Villa", Slug: "villa", CoverImage: "/v.jpg"})
	require.NoError(t, err)
	_, err = stores.Collaborations.Create(ctx, store.CreateCollaborationParams{
		Name: "Grace", Email: "grace@example.com", Message: "We would like a pavilion.", ProjectType: "pavilion",
	})
	require.NoError(t, err)

	sm := scs.New()
	h := NewAdminHandler(testRenderer(t), sm, stores, testutil.TestLogger())

	page := func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), session.KeyAdminName, "Ada")
		h.Dashboard(w, r)
	}
	rec := serveSession(sm, page, httptest.NewRequest(http.MethodGet, "/admin", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>Ada</strong>")
	assert.Contains(t, body, `<span class="count">1</span> projects`)
	assert.Contains(t, body, `<span class="count">0</span> works`)
	assert.Contains(t, body, "grace@example.com")
	assert.Contains(t, body, `action="/admin/logout"`)
}

func TestDashboardEmpty(t *testing.T) {
	stores, _ := testutil.TestStores(t)
	sm := scs.New()
	h := NewAdminHandler(testRenderer(t), sm, stores, testutil.TestLogger())

	rec := serveSession(sm, h.Dashboard, httptest.NewRequest(http.MethodGet, "/admin", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No collaboration requests yet.")
}

func TestDashboardStoreError(t *testing.T) {
	stores, db := testutil.TestStores(t)
	require.NoError(t, db.Close())

	sm := scs.New()
	h := NewAdminHandler(testRenderer(t), sm, stores, testutil.TestLogger())

	rec := serveSession(sm, h.Dashboard, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
