// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/session"
	"github.com/olegiv/studio-go/internal/store"
)

// recentLeads is how many collaboration requests the dashboard lists.
const recentLeads = 5

// AdminHandler serves the dashboard shell.
type AdminHandler struct {
	renderer *render.Renderer
	sessions *scs.SessionManager
	stores   *store.Stores
	logger   *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(renderer *render.Renderer, sm *scs.SessionManager, stores *store.Stores, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{renderer: renderer, sessions: sm, stores: stores, logger: logger}
}

// ContentCount is one tile of the dashboard.
type ContentCount struct {
	Label string
	Count int
}

// DashboardData is the view model of the dashboard.
type DashboardData struct {
	Name   string
	Counts []ContentCount
	Leads  []store.Collaboration
}

// Dashboard renders the admin landing page.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboardData(r.Context())
	if err != nil {
		h.logger.Error("failed to load dashboard", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data.Name = h.sessions.GetString(r.Context(), session.KeyAdminName)
	if data.Name == "" {
		data.Name = "admin"
	}

	if err := h.renderer.Render(w, http.StatusOK, TemplateDashboard, render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	}); err != nil {
		h.logger.Error("failed to render dashboard", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *AdminHandler) dashboardData(ctx context.Context) (DashboardData, error) {
	var data DashboardData
	all := store.ListOptions{}

	counters := []struct {
		label string
		count func() (int, error)
	}{
		{"projects", func() (int, error) { v, err := h.stores.Projects.List(ctx, all); return len(v), err }},
		{"works", func() (int, error) { v, err := h.stores.Works.List(ctx, all); return len(v), err }},
		{"news articles", func() (int, error) { v, err := h.stores.News.List(ctx, all); return len(v), err }},
		{"team members", func() (int, error) { v, err := h.stores.Team.List(ctx, all); return len(v), err }},
		{"hero slides", func() (int, error) { v, err := h.stores.Hero.List(ctx, all); return len(v), err }},
		{"admins", func() (int, error) { n, err := h.stores.Admins.Count(ctx); return int(n), err }},
	}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return data, fmt.Errorf("counting %s: %w", c.label, err)
		}
		data.Counts = append(data.Counts, ContentCount{Label: c.label, Count: n})
	}

	leads, err := h.stores.Collaborations.List(ctx, recentLeads)
	if err != nil {
		return data, fmt.Errorf("loading collaborations: %w", err)
	}
	data.Leads = leads
	return data, nil
}
