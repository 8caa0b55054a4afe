// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/olegiv/studio-go/internal/apperr"
	"github.com/olegiv/studio-go/internal/cache"
	"github.com/olegiv/studio-go/internal/handler/response"
	"github.com/olegiv/studio-go/internal/store"
)

const (
	aboutResource    = "about"
	msgAboutNotFound = "About section not found"
	msgAboutExists   = "About section already exists"
)

type aboutRequest struct {
	Title   *string `json:"title" validate:"omitnil,min=1"`
	Content *string `json:"content"`
	Image   *string `json:"image"`
}

func (r *aboutRequest) params() store.AboutParams {
	return store.AboutParams{Title: r.Title, Content: r.Content, Image: r.Image}
}

// GetAbout returns the about section.
func (h *Handler) GetAbout(w http.ResponseWriter, r *http.Request) {
	about, err := cache.Remember(r.Context(), h.cfg.Cache, cache.Key(aboutResource, ""),
		func(ctx context.Context) (store.AboutSection, error) {
			return h.stores.About.Get(ctx)
		})
	if err != nil {
		response.AppError(w, r, aboutError(err))
		return
	}
	response.Data(w, http.StatusOK, about)
}

// CreateAbout creates the about section; only one may exist.
func (h *Handler) CreateAbout(w http.ResponseWriter, r *http.Request) {
	var req aboutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.AppError(w, r, apperr.Validation(err.Error()))
		return
	}
	if req.Title == nil {
		response.Error(w, http.StatusBadRequest, "Missing required fields: title")
		return
	}

	about, err := h.stores.About.Create(r.Context(), req.params())
	if err != nil {
		response.AppError(w, r, aboutError(err))
		return
	}
	h.invalidate(r.Context(), aboutResource)
	response.Data(w, http.StatusCreated, about)
}

// UpdateAbout partially updates the about section.
func (h *Handler) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	var req aboutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.AppError(w, r, apperr.Validation(err.Error()))
		return
	}

	about, err := h.stores.About.Update(r.Context(), req.params())
	if err != nil {
		response.AppError(w, r, aboutError(err))
		return
	}
	h.invalidate(r.Context(), aboutResource)
	response.Data(w, http.StatusOK, about)
}

func aboutError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound(msgAboutNotFound)
	case errors.Is(err, store.ErrAboutExists):
		return apperr.Conflict(msgAboutExists, err)
	default:
		return apperr.Upstream(err)
	}
}
