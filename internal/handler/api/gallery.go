// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-go/internal/apperr"
	"github.com/olegiv/studio-go/internal/cache"
	"github.com/olegiv/studio-go/internal/handler/response"
	"github.com/olegiv/studio-go/internal/store"
)

const (
	galleryResource    = "gallery"
	msgProjectNotFound = "Project not found"
	msgImageNotFound   = "Image not found"
	msgImageIDRequired = "Image ID is required"
	msgUnknownProject  = "Unknown project_id"
)

type galleryAddRequest struct {
	ImageURL      string `json:"image_url" validate:"required"`
	Caption       string `json:"caption" validate:"max=500"`
	OrderPosition *int64 `json:"order_position"`
}

// requireProject loads the project named by {id} or writes 404.
func (h *Handler) requireProject(w http.ResponseWriter, r *http.Request) (store.Project, bool) {
	p, err := h.stores.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(w, http.StatusNotFound, msgProjectNotFound)
		} else {
			response.AppError(w, r, apperr.Upstream(err))
		}
		return store.Project{}, false
	}
	return p, true
}

// ListGallery returns a project's gallery in display order. Galleries of
// inactive projects are only shown to admins.
func (h *Handler) ListGallery(w http.ResponseWriter, r *http.Request) {
	project, ok := h.requireProject(w, r)
	if !ok {
		return
	}
	if !project.IsActive && !h.authenticated(r) {
		response.Error(w, http.StatusNotFound, msgProjectNotFound)
		return
	}
	images, err := cache.Remember(r.Context(), h.cfg.Cache, cache.Key(galleryResource, project.ID),
		func(ctx context.Context) ([]store.ProjectImage, error) {
			return h.stores.Gallery.ListByProject(ctx, project.ID)
		})
	if err != nil {
		response.AppError(w, r, apperr.Upstream(err))
		return
	}
	response.Data(w, http.StatusOK, images)
}

// AddGalleryImage appends an image to a project's gallery. Without an
// explicit order_position the image goes last.
func (h *Handler) AddGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req galleryAddRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.AppError(w, r, apperr.Validation(err.Error()))
		return
	}
	project, ok := h.requireProject(w, r)
	if !ok {
		return
	}

	position := int64(0)
	if req.OrderPosition != nil {
		position = *req.OrderPosition
	} else {
		existing, err := h.stores.Gallery.ListByProject(r.Context(), project.ID)
		if err != nil {
			response.AppError(w, r, apperr.Upstream(err))
			return
		}
		position = int64(len(existing))
	}

	img, err := h.stores.Gallery.Add(r.Context(), store.AddProjectImageParams{
		ProjectID:     project.ID,
		ImageURL:      req.ImageURL,
		Caption:       req.Caption,
		OrderPosition: position,
	})
	if err != nil {
		if errors.Is(err, store.ErrForeignKeyViolation) {
			response.AppError(w, r, apperr.Validation(msgUnknownProject))
			return
		}
		response.AppError(w, r, apperr.Upstream(err))
		return
	}
	h.invalidate(r.Context(), galleryResource)
	response.Data(w, http.StatusCreated, img)
}

// DeleteGalleryImage removes ?imageId= from the project's gallery.
func (h *Handler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	imageID := r.URL.Query().Get("imageId")
	if imageID == "" {
		response.Error(w, http.StatusBadRequest, msgImageIDRequired)
		return
	}

	img, err := h.stores.Gallery.Get(r.Context(), imageID)
	if err != nil || img.ProjectID != chi.URLParam(r, "id") {
		if err == nil || errors.Is(err, sql.ErrNoRows) {
			response.Error(w, http.StatusNotFound, msgImageNotFound)
		} else {
			response.AppError(w, r, apperr.Upstream(err))
		}
		return
	}

	if err := h.stores.Gallery.Delete(r.Context(), img.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(w, http.StatusNotFound, msgImageNotFound)
			return
		}
		response.AppError(w, r, apperr.Upstream(err))
		return
	}
	h.invalidate(r.Context(), galleryResource)
	response.Success(w, nil)
}
