// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-go/internal/apperr"
	"github.com/olegiv/studio-go/internal/handler/response"
	"github.com/olegiv/studio-go/internal/store"
)

// AdminResponse is the public projection of an admin; it never carries the
// password hash.
type AdminResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func adminToResponse(a store.Admin) AdminResponse {
	return AdminResponse{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		FullName:    a.FullName,
		Role:        a.Role,
		IsActive:    a.IsActive,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
	}
}

// ListAdmins returns every admin.
func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.stores.Admins.List(r.Context())
	if err != nil {
		response.AppError(w, r, apperr.Upstream(err))
		return
	}
	out := make([]AdminResponse, 0, len(admins))
	for _, a := range admins {
		out = append(out, adminToResponse(a))
	}
	response.Data(w, http.StatusOK, out)
}

// GetAdmin returns one admin.
func (h *Handler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	a, err := h.stores.Admins.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(w, http.StatusNotFound, "Admin not found")
			return
		}
		response.AppError(w, r, apperr.Upstream(err))
		return
	}
	response.Data(w, http.StatusOK, adminToResponse(a))
}
