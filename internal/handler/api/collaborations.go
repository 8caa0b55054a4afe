// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"

	"github.com/olegiv/studio-go/internal/apperr"
	"github.com/olegiv/studio-go/internal/handler/response"
	"github.com/olegiv/studio-go/internal/store"
)

// collaborateRequest is the public contact form.
type collaborateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Phone       string `json:"phone" validate:"max=50"`
	Company     string `json:"company" validate:"max=200"`
	ProjectType string `json:"project_type" validate:"max=100"`
	Budget      string `json:"budget" validate:"max=100"`
	Message     string `json:"message" validate:"required,min=10,max=5000"`
}

// normalize trims every field before validation so that whitespace does not
// count towards the minimum lengths.
func (r *collaborateRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.ProjectType = strings.TrimSpace(r.ProjectType)
	r.Budget = strings.TrimSpace(r.Budget)
	r.Message = strings.TrimSpace(r.Message)
}

// Collaborate stores a contact form submission. The body is validated
// before anything is written.
func (h *Handler) Collaborate(w http.ResponseWriter, r *http.Request) {
	var req collaborateRequest
	if err := decodeBody(w, r, &req); err != nil {
		response.AppError(w, r, apperr.Validation(err.Error()))
		return
	}
	req.normalize()
	if err := validateStruct(&req); err != nil {
		response.AppError(w, r, apperr.Validation(err.Error()))
		return
	}

	c, err := h.stores.Collaborations.Create(r.Context(), store.CreateCollaborationParams{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		ProjectType: req.ProjectType,
		Budget:      req.Budget,
		Message:     req.Message,
	})
	if err != nil {
		response.AppError(w, r, apperr.Upstream(err))
		return
	}

	h.logger.Info("collaboration request received", "id", c.ID, "project_type", c.ProjectType)
	response.Success(w, map[string]any{
		"message": "Thank you! We will get back to you soon.",
		"data":    c,
	})
}

// ListCollaborations returns submissions, newest first.
func (h *Handler) ListCollaborations(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	items, err := h.stores.Collaborations.List(r.Context(), opts.Limit)
	if err != nil {
		response.AppError(w, r, apperr.Upstream(err))
		return
	}
	response.Data(w, http.StatusOK, items)
}
