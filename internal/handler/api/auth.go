// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/olegiv/studio-go/internal/apperr"
	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/handler/response"
	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/service"
	"github.com/olegiv/studio-go/internal/session"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type setCookiesRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"fullName" validate:"required,max=200"`
}

// Login checks credentials, starts a server-side session and returns a
// token pair.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.AppError(w, r, apperr.Validation(err.Error()))
		return
	}

	lp := h.cfg.LoginProtection
	if lp != nil {
		if locked, remaining := lp.IsLocked(req.Username); locked {
			h.logger.Warn("login attempt on locked account", "username", req.Username, "remaining", remaining)
			response.Error(w, http.StatusTooManyRequests, middleware.MsgTooManyAttempts)
			return
		}
	}

	ident, err := h.cfg.Authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if lp != nil {
			lp.RecordFailedAttempt(req.Username)
		}
		response.Error(w, http.StatusUnauthorized, MsgInvalidCreds)
		return
	}
	if lp != nil {
		lp.RecordSuccessfulLogin(req.Username)
	}

	if h.cfg.Sessions != nil {
		if err := session.Login(r.Context(), h.cfg.Sessions, ident.ID, ident.Name, ident.Role); err != nil {
			response.AppError(w, r, apperr.Upstream(fmt.Errorf("starting session: %w", err)))
			return
		}
	}

	pair, err := h.cfg.Tokens.Issue(ident)
	if err != nil {
		response.AppError(w, r, apperr.Upstream(fmt.Errorf("issuing tokens: %w", err)))
		return
	}

	h.logger.Info("admin logged in", "admin_id", ident.ID)
	response.Success(w, map[string]any{
		"user":         ident,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// SetCookies stores a verified token pair in HttpOnly cookies.
func (h *Handler) SetCookies(w http.ResponseWriter, r *http.Request) {
	var req setCookiesRequest
	if err := decodeBody(w, r, &req); err != nil {
		response.AppError(w, r, apperr.Validation(err.Error()))
		return
	}
	if strings.TrimSpace(req.AccessToken) == "" || strings.TrimSpace(req.RefreshToken) == "" {
		response.Error(w, http.StatusBadRequest, "Access token and refresh token are required")
		return
	}

	if _, err := h.cfg.Tokens.Validate(req.AccessToken, auth.KindAccess); err != nil {
		response.Error(w, http.StatusUnauthorized, tokenMessage(err))
		return
	}
	if _, err := h.cfg.Tokens.Validate(req.RefreshToken, auth.KindRefresh); err != nil {
		response.Error(w, http.StatusUnauthorized, tokenMessage(err))
		return
	}

	http.SetCookie(w, h.tokenCookie(auth.AccessCookieName, req.AccessToken, int(auth.AccessTokenTTL.Seconds())))
	http.SetCookie(w, h.tokenCookie(auth.RefreshCookieName, req.RefreshToken, int(auth.RefreshTokenTTL.Seconds())))
	response.Success(w, nil)
}

// Logout expires both token cookies and destroys the server-side session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.tokenCookie(auth.AccessCookieName, "", -1))
	http.SetCookie(w, h.tokenCookie(auth.RefreshCookieName, "", -1))

	if h.cfg.Sessions != nil {
		if err := session.Logout(r.Context(), h.cfg.Sessions); err != nil {
			h.logger.Error("failed to destroy session", "error", err)
		}
	}
	response.Success(w, nil)
}

// Register creates an admin. It is open to signed-in admins, to anyone
// while no admin exists, and to everyone when open registration is on.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	allowed, err := h.registrationAllowed(r)
	if err != nil {
		response.AppError(w, r, apperr.Upstream(err))
		return
	}
	if !allowed {
		response.Error(w, http.StatusForbidden, MsgRegistrationOff)
		return
	}

	var req registerRequest
	if err := decodeBody(w, r, &req); err != nil {
		response.AppError(w, r, apperr.Validation(err.Error()))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validateStruct(&req); err != nil {
		response.AppError(w, r, apperr.Validation(err.Error()))
		return
	}

	admin, _, err := h.cfg.Registrar.Register(r.Context(), service.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, adminToResponse(admin))
}

func (h *Handler) registrationAllowed(r *http.Request) (bool, error) {
	if h.cfg.OpenRegistration {
		return true, nil
	}
	if h.authenticated(r) {
		return true, nil
	}
	n, err := h.stores.Admins.Count(r.Context())
	if err != nil {
		return false, fmt.Errorf("counting admins: %w", err)
	}
	return n == 0, nil
}

func (h *Handler) tokenCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !h.cfg.IsDev,
		SameSite: http.SameSiteLaxMode,
	}
}

func tokenMessage(err error) string {
	if errors.Is(err, auth.ErrExpiredToken) {
		return "Token has expired"
	}
	return "Invalid token"
}
