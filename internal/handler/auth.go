// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/session"
)

// CredentialChecker authenticates an admin by username and password.
type CredentialChecker interface {
	Authenticate(ctx context.Context, username, password string) (*auth.Identity, error)
}

// AuthHandler serves the admin login form and logout.
type AuthHandler struct {
	renderer        *render.Renderer
	sessions        *scs.SessionManager
	authenticator   CredentialChecker
	loginProtection *middleware.LoginProtection
	logger          *slog.Logger
	isDev           bool
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(renderer *render.Renderer, sm *scs.SessionManager, authenticator CredentialChecker, lp *middleware.LoginProtection, logger *slog.Logger, isDev bool) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		renderer:        renderer,
		sessions:        sm,
		authenticator:   authenticator,
		loginProtection: lp,
		logger:          logger,
		isDev:           isDev,
	}
}

// loginData is the view model of the login page.
type loginData struct {
	CallbackURL string
	Username    string
}

// LoginForm renders the login page. The session guard has already sent
// signed-in admins to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	data := loginData{CallbackURL: r.URL.Query().Get("callbackUrl")}
	flash := h.sessions.PopString(r.Context(), session.KeyFlash)
	h.render(w, http.StatusOK, data, flash, "info")
}

// Login handles the login form submission. Every failure re-renders the form
// with the same message; only a lockout is reported differently.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, loginData{}, MsgInvalidForm, "error")
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	data := loginData{
		CallbackURL: r.PostFormValue("callbackUrl"),
		Username:    username,
	}

	if username == "" || password == "" {
		h.render(w, http.StatusBadRequest, data, MsgCredentialsRequired, "error")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsLocked(username); locked {
			h.logger.Warn("login attempt on locked account", "username", username, "remaining", remaining)
			h.render(w, http.StatusTooManyRequests, data, lockedMessage(remaining), "error")
			return
		}
	}

	ident, err := h.authenticator.Authenticate(r.Context(), username, password)
	if err != nil {
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(username); locked {
				h.logger.Warn("account locked due to failed attempts", "username", username, "duration", lockDuration)
				h.render(w, http.StatusTooManyRequests, data, lockedMessage(lockDuration), "error")
				return
			}
		}
		h.render(w, http.StatusUnauthorized, data, MsgInvalidCredentials, "error")
		return
	}
	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(username)
	}

	if err := session.Login(r.Context(), h.sessions, ident.ID, ident.Name, ident.Role); err != nil {
		h.logger.Error("failed to start session", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.logger.Info("admin logged in", "admin_id", ident.ID)
	http.Redirect(w, r, middleware.SafeCallback(data.CallbackURL), http.StatusSeeOther)
}

// Logout destroys the session, clears the token cookies and returns to the
// login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := session.Logout(r.Context(), h.sessions); err != nil {
		h.logger.Error("failed to destroy session", "error", err)
	}
	for _, name := range []string{auth.AccessCookieName, auth.RefreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   !h.isDev,
			SameSite: http.SameSiteLaxMode,
		})
	}
	h.sessions.Put(r.Context(), session.KeyFlash, MsgSignedOut)
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) render(w http.ResponseWriter, status int, data loginData, flash, flashType string) {
	err := h.renderer.Render(w, status, TemplateLogin, render.TemplateData{
		Title:     "Sign in",
		Data:      data,
		Flash:     flash,
		FlashType: flashType,
	})
	if err != nil {
		h.logger.Error("failed to render login page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func lockedMessage(d time.Duration) string {
	return fmt.Sprintf("Too many login attempts. Try again in %s.", formatDuration(d))
}

// formatDuration renders a lockout duration in whole minutes.
func formatDuration(d time.Duration) string {
	minutes := int((d + time.Minute - 1) / time.Minute)
	if minutes <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
