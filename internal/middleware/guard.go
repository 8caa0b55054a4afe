// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for session checks, login
// protection, CSRF, security headers and metrics.
package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/olegiv/studio-go/internal/handler/response"
)

// Admin page paths.
const (
	AdminPath = "/admin"
	LoginPath = "/admin/login"
)

// Decision is the outcome of the session guard for one request.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectDashboard
)

// bypassPrefixes are never guarded.
var bypassPrefixes = []string{"/api/", "/static/", "/uploads/"}

// SessionChecker reports whether a request carries an admin session.
type SessionChecker interface {
	Authenticated(r *http.Request) bool
}

// Decide returns the guard decision for a request path.
func Decide(p string, authenticated bool) Decision {
	if !isAdminPath(p) || isBypassed(p) {
		return Allow
	}
	if p == LoginPath || p == LoginPath+"/" {
		if authenticated {
			return RedirectDashboard
		}
		return Allow
	}
	if !authenticated {
		return RedirectLogin
	}
	return Allow
}

func isAdminPath(p string) bool {
	return p == AdminPath || strings.HasPrefix(p, AdminPath+"/")
}

func isBypassed(p string) bool {
	if p == "/favicon.ico" {
		return true
	}
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// LoginURL returns the login page URL with callbackUrl set to target.
func LoginURL(target string) string {
	return LoginPath + "?callbackUrl=" + url.QueryEscape(target)
}

// SessionGuard redirects page navigation under /admin according to Decide.
func SessionGuard(checker SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch Decide(r.URL.Path, checker.Authenticated(r)) {
			case RedirectLogin:
				http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
			case RedirectDashboard:
				http.Redirect(w, r, AdminPath, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireSession rejects API requests without a session with a JSON 401.
func RequireSession(checker SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.Authenticated(r) {
				response.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SafeCallback returns target when it is a local /admin path and the
// dashboard otherwise.
func SafeCallback(target string) string {
	if target == "" || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return AdminPath
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" || !isAdminPath(u.Path) || u.Path == LoginPath {
		return AdminPath
	}
	return u.RequestURI()
}
