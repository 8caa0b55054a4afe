// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the server-side admin session.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	KeyAdminID   = "admin_id"
	KeyAdminName = "admin_name"
	KeyAdminRole = "admin_role"
	KeyFlash     = "flash"
)

// CookieName is the session cookie name. Production uses the __Host- prefix,
// which requires Secure and Path=/.
const (
	CookieName    = "studio_session"
	CookieNameTLS = "__Host-studio_session"
)

// New creates a new session manager configured with SQLite store.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.IdleTimeout = 2 * time.Hour
	sm.Cookie.Name = CookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = CookieNameTLS
	}

	return sm
}

// Login renews the session token and stores the admin in the session.
func Login(ctx context.Context, sm *scs.SessionManager, id, name, role string) error {
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}
	sm.Put(ctx, KeyAdminID, id)
	sm.Put(ctx, KeyAdminName, name)
	sm.Put(ctx, KeyAdminRole, role)
	return nil
}

// AdminID returns the admin id held by the session, or "".
func AdminID(ctx context.Context, sm *scs.SessionManager) string {
	return sm.GetString(ctx, KeyAdminID)
}

// Logout destroys the session.
func Logout(ctx context.Context, sm *scs.SessionManager) error {
	return sm.Destroy(ctx)
}
