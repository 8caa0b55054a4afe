// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-go/internal/session"
)

// Session token cookies written by the set-cookies endpoint.
const (
	AccessCookieName  = "studio-access-token"
	RefreshCookieName = "studio-refresh-token"
)

// SessionResolver decides whether a request carries an admin session: either
// a server-side session holding an admin id or a valid access-token cookie.
type SessionResolver struct {
	sessions *scs.SessionManager
	tokens   *TokenService
}

// NewSessionResolver creates a resolver. Either dependency may be nil.
func NewSessionResolver(sessions *scs.SessionManager, tokens *TokenService) *SessionResolver {
	return &SessionResolver{sessions: sessions, tokens: tokens}
}

// Authenticated reports whether r belongs to a signed-in admin.
func (s *SessionResolver) Authenticated(r *http.Request) bool {
	return s.AdminID(r) != ""
}

// AdminID returns the id of the signed-in admin, or "".
func (s *SessionResolver) AdminID(r *http.Request) string {
	if s.sessions != nil {
		if id := session.AdminID(r.Context(), s.sessions); id != "" {
			return id
		}
	}
	if s.tokens != nil {
		if c, err := r.Cookie(AccessCookieName); err == nil && c.Value != "" {
			if claims, err := s.tokens.Validate(c.Value, KindAccess); err == nil {
				return claims.Subject
			}
		}
	}
	return ""
}
