// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/web"
)

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	sub, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	r, err := render.New(sub)
	require.NoError(t, err)
	return r
}

// fakeAuthenticator accepts one username/password pair.
type fakeAuthenticator struct {
	username, password string
	calls              int
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, username, password string) (*auth.Identity, error) {
	f.calls++
	if username != f.username || password != f.password {
		return nil, auth.ErrNoSession
	}
	return &auth.Identity{ID: "admin-1", Name: username, Role: "admin"}, nil
}

// fakeChecker reports a fixed session state.
type fakeChecker bool

func (f fakeChecker) Authenticated(*http.Request) bool { return bool(f) }

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// serveSession runs h inside the session manager, forwarding cookies from
// a previous response.
func serveSession(sm *scs.SessionManager, h http.HandlerFunc, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	sm.LoadAndSave(h).ServeHTTP(rec, req)
	return rec
}
