// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/store"
)

// countingStore records calls and returns canned results.
type countingStore struct {
	calls   int
	listErr error
}

func (s *countingStore) List(context.Context, store.ListOptions) ([]store.TeamMember, error) {
	s.calls++
	return nil, s.listErr
}

func (s *countingStore) Get(context.Context, string) (store.TeamMember, error) {
	s.calls++
	return store.TeamMember{}, nil
}

func (s *countingStore) Create(context.Context, store.CreateTeamMemberParams) (store.TeamMember, error) {
	s.calls++
	return store.TeamMember{}, nil
}

func (s *countingStore) Update(context.Context, string, store.UpdateTeamMemberParams) (store.TeamMember, error) {
	s.calls++
	return store.TeamMember{}, nil
}

func (s *countingStore) Delete(context.Context, string) error {
	s.calls++
	return nil
}

func countingRouter(s *countingStore) http.Handler {
	r := chi.NewRouter()
	(&resource[store.TeamMember, store.CreateTeamMemberParams, store.UpdateTeamMemberParams]{
		name: "team", entity: "team member", store: s,
		decodeCreate: bind[teamCreateRequest, store.CreateTeamMemberParams],
		decodeUpdate: bind[teamUpdateRequest, store.UpdateTeamMemberParams],
	}).mount(r, middleware.RequireSession(fakeChecker(true)))
	return r
}

func TestResourceDeleteWithoutIDMakesNoStoreCall(t *testing.T) {
	s := &countingStore{}
	rec := serve(t, countingRouter(s), http.MethodDelete, "/team", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MsgIDRequired, decode(t, rec).Error)
	assert.Zero(t, s.calls)
}

func TestResourceUpdateWithoutIDMakesNoStoreCall(t *testing.T) {
	s := &countingStore{}
	rec := serve(t, countingRouter(s), http.MethodPut, "/team", map[string]any{"name": "Ada"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MsgIDRequired, decode(t, rec).Error)
	assert.Zero(t, s.calls)
}

func TestResourceListStoreErrorIs500(t *testing.T) {
	s := &countingStore{listErr: errors.New("database is locked")}
	rec := serve(t, countingRouter(s), http.MethodGet, "/team", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "database is locked", env.Error)
}

func TestResourceListEmptyIsArray(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodGet, "/team", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func TestTeamCreateMissingImage(t *testing.T) {
	a := newTestAPI(t, withSession)
	rec := a.do(t, http.MethodPost, "/team", map[string]any{
		"name":     "Ada Lovelace",
		"position": "Principal",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields: image", decode(t, rec).Error)

	members, err := a.stores.Team.List(context.Background(), store.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestTeamCreateComplete(t *testing.T) {
	a := newTestAPI(t, withSession)
	rec := a.do(t, http.MethodPost, "/team", map[string]any{
		"name":     "Ada Lovelace",
		"position": "Principal",
		"image":    "/uploads/team/ada.jpg",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	m := decodeData[store.TeamMember](t, rec)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Ada Lovelace", m.Name)
	assert.True(t, m.IsActive, "is_active defaults to true")
}

func TestTeamUpdatePartial(t *testing.T) {
	a := newTestAPI(t, withSession)
	created, err := a.stores.Team.Create(context.Background(), store.CreateTeamMemberParams{
		Name: "Ada", Position: "Principal", Image: "/a.jpg", Bio: "keep me",
	})
	require.NoError(t, err)

	rec := a.do(t, http.MethodPut, "/team?id="+created.ID, map[string]any{"position": "Partner"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	m := decodeData[store.TeamMember](t, rec)
	assert.Equal(t, "Partner", m.Position)
	assert.Equal(t, "keep me", m.Bio)
	assert.Equal(t, "Ada", m.Name)
}

func TestTeamUpdateEmptyRequiredField(t *testing.T) {
	a := newTestAPI(t, withSession)
	rec := a.do(t, http.MethodPut, "/team?id=x", map[string]any{"name": ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name must not be empty", decode(t, rec).Error)
}

func TestResourceNotFound(t *testing.T) {
	a := newTestAPI(t, withSession)

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/team/missing", nil},
		{http.MethodPut, "/team?id=missing", map[string]any{"name": "X"}},
		{http.MethodDelete, "/team?id=missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := a.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Team member not found", decode(t, rec).Error)
		})
	}
}

func TestResourceDelete(t *testing.T) {
	a := newTestAPI(t, withSession)
	slide, err := a.stores.Hero.Create(context.Background(), store.CreateHeroSlideParams{Title: "One", Image: "/1.jpg"})
	require.NoError(t, err)

	rec := a.do(t, http.MethodDelete, "/hero?id="+slide.ID, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestWritesRequireSession(t *testing.T) {
	a := newTestAPI(t)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rec := a.do(t, method, "/hero?id=x", map[string]any{"title": "T", "image": "/x.jpg"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, method)
	}
}

func TestCategorySlugDerivedAndUnique(t *testing.T) {
	a := newTestAPI(t, withSession)

	rec := a.do(t, http.MethodPost, "/categories", map[string]any{"name": "Café Interiors"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "cafe-interiors", decodeData[store.Category](t, rec).Slug)

	rec = a.do(t, http.MethodPost, "/categories", map[string]any{"name": "Cafe interiors"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "A category with this slug already exists", decode(t, rec).Error)

	rec = a.do(t, http.MethodPost, "/categories", map[string]any{"name": "Bad", "slug": "Not Valid"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(decode(t, rec).Error, "Invalid slug"))

	rec = a.do(t, http.MethodPost, "/categories", map[string]any{"name": "!!!"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectsFilteredByCategory(t *testing.T) {
	a := newTestAPI(t, withSession)
	ctx := context.Background()

	cat, err := a.stores.Categories.Create(ctx, store.CreateCategoryParams{Name: "Residential", Slug: "residential"})
	require.NoError(t, err)
	_, err = a.stores.Projects.Create(ctx, store.CreateProjectParams{
		Title: "House", Slug: "house", CoverImage: "/h.jpg", CategoryID: &cat.ID, IsActive: true,
	})
	require.NoError(t, err)
	_, err = a.stores.Projects.Create(ctx, store.CreateProjectParams{
		Title: "Tower", Slug: "tower", CoverImage: "/t.jpg", IsActive: true,
	})
	require.NoError(t, err)

	rec := a.do(t, http.MethodGet, "/projects?category=residential", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decodeData[[]store.Project](t, rec)
	require.Len(t, projects, 1)
	assert.Equal(t, "house", projects[0].Slug)

	rec = a.do(t, http.MethodGet, "/projects/slug/tower", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tower", decodeData[store.Project](t, rec).Title)
}

func TestListRejectsBadQuery(t *testing.T) {
	a := newTestAPI(t)

	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/works?order=sideways", nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/works?limit=-1", nil).Code)
}

func TestCreateRejectsUnknownFields(t *testing.T) {
	a := newTestAPI(t, withSession)
	rec := a.do(t, http.MethodPost, "/works", map[string]any{
		"title": "W", "slug": "w", "image": "/w.jpg", "colour": "red",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Error, "unknown field")
}

func TestCacheInvalidatedOnWrite(t *testing.T) {
	a := newTestAPI(t, withSession, withCache(t))

	rec := a.do(t, http.MethodGet, "/works", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeData[[]store.Work](t, rec))

	rec = a.do(t, http.MethodPost, "/works", map[string]any{"title": "W", "slug": "w", "image": "/w.jpg"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(t, http.MethodGet, "/works", nil)
	assert.Len(t, decodeData[[]store.Work](t, rec), 1)
}

func TestNewsReadsRenderSanitisedHTML(t *testing.T) {
	a := newTestAPI(t, withSession)
	rec := a.do(t, http.MethodPost, "/news", map[string]any{
		"title":        "Opening",
		"slug":         "opening",
		"content":      "We **opened** a studio.\n\n<script>alert(1)</script>",
		"is_published": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(t, http.MethodGet, "/news/slug/opening", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	type newsJSON struct {
		Content     string `json:"content"`
		ContentHTML string `json:"content_html"`
		PublishedAt string `json:"published_at"`
	}
	got := decodeData[newsJSON](t, rec)
	assert.Contains(t, got.ContentHTML, "<strong>opened</strong>")
	assert.NotContains(t, got.ContentHTML, "<script>")
	assert.Contains(t, got.Content, "**opened**")
	assert.NotEmpty(t, got.PublishedAt)
}

func TestProjectUnknownCategoryIsValidationError(t *testing.T) {
	a := newTestAPI(t, withSession)

	rec := a.do(t, http.MethodPost, "/projects", map[string]any{
		"title": "House", "slug": "house", "cover_image": "/h.jpg", "category_id": "no-such-category",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown category_id", decode(t, rec).Error)

	rec = a.do(t, http.MethodPost, "/projects", map[string]any{
		"title": "House", "slug": "house", "cover_image": "/h.jpg",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeData[store.Project](t, rec).ID

	rec = a.do(t, http.MethodPut, "/projects?id="+id, map[string]any{"category_id": "no-such-category"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown category_id", decode(t, rec).Error)
}

// switchChecker is a session state a test can flip between requests.
type switchChecker struct{ signedIn bool }

func (s *switchChecker) Authenticated(*http.Request) bool { return s.signedIn }

func TestPublicReadsHideInactiveRecords(t *testing.T) {
	session := &switchChecker{}
	a := newTestAPI(t, withCache(t), func(c *Config) { c.Checker = session })
	ctx := context.Background()

	draft, err := a.stores.News.Create(ctx, store.CreateNewsParams{Title: "Secret", Slug: "secret-draft", Content: "embargoed"})
	require.NoError(t, err)
	_, err = a.stores.News.Create(ctx, store.CreateNewsParams{Title: "Out", Slug: "out", Content: "hello", IsPublished: true})
	require.NoError(t, err)
	hidden, err := a.stores.Projects.Create(ctx, store.CreateProjectParams{
		Title: "Hidden", Slug: "hidden", CoverImage: "/h.jpg", IsActive: false,
	})
	require.NoError(t, err)
	member, err := a.stores.Team.Create(ctx, store.CreateTeamMemberParams{
		Name: "Former", Position: "Intern", Image: "/f.jpg", IsActive: false,
	})
	require.NoError(t, err)

	anonymous := []struct {
		path string
		code int
	}{
		{"/news/slug/secret-draft", http.StatusNotFound},
		{"/news/" + draft.ID, http.StatusNotFound},
		{"/news/slug/out", http.StatusOK},
		{"/projects/slug/hidden", http.StatusNotFound},
		{"/projects/" + hidden.ID, http.StatusNotFound},
		{"/gallery/" + hidden.ID, http.StatusNotFound},
		{"/team/" + member.ID, http.StatusNotFound},
	}

	t.Run("anonymous", func(t *testing.T) {
		session.signedIn = false
		for _, tt := range anonymous {
			assert.Equal(t, tt.code, a.do(t, http.MethodGet, tt.path, nil).Code, tt.path)
		}

		news := decodeData[[]store.NewsArticle](t, a.do(t, http.MethodGet, "/news", nil))
		require.Len(t, news, 1)
		assert.Equal(t, "out", news[0].Slug)
		assert.Empty(t, decodeData[[]store.Project](t, a.do(t, http.MethodGet, "/projects", nil)))
		assert.Empty(t, decodeData[[]store.TeamMember](t, a.do(t, http.MethodGet, "/team", nil)))
	})

	t.Run("admin", func(t *testing.T) {
		session.signedIn = true
		for _, tt := range anonymous {
			assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, tt.path, nil).Code, tt.path)
		}

		assert.Len(t, decodeData[[]store.NewsArticle](t, a.do(t, http.MethodGet, "/news", nil)), 2)
		assert.Len(t, decodeData[[]store.Project](t, a.do(t, http.MethodGet, "/projects", nil)), 1)
		assert.Len(t, decodeData[[]store.TeamMember](t, a.do(t, http.MethodGet, "/team", nil)), 1)
	})

	t.Run("anonymous after admin read", func(t *testing.T) {
		session.signedIn = false
		assert.Len(t, decodeData[[]store.NewsArticle](t, a.do(t, http.MethodGet, "/news", nil)), 1)
		assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/news/slug/secret-draft", nil).Code)
	})
}
