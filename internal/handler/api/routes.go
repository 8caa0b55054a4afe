// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-go/internal/handler/response"
	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/store"
)

// Routes returns the router mounted at /api. Reads are public, writes need
// an admin session.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	guard := middleware.RequireSession(h.cfg.Checker)
	s := h.stores
	c := h.cfg.Cache

	(&resource[store.TeamMember, store.CreateTeamMemberParams, store.UpdateTeamMemberParams]{
		name: "team", entity: "team member", store: s.Team, cache: c,
		checker:      h.cfg.Checker,
		visible:      func(m store.TeamMember) bool { return m.IsActive },
		decodeCreate: bind[teamCreateRequest, store.CreateTeamMemberParams],
		decodeUpdate: bind[teamUpdateRequest, store.UpdateTeamMemberParams],
	}).mount(r, guard)

	(&resource[store.HeroSlide, store.CreateHeroSlideParams, store.UpdateHeroSlideParams]{
		name: "hero", entity: "hero slide", store: s.Hero, cache: c,
		checker:      h.cfg.Checker,
		visible:      func(sl store.HeroSlide) bool { return sl.IsActive },
		decodeCreate: bind[heroCreateRequest, store.CreateHeroSlideParams],
		decodeUpdate: bind[heroUpdateRequest, store.UpdateHeroSlideParams],
	}).mount(r, guard)

	(&resource[store.Category, store.CreateCategoryParams, store.UpdateCategoryParams]{
		name: "categories", entity: "category", store: s.Categories, cache: c,
		bySlug:       s.Categories.GetBySlug,
		decodeCreate: bind[categoryCreateRequest, store.CreateCategoryParams],
		decodeUpdate: bind[categoryUpdateRequest, store.UpdateCategoryParams],
		dependents:   []string{"projects"},
	}).mount(r, guard)

	(&resource[store.Project, store.CreateProjectParams, store.UpdateProjectParams]{
		name: "projects", entity: "project", store: s.Projects, cache: c,
		bySlug:       s.Projects.GetBySlug,
		decodeCreate: bind[projectCreateRequest, store.CreateProjectParams],
		decodeUpdate: bind[projectUpdateRequest, store.UpdateProjectParams],
		dependents:   []string{galleryResource},
		reference:    "category_id",
		checker:      h.cfg.Checker,
		visible:      func(p store.Project) bool { return p.IsActive },
	}).mount(r, guard)

	(&resource[store.Work, store.CreateWorkParams, store.UpdateWorkParams]{
		name: "works", entity: "work", store: s.Works, cache: c,
		bySlug:       s.Works.GetBySlug,
		decodeCreate: bind[workCreateRequest, store.CreateWorkParams],
		decodeUpdate: bind[workUpdateRequest, store.UpdateWorkParams],
	}).mount(r, guard)

	(&resource[store.NewsArticle, store.CreateNewsParams, store.UpdateNewsParams]{
		name: "news", entity: "news article", store: s.News, cache: c,
		bySlug:       s.News.GetBySlug,
		decodeCreate: bind[newsCreateRequest, store.CreateNewsParams],
		decodeUpdate: bind[newsUpdateRequest, store.UpdateNewsParams],
		view:         newsWithHTML,
		checker:      h.cfg.Checker,
		visible:      func(n store.NewsArticle) bool { return n.IsPublished },
	}).mount(r, guard)

	r.Get("/about", h.GetAbout)
	r.With(guard).Post("/about", h.CreateAbout)
	r.With(guard).Put("/about", h.UpdateAbout)

	r.Get("/gallery/{id}", h.ListGallery)
	r.With(guard).Post("/gallery/{id}", h.AddGalleryImage)
	r.With(guard).Delete("/gallery/{id}", h.DeleteGalleryImage)

	collaborate := http.Handler(http.HandlerFunc(h.Collaborate))
	if h.cfg.CollaborateLimiter != nil {
		collaborate = h.cfg.CollaborateLimiter.Middleware(collaborate)
	}
	r.Method(http.MethodPost, "/collaborate", collaborate)

	r.Route("/admin", func(r chi.Router) {
		login := http.Handler(http.HandlerFunc(h.Login))
		if h.cfg.LoginProtection != nil {
			login = h.cfg.LoginProtection.Middleware(login)
		}
		r.Method(http.MethodPost, "/login", login)
		r.Post("/set-cookies", h.SetCookies)
		r.Post("/logout", h.Logout)
		r.Post("/register", h.Register)
	})

	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Get("/collaborations", h.ListCollaborations)
		r.Get("/admins", h.ListAdmins)
		r.Get("/admins/{id}", h.GetAdmin)
		r.Post("/upload", h.Upload)
		r.Get("/debug/images", h.DebugImages)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
