// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-go/internal/apperr"
	"github.com/olegiv/studio-go/internal/cache"
	"github.com/olegiv/studio-go/internal/handler/response"
	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/store"
)

// ResourceStore is the store contract shared by the CRUD resources.
type ResourceStore[T, C, U any] interface {
	List(ctx context.Context, opts store.ListOptions) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, p C) (T, error)
	Update(ctx context.Context, id string, p U) (T, error)
	Delete(ctx context.Context, id string) error
}

// paramsRequest is a decoded request body that converts to store params.
type paramsRequest[P any] interface {
	params() (P, error)
}

// bind decodes and validates a body of type R and converts it to params.
func bind[R any, P any, PR interface {
	*R
	paramsRequest[P]
}](w http.ResponseWriter, r *http.Request) (P, error) {
	var req R
	if err := decodeJSON(w, r, &req); err != nil {
		var zero P
		return zero, err
	}
	return PR(&req).params()
}

// resource implements list/get/create/update/delete for one table.
type resource[T, C, U any] struct {
	// name is the URL segment and cache namespace.
	name string
	// entity is the singular noun used in messages.
	entity string
	store  ResourceStore[T, C, U]
	bySlug func(ctx context.Context, slug string) (T, error)

	decodeCreate func(w http.ResponseWriter, r *http.Request) (C, error)
	decodeUpdate func(w http.ResponseWriter, r *http.Request) (U, error)

	// view shapes public reads; nil returns the record as is.
	view func(T) any
	// dependents are other cache namespaces embedding this resource.
	dependents []string
	// reference names the foreign key field, used in validation messages.
	reference string

	// visible reports whether anonymous callers may read a record; nil
	// means every record is public. Anonymous lists are limited to active
	// records whenever it is set.
	visible func(T) bool
	checker middleware.SessionChecker

	cache *cache.Content
}

// public reports whether the request is subject to the visibility rule.
func (rs *resource[T, C, U]) public(r *http.Request) bool {
	if rs.visible == nil {
		return false
	}
	return rs.checker == nil || !rs.checker.Authenticated(r)
}

// hidden reports whether item must be reported as missing to this caller.
func (rs *resource[T, C, U]) hidden(r *http.Request, item T) bool {
	return rs.public(r) && !rs.visible(item)
}

func (rs *resource[T, C, U]) present(v T) any {
	if rs.view == nil {
		return v
	}
	return rs.view(v)
}

func (rs *resource[T, C, U]) presentAll(items []T) any {
	if rs.view == nil {
		return items
	}
	out := make([]any, 0, len(items))
	for _, v := range items {
		out = append(out, rs.view(v))
	}
	return out
}

// listOptions reads ?active, ?featured, ?category, ?order and ?limit.
func listOptions(r *http.Request) (store.ListOptions, error) {
	q := r.URL.Query()
	opts := store.ListOptions{
		ActiveOnly:   q.Get("active") == "true",
		FeaturedOnly: q.Get("featured") == "true",
		CategorySlug: strings.TrimSpace(q.Get("category")),
	}

	switch strings.ToLower(q.Get("order")) {
	case "", "asc":
	case "desc":
		opts.Descending = true
	default:
		return opts, apperr.Validation("order must be asc or desc")
	}

	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return opts, apperr.Validation("limit must be a non-negative integer")
		}
		opts.Limit = n
	}
	return opts, nil
}

func (rs *resource[T, C, U]) list(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		response.AppError(w, r, err)
		return
	}

	key := "list?" + r.URL.RawQuery
	if rs.public(r) {
		opts.ActiveOnly = true
		key = "public/" + key
	}
	items, err := cache.Remember(r.Context(), rs.cache, cache.Key(rs.name, key),
		func(ctx context.Context) ([]T, error) {
			return rs.store.List(ctx, opts)
		})
	if err != nil {
		response.AppError(w, r, apperr.Upstream(err))
		return
	}
	response.Data(w, http.StatusOK, rs.presentAll(items))
}

func (rs *resource[T, C, U]) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := cache.Remember(r.Context(), rs.cache, cache.Key(rs.name, "id/"+id),
		func(ctx context.Context) (T, error) {
			return rs.store.Get(ctx, id)
		})
	if err == nil && rs.hidden(r, item) {
		err = sql.ErrNoRows
	}
	if err != nil {
		response.AppError(w, r, rs.lookupError(err))
		return
	}
	response.Data(w, http.StatusOK, rs.present(item))
}

func (rs *resource[T, C, U]) getBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	item, err := cache.Remember(r.Context(), rs.cache, cache.Key(rs.name, "slug/"+slug),
		func(ctx context.Context) (T, error) {
			return rs.bySlug(ctx, slug)
		})
	if err == nil && rs.hidden(r, item) {
		err = sql.ErrNoRows
	}
	if err != nil {
		response.AppError(w, r, rs.lookupError(err))
		return
	}
	response.Data(w, http.StatusOK, rs.present(item))
}

func (rs *resource[T, C, U]) create(w http.ResponseWriter, r *http.Request) {
	p, err := rs.decodeCreate(w, r)
	if err != nil {
		response.AppError(w, r, asValidation(err))
		return
	}

	item, err := rs.store.Create(r.Context(), p)
	if err != nil {
		response.AppError(w, r, rs.writeError(err))
		return
	}
	rs.invalidate(r.Context())
	response.Data(w, http.StatusCreated, item)
}

func (rs *resource[T, C, U]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r, "id")
	if !ok {
		return
	}
	p, err := rs.decodeUpdate(w, r)
	if err != nil {
		response.AppError(w, r, asValidation(err))
		return
	}

	item, err := rs.store.Update(r.Context(), id, p)
	if err != nil {
		response.AppError(w, r, rs.writeError(err))
		return
	}
	rs.invalidate(r.Context())
	response.Data(w, http.StatusOK, item)
}

func (rs *resource[T, C, U]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r, "id")
	if !ok {
		return
	}
	if err := rs.store.Delete(r.Context(), id); err != nil {
		response.AppError(w, r, rs.lookupError(err))
		return
	}
	rs.invalidate(r.Context())
	response.Success(w, nil)
}

func (rs *resource[T, C, U]) invalidate(ctx context.Context) {
	rs.cache.Invalidate(ctx, append([]string{rs.name}, rs.dependents...)...)
}

func (rs *resource[T, C, U]) notFound() *apperr.Error {
	return apperr.NotFound(capitalizeFirst(rs.entity) + " not found")
}

func (rs *resource[T, C, U]) lookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return rs.notFound()
	}
	return apperr.Upstream(err)
}

func (rs *resource[T, C, U]) writeError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return rs.notFound()
	case errors.Is(err, store.ErrUniqueViolation):
		return apperr.Conflict("A "+rs.entity+" with this slug already exists", err)
	case errors.Is(err, store.ErrForeignKeyViolation):
		ref := rs.reference
		if ref == "" {
			ref = "reference"
		}
		return apperr.Validation("Unknown " + ref)
	default:
		return apperr.Upstream(err)
	}
}

// asValidation keeps apperr values and marks anything else as a validation
// failure.
func asValidation(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Validation(err.Error())
}

// mount registers the public reads and the session-guarded writes.
func (rs *resource[T, C, U]) mount(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/"+rs.name, func(r chi.Router) {
		r.Get("/", rs.list)
		r.Get("/{id}", rs.get)
		if rs.bySlug != nil {
			r.Get("/slug/{slug}", rs.getBySlug)
		}
		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Post("/", rs.create)
			r.Put("/", rs.update)
			r.Delete("/", rs.delete)
		})
	})
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
