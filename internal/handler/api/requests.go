// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"strings"
	"time"

	"github.com/olegiv/studio-go/internal/apperr"
	"github.com/olegiv/studio-go/internal/store"
	"github.com/olegiv/studio-go/internal/util"
)

// Request bodies for the CRUD resources. Create bodies list the required
// fields; update bodies use pointers so that only provided fields change.

type teamCreateRequest struct {
	Name          string `json:"name" validate:"required"`
	Position      string `json:"position" validate:"required"`
	Bio           string `json:"bio"`
	Image         string `json:"image" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	LinkedInURL   string `json:"linkedin_url"`
	OrderPosition int64  `json:"order_position"`
	IsActive      *bool  `json:"is_active"`
}

func (r *teamCreateRequest) params() (store.CreateTeamMemberParams, error) {
	return store.CreateTeamMemberParams{
		Name:          strings.TrimSpace(r.Name),
		Position:      strings.TrimSpace(r.Position),
		Bio:           r.Bio,
		Image:         r.Image,
		Email:         r.Email,
		LinkedInURL:   r.LinkedInURL,
		OrderPosition: r.OrderPosition,
		IsActive:      boolOr(r.IsActive, true),
	}, nil
}

type teamUpdateRequest struct {
	Name          *string `json:"name" validate:"omitnil,min=1"`
	Position      *string `json:"position" validate:"omitnil,min=1"`
	Bio           *string `json:"bio"`
	Image         *string `json:"image" validate:"omitnil,min=1"`
	Email         *string `json:"email" validate:"omitempty,email"`
	LinkedInURL   *string `json:"linkedin_url"`
	OrderPosition *int64  `json:"order_position"`
	IsActive      *bool   `json:"is_active"`
}

func (r *teamUpdateRequest) params() (store.UpdateTeamMemberParams, error) {
	return store.UpdateTeamMemberParams{
		Name:          r.Name,
		Position:      r.Position,
		Bio:           r.Bio,
		Image:         r.Image,
		Email:         r.Email,
		LinkedInURL:   r.LinkedInURL,
		OrderPosition: r.OrderPosition,
		IsActive:      r.IsActive,
	}, nil
}

type heroCreateRequest struct {
	Title         string `json:"title" validate:"required"`
	Subtitle      string `json:"subtitle"`
	Image         string `json:"image" validate:"required"`
	LinkURL       string `json:"link_url"`
	OrderPosition int64  `json:"order_position"`
	IsActive      *bool  `json:"is_active"`
}

func (r *heroCreateRequest) params() (store.CreateHeroSlideParams, error) {
	return store.CreateHeroSlideParams{
		Title:         strings.TrimSpace(r.Title),
		Subtitle:      r.Subtitle,
		Image:         r.Image,
		LinkURL:       r.LinkURL,
		OrderPosition: r.OrderPosition,
		IsActive:      boolOr(r.IsActive, true),
	}, nil
}

type heroUpdateRequest struct {
	Title         *string `json:"title" validate:"omitnil,min=1"`
	Subtitle      *string `json:"subtitle"`
	Image         *string `json:"image" validate:"omitnil,min=1"`
	LinkURL       *string `json:"link_url"`
	OrderPosition *int64  `json:"order_position"`
	IsActive      *bool   `json:"is_active"`
}

func (r *heroUpdateRequest) params() (store.UpdateHeroSlideParams, error) {
	return store.UpdateHeroSlideParams{
		Title:         r.Title,
		Subtitle:      r.Subtitle,
		Image:         r.Image,
		LinkURL:       r.LinkURL,
		OrderPosition: r.OrderPosition,
		IsActive:      r.IsActive,
	}, nil
}

type categoryCreateRequest struct {
	Name          string `json:"name" validate:"required"`
	Slug          string `json:"slug" validate:"omitempty,slug"`
	Description   string `json:"description"`
	OrderPosition int64  `json:"order_position"`
}

// params derives the slug from the name when none is given.
func (r *categoryCreateRequest) params() (store.CreateCategoryParams, error) {
	slug := r.Slug
	if slug == "" {
		slug = util.Slugify(r.Name)
	}
	if !util.IsValidSlug(slug) {
		return store.CreateCategoryParams{}, apperr.Validation("Could not derive a slug from the name; provide one")
	}
	return store.CreateCategoryParams{
		Name:          strings.TrimSpace(r.Name),
		Slug:          slug,
		Description:   r.Description,
		OrderPosition: r.OrderPosition,
	}, nil
}

type categoryUpdateRequest struct {
	Name          *string `json:"name" validate:"omitnil,min=1"`
	Slug          *string `json:"slug" validate:"omitnil,slug"`
	Description   *string `json:"description"`
	OrderPosition *int64  `json:"order_position"`
}

func (r *categoryUpdateRequest) params() (store.UpdateCategoryParams, error) {
	return store.UpdateCategoryParams{
		Name:          r.Name,
		Slug:          r.Slug,
		Description:   r.Description,
		OrderPosition: r.OrderPosition,
	}, nil
}

type projectCreateRequest struct {
	Title         string  `json:"title" validate:"required"`
	Slug          string  `json:"slug" validate:"required,slug"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	Year          *int64  `json:"year" validate:"omitnil,min=1800,max=2200"`
	CategoryID    *string `json:"category_id"`
	CoverImage    string  `json:"cover_image" validate:"required"`
	Featured      bool    `json:"featured"`
	OrderPosition int64   `json:"order_position"`
	IsActive      *bool   `json:"is_active"`
}

func (r *projectCreateRequest) params() (store.CreateProjectParams, error) {
	return store.CreateProjectParams{
		Title:         strings.TrimSpace(r.Title),
		Slug:          r.Slug,
		Description:   r.Description,
		Location:      r.Location,
		Year:          r.Year,
		CategoryID:    nonEmpty(r.CategoryID),
		CoverImage:    r.CoverImage,
		Featured:      r.Featured,
		OrderPosition: r.OrderPosition,
		IsActive:      boolOr(r.IsActive, true),
	}, nil
}

type projectUpdateRequest struct {
	Title         *string `json:"title" validate:"omitnil,min=1"`
	Slug          *string `json:"slug" validate:"omitnil,slug"`
	Description   *string `json:"description"`
	Location      *string `json:"location"`
	Year          *int64  `json:"year" validate:"omitnil,min=1800,max=2200"`
	CategoryID    *string `json:"category_id"`
	CoverImage    *string `json:"cover_image" validate:"omitnil,min=1"`
	Featured      *bool   `json:"featured"`
	OrderPosition *int64  `json:"order_position"`
	IsActive      *bool   `json:"is_active"`
}

func (r *projectUpdateRequest) params() (store.UpdateProjectParams, error) {
	return store.UpdateProjectParams{
		Title:         r.Title,
		Slug:          r.Slug,
		Description:   r.Description,
		Location:      r.Location,
		Year:          r.Year,
		CategoryID:    nonEmpty(r.CategoryID),
		CoverImage:    r.CoverImage,
		Featured:      r.Featured,
		OrderPosition: r.OrderPosition,
		IsActive:      r.IsActive,
	}, nil
}

type workCreateRequest struct {
	Title         string `json:"title" validate:"required"`
	Slug          string `json:"slug" validate:"required,slug"`
	Description   string `json:"description"`
	Image         string `json:"image" validate:"required"`
	Featured      bool   `json:"featured"`
	OrderPosition int64  `json:"order_position"`
}

func (r *workCreateRequest) params() (store.CreateWorkParams, error) {
	return store.CreateWorkParams{
		Title:         strings.TrimSpace(r.Title),
		Slug:          r.Slug,
		Description:   r.Description,
		Image:         r.Image,
		Featured:      r.Featured,
		OrderPosition: r.OrderPosition,
	}, nil
}

type workUpdateRequest struct {
	Title         *string `json:"title" validate:"omitnil,min=1"`
	Slug          *string `json:"slug" validate:"omitnil,slug"`
	Description   *string `json:"description"`
	Image         *string `json:"image" validate:"omitnil,min=1"`
	Featured      *bool   `json:"featured"`
	OrderPosition *int64  `json:"order_position"`
}

func (r *workUpdateRequest) params() (store.UpdateWorkParams, error) {
	return store.UpdateWorkParams{
		Title:         r.Title,
		Slug:          r.Slug,
		Description:   r.Description,
		Image:         r.Image,
		Featured:      r.Featured,
		OrderPosition: r.OrderPosition,
	}, nil
}

type newsCreateRequest struct {
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug" validate:"required,slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"cover_image"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
}

func (r *newsCreateRequest) params() (store.CreateNewsParams, error) {
	return store.CreateNewsParams{
		Title:       strings.TrimSpace(r.Title),
		Slug:        r.Slug,
		Excerpt:     r.Excerpt,
		Content:     r.Content,
		CoverImage:  r.CoverImage,
		IsPublished: r.IsPublished,
		PublishedAt: r.PublishedAt,
	}, nil
}

type newsUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitnil,min=1"`
	Slug        *string    `json:"slug" validate:"omitnil,slug"`
	Excerpt     *string    `json:"excerpt"`
	Content     *string    `json:"content"`
	CoverImage  *string    `json:"cover_image"`
	IsPublished *bool      `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
}

func (r *newsUpdateRequest) params() (store.UpdateNewsParams, error) {
	return store.UpdateNewsParams{
		Title:       r.Title,
		Slug:        r.Slug,
		Excerpt:     r.Excerpt,
		Content:     r.Content,
		CoverImage:  r.CoverImage,
		IsPublished: r.IsPublished,
		PublishedAt: r.PublishedAt,
	}, nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// nonEmpty maps a blank string to nil.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
