// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

const heroSlideColumns = `id, title, subtitle, image, link_url, order_position, is_active, created_at, updated_at`

// HeroSlideStore persists hero carousel slides.
type HeroSlideStore struct {
	db DBTX
}

// CreateHeroSlideParams holds the fields of a new slide.
type CreateHeroSlideParams struct {
	Title         string
	Subtitle      string
	Image         string
	LinkURL       string
	OrderPosition int64
	IsActive      bool
}

// UpdateHeroSlideParams holds a partial update; nil fields are left unchanged.
type UpdateHeroSlideParams struct {
	Title         *string
	Subtitle      *string
	Image         *string
	LinkURL       *string
	OrderPosition *int64
	IsActive      *bool
}

func scanHeroSlide(s scanner) (HeroSlide, error) {
	var h HeroSlide
	err := s.Scan(&h.ID, &h.Title, &h.Subtitle, &h.Image, &h.LinkURL, &h.OrderPosition, &h.IsActive,
		&h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// List returns slides ordered by order_position.
func (s *HeroSlideStore) List(ctx context.Context, opts ListOptions) ([]HeroSlide, error) {
	q := listQuery{base: "SELECT " + heroSlideColumns + " FROM hero_slides"}
	if opts.ActiveOnly {
		q.where("is_active = 1")
	}
	query, args := q.build("order_position", opts)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing hero slides: %w", err)
	}
	return collect(rows, scanHeroSlide)
}

// Get returns one slide or sql.ErrNoRows.
func (s *HeroSlideStore) Get(ctx context.Context, id string) (HeroSlide, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+heroSlideColumns+" FROM hero_slides WHERE id = ?", id)
	return scanHeroSlide(row)
}

// Create inserts a slide and returns the stored row.
func (s *HeroSlideStore) Create(ctx context.Context, p CreateHeroSlideParams) (HeroSlide, error) {
	id := newID()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hero_slides (id, title, subtitle, image, link_url, order_position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, p.Subtitle, p.Image, p.LinkURL, p.OrderPosition, p.IsActive, now, now,
	)
	if err != nil {
		return HeroSlide{}, fmt.Errorf("creating hero slide: %w", classify(err))
	}
	return s.Get(ctx, id)
}

// Update applies a partial update and returns the updated row or sql.ErrNoRows.
func (s *HeroSlideStore) Update(ctx context.Context, id string, p UpdateHeroSlideParams) (HeroSlide, error) {
	err := execOne(ctx, s.db, `
		UPDATE hero_slides SET
			title = COALESCE(?, title),
			subtitle = COALESCE(?, subtitle),
			image = COALESCE(?, image),
			link_url = COALESCE(?, link_url),
			order_position = COALESCE(?, order_position),
			is_active = COALESCE(?, is_active),
			updated_at = ?
		WHERE id = ?`,
		p.Title, p.Subtitle, p.Image, p.LinkURL, p.OrderPosition, p.IsActive, time.Now().UTC(), id,
	)
	if err != nil {
		return HeroSlide{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a slide or returns sql.ErrNoRows.
func (s *HeroSlideStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "hero_slides", id)
}
