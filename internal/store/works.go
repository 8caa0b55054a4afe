// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

const workColumns = `id, title, slug, description, image, featured, order_position, created_at, updated_at`

// WorkStore persists showcase works.
type WorkStore struct {
	db DBTX
}

// CreateWorkParams holds the fields of a new work.
type CreateWorkParams struct {
	Title         string
	Slug          string
	Description   string
	Image         string
	Featured      bool
	OrderPosition int64
}

// UpdateWorkParams holds a partial update; nil fields are left unchanged.
type UpdateWorkParams struct {
	Title         *string
	Slug          *string
	Description   *string
	Image         *string
	Featured      *bool
	OrderPosition *int64
}

func scanWork(s scanner) (Work, error) {
	var w Work
	err := s.Scan(&w.ID, &w.Title, &w.Slug, &w.Description, &w.Image, &w.Featured, &w.OrderPosition,
		&w.CreatedAt, &w.UpdatedAt)
	return w, err
}

// List returns works ordered by order_position.
func (s *WorkStore) List(ctx context.Context, opts ListOptions) ([]Work, error) {
	q := listQuery{base: "SELECT " + workColumns + " FROM works"}
	if opts.FeaturedOnly {
		q.where("featured = 1")
	}
	query, args := q.build("order_position", opts)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing works: %w", err)
	}
	return collect(rows, scanWork)
}

// Get returns one work or sql.ErrNoRows.
func (s *WorkStore) Get(ctx context.Context, id string) (Work, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+workColumns+" FROM works WHERE id = ?", id)
	return scanWork(row)
}

// GetBySlug returns the work with the given slug or sql.ErrNoRows.
func (s *WorkStore) GetBySlug(ctx context.Context, slug string) (Work, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+workColumns+" FROM works WHERE slug = ?", slug)
	return scanWork(row)
}

// Create inserts a work and returns the stored row.
func (s *WorkStore) Create(ctx context.Context, p CreateWorkParams) (Work, error) {
	id := newID()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO works (id, title, slug, description, image, featured, order_position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, p.Slug, p.Description, p.Image, p.Featured, p.OrderPosition, now, now,
	)
	if err != nil {
		return Work{}, fmt.Errorf("creating work: %w", classify(err))
	}
	return s.Get(ctx, id)
}

// Update applies a partial update and returns the updated row or sql.ErrNoRows.
func (s *WorkStore) Update(ctx context.Context, id string, p UpdateWorkParams) (Work, error) {
	err := execOne(ctx, s.db, `
		UPDATE works SET
			title = COALESCE(?, title),
			slug = COALESCE(?, slug),
			description = COALESCE(?, description),
			image = COALESCE(?, image),
			featured = COALESCE(?, featured),
			order_position = COALESCE(?, order_position),
			updated_at = ?
		WHERE id = ?`,
		p.Title, p.Slug, p.Description, p.Image, p.Featured, p.OrderPosition, time.Now().UTC(), id,
	)
	if err != nil {
		return Work{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a work or returns sql.ErrNoRows.
func (s *WorkStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "works", id)
}
