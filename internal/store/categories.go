// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

const categoryColumns = `id, name, slug, description, order_position, created_at, updated_at`

// CategoryStore persists project categories.
type CategoryStore struct {
	db DBTX
}

// CreateCategoryParams holds the fields of a new category.
type CreateCategoryParams struct {
	Name          string
	Slug          string
	Description   string
	OrderPosition int64
}

// UpdateCategoryParams holds a partial update; nil fields are left unchanged.
type UpdateCategoryParams struct {
	Name          *string
	Slug          *string
	Description   *string
	OrderPosition *int64
}

func scanCategory(s scanner) (Category, error) {
	var c Category
	err := s.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.OrderPosition, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns categories ordered by order_position.
func (s *CategoryStore) List(ctx context.Context, opts ListOptions) ([]Category, error) {
	q := listQuery{base: "SELECT " + categoryColumns + " FROM categories"}
	query, args := q.build("order_position", opts)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return collect(rows, scanCategory)
}

// Get returns one category or sql.ErrNoRows.
func (s *CategoryStore) Get(ctx context.Context, id string) (Category, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)
	return scanCategory(row)
}

// GetBySlug returns the category with the given slug or sql.ErrNoRows.
func (s *CategoryStore) GetBySlug(ctx context.Context, slug string) (Category, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE slug = ?", slug)
	return scanCategory(row)
}

// Create inserts a category and returns the stored row.
func (s *CategoryStore) Create(ctx context.Context, p CreateCategoryParams) (Category, error) {
	id := newID()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description, order_position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.Name, p.Slug, p.Description, p.OrderPosition, now, now,
	)
	if err != nil {
		return Category{}, fmt.Errorf("creating category: %w", classify(err))
	}
	return s.Get(ctx, id)
}

// Update applies a partial update and returns the updated row or sql.ErrNoRows.
func (s *CategoryStore) Update(ctx context.Context, id string, p UpdateCategoryParams) (Category, error) {
	err := execOne(ctx, s.db, `
		UPDATE categories SET
			name = COALESCE(?, name),
			slug = COALESCE(?, slug),
			description = COALESCE(?, description),
			order_position = COALESCE(?, order_position),
			updated_at = ?
		WHERE id = ?`,
		p.Name, p.Slug, p.Description, p.OrderPosition, time.Now().UTC(), id,
	)
	if err != nil {
		return Category{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a category. Projects in it keep existing with no category.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "categories", id)
}
