// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

const projectColumns = `p.id, p.title, p.slug, p.description, p.location, p.year, p.category_id, p.cover_image,
	p.featured, p.order_position, p.is_active, p.created_at, p.updated_at`

// ProjectStore persists portfolio projects.
type ProjectStore struct {
	db DBTX
}

// CreateProjectParams holds the fields of a new project.
type CreateProjectParams struct {
	Title         string
	Slug          string
	Description   string
	Location      string
	Year          *int64
	CategoryID    *string
	CoverImage    string
	Featured      bool
	OrderPosition int64
	IsActive      bool
}

// UpdateProjectParams holds a partial update; nil fields are left unchanged.
// A project cannot be moved back to "no category" through an update.
type UpdateProjectParams struct {
	Title         *string
	Slug          *string
	Description   *string
	Location      *string
	Year          *int64
	CategoryID    *string
	CoverImage    *string
	Featured      *bool
	OrderPosition *int64
	IsActive      *bool
}

func scanProject(s scanner) (Project, error) {
	var p Project
	err := s.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Location, &p.Year, &p.CategoryID,
		&p.CoverImage, &p.Featured, &p.OrderPosition, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns projects ordered by order_position, optionally filtered by
// category slug, featured flag and activity.
func (s *ProjectStore) List(ctx context.Context, opts ListOptions) ([]Project, error) {
	q := listQuery{base: "SELECT " + projectColumns + " FROM projects p", tieBreak: "p.created_at"}
	if opts.CategorySlug != "" {
		q.base += " JOIN categories c ON c.id = p.category_id"
		q.where("c.slug = ?", opts.CategorySlug)
	}
	if opts.ActiveOnly {
		q.where("p.is_active = 1")
	}
	if opts.FeaturedOnly {
		q.where("p.featured = 1")
	}
	query, args := q.build("p.order_position", opts)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return collect(rows, scanProject)
}

// Get returns one project or sql.ErrNoRows.
func (s *ProjectStore) Get(ctx context.Context, id string) (Project, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects p WHERE p.id = ?", id)
	return scanProject(row)
}

// GetBySlug returns the project with the given slug or sql.ErrNoRows.
func (s *ProjectStore) GetBySlug(ctx context.Context, slug string) (Project, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects p WHERE p.slug = ?", slug)
	return scanProject(row)
}

// Create inserts a project and returns the stored row.
func (s *ProjectStore) Create(ctx context.Context, p CreateProjectParams) (Project, error) {
	id := newID()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, slug, description, location, year, category_id, cover_image,
			featured, order_position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, p.Slug, p.Description, p.Location, p.Year, p.CategoryID, p.CoverImage,
		p.Featured, p.OrderPosition, p.IsActive, now, now,
	)
	if err != nil {
		return Project{}, fmt.Errorf("creating project: %w", classify(err))
	}
	return s.Get(ctx, id)
}

// Update applies a partial update and returns the updated row or sql.ErrNoRows.
func (s *ProjectStore) Update(ctx context.Context, id string, p UpdateProjectParams) (Project, error) {
	err := execOne(ctx, s.db, `
		UPDATE projects SET
			title = COALESCE(?, title),
			slug = COALESCE(?, slug),
			description = COALESCE(?, description),
			location = COALESCE(?, location),
			year = COALESCE(?, year),
			category_id = COALESCE(?, category_id),
			cover_image = COALESCE(?, cover_image),
			featured = COALESCE(?, featured),
			order_position = COALESCE(?, order_position),
			is_active = COALESCE(?, is_active),
			updated_at = ?
		WHERE id = ?`,
		p.Title, p.Slug, p.Description, p.Location, p.Year, p.CategoryID, p.CoverImage,
		p.Featured, p.OrderPosition, p.IsActive, time.Now().UTC(), id,
	)
	if err != nil {
		return Project{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a project and, by cascade, its gallery.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "projects", id)
}
