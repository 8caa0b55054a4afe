// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

const projectImageColumns = `id, project_id, image_url, caption, order_position, created_at`

// GalleryStore persists project gallery images.
type GalleryStore struct {
	db DBTX
}

// AddProjectImageParams holds the fields of a new gallery image.
type AddProjectImageParams struct {
	ProjectID     string
	ImageURL      string
	Caption       string
	OrderPosition int64
}

func scanProjectImage(s scanner) (ProjectImage, error) {
	var i ProjectImage
	err := s.Scan(&i.ID, &i.ProjectID, &i.ImageURL, &i.Caption, &i.OrderPosition, &i.CreatedAt)
	return i, err
}

// ListByProject returns the images of a project in display order.
func (s *GalleryStore) ListByProject(ctx context.Context, projectID string) ([]ProjectImage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+projectImageColumns+" FROM project_images WHERE project_id = ? ORDER BY order_position ASC, created_at ASC",
		projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project images: %w", err)
	}
	return collect(rows, scanProjectImage)
}

// ListAll returns every gallery image, used by the image diagnostics.
func (s *GalleryStore) ListAll(ctx context.Context) ([]ProjectImage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+projectImageColumns+" FROM project_images ORDER BY project_id, order_position")
	if err != nil {
		return nil, fmt.Errorf("listing project images: %w", err)
	}
	return collect(rows, scanProjectImage)
}

// Get returns one gallery image or sql.ErrNoRows.
func (s *GalleryStore) Get(ctx context.Context, id string) (ProjectImage, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+projectImageColumns+" FROM project_images WHERE id = ?", id)
	return scanProjectImage(row)
}

// Add inserts a gallery image. A missing project surfaces as a foreign key error.
func (s *GalleryStore) Add(ctx context.Context, p AddProjectImageParams) (ProjectImage, error) {
	id := newID()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO project_images (id, project_id, image_url, caption, order_position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.ProjectID, p.ImageURL, p.Caption, p.OrderPosition, time.Now().UTC(),
	)
	if err != nil {
		return ProjectImage{}, fmt.Errorf("adding project image: %w", classify(err))
	}
	return s.Get(ctx, id)
}

// Delete removes a gallery image or returns sql.ErrNoRows.
func (s *GalleryStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "project_images", id)
}
