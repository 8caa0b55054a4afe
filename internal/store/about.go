// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const aboutColumns = `id, title, content, image, created_at, updated_at`

// ErrAboutExists is returned when creating a second about section.
var ErrAboutExists = errors.New("about section already exists")

// AboutStore persists the single about section.
type AboutStore struct {
	db DBTX
}

// AboutParams holds about section fields; nil fields are left unchanged on
// update and stored empty on create.
type AboutParams struct {
	Title   *string
	Content *string
	Image   *string
}

func scanAbout(s scanner) (AboutSection, error) {
	var a AboutSection
	err := s.Scan(&a.ID, &a.Title, &a.Content, &a.Image, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Get returns the about section or sql.ErrNoRows when none exists.
func (s *AboutStore) Get(ctx context.Context) (AboutSection, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+aboutColumns+" FROM about_section ORDER BY created_at LIMIT 1")
	return scanAbout(row)
}

// Create inserts the about section. It fails with ErrAboutExists when one
// is already stored; the schema allows a single row.
func (s *AboutStore) Create(ctx context.Context, p AboutParams) (AboutSection, error) {
	id := newID()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO about_section (id, title, content, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, deref(p.Title), deref(p.Content), deref(p.Image), now, now,
	)
	if err != nil {
		if err = classify(err); errors.Is(err, ErrUniqueViolation) {
			return AboutSection{}, ErrAboutExists
		}
		return AboutSection{}, fmt.Errorf("creating about section: %w", err)
	}
	return s.Get(ctx)
}

// Update changes the existing about section or returns sql.ErrNoRows.
func (s *AboutStore) Update(ctx context.Context, p AboutParams) (AboutSection, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return AboutSection{}, err
	}
	err = execOne(ctx, s.db, `
		UPDATE about_section SET
			title = COALESCE(?, title),
			content = COALESCE(?, content),
			image = COALESCE(?, image),
			updated_at = ?
		WHERE id = ?`,
		p.Title, p.Content, p.Image, time.Now().UTC(), current.ID,
	)
	if err != nil {
		return AboutSection{}, err
	}
	return s.Get(ctx)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
