// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

const teamMemberColumns = `id, name, position, bio, image, email, linkedin_url, order_position, is_active, created_at, updated_at`

// TeamMemberStore persists team members.
type TeamMemberStore struct {
	db DBTX
}

// CreateTeamMemberParams holds the fields of a new team member.
type CreateTeamMemberParams struct {
	Name          string
	Position      string
	Bio           string
	Image         string
	Email         string
	LinkedInURL   string
	OrderPosition int64
	IsActive      bool
}

// UpdateTeamMemberParams holds a partial update; nil fields are left unchanged.
type UpdateTeamMemberParams struct {
	Name          *string
	Position      *string
	Bio           *string
	Image         *string
	Email         *string
	LinkedInURL   *string
	OrderPosition *int64
	IsActive      *bool
}

func scanTeamMember(s scanner) (TeamMember, error) {
	var m TeamMember
	err := s.Scan(&m.ID, &m.Name, &m.Position, &m.Bio, &m.Image, &m.Email, &m.LinkedInURL,
		&m.OrderPosition, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// List returns team members ordered by order_position.
func (s *TeamMemberStore) List(ctx context.Context, opts ListOptions) ([]TeamMember, error) {
	q := listQuery{base: "SELECT " + teamMemberColumns + " FROM team_members"}
	if opts.ActiveOnly {
		q.where("is_active = 1")
	}
	query, args := q.build("order_position", opts)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	return collect(rows, scanTeamMember)
}

// Get returns one team member or sql.ErrNoRows.
func (s *TeamMemberStore) Get(ctx context.Context, id string) (TeamMember, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+teamMemberColumns+" FROM team_members WHERE id = ?", id)
	return scanTeamMember(row)
}

// Create inserts a team member and returns the stored row.
func (s *TeamMemberStore) Create(ctx context.Context, p CreateTeamMemberParams) (TeamMember, error) {
	id := newID()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO team_members (id, name, position, bio, image, email, linkedin_url, order_position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Name, p.Position, p.Bio, p.Image, p.Email, p.LinkedInURL, p.OrderPosition, p.IsActive, now, now,
	)
	if err != nil {
		return TeamMember{}, fmt.Errorf("creating team member: %w", classify(err))
	}
	return s.Get(ctx, id)
}

// Update applies a partial update and returns the updated row or sql.ErrNoRows.
func (s *TeamMemberStore) Update(ctx context.Context, id string, p UpdateTeamMemberParams) (TeamMember, error) {
	err := execOne(ctx, s.db, `
		UPDATE team_members SET
			name = COALESCE(?, name),
			position = COALESCE(?, position),
			bio = COALESCE(?, bio),
			image = COALESCE(?, image),
			email = COALESCE(?, email),
			linkedin_url = COALESCE(?, linkedin_url),
			order_position = COALESCE(?, order_position),
			is_active = COALESCE(?, is_active),
			updated_at = ?
		WHERE id = ?`,
		p.Name, p.Position, p.Bio, p.Image, p.Email, p.LinkedInURL, p.OrderPosition, p.IsActive, time.Now().UTC(), id,
	)
	if err != nil {
		return TeamMember{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a team member or returns sql.ErrNoRows.
func (s *TeamMemberStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "team_members", id)
}
