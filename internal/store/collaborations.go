// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

const collaborationColumns = `id, name, email, phone, company, project_type, budget, message, status, created_at`

// CollaborationStore persists contact form submissions.
type CollaborationStore struct {
	db DBTX
}

// CreateCollaborationParams holds a validated submission.
type CreateCollaborationParams struct {
	Name        string
	Email       string
	Phone       string
	Company     string
	ProjectType string
	Budget      string
	Message     string
}

func scanCollaboration(s scanner) (Collaboration, error) {
	var c Collaboration
	err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.ProjectType, &c.Budget,
		&c.Message, &c.Status, &c.CreatedAt)
	return c, err
}

// List returns submissions, newest first.
func (s *CollaborationStore) List(ctx context.Context, limit int) ([]Collaboration, error) {
	q := listQuery{base: "SELECT " + collaborationColumns + " FROM collaborations"}
	query, args := q.build("created_at", ListOptions{Descending: true, Limit: limit})
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing collaborations: %w", err)
	}
	return collect(rows, scanCollaboration)
}

// Create stores a submission with status "new".
func (s *CollaborationStore) Create(ctx context.Context, p CreateCollaborationParams) (Collaboration, error) {
	id := newID()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collaborations (id, name, email, phone, company, project_type, budget, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Name, p.Email, p.Phone, p.Company, p.ProjectType, p.Budget, p.Message,
		CollaborationStatusNew, time.Now().UTC(),
	)
	if err != nil {
		return Collaboration{}, fmt.Errorf("creating collaboration: %w", err)
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+collaborationColumns+" FROM collaborations WHERE id = ?", id)
	return scanCollaboration(row)
}
