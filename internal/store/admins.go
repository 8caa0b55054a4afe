// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

const adminColumns = `id, username, email, full_name, password_hash, role, is_active, last_login_at, created_at, updated_at`

// Admin roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// AdminStore persists admin rows.
type AdminStore struct {
	db DBTX
}

// CreateAdminParams holds the fields of a new admin. An empty ID lets the
// store generate one; registration passes the identity id.
type CreateAdminParams struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Role         string
}

func scanAdmin(s scanner) (Admin, error) {
	var a Admin
	err := s.Scan(&a.ID, &a.Username, &a.Email, &a.FullName, &a.PasswordHash, &a.Role, &a.IsActive,
		&a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// GetByID returns one admin or sql.ErrNoRows.
func (s *AdminStore) GetByID(ctx context.Context, id string) (Admin, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+adminColumns+" FROM admins WHERE id = ?", id)
	return scanAdmin(row)
}

// GetByUsername returns the admin with the given username or sql.ErrNoRows.
func (s *AdminStore) GetByUsername(ctx context.Context, username string) (Admin, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+adminColumns+" FROM admins WHERE username = ?", username)
	return scanAdmin(row)
}

// List returns every admin ordered by creation time.
func (s *AdminStore) List(ctx context.Context) ([]Admin, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+adminColumns+" FROM admins ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("listing admins: %w", err)
	}
	return collect(rows, scanAdmin)
}

// Count returns the number of admins.
func (s *AdminStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting admins: %w", err)
	}
	return n, nil
}

// Create inserts an active admin. The returned row is built from the params
// so an error always means nothing was inserted.
func (s *AdminStore) Create(ctx context.Context, p CreateAdminParams) (Admin, error) {
	id := p.ID
	if id == "" {
		id = newID()
	}
	role := p.Role
	if role == "" {
		role = RoleAdmin
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (id, username, email, full_name, password_hash, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		id, p.Username, p.Email, p.FullName, p.PasswordHash, role, now, now,
	)
	if err != nil {
		return Admin{}, fmt.Errorf("creating admin: %w", classify(err))
	}
	return Admin{
		ID:           id,
		Username:     p.Username,
		Email:        p.Email,
		FullName:     p.FullName,
		PasswordHash: p.PasswordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// TouchLastLogin stamps last_login_at with the current time.
func (s *AdminStore) TouchLastLogin(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return execOne(ctx, s.db, "UPDATE admins SET last_login_at = ?, updated_at = ? WHERE id = ?", now, now, id)
}

// UpdatePassword replaces the stored password hash.
func (s *AdminStore) UpdatePassword(ctx context.Context, id, hash string) error {
	return execOne(ctx, s.db, "UPDATE admins SET password_hash = ?, updated_at = ? WHERE id = ?",
		hash, time.Now().UTC(), id)
}

// SetActive enables or disables an admin account.
func (s *AdminStore) SetActive(ctx context.Context, id string, active bool) error {
	return execOne(ctx, s.db, "UPDATE admins SET is_active = ?, updated_at = ? WHERE id = ?",
		active, time.Now().UTC(), id)
}
