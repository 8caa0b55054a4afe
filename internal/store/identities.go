// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

// IdentityStore persists authentication identities.
type IdentityStore struct {
	db DBTX
}

func scanIdentity(s scanner) (Identity, error) {
	var i Identity
	err := s.Scan(&i.ID, &i.Email, &i.PasswordHash, &i.CreatedAt)
	return i, err
}

// Create inserts an identity with a generated id.
func (s *IdentityStore) Create(ctx context.Context, email, passwordHash string) (Identity, error) {
	id := newID()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO identities (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		id, email, passwordHash, time.Now().UTC())
	if err != nil {
		return Identity{}, fmt.Errorf("creating identity: %w", classify(err))
	}
	return s.Get(ctx, id)
}

// Get returns one identity or sql.ErrNoRows.
func (s *IdentityStore) Get(ctx context.Context, id string) (Identity, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, email, password_hash, created_at FROM identities WHERE id = ?", id)
	return scanIdentity(row)
}

// GetByEmail returns the identity with the given email or sql.ErrNoRows.
func (s *IdentityStore) GetByEmail(ctx context.Context, email string) (Identity, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, email, password_hash, created_at FROM identities WHERE email = ?", email)
	return scanIdentity(row)
}

// Delete removes an identity or returns sql.ErrNoRows.
func (s *IdentityStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "identities", id)
}
