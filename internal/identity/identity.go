// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package identity is the directory of authentication identities that admin
// rows are attached to.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/store"
)

// ErrEmailTaken is returned when an identity with the email already exists.
var ErrEmailTaken = errors.New("email already registered")

// Directory creates and removes identities.
type Directory interface {
	CreateUser(ctx context.Context, email, password string) (store.Identity, error)
	DeleteUser(ctx context.Context, id string) error
}

// SQLDirectory keeps identities in the local database.
type SQLDirectory struct {
	identities *store.IdentityStore
}

// NewSQLDirectory creates a directory over the identity store.
func NewSQLDirectory(identities *store.IdentityStore) *SQLDirectory {
	return &SQLDirectory{identities: identities}
}

// CreateUser hashes the password and stores a new identity.
func (d *SQLDirectory) CreateUser(ctx context.Context, email, password string) (store.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := auth.HashPassword(password)
	if err != nil {
		return store.Identity{}, err
	}

	id, err := d.identities.Create(ctx, email, hash)
	if errors.Is(err, store.ErrUniqueViolation) {
		return store.Identity{}, ErrEmailTaken
	}
	if err != nil {
		return store.Identity{}, fmt.Errorf("creating identity: %w", err)
	}
	return id, nil
}

// DeleteUser removes an identity.
func (d *SQLDirectory) DeleteUser(ctx context.Context, id string) error {
	if err := d.identities.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting identity %s: %w", id, err)
	}
	return nil
}
