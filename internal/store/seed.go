// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Default admin credentials, used when no seed values are configured.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// SeedAdmin describes the admin created on first start.
type SeedAdmin struct {
	Username string
	Email    string
	Password string
}

// PasswordHasher hashes a plain-text password for storage.
type PasswordHasher func(password string) (string, error)

// Seed creates the initial admin account when no admin exists yet.
func Seed(ctx context.Context, stores *Stores, admin SeedAdmin, hash PasswordHasher) error {
	count, err := stores.Admins.Count(ctx)
	if err != nil {
		return fmt.Errorf("checking for admins: %w", err)
	}
	if count > 0 {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}

	if admin.Username == "" {
		admin.Username = DefaultAdminUsername
	}
	if admin.Email == "" {
		admin.Email = DefaultAdminEmail
	}
	usingDefaultPassword := admin.Password == ""
	if usingDefaultPassword {
		admin.Password = DefaultAdminPassword
	}

	passwordHash, err := hash(admin.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	// The identity and admin row share an id, as registration does.
	identity, err := stores.Identities.Create(ctx, admin.Email, passwordHash)
	if err != nil && !errors.Is(err, ErrUniqueViolation) {
		return fmt.Errorf("creating admin identity: %w", err)
	}
	if errors.Is(err, ErrUniqueViolation) {
		identity, err = stores.Identities.GetByEmail(ctx, admin.Email)
		if err != nil {
			return fmt.Errorf("loading admin identity: %w", err)
		}
	}

	user, err := stores.Admins.Create(ctx, CreateAdminParams{
		ID:           identity.ID,
		Username:     admin.Username,
		Email:        admin.Email,
		FullName:     DefaultAdminName,
		PasswordHash: passwordHash,
		Role:         RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	if usingDefaultPassword {
		slog.Warn("created default admin user with default password, change it",
			"id", user.ID, "username", user.Username)
	} else {
		slog.Info("created admin user", "id", user.ID, "username", user.Username)
	}

	return nil
}
