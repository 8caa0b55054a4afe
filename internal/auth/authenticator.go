// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/olegiv/studio-go/internal/store"
)

// ErrNoSession is the single outcome of every failed login. Callers cannot
// tell an unknown username from a wrong password or a disabled account.
var ErrNoSession = errors.New("no session")

// dummyHash is checked on failure paths that have no stored hash, so every
// failed login costs one argon2id derivation.
var dummyHash = mustHash("studio-dummy-password")

// checkPassword is replaced in tests.
var checkPassword = CheckPassword

func mustHash(password string) string {
	h, err := HashPassword(password)
	if err != nil {
		panic(err)
	}
	return h
}

// burnHash spends the same work as a real password check.
func burnHash(password string) {
	_, _ = checkPassword(password, dummyHash)
}

// Identity is the minimal admin identity embedded in a session.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AdminLookup is the part of the admin store used by the authenticator.
type AdminLookup interface {
	GetByUsername(ctx context.Context, username string) (store.Admin, error)
	TouchLastLogin(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, hash string) error
}

// Authenticator checks admin credentials.
type Authenticator struct {
	admins AdminLookup
	logger *slog.Logger
}

// NewAuthenticator creates an authenticator over the admin store.
func NewAuthenticator(admins AdminLookup, logger *slog.Logger) *Authenticator {
	return &Authenticator{admins: admins, logger: logger}
}

// Authenticate returns the identity for valid credentials of an active admin,
// or ErrNoSession.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	if username == "" || password == "" {
		return nil, ErrNoSession
	}

	admin, err := a.admins.GetByUsername(ctx, username)
	if err != nil {
		if !store.IsNotFound(err) {
			a.logger.Error("failed to look up admin", "error", err)
		}
		burnHash(password)
		return nil, ErrNoSession
	}

	valid, err := checkPassword(password, admin.PasswordHash)
	if err != nil {
		a.logger.Error("stored password hash is unreadable", "admin_id", admin.ID, "error", err)
		burnHash(password)
		return nil, ErrNoSession
	}
	if !valid || !admin.IsActive {
		return nil, ErrNoSession
	}

	if err := a.admins.TouchLastLogin(ctx, admin.ID); err != nil {
		a.logger.Warn("failed to update last login", "admin_id", admin.ID, "error", err)
	}

	if NeedsRehash(admin.PasswordHash) {
		if newHash, err := HashPassword(password); err == nil {
			if err := a.admins.UpdatePassword(ctx, admin.ID, newHash); err != nil {
				a.logger.Warn("failed to rehash password", "admin_id", admin.ID, "error", err)
			}
		}
	}

	name := admin.FullName
	if name == "" {
		name = admin.Username
	}
	return &Identity{ID: admin.ID, Name: name, Email: admin.Email, Role: admin.Role}, nil
}
