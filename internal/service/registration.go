// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/studio-go/internal/apperr"
	"github.com/olegiv/studio-go/internal/identity"
	"github.com/olegiv/studio-go/internal/store"
)

// ErrPartiallyApplied marks a registration whose identity could not be
// rolled back after the admin insert failed.
var ErrPartiallyApplied = errors.New("registration partially applied")

// MsgDuplicateAdmin is returned to clients registering a taken email.
const MsgDuplicateAdmin = "An admin with this email already exists"

// Saga step names.
const (
	StepCreateIdentity = "create_identity"
	StepInsertAdmin    = "insert_admin"
	StepDeleteIdentity = "delete_identity"
)

// StepOutcome is the result of one saga step.
type StepOutcome string

const (
	StepDone   StepOutcome = "done"
	StepFailed StepOutcome = "failed"
)

// SagaStep is one recorded step.
type SagaStep struct {
	Name    string
	Outcome StepOutcome
	Err     error
}

// SagaLog records the steps of one registration in order.
type SagaLog struct {
	Steps []SagaStep
}

func (l *SagaLog) record(name string, err error) {
	outcome := StepDone
	if err != nil {
		outcome = StepFailed
	}
	l.Steps = append(l.Steps, SagaStep{Name: name, Outcome: outcome, Err: err})
}

// String renders the log as "step=outcome" pairs.
func (l *SagaLog) String() string {
	parts := make([]string, len(l.Steps))
	for i, s := range l.Steps {
		parts[i] = s.Name + "=" + string(s.Outcome)
	}
	return strings.Join(parts, " ")
}

// PartialError is returned when the admin insert and its compensation both failed.
type PartialError struct {
	Log          SagaLog
	IdentityID   string
	Cause        error
	Compensation error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%v: %v; rollback of identity %s failed: %v",
		ErrPartiallyApplied, e.Cause, e.IdentityID, e.Compensation)
}

func (e *PartialError) Unwrap() []error {
	return []error{ErrPartiallyApplied, e.Cause, e.Compensation}
}

// RegisterRequest is a validated registration.
type RegisterRequest struct {
	Email    string
	Password string
	FullName string
}

// AdminCreator is the part of the admin store used by registration.
type AdminCreator interface {
	Create(ctx context.Context, p store.CreateAdminParams) (store.Admin, error)
}

// Registrar creates admins as an identity plus an admin row.
type Registrar struct {
	directory identity.Directory
	admins    AdminCreator
	logger    *slog.Logger
}

// NewRegistrar creates a registrar.
func NewRegistrar(directory identity.Directory, admins AdminCreator, logger *slog.Logger) *Registrar {
	return &Registrar{directory: directory, admins: admins, logger: logger}
}

// Register creates the identity, then the admin row sharing its id. If the
// row cannot be inserted the identity is deleted again. Errors are
// *apperr.Error values; a failed rollback yields KindPartial wrapping a
// *PartialError.
func (r *Registrar) Register(ctx context.Context, req RegisterRequest) (store.Admin, *SagaLog, error) {
	log := &SagaLog{}

	ident, err := r.directory.CreateUser(ctx, req.Email, req.Password)
	log.record(StepCreateIdentity, err)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return store.Admin{}, log, apperr.Conflict(MsgDuplicateAdmin, err)
		}
		return store.Admin{}, log, apperr.Upstream(err)
	}

	admin, insertErr := r.admins.Create(ctx, store.CreateAdminParams{
		ID:           ident.ID,
		Username:     ident.Email,
		Email:        ident.Email,
		FullName:     req.FullName,
		PasswordHash: ident.PasswordHash,
		Role:         store.RoleAdmin,
	})
	log.record(StepInsertAdmin, insertErr)
	if insertErr == nil {
		r.logger.Info("admin registered", "admin_id", admin.ID, "saga", log.String())
		return admin, log, nil
	}

	// The rollback must run even if the client has gone away.
	compErr := r.directory.DeleteUser(context.WithoutCancel(ctx), ident.ID)
	log.record(StepDeleteIdentity, compErr)
	if compErr != nil {
		partial := &PartialError{Log: *log, IdentityID: ident.ID, Cause: insertErr, Compensation: compErr}
		r.logger.Error("registration left an orphaned identity",
			"identity_id", ident.ID, "saga", log.String(), "error", partial)
		return store.Admin{}, log, apperr.Partial("Registration partially applied: "+partial.Error(), partial)
	}

	r.logger.Warn("registration rolled back", "saga", log.String(), "error", insertErr)
	if errors.Is(insertErr, store.ErrUniqueViolation) {
		return store.Admin{}, log, apperr.Conflict(MsgDuplicateAdmin, insertErr)
	}
	return store.Admin{}, log, apperr.Upstream(insertErr)
}
