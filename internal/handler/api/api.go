// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API of the studio site and its admin panel.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"

	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/cache"
	"github.com/olegiv/studio-go/internal/handler/response"
	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/service"
	"github.com/olegiv/studio-go/internal/storage"
	"github.com/olegiv/studio-go/internal/store"
	"github.com/olegiv/studio-go/internal/util"
)

// Common client-facing messages.
const (
	MsgIDRequired      = "ID is required"
	MsgInvalidBody     = "Invalid request body"
	MsgUnauthorized    = "Unauthorized"
	MsgInvalidCreds    = "Invalid credentials"
	MsgRegistrationOff = "Registration is closed"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// CredentialChecker authenticates an admin by username and password.
type CredentialChecker interface {
	Authenticate(ctx context.Context, username, password string) (*auth.Identity, error)
}

// AdminRegistrar runs the admin registration saga.
type AdminRegistrar interface {
	Register(ctx context.Context, req service.RegisterRequest) (store.Admin, *service.SagaLog, error)
}

// Config holds the dependencies of the API handlers. Everything is
// constructed once at start-up.
type Config struct {
	Stores        *store.Stores
	Cache         *cache.Content
	Bucket        storage.Bucket
	Uploader      *service.Uploader
	Sessions      *scs.SessionManager
	Tokens        *auth.TokenService
	Checker       middleware.SessionChecker
	Authenticator CredentialChecker
	Registrar     AdminRegistrar
	Logger        *slog.Logger

	// CollaborateLimiter throttles the public contact form.
	CollaborateLimiter *middleware.ClientRateLimiter
	// LoginProtection throttles JSON logins.
	LoginProtection *middleware.LoginProtection

	IsDev            bool
	OpenRegistration bool
	// UploadMaxMemory is the multipart memory bound in bytes.
	UploadMaxMemory int64
}

// Handler serves every /api route.
type Handler struct {
	cfg    Config
	stores *store.Stores
	logger *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.UploadMaxMemory <= 0 {
		cfg.UploadMaxMemory = 10 << 20
	}
	if cfg.Uploader == nil && cfg.Bucket != nil {
		cfg.Uploader = service.NewUploader(cfg.Bucket)
	}
	return &Handler{cfg: cfg, stores: cfg.Stores, logger: cfg.Logger}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return util.IsValidSlug(fl.Field().String())
	})
	return v
}

// decodeJSON reads a JSON body into dst, rejecting unknown fields, then runs
// struct validation. Errors carry a client-facing message.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decodeBody(w, r, dst); err != nil {
		return err
	}
	return validateStruct(dst)
}

// decodeBody reads a JSON body into dst without validating it.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New(MsgInvalidBody)
		}
		return fmt.Errorf("%s: %s", MsgInvalidBody, strings.TrimPrefix(err.Error(), "json: "))
	}
	return nil
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

// validationMessage turns validator errors into one sentence. Missing
// required fields are listed together.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MsgInvalidBody
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return "Missing required fields: " + strings.Join(missing, ", ")
	}
	return fieldMessage(verrs[0])
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "Invalid email address"
	case "slug":
		return "Invalid slug: use lowercase letters, numbers and hyphens"
	case "min":
		if fe.Kind() != reflect.String {
			return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		}
		if fe.Param() == "1" {
			return fe.Field() + " must not be empty"
		}
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() != reflect.String {
			return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return "Invalid value for " + fe.Field()
	}
}

// queryID returns the ?id= parameter or writes 400 and returns false.
func queryID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := strings.TrimSpace(r.URL.Query().Get(name))
	if id == "" {
		response.Error(w, http.StatusBadRequest, MsgIDRequired)
		return "", false
	}
	return id, true
}

// authenticated reports whether the request carries an admin session.
func (h *Handler) authenticated(r *http.Request) bool {
	return h.cfg.Checker != nil && h.cfg.Checker.Authenticated(r)
}

// invalidate drops cached reads after a successful write.
func (h *Handler) invalidate(ctx context.Context, resources ...string) {
	h.cfg.Cache.Invalidate(ctx, resources...)
}
