// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package response writes the JSON envelopes used by every API endpoint:
// {"success": false, "error": msg} and {"success": true, ...}.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/olegiv/studio-go/internal/apperr"
)

func write(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

// Data writes {"success": true, "data": data}.
func Data(w http.ResponseWriter, status int, data any) {
	write(w, status, map[string]any{
		"success": true,
		"data":    data,
	})
}

// Success writes {"success": true} merged with fields.
func Success(w http.ResponseWriter, fields map[string]any) {
	if fields == nil {
		fields = make(map[string]any)
	}
	fields["success"] = true
	write(w, http.StatusOK, fields)
}

// AppError writes err with the status of its apperr kind. Server-side
// failures are logged.
func AppError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", apperr.KindOf(err).String(),
			"error", err,
		)
	}
	Error(w, status, err.Error())
}
