// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/studio-go/internal/apperr"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "ID is required")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := decode(t, rec)
	if body["success"] != false || body["error"] != "ID is required" {
		t.Errorf("body = %v", body)
	}
}

func TestDataAndSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Data(rec, http.StatusCreated, map[string]string{"id": "x"})
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != true || body["data"].(map[string]any)["id"] != "x" {
		t.Errorf("body = %v", body)
	}

	rec = httptest.NewRecorder()
	Success(rec, nil)
	if body := decode(t, rec); body["success"] != true || len(body) != 1 {
		t.Errorf("body = %v", body)
	}
}

func TestAppError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.Validation("Missing required fields: image"), 400, "Missing required fields: image"},
		{apperr.NotFound("Team member not found"), 404, "Team member not found"},
		{apperr.Upstream(errors.New("database is locked")), 500, "database is locked"},
		{errors.New("plain"), 500, "plain"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		AppError(rec, httptest.NewRequest(http.MethodGet, "/api/team", nil), tt.err)
		if rec.Code != tt.status {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.status)
		}
		if got := decode(t, rec)["error"]; got != tt.msg {
			t.Errorf("%v: error = %v, want %q", tt.err, got, tt.msg)
		}
	}
}
