// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTML admin pages and the health endpoint.
package handler

// Template names.
const (
	TemplateLogin     = "auth/login"
	TemplateDashboard = "admin/dashboard"
)

// User-facing messages on the login page.
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgInvalidForm         = "Invalid form data"
	MsgSignedOut           = "You have been signed out"
)

// Health statuses.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
)
