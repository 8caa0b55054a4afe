// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render renders the admin HTML pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates map[string]*template.Template
	now       func() time.Time
}

// New parses every page under auth/ and admin/ of templatesFS together with
// layouts/base.html.
func New(templatesFS fs.FS) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		now:       time.Now,
	}
	if err := r.parseTemplates(templatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

const baseLayout = "layouts/base.html"

func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	for _, dir := range []string{"auth", "admin"} {
		pages, err := fs.Glob(templatesFS, dir+"/*.html")
		if err != nil {
			return fmt.Errorf("listing %s templates: %w", dir, err)
		}
		for _, page := range pages {
			name := dir + "/" + strings.TrimSuffix(path.Base(page), ".html")
			tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, baseLayout, page)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}
	return nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return "never"
			}
			return t.Format("Jan 2, 2006 3:04 PM")
		},
	}
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Data        any
	Flash       string
	FlashType   string
	CurrentYear int
}

// Has reports whether a template called name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render writes the named page with the given status.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = r.now().Year()
	if data.Flash != "" && data.FlashType == "" {
		data.FlashType = "info"
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}
