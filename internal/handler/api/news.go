// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/studio-go/internal/store"
)

var (
	markdown  = goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Typographer))
	sanitizer = bluemonday.UGCPolicy()
)

// newsView is a news article with its Markdown content rendered.
type newsView struct {
	store.NewsArticle
	ContentHTML string `json:"content_html"`
}

// renderMarkdown converts Markdown to sanitised HTML.
func renderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		slog.Warn("failed to render markdown", "error", err)
		return sanitizer.Sanitize(src)
	}
	return sanitizer.SanitizeReader(&buf).String()
}

func newsWithHTML(a store.NewsArticle) any {
	return newsView{NewsArticle: a, ContentHTML: renderMarkdown(a.Content)}
}
