// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

const newsColumns = `id, title, slug, excerpt, content, cover_image, is_published, published_at, created_at, updated_at`

// NewsStore persists news articles.
type NewsStore struct {
	db DBTX
}

// CreateNewsParams holds the fields of a new article. PublishedAt defaults to
// now when the article is created published.
type CreateNewsParams struct {
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	CoverImage  string
	IsPublished bool
	PublishedAt *time.Time
}

// UpdateNewsParams holds a partial update; nil fields are left unchanged.
type UpdateNewsParams struct {
	Title       *string
	Slug        *string
	Excerpt     *string
	Content     *string
	CoverImage  *string
	IsPublished *bool
	PublishedAt *time.Time
}

func scanNews(s scanner) (NewsArticle, error) {
	var n NewsArticle
	err := s.Scan(&n.ID, &n.Title, &n.Slug, &n.Excerpt, &n.Content, &n.CoverImage, &n.IsPublished,
		&n.PublishedAt, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// List returns articles ordered by publication date. ActiveOnly keeps
// published articles.
func (s *NewsStore) List(ctx context.Context, opts ListOptions) ([]NewsArticle, error) {
	q := listQuery{base: "SELECT " + newsColumns + " FROM news_articles"}
	if opts.ActiveOnly {
		q.where("is_published = 1")
	}
	query, args := q.build("COALESCE(published_at, created_at)", opts)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing news: %w", err)
	}
	return collect(rows, scanNews)
}

// Get returns one article or sql.ErrNoRows.
func (s *NewsStore) Get(ctx context.Context, id string) (NewsArticle, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+newsColumns+" FROM news_articles WHERE id = ?", id)
	return scanNews(row)
}

// GetBySlug returns the article with the given slug or sql.ErrNoRows.
func (s *NewsStore) GetBySlug(ctx context.Context, slug string) (NewsArticle, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+newsColumns+" FROM news_articles WHERE slug = ?", slug)
	return scanNews(row)
}

// Create inserts an article and returns the stored row.
func (s *NewsStore) Create(ctx context.Context, p CreateNewsParams) (NewsArticle, error) {
	id := newID()
	now := time.Now().UTC()
	publishedAt := p.PublishedAt
	if p.IsPublished && publishedAt == nil {
		publishedAt = &now
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO news_articles (id, title, slug, excerpt, content, cover_image, is_published, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.IsPublished, publishedAt, now, now,
	)
	if err != nil {
		return NewsArticle{}, fmt.Errorf("creating news article: %w", classify(err))
	}
	return s.Get(ctx, id)
}

// Update applies a partial update and returns the updated row or
// sql.ErrNoRows. Publishing an article that has no publication date stamps it.
func (s *NewsStore) Update(ctx context.Context, id string, p UpdateNewsParams) (NewsArticle, error) {
	now := time.Now().UTC()
	var stamp *time.Time
	if p.IsPublished != nil && *p.IsPublished {
		stamp = &now
	}
	err := execOne(ctx, s.db, `
		UPDATE news_articles SET
			title = COALESCE(?, title),
			slug = COALESCE(?, slug),
			excerpt = COALESCE(?, excerpt),
			content = COALESCE(?, content),
			cover_image = COALESCE(?, cover_image),
			is_published = COALESCE(?, is_published),
			published_at = COALESCE(?, published_at, ?),
			updated_at = ?
		WHERE id = ?`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.IsPublished, p.PublishedAt, stamp, now, id,
	)
	if err != nil {
		return NewsArticle{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes an article or returns sql.ErrNoRows.
func (s *NewsStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "news_articles", id)
}
