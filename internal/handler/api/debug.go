// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/webp"

	"github.com/olegiv/studio-go/internal/apperr"
	"github.com/olegiv/studio-go/internal/handler/response"
	"github.com/olegiv/studio-go/internal/storage"
	"github.com/olegiv/studio-go/internal/store"
)

// ImageReport describes one stored image reference.
type ImageReport struct {
	Source   string `json:"source"`
	RecordID string `json:"record_id"`
	URL      string `json:"url"`
	// Key is empty for URLs outside the bucket.
	Key    string `json:"key,omitempty"`
	Exists *bool  `json:"exists,omitempty"`
	Size   int64  `json:"size,omitempty"`
	Format string `json:"format,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

type imageRef struct {
	source, id, url string
}

// DebugImages reports every image referenced by hero slides, team members,
// projects, gallery images and works, and whether the bucket holds it.
func (h *Handler) DebugImages(w http.ResponseWriter, r *http.Request) {
	refs, err := h.imageRefs(r.Context())
	if err != nil {
		response.AppError(w, r, apperr.Upstream(err))
		return
	}

	reports := make([]ImageReport, 0, len(refs))
	missing := 0
	for _, ref := range refs {
		rep := h.inspectImage(r.Context(), ref)
		if rep.Exists != nil && !*rep.Exists {
			missing++
		}
		reports = append(reports, rep)
	}

	response.Success(w, map[string]any{
		"data":    reports,
		"total":   len(reports),
		"missing": missing,
	})
}

func (h *Handler) imageRefs(ctx context.Context) ([]imageRef, error) {
	var refs []imageRef
	add := func(source, id, url string) {
		if url != "" {
			refs = append(refs, imageRef{source: source, id: id, url: url})
		}
	}

	slides, err := h.stores.Hero.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading hero slides: %w", err)
	}
	for _, s := range slides {
		add("hero", s.ID, s.Image)
	}

	team, err := h.stores.Team.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}
	for _, m := range team {
		add("team", m.ID, m.Image)
	}

	projects, err := h.stores.Projects.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	for _, p := range projects {
		add("projects", p.ID, p.CoverImage)
	}

	gallery, err := h.stores.Gallery.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading gallery: %w", err)
	}
	for _, g := range gallery {
		add("gallery", g.ID, g.ImageURL)
	}

	works, err := h.stores.Works.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading works: %w", err)
	}
	for _, wk := range works {
		add("works", wk.ID, wk.Image)
	}

	return refs, nil
}

func (h *Handler) inspectImage(ctx context.Context, ref imageRef) ImageReport {
	rep := ImageReport{Source: ref.source, RecordID: ref.id, URL: ref.url}
	if h.cfg.Bucket == nil {
		return rep
	}
	key, ok := h.cfg.Bucket.KeyFromURL(ref.url)
	if !ok {
		return rep
	}
	rep.Key = key

	info, err := h.cfg.Bucket.Stat(ctx, key)
	exists := err == nil
	rep.Exists = &exists
	if err != nil {
		if !errors.Is(err, storage.ErrObjectNotFound) {
			rep.Error = err.Error()
		}
		return rep
	}
	rep.Size = info.Size

	rc, err := h.cfg.Bucket.Open(ctx, key)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	defer func() { _ = rc.Close() }()

	cfg, format, err := image.DecodeConfig(rc)
	if err != nil {
		rep.Error = "not a decodable image: " + err.Error()
		return rep
	}
	rep.Format, rep.Width, rep.Height = format, cfg.Width, cfg.Height
	return rep
}
