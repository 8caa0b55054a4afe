// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the multi-step operations behind the admin API.
package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/studio-go/internal/storage"
	"github.com/olegiv/studio-go/internal/util"
)

// DefaultUploadFolder is used when the caller names no folder.
const DefaultUploadFolder = "uploads"

const suffixLen = 6

// UploadResult is a stored object.
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Uploader names and stores uploaded files.
type Uploader struct {
	bucket storage.Bucket
	now    func() time.Time
	suffix func() string
}

// NewUploader creates an uploader writing to bucket.
func NewUploader(bucket storage.Bucket) *Uploader {
	return &Uploader{bucket: bucket, now: time.Now, suffix: randomSuffix}
}

// Upload stores r under a fresh key in folder and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, folder, filename string, r io.Reader) (UploadResult, error) {
	key := ObjectKey(folder, filename, u.now(), u.suffix())
	if err := u.bucket.Put(ctx, key, r); err != nil {
		return UploadResult{}, fmt.Errorf("storing %s: %w", key, err)
	}
	return UploadResult{Key: key, URL: u.bucket.PublicURL(key)}, nil
}

// ObjectKey builds "<folder>/<unix-millis>-<suffix><ext>". Each folder segment
// is reduced to slug characters and the extension is lower-cased.
func ObjectKey(folder, filename string, now time.Time, suffix string) string {
	return fmt.Sprintf("%s/%d-%s%s",
		SanitizeFolder(folder), now.UnixMilli(), suffix, strings.ToLower(filepath.Ext(filename)))
}

// SanitizeFolder slugs each path segment, dropping empty ones.
func SanitizeFolder(folder string) string {
	var segs []string
	for _, seg := range strings.Split(strings.ReplaceAll(folder, "\\", "/"), "/") {
		if s := util.Slugify(seg); s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return DefaultUploadFolder
	}
	return strings.Join(segs, "/")
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
}
