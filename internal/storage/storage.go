// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage stores uploaded objects and resolves their public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olegiv/studio-go/internal/util"
)

// ErrObjectNotFound is returned for keys with no stored object.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Bucket is an object store addressed by slash-separated keys.
type Bucket interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	PublicURL(key string) string
	// KeyFromURL maps a public URL back to its key, reporting false for
	// URLs that do not point into the bucket.
	KeyFromURL(url string) (string, bool)
}

// LocalBucket keeps objects under a directory served at a public base URL.
type LocalBucket struct {
	root    string
	baseURL string
}

// NewLocalBucket creates the root directory if needed.
func NewLocalBucket(root, baseURL string) (*LocalBucket, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("creating bucket root: %w", err)
	}
	return &LocalBucket{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Root returns the directory holding the objects.
func (b *LocalBucket) Root() string {
	return b.root
}

func (b *LocalBucket) path(key string) (string, error) {
	clean, err := util.CleanObjectKey(key)
	if err != nil {
		return "", err
	}
	return util.SafeJoinPath(b.root, filepath.FromSlash(clean))
}

// Put writes r to key through a temp file renamed into place.
func (b *LocalBucket) Put(ctx context.Context, key string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst, err := b.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("creating object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing object: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storing object: %w", err)
	}
	return nil
}

// Stat returns the size and modification time of key.
func (b *LocalBucket) Stat(_ context.Context, key string) (ObjectInfo, error) {
	p, err := b.path(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	fi, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) || (err == nil && fi.IsDir()) {
		return ObjectInfo{}, ErrObjectNotFound
	}
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{Key: key, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

// Open returns a reader for key.
func (b *LocalBucket) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := b.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p) // #nosec G304 -- path is confined to the bucket root
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return f, err
}

// PublicURL returns the URL the object is served at.
func (b *LocalBucket) PublicURL(key string) string {
	return b.baseURL + "/" + strings.TrimPrefix(key, "/")
}

// KeyFromURL strips the public base URL from url.
func (b *LocalBucket) KeyFromURL(url string) (string, bool) {
	prefix := b.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if _, err := util.CleanObjectKey(key); err != nil {
		return "", false
	}
	return key, true
}

var _ Bucket = (*LocalBucket)(nil)
