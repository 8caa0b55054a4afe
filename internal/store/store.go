// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store holds the typed record stores backed by SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Stores groups every record store. It is built once at start-up and handed
// to handlers and services.
type Stores struct {
	Admins         *AdminStore
	Identities     *IdentityStore
	Team           *TeamMemberStore
	Hero           *HeroSlideStore
	Categories     *CategoryStore
	Projects       *ProjectStore
	Gallery        *GalleryStore
	Works          *WorkStore
	News           *NewsStore
	Collaborations *CollaborationStore
	About          *AboutStore
}

// NewStores creates all stores over db.
func NewStores(db DBTX) *Stores {
	return &Stores{
		Admins:         &AdminStore{db: db},
		Identities:     &IdentityStore{db: db},
		Team:           &TeamMemberStore{db: db},
		Hero:           &HeroSlideStore{db: db},
		Categories:     &CategoryStore{db: db},
		Projects:       &ProjectStore{db: db},
		Gallery:        &GalleryStore{db: db},
		Works:          &WorkStore{db: db},
		News:           &NewsStore{db: db},
		Collaborations: &CollaborationStore{db: db},
		About:          &AboutStore{db: db},
	}
}

// ListOptions filters and orders list queries. Stores ignore the fields that
// do not apply to their table.
type ListOptions struct {
	// ActiveOnly keeps rows with is_active = 1 (is_published = 1 for news).
	ActiveOnly   bool
	FeaturedOnly bool
	// CategorySlug restricts projects to one category.
	CategorySlug string
	Descending   bool
	// Limit caps the number of rows; 0 means no limit.
	Limit int
}

// ErrUniqueViolation is matched by errors caused by a UNIQUE constraint.
var ErrUniqueViolation = errors.New("unique constraint violation")

// ErrForeignKeyViolation is matched by errors caused by a reference to a row
// that does not exist.
var ErrForeignKeyViolation = errors.New("foreign key constraint violation")

// constraintError wraps a driver error so errors.Is matches its sentinel
// while the original message is kept.
type constraintError struct {
	kind error
	err  error
}

func (e *constraintError) Error() string { return e.err.Error() }

func (e *constraintError) Unwrap() []error { return []error{e.kind, e.err} }

// classify maps driver errors onto store sentinels. Both SQLite drivers report
// "UNIQUE constraint failed: <table>.<column>" and "FOREIGN KEY constraint failed".
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &constraintError{kind: ErrUniqueViolation, err: err}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &constraintError{kind: ErrForeignKeyViolation, err: err}
	}
	return err
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// newID returns a new random record id.
func newID() string {
	return uuid.NewString()
}

// listQuery appends WHERE/ORDER BY/LIMIT clauses to a SELECT.
type listQuery struct {
	base  string
	conds []string
	args  []any
	// tieBreak orders rows sharing a sort key; defaults to created_at.
	tieBreak string
}

func (q *listQuery) where(cond string, args ...any) {
	q.conds = append(q.conds, cond)
	q.args = append(q.args, args...)
}

func (q *listQuery) build(orderBy string, opts ListOptions) (string, []any) {
	var b strings.Builder
	b.WriteString(q.base)
	if len(q.conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.conds, " AND "))
	}
	dir := "ASC"
	if opts.Descending {
		dir = "DESC"
	}
	tieBreak := q.tieBreak
	if tieBreak == "" {
		tieBreak = "created_at"
	}
	fmt.Fprintf(&b, " ORDER BY %s %s, %s %s", orderBy, dir, tieBreak, dir)
	args := q.args
	if opts.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}
	return b.String(), args
}

// deleteByID deletes one row and returns sql.ErrNoRows when nothing matched.
func deleteByID(ctx context.Context, db DBTX, table, id string) error {
	return execOne(ctx, db, "DELETE FROM "+table+" WHERE id = ?", id)
}

// execOne runs a statement that must affect exactly one row. Constraint
// violations are classified; zero affected rows yields sql.ErrNoRows.
func execOne(ctx context.Context, db DBTX, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scanFn. A nil result is returned as an empty slice.
func collect[T any](rows *sql.Rows, scanFn func(scanner) (T, error)) ([]T, error) {
	defer func() { _ = rows.Close() }()
	items := []T{}
	for rows.Next() {
		item, err := scanFn(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
