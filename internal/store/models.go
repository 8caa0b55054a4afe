// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "time"

// Identity is an authentication identity owned by the identity directory.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Admin pairs an identity with role and activity metadata.
type Admin struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TeamMember is a studio team member shown on the team page.
type TeamMember struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Position      string    `json:"position"`
	Bio           string    `json:"bio"`
	Image         string    `json:"image"`
	Email         string    `json:"email"`
	LinkedInURL   string    `json:"linkedin_url"`
	OrderPosition int64     `json:"order_position"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HeroSlide is one slide of the home page hero carousel.
type HeroSlide struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle"`
	Image         string    `json:"image"`
	LinkURL       string    `json:"link_url"`
	OrderPosition int64     `json:"order_position"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Category groups projects.
type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	OrderPosition int64     `json:"order_position"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Project is a portfolio project.
type Project struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Year          *int64    `json:"year"`
	CategoryID    *string   `json:"category_id"`
	CoverImage    string    `json:"cover_image"`
	Featured      bool      `json:"featured"`
	OrderPosition int64     `json:"order_position"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProjectImage is one image of a project gallery.
type ProjectImage struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	ImageURL      string    `json:"image_url"`
	Caption       string    `json:"caption"`
	OrderPosition int64     `json:"order_position"`
	CreatedAt     time.Time `json:"created_at"`
}

// Work is an item of the works showcase.
type Work struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	Featured      bool      `json:"featured"`
	OrderPosition int64     `json:"order_position"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewsArticle is a news post; Content holds Markdown.
type NewsArticle struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"cover_image"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Collaboration statuses.
const (
	CollaborationStatusNew = "new"
)

// Collaboration is an inbound lead from the contact form.
type Collaboration struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company"`
	ProjectType string    `json:"project_type"`
	Budget      string    `json:"budget"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// AboutSection is the single-row about page content.
type AboutSection struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
