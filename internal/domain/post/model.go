package post

import (
	"errors"
	"strings"
	"time"

	"flotenn/internal/domain/slug"
)

// Post statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidStatuses contains all valid post statuses.
var ValidStatuses = []string{StatusDraft, StatusPublished}

// Domain errors
var (
	ErrEmptyTitle    = errors.New("post title cannot be empty")
	ErrInvalidSlug   = errors.New("post slug may only contain letters, digits, underscores and single hyphens")
	ErrInvalidStatus = errors.New("post status must be one of: draft, published")
)

// Post is a blog article.
type Post struct {
	ID              string
	Title           string
	Slug            string
	Excerpt         string
	Content         string // Markdown or HTML body
	FeaturedImage   string
	Author          string
	Status          string // draft, published
	PublishedAt     time.Time
	MetaTitle       string
	MetaDescription string
	CreatedAt       time.Time
}

// Validate checks the Post has valid data.
// PRE: Post struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if !slug.Valid(p.Slug) {
		return ErrInvalidSlug
	}
	if p.Status != StatusDraft && p.Status != StatusPublished {
		return ErrInvalidStatus
	}
	return nil
}

// IsPublished reports whether the post is visible on the public blog.
func (p Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// Publish sets the status and stamps PublishedAt the first time.
// POST: Status is published; PublishedAt is non-zero
func (p *Post) Publish(now time.Time) {
	p.Status = StatusPublished
	if p.PublishedAt.IsZero() {
		p.PublishedAt = now
	}
}

// DisplayDate is the date shown on the blog: published date, else creation.
func (p Post) DisplayDate() time.Time {
	if !p.PublishedAt.IsZero() {
		return p.PublishedAt
	}
	return p.CreatedAt
}
