package page

import (
	"errors"
	"strings"
	"time"

	"flotenn/internal/domain/slug"
)

// Domain errors
var (
	ErrEmptyTitle   = errors.New("page title cannot be empty")
	ErrInvalidSlug  = errors.New("page slug may only contain letters, digits, underscores and single hyphens")
	ErrReservedSlug = errors.New("page slug collides with a built-in route")
)

// Reserved lists top-level paths owned by the site itself. A CMS page with
// one of these slugs would never be reachable at /{slug}.
var Reserved = []string{
	"about", "services", "service", "blog", "gallery", "faq", "contact",
	"page", "admin", "api", "static", "uploads", "media", "robots.txt",
}

// Page is a free-form CMS page served at /page/{slug} and /{slug}.
type Page struct {
	ID              string
	Title           string
	Slug            string
	Content         string
	IsPublished     bool
	MetaTitle       string
	MetaDescription string
	CreatedAt       time.Time
}

// Validate checks the Page has valid data.
// PRE: Page struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Page) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if !slug.Valid(p.Slug) {
		return ErrInvalidSlug
	}
	for _, r := range Reserved {
		if p.Slug == r {
			return ErrReservedSlug
		}
	}
	return nil
}
