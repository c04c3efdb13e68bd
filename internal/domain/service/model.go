package service

import (
	"errors"
	"strings"
	"time"

	"flotenn/internal/domain/slug"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength             = 150
	MaxShortDescriptionLength = 300
)

// Domain errors
var (
	ErrEmptyName     = errors.New("service name cannot be empty")
	ErrNameTooLong   = errors.New("service name cannot exceed 150 characters")
	ErrInvalidSlug   = errors.New("service slug may only contain letters, digits, underscores and single hyphens")
	ErrNegativePrice = errors.New("service price cannot be negative")
)

// Service is one detailing offering shown on the public site.
type Service struct {
	ID               string
	Name             string
	Slug             string
	PriceFrom        float64 // starting price in rupees, 0 when not advertised
	ImageURL         string
	ShortDescription string
	Description      string // Markdown or HTML body
	MetaTitle        string
	MetaDescription  string
	MetaKeywords     string
	IsPublished      bool
	CreatedAt        time.Time
}

// Validate checks the Service has valid data.
// PRE: Service struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if len(s.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !slug.Valid(s.Slug) {
		return ErrInvalidSlug
	}
	if s.PriceFrom < 0 {
		return ErrNegativePrice
	}
	if len(s.ShortDescription) > MaxShortDescriptionLength {
		return errors.New("short description cannot exceed 300 characters")
	}
	return nil
}

// Fallback is shown on the home page when services cannot be loaded.
var Fallback = []Service{
	{
		ID: "ppf", Name: "Paint Protection Film", Slug: "ppf",
		ShortDescription: "Invisible armour for your paint against chips, scratches and stains.",
		ImageURL:         "https://images.unsplash.com/photo-1607860108855-64acf2078ed9?w=800&q=80",
		IsPublished:      true,
	},
	{
		ID: "ceramic-coating", Name: "Ceramic Coating", Slug: "ceramic-coating",
		ShortDescription: "Deep gloss and long lasting hydrophobic protection.",
		ImageURL:         "https://images.unsplash.com/photo-1601362840469-51e4d8d58785?w=800&q=80",
		IsPublished:      true,
	},
	{
		ID: "detailing", Name: "Detailing", Slug: "detailing",
		ShortDescription: "Interior and exterior detailing down to the last stitch.",
		ImageURL:         "https://images.unsplash.com/photo-1520340356584-f9917d1eea6f?w=800&q=80",
		IsPublished:      true,
	},
	{
		ID: "custom-paint", Name: "Custom Paint Jobs", Slug: "custom-paint",
		ShortDescription: "Full resprays, colour changes and bespoke finishes.",
		ImageURL:         "https://images.unsplash.com/photo-1580273916550-e323be2ae537?w=800&q=80",
		IsPublished:      true,
	},
	{
		ID: "wrapping", Name: "Wrapping", Slug: "wrapping",
		ShortDescription: "Gloss, satin and matte wraps with a factory finish.",
		ImageURL:         "https://images.unsplash.com/photo-1552519507-da3b142c6e3d?w=800&q=80",
		IsPublished:      true,
	},
}
