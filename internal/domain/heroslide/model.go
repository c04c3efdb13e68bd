package heroslide

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyTitle = errors.New("slide title cannot be empty")
	ErrEmptyImage = errors.New("slide image cannot be empty")
)

// Slide is one hero banner entry. Title uses "\n" for line breaks and
// *asterisks* for accent-coloured spans.
type Slide struct {
	ID          string
	Title       string
	Subtitle    string
	Description string
	ImageURL    string
	ButtonText  string
	ButtonLink  string
	SortOrder   int
	IsActive    bool
	CreatedAt   time.Time
}

// Validate checks the Slide has valid data.
// PRE: Slide struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Slide) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(s.ImageURL) == "" {
		return ErrEmptyImage
	}
	return nil
}

// Fallback is shown when the slide list cannot be loaded, so the home page
// always has a hero.
var Fallback = []Slide{
	{
		ID:          "fallback-1",
		Subtitle:    "WELCOME TO FLOTENN",
		Title:       "PAINT PROTECTION.\nDETAILING.\nCUSTOM PAINT JOBS.\nALL UNDER *ONE ROOF.*",
		Description: "Premium automotive care by certified professionals. Your car deserves nothing less than perfection.",
		ImageURL:    "https://images.unsplash.com/photo-1503376780353-7e6692767b70?w=1920&q=80",
		ButtonText:  "EXPLORE SERVICES",
		ButtonLink:  "/services",
		SortOrder:   0,
		IsActive:    true,
	},
	{
		ID:          "fallback-2",
		Subtitle:    "ULTIMATE PROTECTION",
		Title:       "PREMIUM\n*PAINT PROTECTION*\nFILM",
		Description: "Self-healing film that guards your paint against chips, scratches and the elements.",
		ImageURL:    "https://images.unsplash.com/photo-1492144534655-ae79c964c9d7?w=1920&q=80",
		ButtonText:  "GET A QUOTE",
		ButtonLink:  "/contact",
		SortOrder:   1,
		IsActive:    true,
	},
}

// OrFallback returns slides, or the fallback list when slides is empty.
func OrFallback(slides []Slide) []Slide {
	if len(slides) == 0 {
		return Fallback
	}
	return slides
}
