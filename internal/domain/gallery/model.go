package gallery

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyTitle = errors.New("gallery image title cannot be empty")
	ErrEmptyImage = errors.New("gallery image path cannot be empty")
)

// Image is one showcased project photo.
type Image struct {
	ID          string
	Title       string
	ImagePath   string
	Category    string
	Description string
	SortOrder   int
	IsPublished bool
	CreatedAt   time.Time
}

// Validate checks the Image has valid data.
// PRE: Image struct is populated
// POST: Returns nil if valid, error otherwise
func (i *Image) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(i.ImagePath) == "" {
		return ErrEmptyImage
	}
	return nil
}

// Categories returns the distinct categories of images in first-seen order.
func Categories(images []Image) []string {
	seen := make(map[string]bool)
	var out []string
	for _, img := range images {
		if img.Category == "" || seen[img.Category] {
			continue
		}
		seen[img.Category] = true
		out = append(out, img.Category)
	}
	return out
}
