package testimonial

import (
	"errors"
	"strings"
	"time"
)

// Rating bounds.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Domain errors
var (
	ErrEmptyName    = errors.New("testimonial name cannot be empty")
	ErrEmptyContent = errors.New("testimonial content cannot be empty")
	ErrInvalidRate  = errors.New("testimonial rating must be between 1 and 5")
)

// Testimonial is a customer quote.
type Testimonial struct {
	ID           string
	Name         string
	VehicleModel string
	Content      string
	Rating       int
	IsPublished  bool
	CreatedAt    time.Time
}

// Validate checks the Testimonial has valid data. A zero rating becomes the
// default.
// PRE: Testimonial struct is populated
// POST: Returns nil if valid; Rating in [1, 5]
func (t *Testimonial) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(t.Content) == "" {
		return ErrEmptyContent
	}
	if t.Rating == 0 {
		t.Rating = DefaultRating
	}
	if t.Rating < MinRating || t.Rating > MaxRating {
		return ErrInvalidRate
	}
	return nil
}

// Stars returns the rating as a slice for ranging in templates.
func (t Testimonial) Stars() []struct{} {
	n := t.Rating
	if n < 0 {
		n = 0
	}
	if n > MaxRating {
		n = MaxRating
	}
	return make([]struct{}, n)
}
