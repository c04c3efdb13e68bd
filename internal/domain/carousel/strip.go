package carousel

import (
	"math"
	"time"
)

// Testimonial strip layout constants.
const (
	WideViewport     = 1024 // px, four cards visible
	MediumViewport   = 700  // px, three cards visible; below this the strip is static
	CardGap          = 30.0 // px between cards
	DefaultCardWidth = 300.0
	StripInterval    = 3 * time.Second

	// ShortList is the count below which the list is shown twice over.
	ShortList = 5
)

// PerView returns how many cards fit at viewport width.
func PerView(width int) int {
	switch {
	case width >= WideViewport:
		return 4
	case width >= MediumViewport:
		return 3
	default:
		return 1
	}
}

// DisplayCount returns how many cards are rendered for raw testimonials.
func DisplayCount(raw int) int {
	if raw > 0 && raw < ShortList {
		return raw * 2
	}
	if raw < 0 {
		return 0
	}
	return raw
}

// Duplicate returns items, repeated once end to end when the list is short.
func Duplicate[T any](items []T) []T {
	if len(items) == 0 || len(items) >= ShortList {
		return items
	}
	out := make([]T, 0, len(items)*2)
	out = append(out, items...)
	return append(out, items...)
}

// Strip is the auto-scroll state of the testimonial row.
// INVARIANT: offset + PerView() <= display whenever display >= PerView().
type Strip struct {
	display   int
	width     int
	cardWidth float64
	offset    int
}

// NewStrip creates a strip over display cards at the given viewport width.
// A non-positive cardWidth means the first card has not been measured yet.
func NewStrip(display, width int, cardWidth float64) *Strip {
	s := &Strip{width: width}
	s.SetCount(display)
	s.Measure(cardWidth)
	return s
}

// PerView returns the visible card count at the current width.
func (s *Strip) PerView() int { return PerView(s.width) }

// Offset returns the index of the leftmost visible card.
func (s *Strip) Offset() int { return s.offset }

// Width returns the current viewport width.
func (s *Strip) Width() int { return s.width }

// Len returns the display count.
func (s *Strip) Len() int { return s.display }

// CardWidth returns the measured card width, or the default when unmeasured.
func (s *Strip) CardWidth() float64 { return s.cardWidth }

// Translation returns the horizontal shift in px for the current offset.
func (s *Strip) Translation() float64 {
	return float64(s.offset) * (s.cardWidth + CardGap)
}

// Measure records the rendered width of the first card. Widths that are not
// finite and positive fall back to DefaultCardWidth.
func (s *Strip) Measure(cardWidth float64) {
	if math.IsNaN(cardWidth) || math.IsInf(cardWidth, 0) || cardWidth <= 0 {
		cardWidth = DefaultCardWidth
	}
	s.cardWidth = cardWidth
}

// Resize changes the viewport width. Going below MediumViewport resets the
// strip to its start.
func (s *Strip) Resize(width int) {
	s.width = width
	if width < MediumViewport {
		s.offset = 0
		return
	}
	if s.offset > s.maxOffset() {
		s.offset = 0
	}
}

// SetCount replaces the display count.
func (s *Strip) SetCount(display int) {
	if display < 0 {
		display = 0
	}
	s.display = display
	if s.offset > s.maxOffset() {
		s.offset = 0
	}
}

// Tick advances one card, wrapping once the last card is in view.
func (s *Strip) Tick() {
	if !s.Running() {
		return
	}
	if s.offset >= s.maxOffset() {
		s.offset = 0
		return
	}
	s.offset++
}

// Running reports whether the strip scrolls on its own.
func (s *Strip) Running() bool {
	return s.width >= MediumViewport && s.display > 0
}

func (s *Strip) maxOffset() int {
	m := s.display - s.PerView()
	if m < 0 {
		return 0
	}
	return m
}
