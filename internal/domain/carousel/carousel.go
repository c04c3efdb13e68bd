// Package carousel holds the index-navigation state machines behind the hero
// slider, the gallery lightbox and the testimonial strip.
//
// All transitions are synchronous and total. Timers live in Player, which
// serialises ticks and commands on a single goroutine.
package carousel

import (
	"errors"
	"time"
)

// HeroInterval is how often the hero slider advances on its own.
const HeroInterval = 5 * time.Second

// ErrIndexOutOfRange is returned when a caller asks for a position that does
// not exist in the current sequence.
var ErrIndexOutOfRange = errors.New("carousel: index out of range")

// Carousel tracks the active position over a sequence of n items.
// INVARIANT: 0 <= active < n, or n == 0 and active == 0.
type Carousel struct {
	n      int
	active int
}

// New creates a carousel over n items with the first item active.
// Negative n is treated as an empty sequence.
func New(n int) *Carousel {
	if n < 0 {
		n = 0
	}
	return &Carousel{n: n}
}

// Len returns the sequence length.
func (c *Carousel) Len() int { return c.n }

// Empty reports whether there is nothing to show.
func (c *Carousel) Empty() bool { return c.n == 0 }

// Active returns the active index. It is 0 for an empty sequence.
func (c *Carousel) Active() int { return c.active }

// GoTo makes index the active item.
// PRE: 0 <= index < Len()
// POST: Active() == index; on error state is unchanged
func (c *Carousel) GoTo(index int) error {
	if index < 0 || index >= c.n {
		return ErrIndexOutOfRange
	}
	c.active = index
	return nil
}

// Next advances by one, wrapping to the first item. No-op when empty.
func (c *Carousel) Next() {
	if c.n == 0 {
		return
	}
	c.active = Wrap(c.active+1, c.n)
}

// Prev steps back by one, wrapping to the last item. No-op when empty.
func (c *Carousel) Prev() {
	if c.n == 0 {
		return
	}
	c.active = Wrap(c.active-1, c.n)
}

// PeekNext returns the index Next would move to without moving.
func (c *Carousel) PeekNext() int {
	if c.n == 0 {
		return 0
	}
	return Wrap(c.active+1, c.n)
}

// PeekPrev returns the index Prev would move to without moving.
func (c *Carousel) PeekPrev() int {
	if c.n == 0 {
		return 0
	}
	return Wrap(c.active-1, c.n)
}

// Reset replaces the sequence length. The active index is kept when it is
// still valid, otherwise it goes back to the first item.
// POST: invariant holds for the new length
func (c *Carousel) Reset(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	if c.active >= n {
		c.active = 0
	}
}

// Tick is the auto-advance step.
func (c *Carousel) Tick() { c.Next() }

// Running reports whether an auto-advance timer should exist.
func (c *Carousel) Running() bool { return c.n > 0 }

// Wrap maps any integer index onto [0, n). It returns 0 when n <= 0.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
