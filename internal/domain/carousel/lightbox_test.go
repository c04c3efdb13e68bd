package carousel

import (
	"errors"
	"testing"
)

// countingDocument counts outstanding acquisitions.
type countingDocument struct {
	locks     int
	listeners int
	handlers  map[int]func(string)
	next      int
}

func newCountingDocument() *countingDocument {
	return &countingDocument{handlers: make(map[int]func(string))}
}

func (d *countingDocument) LockScroll()   { d.locks++ }
func (d *countingDocument) UnlockScroll() { d.locks-- }

func (d *countingDocument) AddKeyListener(fn func(string)) func() {
	id := d.next
	d.next++
	d.handlers[id] = fn
	d.listeners++
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		delete(d.handlers, id)
		d.listeners--
	}
}

func (d *countingDocument) press(key string) {
	for _, fn := range d.handlers {
		fn(key)
		return
	}
}

func TestLightbox_WrapAtBoundaries(t *testing.T) {
	lb := NewLightbox(newCountingDocument(), 4)
	if err := lb.Open(3); err != nil {
		t.Fatal(err)
	}
	lb.Change(1)
	if lb.Active() != 0 {
		t.Errorf("change(+1) from last: got %d, want 0", lb.Active())
	}
	lb.Change(-1)
	if lb.Active() != 3 {
		t.Errorf("change(-1) from 0: got %d, want 3", lb.Active())
	}
}

// TestLightbox_SingleItem covers the one-image gallery scenario.
// PRE: gallery with exactly one item
// POST: open(0), change(+1), change(-1) keep index 0 throughout
func TestLightbox_SingleItem(t *testing.T) {
	lb := NewLightbox(newCountingDocument(), 1)
	if err := lb.Open(0); err != nil {
		t.Fatal(err)
	}
	lb.Change(1)
	if lb.Active() != 0 {
		t.Fatalf("after change(+1): %d", lb.Active())
	}
	lb.Change(-1)
	if lb.Active() != 0 {
		t.Fatalf("after change(-1): %d", lb.Active())
	}
}

func TestLightbox_OpenRejectsOutOfRange(t *testing.T) {
	doc := newCountingDocument()
	lb := NewLightbox(doc, 2)
	if err := lb.Open(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Open(2) error = %v", err)
	}
	if lb.IsOpen() || doc.locks != 0 || doc.listeners != 0 {
		t.Error("rejected open must not acquire anything")
	}
	empty := NewLightbox(doc, 0)
	if err := empty.Open(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Open on empty gallery error = %v", err)
	}
}

// TestLightbox_ReleasesOnEveryClosePath checks lock and listener counts
// return to zero however the lightbox closes.
func TestLightbox_ReleasesOnEveryClosePath(t *testing.T) {
	paths := map[string]func(lb *Lightbox, doc *countingDocument){
		"explicit close": func(lb *Lightbox, _ *countingDocument) { lb.Close() },
		"escape key":     func(_ *Lightbox, doc *countingDocument) { doc.press(KeyEscape) },
		"backdrop click": func(lb *Lightbox, _ *countingDocument) { lb.Click(TargetBackdrop) },
		"wrapper click":  func(lb *Lightbox, _ *countingDocument) { lb.Click(TargetWrapper) },
		"unmount":        func(lb *Lightbox, _ *countingDocument) { lb.Unmount() },
		"gallery emptied": func(lb *Lightbox, _ *countingDocument) {
			lb.SetLen(0)
		},
	}
	for name, closeFn := range paths {
		t.Run(name, func(t *testing.T) {
			doc := newCountingDocument()
			lb := NewLightbox(doc, 3)
			if err := lb.Open(1); err != nil {
				t.Fatal(err)
			}
			if doc.locks != 1 || doc.listeners != 1 {
				t.Fatalf("after open: locks=%d listeners=%d", doc.locks, doc.listeners)
			}
			closeFn(lb, doc)
			if lb.IsOpen() {
				t.Error("still open")
			}
			if doc.locks != 0 || doc.listeners != 0 {
				t.Errorf("after close: locks=%d listeners=%d", doc.locks, doc.listeners)
			}
			lb.Unmount()
			if doc.locks != 0 || doc.listeners != 0 {
				t.Errorf("double release: locks=%d listeners=%d", doc.locks, doc.listeners)
			}
		})
	}
}

func TestLightbox_ReopenAcquiresOnce(t *testing.T) {
	doc := newCountingDocument()
	lb := NewLightbox(doc, 5)
	_ = lb.Open(1)
	_ = lb.Open(4)
	if lb.Active() != 4 {
		t.Errorf("active = %d, want 4", lb.Active())
	}
	if doc.locks != 1 || doc.listeners != 1 {
		t.Errorf("locks=%d listeners=%d, want 1 and 1", doc.locks, doc.listeners)
	}
	lb.Close()
	if doc.locks != 0 || doc.listeners != 0 {
		t.Errorf("locks=%d listeners=%d after close", doc.locks, doc.listeners)
	}
}

func TestLightbox_Keys(t *testing.T) {
	doc := newCountingDocument()
	lb := NewLightbox(doc, 3)
	_ = lb.Open(0)

	doc.press(KeyArrowRight)
	if lb.Active() != 1 {
		t.Errorf("ArrowRight: %d", lb.Active())
	}
	doc.press(KeyArrowLeft)
	doc.press(KeyArrowLeft)
	if lb.Active() != 2 {
		t.Errorf("ArrowLeft twice from 1: %d", lb.Active())
	}
	if lb.HandleKey("Enter") {
		t.Error("Enter should not be bound")
	}
	doc.press(KeyEscape)
	if lb.IsOpen() || lb.Active() != 0 {
		t.Errorf("Escape: open=%v active=%d", lb.IsOpen(), lb.Active())
	}
	if lb.HandleKey(KeyArrowRight) {
		t.Error("keys must be ignored while closed")
	}
}

func TestLightbox_ClickOnContentKeepsOpen(t *testing.T) {
	lb := NewLightbox(newCountingDocument(), 2)
	_ = lb.Open(1)
	for _, target := range []Target{TargetImage, TargetNav, TargetCaption} {
		lb.Click(target)
		if !lb.IsOpen() {
			t.Fatalf("click on %v closed the lightbox", target)
		}
	}
}

func TestLightbox_ChangeWhileClosedIsNoop(t *testing.T) {
	lb := NewLightbox(newCountingDocument(), 3)
	lb.Change(1)
	if lb.Active() != 0 || lb.IsOpen() {
		t.Errorf("closed change moved to %d", lb.Active())
	}
}

func TestLightbox_SetLenShrinks(t *testing.T) {
	lb := NewLightbox(newCountingDocument(), 5)
	_ = lb.Open(4)
	lb.SetLen(2)
	if !lb.IsOpen() || lb.Active() != 0 {
		t.Errorf("open=%v active=%d, want open at 0", lb.IsOpen(), lb.Active())
	}
}

func TestPageDocument(t *testing.T) {
	doc := NewPageDocument()
	lb := NewLightbox(doc, 3)
	_ = lb.Open(0)
	if !doc.ScrollLocked() || doc.Listeners() != 1 {
		t.Fatalf("after open: locked=%v listeners=%d", doc.ScrollLocked(), doc.Listeners())
	}
	doc.DispatchKey(KeyArrowRight)
	if lb.Active() != 1 {
		t.Errorf("dispatch ArrowRight: %d", lb.Active())
	}
	doc.DispatchKey(KeyEscape)
	if doc.ScrollLocked() || doc.Listeners() != 0 {
		t.Errorf("after escape: locked=%v listeners=%d", doc.ScrollLocked(), doc.Listeners())
	}
}
