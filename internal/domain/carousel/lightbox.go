package carousel

// Keys the lightbox responds to while open.
const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// Target identifies what a pointer click landed on.
type Target int

const (
	TargetBackdrop Target = iota
	TargetWrapper
	TargetImage
	TargetNav
	TargetCaption
)

// Document is the page-level surface the lightbox borrows while open.
type Document interface {
	// LockScroll suppresses background scrolling.
	LockScroll()
	// UnlockScroll restores background scrolling.
	UnlockScroll()
	// AddKeyListener installs fn for key presses and returns its remover.
	AddKeyListener(fn func(key string)) (remove func())
}

// Lightbox presents one item of a gallery at a time.
//
// INVARIANT: the scroll lock is held and exactly one key listener is
// installed if and only if the lightbox is open.
type Lightbox struct {
	doc        Document
	n          int
	open       bool
	active     int
	removeKeys func()
}

// NewLightbox creates a closed lightbox over n items.
func NewLightbox(doc Document, n int) *Lightbox {
	if n < 0 {
		n = 0
	}
	return &Lightbox{doc: doc, n: n}
}

// IsOpen reports whether the overlay is showing.
func (l *Lightbox) IsOpen() bool { return l.open }

// Active returns the index being shown.
func (l *Lightbox) Active() int { return l.active }

// Len returns the number of items.
func (l *Lightbox) Len() int { return l.n }

// Open shows item index. Opening an already open lightbox only moves the
// index; the document resources are acquired once.
// PRE: 0 <= index < Len()
// POST: IsOpen(); scroll locked; key listener installed
func (l *Lightbox) Open(index int) error {
	if index < 0 || index >= l.n {
		return ErrIndexOutOfRange
	}
	l.active = index
	if l.open {
		return nil
	}
	l.open = true
	l.doc.LockScroll()
	l.removeKeys = l.doc.AddKeyListener(func(key string) { l.HandleKey(key) })
	return nil
}

// Close hides the overlay and releases the document. Safe when closed.
// POST: !IsOpen(); Active() == 0; scroll restored; listener removed
func (l *Lightbox) Close() {
	l.active = 0
	if !l.open {
		return
	}
	l.open = false
	if l.removeKeys != nil {
		l.removeKeys()
		l.removeKeys = nil
	}
	l.doc.UnlockScroll()
}

// Change moves by direction, wrapping at both ends. No-op when closed.
func (l *Lightbox) Change(direction int) {
	if !l.open || l.n == 0 {
		return
	}
	l.active = Wrap(l.active+direction, l.n)
}

// Next is Change(+1).
func (l *Lightbox) Next() { l.Change(1) }

// Prev is Change(-1).
func (l *Lightbox) Prev() { l.Change(-1) }

// PeekChange returns where Change(direction) would land without moving.
func (l *Lightbox) PeekChange(direction int) int {
	if l.n == 0 {
		return 0
	}
	return Wrap(l.active+direction, l.n)
}

// HandleKey applies a key binding and reports whether the key was bound.
// Keys are ignored while closed.
func (l *Lightbox) HandleKey(key string) bool {
	if !l.open {
		return false
	}
	switch key {
	case KeyEscape:
		l.Close()
	case KeyArrowLeft:
		l.Change(-1)
	case KeyArrowRight:
		l.Change(1)
	default:
		return false
	}
	return true
}

// Click closes the lightbox when the click landed outside the content.
func (l *Lightbox) Click(target Target) {
	if target == TargetBackdrop || target == TargetWrapper {
		l.Close()
	}
}

// SetLen replaces the item count. An empty gallery closes the lightbox; an
// index that no longer exists goes back to the first item.
func (l *Lightbox) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	l.n = n
	if n == 0 {
		l.Close()
		return
	}
	if l.active >= n {
		l.active = 0
	}
}

// Unmount releases everything the lightbox holds.
func (l *Lightbox) Unmount() { l.Close() }
