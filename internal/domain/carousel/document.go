package carousel

import "sort"

// PageDocument is a Document for one rendered page. It is owned by a single
// goroutine and is not safe for concurrent use.
type PageDocument struct {
	scrollLocked bool
	listeners    map[int]func(string)
	nextID       int
}

// NewPageDocument returns an unlocked document with no listeners.
func NewPageDocument() *PageDocument {
	return &PageDocument{listeners: make(map[int]func(string))}
}

// LockScroll sets the scroll lock.
func (d *PageDocument) LockScroll() { d.scrollLocked = true }

// UnlockScroll clears the scroll lock.
func (d *PageDocument) UnlockScroll() { d.scrollLocked = false }

// ScrollLocked reports whether background scrolling is suppressed.
func (d *PageDocument) ScrollLocked() bool { return d.scrollLocked }

// AddKeyListener registers fn. Calling the returned func more than once is a
// no-op.
func (d *PageDocument) AddKeyListener(fn func(key string)) func() {
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	return func() { delete(d.listeners, id) }
}

// Listeners returns how many key listeners are installed.
func (d *PageDocument) Listeners() int { return len(d.listeners) }

// DispatchKey delivers a key press to every listener installed at the time
// of the call, in installation order.
func (d *PageDocument) DispatchKey(key string) {
	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := d.listeners[id]; ok {
			fn(key)
		}
	}
}
