package view

import (
	"sync"
)

// PointerEvent is a press at a host coordinate (pixels or terminal cells).
type PointerEvent struct {
	X, Y int
}

// Rect is an axis-aligned region in host coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Listeners is the host-owned registry of global pointer listeners.
// The host calls Dispatch for every press it receives.
type Listeners struct {
	mu       sync.Mutex
	seq      int
	handlers map[int]func(PointerEvent)
}

// NewListeners returns an empty registry.
func NewListeners() *Listeners {
	return &Listeners{handlers: make(map[int]func(PointerEvent))}
}

// Register adds fn and returns a function that removes it. The release
// function may be called more than once.
func (l *Listeners) Register(fn func(PointerEvent)) (release func()) {
	l.mu.Lock()
	l.seq++
	id := l.seq
	l.handlers[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.handlers, id)
			l.mu.Unlock()
		})
	}
}

// Dispatch delivers ev to every registered listener. Listeners run outside
// the registry lock and may register or release listeners themselves.
func (l *Listeners) Dispatch(ev PointerEvent) {
	l.mu.Lock()
	fns := make([]func(PointerEvent), 0, len(l.handlers))
	for _, fn := range l.handlers {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Len returns the number of registered listeners.
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.handlers)
}
