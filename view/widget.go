package view

import (
	"context"
	"sync"
)

// Widget ties a State to its data source and to the host's pointer events.
//
// Mount starts the one asynchronous fetch and registers the outside-click
// listener; Unmount cancels the fetch if it is still running and releases
// the listener.
type Widget struct {
	state     *State
	source    Source
	listeners *Listeners
	bounds    func() Rect

	mu      sync.Mutex
	mounted bool
	cancel  context.CancelFunc
	release func()
	done    chan struct{}
}

// NewWidget creates an unmounted widget. bounds is queried on every pointer
// event, so the host may move or resize the widget freely.
func NewWidget(source Source, listeners *Listeners, bounds func() Rect) *Widget {
	return &Widget{
		state:     NewState(),
		source:    source,
		listeners: listeners,
		bounds:    bounds,
		done:      make(chan struct{}),
	}
}

// State returns the widget's view state.
func (w *Widget) State() *State {
	return w.state
}

// Mount registers the outside-click listener and starts fetching. Calling
// Mount on a mounted widget does nothing.
func (w *Widget) Mount(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mounted {
		return
	}
	w.mounted = true

	w.release = w.listeners.Register(w.handlePointer)

	ctx, w.cancel = context.WithCancel(ctx)
	done := make(chan struct{})
	w.done = done
	go func() {
		defer close(done)
		w.state.FetchContributions(ctx, w.source)
	}()
}

// Done is closed once the fetch started by the latest Mount has finished,
// successfully or not.
func (w *Widget) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// Unmount cancels an in-flight fetch, releases the listener and waits for
// the fetch goroutine to exit. The wait lasts until Source.Fetch returns, so
// sources must honor ctx; whatever they return after the cancel is dropped.
func (w *Widget) Unmount() {
	w.mu.Lock()
	if !w.mounted {
		w.mu.Unlock()
		return
	}
	w.mounted = false
	cancel, release, done := w.cancel, w.release, w.done
	w.mu.Unlock()

	cancel()
	release()
	<-done
}

// Mounted reports whether the widget is between Mount and Unmount.
func (w *Widget) Mounted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mounted
}

func (w *Widget) handlePointer(ev PointerEvent) {
	if !w.bounds().Contains(ev.X, ev.Y) {
		w.state.ClearSelection()
	}
}
