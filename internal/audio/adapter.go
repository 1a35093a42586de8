package audio

import (
	"context"
	"sync"
)

// Adapter wraps a Backend with the unbounded event queue spec §4.H
// requires ("bounded queues are disallowed because backpressure would
// deadlock the OS callback"). Callback threads calling the emit function
// passed into Backend.Run never block; the queue is drained through Next by
// a single consumer goroutine (the coordinator task) at its own pace.
//
// Unlike the teacher's hotplug monitor (host/hal/linux/hotplug.go), which
// uses a fixed-capacity channel and drops events on overflow, a dropped
// audio event would silently desync a channel's indicator from the real
// stream state, so Adapter grows an internal slice instead of dropping.
type Adapter struct {
	backend Backend

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Event
	closed bool
}

// NewAdapter wraps backend in an unbounded event queue.
func NewAdapter(backend Backend) *Adapter {
	a := &Adapter{backend: backend}
	a.cond = sync.NewCond(&a.mu)
	return a
}

// emit is passed to Backend.Run; it never blocks the caller.
func (a *Adapter) emit(ev Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.queue = append(a.queue, ev)
	a.cond.Signal()
}

// Next blocks until an event is available or Close has been called,
// returning ok=false in the latter case once the queue has drained.
func (a *Adapter) Next() (ev Event, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for len(a.queue) == 0 && !a.closed {
		a.cond.Wait()
	}
	if len(a.queue) == 0 {
		return Event{}, false
	}
	ev = a.queue[0]
	a.queue[0] = Event{}
	a.queue = a.queue[1:]
	return ev, true
}

// Close unblocks any goroutine waiting in Next after the queue drains.
func (a *Adapter) Close() {
	a.mu.Lock()
	a.closed = true
	a.cond.Broadcast()
	a.mu.Unlock()
}

// Run starts the wrapped backend, routing its callbacks through the
// unbounded queue, and closes the queue when the backend returns (ctx
// cancellation or a fatal backend error).
func (a *Adapter) Run(ctx context.Context) error {
	defer a.Close()
	return a.backend.Run(ctx, a.emit)
}

// Dispatch forwards a StreamControl to the wrapped backend.
func (a *Adapter) Dispatch(control StreamControl) error {
	return a.backend.Dispatch(control)
}

// Backend returns the wrapped backend itself. Its Run is not bound to this
// Adapter's emit; events reach Next only when the backend is started
// through Adapter.Run.
func (a *Adapter) Backend() Backend {
	return a.backend
}
