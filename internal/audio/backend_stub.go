//go:build !windows

package audio

import (
	"context"
	"sync"
	"time"

	"github.com/agausmann/windowmaster/internal/wmid"
)

// StubBackend is the non-Windows backend: it opens exactly one synthetic
// "Default Output Device" stream, applies StreamControls to an in-memory
// StreamState, and echoes StateChanged for every applied control, matching
// the observable contract of a real backend without any platform audio
// API. It exists because spec §4.H's backend is an external contract (and
// a real macOS/Linux binding is out of this repo's scope) while the
// coordinator still needs something to drive end-to-end.
type StubBackend struct {
	mu       sync.Mutex
	streamId wmid.StreamId
	state    wmid.StreamState
	emit     func(Event)
}

// NewStubBackend constructs the stub backend.
func NewStubBackend() *StubBackend {
	return &StubBackend{streamId: wmid.NextStreamId()}
}

// Run announces the single synthetic stream and then blocks until ctx is
// done.
func (b *StubBackend) Run(ctx context.Context, emit func(Event)) error {
	b.mu.Lock()
	b.emit = emit
	b.mu.Unlock()

	emit(StreamOpened(b.streamId, wmid.StreamInfo{
		Name:         "Default Output Device",
		InitialState: wmid.DefaultStreamState,
	}))

	<-ctx.Done()
	emit(StreamClosed(b.streamId))
	return ctx.Err()
}

// Dispatch updates the in-memory state and echoes a StateChanged event
// after a short delay, standing in for a callback thread's own latency so
// coordinator tests exercise the same "notification arrives asynchronously"
// behavior they would against a real backend.
func (b *StubBackend) Dispatch(control StreamControl) error {
	b.mu.Lock()
	b.state = control.Apply(b.state)
	next, emit := b.state, b.emit
	b.mu.Unlock()

	if emit != nil {
		go func() {
			time.Sleep(time.Millisecond)
			emit(StreamStateChanged(b.streamId, next))
		}()
	}
	return nil
}
