package audio

import "context"

// Backend is the platform audio subsystem contract spec §4.H describes as
// external: maintain device/session streams, push Events out, and accept
// StreamControls in. Implementations are free to call back into emit from
// any goroutine; Adapter (adapter.go) is what gives callers a single
// serialized, unbounded-buffered stream of events regardless of how the
// backend threads its own callbacks.
type Backend interface {
	// Run starts the backend's callback machinery and blocks until ctx is
	// done or a fatal error occurs. Events discovered while running are
	// pushed through emit, which must never be allowed to block Run
	// indefinitely — callers always wrap Backend in an Adapter, whose emit
	// is a non-blocking unbounded-queue push.
	Run(ctx context.Context, emit func(Event)) error

	// Dispatch applies a StreamControl. It may be called concurrently with
	// Run from another goroutine and must serialize internally if the
	// underlying platform API is not reentrant.
	Dispatch(control StreamControl) error
}
