//go:build !windows

package audio

// NewPlatformBackend returns the real backend for the build's GOOS,
// letting cmd/windowmasterd stay platform-agnostic (spec §4.H: the backend
// itself is the only platform-specific component). Every non-Windows GOOS
// currently falls back to the stub backend (spec §4.H Non-goals: no
// PulseAudio/PipeWire/CoreAudio backend).
func NewPlatformBackend() Backend {
	return NewStubBackend()
}
