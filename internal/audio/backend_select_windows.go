//go:build windows

package audio

// NewPlatformBackend returns the real backend for the build's GOOS,
// letting cmd/windowmasterd stay platform-agnostic (spec §4.H: the backend
// itself is the only platform-specific component).
func NewPlatformBackend() Backend {
	return NewWindowsBackend()
}
