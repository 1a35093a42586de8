// Package wmlog provides component-tagged structured logging shared by the
// device firmware, the host HID worker, the audio adapter, and the
// coordinator runtime.
package wmlog

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Component identifies a subsystem for log filtering.
type Component string

// WindowMaster component identifiers.
const (
	ComponentFirmware    Component = "firmware"
	ComponentQuad        Component = "quad"
	ComponentButton      Component = "button"
	ComponentIndicator   Component = "indicator"
	ComponentTransport   Component = "transport"
	ComponentHID         Component = "hid"
	ComponentAudio       Component = "audio"
	ComponentGraph       Component = "graph"
	ComponentMenu        Component = "menu"
	ComponentCoordinator Component = "coordinator"
)

// Format specifies the output format for logging.
type Format int

// Log format options.
const (
	FormatText Format = iota // Text format (default)
	FormatJSON                // JSON format
)

var (
	// DefaultLogger is the default logger used throughout the daemon.
	DefaultLogger *slog.Logger

	// logLevel controls the minimum log level.
	logLevel = new(slog.LevelVar)

	// logMutex protects logger configuration.
	logMutex sync.RWMutex
)

func init() {
	logLevel.Set(slog.LevelInfo)
	DefaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// SetLevel sets the minimum log level for all daemon logging.
func SetLevel(level slog.Level) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logLevel.Set(level)
}

// Level returns the current minimum log level.
func Level() slog.Level {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return logLevel.Level()
}

// SetLogger replaces the default logger with a custom logger.
func SetLogger(logger *slog.Logger) {
	logMutex.Lock()
	defer logMutex.Unlock()
	DefaultLogger = logger
}

// SetFormat configures the default logger to use the specified format.
// The logger writes to os.Stderr and uses the current log level.
func SetFormat(format Format) {
	logMutex.Lock()
	defer logMutex.Unlock()
	opts := &slog.HandlerOptions{Level: logLevel}
	switch format {
	case FormatJSON:
		DefaultLogger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	default:
		DefaultLogger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
}

// New creates a new text logger writing to the given writer.
func New(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: logLevel}
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func currentLogger() *slog.Logger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return DefaultLogger
}

// Debug logs a debug message tagged with the given component.
func Debug(component Component, msg string, args ...any) {
	currentLogger().Debug(msg, append([]any{"component", string(component)}, args...)...)
}

// Info logs an info message tagged with the given component.
func Info(component Component, msg string, args ...any) {
	currentLogger().Info(msg, append([]any{"component", string(component)}, args...)...)
}

// Warn logs a warning message tagged with the given component.
func Warn(component Component, msg string, args ...any) {
	currentLogger().Warn(msg, append([]any{"component", string(component)}, args...)...)
}

// Error logs an error message tagged with the given component.
func Error(component Component, msg string, args ...any) {
	currentLogger().Error(msg, append([]any{"component", string(component)}, args...)...)
}
