package main

import (
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/agausmann/windowmaster/internal/hidhost"
	"github.com/agausmann/windowmaster/pkg/wmlog"
)

// config holds windowmasterd's process-start configuration (spec §6): a
// log level/format pair and overrides for the HID worker's poll and
// enumeration-refresh cadence. Nothing here is persisted between runs
// (spec §9 Non-goals, "no saved user config").
type config struct {
	logLevel      slog.Level
	logFormat     wmlog.Format
	pollInterval  time.Duration
	refreshPeriod time.Duration
	reportIDByte  bool
}

// parseConfig reads flags the same way samoyed's appserver.go builds its
// flag set: pflag.XxxP calls followed by a single pflag.Parse(), validated
// afterward rather than inside the flag declarations.
func parseConfig(args []string) (config, error) {
	fs := pflag.NewFlagSet("windowmasterd", pflag.ContinueOnError)

	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	jsonLog := fs.Bool("json", false, "emit logs as JSON instead of text")
	pollInterval := fs.Duration("poll-interval", 10*time.Millisecond, "HID input-report poll interval (spec default 10ms)")
	refreshPeriod := fs.Duration("refresh-period", hidhost.RefreshInterval, "device enumeration refresh period")
	reportIDByte := fs.Bool("report-id-byte", false, "expect/emit a leading report-ID byte on every HID report")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg := config{
		logLevel:      slog.LevelInfo,
		logFormat:     wmlog.FormatText,
		pollInterval:  *pollInterval,
		refreshPeriod: *refreshPeriod,
		reportIDByte:  *reportIDByte,
	}
	if *verbose {
		cfg.logLevel = slog.LevelDebug
	}
	if *jsonLog {
		cfg.logFormat = wmlog.FormatJSON
	}
	return cfg, nil
}
