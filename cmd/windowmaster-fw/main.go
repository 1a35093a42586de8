// Command windowmaster-fw is the WindowMaster device firmware: it builds
// six channel.Channel instances and drives internal/firmware.Loop against
// an opaque HID transport primitive, exactly as spec §1 scopes the
// device-side channel loop — everything below that transport (USB
// enumeration, endpoint configuration, descriptor negotiation) is MCU
// peripheral glue the spec treats as an external collaborator, so this
// binary talks to the host over a pair of named pipes in a shared bus
// directory rather than a platform USB stack. A real board substitutes its
// own fwtransport.HID implementation in place of pipeHID and otherwise
// reuses everything downstream unchanged.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/agausmann/windowmaster/internal/button"
	"github.com/agausmann/windowmaster/internal/channel"
	"github.com/agausmann/windowmaster/internal/firmware"
	"github.com/agausmann/windowmaster/internal/fwtransport"
	"github.com/agausmann/windowmaster/internal/indicator"
	"github.com/agausmann/windowmaster/pkg/wmlog"
)

func main() {
	busDir := pflag.StringP("bus-dir", "b", "", "directory shared with the host process (required)")
	reportIDByte := pflag.Bool("report-id-byte", false, "expect/emit a leading report-ID byte on every report")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	jsonLog := pflag.Bool("json", false, "emit logs as JSON")
	pflag.Parse()

	if *verbose {
		wmlog.SetLevel(slog.LevelDebug)
	}
	if *jsonLog {
		wmlog.SetFormat(wmlog.FormatJSON)
	}
	if *busDir == "" {
		wmlog.Error(wmlog.ComponentFirmware, "missing required flag", "flag", "--bus-dir")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		wmlog.Info(wmlog.ComponentFirmware, "shutting down")
		cancel()
	}()

	pipe, err := newPipeHID(*busDir)
	if err != nil {
		wmlog.Error(wmlog.ComponentFirmware, "failed to open bus directory", "error", err)
		os.Exit(1)
	}
	defer pipe.Close()

	wmlog.Info(wmlog.ComponentFirmware, "device ready", "busDir", *busDir)

	transport := fwtransport.New(pipe, *reportIDByte)

	var channels [fwtransport.NumChannels]*channel.Channel
	for i := range channels {
		channels[i] = buildChannel()
	}

	loop, err := firmware.New(channels, transport, loopIndicator{})
	if err != nil {
		wmlog.Error(wmlog.ComponentFirmware, "failed to build loop", "error", err)
		firmware.HandleFault(loopIndicator{}, loopSleeper{}, loopResetter{cancel})
		return
	}

	for ctx.Err() == nil {
		if err := loop.Tick(); err != nil {
			wmlog.Error(wmlog.ComponentFirmware, "fatal tick error", "error", err)
			firmware.HandleFault(loopIndicator{}, loopSleeper{}, loopResetter{cancel})
			return
		}
	}
}

func buildChannel() *channel.Channel {
	enc := channel.NewEncoder(simPin{}, simPin{})
	btn := button.New(simPin{})
	ind, err := indicator.New(simPin{}, false)
	if err != nil {
		panic(err)
	}
	return channel.New(enc, btn, ind)
}

// simPin is the stand-in GPIO pin used until a board-specific file wires
// real hardware in its place: always reads low, ignores writes. Real boards
// replace buildChannel's pins with their own channel.Pin/button.Pin/
// indicator.Pin implementations; everything downstream is unchanged.
type simPin struct{}

func (simPin) IsHigh() (bool, error) { return false, nil }
func (simPin) SetHigh(bool) error    { return nil }

type loopIndicator struct{}

func (loopIndicator) On() error  { return nil }
func (loopIndicator) Off() error { return nil }

type loopSleeper struct{}

func (loopSleeper) Sleep(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }

type loopResetter struct {
	cancel context.CancelFunc
}

func (r loopResetter) Reset() { r.cancel() }
