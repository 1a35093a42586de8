// Command windowmasterd is the WindowMaster host daemon (spec §4.H, §4.G,
// §4.J, §5): it runs the audio adapter task, the HID worker task, and the
// coordinator task concurrently, wired together by the four channels spec
// §5 describes, and shuts all three down together on SIGINT/SIGTERM or any
// one task's fatal error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agausmann/windowmaster/internal/audio"
	"github.com/agausmann/windowmaster/internal/coordinator"
	"github.com/agausmann/windowmaster/internal/hidhost"
	"github.com/agausmann/windowmaster/pkg/wmlog"

	_ "github.com/agausmann/windowmaster/pkg/prof" // registers /debug/pprof/ when built with -tags profile
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	wmlog.SetLevel(cfg.logLevel)
	wmlog.SetFormat(cfg.logFormat)

	ctx, cancel := context.WithCancelCause(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		wmlog.Info(wmlog.ComponentCoordinator, "shutting down")
		cancel(nil)
	}()

	audioAdapter := audio.NewAdapter(audio.NewPlatformBackend())
	worker := hidhost.NewWorker(hidhost.NewKaralabeSource(), cfg.reportIDByte, time.Now)
	worker.SetRefreshPeriod(cfg.refreshPeriod)

	audioIn := make(chan audio.Event)
	hidIn := make(chan hidhost.Event)
	audioOut := make(chan audio.StreamControl)
	hidOut := make(chan hidhost.ChannelOutput)

	runtime := coordinator.NewRuntime(audioIn, hidIn, audioOut, hidOut)

	go runAudioBackend(ctx, cancel, audioAdapter)
	go pumpAudioEvents(ctx, cancel, audioAdapter, audioIn)
	go dispatchAudioControls(ctx, audioAdapter, audioOut)
	go runHIDWorker(ctx, worker, cfg.pollInterval, hidIn, hidOut)

	if err := runtime.Run(ctx); err != nil && ctx.Err() == nil {
		wmlog.Error(wmlog.ComponentCoordinator, "coordinator exited", "error", err)
	}

	close(audioOut)
	<-ctx.Done()
	if cause := context.Cause(ctx); cause != nil && cause != context.Canceled {
		wmlog.Error(wmlog.ComponentCoordinator, "shutdown cause", "error", cause)
		os.Exit(1)
	}
}

// runAudioBackend drives the backend's own callback machinery for the
// process lifetime; a fatal backend error cancels every other task.
func runAudioBackend(ctx context.Context, cancel context.CancelCauseFunc, a *audio.Adapter) {
	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		wmlog.Error(wmlog.ComponentAudio, "backend exited", "error", err)
		cancel(err)
	}
}

// pumpAudioEvents forwards the adapter's unbounded queue onto audioIn,
// closing it once the adapter drains after Close (spec §5 "when any of the
// three tasks returns or its channel closes, the others observe close").
func pumpAudioEvents(ctx context.Context, cancel context.CancelCauseFunc, a *audio.Adapter, audioIn chan<- audio.Event) {
	defer close(audioIn)
	for {
		ev, ok := a.Next()
		if !ok {
			return
		}
		select {
		case audioIn <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// dispatchAudioControls applies every StreamControl the coordinator emits
// until audioOut is closed.
func dispatchAudioControls(ctx context.Context, a *audio.Adapter, audioOut <-chan audio.StreamControl) {
	for {
		select {
		case ctrl, ok := <-audioOut:
			if !ok {
				return
			}
			if err := a.Dispatch(ctrl); err != nil {
				wmlog.Warn(wmlog.ComponentAudio, "dispatch failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// runHIDWorker drives Worker.Tick on its own dedicated goroutine (the
// doc comment on hidhost.Worker is explicit that this is the caller's
// job), forwarding discovered Events to hidIn and outgoing ChannelOutputs
// from hidOut into Worker.Enqueue.
func runHIDWorker(ctx context.Context, w *hidhost.Worker, pollInterval time.Duration, hidIn chan<- hidhost.Event, hidOut <-chan hidhost.ChannelOutput) {
	defer close(hidIn)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case output, ok := <-hidOut:
			if !ok {
				return
			}
			w.Enqueue(output)
		case <-ticker.C:
			for _, ev := range w.Tick() {
				select {
				case hidIn <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
