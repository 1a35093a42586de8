package hidhost

import (
	"sync"
	"time"

	"github.com/agausmann/windowmaster/internal/wmid"
	"github.com/agausmann/windowmaster/pkg/wmerr"
	"github.com/agausmann/windowmaster/pkg/wmlog"
)

// Clock abstracts time.Now so the long-press and blink timing in Tick can
// be driven deterministically from tests, the same way firmware.Sleeper
// abstracts the device's delay primitive.
type Clock func() time.Time

// RefreshInterval is spec §4.G step 1's enumeration re-scan period.
const RefreshInterval = time.Second

// LongPressDuration is spec §4.G step 3's held-button threshold before
// OpenMenu/CloseMenu fires.
const LongPressDuration = 500 * time.Millisecond

// BlinkPeriod and BlinkOnDuration drive the menu-open indicator blink
// (spec §4.G step 4): on for BlinkOnDuration out of every BlinkPeriod,
// measured from a single process-wide epoch so every channel blinks in
// phase.
const (
	BlinkPeriod     = time.Second
	BlinkOnDuration = 250 * time.Millisecond
)

// Worker runs the host HID tick loop described in spec §4.G. It owns no
// goroutine itself; a caller (cmd/windowmasterd) drives Tick in a loop on
// its own dedicated thread and forwards the returned Events to the
// coordinator.
type Worker struct {
	source        DeviceSource
	reportIDByte  bool
	clock         Clock
	epoch         time.Time
	refreshPeriod time.Duration

	reg         *registry
	lastRefresh time.Time

	mu       sync.Mutex
	outgoing []ChannelOutput
}

// NewWorker constructs a Worker. reportIDByte matches fwtransport's own
// flag: whether reports carry a leading report-ID byte to skip/fill.
func NewWorker(source DeviceSource, reportIDByte bool, clock Clock) *Worker {
	now := clock()
	return &Worker{
		source:        source,
		reportIDByte:  reportIDByte,
		clock:         clock,
		epoch:         now,
		refreshPeriod: RefreshInterval,
		reg:           newRegistry(),
	}
}

// SetRefreshPeriod overrides the enumeration re-scan period set by
// NewWorker (spec §6 configuration overrides). A non-positive d is ignored.
func (w *Worker) SetRefreshPeriod(d time.Duration) {
	if d > 0 {
		w.refreshPeriod = d
	}
}

// Enqueue queues a ChannelOutput from the coordinator to be applied on the
// worker's next tick (spec §4.G step 2). Safe to call concurrently with
// Tick from another goroutine.
func (w *Worker) Enqueue(output ChannelOutput) {
	w.mu.Lock()
	w.outgoing = append(w.outgoing, output)
	w.mu.Unlock()
}

func (w *Worker) drainOutgoing() []ChannelOutput {
	w.mu.Lock()
	out := w.outgoing
	w.outgoing = nil
	w.mu.Unlock()
	return out
}

// Tick runs one pass of the state machine in spec §4.G and returns every
// Event produced. It never returns an error for a single device's failure;
// those are logged and the device is dropped (spec §4.G final paragraph).
func (w *Worker) Tick() []Event {
	now := w.clock()
	var events []Event

	if w.lastRefresh.IsZero() || now.Sub(w.lastRefresh) >= w.refreshPeriod {
		w.lastRefresh = now
		events = append(events, w.refresh()...)
	}

	for _, output := range w.drainOutgoing() {
		w.applyOutput(output)
	}

	for _, key := range w.reg.keys() {
		st, ok := w.reg.get(key)
		if !ok {
			continue
		}
		inputs, sawReport, err := w.pollDevice(st, now)
		if err != nil {
			wmlog.Warn(wmlog.ComponentHID, "device read failed, dropping",
				"key", key.String(), "error", err)
			st.device.Close()
			w.reg.remove(key)
			events = append(events, Event{Kind: EventDeviceRemoved, Device: st.id})
			continue
		}
		events = append(events, inputs...)

		if sawReport {
			if err := w.writeOutput(st, now); err != nil {
				wmlog.Warn(wmlog.ComponentHID, "device write failed, dropping",
					"key", key.String(), "error", err)
				st.device.Close()
				w.reg.remove(key)
				events = append(events, Event{Kind: EventDeviceRemoved, Device: st.id})
			}
		}
	}

	return events
}

// refresh re-enumerates attached devices and diffs the result against the
// registry, opening newly-seen models and closing devices that vanished.
func (w *Worker) refresh() []Event {
	var events []Event

	handles, err := w.source.Enumerate()
	if err != nil {
		wmlog.Warn(wmlog.ComponentHID, "enumerate failed", "error", err)
		return events
	}

	seen := make(map[DeviceKey]bool, len(handles))
	for _, h := range handles {
		model, ok := LookupModel(h.VendorID, h.ProductID)
		if !ok {
			if name := describeUnknown(h.VendorID, h.ProductID); name != "" {
				wmlog.Debug(wmlog.ComponentHID, "ignoring unrecognized device",
					"vendorID", h.VendorID, "productID", h.ProductID, "name", name)
			}
			continue
		}
		key := keyOf(h)
		if seen[key] {
			wmlog.Warn(wmlog.ComponentHID, "duplicate device key in one enumeration pass, skipping",
				"key", key.String(), "error", wmerr.ErrDuplicateDeviceKey)
			continue
		}
		seen[key] = true

		if _, already := w.reg.get(key); already {
			continue
		}

		dev, err := h.Open()
		if err != nil {
			wmlog.Warn(wmlog.ComponentHID, "open failed", "key", key.String(), "error", err)
			continue
		}

		id := wmid.NextDeviceId()
		st := &deviceState{
			id:       id,
			handle:   h,
			device:   dev,
			model:    model,
			channels: make([]channelState, model.NumChannels),
		}
		w.reg.add(key, st)

		events = append(events, Event{
			Kind:   EventDeviceAdded,
			Device: id,
			Info:   wmid.DeviceInfo{Name: model.Name, NumChannels: model.NumChannels},
		})
	}

	for _, key := range w.reg.keys() {
		if seen[key] {
			continue
		}
		st, _ := w.reg.remove(key)
		st.device.Close()
		events = append(events, Event{Kind: EventDeviceRemoved, Device: st.id})
	}

	return events
}

func (w *Worker) applyOutput(output ChannelOutput) {
	st, ok := w.reg.byId(output.Channel.Device)
	if !ok || output.Channel.Index < 0 || output.Channel.Index >= len(st.channels) {
		return
	}
	ch := &st.channels[output.Channel.Index]
	switch output.Kind {
	case ChannelOutputStateChanged:
		ch.streamState = output.State
	case ChannelOutputMenuOpened:
		ch.menuOpen = true
	case ChannelOutputMenuClosed:
		ch.menuOpen = false
	}
}

// pollDevice drains every pending input report from st.device, translating
// encoder/button activity into ChannelInput events per spec §4.G step 3.
func (w *Worker) pollDevice(st *deviceState, now time.Time) (events []Event, sawReport bool, err error) {
	size := st.model.NumChannels + 1
	off := 0
	if w.reportIDByte {
		off = 1
	}
	buf := make([]byte, off+size)

	for {
		n, readErr := st.device.ReadTimeout(buf, 0)
		if readErr != nil {
			return events, sawReport, readErr
		}
		if n == 0 {
			return events, sawReport, nil
		}
		sawReport = true

		report := buf[off:n]
		if len(report) < size {
			continue
		}
		buttons := report[st.model.NumChannels]
		for i := 0; i < st.model.NumChannels; i++ {
			ch := &st.channels[i]
			channelId := wmid.ChannelId{Device: st.id, Index: i}

			steps := int(int8(report[i]))
			if steps != 0 {
				if ch.menuOpen {
					if steps > 0 {
						events = append(events, channelEvent(channelId, ChannelInputMenuNext, steps))
					} else {
						events = append(events, channelEvent(channelId, ChannelInputMenuPrevious, -steps))
					}
				} else {
					events = append(events, channelEvent(channelId, ChannelInputStepVolume, steps))
				}
			}

			pressedNow := buttons&(1<<uint(i)) != 0
			events = append(events, w.processButton(ch, channelId, pressedNow, now)...)
			ch.pressed = pressedNow
		}
	}
}

func channelEvent(id wmid.ChannelId, kind ChannelInputKind, steps int) Event {
	return Event{
		Kind:  EventChannelInput,
		Input: ChannelInput{Channel: id, Kind: kind, Steps: steps},
	}
}

// processButton implements spec §4.G step 3's edge/long-press state
// machine for a single channel.
func (w *Worker) processButton(ch *channelState, id wmid.ChannelId, pressedNow bool, now time.Time) []Event {
	var events []Event

	risingEdge := !ch.pressed && pressedNow
	fallingEdge := ch.pressed && !pressedNow

	if risingEdge {
		ch.longPressDeadline = now.Add(LongPressDuration)
		ch.haveDeadline = true
	}

	if pressedNow && ch.haveDeadline && !now.Before(ch.longPressDeadline) {
		if ch.menuOpen {
			events = append(events, channelEvent(id, ChannelInputCloseMenu, 0))
		} else {
			events = append(events, channelEvent(id, ChannelInputOpenMenu, 0))
		}
		ch.longPressed = true
		ch.haveDeadline = false
	}

	if fallingEdge {
		if !ch.longPressed {
			if ch.menuOpen {
				events = append(events, channelEvent(id, ChannelInputMenuSelect, 0))
			} else {
				events = append(events, channelEvent(id, ChannelInputToggleMuted, 0))
			}
		}
		ch.longPressed = false
		ch.haveDeadline = false
	}

	return events
}

func (w *Worker) blinkPhase(now time.Time) bool {
	elapsed := now.Sub(w.epoch) % BlinkPeriod
	return elapsed < BlinkOnDuration
}

// writeOutput builds and sends one output report reflecting every
// channel's current indicator state (spec §4.G step 4).
func (w *Worker) writeOutput(st *deviceState, now time.Time) error {
	blink := w.blinkPhase(now)
	off := 0
	if w.reportIDByte {
		off = 1
	}
	buf := make([]byte, off+1)

	var indicators byte
	for i, ch := range st.channels {
		on := ch.streamState.Muted != (ch.menuOpen && blink)
		if on {
			indicators |= 1 << uint(i)
		}
	}
	buf[off] = indicators

	_, err := st.device.Write(buf)
	return err
}
