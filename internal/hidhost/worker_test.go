package hidhost

import (
	"testing"
	"time"

	"github.com/agausmann/windowmaster/internal/wmid"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	reports [][]byte
	writes  [][]byte
	readErr error
}

func (d *fakeDevice) ReadTimeout(buf []byte, timeoutMS int) (int, error) {
	if d.readErr != nil {
		return 0, d.readErr
	}
	if len(d.reports) == 0 {
		return 0, nil
	}
	r := d.reports[0]
	d.reports = d.reports[1:]
	n := copy(buf, r)
	return n, nil
}

func (d *fakeDevice) Write(buf []byte) (int, error) {
	cp := append([]byte(nil), buf...)
	d.writes = append(d.writes, cp)
	return len(buf), nil
}

func (d *fakeDevice) Close() error { return nil }

type fakeSource struct {
	handles []DeviceHandle
}

func (s *fakeSource) Enumerate() ([]DeviceHandle, error) {
	return s.handles, nil
}

func rev1Handle(dev *fakeDevice, serial string) DeviceHandle {
	return DeviceHandle{
		VendorID:  0x1209,
		ProductID: 0x4573,
		Serial:    serial,
		open:      func() (HIDDevice, error) { return dev, nil },
	}
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestTickEmitsDeviceAddedForNewModel(t *testing.T) {
	dev := &fakeDevice{}
	src := &fakeSource{handles: []DeviceHandle{rev1Handle(dev, "abc")}}
	w := NewWorker(src, false, fixedClock(time.Unix(0, 0)))

	events := w.Tick()
	require.Len(t, events, 1)
	require.Equal(t, EventDeviceAdded, events[0].Kind)
	require.Equal(t, 6, events[0].Info.NumChannels)
}

func TestTickIgnoresUnknownVendorProduct(t *testing.T) {
	dev := &fakeDevice{}
	src := &fakeSource{handles: []DeviceHandle{{
		VendorID: 0xdead, ProductID: 0xbeef,
		open: func() (HIDDevice, error) { return dev, nil },
	}}}
	w := NewWorker(src, false, fixedClock(time.Unix(0, 0)))

	events := w.Tick()
	require.Empty(t, events)
}

func TestTickEmitsDeviceRemovedWhenDeviceVanishes(t *testing.T) {
	dev := &fakeDevice{}
	src := &fakeSource{handles: []DeviceHandle{rev1Handle(dev, "abc")}}
	w := NewWorker(src, false, fixedClock(time.Unix(0, 0)))
	w.Tick()

	src.handles = nil
	w.lastRefresh = time.Time{} // force a re-scan on the next tick
	events := w.Tick()
	require.Len(t, events, 1)
	require.Equal(t, EventDeviceRemoved, events[0].Kind)
}

// addedDevice drives one Tick that opens dev as channel 0's device and
// returns its DeviceId.
func addedDevice(t *testing.T, w *Worker, dev *fakeDevice) wmid.DeviceId {
	t.Helper()
	src := w.source.(*fakeSource)
	src.handles = []DeviceHandle{rev1Handle(dev, "abc")}
	events := w.Tick()
	require.Len(t, events, 1)
	return events[0].Device
}

func inputReport(encoders [6]int8, buttons byte) []byte {
	buf := make([]byte, 7)
	for i, e := range encoders {
		buf[i] = byte(e)
	}
	buf[6] = buttons
	return buf
}

func TestStepVolumeEmittedWhenMenuClosed(t *testing.T) {
	dev := &fakeDevice{}
	w := NewWorker(&fakeSource{}, false, fixedClock(time.Unix(0, 0)))
	deviceId := addedDevice(t, w, dev)

	dev.reports = [][]byte{inputReport([6]int8{3, 0, 0, 0, 0, 0}, 0)}
	events := w.Tick()

	require.Len(t, events, 1)
	require.Equal(t, EventChannelInput, events[0].Kind)
	require.Equal(t, ChannelInputStepVolume, events[0].Input.Kind)
	require.Equal(t, 3, events[0].Input.Steps)
	require.Equal(t, wmid.ChannelId{Device: deviceId, Index: 0}, events[0].Input.Channel)
}

func TestMenuPreviousEmittedWhenMenuOpen(t *testing.T) {
	dev := &fakeDevice{}
	w := NewWorker(&fakeSource{}, false, fixedClock(time.Unix(0, 0)))
	deviceId := addedDevice(t, w, dev)
	w.Enqueue(ChannelOutput{Channel: wmid.ChannelId{Device: deviceId, Index: 0}, Kind: ChannelOutputMenuOpened})

	dev.reports = [][]byte{inputReport([6]int8{-2, 0, 0, 0, 0, 0}, 0)}
	events := w.Tick()

	require.Len(t, events, 1)
	require.Equal(t, ChannelInputMenuPrevious, events[0].Input.Kind)
	require.Equal(t, 2, events[0].Input.Steps)
}

func TestTogglesMutedOnShortPressWhenMenuClosed(t *testing.T) {
	dev := &fakeDevice{}
	w := NewWorker(&fakeSource{}, false, fixedClock(time.Unix(0, 0)))
	addedDevice(t, w, dev)

	dev.reports = [][]byte{inputReport([6]int8{}, 1)}
	events := w.Tick()
	require.Empty(t, events, "press with no release yet should not emit")

	dev.reports = [][]byte{inputReport([6]int8{}, 0)}
	events = w.Tick()
	require.Len(t, events, 1)
	require.Equal(t, ChannelInputToggleMuted, events[0].Input.Kind)
}

func TestLongPressOpensMenuThenSuppressesSelectOnRelease(t *testing.T) {
	dev := &fakeDevice{}
	start := time.Unix(0, 0)
	clockTime := start
	w := NewWorker(&fakeSource{}, false, func() time.Time { return clockTime })
	addedDevice(t, w, dev)

	dev.reports = [][]byte{inputReport([6]int8{}, 1)}
	events := w.Tick()
	require.Empty(t, events)

	clockTime = start.Add(LongPressDuration)
	dev.reports = [][]byte{inputReport([6]int8{}, 1)}
	events = w.Tick()
	require.Len(t, events, 1)
	require.Equal(t, ChannelInputOpenMenu, events[0].Input.Kind)

	dev.reports = [][]byte{inputReport([6]int8{}, 0)}
	events = w.Tick()
	require.Empty(t, events, "release after a long press must not also emit MenuSelect")
}

func TestMenuSelectEmittedOnShortPressWhenMenuOpen(t *testing.T) {
	dev := &fakeDevice{}
	w := NewWorker(&fakeSource{}, false, fixedClock(time.Unix(0, 0)))
	deviceId := addedDevice(t, w, dev)
	w.Enqueue(ChannelOutput{Channel: wmid.ChannelId{Device: deviceId, Index: 0}, Kind: ChannelOutputMenuOpened})

	dev.reports = [][]byte{inputReport([6]int8{}, 1)}
	w.Tick()
	dev.reports = [][]byte{inputReport([6]int8{}, 0)}
	events := w.Tick()

	require.Len(t, events, 1)
	require.Equal(t, ChannelInputMenuSelect, events[0].Input.Kind)
}

func TestWriteOutputReflectsMutedState(t *testing.T) {
	dev := &fakeDevice{}
	w := NewWorker(&fakeSource{}, false, fixedClock(time.Unix(0, 0)))
	deviceId := addedDevice(t, w, dev)
	w.Enqueue(ChannelOutput{
		Channel: wmid.ChannelId{Device: deviceId, Index: 2},
		Kind:    ChannelOutputStateChanged,
		State:   wmid.StreamState{Muted: true},
	})

	dev.reports = [][]byte{inputReport([6]int8{}, 0)}
	w.Tick()

	require.Len(t, dev.writes, 1)
	require.Equal(t, byte(1<<2), dev.writes[0][0])
}

func TestWriteOutputBlinksWhileMenuOpen(t *testing.T) {
	dev := &fakeDevice{}
	epoch := time.Unix(0, 0)
	clockTime := epoch
	w := NewWorker(&fakeSource{}, false, func() time.Time { return clockTime })
	deviceId := addedDevice(t, w, dev)
	w.Enqueue(ChannelOutput{Channel: wmid.ChannelId{Device: deviceId, Index: 0}, Kind: ChannelOutputMenuOpened})

	clockTime = epoch.Add(100 * time.Millisecond) // inside the on-phase
	dev.reports = [][]byte{inputReport([6]int8{}, 0)}
	w.Tick()
	require.Equal(t, byte(1), dev.writes[len(dev.writes)-1][0], "menu open, blink on phase: indicator lit")

	clockTime = epoch.Add(600 * time.Millisecond) // outside the on-phase
	dev.reports = [][]byte{inputReport([6]int8{}, 0)}
	w.Tick()
	require.Equal(t, byte(0), dev.writes[len(dev.writes)-1][0], "menu open, blink off phase: indicator dark")
}

func TestDeviceDroppedOnReadError(t *testing.T) {
	dev := &fakeDevice{}
	w := NewWorker(&fakeSource{}, false, fixedClock(time.Unix(0, 0)))
	addedDevice(t, w, dev)
	dev.readErr = errBoom

	events := w.Tick()
	require.Len(t, events, 1)
	require.Equal(t, EventDeviceRemoved, events[0].Kind)

	// The registry should now be empty: a further tick (still inside the
	// refresh period, so no re-scan) polls nothing and produces no more
	// removal events.
	events = w.Tick()
	require.Empty(t, events)
}

var errBoom = &boomErr{}

type boomErr struct{}

func (*boomErr) Error() string { return "boom" }
