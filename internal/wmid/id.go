// Package wmid holds the identifier and message-value types shared by every
// other WindowMaster package: DeviceId, StreamId, ChannelId, StreamState,
// StreamInfo, and DeviceInfo.
package wmid

import "sync/atomic"

// DeviceId is a process-local, monotonically increasing identifier for a
// host-side HID device. It is never stable across process restarts and is
// never persisted.
type DeviceId uint64

// StreamId is a process-local, monotonically increasing identifier for an
// audio stream (device endpoint or application session).
type StreamId uint64

// deviceCounter and streamCounter back DeviceId and StreamId generation.
// Overflow of either is a fatal invariant violation (spec §7): rather than
// returning an error that every caller would have to thread through, the
// generators panic, matching the teacher's own treatment of counter
// exhaustion in host.allocateAddress (there bounded to uint8 and returning a
// sentinel; here unbounded but fatal on wraparound since a wraparound can
// only mean an effectively infinite number of devices or streams has been
// seen, which is itself a bug).
var (
	deviceCounter atomic.Uint64
	streamCounter atomic.Uint64
)

// NextDeviceId returns the next DeviceId from the process-wide counter.
func NextDeviceId() DeviceId {
	id := deviceCounter.Add(1)
	if id == 0 {
		panic("wmid: device id counter overflow")
	}
	return DeviceId(id)
}

// NextStreamId returns the next StreamId from the process-wide counter.
func NextStreamId() StreamId {
	id := streamCounter.Add(1)
	if id == 0 {
		panic("wmid: stream id counter overflow")
	}
	return StreamId(id)
}

// ChannelId identifies one channel (encoder/button/indicator triple) on a
// specific host-visible device.
type ChannelId struct {
	Device DeviceId
	Index  int
}

// StreamState is the volume/mute pair tracked for every audio stream.
type StreamState struct {
	Volume float64 // in [0, 1]
	Muted  bool
}

// DefaultStreamState is the value evaluated for unbound or dangling
// bindings.
var DefaultStreamState = StreamState{Volume: 0, Muted: false}

// Clamp returns s with Volume clamped to [0, 1].
func (s StreamState) Clamp() StreamState {
	switch {
	case s.Volume < 0:
		s.Volume = 0
	case s.Volume > 1:
		s.Volume = 1
	}
	return s
}

// StreamInfo describes a stream at the time it is opened.
type StreamInfo struct {
	Name         string
	InitialState StreamState
	// Parent, if set, indicates this stream is a session hosted by the
	// device stream identified by Parent.
	Parent *StreamId
}

// DeviceInfo describes a host-visible HID device at the time it is added.
type DeviceInfo struct {
	Name        string
	NumChannels int
}
