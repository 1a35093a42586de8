// Package audio defines the host audio adapter contract (spec §4.H): the
// event/control sum types exchanged with the coordinator, an unbounded-queue
// marshaling adapter for callback-threaded backends, and one real backend
// per supported platform behind build tags.
package audio

import "github.com/agausmann/windowmaster/internal/wmid"

// VolumeStepSize is the scalar volume delta applied per StepVolume(1),
// grounded in the original backend/windows/audio.rs's named step constant
// rather than spec.md's bare "2%" literal (see SUPPLEMENTED FEATURES).
const VolumeStepSize = 0.02

// EventKind tags the variant of an Event.
type EventKind int

// Event kinds, matching spec §4.H's AudioEvent cases.
const (
	EventStreamOpened EventKind = iota
	EventStreamClosed
	EventStreamStateChanged
	EventWindowFocusChanged
	EventDefaultDeviceChanged
)

// Event is the sum type emitted by a Backend and consumed by the
// coordinator. Only the fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	// EventStreamOpened
	StreamId wmid.StreamId
	Info     wmid.StreamInfo

	// EventStreamClosed, EventStreamStateChanged: StreamId above plus
	State wmid.StreamState

	// EventWindowFocusChanged, EventDefaultDeviceChanged: nil means "no
	// stream currently holds the slot".
	FocusStream *wmid.StreamId
}

// StreamOpened builds an EventStreamOpened event.
func StreamOpened(id wmid.StreamId, info wmid.StreamInfo) Event {
	return Event{Kind: EventStreamOpened, StreamId: id, Info: info}
}

// StreamClosed builds an EventStreamClosed event.
func StreamClosed(id wmid.StreamId) Event {
	return Event{Kind: EventStreamClosed, StreamId: id}
}

// StreamStateChanged builds an EventStreamStateChanged event.
func StreamStateChanged(id wmid.StreamId, state wmid.StreamState) Event {
	return Event{Kind: EventStreamStateChanged, StreamId: id, State: state}
}

// WindowFocusChanged builds an EventWindowFocusChanged event. Pass nil when
// no window currently owns an audio session.
func WindowFocusChanged(id *wmid.StreamId) Event {
	return Event{Kind: EventWindowFocusChanged, FocusStream: id}
}

// DefaultDeviceChanged builds an EventDefaultDeviceChanged event. Pass nil
// when there is no current default device.
func DefaultDeviceChanged(id *wmid.StreamId) Event {
	return Event{Kind: EventDefaultDeviceChanged, FocusStream: id}
}

// ControlKind tags the variant of a StreamControl.
type ControlKind int

// Control kinds, matching spec §4.H's AudioControl::StreamControl cases.
const (
	ControlSetVolume ControlKind = iota
	ControlStepVolume
	ControlSetMuted
	ControlToggleMuted
)

// StreamControl is a command dispatched to a specific stream. Calls for the
// same StreamId are delivered to the backend in dispatch order; calls for
// distinct streams carry no ordering guarantee relative to each other.
type StreamControl struct {
	StreamId wmid.StreamId
	Kind     ControlKind
	Volume   float64 // ControlSetVolume: absolute scalar in [0,1]
	Steps    int     // ControlStepVolume: signed step count, scaled by VolumeStepSize
	Muted    bool    // ControlSetMuted
}

// SetVolume builds a ControlSetVolume command.
func SetVolume(id wmid.StreamId, level float64) StreamControl {
	return StreamControl{StreamId: id, Kind: ControlSetVolume, Volume: level}
}

// StepVolume builds a ControlStepVolume command.
func StepVolume(id wmid.StreamId, steps int) StreamControl {
	return StreamControl{StreamId: id, Kind: ControlStepVolume, Steps: steps}
}

// SetMuted builds a ControlSetMuted command.
func SetMuted(id wmid.StreamId, muted bool) StreamControl {
	return StreamControl{StreamId: id, Kind: ControlSetMuted, Muted: muted}
}

// ToggleMuted builds a ControlToggleMuted command.
func ToggleMuted(id wmid.StreamId) StreamControl {
	return StreamControl{StreamId: id, Kind: ControlToggleMuted}
}

// Apply computes the new state resulting from applying a control to a prior
// state, clamping volume to [0,1] (spec §4.H). It does not touch the
// backend; StubBackend uses it to maintain its in-memory stream state.
func (c StreamControl) Apply(prior wmid.StreamState) wmid.StreamState {
	switch c.Kind {
	case ControlSetVolume:
		prior.Volume = c.Volume
	case ControlStepVolume:
		prior.Volume += float64(c.Steps) * VolumeStepSize
	case ControlSetMuted:
		prior.Muted = c.Muted
	case ControlToggleMuted:
		prior.Muted = !prior.Muted
	}
	return prior.Clamp()
}
