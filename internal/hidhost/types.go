// Package hidhost implements the host HID worker (spec §4.G): a
// dedicated-thread tick loop that enumerates WindowMaster devices with
// github.com/karalabe/hid, decodes their input reports into per-channel
// events, and drives their indicator output reports from coordinator
// state.
package hidhost

import "github.com/agausmann/windowmaster/internal/wmid"

// ChannelInputKind tags the variant of a ChannelInput.
type ChannelInputKind int

// ChannelInput kinds, matching spec §4.G step 3's emitted event set.
const (
	ChannelInputStepVolume ChannelInputKind = iota
	ChannelInputOpenMenu
	ChannelInputCloseMenu
	ChannelInputMenuNext
	ChannelInputMenuPrevious
	ChannelInputMenuSelect
	ChannelInputToggleMuted
)

// ChannelInput is one event decoded from a device's input report, destined
// for the coordinator.
type ChannelInput struct {
	Channel wmid.ChannelId
	Kind    ChannelInputKind
	Steps   int // ChannelInputStepVolume, ChannelInputMenuNext, ChannelInputMenuPrevious
}

// ChannelOutputKind tags the variant of a ChannelOutput.
type ChannelOutputKind int

// ChannelOutput kinds, matching spec §4.G step 2's drained queue.
const (
	ChannelOutputStateChanged ChannelOutputKind = iota
	ChannelOutputMenuOpened
	ChannelOutputMenuClosed
)

// ChannelOutput is a coordinator-issued update to a channel's local state
// mirror, consumed by the worker each tick to decide indicator output.
type ChannelOutput struct {
	Channel wmid.ChannelId
	Kind    ChannelOutputKind
	State   wmid.StreamState // ChannelOutputStateChanged
}

// EventKind tags the variant of an Event emitted upward by the worker.
type EventKind int

// Event kinds, matching spec §4.G step 1's enumeration events plus step 3's
// per-channel input events.
const (
	EventDeviceAdded EventKind = iota
	EventDeviceRemoved
	EventChannelInput
)

// Event is the sum type the worker pushes to the coordinator.
type Event struct {
	Kind   EventKind
	Device wmid.DeviceId
	Info   wmid.DeviceInfo // EventDeviceAdded
	Input  ChannelInput    // EventChannelInput
}
