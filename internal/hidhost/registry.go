package hidhost

import (
	"time"

	"github.com/agausmann/windowmaster/internal/wmid"
)

// channelState is the worker's local mirror of one channel's coordinator
// state, plus the button timing state needed to detect long presses (spec
// §4.G step 3).
type channelState struct {
	streamState wmid.StreamState
	menuOpen    bool

	pressed           bool
	longPressed       bool
	haveDeadline      bool
	longPressDeadline time.Time
}

// deviceState tracks one open device between ticks.
type deviceState struct {
	id       wmid.DeviceId
	handle   DeviceHandle
	device   HIDDevice
	model    DeviceModel
	channels []channelState
}

// registry owns every currently-open device, keyed by DeviceKey so repeat
// enumeration ticks can tell "still here" from "newly appeared" (spec
// §4.G step 1).
type registry struct {
	byKey    map[DeviceKey]*deviceState
	byDevice map[wmid.DeviceId]*deviceState
}

func newRegistry() *registry {
	return &registry{
		byKey:    make(map[DeviceKey]*deviceState),
		byDevice: make(map[wmid.DeviceId]*deviceState),
	}
}

func (r *registry) add(key DeviceKey, st *deviceState) {
	r.byKey[key] = st
	r.byDevice[st.id] = st
}

func (r *registry) remove(key DeviceKey) (*deviceState, bool) {
	st, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	delete(r.byKey, key)
	delete(r.byDevice, st.id)
	return st, true
}

func (r *registry) get(key DeviceKey) (*deviceState, bool) {
	st, ok := r.byKey[key]
	return st, ok
}

func (r *registry) byId(id wmid.DeviceId) (*deviceState, bool) {
	st, ok := r.byDevice[id]
	return st, ok
}

func (r *registry) keys() []DeviceKey {
	keys := make([]DeviceKey, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	return keys
}
