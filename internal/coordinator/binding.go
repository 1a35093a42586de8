package coordinator

import (
	"github.com/agausmann/windowmaster/internal/menu"
	"github.com/agausmann/windowmaster/internal/wmid"
)

// resolve turns a Binding into the StreamId it currently names, or false if
// it names no live stream: Direct(s) resolves only while s is still open;
// ActiveWindow/DefaultDevice resolve only while their dynamic slot points at
// an open stream (spec §4.J "Evaluation of a binding").
func (r *Runtime) resolve(b menu.Binding) (wmid.StreamId, bool) {
	var candidate *wmid.StreamId
	switch b.Kind {
	case menu.BindingDirect:
		id := b.Direct
		candidate = &id
	case menu.BindingActiveWindow:
		candidate = r.windowFocus
	case menu.BindingDefaultDevice:
		candidate = r.defaultDevice
	}
	if candidate == nil {
		return 0, false
	}
	if _, ok := r.streams.state(*candidate); !ok {
		return 0, false
	}
	return *candidate, true
}

// evaluate returns the StreamState a Binding currently names, or
// wmid.DefaultStreamState for a dangling binding (spec §3 "Stream
// registry": "dangling bindings yield StreamState::default()").
func (r *Runtime) evaluate(b menu.Binding) wmid.StreamState {
	id, ok := r.resolve(b)
	if !ok {
		return wmid.DefaultStreamState
	}
	state, _ := r.streams.state(id)
	return state
}
