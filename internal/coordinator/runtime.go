// Package coordinator implements the host coordinator runtime (spec §4.J):
// a single-threaded event-sourced loop that fans in audio and HID events,
// owns the binding graph and per-channel menus, and fans out stream
// controls and channel output updates. Grounded on
// original_source/host-controller/src/core.rs's CoreRuntime::run
// race-select loop and the single-goroutine serialized dispatcher shape in
// other_examples' macaudio Dispatcher.
package coordinator

import (
	"context"
	"sort"

	"github.com/agausmann/windowmaster/internal/audio"
	"github.com/agausmann/windowmaster/internal/hidhost"
	"github.com/agausmann/windowmaster/internal/menu"
	"github.com/agausmann/windowmaster/internal/wmid"
	"github.com/agausmann/windowmaster/pkg/wmlog"
)

// Runtime owns the stream registry, binding graph, and every open menu. It
// is not safe for concurrent use; Run is its only entry point and must be
// called from a single goroutine (spec §5 "Coordinator task").
type Runtime struct {
	audioIn  <-chan audio.Event
	hidIn    <-chan hidhost.Event
	audioOut chan<- audio.StreamControl
	hidOut   chan<- hidhost.ChannelOutput

	streams       *streamRegistry
	graph         *graph
	menus         map[wmid.ChannelId]*menu.Menu
	windowFocus   *wmid.StreamId
	defaultDevice *wmid.StreamId
}

// NewRuntime wires a Runtime to its four message-passed endpoints: two
// inbound (from the audio adapter, from the HID worker) and two outbound
// (to the audio adapter, to the HID worker).
func NewRuntime(
	audioIn <-chan audio.Event,
	hidIn <-chan hidhost.Event,
	audioOut chan<- audio.StreamControl,
	hidOut chan<- hidhost.ChannelOutput,
) *Runtime {
	return &Runtime{
		audioIn:  audioIn,
		hidIn:    hidIn,
		audioOut: audioOut,
		hidOut:   hidOut,
		streams:  newStreamRegistry(),
		graph:    newGraph(),
		menus:    make(map[wmid.ChannelId]*menu.Menu),
	}
}

// Run races the next event from either inbound channel to completion,
// one at a time, until ctx is cancelled or both inbound channels close
// (spec §4.J "race-select the next event"; §5 "Cancellation").
func (r *Runtime) Run(ctx context.Context) error {
	audioIn := r.audioIn
	hidIn := r.hidIn

	for {
		if audioIn == nil && hidIn == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-audioIn:
			if !ok {
				audioIn = nil
				continue
			}
			r.handleAudioEvent(ev)

		case ev, ok := <-hidIn:
			if !ok {
				hidIn = nil
				continue
			}
			r.handleHIDEvent(ev)
		}
	}
}

func (r *Runtime) handleAudioEvent(ev audio.Event) {
	switch ev.Kind {
	case audio.EventStreamOpened:
		r.streams.open(ev.StreamId, ev.Info)

	case audio.EventStreamClosed:
		r.streams.close(ev.StreamId)
		r.updateChannelsBound(menu.DirectBinding(ev.StreamId))

	case audio.EventStreamStateChanged:
		r.streams.setState(ev.StreamId, ev.State)
		r.updateChannelsBound(menu.DirectBinding(ev.StreamId))
		if r.windowFocus != nil && *r.windowFocus == ev.StreamId {
			r.updateChannelsBound(menu.ActiveWindowBinding())
		}
		if r.defaultDevice != nil && *r.defaultDevice == ev.StreamId {
			r.updateChannelsBound(menu.DefaultDeviceBinding())
		}

	case audio.EventWindowFocusChanged:
		r.windowFocus = ev.FocusStream
		r.updateChannelsBound(menu.ActiveWindowBinding())

	case audio.EventDefaultDeviceChanged:
		r.defaultDevice = ev.FocusStream
		r.updateChannelsBound(menu.DefaultDeviceBinding())
	}
}

// updateChannelsBound pushes a fresh ChannelOutputStateChanged to every
// channel currently bound to b (spec §4.J's per-event fan-out rules).
func (r *Runtime) updateChannelsBound(b menu.Binding) {
	state := r.evaluate(b)
	for _, ch := range r.graph.channelsBoundTo(b) {
		r.hidOut <- hidhost.ChannelOutput{
			Channel: ch,
			Kind:    hidhost.ChannelOutputStateChanged,
			State:   state,
		}
	}
}

func (r *Runtime) handleHIDEvent(ev hidhost.Event) {
	switch ev.Kind {
	case hidhost.EventDeviceAdded:
		wmlog.Info(wmlog.ComponentCoordinator, "device added", "device", ev.Device, "name", ev.Info.Name)
	case hidhost.EventDeviceRemoved:
		wmlog.Info(wmlog.ComponentCoordinator, "device removed", "device", ev.Device)
	case hidhost.EventChannelInput:
		r.handleChannelInput(ev.Input)
	}
}

func (r *Runtime) handleChannelInput(input hidhost.ChannelInput) {
	ch := input.Channel
	switch input.Kind {
	case hidhost.ChannelInputStepVolume:
		steps := input.Steps
		r.dispatchControl(ch, func(sid wmid.StreamId) audio.StreamControl {
			return audio.StepVolume(sid, steps)
		})

	case hidhost.ChannelInputToggleMuted:
		r.dispatchControl(ch, func(sid wmid.StreamId) audio.StreamControl {
			return audio.ToggleMuted(sid)
		})

	case hidhost.ChannelInputOpenMenu:
		r.openMenu(ch)

	case hidhost.ChannelInputCloseMenu:
		r.closeMenu(ch)

	case hidhost.ChannelInputMenuNext:
		if m, ok := r.menus[ch]; ok {
			m.Move(input.Steps)
		}

	case hidhost.ChannelInputMenuPrevious:
		if m, ok := r.menus[ch]; ok {
			m.Move(-input.Steps)
		}

	case hidhost.ChannelInputMenuSelect:
		r.selectMenu(ch)
	}
}

// dispatchControl resolves every binding on ch to a live StreamId, dropping
// unresolved (dangling) ones, and sends build(sid) for each (spec §4.J
// "Volume/mute inputs iterate the neighbors of ChannelId ... dropping
// unresolved ones").
func (r *Runtime) dispatchControl(ch wmid.ChannelId, build func(wmid.StreamId) audio.StreamControl) {
	for _, b := range r.graph.bindingsOf(ch) {
		sid, ok := r.resolve(b)
		if !ok {
			continue
		}
		r.audioOut <- build(sid)
	}
}

// openMenu builds the fixed [None, DefaultDevice, ActiveWindow] prefix
// followed by every open stream's Direct binding sorted alphabetically by
// name, and opens it for ch (spec §4.J "OpenMenu").
func (r *Runtime) openMenu(ch wmid.ChannelId) {
	options := []menu.Option{{Name: "None", Binding: nil}}

	defaultBinding := menu.DefaultDeviceBinding()
	options = append(options, menu.Option{Name: "Default Device", Binding: &defaultBinding})

	activeBinding := menu.ActiveWindowBinding()
	options = append(options, menu.Option{Name: "Active Window", Binding: &activeBinding})

	names := r.streams.names()
	sort.Slice(names, func(i, j int) bool { return names[i].name < names[j].name })
	for _, sn := range names {
		b := menu.DirectBinding(sn.id)
		options = append(options, menu.Option{Name: sn.name, Binding: &b})
	}

	r.menus[ch] = menu.New(options)
	r.hidOut <- hidhost.ChannelOutput{Channel: ch, Kind: hidhost.ChannelOutputMenuOpened}
}

func (r *Runtime) closeMenu(ch wmid.ChannelId) {
	delete(r.menus, ch)
	r.hidOut <- hidhost.ChannelOutput{Channel: ch, Kind: hidhost.ChannelOutputMenuClosed}
}

// selectMenu applies the menu's current option as ch's new (sole) binding,
// closes the menu, and immediately reports the resolved state (spec §4.J
// "MenuSelect").
func (r *Runtime) selectMenu(ch wmid.ChannelId) {
	m, ok := r.menus[ch]
	if !ok {
		return
	}
	option := m.Current()

	r.graph.clearBindings(ch)
	state := wmid.DefaultStreamState
	if option.Binding != nil {
		r.graph.bind(ch, *option.Binding)
		state = r.evaluate(*option.Binding)
	}

	delete(r.menus, ch)
	r.hidOut <- hidhost.ChannelOutput{Channel: ch, Kind: hidhost.ChannelOutputMenuClosed}
	r.hidOut <- hidhost.ChannelOutput{Channel: ch, Kind: hidhost.ChannelOutputStateChanged, State: state}
}
