// Package menu implements the per-channel menu FSM (spec §3 "Menu", §4.J
// OpenMenu/MenuNext/MenuPrevious/MenuSelect).
package menu

import "github.com/agausmann/windowmaster/internal/wmid"

// BindingKind distinguishes the three forms a Binding can take (spec §3).
type BindingKind int

// Binding kinds.
const (
	// BindingDirect binds to a fixed stream.
	BindingDirect BindingKind = iota
	// BindingActiveWindow binds dynamically to whatever stream currently
	// owns window focus.
	BindingActiveWindow
	// BindingDefaultDevice binds dynamically to the current default audio
	// device.
	BindingDefaultDevice
)

// Binding is the tagged union described in spec §3.
type Binding struct {
	Kind   BindingKind
	Direct wmid.StreamId // valid only when Kind == BindingDirect
}

// DirectBinding constructs a Direct(s) binding.
func DirectBinding(s wmid.StreamId) Binding {
	return Binding{Kind: BindingDirect, Direct: s}
}

// ActiveWindowBinding constructs the ActiveWindow binding.
func ActiveWindowBinding() Binding {
	return Binding{Kind: BindingActiveWindow}
}

// DefaultDeviceBinding constructs the DefaultDevice binding.
func DefaultDeviceBinding() Binding {
	return Binding{Kind: BindingDefaultDevice}
}

// Option is one selectable entry in a Menu: a display name and an optional
// binding (None is represented by a nil Binding pointer).
type Option struct {
	Name    string
	Binding *Binding
}

// Menu is a transient per-channel list of selectable bindings, opened by a
// long press (spec §3 "Menu").
type Menu struct {
	Options      []Option
	CurrentIndex int
}

// New creates a Menu over the given options, with CurrentIndex at 0. The
// caller is responsible for building Options per spec §4.J's OpenMenu rule
// (fixed [None, DefaultDevice, ActiveWindow] prefix followed by all current
// Direct streams sorted alphabetically by name); this package only owns the
// FSM over an already-built option list.
func New(options []Option) *Menu {
	return &Menu{Options: options, CurrentIndex: 0}
}

// Next moves the selection forward by one, saturating at the last option
// (spec §9's menu-wrap open question: ship with saturating, never wrap).
func (m *Menu) Next() {
	if m.CurrentIndex < len(m.Options)-1 {
		m.CurrentIndex++
	}
}

// Previous moves the selection backward by one, saturating at the first
// option.
func (m *Menu) Previous() {
	if m.CurrentIndex > 0 {
		m.CurrentIndex--
	}
}

// Move applies steps forward moves (negative for backward), saturating at
// either end. It is the batched form of Next/Previous used when an encoder
// accumulates several steps between coordinator polls (spec §4.G: "MenuNext
// steps times").
func (m *Menu) Move(steps int) {
	for ; steps > 0; steps-- {
		m.Next()
	}
	for ; steps < 0; steps++ {
		m.Previous()
	}
}

// Current returns the currently selected option.
func (m *Menu) Current() Option {
	return m.Options[m.CurrentIndex]
}
