// Package channel implements the device-side channel aggregate (spec §4.D):
// a fixed binding of one quadrature decoder, one button, and one indicator,
// with no behavior of its own beyond exposing the three.
package channel

import (
	"github.com/agausmann/windowmaster/internal/button"
	"github.com/agausmann/windowmaster/internal/indicator"
)

// Channel binds one encoder, one button source, and one indicator sink.
// Hardware revisions that leave a channel unpopulated use DisabledEncoder,
// button.Disabled, and/or indicator.Disabled so the device main loop can
// poll all six channels uniformly.
type Channel struct {
	Encoder   encoderSource
	Button    button.Source
	Indicator indicator.Sink
}

// New constructs a populated channel.
func New(enc *Encoder, btn button.Source, ind indicator.Sink) *Channel {
	return &Channel{Encoder: enc, Button: btn, Indicator: ind}
}

// NewUnpopulated constructs a channel with disabled encoder, button, and
// indicator, for a hardware revision that does not wire this channel index.
func NewUnpopulated() *Channel {
	return &Channel{Encoder: DisabledEncoder, Button: button.Disabled{}, Indicator: indicator.Disabled{}}
}
