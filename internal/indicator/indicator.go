// Package indicator implements the device-side indicator driver (spec
// §4.C): an on/off output with configurable active-high or active-low
// polarity, always initialized to the off state.
package indicator

// Pin drives a single GPIO output.
type Pin interface {
	// SetHigh sets the electrical level of the pin.
	SetHigh(bool) error
}

// Sink is the interface channel.Channel uses to drive an indicator,
// satisfied by both *Indicator and Disabled.
type Sink interface {
	On() error
	Off() error
	IsOn() bool
}

// Indicator drives one GPIO output as an on/off indicator.
type Indicator struct {
	pin        Pin
	activeLow  bool
	on         bool
}

// New creates an Indicator driving pin, with the given polarity, and
// immediately drives the pin to the off state.
func New(pin Pin, activeLow bool) (*Indicator, error) {
	ind := &Indicator{pin: pin, activeLow: activeLow}
	if err := ind.Off(); err != nil {
		return nil, err
	}
	return ind, nil
}

// On turns the indicator on.
func (i *Indicator) On() error {
	if err := i.pin.SetHigh(!i.activeLow); err != nil {
		return err
	}
	i.on = true
	return nil
}

// Off turns the indicator off.
func (i *Indicator) Off() error {
	if err := i.pin.SetHigh(i.activeLow); err != nil {
		return err
	}
	i.on = false
	return nil
}

// IsOn reports the last commanded state.
func (i *Indicator) IsOn() bool {
	return i.on
}

// Disabled is an Indicator stand-in for channels with no physical
// indicator. All operations are no-ops.
type Disabled struct{}

// On is a no-op.
func (Disabled) On() error { return nil }

// Off is a no-op.
func (Disabled) Off() error { return nil }

// IsOn always reports false.
func (Disabled) IsOn() bool { return false }
