// Package button implements the device-side edge-detected button (spec
// §4.B): active-low, debounce-free (the caller is expected to poll at a
// steady interval), with an edge flag distinguishing a level change from a
// steady level.
package button

// Pin reads the instantaneous level of a single GPIO input.
type Pin interface {
	// IsHigh returns the current electrical level of the pin, or an error
	// if the read failed.
	IsHigh() (bool, error)
}

// Source is the interface channel.Channel uses to poll a button, satisfied
// by both *Button and Disabled so the channel aggregate is uniform across
// populated and unpopulated hardware revisions.
type Source interface {
	Poll() (pressed, edge bool, err error)
	Pressed() bool
}

// Button tracks the level-based (not debounced) pressed state of one button and
// reports whether it changed since the last poll.
type Button struct {
	pin         Pin
	pressed     bool
	havePressed bool
}

// New creates a Button reading the given active-low pin.
func New(pin Pin) *Button {
	return &Button{pin: pin}
}

// Poll samples the pin and returns the current pressed level along with
// whether it differs from the level recorded on the previous poll. The
// first poll always reports edge=false regardless of level, since there is
// no prior level to compare against.
func (b *Button) Poll() (pressed, edge bool, err error) {
	high, err := b.pin.IsHigh()
	if err != nil {
		return b.pressed, false, err
	}

	pressed = !high // active-low
	edge = b.havePressed && pressed != b.pressed
	b.pressed = pressed
	b.havePressed = true
	return pressed, edge, nil
}

// Pressed returns the most recently recorded pressed level without polling.
func (b *Button) Pressed() bool {
	return b.pressed
}

// Disabled is a Button stand-in for channels with no physical button. It
// always reports not-pressed, no edge, and never errors — per spec §9's
// resolution of the button-polarity-on-disabled-channels open question.
type Disabled struct{}

// Poll always reports not-pressed with no edge and no error.
func (Disabled) Poll() (pressed, edge bool, err error) {
	return false, false, nil
}

// Pressed always reports false.
func (Disabled) Pressed() bool {
	return false
}
