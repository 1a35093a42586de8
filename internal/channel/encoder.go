package channel

import "github.com/agausmann/windowmaster/internal/quad"

// Pin reads a single GPIO input, shared by both phase lines of an encoder.
type Pin interface {
	IsHigh() (bool, error)
}

// Encoder combines two phase pins with a quad.Decoder.
type Encoder struct {
	PinA, PinB Pin
	decoder    quad.Decoder
}

// NewEncoder constructs an Encoder over the given phase pins.
func NewEncoder(pinA, pinB Pin) *Encoder {
	return &Encoder{PinA: pinA, PinB: pinB}
}

// Poll samples both phase pins and advances the decoder. A read failure on
// either pin is propagated without updating decoder state, per spec §4.A
// ("pin-read failures are propagated").
func (e *Encoder) Poll() (quad.Step, error) {
	a, err := e.PinA.IsHigh()
	if err != nil {
		return quad.None, err
	}
	b, err := e.PinB.IsHigh()
	if err != nil {
		return quad.None, err
	}
	return e.decoder.Poll(a, b), nil
}

// disabledEncoder is used for channels with no physical encoder wired; it
// never errors and always reports no step.
type disabledEncoder struct{}

func (disabledEncoder) Poll() (quad.Step, error) { return quad.None, nil }

// DisabledEncoder is a no-op Encoder substitute.
var DisabledEncoder = encoderSource(disabledEncoder{})

// encoderSource is the interface Channel polls, satisfied by *Encoder and
// disabledEncoder.
type encoderSource interface {
	Poll() (quad.Step, error)
}
