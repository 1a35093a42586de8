// Package quad implements the device-side quadrature decoder (spec §4.A).
package quad

// Step is the result of one decoder poll.
type Step int

// Step values.
const (
	// None means no detent was crossed since the last poll (or this is the
	// first poll and the decoder has no prior index to compare against).
	None Step = iota
	// Forward means one detent forward.
	Forward
	// Backward means one detent backward.
	Backward
	// Skipped means two indices were crossed in one poll; direction is
	// ambiguous and no step is attributed.
	Skipped
)

// Value returns the signed increment this step contributes to an encoder
// accumulator: +1 for Forward, -1 for Backward, 0 otherwise.
func (s Step) Value() int {
	switch s {
	case Forward:
		return 1
	case Backward:
		return -1
	default:
		return 0
	}
}

func (s Step) String() string {
	switch s {
	case None:
		return "none"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Skipped:
		return "skipped"
	default:
		return "invalid"
	}
}

// index maps one (a, b) phase sample to its 2-bit Gray code position.
func index(a, b bool) int {
	switch {
	case !a && !b:
		return 0
	case a && !b:
		return 1
	case a && b:
		return 2
	default: // !a && b
		return 3
	}
}

// Decoder tracks quadrature state across polls of a single encoder's two
// phase pins. The zero value is ready to use.
type Decoder struct {
	oldIndex    int
	haveOldIndex bool
}

// Poll computes the next Step from a fresh pair of phase samples. The new
// index is always recorded, even when the result is Skipped, so a single
// skipped tick does not desynchronize subsequent polls.
func (d *Decoder) Poll(a, b bool) Step {
	newIndex := index(a, b)

	var step Step
	if !d.haveOldIndex {
		step = None
	} else {
		switch delta := (newIndex + 4 - d.oldIndex) % 4; delta {
		case 0:
			step = None
		case 1:
			step = Forward
		case 2:
			step = Skipped
		case 3:
			step = Backward
		}
	}

	d.oldIndex = newIndex
	d.haveOldIndex = true
	return step
}

// Reset clears the decoder's stored index, as if it had never been polled.
func (d *Decoder) Reset() {
	d.haveOldIndex = false
}
