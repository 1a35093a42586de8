package fwtransport

import "github.com/agausmann/windowmaster/pkg/wmerr"

// HID is the opaque USB HID transport primitive the device main loop
// drives. A real board implements this over its USB peripheral's HID
// endpoints; spec §1 treats that hardware glue as an external collaborator,
// so HID only has to express push/pull framing, not USB protocol detail.
type HID interface {
	// PushReport attempts to send buf (InputReportSize bytes) as an input
	// report. It returns true if the host accepted it this call; false
	// means try again next tick (spec §4.E "USB push/pull transient").
	PushReport(buf []byte) (bool, error)

	// PullReport attempts to read one pending output report into buf
	// (capacity at least OutputReportSize, +1 if ReportIDByte). It returns
	// the number of bytes read, or 0 if none were pending.
	PullReport(buf []byte) (int, error)
}

// Transport manages the staged input report and the last received output
// report for one device, on top of an opaque HID primitive.
type Transport struct {
	hid          HID
	reportIDByte bool

	staged InputReport
	output OutputReport

	// pullScratch is PullOutput's read buffer, sized for the largest
	// possible output report (with report-ID byte) so polling never
	// allocates (spec §1 "allocation-free polling loop").
	pullScratch [OutputReportSize + 1]byte
}

// New creates a Transport over hid. reportIDByte selects whether
// PullReport's buffer carries a leading report-ID byte that must be
// skipped before the semantic indicator bits (spec §9).
func New(hid HID, reportIDByte bool) *Transport {
	return &Transport{hid: hid, reportIDByte: reportIDByte}
}

// UpdateEncoder adds step's value to channel i's staged accumulator with
// saturating arithmetic.
func (t *Transport) UpdateEncoder(i int, value int) error {
	if i < 0 || i >= NumChannels {
		return wmerr.ErrChannelIndexRange
	}
	t.staged.AddEncoder(i, value)
	return nil
}

// UpdateButton sets or clears channel i's button bit in the staged report.
func (t *Transport) UpdateButton(i int, pressed bool) error {
	if i < 0 || i >= NumChannels {
		return wmerr.ErrChannelIndexRange
	}
	t.staged.SetButton(i, pressed)
	return nil
}

// PushInput attempts to send the staged input report. On success, the
// staged encoder deltas are cleared; button levels are left as-is since
// they are level, not edge, state (spec §3, §8 property 2).
func (t *Transport) PushInput() (bool, error) {
	var buf [InputReportSize]byte
	if err := t.staged.Marshal(buf[:]); err != nil {
		return false, err
	}
	ok, err := t.hid.PushReport(buf[:])
	if err != nil {
		return false, err
	}
	if ok {
		t.staged.ClearEncoders()
	}
	return ok, nil
}

// PullOutput attempts a nonblocking read of a pending output report and, if
// one arrived, updates the stored indicator mask.
func (t *Transport) PullOutput() (bool, error) {
	size := OutputReportSize
	if t.reportIDByte {
		size++
	}
	buf := t.pullScratch[:size]
	n, err := t.hid.PullReport(buf)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if err := t.output.Unmarshal(buf[:n], t.reportIDByte); err != nil {
		return false, err
	}
	return true, nil
}

// IsIndicatorOn reports channel i's most recently received indicator bit.
func (t *Transport) IsIndicatorOn(i int) bool {
	return t.output.IndicatorOn(i)
}

// Poll drains any pending output report. It is the transport-level
// counterpart of spec §4.F's final `transport.poll()` step.
func (t *Transport) Poll() error {
	_, err := t.PullOutput()
	return err
}
