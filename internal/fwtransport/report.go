// Package fwtransport implements the device-side HID transport (spec §4.E):
// a fixed report layout exchanged with the host over USB HID, modeled after
// the teacher's device/class/hid report-buffer shape but narrowed to
// WindowMaster's fixed 6-channel report instead of a generic HID class
// driver.
package fwtransport

import "github.com/agausmann/windowmaster/pkg/wmerr"

// NumChannels is the number of encoder/button/indicator channels carried in
// a Rev1 report.
const NumChannels = 6

// InputReportSize is the wire size of an input report: six signed encoder
// deltas plus one packed button-state byte.
const InputReportSize = NumChannels + 1

// OutputReportSize is the wire size of an output report: one packed
// indicator-state byte.
const OutputReportSize = 1

// InputReport is the device->host report (spec §3, §6): six signed 8-bit
// encoder deltas and one byte of per-channel pressed flags (bit i is
// channel i, LSB first).
type InputReport struct {
	Encoders [NumChannels]int8
	Buttons  uint8
}

// Marshal writes r into buf in wire order. buf must be at least
// InputReportSize bytes.
func (r *InputReport) Marshal(buf []byte) error {
	if len(buf) < InputReportSize {
		return wmerr.ErrReportTooShort
	}
	for i, e := range r.Encoders {
		buf[i] = byte(e)
	}
	buf[NumChannels] = r.Buttons
	return nil
}

// Unmarshal reads r from buf in wire order.
func (r *InputReport) Unmarshal(buf []byte) error {
	if len(buf) < InputReportSize {
		return wmerr.ErrReportTooShort
	}
	for i := range r.Encoders {
		r.Encoders[i] = int8(buf[i])
	}
	r.Buttons = buf[NumChannels]
	return nil
}

// ButtonPressed reports whether channel i's button bit is set.
func (r *InputReport) ButtonPressed(i int) bool {
	return r.Buttons&(1<<uint(i)) != 0
}

// SetButton sets or clears channel i's button bit.
func (r *InputReport) SetButton(i int, pressed bool) {
	if pressed {
		r.Buttons |= 1 << uint(i)
	} else {
		r.Buttons &^= 1 << uint(i)
	}
}

// AddEncoder adds delta to channel i's accumulator with saturating int8
// arithmetic, matching spec §4.E's update_encoder.
func (r *InputReport) AddEncoder(i int, delta int) {
	sum := int(r.Encoders[i]) + delta
	switch {
	case sum > 127:
		sum = 127
	case sum < -128:
		sum = -128
	}
	r.Encoders[i] = int8(sum)
}

// ClearEncoders zeroes every encoder accumulator, leaving button state
// untouched. Called after a successful PushInput (spec §4.E, §8 property 2).
func (r *InputReport) ClearEncoders() {
	for i := range r.Encoders {
		r.Encoders[i] = 0
	}
}

// OutputReport is the host->device report: one byte whose low NumChannels
// bits are per-channel indicator-on flags.
type OutputReport struct {
	Indicators uint8
}

// IndicatorOn reports whether channel i's indicator bit is set.
func (r OutputReport) IndicatorOn(i int) bool {
	return r.Indicators&(1<<uint(i)) != 0
}

// Marshal writes r into buf in wire order. If reportIDByte is true, buf[0]
// is reserved for a leading report-ID byte (left untouched; callers fill it
// in separately) and the indicator byte is written at buf[1]. buf must be
// at least OutputReportSize (+1 if reportIDByte) bytes.
func (r OutputReport) Marshal(buf []byte, reportIDByte bool) error {
	off := 0
	if reportIDByte {
		off = 1
	}
	if len(buf) < off+OutputReportSize {
		return wmerr.ErrReportTooShort
	}
	buf[off] = r.Indicators
	return nil
}

// SetIndicator sets or clears channel i's indicator bit.
func (r *OutputReport) SetIndicator(i int, on bool) {
	if on {
		r.Indicators |= 1 << uint(i)
	} else {
		r.Indicators &^= 1 << uint(i)
	}
}

// Unmarshal reads r from buf. If reportIDByte is true, buf[0] is a leading
// report-ID byte to be skipped (spec §9's report-ID open question); the
// semantic bits always occupy the low NumChannels bits of the final byte
// consumed.
func (r *OutputReport) Unmarshal(buf []byte, reportIDByte bool) error {
	off := 0
	if reportIDByte {
		off = 1
	}
	if len(buf) < off+OutputReportSize {
		return wmerr.ErrReportTooShort
	}
	r.Indicators = buf[off]
	return nil
}
