// Package simtransport is an in-memory fwtransport.HID used by the
// internal/fwtransport and internal/firmware tests. It plays the same
// role the teacher's device/hal/fifo.HAL plays for the generic USB stack —
// a fully software substitute for the hardware transport, behind the same
// interface a real board implements — but is a plain mutex-guarded buffer
// pair instead of named pipes, since WindowMaster only ever needs to wire
// this into single-process Go tests, not a separate host process.
package simtransport

import "sync"

// Sim is a loopback fwtransport.HID: input reports pushed by the device
// side accumulate in a queue readable by ReadInput, and output reports
// written by WriteOutput are delivered to the device side's next
// PullReport.
type Sim struct {
	mu sync.Mutex

	pushAccepts bool
	inputs      [][]byte
	pendingOut  [][]byte
}

// New creates a Sim that accepts every PushReport by default.
func New() *Sim {
	return &Sim{pushAccepts: true}
}

// SetAcceptPush controls whether PushReport succeeds, simulating a
// transient USB busy condition (spec §7 "USB push/pull transient").
func (s *Sim) SetAcceptPush(accept bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushAccepts = accept
}

// PushReport implements fwtransport.HID.
func (s *Sim) PushReport(buf []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pushAccepts {
		return false, nil
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	s.inputs = append(s.inputs, cp)
	return true, nil
}

// PullReport implements fwtransport.HID: it returns the oldest queued
// output report, or 0 if none is pending.
func (s *Sim) PullReport(buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pendingOut) == 0 {
		return 0, nil
	}
	next := s.pendingOut[0]
	s.pendingOut = s.pendingOut[1:]
	n := copy(buf, next)
	return n, nil
}

// WriteOutput queues an output report for the device side to pull, as a
// host would after sending a SET_REPORT / interrupt OUT transfer.
func (s *Sim) WriteOutput(buf []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(buf))
	copy(cp, buf)
	s.pendingOut = append(s.pendingOut, cp)
}

// ReadInput dequeues the oldest input report pushed by the device side, or
// reports ok=false if none are pending, as a host reading interrupt IN
// transfers would observe.
func (s *Sim) ReadInput() (report []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.inputs) == 0 {
		return nil, false
	}
	next := s.inputs[0]
	s.inputs = s.inputs[1:]
	return next, true
}
