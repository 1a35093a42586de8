// Package firmware implements the device main loop (spec §4.F): a
// single-threaded, allocation-free, round-robin poll of all six channels
// followed by a transport poll, with no delay beyond the USB stack's own
// pacing.
package firmware

import (
	"github.com/agausmann/windowmaster/internal/channel"
	"github.com/agausmann/windowmaster/internal/fwtransport"
)

// StatusIndicator is the board's single status LED, turned on at boot and
// flashed on a hard fault.
type StatusIndicator interface {
	On() error
	Off() error
}

// Sleeper abstracts the board's delay primitive so the fault-flash sequence
// can be tested without a real clock; a real board wires time.Sleep (or an
// equivalent busy-wait) here.
type Sleeper interface {
	Sleep(ms uint32)
}

// Resetter abstracts the board's system reset primitive.
type Resetter interface {
	Reset()
}

// Loop owns the six channels, the transport, and the status indicator for
// one tick of the device main loop.
type Loop struct {
	Channels  [fwtransport.NumChannels]*channel.Channel
	Transport *fwtransport.Transport
	Status    StatusIndicator
}

// New constructs a Loop, turning the status indicator on as spec §4.F
// requires at boot.
func New(channels [fwtransport.NumChannels]*channel.Channel, tr *fwtransport.Transport, status StatusIndicator) (*Loop, error) {
	if err := status.On(); err != nil {
		return nil, err
	}
	return &Loop{Channels: channels, Transport: tr, Status: status}, nil
}

// Tick runs one round-robin pass over all six channels followed by a
// transport poll, exactly as spec §4.F step 1-3 then "Then transport.poll()"
// describes. Pin-read errors on an individual channel are dropped for that
// tick (spec §7): the tick continues with the next channel rather than
// aborting.
func (l *Loop) Tick() error {
	for i, ch := range l.Channels {
		if step, err := ch.Encoder.Poll(); err == nil {
			l.Transport.UpdateEncoder(i, step.Value())
		}

		if pressed, _, err := ch.Button.Poll(); err == nil {
			l.Transport.UpdateButton(i, pressed)
		}

		if l.Transport.IsIndicatorOn(i) {
			ch.Indicator.On()
		} else {
			ch.Indicator.Off()
		}
	}

	l.Transport.PushInput()
	return l.Transport.Poll()
}

// FaultFlashCount and FaultFlashIntervalMS are the hard-fault flash
// sequence from spec §4.F / §7: flash the status indicator four times at
// 200ms, then reset.
const (
	FaultFlashCount      = 4
	FaultFlashIntervalMS = 200
)

// HandleFault runs the hard-fault flash-and-reset sequence. It never
// returns normally: Resetter.Reset() is expected to halt or restart the
// MCU.
func HandleFault(status StatusIndicator, sleep Sleeper, reset Resetter) {
	status.Off()
	for i := 0; i < FaultFlashCount; i++ {
		sleep.Sleep(FaultFlashIntervalMS)
		status.On()
		sleep.Sleep(FaultFlashIntervalMS)
		status.Off()
	}
	reset.Reset()
}
