package fwtransport_test

import (
	"testing"

	"github.com/agausmann/windowmaster/internal/fwtransport"
	"github.com/agausmann/windowmaster/internal/fwtransport/simtransport"
)

func TestPushInputClearsEncodersKeepsButtons(t *testing.T) {
	sim := simtransport.New()
	tr := fwtransport.New(sim, false)

	if err := tr.UpdateEncoder(0, 3); err != nil {
		t.Fatal(err)
	}
	if err := tr.UpdateEncoder(5, -2); err != nil {
		t.Fatal(err)
	}
	if err := tr.UpdateButton(2, true); err != nil {
		t.Fatal(err)
	}

	ok, err := tr.PushInput()
	if err != nil || !ok {
		t.Fatalf("PushInput() = %v, %v, want true, nil", ok, err)
	}

	raw, ok := sim.ReadInput()
	if !ok {
		t.Fatal("no input report reached the sim transport")
	}
	var report fwtransport.InputReport
	if err := report.Unmarshal(raw); err != nil {
		t.Fatal(err)
	}
	if report.Encoders[0] != 3 || report.Encoders[5] != -2 {
		t.Fatalf("unexpected encoder values: %v", report.Encoders)
	}
	if !report.ButtonPressed(2) {
		t.Fatal("button 2 not pressed in pushed report")
	}

	// Property 2: after a successful push, all encoders are zero and
	// buttons are unchanged.
	ok, err = tr.PushInput()
	if err != nil || !ok {
		t.Fatalf("second PushInput() = %v, %v", ok, err)
	}
	raw, ok = sim.ReadInput()
	if !ok {
		t.Fatal("no second input report")
	}
	report = fwtransport.InputReport{}
	if err := report.Unmarshal(raw); err != nil {
		t.Fatal(err)
	}
	for i, e := range report.Encoders {
		if e != 0 {
			t.Fatalf("encoder %d = %d after clear, want 0", i, e)
		}
	}
	if !report.ButtonPressed(2) {
		t.Fatal("button state lost across push")
	}
}

func TestPushInputRejectedLeavesStateUnchanged(t *testing.T) {
	sim := simtransport.New()
	sim.SetAcceptPush(false)
	tr := fwtransport.New(sim, false)

	tr.UpdateEncoder(1, 1)
	ok, err := tr.PushInput()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("PushInput() succeeded despite SetAcceptPush(false)")
	}

	sim.SetAcceptPush(true)
	ok, err = tr.PushInput()
	if err != nil || !ok {
		t.Fatalf("retry PushInput() = %v, %v", ok, err)
	}
	raw, ok := sim.ReadInput()
	if !ok {
		t.Fatal("no input report")
	}
	var report fwtransport.InputReport
	report.Unmarshal(raw)
	if report.Encoders[1] != 1 {
		t.Fatalf("encoder 1 = %d, want the retried delta of 1", report.Encoders[1])
	}
}

func TestPullOutputUpdatesIndicatorMask(t *testing.T) {
	sim := simtransport.New()
	tr := fwtransport.New(sim, false)

	for i := 0; i < fwtransport.NumChannels; i++ {
		if tr.IsIndicatorOn(i) {
			t.Fatalf("indicator %d on before any output report", i)
		}
	}

	sim.WriteOutput([]byte{0b0010_1001})
	ok, err := tr.PullOutput()
	if err != nil || !ok {
		t.Fatalf("PullOutput() = %v, %v, want true, nil", ok, err)
	}
	for i := 0; i < fwtransport.NumChannels; i++ {
		want := (0b0010_1001>>uint(i))&1 == 1
		if got := tr.IsIndicatorOn(i); got != want {
			t.Errorf("indicator %d = %v, want %v", i, got, want)
		}
	}
}

func TestPullOutputReportIDByteSkipped(t *testing.T) {
	sim := simtransport.New()
	tr := fwtransport.New(sim, true)

	sim.WriteOutput([]byte{0xAA, 0b0000_0111})
	ok, err := tr.PullOutput()
	if err != nil || !ok {
		t.Fatalf("PullOutput() = %v, %v", ok, err)
	}
	for i := 0; i < 3; i++ {
		if !tr.IsIndicatorOn(i) {
			t.Errorf("indicator %d should be on", i)
		}
	}
	if tr.IsIndicatorOn(3) {
		t.Error("indicator 3 should be off")
	}
}

func TestPullOutputScratchDoesNotLeakAcrossPulls(t *testing.T) {
	sim := simtransport.New()
	tr := fwtransport.New(sim, true)

	// A wide report-ID-byte pull followed by a pull of the same width must
	// not see the previous byte survive in the shared scratch buffer.
	sim.WriteOutput([]byte{0xAA, 0b0011_1111})
	if ok, err := tr.PullOutput(); err != nil || !ok {
		t.Fatalf("PullOutput() = %v, %v", ok, err)
	}
	for i := 0; i < fwtransport.NumChannels; i++ {
		if !tr.IsIndicatorOn(i) {
			t.Fatalf("indicator %d should be on", i)
		}
	}

	sim.WriteOutput([]byte{0xBB, 0b0000_0000})
	if ok, err := tr.PullOutput(); err != nil || !ok {
		t.Fatalf("second PullOutput() = %v, %v", ok, err)
	}
	for i := 0; i < fwtransport.NumChannels; i++ {
		if tr.IsIndicatorOn(i) {
			t.Fatalf("indicator %d still on after all-clear report", i)
		}
	}
}

func TestUpdateEncoderSaturates(t *testing.T) {
	sim := simtransport.New()
	tr := fwtransport.New(sim, false)

	for i := 0; i < 200; i++ {
		tr.UpdateEncoder(0, 1)
	}
	tr.PushInput()
	raw, _ := sim.ReadInput()
	var report fwtransport.InputReport
	report.Unmarshal(raw)
	if report.Encoders[0] != 127 {
		t.Fatalf("encoder 0 = %d, want saturated at 127", report.Encoders[0])
	}
}

func TestUpdateEncoderChannelRange(t *testing.T) {
	sim := simtransport.New()
	tr := fwtransport.New(sim, false)
	if err := tr.UpdateEncoder(fwtransport.NumChannels, 1); err == nil {
		t.Fatal("expected error for out-of-range channel index")
	}
	if err := tr.UpdateButton(-1, true); err == nil {
		t.Fatal("expected error for out-of-range channel index")
	}
}
