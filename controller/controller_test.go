package controller

import (
	"testing"
	"time"

	"lauflicht/config"
	"lauflicht/core"
	"lauflicht/shiftreg"
)

func newTestController(t *testing.T) (*Controller, *shiftreg.Register, *core.ManualClock) {
	t.Helper()
	ctrl, err := New(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	reg := shiftreg.NewRegister(ctrl.Config().Pins)
	clock := core.NewManualClock(0)
	if err := ctrl.Initialize(reg, clock); err != nil {
		t.Fatal(err)
	}
	return ctrl, reg, clock
}

func TestEndToEndFrames(t *testing.T) {
	core.ClearTimingRing()
	ctrl, reg, _ := newTestController(t)

	expected := []uint8{0x03, 0x06, 0x0C, 0x18, 0x30}
	for i, want := range expected {
		ctrl.Tick()
		if got := reg.Outputs(); got != want {
			t.Errorf("Tick %d: outputs %08b, expected %08b", i+1, got, want)
		}
	}

	shift, storage := reg.PulseCounts()
	if shift != 8*5 || storage != 5 {
		t.Errorf("Expected 40/5 pulses, got %d/%d", shift, storage)
	}
}

func TestTickRate(t *testing.T) {
	core.ClearTimingRing()
	ctrl, _, clock := newTestController(t)

	ctrl.Tick()
	start := clock.Micros()
	for i := 0; i < 100; i++ {
		ctrl.Tick()
	}

	if elapsed := clock.Micros() - start; elapsed != 100*1000 {
		t.Errorf("100 ticks took %dus, expected 100000us", elapsed)
	}
	stats := ctrl.Stats()
	if stats.Overruns != 0 {
		t.Errorf("Unexpected overruns: %d", stats.Overruns)
	}
	if stats.LastWorkUS != 180 {
		t.Errorf("Expected 180us frame time, got %d", stats.LastWorkUS)
	}
}

func TestReversalsRecorded(t *testing.T) {
	core.ClearTimingRing()
	core.SetDebugEnabled(true)
	defer core.SetDebugEnabled(false)
	ctrl, _, _ := newTestController(t)

	for i := 0; i < 12; i++ {
		ctrl.Tick()
	}

	var reversals []core.TimingEvent
	for _, evt := range core.TimingEvents() {
		if evt.EventType == core.EvtReversal {
			reversals = append(reversals, evt)
		}
	}
	if len(reversals) != 2 {
		t.Fatalf("Expected 2 reversals in one cycle, got %d", len(reversals))
	}

	// Turnaround at the top on tick 6, at the bottom on tick 12
	expected := []core.TimingEvent{
		{EventType: core.EvtReversal, Tick: 6, Clock: 5000, Value1: 5, Value2: 1},
		{EventType: core.EvtReversal, Tick: 12, Clock: 11000, Value1: 0, Value2: 0},
	}
	for i, want := range expected {
		if reversals[i] != want {
			t.Errorf("Reversal %d: got %+v, expected %+v", i, reversals[i], want)
		}
	}
}

func TestReversalsNotRecordedWithoutDebug(t *testing.T) {
	core.ClearTimingRing()
	core.SetDebugEnabled(false)
	ctrl, _, _ := newTestController(t)

	for i := 0; i < 24; i++ {
		ctrl.Tick()
	}

	if events := core.TimingEvents(); len(events) != 0 {
		t.Errorf("Expected an empty timing ring, got %+v", events)
	}
}

func TestInitializeTwice(t *testing.T) {
	ctrl, reg, clock := newTestController(t)
	if err := ctrl.Initialize(reg, clock); err == nil {
		t.Error("Expected error on second Initialize")
	}
}

func TestStartupDiagnostics(t *testing.T) {
	var lines []string
	core.SetDebugWriter(func(s string) { lines = append(lines, s) })
	core.SetDebugEnabled(true)
	defer func() {
		core.SetDebugEnabled(false)
		core.SetDebugWriter(func(s string) {})
	}()

	ctrl, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	ctrl.ReportTiming()

	if len(lines) != 2 || lines[0] != "Starting tick clock with 1000.0 Hz." {
		t.Errorf("Unexpected diagnostics: %v", lines)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(&config.Config{LightUnits: 12}); err == nil {
		t.Error("Expected error for 12 light units")
	}
}

func TestBlank(t *testing.T) {
	ctrl, reg, _ := newTestController(t)

	ctrl.Tick()
	if reg.Outputs() == 0 {
		t.Fatal("Expected lit outputs after a tick")
	}
	if err := ctrl.Blank(); err != nil {
		t.Fatal(err)
	}
	if reg.Outputs() != 0 {
		t.Errorf("Expected dark outputs after Blank, got %08b", reg.Outputs())
	}
}

func TestShutdownWhileRunning(t *testing.T) {
	core.ClearTimingRing()
	ctrl, reg, _ := newTestController(t)

	go ctrl.Run()

	deadline := time.Now().Add(2 * time.Second)
	for reg.Frames() < 4 {
		if time.Now().After(deadline) {
			t.Fatal("Loop did not start")
		}
		time.Sleep(time.Millisecond)
	}

	if err := ctrl.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if reg.Outputs() != 0 {
		t.Fatalf("Expected dark outputs after Shutdown, got %08b", reg.Outputs())
	}

	frames := reg.Frames()
	time.Sleep(20 * time.Millisecond)
	if reg.Outputs() != 0 {
		t.Errorf("Outputs relit after Shutdown: %08b", reg.Outputs())
	}
	if reg.Frames() != frames {
		t.Errorf("Loop kept transmitting: %d frames, expected %d", reg.Frames(), frames)
	}
}
