package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"lauflicht/config"
)

func TestSimulatorDrawsLitUnits(t *testing.T) {
	cfg := config.Default()
	cfg.TickFrequencyHz = 1000

	sim, err := newSimulator(cfg)
	if err != nil {
		t.Fatal(err)
	}

	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(60, 10)

	sim.ctrl.Tick() // units 0 and 1 lit
	sim.draw(screen)

	expected := []rune{'●', '●', '○', '○', '○', '○'}
	for i, want := range expected {
		got, _, _, _ := screen.GetContent(2+i*3, 1)
		if got != want {
			t.Errorf("Unit %d: got %q, expected %q", i, got, want)
		}
	}
}

func TestSimulatorStopsOnQuit(t *testing.T) {
	cfg := config.Default()
	cfg.TickFrequencyHz = 1000

	sim, err := newSimulator(cfg)
	if err != nil {
		t.Fatal(err)
	}

	quit := make(chan struct{})
	close(quit)
	sim.run(quit)

	if sim.snapshot().Ticks != 0 {
		t.Error("Expected no ticks after quit")
	}
}

func TestParseTickHz(t *testing.T) {
	testCases := []struct {
		hz   uint
		want uint32
		ok   bool
	}{
		{0, 0, false},
		{1, 1, true},
		{10, 10, true},
		{1000000, 1000000, true},
		{1000001, 0, false},
	}

	for _, tc := range testCases {
		got, err := parseTickHz(tc.hz)
		if (err == nil) != tc.ok {
			t.Errorf("parseTickHz(%d): error %v, expected ok=%v", tc.hz, err, tc.ok)
			continue
		}
		if got != tc.want {
			t.Errorf("parseTickHz(%d) = %d, expected %d", tc.hz, got, tc.want)
		}
	}
}
