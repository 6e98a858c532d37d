package core

import "testing"

func TestElapsedUSWrap(t *testing.T) {
	if got := ElapsedUS(0xFFFFFFF0, 0x10); got != 0x20 {
		t.Errorf("Expected 32us across wrap, got %d", got)
	}
}

func TestManualClock(t *testing.T) {
	clock := NewManualClock(100)
	var seen []uint32
	clock.OnDelay = func(us uint32) { seen = append(seen, us) }

	clock.DelayMicros(10)
	clock.Advance(5)
	clock.DelayMicros(20)

	if clock.Micros() != 135 {
		t.Errorf("Expected time 135, got %d", clock.Micros())
	}
	if clock.TotalDelay() != 30 || len(seen) != 2 {
		t.Errorf("Expected 2 delays totalling 30us, got %v", clock.Delays)
	}
}

func TestSystemClockDelay(t *testing.T) {
	clock := NewSystemClock()

	for _, us := range []uint32{50, 500} {
		start := clock.Micros()
		clock.DelayMicros(us)
		if elapsed := ElapsedUS(start, clock.Micros()); elapsed < us {
			t.Errorf("DelayMicros(%d) returned after %dus", us, elapsed)
		}
	}
}

type recordingPort struct {
	writes []bool
}

func (p *recordingPort) ConfigureOutput(pin GPIOPin) error { return nil }

func (p *recordingPort) SetPin(pin GPIOPin, value bool) error {
	p.writes = append(p.writes, value)
	return nil
}

func (p *recordingPort) GetPin(pin GPIOPin) (bool, error) { return false, nil }

func TestPulsePin(t *testing.T) {
	port := &recordingPort{}
	clock := NewManualClock(0)

	if err := PulsePin(port, clock, 3, 10); err != nil {
		t.Fatal(err)
	}
	if len(port.writes) != 2 || !port.writes[0] || port.writes[1] {
		t.Errorf("Expected high then low, got %v", port.writes)
	}
	if clock.Micros() != 10 {
		t.Errorf("Expected 10us hold, got %d", clock.Micros())
	}
}

func TestMustGPIOPanicsWithoutDriver(t *testing.T) {
	SetGPIODriver(nil)
	defer func() {
		if recover() == nil {
			t.Error("Expected panic without a GPIO driver")
		}
	}()
	MustGPIO()
}
