package core

import "testing"

func TestFormatTenths(t *testing.T) {
	testCases := []struct {
		tenths   uint32
		expected string
	}{
		{0, "0.0"},
		{10000, "1000.0"},
		{3333333, "333333.3"},
		{1000000, "100000.0"},
	}

	for _, tc := range testCases {
		if got := FormatTenths(tc.tenths); got != tc.expected {
			t.Errorf("FormatTenths(%d) = %q, expected %q", tc.tenths, got, tc.expected)
		}
	}
}

func TestFormatPattern(t *testing.T) {
	if got := FormatPattern(0x03); got != "00000011" {
		t.Errorf("Expected 00000011, got %s", got)
	}
	if got := FormatPattern(0x81); got != "10000001" {
		t.Errorf("Expected 10000001, got %s", got)
	}
}

func TestDumpTimingRing(t *testing.T) {
	ClearTimingRing()
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(s string) {})

	RecordTiming(EvtTickOverrun, 7, 1234, 1500, 1000)
	DumpTimingRing()

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %v", len(lines), lines)
	}
	expected := "[TIMING] TICK_OVERRUN! tick=7 clock=1234 v1=1500 v2=1000"
	if lines[1] != expected {
		t.Errorf("Expected %q, got %q", expected, lines[1])
	}
}
