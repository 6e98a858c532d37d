package serial

import (
	"strings"
	"testing"
)

func TestReadLines(t *testing.T) {
	input := "Starting tick clock with 1000.0 Hz.\r\n\r\nStarting output clock with 100000.0 Hz.\r\n"

	var lines []string
	err := ReadLines(strings.NewReader(input), func(line string) bool {
		lines = append(lines, line)
		return true
	})
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}

	expected := []string{
		"Starting tick clock with 1000.0 Hz.",
		"Starting output clock with 100000.0 Hz.",
	}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d: %q", len(expected), len(lines), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestReadLinesStop(t *testing.T) {
	var count int
	err := ReadLines(strings.NewReader("a\nb\nc\n"), func(line string) bool {
		count++
		return line != "b"
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Expected to stop after 2 lines, got %d", count)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")
	if cfg.Baud != 9600 || cfg.Device != "/dev/ttyUSB0" {
		t.Errorf("Unexpected default config: %+v", cfg)
	}
}
