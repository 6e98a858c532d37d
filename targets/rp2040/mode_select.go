//go:build rp2040

package main

// Backend selects how frames reach the shift register
type Backend uint8

const (
	// BackendBitBang clocks frames out from the CPU, GPIO by GPIO
	BackendBitBang Backend = iota
	// BackendPIO hands frames to a PIO state machine
	BackendPIO
	// BackendDriver uses the stock TinyGo 74HC595 driver
	BackendDriver
)

// ModeConfig determines which backend to run
type ModeConfig struct {
	Backend Backend
}

// GetMode returns the current mode configuration.
// Change the value here to pick another backend at compile time.
func GetMode() ModeConfig {
	return ModeConfig{
		Backend: BackendBitBang,
	}
}
