package core

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}

// Utoa is the exported form of utoa for packages that avoid fmt
func Utoa(n uint32) string {
	return utoa(n)
}

// FormatTenths renders a fixed-point value with one decimal place,
// e.g. 10000 -> "1000.0"
func FormatTenths(tenths uint32) string {
	return utoa(tenths/10) + "." + utoa(tenths%10)
}

// FormatPattern renders an 8-bit pattern as 8 binary digits, MSB first
func FormatPattern(pattern uint8) string {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		if pattern&(0x80>>i) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
