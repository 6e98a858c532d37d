package serial

import (
	"bufio"
	"io"
	"strings"
)

// ReadLines reads CR/LF terminated lines from r and hands each non-empty
// line to fn until r is exhausted or fn returns false. A clean EOF returns
// nil.
func ReadLines(r io.Reader, fn func(line string) bool) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if !fn(line) {
			return nil
		}
	}
	return scanner.Err()
}
