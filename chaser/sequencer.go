// Package chaser holds the ping-pong light sequencer.
//
// A two-unit segment sweeps across a row of lights. The lit pair is the
// current position plus the unit just behind it in the direction of travel.
// At each end the sequencer spends one tick turning around in place.
package chaser

import "errors"

// MaxUnits is the largest row one 8-bit frame can address
const MaxUnits = 8

// Direction of travel
type Direction uint8

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// step returns +1 or -1
func (d Direction) step() int {
	if d == Descending {
		return -1
	}
	return 1
}

// Bound classifies a position
type Bound uint8

const (
	AtLowerBound Bound = iota
	Interior
	AtUpperBound
)

// Sequencer owns the chaser position and direction.
type Sequencer struct {
	units     int
	position  int
	direction Direction
	pattern   uint8

	// OnReverse, if set, is called whenever the direction flips
	OnReverse func(position int, dir Direction)
}

// New creates a sequencer for a row of units lights, starting at position 0
// ascending.
func New(units int) (*Sequencer, error) {
	if units < 2 {
		return nil, errors.New("chaser needs at least 2 light units")
	}
	if units > MaxUnits {
		return nil, errors.New("chaser supports at most 8 light units")
	}
	s := &Sequencer{units: units}
	s.Reset()
	return s, nil
}

// Reset returns to position 0, ascending
func (s *Sequencer) Reset() {
	s.position = 0
	s.direction = Ascending
	s.pattern = s.compute()
}

// Units returns the row length
func (s *Sequencer) Units() int {
	return s.units
}

// Position returns the current position
func (s *Sequencer) Position() int {
	return s.position
}

// Direction returns the current direction
func (s *Sequencer) Direction() Direction {
	return s.direction
}

// Pattern returns the pattern computed by the last Advance (or Reset)
func (s *Sequencer) Pattern() uint8 {
	return s.pattern
}

// Bound reports whether the current position is at an end of the row
func (s *Sequencer) Bound() Bound {
	switch s.position {
	case 0:
		return AtLowerBound
	case s.units - 1:
		return AtUpperBound
	default:
		return Interior
	}
}

// Advance moves one tick and returns the new output pattern.
//
// At an end, a sequencer still heading outwards reverses without moving;
// one already heading inwards moves. Inside the row it moves one step.
func (s *Sequencer) Advance() uint8 {
	switch s.Bound() {
	case AtLowerBound:
		if s.direction == Descending {
			s.reverse(Ascending)
		} else {
			s.position++
		}
	case AtUpperBound:
		if s.direction == Ascending {
			s.reverse(Descending)
		} else {
			s.position--
		}
	default:
		s.position += s.direction.step()
	}

	s.pattern = s.compute()
	return s.pattern
}

func (s *Sequencer) reverse(dir Direction) {
	s.direction = dir
	if s.OnReverse != nil {
		s.OnReverse(s.position, dir)
	}
}

// compute builds the two-bit pattern. The trailing unit sits one step behind
// the direction of travel; right after a turnaround that index is outside the
// row and is reflected to the unit just vacated.
func (s *Sequencer) compute() uint8 {
	adjacent := s.position - s.direction.step()
	if adjacent < 0 || adjacent >= s.units {
		adjacent = s.position + s.direction.step()
	}
	return uint8(1)<<uint(s.position) | uint8(1)<<uint(adjacent)
}
