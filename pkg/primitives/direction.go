package primitives

import (
	"fmt"
	"math/bits"
	"strings"
)

// Direction is the way a word is written in the soup. Each direction is a
// single bit so that sets of directions fit in a DirectionSet.
//
// The reverse directions (S, SW, W, NW) are the exact opposites of N, NE, E
// and SE, and sit four bits above them.
type Direction uint8

const (
	N  Direction = 1 << iota // top to bottom
	NE                       // diagonal, top-left to bottom-right
	E                        // left to right
	SE                       // diagonal, bottom-left to top-right
	S                        // bottom to top
	SW                       // diagonal, bottom-right to top-left
	W                        // right to left
	NW                       // diagonal, top-right to bottom-left
)

// AllDirections lists every direction in canonical order.
var AllDirections = []Direction{N, NE, E, SE, S, SW, W, NW}

var directionNames = map[Direction]string{
	N: "N", NE: "NE", E: "E", SE: "SE", S: "S", SW: "SW", W: "W", NW: "NW",
}

// IsValid reports whether d is exactly one of the eight directions.
func (d Direction) IsValid() bool {
	return d != 0 && bits.OnesCount8(uint8(d)) == 1
}

// IsReverse reports whether letters are laid toward decreasing coordinates
// on the word's main axis (S, SW, W, NW).
func (d Direction) IsReverse() bool {
	return d >= S
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	if d.IsReverse() {
		return d >> 4
	}
	return d << 4
}

// SameDirection reports whether d and other are equal or exact opposites,
// i.e. whether two words written with them can be collinear.
func (d Direction) SameDirection(other Direction) bool {
	if d == other {
		return true
	}
	hi, lo := max(d, other), min(d, other)
	return hi>>4 == lo
}

// MovesHorizontal reports whether the X coordinate changes along the word.
func (d Direction) MovesHorizontal() bool {
	return d != N && d != S && d.IsValid()
}

// MovesVertical reports whether the Y coordinate changes along the word.
func (d Direction) MovesVertical() bool {
	return d != E && d != W && d.IsValid()
}

// Step returns the unit vector of the direction. It panics for an invalid
// direction.
func (d Direction) Step() Point {
	switch d {
	case N:
		return Point{0, 1}
	case NE:
		return Point{1, 1}
	case E:
		return Point{1, 0}
	case SE:
		return Point{1, -1}
	case S:
		return Point{0, -1}
	case SW:
		return Point{-1, -1}
	case W:
		return Point{-1, 0}
	case NW:
		return Point{-1, 1}
	}
	panic(&InvalidEntryError{Direction: d})
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection parses a compass name such as "ne" or "W".
func ParseDirection(s string) (Direction, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for d, n := range directionNames {
		if n == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
