package primitives

import (
	"fmt"
	"math/bits"
	"strings"
)

// DirectionSet represents a set of directions as a bitmask. The zero value is
// the empty set.
type DirectionSet uint8

const (
	// ForwardDirections are the directions that read left to right or top to bottom.
	ForwardDirections = DirectionSet(N | NE | E | SE)
	// ReverseDirections are the opposites of ForwardDirections.
	ReverseDirections = DirectionSet(S | SW | W | NW)
	// EveryDirection contains all eight directions.
	EveryDirection = ForwardDirections | ReverseDirections
)

// NewDirectionSet builds a set from the given directions.
func NewDirectionSet(dirs ...Direction) DirectionSet {
	var s DirectionSet
	for _, d := range dirs {
		s = s.Add(d)
	}
	return s
}

// Add returns the set with d added.
func (s DirectionSet) Add(d Direction) DirectionSet {
	return s | DirectionSet(d)
}

// AddAll returns the union of both sets.
func (s DirectionSet) AddAll(other DirectionSet) DirectionSet {
	return s | other
}

// Contains checks if a direction is in the set.
func (s DirectionSet) Contains(d Direction) bool {
	return d.IsValid() && s&DirectionSet(d) != 0
}

// Count returns the number of directions in the set.
func (s DirectionSet) Count() int {
	return bits.OnesCount8(uint8(s))
}

// IsEmpty checks if the set has no direction.
func (s DirectionSet) IsEmpty() bool {
	return s == 0
}

// Directions returns the members in canonical order: N, NE, E, SE, S, SW, W, NW.
func (s DirectionSet) Directions() []Direction {
	dirs := make([]Direction, 0, s.Count())
	for _, d := range AllDirections {
		if s.Contains(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// String returns the members joined by commas, e.g. "N,E".
func (s DirectionSet) String() string {
	names := make([]string, 0, s.Count())
	for _, d := range s.Directions() {
		names = append(names, d.String())
	}
	return strings.Join(names, ",")
}

// ParseDirectionSet parses a comma or space separated list of directions.
// The keywords "forward", "reverse" and "all" name the predefined sets.
func ParseDirectionSet(s string) (DirectionSet, error) {
	return ParseDirectionList(strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '|'
	}))
}

// ParseDirectionList parses each item as a direction or a set keyword.
func ParseDirectionList(items []string) (DirectionSet, error) {
	var set DirectionSet
	for _, item := range items {
		switch strings.ToLower(strings.TrimSpace(item)) {
		case "":
			continue
		case "forward":
			set = set.AddAll(ForwardDirections)
		case "reverse":
			set = set.AddAll(ReverseDirections)
		case "all":
			set = set.AddAll(EveryDirection)
		default:
			d, err := ParseDirection(item)
			if err != nil {
				return 0, fmt.Errorf("parse direction set: %w", err)
			}
			set = set.Add(d)
		}
	}
	return set, nil
}
