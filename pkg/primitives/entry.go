package primitives

import (
	"fmt"
	"unicode/utf8"
)

// InvalidEntryError reports a WordEntry that cannot be laid out, such as one
// with an unsupported direction. It is a programming error and is raised as a
// panic value by the coordinate helpers.
type InvalidEntryError struct {
	Name      string
	Direction Direction
}

func (e *InvalidEntryError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid entry: unsupported direction %s", e.Direction)
	}
	return fmt.Sprintf("invalid entry %q: unsupported direction %s", e.Name, e.Direction)
}

// WordEntry is a word bound to a position and direction in the soup.
//
// Origin is always the coordinate of the first letter, whatever the
// direction. WordEntry is a value type: Translate returns a new entry.
type WordEntry struct {
	Name      string
	Origin    Point
	Direction Direction
}

// NewWordEntry creates an entry at (x, y).
func NewWordEntry(name string, x, y int, d Direction) WordEntry {
	return WordEntry{Name: name, Origin: Point{x, y}, Direction: d}
}

// Validate returns an *InvalidEntryError when the entry cannot be laid out.
func (e WordEntry) Validate() error {
	if !e.Direction.IsValid() {
		return &InvalidEntryError{Name: e.Name, Direction: e.Direction}
	}
	return nil
}

// Letters returns the word as runes.
func (e WordEntry) Letters() []rune {
	return []rune(e.Name)
}

// Len returns the number of letters in the word.
func (e WordEntry) Len() int {
	return utf8.RuneCountInString(e.Name)
}

// Coordinate returns the cell of the index-th letter. It panics with an
// *InvalidEntryError if the direction is not supported.
func (e WordEntry) Coordinate(index int) Point {
	if !e.Direction.IsValid() {
		panic(&InvalidEntryError{Name: e.Name, Direction: e.Direction})
	}
	return e.Origin.Add(e.Direction.Step().Scale(index))
}

// EndingCoordinate returns the cell of the last letter.
func (e WordEntry) EndingCoordinate() Point {
	return e.Coordinate(e.Len() - 1)
}

// AbsoluteOrigin returns the endpoint a forward-reading word would start at:
// the leftmost one, or the topmost one for vertical words.
func (e WordEntry) AbsoluteOrigin() Point {
	if e.Direction.IsReverse() {
		return e.EndingCoordinate()
	}
	return e.Origin
}

// AbsoluteEnding returns the endpoint opposite to AbsoluteOrigin.
func (e WordEntry) AbsoluteEnding() Point {
	if e.Direction.IsReverse() {
		return e.Origin
	}
	return e.EndingCoordinate()
}

// Cells returns the coordinate of every letter, in word order.
func (e WordEntry) Cells() []Point {
	cells := make([]Point, e.Len())
	for i := range cells {
		cells[i] = e.Coordinate(i)
	}
	return cells
}

// Run returns the letters of the word paired with their cells.
func (e WordEntry) Run() LetterRun {
	return LetterRun{Letters: e.Letters(), Cells: e.Cells()}
}

// Translate returns a copy of the entry moved by delta.
func (e WordEntry) Translate(delta Point) WordEntry {
	e.Origin = e.Origin.Add(delta)
	return e
}

// IntersectWith reports whether both entries share at least one cell.
func (e WordEntry) IntersectWith(other WordEntry) bool {
	cells := make(map[Point]struct{}, e.Len())
	for _, p := range e.Cells() {
		cells[p] = struct{}{}
	}
	for _, p := range other.Cells() {
		if _, ok := cells[p]; ok {
			return true
		}
	}
	return false
}

func (e WordEntry) String() string {
	return fmt.Sprintf("%s at %s with %s", e.Name, e.Origin, e.Direction)
}
