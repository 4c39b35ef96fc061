package soup

import (
	"fmt"
	"math/rand/v2"

	"crosswarped.com/soup/pkg/primitives"
)

// Soup is the letter grid with the words hidden in it.
//
// Matrix and Used are indexed [y][x]. Used is true exactly on the cells that
// belong to a placed word.
type Soup struct {
	Size   int
	Matrix [][]rune
	Used   [][]bool

	entries map[string]primitives.WordEntry
	order   []string
}

// New creates an empty size×size soup. Cells hold the zero rune until Fill.
func New(size int) *Soup {
	matrix := make([][]rune, size)
	used := make([][]bool, size)
	for y := range size {
		matrix[y] = make([]rune, size)
		used[y] = make([]bool, size)
	}
	return &Soup{
		Size:    size,
		Matrix:  matrix,
		Used:    used,
		entries: make(map[string]primitives.WordEntry),
	}
}

// Fill sets every cell to a random letter from letters and clears the
// used-mask and word list.
func (s *Soup) Fill(letters []rune, rng *rand.Rand) {
	for y := range s.Size {
		for x := range s.Size {
			s.Matrix[y][x] = letters[rng.IntN(len(letters))]
			s.Used[y][x] = false
		}
	}
	clear(s.entries)
	s.order = s.order[:0]
}

// InBounds checks if a point is within the grid.
func (s *Soup) InBounds(p primitives.Point) bool {
	return p.X >= 0 && p.X < s.Size && p.Y >= 0 && p.Y < s.Size
}

// At returns the letter at p.
func (s *Soup) At(p primitives.Point) rune {
	return s.Matrix[p.Y][p.X]
}

// IsUsed reports whether p belongs to a placed word. Out of bounds is unused.
func (s *Soup) IsUsed(p primitives.Point) bool {
	return s.InBounds(p) && s.Used[p.Y][p.X]
}

// Row returns row y as a string.
func (s *Soup) Row(y int) string {
	return string(s.Matrix[y])
}

// Contains reports whether word is already placed.
func (s *Soup) Contains(word string) bool {
	_, ok := s.entries[word]
	return ok
}

// Entry returns the placement of word.
func (s *Soup) Entry(word string) (primitives.WordEntry, bool) {
	e, ok := s.entries[word]
	return e, ok
}

// Len returns the number of placed words.
func (s *Soup) Len() int {
	return len(s.order)
}

// Words returns the placed words in insertion order.
func (s *Soup) Words() []string {
	return append([]string(nil), s.order...)
}

// Entries returns the placed entries in insertion order.
func (s *Soup) Entries() []primitives.WordEntry {
	entries := make([]primitives.WordEntry, len(s.order))
	for i, w := range s.order {
		entries[i] = s.entries[w]
	}
	return entries
}

// Place stamps entry into the grid and registers it. It refuses entries that
// are already placed, leave the grid, or would overwrite a different letter
// of another word.
func (s *Soup) Place(entry primitives.WordEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if s.Contains(entry.Name) {
		return fmt.Errorf("place %s: word already in soup", entry)
	}
	run := entry.Run()
	for i := range run.Length() {
		letter, p := run.At(i)
		if !s.InBounds(p) {
			return fmt.Errorf("place %s: cell %s out of bounds", run.String(), p)
		}
		if s.Used[p.Y][p.X] && s.Matrix[p.Y][p.X] != letter {
			return fmt.Errorf("place %s: cell %s holds %q", run.String(), p, s.Matrix[p.Y][p.X])
		}
	}
	for i := range run.Length() {
		letter, p := run.At(i)
		s.Matrix[p.Y][p.X] = letter
		s.Used[p.Y][p.X] = true
	}
	s.entries[entry.Name] = entry
	s.order = append(s.order, entry.Name)
	return nil
}
