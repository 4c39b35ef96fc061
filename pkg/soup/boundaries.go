package soup

import "crosswarped.com/soup/pkg/primitives"

// BoundariesManager checks entries against the edges of a soup.
type BoundariesManager struct {
	soup *Soup
}

// NewBoundariesManager binds a manager to s.
func NewBoundariesManager(s *Soup) *BoundariesManager {
	return &BoundariesManager{soup: s}
}

// Check reports whether both endpoints of entry lie inside the grid.
func (b *BoundariesManager) Check(entry primitives.WordEntry) bool {
	return b.soup.InBounds(entry.AbsoluteOrigin()) && b.soup.InBounds(entry.AbsoluteEnding())
}

// GetDelta returns the translation that pulls entry back inside the grid.
// Each axis is corrected independently by its overshoot only; a word longer
// than the grid stays out of bounds on the far side.
func (b *BoundariesManager) GetDelta(entry primitives.WordEntry) primitives.Point {
	origin, ending := entry.Origin, entry.EndingCoordinate()
	return primitives.Point{
		X: axisDelta(min(origin.X, ending.X), max(origin.X, ending.X), b.soup.Size-1),
		Y: axisDelta(min(origin.Y, ending.Y), max(origin.Y, ending.Y), b.soup.Size-1),
	}
}

func axisDelta(lo, hi, limit int) int {
	switch {
	case lo < 0:
		return -lo
	case hi > limit:
		return limit - hi
	}
	return 0
}
