package soup

import (
	"fmt"
	"log/slog"
	"slices"

	"crosswarped.com/soup/pkg/primitives"
)

// Range is a substring of a word: the index of its first letter and its length.
type Range struct {
	Init   int
	Length int
}

// CommonLetter is a letter two words can share, with its index in each word.
type CommonLetter struct {
	Letter       rune
	ExistingPos  int
	CandidatePos int
}

// IntersectionManager inspects how a candidate entry meets an entry already
// placed in the soup, and moves the candidate so that both words share a
// letter instead of overwriting one.
type IntersectionManager struct {
	// Existing is the entry already placed in the soup.
	Existing primitives.WordEntry
	// Candidate is the entry being tested.
	Candidate primitives.WordEntry

	// Points are the cells shared by both entries, in discovery order.
	Points []primitives.Point

	ExistingRange  Range
	CandidateRange Range
	CommonLetters  []CommonLetter

	soup   *Soup
	logger *slog.Logger
}

// NewIntersectionManager binds a manager to the soup it repositions within.
// A nil logger discards output.
func NewIntersectionManager(s *Soup, logger *slog.Logger) *IntersectionManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &IntersectionManager{soup: s, logger: logger}
}

// Check binds both entries and computes their intersection.
func (m *IntersectionManager) Check(existing, candidate primitives.WordEntry) {
	m.Existing = existing
	m.Candidate = candidate
	m.GetIntersection()
}

// Intersects reports whether the entries share at least one cell.
func (m *IntersectionManager) Intersects() bool {
	return len(m.Points) > 0
}

// Overlaps reports whether the entries share more than one cell, which only
// happens when they are collinear.
func (m *IntersectionManager) Overlaps() bool {
	return len(m.Points) > 1
}

// GetIntersection recomputes the shared cells and resets the common letters.
func (m *IntersectionManager) GetIntersection() []primitives.Point {
	m.Points = m.Points[:0]
	m.ExistingRange = Range{}
	m.CandidateRange = Range{}
	m.CommonLetters = nil

	existing, candidate := m.Existing.Cells(), m.Candidate.Cells()
	for _, p := range existing {
		for _, q := range candidate {
			if p == q {
				m.Points = append(m.Points, p)
			}
		}
	}
	return m.Points
}

// GetCommonLetters finds how the words can share printed letters. It returns
// false when they have nothing in common.
func (m *IntersectionManager) GetCommonLetters() bool {
	m.CommonLetters = nil
	if m.Existing.Direction.SameDirection(m.Candidate.Direction) {
		return m.collinearCommonLetters()
	}
	return m.crossingCommonLetters()
}

// crossingCommonLetters pairs every letter of Existing with the first
// occurrence of the same letter in Candidate.
func (m *IntersectionManager) crossingCommonLetters() bool {
	candidate := m.Candidate.Letters()
	for i, letter := range m.Existing.Letters() {
		j := slices.Index(candidate, letter)
		if j < 0 {
			continue
		}
		if len(m.CommonLetters) == 0 {
			m.ExistingRange = Range{Init: i, Length: 1}
			m.CandidateRange = Range{Init: j, Length: 1}
		}
		m.CommonLetters = append(m.CommonLetters, CommonLetter{Letter: letter, ExistingPos: i, CandidatePos: j})
	}
	return len(m.CommonLetters) > 0
}

// collinearCommonLetters looks for the shortest suffix of one word that is a
// prefix of the other, both read in forward order. Existing-suffix windows are
// scanned before candidate-suffix windows.
func (m *IntersectionManager) collinearCommonLetters() bool {
	existing := forwardLetters(m.Existing)
	candidate := forwardLetters(m.Candidate)
	longest := min(len(existing), len(candidate)) - 1

	for size := 1; size <= longest; size++ {
		if slices.Equal(existing[len(existing)-size:], candidate[:size]) {
			m.setWindow(len(existing)-size, 0, size)
			return true
		}
	}
	for size := 1; size <= longest; size++ {
		if slices.Equal(candidate[len(candidate)-size:], existing[:size]) {
			m.setWindow(0, len(candidate)-size, size)
			return true
		}
	}
	return false
}

// setWindow records a matched window given in forward-order indexes.
func (m *IntersectionManager) setWindow(existingStart, candidateStart, size int) {
	letters := m.Existing.Letters()
	for k := range size {
		ei := wordIndex(m.Existing, existingStart+k)
		ci := wordIndex(m.Candidate, candidateStart+k)
		m.CommonLetters = append(m.CommonLetters, CommonLetter{Letter: letters[ei], ExistingPos: ei, CandidatePos: ci})
	}
	slices.SortFunc(m.CommonLetters, func(a, b CommonLetter) int {
		return a.ExistingPos - b.ExistingPos
	})
	m.ExistingRange = wordRange(m.Existing, existingStart, size)
	m.CandidateRange = wordRange(m.Candidate, candidateStart, size)
}

// RepositionEntry returns Candidate moved so that it meets Existing on a
// common letter. The inputs are never modified. It fails with
// ErrRepositionFailed when the entries do not intersect, have no common
// letters, or every possible move leaves the grid or hits a third word.
func (m *IntersectionManager) RepositionEntry() (primitives.WordEntry, error) {
	if !m.Intersects() {
		return primitives.WordEntry{}, fmt.Errorf("%w: %s does not intersect %s", ErrRepositionFailed, m.Candidate.Name, m.Existing.Name)
	}
	if !m.GetCommonLetters() {
		return primitives.WordEntry{}, fmt.Errorf("%w: %s has no letters in common with %s", ErrRepositionFailed, m.Candidate.Name, m.Existing.Name)
	}

	if m.Overlaps() {
		// Any pair of a collinear window gives the same translation. Using the
		// pair itself instead of the range start keeps reverse words, which
		// anchor at their high end, aligned on the right cell.
		moved := m.alignOn(m.CommonLetters[0])
		if m.fits(moved) {
			m.logger.Debug("Candidate repositioned over overlap.", "candidate", moved.String(), "existing", m.Existing.String())
			return moved, nil
		}
	} else {
		for _, common := range m.CommonLetters {
			moved := m.alignOn(common)
			if m.fits(moved) {
				m.logger.Debug("Candidate repositioned over crossing.", "candidate", moved.String(), "existing", m.Existing.String(), "letter", string(common.Letter))
				return moved, nil
			}
		}
	}
	return primitives.WordEntry{}, fmt.Errorf("%w: no common letter of %s fits against %s", ErrRepositionFailed, m.Candidate.Name, m.Existing.Name)
}

// IntersectsWithOthers reports whether candidate shares a cell with any of
// entries other than Existing.
func (m *IntersectionManager) IntersectsWithOthers(candidate primitives.WordEntry, entries []primitives.WordEntry) bool {
	for _, entry := range entries {
		if entry.Name != m.Existing.Name && entry.IntersectWith(candidate) {
			return true
		}
	}
	return false
}

func (m *IntersectionManager) alignOn(common CommonLetter) primitives.WordEntry {
	target := m.Existing.Coordinate(common.ExistingPos)
	delta := target.Delta(m.Candidate.Coordinate(common.CandidatePos))
	return m.Candidate.Translate(delta)
}

func (m *IntersectionManager) fits(moved primitives.WordEntry) bool {
	if !m.soup.InBounds(moved.Origin) {
		return false
	}
	return !m.IntersectsWithOthers(moved, m.soup.Entries())
}

// forwardLetters returns the letters of e in the order they appear along the
// forward direction of its axis.
func forwardLetters(e primitives.WordEntry) []rune {
	letters := e.Letters()
	if e.Direction.IsReverse() {
		slices.Reverse(letters)
	}
	return letters
}

// wordIndex maps a forward-order index back to an index in e.Name.
func wordIndex(e primitives.WordEntry, forward int) int {
	if e.Direction.IsReverse() {
		return e.Len() - 1 - forward
	}
	return forward
}

func wordRange(e primitives.WordEntry, forwardStart, size int) Range {
	if e.Direction.IsReverse() {
		return Range{Init: e.Len() - forwardStart - size, Length: size}
	}
	return Range{Init: forwardStart, Length: size}
}
