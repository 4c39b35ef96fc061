package primitives

import "fmt"

// LetterRun is the concrete footprint of a word in the soup: each letter with
// the cell it occupies.
type LetterRun struct {
	Letters []rune
	Cells   []Point
}

// Length returns the number of letters in the run.
func (r *LetterRun) Length() int {
	return len(r.Letters)
}

// At returns the letter and cell at index i.
func (r *LetterRun) At(i int) (rune, Point) {
	return r.Letters[i], r.Cells[i]
}

// String gives the word and the span it covers, e.g. "SOL (0, 0)..(2, 0)".
func (r *LetterRun) String() string {
	if len(r.Cells) == 0 {
		return string(r.Letters)
	}
	return fmt.Sprintf("%s %s..%s", string(r.Letters), r.Cells[0], r.Cells[len(r.Cells)-1])
}
