// Package render writes a soup as text: a box-drawn letter grid followed by
// the list of hidden words.
package render

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gookit/color"

	"crosswarped.com/soup/pkg/soup"
)

const (
	topLeft      = '┌'
	horizontal   = '─'
	topMiddle    = '┬'
	topRight     = '┐'
	leftMiddle   = '├'
	cross        = '┼'
	rightMiddle  = '┤'
	vertical     = '│'
	bottomLeft   = '└'
	bottomMiddle = '┴'
	bottomRight  = '┘'
)

// DefaultWidth is the media width assumed when choosing word columns.
const DefaultWidth = 80

// Options selects what the Printer writes.
type Options struct {
	PrintSoup     bool
	PrintWords    bool
	PrintSolution bool
	// WordColumns fixes the number of word columns. Zero fits as many as
	// Width allows.
	WordColumns int
	// Width of the output media. Zero means DefaultWidth.
	Width int
	// Highlight decorates the cells of hidden words when PrintSolution is
	// set. Defaults to red terminal text.
	Highlight func(string) string
}

// DefaultOptions prints the grid and the word list without the solution.
func DefaultOptions() Options {
	return Options{PrintSoup: true, PrintWords: true}
}

// Printer renders soups to a writer.
type Printer struct {
	Options Options
	w       io.Writer
}

func NewPrinter(w io.Writer, opts Options) *Printer {
	return &Printer{Options: opts, w: w}
}

// Print writes the parts of s selected by the options.
func (p *Printer) Print(s *soup.Soup) error {
	if s == nil {
		return errors.New("render: nil soup")
	}
	if p.Options.PrintSoup {
		if err := p.PrintSoup(s); err != nil {
			return err
		}
	}
	if p.Options.PrintWords && s.Len() > 0 {
		if p.Options.PrintSoup {
			if _, err := fmt.Fprintln(p.w); err != nil {
				return err
			}
		}
		return p.PrintWords(s.Words())
	}
	return nil
}

// PrintSoup writes the bordered grid.
func (p *Printer) PrintSoup(s *soup.Soup) error {
	highlight := p.Options.Highlight
	if highlight == nil {
		highlight = func(cell string) string { return color.Red.Sprint(cell) }
	}

	var b strings.Builder
	b.WriteString(borderLine(s.Size, topLeft, topMiddle, topRight))
	for y := range s.Size {
		b.WriteRune(vertical)
		for x := range s.Size {
			cell := " " + string(s.Matrix[y][x]) + " "
			if p.Options.PrintSolution && s.Used[y][x] {
				cell = highlight(cell)
			}
			b.WriteString(cell)
			b.WriteRune(vertical)
		}
		b.WriteByte('\n')
		if y < s.Size-1 {
			b.WriteString(borderLine(s.Size, leftMiddle, cross, rightMiddle))
		}
	}
	b.WriteString(borderLine(s.Size, bottomLeft, bottomMiddle, bottomRight))

	_, err := io.WriteString(p.w, b.String())
	return err
}

func borderLine(cells int, left, middle, right rune) string {
	var b strings.Builder
	b.WriteRune(left)
	for i := range cells {
		b.WriteString(strings.Repeat(string(horizontal), 3))
		if i < cells-1 {
			b.WriteRune(middle)
		}
	}
	b.WriteRune(right)
	b.WriteByte('\n')
	return b.String()
}

// PrintWords writes words sorted alphabetically, in columns.
func (p *Printer) PrintWords(words []string) error {
	if len(words) == 0 {
		return nil
	}
	sorted := slices.Clone(words)
	slices.Sort(sorted)

	colWidth := 0
	for _, w := range sorted {
		colWidth = max(colWidth, utf8.RuneCountInString(w))
	}
	colWidth++

	columns := p.Options.WordColumns
	if columns <= 0 {
		width := p.Options.Width
		if width <= 0 {
			width = DefaultWidth
		}
		columns = BestColumnsFit(len(sorted), width/colWidth)
	}

	var b strings.Builder
	for i, w := range sorted {
		b.WriteString(w)
		if (i+1)%columns == 0 || i == len(sorted)-1 {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(strings.Repeat(" ", colWidth-utf8.RuneCountInString(w)))
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// BestColumnsFit returns the number of columns to lay out wordCount words
// when at most maxColumns fit the media: every word on one line if possible,
// otherwise the largest divisor of wordCount not above maxColumns so all
// lines are full.
func BestColumnsFit(wordCount, maxColumns int) int {
	if maxColumns <= 1 || wordCount <= 1 {
		return 1
	}
	if maxColumns >= wordCount {
		return wordCount
	}
	i := maxColumns
	for i > 1 && wordCount%i != 0 {
		i--
	}
	return i
}
