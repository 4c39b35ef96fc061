package soup

import (
	"fmt"
	"sort"

	"crosswarped.com/soup/pkg/primitives"
)

// Rule must be satisfied before a WordEntry is added to a Soup.
type Rule interface {
	// Name is the identifier reported when the rule rejects an entry.
	Name() string
	// Check returns true if entry can be added to s.
	Check(s *Soup, entry primitives.WordEntry) bool
}

// RuleFunc adapts a function into a named Rule.
type RuleFunc struct {
	RuleName string
	Fn       func(s *Soup, entry primitives.WordEntry) bool
}

func (r RuleFunc) Name() string { return r.RuleName }

func (r RuleFunc) Check(s *Soup, entry primitives.WordEntry) bool { return r.Fn(s, entry) }

// NotUsed rejects words already placed in the soup.
type NotUsed struct{}

func (NotUsed) Name() string { return "not_used" }

func (NotUsed) Check(s *Soup, entry primitives.WordEntry) bool {
	return !s.Contains(entry.Name)
}

// HaveSpace rejects entries that would be truncated by the edge of the soup.
type HaveSpace struct{}

func (HaveSpace) Name() string { return "have_space" }

func (HaveSpace) Check(s *Soup, entry primitives.WordEntry) bool {
	if entry.Len() == 0 || !entry.Direction.IsValid() {
		return false
	}
	end := entry.Origin.Add(entry.Direction.Step().Scale(entry.Len() - 1))
	return s.InBounds(entry.Origin) && s.InBounds(end)
}

// NotOverlapped rejects an entry that would be completely covered by a
// collinear word already placed, or would completely cover one. The longer
// word of each pair is the container.
type NotOverlapped struct{}

func (NotOverlapped) Name() string { return "not_overlapped" }

func (NotOverlapped) Check(s *Soup, entry primitives.WordEntry) bool {
	for _, item := range s.Entries() {
		if !item.Direction.SameDirection(entry.Direction) {
			continue
		}
		if item.Len() >= entry.Len() {
			if contains(item, entry) {
				return false
			}
		} else if contains(entry, item) {
			return false
		}
	}
	return true
}

// contains reports whether every cell of small lies on big.
func contains(big, small primitives.WordEntry) bool {
	cells := make(map[primitives.Point]struct{}, big.Len())
	for _, p := range big.Cells() {
		cells[p] = struct{}{}
	}
	for _, p := range small.Cells() {
		if _, ok := cells[p]; !ok {
			return false
		}
	}
	return true
}

// MatchLengthRange rejects words shorter than Min or longer than Max. A zero
// bound is not enforced.
type MatchLengthRange struct {
	Min int
	Max int
}

func (MatchLengthRange) Name() string { return "match_length_range" }

func (r MatchLengthRange) Check(_ *Soup, entry primitives.WordEntry) bool {
	n := entry.Len()
	if r.Min > 0 && n < r.Min {
		return false
	}
	if r.Max > 0 && n > r.Max {
		return false
	}
	return true
}

// LettersFit rejects entries that would overwrite a letter of a placed word
// with a different one.
type LettersFit struct{}

func (LettersFit) Name() string { return "letters_fit" }

func (LettersFit) Check(s *Soup, entry primitives.WordEntry) bool {
	run := entry.Run()
	for i := range run.Length() {
		letter, p := run.At(i)
		if s.IsUsed(p) && s.At(p) != letter {
			return false
		}
	}
	return true
}

// DefaultRules returns the rules every generator applies unless told otherwise.
func DefaultRules() []Rule {
	return []Rule{NotUsed{}, HaveSpace{}, NotOverlapped{}, LettersFit{}}
}

var namedRules = map[string]Rule{
	NotUsed{}.Name():       NotUsed{},
	HaveSpace{}.Name():     HaveSpace{},
	NotOverlapped{}.Name(): NotOverlapped{},
	LettersFit{}.Name():    LettersFit{},
}

// RuleByName returns one of the parameterless standard rules.
func RuleByName(name string) (Rule, error) {
	if r, ok := namedRules[name]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("unknown rule %q (known: %v)", name, RuleNames())
}

// RuleNames lists the names accepted by RuleByName.
func RuleNames() []string {
	names := make([]string, 0, len(namedRules))
	for name := range namedRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckRules runs rules in order and returns a *RuleViolationError for the
// first one entry fails.
func CheckRules(s *Soup, entry primitives.WordEntry, rules []Rule) error {
	for _, rule := range rules {
		if !rule.Check(s, entry) {
			return &RuleViolationError{Rule: rule.Name(), Entry: entry}
		}
	}
	return nil
}
