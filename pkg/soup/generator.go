package soup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"unicode/utf8"

	"crosswarped.com/soup/pkg/language"
	"crosswarped.com/soup/pkg/primitives"
)

// DefaultMaxAttempts is the number of candidates drawn for a single word
// before the generator gives up.
const DefaultMaxAttempts = 5000

// Options configures a Generator.
type Options struct {
	// CultureCode selects the language data (alphabet and word list).
	CultureCode string
	// Words, when not empty, replaces the word list of the language data.
	Words []string
	// Size is the number of rows and columns.
	Size int
	// NumWords is the number of words hidden in the soup.
	NumWords int
	// AllowedDirections defaults to primitives.ForwardDirections.
	AllowedDirections primitives.DirectionSet
	// MinLength and MaxLength bound the word length. Zero disables a bound.
	MinLength int
	MaxLength int
	// Rules replaces DefaultRules when not empty. A MatchLengthRange rule is
	// appended when MinLength or MaxLength is set.
	Rules []Rule
	// MaxAttempts caps the draws per word. Zero means DefaultMaxAttempts.
	MaxAttempts int
}

// State is the lifecycle stage of a Generator.
type State int

const (
	Uninitialized State = iota
	Initialized
	Generating
	Complete
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Generating:
		return "generating"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Generator fills a soup with random words in random positions and directions.
// A Generator is not safe for concurrent use; run one per goroutine, each with
// its own random source.
type Generator struct {
	options    Options
	words      []string
	letters    []rune
	directions []primitives.Direction
	rules      []Rule

	rng    *rand.Rand
	logger *slog.Logger

	soup  *Soup
	state State
}

// NewGenerator validates opts and prepares a generator drawing filler letters
// from letters. A nil logger discards output.
func NewGenerator(opts Options, letters []rune, rng *rand.Rand, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if rng == nil {
		return nil, &ConfigurationError{Field: "rng", Reason: "a random source is required"}
	}
	if opts.Size < 1 {
		return nil, &ConfigurationError{Field: "size", Reason: fmt.Sprintf("must be positive, got %d", opts.Size)}
	}
	if opts.NumWords < 0 {
		return nil, &ConfigurationError{Field: "num_words", Reason: fmt.Sprintf("must not be negative, got %d", opts.NumWords)}
	}
	if opts.MinLength < 0 || opts.MaxLength < 0 || (opts.MaxLength > 0 && opts.MinLength > opts.MaxLength) {
		return nil, &ConfigurationError{Field: "length", Reason: fmt.Sprintf("invalid range [%d, %d]", opts.MinLength, opts.MaxLength)}
	}
	if len(letters) == 0 {
		return nil, &ConfigurationError{Field: "letters", Reason: "alphabet is empty"}
	}
	if opts.AllowedDirections.IsEmpty() {
		opts.AllowedDirections = primitives.ForwardDirections
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	words := candidateWords(opts)
	if len(words) < opts.NumWords {
		return nil, &ConfigurationError{
			Field:  "num_words",
			Reason: fmt.Sprintf("%d words requested but only %d distinct words fit a %dx%d soup", opts.NumWords, len(words), opts.Size, opts.Size),
		}
	}

	rules := opts.Rules
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	if opts.MinLength > 0 || opts.MaxLength > 0 {
		rules = append(slices.Clip(rules), MatchLengthRange{Min: opts.MinLength, Max: opts.MaxLength})
	}

	return &Generator{
		options:    opts,
		words:      words,
		letters:    letters,
		directions: opts.AllowedDirections.Directions(),
		rules:      rules,
		rng:        rng,
		logger:     logger,
	}, nil
}

// candidateWords upper-cases and deduplicates the word pool, dropping words
// that can never be placed.
func candidateWords(opts Options) []string {
	seen := make(map[string]struct{}, len(opts.Words))
	var words []string
	for _, w := range opts.Words {
		w = language.Upper(opts.CultureCode, strings.TrimSpace(w))
		n := utf8.RuneCountInString(w)
		if n == 0 || n > opts.Size {
			continue
		}
		if (opts.MinLength > 0 && n < opts.MinLength) || (opts.MaxLength > 0 && n > opts.MaxLength) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

// Options returns the effective options.
func (g *Generator) Options() Options { return g.options }

// Words returns the pool words are drawn from.
func (g *Generator) Words() []string { return g.words }

// Letters returns the filler alphabet.
func (g *Generator) Letters() []rune { return g.letters }

// Directions returns the allowed directions in canonical order.
func (g *Generator) Directions() []primitives.Direction { return g.directions }

// Rules returns the rules applied to every candidate.
func (g *Generator) Rules() []Rule { return g.rules }

// State returns the lifecycle stage.
func (g *Generator) State() State { return g.state }

// Soup returns the soup being built, nil before Init.
func (g *Generator) Soup() *Soup { return g.soup }

// Init creates a new soup filled with random letters of the alphabet.
func (g *Generator) Init() *Generator {
	g.soup = New(g.options.Size)
	g.soup.Fill(g.letters, g.rng)
	g.state = Initialized
	g.logger.Debug("Soup initialized.", "size", g.options.Size, "letters", len(g.letters))
	return g
}

// Create hides NumWords words in the soup. It calls Init if needed.
func (g *Generator) Create(ctx context.Context) (*Soup, error) {
	if g.state == Uninitialized {
		g.Init()
	}
	g.state = Generating
	g.logger.Debug("Placing words.", "requested", g.options.NumWords, "directions", g.options.AllowedDirections.String())

	for g.soup.Len() < g.options.NumWords {
		if err := g.placeWord(ctx); err != nil {
			return nil, err
		}
	}

	g.state = Complete
	g.logger.Info("Soup generated.", "size", g.options.Size, "words", g.soup.Len())
	return g.soup, nil
}

// Generate is Init followed by Create.
func (g *Generator) Generate(ctx context.Context) (*Soup, error) {
	return g.Init().Create(ctx)
}

// placeWord draws candidates until one is accepted or the cap is reached.
func (g *Generator) placeWord(ctx context.Context) error {
	for attempt := 1; attempt <= g.options.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("generation interrupted after %d words: %w", g.soup.Len(), err)
		}

		candidate, err := g.tryCandidate(g.draw())
		if err != nil {
			var violation *RuleViolationError
			switch {
			case errors.Is(err, ErrRepositionFailed):
				g.logger.Warn("Candidate discarded.", "reason", err.Error())
			case errors.As(err, &violation):
				g.logger.Debug("Candidate discarded.", "rule", violation.Rule, "candidate", violation.Entry.String())
			default:
				return err
			}
			continue
		}

		// Custom rule sets may skip the space and letter checks; the soup
		// still refuses to be corrupted.
		if err := g.soup.Place(candidate); err != nil {
			g.logger.Warn("Candidate discarded.", "reason", err.Error())
			continue
		}
		g.logger.Debug("Word placed.", "entry", candidate.String(), "attempts", attempt)
		return nil
	}
	return &ExhaustedError{Placed: g.soup.Len(), Requested: g.options.NumWords, Attempts: g.options.MaxAttempts}
}

// draw picks a random word, origin and direction, pulled inside the grid.
func (g *Generator) draw() primitives.WordEntry {
	entry := primitives.WordEntry{
		Name:      g.words[g.rng.IntN(len(g.words))],
		Origin:    primitives.Point{X: g.rng.IntN(g.options.Size), Y: g.rng.IntN(g.options.Size)},
		Direction: g.directions[g.rng.IntN(len(g.directions))],
	}
	boundaries := NewBoundariesManager(g.soup)
	if !boundaries.Check(entry) {
		entry = entry.Translate(boundaries.GetDelta(entry))
	}
	return entry
}

// tryCandidate resolves intersections with every placed word, then runs the
// rules against the possibly moved candidate.
func (g *Generator) tryCandidate(candidate primitives.WordEntry) (primitives.WordEntry, error) {
	if g.soup.Contains(candidate.Name) {
		return candidate, &RuleViolationError{Rule: NotUsed{}.Name(), Entry: candidate}
	}
	intersection := NewIntersectionManager(g.soup, g.logger)
	for _, existing := range g.soup.Entries() {
		intersection.Check(existing, candidate)
		if !intersection.Intersects() {
			continue
		}
		moved, err := intersection.RepositionEntry()
		if err != nil {
			return candidate, err
		}
		candidate = moved
	}
	if err := CheckRules(g.soup, candidate, g.rules); err != nil {
		return candidate, err
	}
	return candidate, nil
}
