package soup

import (
	"errors"
	"fmt"

	"crosswarped.com/soup/pkg/primitives"
)

var (
	// ErrRepositionFailed is returned when a candidate cannot be moved onto a
	// common letter of the word it intersects. The generator discards the
	// candidate and draws again.
	ErrRepositionFailed = errors.New("reposition failed")

	// ErrGenerationExhausted is returned when the retry cap is reached before
	// every word could be placed.
	ErrGenerationExhausted = errors.New("generation exhausted")
)

// ConfigurationError reports options or language data that make generation
// impossible before it starts.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Field != "" {
		msg += " in " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// RuleViolationError names the first rule a candidate failed.
type RuleViolationError struct {
	Rule  string
	Entry primitives.WordEntry
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("%s violates rule %q", e.Entry, e.Rule)
}

// ExhaustedError carries the progress made when ErrGenerationExhausted was hit.
type ExhaustedError struct {
	Placed    int
	Requested int
	Attempts  int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v: placed %d of %d words, gave up after %d attempts",
		ErrGenerationExhausted, e.Placed, e.Requested, e.Attempts)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrGenerationExhausted
}
