// Package language resolves a culture code to the alphabet and word list used
// to build a soup.
//
// A language resource is plain text: the first line is the alphabet used for
// filler letters, every following non-blank line is a word. Lines starting
// with '#' are comments.
package language

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
)

// Data is the language dependent input of the generator.
type Data struct {
	// Code is the culture code the data was actually found for.
	Code string
	// Letters is the alphabet, upper-cased.
	Letters []rune
	// Lemmata is the word list, upper-cased. Empty when not requested.
	Lemmata []string
}

// Provider loads language data.
type Provider interface {
	// Load resolves cultureCode, falling back from a regional code such as
	// "es-ES" to its base language "es". The word list is only read when
	// withLemmata is true.
	Load(ctx context.Context, cultureCode string, withLemmata bool) (*Data, error)
}

// NotFoundError is returned when no resource exists for a culture code or
// its fallbacks.
type NotFoundError struct {
	Code  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("language data for %q not found (tried %s)", e.Code, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// FallbackCodes returns the codes tried for cultureCode, most specific first.
func FallbackCodes(cultureCode string) []string {
	code := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(cultureCode), "_", "-"))
	if code == "" {
		return nil
	}
	codes := []string{code}

	var base string
	if tag, err := xlanguage.Parse(code); err == nil {
		if b, conf := tag.Base(); conf != xlanguage.No {
			base = b.String()
		}
	}
	if base == "" {
		base, _, _ = strings.Cut(code, "-")
	}
	if base != code {
		codes = append(codes, base)
	}
	return codes
}

// Parse reads a language resource for code.
func Parse(r io.Reader, code string, withLemmata bool) (*Data, error) {
	caser := upperCaser(code)
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read alphabet for %s: %w", code, err)
		}
		return nil, fmt.Errorf("language data for %s is empty", code)
	}
	alphabet := strings.TrimPrefix(scanner.Text(), "\ufeff")
	letters := []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, caser.String(alphabet)))
	if len(letters) == 0 {
		return nil, fmt.Errorf("language data for %s has no alphabet", code)
	}

	data := &Data{Code: code, Letters: letters}
	if !withLemmata {
		return data, nil
	}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		data.Lemmata = append(data.Lemmata, caser.String(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read words for %s: %w", code, err)
	}
	return data, nil
}

// Upper upper-cases s with the rules of the language named by code.
func Upper(code, s string) string {
	return upperCaser(code).String(s)
}

func upperCaser(code string) cases.Caser {
	tag, err := xlanguage.Parse(code)
	if err != nil {
		tag = xlanguage.Und
	}
	return cases.Upper(tag)
}
