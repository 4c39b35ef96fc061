package soup

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"crosswarped.com/soup/pkg/language"
)

// Build resolves the language data for opts.CultureCode and generates a soup.
// Words in opts take precedence over the language word list.
func Build(ctx context.Context, opts Options, provider language.Provider, rng *rand.Rand, logger *slog.Logger) (*Soup, error) {
	data, err := provider.Load(ctx, opts.CultureCode, len(opts.Words) == 0)
	if err != nil {
		return nil, &ConfigurationError{Field: "culture", Reason: "cannot load language data", Err: err}
	}
	if len(opts.Words) == 0 {
		opts.Words = data.Lemmata
	}
	if logger != nil {
		logger.Debug("Language data resolved.", "requested", opts.CultureCode, "code", data.Code, "words", len(opts.Words))
	}

	g, err := NewGenerator(opts, data.Letters, rng, logger)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx)
}
