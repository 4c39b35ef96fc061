package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"crosswarped.com/soup/internal/config"
	"crosswarped.com/soup/internal/ctxlog"
	"crosswarped.com/soup/pkg/primitives"
)

// DefaultBigQueryTable holds the word lists read with -cloud.
const DefaultBigQueryTable = "soup.words"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Invocation is the parsed command line.
type Invocation struct {
	Config config.Config

	// Cloud loads word lists from BigQuery instead of the embedded data.
	Cloud         bool
	BigQueryTable string
	Credentials   string

	Timeout   time.Duration
	LogLevel  string
	LogFormat string
	// Serve is the listen address of the HTTP API. Empty prints one soup.
	Serve string
}

// Parse processes command-line arguments. It returns the invocation, a
// boolean indicating if the program should exit cleanly, or an *ExitError.
func Parse(ctx context.Context, args []string, output io.Writer) (*Invocation, bool, error) {
	logger := ctxlog.FromContext(ctx)
	flagSet := flag.NewFlagSet("soupcli", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
soupcli - Generates word search puzzles.

Usage:
  soupcli [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL configuration file.")
	cultureFlag := flagSet.String("culture", config.DefaultCulture, "Culture code of the language data, e.g. es-ES or en.")
	sizeFlag := flagSet.Int("size", config.DefaultSize, "Number of rows and columns of the soup.")
	wordsFlag := flagSet.Int("words", config.DefaultNumWords, "Number of words to hide.")
	listFlag := flagSet.String("wordlist", "", "Comma separated words to hide instead of the language word list.")
	directionsFlag := flagSet.String("directions", "forward", "Allowed directions: N,NE,E,SE,S,SW,W,NW or forward, reverse, all.")
	minFlag := flagSet.Int("min", 0, "Minimum word length. 0 is unbounded.")
	maxFlag := flagSet.Int("max", 0, "Maximum word length. 0 is unbounded.")
	seedFlag := flagSet.Uint64("seed", 0, "Seed of the random source. Unset uses the clock.")
	solutionFlag := flagSet.Bool("solution", false, "Highlight the hidden words.")
	columnsFlag := flagSet.Int("columns", 0, "Columns of the word list. 0 fits the width.")
	cloudFlag := flagSet.Bool("cloud", false, "Load words from BigQuery.")
	tableFlag := flagSet.String("bq-table", DefaultBigQueryTable, "BigQuery table with word and language columns.")
	credentialsFlag := flagSet.String("credentials", "", "Service account credentials file for -cloud.")
	timeoutFlag := flagSet.Duration("timeout", time.Minute, "The timeout for the generator.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	serveFlag := flagSet.String("serve", "", "Serve the HTTP API on this address instead of printing a soup.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = loaded
	}

	// Flags given explicitly win over the configuration file.
	var flagErr error
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "culture":
			cfg.Soup.CultureCode = *cultureFlag
		case "size":
			cfg.Soup.Size = *sizeFlag
		case "words":
			cfg.Soup.NumWords = *wordsFlag
		case "wordlist":
			cfg.Soup.Words = splitList(*listFlag)
		case "directions":
			set, err := primitives.ParseDirectionSet(*directionsFlag)
			if err != nil {
				flagErr = err
				return
			}
			cfg.Soup.AllowedDirections = set
		case "min":
			cfg.Soup.MinLength = *minFlag
		case "max":
			cfg.Soup.MaxLength = *maxFlag
		case "seed":
			cfg.Seed, cfg.HasSeed = *seedFlag, true
		case "solution":
			cfg.Print.PrintSolution = *solutionFlag
		case "columns":
			cfg.Print.WordColumns = *columnsFlag
		}
	})
	if flagErr != nil {
		return nil, false, &ExitError{Code: 2, Message: flagErr.Error()}
	}
	if *timeoutFlag <= 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid timeout: must be positive"}
	}

	inv := &Invocation{
		Config:        cfg,
		Cloud:         *cloudFlag,
		BigQueryTable: *tableFlag,
		Credentials:   *credentialsFlag,
		Timeout:       *timeoutFlag,
		LogLevel:      logLevel,
		LogFormat:     logFormat,
		Serve:         *serveFlag,
	}
	logger.Debug("CLI parser finished successfully.", "culture", cfg.Soup.CultureCode, "size", cfg.Soup.Size, "words", cfg.Soup.NumWords)
	return inv, false, nil
}

func splitList(s string) []string {
	var words []string
	for _, w := range strings.Split(s, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}
