package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crosswarped.com/soup/internal/config"
	"crosswarped.com/soup/pkg/primitives"
)

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	inv, exit, err := Parse(context.Background(), nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	require.Equal(t, config.Default(), inv.Config)
	require.Equal(t, time.Minute, inv.Timeout)
	require.Equal(t, "info", inv.LogLevel)
	require.Equal(t, "text", inv.LogFormat)
	require.Equal(t, DefaultBigQueryTable, inv.BigQueryTable)
	require.False(t, inv.Cloud)
	require.Empty(t, inv.Serve)
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-culture", "en", "-size", "12", "-words", "5", "-wordlist", "uno, dos,,tres",
		"-directions", "N,W", "-min", "3", "-max", "6", "-seed", "99", "-solution",
		"-columns", "2", "-cloud", "-bq-table", "p.d.t", "-timeout", "5s",
		"-log-level", "DEBUG", "-log-format", "json", "-serve", ":8080",
	}
	inv, exit, err := Parse(context.Background(), args, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	opts := inv.Config.Soup
	require.Equal(t, "en", opts.CultureCode)
	require.Equal(t, 12, opts.Size)
	require.Equal(t, 5, opts.NumWords)
	require.Equal(t, []string{"uno", "dos", "tres"}, opts.Words)
	require.Equal(t, primitives.NewDirectionSet(primitives.N, primitives.W), opts.AllowedDirections)
	require.Equal(t, 3, opts.MinLength)
	require.Equal(t, 6, opts.MaxLength)
	require.True(t, inv.Config.HasSeed)
	require.Equal(t, uint64(99), inv.Config.Seed)
	require.True(t, inv.Config.Print.PrintSolution)
	require.Equal(t, 2, inv.Config.Print.WordColumns)
	require.True(t, inv.Cloud)
	require.Equal(t, "p.d.t", inv.BigQueryTable)
	require.Equal(t, 5*time.Second, inv.Timeout)
	require.Equal(t, "debug", inv.LogLevel)
	require.Equal(t, "json", inv.LogFormat)
	require.Equal(t, ":8080", inv.Serve)
}

func TestParseFlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "soup.hcl")
	require.NoError(t, os.WriteFile(path, []byte("size = 9\nnum_words = 4\nculture = \"en\"\n"), 0o600))

	inv, _, err := Parse(context.Background(), []string{"-config", path, "-size", "11"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, 11, inv.Config.Soup.Size)
	require.Equal(t, 4, inv.Config.Soup.NumWords)
	require.Equal(t, "en", inv.Config.Soup.CultureCode)
}

func TestParseHelp(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	inv, exit, err := Parse(context.Background(), []string{"-h"}, out)
	require.NoError(t, err)
	require.True(t, exit)
	require.Nil(t, inv)
	require.Contains(t, out.String(), "Usage:")
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"unknown flag":  {"-nope"},
		"positional":    {"extra"},
		"log format":    {"-log-format", "xml"},
		"log level":     {"-log-level", "loud"},
		"directions":    {"-directions", "UP"},
		"timeout":       {"-timeout", "0s"},
		"missing file":  {"-config", filepath.Join(t.TempDir(), "missing.hcl")},
		"invalid value": {"-size", "big"},
	}
	for name, args := range tests {
		_, exit, err := Parse(context.Background(), args, &bytes.Buffer{})
		require.False(t, exit, name)
		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr), name)
		require.Equal(t, 2, exitErr.Code, name)
	}
}
