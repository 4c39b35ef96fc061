package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"crosswarped.com/soup/internal/cli"
	"crosswarped.com/soup/pkg/soup"
)

func TestRun_PrintsSoup(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-culture", "en", "-size", "8", "-words", "4", "-seed", "11", "-log-level", "error"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.True(t, strings.HasPrefix(lines[0], "┌───┬"))
	require.Equal(t, "└"+strings.Repeat("───┴", 7)+"───┘", lines[16])
	require.Empty(t, lines[17])
	require.Len(t, strings.Fields(strings.Join(lines[18:], " ")), 4)
}

func TestRun_SeedIsReproducible(t *testing.T) {
	t.Parallel()

	args := []string{"-size", "10", "-words", "6", "-directions", "all", "-seed", "5", "-log-level", "error"}
	first, second := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, run(context.Background(), first, args))
	require.NoError(t, run(context.Background(), second, args))
	require.Equal(t, first.String(), second.String())
}

func TestRun_ConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "soup.hcl")
	src := "culture = \"en\"\nsize = 6\nnum_words = 2\nwords = [\"sun\", \"sea\"]\nseed = 1\nprint {\n  soup = false\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, []string{"-config", path, "-log-level", "error"}))
	require.Equal(t, "SEA SUN\n", out.String())
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, []string{"-h"}))
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_ConfigurationError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, []string{"-culture", "xx", "-log-level", "error"})
	var cfgErr *soup.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestRun_Exhausted(t *testing.T) {
	t.Parallel()

	args := []string{"-wordlist", "ab,cd,ef,gh,ij", "-size", "2", "-words", "5", "-directions", "all", "-log-level", "error"}
	err := run(context.Background(), &bytes.Buffer{}, args)
	require.ErrorIs(t, err, soup.ErrGenerationExhausted)
}

func TestRun_CloudRejectsBadTable(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, []string{"-cloud", "-bq-table", "bad table", "-log-level", "error"})
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
}

func TestRun_ServeStopsWithContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, run(ctx, &bytes.Buffer{}, []string{"-serve", "127.0.0.1:0", "-log-level", "error"}))
}
