package language

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFallbackCodes(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"es-ES": {"es-es", "es"},
		"en_us": {"en-us", "en"},
		"es":    {"es"},
		"":      nil,
	}
	for in, want := range tests {
		if diff := cmp.Diff(want, FallbackCodes(in)); diff != "" {
			t.Errorf("FallbackCodes(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	in := "abcñ\nniño\n\n# comment\n  casa  \n"
	data, err := Parse(strings.NewReader(in), "es", true)
	require.NoError(t, err)
	require.Equal(t, "es", data.Code)
	require.Equal(t, []rune("ABCÑ"), data.Letters)
	require.Equal(t, []string{"NIÑO", "CASA"}, data.Lemmata)

	data, err = Parse(strings.NewReader(in), "es", false)
	require.NoError(t, err)
	require.Empty(t, data.Lemmata)

	_, err = Parse(strings.NewReader(""), "es", true)
	require.Error(t, err)
}

func TestFSProviderFallsBackToBaseLanguage(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"Data/Dictionary.es.txt": {Data: []byte("ABC\nuno\ndos\n")},
	}
	p := NewFSProvider(fsys, "Data")

	data, err := p.Load(context.Background(), "es-ES", true)
	require.NoError(t, err)
	require.Equal(t, "es", data.Code)
	require.Equal(t, []string{"UNO", "DOS"}, data.Lemmata)
}

func TestFSProviderPrefersRegionalResource(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"Dictionary.en.txt":    {Data: []byte("ABC\ngeneric\n")},
		"Dictionary.en-us.txt": {Data: []byte("ABC\nregional\n")},
	}
	data, err := NewFSProvider(fsys, "").Load(context.Background(), "en-US", true)
	require.NoError(t, err)
	require.Equal(t, "en-us", data.Code)
	require.Equal(t, []string{"REGIONAL"}, data.Lemmata)
}

func TestFSProviderNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewFSProvider(fstest.MapFS{}, "").Load(context.Background(), "fr-FR", true)
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrNotExist))

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, []string{"fr-fr", "fr"}, notFound.Tried)
}

func TestEmbeddedLanguages(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"es-ES", "en"} {
		data, err := Embedded().Load(context.Background(), code, true)
		require.NoError(t, err, code)
		require.NotEmpty(t, data.Letters, code)
		require.GreaterOrEqual(t, len(data.Lemmata), 50, code)
		for _, w := range data.Lemmata {
			require.Equal(t, Upper(data.Code, w), w)
		}
	}
}
