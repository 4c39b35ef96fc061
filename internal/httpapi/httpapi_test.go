package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"crosswarped.com/soup/internal/config"
	"crosswarped.com/soup/pkg/language"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := NewHandler(language.Embedded(), config.Default(), nil)
	h.seed = func() uint64 { return 1234 }
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
}

func TestGenerateJSON(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp := post(t, srv.URL+"/api/soups", `{"culture":"en","size":10,"num_words":5,"directions":"all","seed":7}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, uint64(7), got.Seed)
	require.Equal(t, 10, got.Size)
	require.Len(t, got.Rows, 10)
	require.Len(t, got.Used, 10)
	require.Len(t, got.Words, 5)
	for _, p := range got.Words {
		require.NotEmpty(t, p.Word)
		require.True(t, got.Used[p.Y][p.X], p.Word)
		require.Equal(t, []rune(p.Word)[0], []rune(got.Rows[p.Y])[p.X], p.Word)
	}
}

func TestGenerateJSONIsReproducible(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	var first, second Response
	require.NoError(t, json.NewDecoder(post(t, srv.URL+"/api/soups", `{"size":8,"num_words":3}`).Body).Decode(&first))
	require.Equal(t, uint64(1234), first.Seed)
	require.NoError(t, json.NewDecoder(post(t, srv.URL+"/api/soups", `{"size":8,"num_words":3,"seed":1234}`).Body).Decode(&second))
	require.Equal(t, first, second)
}

func TestGenerateJSONWithoutWords(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Soup.NumWords = 0
	srv := httptest.NewServer(NewRouter(NewHandler(language.Embedded(), cfg, nil)))
	t.Cleanup(srv.Close)

	resp := post(t, srv.URL+"/api/soups", `{"size":5,"seed":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `"words":[]`)

	var got Response
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Rows, 5)
	require.NotNil(t, got.Words)
	require.Empty(t, got.Words)
}

func TestGenerateText(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp := post(t, srv.URL+"/api/soups/text", `{"words":["sol","mar"],"size":5,"num_words":2,"solution":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "1234", resp.Header.Get("X-Soup-Seed"))

	var b strings.Builder
	_, err := io.Copy(&b, resp.Body)
	require.NoError(t, err)
	text := b.String()
	require.True(t, strings.HasPrefix(text, "┌───┬"), text)
	require.Contains(t, text, "MAR SOL\n")
	require.Regexp(t, `│ [a-zñ] │`, text)
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	tests := map[string]struct {
		body   string
		status int
	}{
		"malformed":      {`{"size":`, http.StatusBadRequest},
		"unknown field":  {`{"colour":"red"}`, http.StatusBadRequest},
		"too big":        {`{"size":500}`, http.StatusBadRequest},
		"bad direction":  {`{"directions":"UP"}`, http.StatusBadRequest},
		"bad culture":    {`{"culture":"xx"}`, http.StatusBadRequest},
		"too many words": {`{"words":["ab"],"num_words":2}`, http.StatusBadRequest},
		"impossible": {
			`{"words":["ab","cd","ef","gh","ij"],"size":2,"num_words":5,"directions":"all"}`,
			http.StatusUnprocessableEntity,
		},
	}
	for name, tt := range tests {
		resp := post(t, srv.URL+"/api/soups", tt.body)
		require.Equal(t, tt.status, resp.StatusCode, name)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body), name)
		require.NotEmpty(t, body["error"], name)
	}
}

func TestGenerateFormatParameter(t *testing.T) {
	t.Parallel()

	h := NewHandler(language.Embedded(), config.Default(), nil)

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/?format=text", strings.NewReader(`{"size":6,"num_words":2}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
