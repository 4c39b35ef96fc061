// Package httpapi serves soup generation over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"crosswarped.com/soup/internal/config"
	"crosswarped.com/soup/internal/ctxlog"
	"crosswarped.com/soup/pkg/language"
	"crosswarped.com/soup/pkg/primitives"
	"crosswarped.com/soup/pkg/render"
	"crosswarped.com/soup/pkg/soup"
)

const (
	// MaxSize bounds the soups a request can ask for.
	MaxSize = 60
	// DefaultTimeout bounds a single generation.
	DefaultTimeout = 10 * time.Second
)

// Handler generates soups from requests, filling unset fields from defaults.
type Handler struct {
	provider language.Provider
	defaults config.Config
	logger   *slog.Logger
	timeout  time.Duration
	seed     func() uint64
}

// NewHandler creates a handler reading language data from provider.
// A nil logger discards output.
func NewHandler(provider language.Provider, defaults config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		provider: provider,
		defaults: defaults,
		logger:   logger,
		timeout:  DefaultTimeout,
		seed:     rand.Uint64,
	}
}

// NewRouter configures all routes and returns the router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api/soups", func(r chi.Router) {
		r.Post("/", h.GenerateJSON)
		r.Post("/text", h.GenerateText)
	})
	return r
}

// Request describes the soup to generate. Zero values keep the defaults.
type Request struct {
	Culture    string   `json:"culture,omitempty"`
	Size       int      `json:"size,omitempty"`
	NumWords   int      `json:"num_words,omitempty"`
	Words      []string `json:"words,omitempty"`
	Directions string   `json:"directions,omitempty"`
	MinLength  int      `json:"min_length,omitempty"`
	MaxLength  int      `json:"max_length,omitempty"`
	Seed       *uint64  `json:"seed,omitempty"`
	Solution   bool     `json:"solution,omitempty"`
	Columns    int      `json:"columns,omitempty"`
}

// Placement is a hidden word and where it starts.
type Placement struct {
	Word      string `json:"word"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
}

// Response is a generated soup.
type Response struct {
	Seed  uint64      `json:"seed"`
	Size  int         `json:"size"`
	Rows  []string    `json:"rows"`
	Used  [][]bool    `json:"used"`
	Words []Placement `json:"words"`
}

// GenerateJSON handles POST /api/soups.
func (h *Handler) GenerateJSON(w http.ResponseWriter, r *http.Request) {
	s, seed, _, ok := h.generate(w, r)
	if !ok {
		return
	}
	resp := Response{
		Seed:  seed,
		Size:  s.Size,
		Rows:  make([]string, 0, s.Size),
		Used:  s.Used,
		Words: make([]Placement, 0, s.Len()),
	}
	for y := range s.Size {
		resp.Rows = append(resp.Rows, s.Row(y))
	}
	for _, e := range s.Entries() {
		resp.Words = append(resp.Words, Placement{Word: e.Name, X: e.Origin.X, Y: e.Origin.Y, Direction: e.Direction.String()})
	}
	respondJSON(w, http.StatusOK, resp)
}

// GenerateText handles POST /api/soups/text. Solution cells are lower-cased.
func (h *Handler) GenerateText(w http.ResponseWriter, r *http.Request) {
	s, seed, opts, ok := h.generate(w, r)
	if !ok {
		return
	}
	opts.Highlight = strings.ToLower
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Soup-Seed", formatSeed(seed))
	if err := render.NewPrinter(w, opts).Print(s); err != nil {
		h.logger.Error("Failed to write soup.", "error", err)
	}
}

// Generate serves either format, chosen by the format query parameter.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	if r.URL.Query().Get("format") == "text" {
		h.GenerateText(w, r)
		return
	}
	h.GenerateJSON(w, r)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) (*soup.Soup, uint64, render.Options, bool) {
	var req Request
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, 0, render.Options{}, false
	}

	cfg, err := h.apply(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, 0, render.Options{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	logger := h.logger.With("request_id", middleware.GetReqID(r.Context()))
	ctx = ctxlog.WithLogger(ctx, logger)

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	s, err := soup.Build(ctx, cfg.Soup, h.provider, rng, logger)
	if err != nil {
		var cfgErr *soup.ConfigurationError
		switch {
		case errors.As(err, &cfgErr):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, soup.ErrGenerationExhausted):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			respondError(w, http.StatusGatewayTimeout, "generation timed out")
		default:
			logger.Error("Soup generation failed.", "error", err)
			respondError(w, http.StatusInternalServerError, "generation failed")
		}
		return nil, 0, render.Options{}, false
	}
	return s, cfg.Seed, cfg.Print, true
}

// apply overlays req on the defaults.
func (h *Handler) apply(req Request) (config.Config, error) {
	cfg := h.defaults
	if req.Culture != "" {
		cfg.Soup.CultureCode = req.Culture
	}
	if req.Size != 0 {
		cfg.Soup.Size = req.Size
	}
	if cfg.Soup.Size > MaxSize {
		return cfg, &soup.ConfigurationError{Field: "size", Reason: fmt.Sprintf("must not exceed %d", MaxSize)}
	}
	if req.NumWords != 0 {
		cfg.Soup.NumWords = req.NumWords
	}
	if len(req.Words) > 0 {
		cfg.Soup.Words = req.Words
	}
	if req.Directions != "" {
		set, err := primitives.ParseDirectionSet(req.Directions)
		if err != nil {
			return cfg, &soup.ConfigurationError{Field: "directions", Err: err}
		}
		cfg.Soup.AllowedDirections = set
	}
	if req.MinLength != 0 {
		cfg.Soup.MinLength = req.MinLength
	}
	if req.MaxLength != 0 {
		cfg.Soup.MaxLength = req.MaxLength
	}
	switch {
	case req.Seed != nil:
		cfg.Seed = *req.Seed
	case !cfg.HasSeed:
		cfg.Seed = h.seed()
	}
	cfg.Print.PrintSolution = cfg.Print.PrintSolution || req.Solution
	if req.Columns > 0 {
		cfg.Print.WordColumns = req.Columns
	}
	return cfg, nil
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("Request served.",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
