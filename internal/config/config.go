// Package config loads generator and printer settings from HCL files.
//
// A configuration file looks like:
//
//	culture    = "es-ES"
//	size       = 15
//	num_words  = 12
//	directions = directions.all
//
//	print {
//	  solution = true
//	  columns  = 4
//	}
//
// Every attribute is optional; missing ones keep their defaults.
package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"crosswarped.com/soup/internal/ctxlog"
	"crosswarped.com/soup/pkg/primitives"
	"crosswarped.com/soup/pkg/render"
	"crosswarped.com/soup/pkg/soup"
)

const (
	DefaultCulture  = "es-ES"
	DefaultSize     = 20
	DefaultNumWords = 10
)

// Config is everything needed to generate and print one soup.
type Config struct {
	Soup  soup.Options
	Print render.Options
	// Seed makes the generation reproducible when HasSeed is set.
	Seed    uint64
	HasSeed bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Soup: soup.Options{
			CultureCode:       DefaultCulture,
			Size:              DefaultSize,
			NumWords:          DefaultNumWords,
			AllowedDirections: primitives.ForwardDirections,
		},
		Print: render.DefaultOptions(),
	}
}

// file is the decoding target of a configuration file.
type file struct {
	Culture     *string    `hcl:"culture,optional"`
	Size        *int       `hcl:"size,optional"`
	NumWords    *int       `hcl:"num_words,optional"`
	Words       []string   `hcl:"words,optional"`
	Directions  []string   `hcl:"directions,optional"`
	MinLength   *int       `hcl:"min_length,optional"`
	MaxLength   *int       `hcl:"max_length,optional"`
	MaxAttempts *int       `hcl:"max_attempts,optional"`
	Rules       []string   `hcl:"rules,optional"`
	Seed        *int64     `hcl:"seed,optional"`
	Print       *printFile `hcl:"print,block"`
}

type printFile struct {
	Soup     *bool `hcl:"soup,optional"`
	Words    *bool `hcl:"words,optional"`
	Solution *bool `hcl:"solution,optional"`
	Columns  *int  `hcl:"columns,optional"`
	Width    *int  `hcl:"width,optional"`
}

// Load reads the configuration file at path on top of Default.
func Load(ctx context.Context, path string) (Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding config file.", "path", path)

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	cfg, err := decode(f.Body)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	logger.Debug("Successfully decoded config file.", "path", path, "culture", cfg.Soup.CultureCode, "size", cfg.Soup.Size)
	return cfg, nil
}

// Parse decodes configuration source on top of Default. filename is only
// used in diagnostics.
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}
	return decode(f.Body)
}

func decode(body hcl.Body) (Config, error) {
	var f file
	if diags := gohcl.DecodeBody(body, EvalContext(), &f); diags.HasErrors() {
		return Config{}, diags
	}
	return f.apply(Default())
}

func (f *file) apply(cfg Config) (Config, error) {
	setString(&cfg.Soup.CultureCode, f.Culture)
	setInt(&cfg.Soup.Size, f.Size)
	setInt(&cfg.Soup.NumWords, f.NumWords)
	setInt(&cfg.Soup.MinLength, f.MinLength)
	setInt(&cfg.Soup.MaxLength, f.MaxLength)
	setInt(&cfg.Soup.MaxAttempts, f.MaxAttempts)
	if len(f.Words) > 0 {
		cfg.Soup.Words = f.Words
	}
	if f.Directions != nil {
		set, err := primitives.ParseDirectionList(f.Directions)
		if err != nil {
			return Config{}, &soup.ConfigurationError{Field: "directions", Err: err}
		}
		cfg.Soup.AllowedDirections = set
	}
	for _, name := range f.Rules {
		rule, err := soup.RuleByName(name)
		if err != nil {
			return Config{}, &soup.ConfigurationError{Field: "rules", Err: err}
		}
		cfg.Soup.Rules = append(cfg.Soup.Rules, rule)
	}
	if f.Seed != nil {
		if *f.Seed < 0 {
			return Config{}, &soup.ConfigurationError{Field: "seed", Reason: "must not be negative"}
		}
		cfg.Seed, cfg.HasSeed = uint64(*f.Seed), true
	}
	if p := f.Print; p != nil {
		setBool(&cfg.Print.PrintSoup, p.Soup)
		setBool(&cfg.Print.PrintWords, p.Words)
		setBool(&cfg.Print.PrintSolution, p.Solution)
		setInt(&cfg.Print.WordColumns, p.Columns)
		setInt(&cfg.Print.Width, p.Width)
	}
	return cfg, nil
}

// EvalContext exposes the named direction groups to configuration files as
// directions.forward, directions.reverse, directions.all,
// directions.straight and directions.diagonal.
func EvalContext() *hcl.EvalContext {
	groups := map[string]primitives.DirectionSet{
		"forward":  primitives.ForwardDirections,
		"reverse":  primitives.ReverseDirections,
		"all":      primitives.EveryDirection,
		"straight": primitives.NewDirectionSet(primitives.N, primitives.E, primitives.S, primitives.W),
		"diagonal": primitives.NewDirectionSet(primitives.NE, primitives.SE, primitives.SW, primitives.NW),
	}
	vals := make(map[string]cty.Value, len(groups))
	for name, set := range groups {
		var names []cty.Value
		for _, d := range set.Directions() {
			names = append(names, cty.StringVal(d.String()))
		}
		vals[name] = cty.ListVal(names)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"directions": cty.ObjectVal(vals)},
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
