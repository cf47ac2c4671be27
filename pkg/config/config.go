// Package config holds the explicit configuration for generating and
// rendering Tompkins triangles.
//
// Defaults live in [Default]. A TOML file loaded with [Load] overrides any
// subset of them; command-line flags are applied on top by the CLI.
//
//	k = 5
//	n = 12
//	formats = ["png", "json"]
//
//	[render]
//	highlight_color = "#d62728"
//	cell_padding = 10
//
//	[cache]
//	ttl = "72h"
//
//	[server]
//	addr = ":9000"
//	max_rows = 24
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tompkins/pkg/errors"
	"github.com/matzehuels/tompkins/pkg/render"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

const (
	DefaultK       = 4
	DefaultN       = 10
	DefaultTTL     = 24 * time.Hour
	DefaultAddr    = ":8080"
	DefaultMaxRows = triangle.MaxRows

	// DefaultServerMaxRows keeps a single request's layout small; PNG
	// canvases for deeper triangles are shrunk to fit render.max_pixels.
	DefaultServerMaxRows = 30
)

// Config is the complete program configuration.
type Config struct {
	K         int      `toml:"k"`
	N         int      `toml:"n"`
	MaxRows   int      `toml:"max_rows"`
	OutputDir string   `toml:"output_dir"`
	Formats   []string `toml:"formats"`

	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig mirrors [render.Options] with colors as strings.
type RenderConfig struct {
	FontSize       float64 `toml:"font_size"`
	MinFontSize    float64 `toml:"min_font_size"`
	FontShrink     float64 `toml:"font_shrink"`
	MinCell        float64 `toml:"min_cell"`
	CellPadding    float64 `toml:"cell_padding"`
	RowScale       float64 `toml:"row_scale"`
	Margin         float64 `toml:"margin"`
	MaxPixels      float64 `toml:"max_pixels"`
	Title          *bool   `toml:"title"`
	Background     string  `toml:"background"`
	TextColor      string  `toml:"text_color"`
	BoxColor       string  `toml:"box_color"`
	HighlightColor string  `toml:"highlight_color"`
}

// CacheConfig configures the artifact cache.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	TTL      string `toml:"ttl"`
}

// ServerConfig configures `tompkins serve`.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Redis string `toml:"redis"`
	// MaxRows bounds n per request. The effective bound is the smaller of
	// this and the top-level max_rows.
	MaxRows int `toml:"max_rows"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := render.DefaultOptions()
	return Config{
		K:       DefaultK,
		N:       DefaultN,
		MaxRows: DefaultMaxRows,
		Formats: []string{render.FormatPNG},
		Render: RenderConfig{
			FontSize:       d.FontSize,
			MinFontSize:    d.MinFontSize,
			FontShrink:     d.FontShrink,
			MinCell:        d.MinCell,
			CellPadding:    d.CellPadding,
			RowScale:       d.RowScale,
			Margin:         d.Margin,
			MaxPixels:      d.MaxPixels,
			Background:     render.HexColor(d.Background),
			TextColor:      render.HexColor(d.TextColor),
			BoxColor:       render.HexColor(d.BoxColor),
			HighlightColor: render.HexColor(d.HighlightColor),
		},
		Cache:  CacheConfig{TTL: DefaultTTL.String()},
		Server: ServerConfig{Addr: DefaultAddr, MaxRows: DefaultServerMaxRows},
	}
}

// Load reads a TOML file on top of [Default]. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for values that can never work.
// K and N are not checked here; they are validated when a triangle is
// generated so flag overrides are reported the same way.
func (c Config) Validate() error {
	if c.MaxRows < 1 || c.MaxRows > triangle.MaxRows {
		return errors.New(errors.ErrCodeInvalidConfig, "max_rows must be in [1, %d], got %d", triangle.MaxRows, c.MaxRows)
	}
	if c.Server.MaxRows < 1 || c.Server.MaxRows > triangle.MaxRows {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_rows must be in [1, %d], got %d", triangle.MaxRows, c.Server.MaxRows)
	}
	for _, f := range c.Formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	if _, err := c.RenderOptions(); err != nil {
		return err
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// ServerMaxRows returns the row bound for server requests.
func (c Config) ServerMaxRows() int {
	return min(c.MaxRows, c.Server.MaxRows)
}

// CacheTTL parses the cache TTL. An empty string means entries never expire.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache ttl")
	}
	return ttl, nil
}

// RenderOptions converts the render section to [render.Options].
func (c Config) RenderOptions() (render.Options, error) {
	r := c.Render
	opts := render.DefaultOptions()
	opts.FontSize = r.FontSize
	opts.MinFontSize = r.MinFontSize
	opts.FontShrink = r.FontShrink
	opts.MinCell = r.MinCell
	opts.CellPadding = r.CellPadding
	opts.RowScale = r.RowScale
	opts.Margin = r.Margin
	opts.MaxPixels = r.MaxPixels
	if r.Title != nil {
		opts.Title = *r.Title
	}

	for _, f := range []struct {
		name string
		src  string
		dst  *render.Color
	}{
		{"background", r.Background, &opts.Background},
		{"text_color", r.TextColor, &opts.TextColor},
		{"box_color", r.BoxColor, &opts.BoxColor},
		{"highlight_color", r.HighlightColor, &opts.HighlightColor},
	} {
		if f.src == "" {
			continue
		}
		col, err := render.ParseColor(f.src)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.%s", f.name)
		}
		*f.dst = col
	}

	if err := opts.Validate(); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "render")
	}
	return opts, nil
}
