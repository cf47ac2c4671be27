// Package pipeline runs the generate → render → write pipeline for Tompkins.
//
// The CLI and the HTTP server both go through a [Runner] so validation,
// caching and error codes behave the same everywhere.
//
// # Architecture
//
//  1. Validate: k, n, formats and highlight options are checked before any
//     computation. Failures carry INVALID_PARAMETER or INVALID_FORMAT.
//  2. Generate: [triangle.Generate] builds the triangle.
//  3. Render: each requested format is rendered (or read from the cache).
//  4. Write: when an output is requested, every artifact is written
//     atomically, and only after all of them rendered successfully.
//     Failures carry RENDER_FAILED.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    K: 4, N: 10,
//	    Highlight: ptr(uint64(25)),
//	    Formats:   []string{"png"},
//	    Write:     true,
//	})
//	fmt.Println(res.Paths["png"])
package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/tompkins/pkg/errors"
	"github.com/matzehuels/tompkins/pkg/render"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

// Options configures one pipeline run.
type Options struct {
	K int `json:"k"`
	N int `json:"n"`

	// MaxRows bounds N; 0 means triangle.MaxRows.
	MaxRows int `json:"-"`

	// Highlight marks every entry equal to the value.
	Highlight *uint64 `json:"highlight,omitempty"`
	// Diagonal marks descending diagonal j (0 = right edge).
	Diagonal *int `json:"diagonal,omitempty"`
	// DiagonalColors is a "j:color,..." list of extra diagonals.
	DiagonalColors string `json:"diagonal_colors,omitempty"`

	Formats []string `json:"formats,omitempty"`
	// Render is the zero value for render.DefaultOptions.
	Render render.Options `json:"-"`

	// Write stores artifacts on disk. Output is a file path for a single
	// format or a base path for several; empty means the default name in
	// OutputDir (or the working directory).
	Write     bool   `json:"-"`
	Output    string `json:"-"`
	OutputDir string `json:"-"`

	// CacheTTL is the lifetime of cached artifacts; 0 never expires.
	CacheTTL time.Duration `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Triangle triangle.Triangle

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Paths contains written files keyed by format (only when Write is set).
	Paths map[string]string

	// Highlighted is the number of entries the selection marked.
	Highlighted int

	// Skipped lists malformed DiagonalColors parts that were ignored.
	Skipped []string

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GenerateTime time.Duration
	RenderTime   time.Duration
	CacheHits    int
}

// Validate checks the options without computing anything.
func (o *Options) Validate() error {
	if err := errors.ValidateOrder(o.K); err != nil {
		return err
	}
	maxRows := o.MaxRows
	if maxRows <= 0 {
		maxRows = triangle.MaxRows
	}
	if err := errors.ValidateRows(o.N, maxRows); err != nil {
		return err
	}
	if o.Diagonal != nil && *o.Diagonal < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "diagonal must be >= 0, got %d", *o.Diagonal)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatPNG}
	}
	for _, f := range o.Formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.Render == (render.Options{}) {
		o.Render = render.DefaultOptions()
	}
	if err := o.Render.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, err, "render options")
	}
	return nil
}

// Selection builds the highlight selection: the value first, then the
// single diagonal, then the colored diagonals. It returns nil when nothing
// is highlighted.
func (o *Options) Selection() (render.Selection, []string, error) {
	var sel render.MultiSelection
	if o.Highlight != nil {
		sel = append(sel, render.ValueSelection{Value: *o.Highlight, Color: o.Render.HighlightColor})
	}
	if o.Diagonal != nil {
		sel = append(sel, render.DiagonalSelection{Diagonal: *o.Diagonal, Color: o.Render.HighlightColor})
	}
	extra, skipped, err := render.ParseDiagonalColors(o.DiagonalColors)
	if err != nil {
		return nil, skipped, err
	}
	sel = append(sel, extra...)

	switch len(sel) {
	case 0:
		return nil, skipped, nil
	case 1:
		return sel[0], skipped, nil
	default:
		return sel, skipped, nil
	}
}

// OutputPath returns where the artifact of the given format is written.
//
// Without Output the default name tompkins_triangle_k{k}_n{n}.{format} is
// used. With a single format Output is used verbatim; with several, its
// format extension is replaced per format.
func (o *Options) OutputPath(format string) string {
	if o.Output == "" {
		return filepath.Join(o.OutputDir, render.DefaultFilename(o.K, o.N, format))
	}
	if len(o.Formats) <= 1 {
		return o.Output
	}
	base := o.Output
	if ext := filepath.Ext(base); render.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

// checkOutputs verifies every destination before anything is written.
func (o *Options) checkOutputs() error {
	if o.OutputDir != "" {
		if info, err := os.Stat(o.OutputDir); err != nil || !info.IsDir() {
			return errors.New(errors.ErrCodeRenderFailed, "output directory %s does not exist", o.OutputDir)
		}
	}
	for _, f := range o.Formats {
		path := o.OutputPath(f)
		if err := errors.ValidateOutputPath(path); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "output %s is not writable", path)
		}
	}
	return nil
}
