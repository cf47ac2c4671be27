package render

import (
	"fmt"
	"math"
)

// Options controls layout and styling. Lengths are in points and are
// multiplied by Scale to get pixels.
type Options struct {
	// FontSize is the label size for a one-row triangle. Each further row
	// shrinks it by FontShrink, down to MinFontSize.
	FontSize    float64
	MinFontSize float64
	FontShrink  float64

	// MinCell is the smallest side of an entry's box. Boxes grow to fit the
	// widest label plus CellPadding on each side.
	MinCell     float64
	CellPadding float64

	// RowScale is the vertical row pitch relative to the horizontal pitch.
	RowScale float64

	Margin float64
	Scale  float64
	Title  bool

	// MaxPixels caps the canvas area. Layouts that would be larger are
	// drawn at a lower scale.
	MaxPixels float64

	Background     Color
	TextColor      Color
	BoxColor       Color
	HighlightColor Color
}

// DefaultMaxPixels bounds the canvas to 25 megapixels, about 100 MB of RGBA.
const DefaultMaxPixels = 25_000_000

// DefaultOptions returns the standard look: dark labels in faint rounded
// boxes on white, highlights in red, rendered at 2x.
func DefaultOptions() Options {
	return Options{
		FontSize:       28,
		MinFontSize:    10,
		FontShrink:     1.1,
		MinCell:        32,
		CellPadding:    8,
		RowScale:       1.0,
		Margin:         24,
		Scale:          2,
		Title:          true,
		MaxPixels:      DefaultMaxPixels,
		Background:     Color{255, 255, 255, 255},
		TextColor:      Color{33, 33, 33, 255},
		BoxColor:       Color{0, 0, 0, 8},
		HighlightColor: Color{214, 39, 40, 255},
	}
}

// Validate reports options that cannot produce an image.
func (o Options) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"font size", o.FontSize},
		{"min font size", o.MinFontSize},
		{"min cell", o.MinCell},
		{"row scale", o.RowScale},
		{"scale", o.Scale},
		{"max pixels", o.MaxPixels},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be positive, got %g", f.name, f.v)
		}
	}
	if o.RowScale < boxFill {
		return fmt.Errorf("row scale must be >= %g so rows do not overlap, got %g", boxFill, o.RowScale)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"font shrink", o.FontShrink},
		{"cell padding", o.CellPadding},
		{"margin", o.Margin},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be non-negative, got %g", f.name, f.v)
		}
	}
	return nil
}

// LabelSize returns the label font size in points for a triangle with the
// given number of rows.
func (o Options) LabelSize(rows int) float64 {
	return math.Max(o.MinFontSize, o.FontSize-o.FontShrink*float64(rows-1))
}
