package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/tompkins/pkg/errors"
	"github.com/matzehuels/tompkins/pkg/fonts"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

const (
	// boxFill is the share of the cell pitch covered by an entry's box.
	boxFill = 0.76

	// ringStroke is the line width of a highlight ring in points.
	ringStroke = 2.2

	// maxShrink bounds how often ComputeLayout lowers the scale to fit
	// Options.MaxPixels.
	maxShrink = 8
)

// Measurer reports the advance width and line height of text in pixels.
// [*fonts.Set] satisfies it.
type Measurer interface {
	Measure(text string, size float64, w fonts.Weight) (width, height float64, err error)
}

// Cell is one placed entry. X and Y are the center of its box in pixels.
type Cell struct {
	triangle.Position
	Value     uint64
	Label     string
	X, Y      float64
	Highlight bool
	Color     Color
}

// Layout is a fully placed triangle ready to be drawn.
type Layout struct {
	Width, Height float64
	Scale         float64 // pixels per point; below Options.Scale when shrunk to fit
	Box           float64 // side of an entry's box
	Pitch         float64 // horizontal distance between neighbors
	RowPitch      float64
	Ring          float64 // radius of a highlight ring
	FontSize      float64 // label size in pixels
	Title         string
	TitleSize     float64
	TitleY        float64
	Cells         []Cell
	Rows          int
}

// Highlighted returns the number of highlighted cells.
func (l Layout) Highlighted() int {
	n := 0
	for _, c := range l.Cells {
		if c.Highlight {
			n++
		}
	}
	return n
}

// Title returns the caption drawn above the triangle.
func Title(t triangle.Triangle) string {
	return fmt.Sprintf("Tompkins Triangle  T_%d  (c=%d), rows 0..%d", t.K(), t.Seed(), t.Len()-1)
}

// ComputeLayout places every entry of t.
//
// Row i is shifted right by half a pitch per entry it has fewer than the
// last row, which centers every row on the widest one. The box side fits the
// widest label (highlighted labels are measured bold) plus padding, so the
// horizontal extent grows with the digit count of the largest entry.
//
// When the canvas at opts.Scale would exceed opts.MaxPixels, the scale is
// lowered until it fits. A layout that still does not fit after maxShrink
// attempts fails with RENDER_FAILED.
func ComputeLayout(t triangle.Triangle, sel Selection, opts Options, m Measurer) (Layout, error) {
	if t.Empty() {
		return Layout{}, errors.New(errors.ErrCodeRenderFailed, "cannot lay out an empty triangle")
	}
	if err := opts.Validate(); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "invalid render options")
	}

	s := opts.Scale
	for range maxShrink {
		l, err := layoutAt(t, sel, opts, m, s)
		if err != nil {
			return Layout{}, err
		}
		area := l.Width * l.Height
		if area <= opts.MaxPixels {
			return l, nil
		}
		s *= math.Sqrt(opts.MaxPixels/area) * 0.98
	}
	return Layout{}, errors.New(errors.ErrCodeRenderFailed,
		"%d rows of T_%d do not fit in %g pixels", t.Len(), t.K(), opts.MaxPixels)
}

func layoutAt(t triangle.Triangle, sel Selection, opts Options, m Measurer, s float64) (Layout, error) {
	n := t.Len()
	l := Layout{
		Rows:     n,
		Scale:    s,
		FontSize: opts.LabelSize(n) * s,
	}

	var maxW, maxH float64
	for i, row := range t.Rows() {
		for j, v := range row {
			c := Cell{Position: triangle.Position{Row: i, Col: j}, Value: v, Label: strconv.FormatUint(v, 10)}
			if sel != nil {
				c.Color, c.Highlight = sel.Match(c.Position, v)
			}
			weight := fonts.Regular
			if c.Highlight {
				weight = fonts.Bold
			}
			w, h, err := m.Measure(c.Label, l.FontSize, weight)
			if err != nil {
				return Layout{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "measure label")
			}
			maxW, maxH = math.Max(maxW, w), math.Max(maxH, h)
			l.Cells = append(l.Cells, c)
		}
	}

	pad := opts.CellPadding * s
	l.Box = math.Max(opts.MinCell*s, math.Max(maxW, maxH)+2*pad)
	l.Pitch = l.Box / boxFill
	l.RowPitch = l.Pitch * opts.RowScale
	l.Ring = ringRadius(l.Box, l.Pitch, l.RowPitch, s)
	margin := opts.Margin * s

	var titleBand float64
	if opts.Title {
		l.Title = Title(t)
		l.TitleSize = l.FontSize + 2*s
		tw, th, err := m.Measure(l.Title, l.TitleSize, fonts.Bold)
		if err != nil {
			return Layout{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "measure title")
		}
		titleBand = 2 * th
		l.TitleY = margin + th
		// a narrow triangle must still fit its title
		l.Width = tw + 2*margin
	}

	gridW := float64(n-1)*l.Pitch + l.Box
	gridH := float64(n-1)*l.RowPitch + l.Box
	l.Width = math.Ceil(math.Max(l.Width, gridW+2*margin))
	l.Height = math.Ceil(gridH + titleBand + 2*margin)

	left := (l.Width-gridW)/2 + l.Box/2
	top := margin + titleBand + l.Box/2
	for k := range l.Cells {
		c := &l.Cells[k]
		c.X = left + (float64(c.Col)+float64(n-1-c.Row)/2)*l.Pitch
		c.Y = top + float64(c.Row)*l.RowPitch
	}
	return l, nil
}

// ringRadius sizes highlight rings so that rings on two neighboring entries,
// in the same row or in adjacent rows, never touch. The nearest neighbor is
// either a pitch away in the same row or half a pitch across and one row
// pitch down.
func ringRadius(box, pitch, rowPitch, s float64) float64 {
	nearest := math.Min(pitch, math.Hypot(pitch/2, rowPitch))
	return math.Min(box*0.6, (nearest-ringStroke*s)/2-0.5*s)
}
