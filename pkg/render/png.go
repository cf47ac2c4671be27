package render

import (
	"bytes"
	"context"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/tompkins/pkg/errors"
	"github.com/matzehuels/tompkins/pkg/fonts"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

// boxEdge outlines every entry's box.
var boxEdge = color.NRGBA{0, 0, 0, 38}

// RenderPNG lays out t and rasterizes it to PNG bytes. It stops with
// ctx.Err() when ctx ends before the image is encoded.
func RenderPNG(ctx context.Context, t triangle.Triangle, sel Selection, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// opentype faces are not safe for concurrent use; one set per render
	fs := fonts.NewSet()
	defer fs.Close()

	l, err := ComputeLayout(t, sel, opts, fs)
	if err != nil {
		return nil, err
	}
	return DrawPNG(ctx, l, opts, fs)
}

// DrawPNG rasterizes a computed layout. Lengths are scaled by l.Scale, not
// opts.Scale, so a layout shrunk to fit its pixel budget keeps its
// proportions. ctx is checked once per row.
func DrawPNG(ctx context.Context, l Layout, opts Options, fs *fonts.Set) ([]byte, error) {
	if len(l.Cells) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "layout has no cells")
	}
	s := l.Scale
	dc := gg.NewContext(int(l.Width), int(l.Height))
	dc.SetColor(opts.Background)
	dc.Clear()

	if l.Title != "" {
		face, err := fs.Face(l.TitleSize, fonts.Bold)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "title font")
		}
		dc.SetFontFace(face)
		dc.SetColor(opts.TextColor)
		dc.DrawStringAnchored(l.Title, l.Width/2, l.TitleY, 0.5, 0.5)
	}

	regular, err := fs.Face(l.FontSize, fonts.Regular)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "label font")
	}
	bold, err := fs.Face(l.FontSize, fonts.Bold)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "label font")
	}

	half := l.Box / 2
	for _, c := range l.Cells {
		if c.Col == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		dc.DrawRoundedRectangle(c.X-half, c.Y-half, l.Box, l.Box, l.Box*0.07)
		dc.SetColor(opts.BoxColor)
		dc.FillPreserve()
		dc.SetColor(boxEdge)
		dc.SetLineWidth(0.6 * s)
		dc.Stroke()

		if c.Highlight {
			dc.DrawCircle(c.X, c.Y, l.Ring)
			dc.SetColor(c.Color)
			dc.SetLineWidth(ringStroke * s)
			dc.Stroke()
			dc.SetFontFace(bold)
		} else {
			dc.SetColor(opts.TextColor)
			dc.SetFontFace(regular)
		}
		dc.DrawStringAnchored(c.Label, c.X, c.Y, 0.5, 0.35)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode PNG")
	}
	return buf.Bytes(), nil
}
