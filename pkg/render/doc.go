// Package render turns a Tompkins triangle into output artifacts.
//
// # Overview
//
// Rendering has two stages, mirroring the layout/sink split used throughout
// Tompkins:
//
//  1. [ComputeLayout] places every entry on a canvas. Rows are stacked
//     vertically and centered on the last (widest) row. The cell pitch is
//     derived from the widest label in the triangle so labels never overlap.
//  2. A sink draws the layout: [RenderPNG] rasterizes it with gg, while
//     [ToDOT] and [RenderSVG] emit the recurrence graph through Graphviz and
//     [RenderJSON] exports the data.
//
// The PNG canvas is bounded by [Options.MaxPixels]; a triangle too large for
// it at the requested scale is drawn smaller.
//
// [Render] dispatches on a format name and [WriteFile] stores the result
// atomically so a failed render never leaves a partial image behind.
//
// # Highlighting
//
// A [Selection] decides which entries are emphasized and in which color.
// [ValueSelection] marks every entry equal to a value, [DiagonalSelection]
// marks a descending diagonal, and [MultiSelection] combines several. A nil
// Selection draws every entry uniformly.
//
//	sel := render.ValueSelection{Value: 25, Color: render.DefaultOptions().HighlightColor}
//	png, err := render.RenderPNG(ctx, t, sel, render.DefaultOptions())
package render
