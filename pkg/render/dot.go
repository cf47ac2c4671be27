package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tompkins/pkg/errors"
	"github.com/matzehuels/tompkins/pkg/fonts"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

// ToDOT converts t to a Graphviz DOT graph of its recurrence: every
// interior entry has an edge from each of the two entries it sums. Entries
// of one row share a rank. Highlighted entries are filled with their color.
// Text is set in [fonts.FontFamily], the family the PNG renderer embeds.
func ToDOT(t triangle.Triangle, sel Selection) string {
	var buf bytes.Buffer
	buf.WriteString("digraph T {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  fontname=%q;\n", fonts.FontFamily)
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=white, fontname=%q, fontsize=14, fixedsize=false];\n", fonts.FontFamily)
	fmt.Fprintf(&buf, "  edge [arrowsize=0.5, color=\"#999999\", fontname=%q];\n", fonts.FontFamily)
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", Title(t))
	buf.WriteString("\n")

	rows := t.Rows()
	for i, row := range rows {
		buf.WriteString("  { rank=same;")
		for j, v := range row {
			p := triangle.Position{Row: i, Col: j}
			attrs := fmt.Sprintf("label=\"%d\"", v)
			if sel != nil {
				if c, ok := sel.Match(p, v); ok {
					attrs += fmt.Sprintf(", fillcolor=%q, penwidth=2", HexColor(c))
				}
			}
			fmt.Fprintf(&buf, " %s [%s];", nodeID(p), attrs)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for i := 2; i < len(rows); i++ {
		for j := 1; j < i; j++ {
			to := nodeID(triangle.Position{Row: i, Col: j})
			fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(triangle.Position{Row: i - 1, Col: j - 1}), to)
			fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(triangle.Position{Row: i - 1, Col: j}), to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(p triangle.Position) string {
	return fmt.Sprintf("r%dc%d", p.Row, p.Col)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render SVG")
	}
	return buf.Bytes(), nil
}
