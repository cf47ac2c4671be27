package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tompkins/pkg/render"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

// printCommand creates the print command, which writes the triangle to the
// terminal instead of an image.
func (c *CLI) printCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print a Tompkins triangle to the terminal",
		Example: `  tompkins print --k 4 --n 8 --highlight 25
  tompkins print --k 3 --n 10 --highlight-multi "0:red,2:green"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.Config)
			if err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			sel, skipped, err := opts.Selection()
			if err != nil {
				return err
			}
			for _, s := range skipped {
				c.Logger.Warn("ignoring malformed highlight", "part", s)
			}

			t, err := triangle.Generate(opts.K, opts.N)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Out, StyleTitle.Render(render.Title(t)))
			writeTriangle(c.Out, t, sel)

			if opts.Highlight != nil && !t.Contains(*opts.Highlight) {
				printWarning(c.Out, "%d does not occur in the triangle; nothing highlighted", *opts.Highlight)
			} else if sel != nil {
				printInfo(c.Out, "%d highlighted (%s)", len(render.Marked(t, sel)), sel)
			}
			return nil
		},
	}
	flags.registerTriangle(cmd)
	return cmd
}

// writeTriangle prints t with every row centered on the last one.
// Highlighted entries are bold in their highlight color.
func writeTriangle(w io.Writer, t triangle.Triangle, sel render.Selection) {
	width := len(strconv.FormatUint(t.Max(), 10))
	cell := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	lines := make([]string, t.Len())
	for i, row := range t.Rows() {
		cells := make([]string, len(row))
		for j, v := range row {
			style := cell.Inherit(StyleValue)
			if sel != nil {
				if col, ok := sel.Match(triangle.Position{Row: i, Col: j}, v); ok {
					style = cell.Bold(true).Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)))
				}
			}
			cells[j] = style.Render(strconv.FormatUint(v, 10))
		}
		lines[i] = strings.Join(cells, " ")
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Center, lines...))
}
