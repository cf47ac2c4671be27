package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tompkins/pkg/config"
	"github.com/matzehuels/tompkins/pkg/pipeline"
	"github.com/matzehuels/tompkins/pkg/render"
)

// renderFlags holds the command-line flags shared by render, print and the
// root command. Only flags the user set override the configuration.
type renderFlags struct {
	k         int    // polygonal order
	n         int    // number of rows
	highlight uint64 // value to highlight (every occurrence)
	diagonal  int    // descending diagonal to highlight
	multi     string // "j:color,..." diagonals with their own colors
	output    string // output file (or base path for several formats)
	outputDir string // directory for default-named files
	formats   string // comma-separated output formats
	noCache   bool   // bypass the artifact cache
}

// register adds the flags to cmd. Output flags are skipped for print.
func (f *renderFlags) register(cmd *cobra.Command) {
	f.registerTriangle(cmd)
	cmd.Flags().StringVarP(&f.output, "out", "o", "", "output file (single format) or base path (several formats)")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", "", "directory for default-named output files")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): png (default), json, dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
}

func (f *renderFlags) registerTriangle(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.k, "k", "k", config.DefaultK, "polygonal order (>= 3)")
	cmd.Flags().IntVarP(&f.n, "n", "n", config.DefaultN, "number of rows (>= 1)")
	cmd.Flags().Uint64Var(&f.highlight, "highlight", 0, "highlight every entry equal to this value")
	cmd.Flags().IntVar(&f.diagonal, "diagonal", 0, "highlight descending diagonal j (0 = right edge)")
	cmd.Flags().StringVar(&f.multi, "highlight-multi", "", `highlight several diagonals, e.g. "0:red,1:#1f77b4"`)
}

// options builds pipeline options from cfg with the changed flags applied.
func (f *renderFlags) options(cmd *cobra.Command, cfg config.Config) (pipeline.Options, error) {
	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		return pipeline.Options{}, err
	}
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		K:              cfg.K,
		N:              cfg.N,
		MaxRows:        cfg.MaxRows,
		Formats:        cfg.Formats,
		Render:         renderOpts,
		OutputDir:      cfg.OutputDir,
		DiagonalColors: f.multi,
		Output:         f.output,
		CacheTTL:       ttl,
	}

	flags := cmd.Flags()
	if flags.Changed("k") {
		opts.K = f.k
	}
	if flags.Changed("n") {
		opts.N = f.n
	}
	if flags.Changed("highlight") {
		h := f.highlight
		opts.Highlight = &h
	}
	if flags.Changed("diagonal") {
		d := f.diagonal
		opts.Diagonal = &d
	}
	if flags.Changed("output-dir") {
		opts.OutputDir = f.outputDir
	}
	if flags.Changed("format") {
		formats, err := render.ParseFormats(f.formats)
		if err != nil {
			return opts, err
		}
		opts.Formats = formats
	}
	return opts, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a Tompkins triangle to PNG (or JSON, DOT, SVG)",
		Long: `Render computes T_k with n rows and writes it as an image.

Without --out the file is named tompkins_triangle_k{k}_n{n}.{format} in the
current directory (or --output-dir). Highlighting a value that does not
occur is not an error; the image is rendered without highlights.`,
		Example: `  tompkins render --k 4 --n 8 --highlight 25
  tompkins render --k 3 --n 12 --diagonal 2 -o pascal.png
  tompkins render --k 6 --n 10 --highlight-multi "0:red,1:blue" -f png,svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// runRender executes the render pipeline and reports the written files.
func (c *CLI) runRender(cmd *cobra.Command, flags *renderFlags) error {
	opts, err := flags.options(cmd, c.Config)
	if err != nil {
		return err
	}
	opts.Write = true

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(loggerFromContext(cmd.Context()))
	res, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}
	prog.done("Rendered triangle")

	printSuccess(c.Out, "Tompkins triangle T_%d with %d rows", opts.K, res.Triangle.Len())
	printStats(c.Out, res.Triangle.Len(), res.Triangle.Max(), res.Highlighted, res.Stats.CacheHits)

	formats := make([]string, 0, len(res.Paths))
	for f := range res.Paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	for _, f := range formats {
		printFile(c.Out, res.Paths[f])
	}

	if opts.Highlight != nil && !res.Triangle.Contains(*opts.Highlight) {
		printWarning(c.Out, "%d does not occur in the triangle; nothing highlighted", *opts.Highlight)
	}
	return nil
}
