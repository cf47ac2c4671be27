// Package pkg provides the libraries behind the tompkins command.
//
// # Overview
//
// A Tompkins triangle T_k is Pascal's triangle with a different seed: the
// apex and the right edge hold c = k-2, the left edge holds 1, and every
// interior entry is the sum of the two entries above it. k = 3 gives
// Pascal's triangle.
//
// # Architecture
//
//	(k, n) + highlight options
//	         ↓
//	    [triangle] (generate rows 0..n-1, checked uint64 arithmetic)
//	         ↓
//	    [render] (select → layout → PNG, or JSON/DOT/SVG)
//	         ↓
//	    [cache] (file or Redis, keyed by inputs)
//	         ↓
//	    files / HTTP responses
//
// [pipeline] ties the steps together and is shared by the CLI and the HTTP
// server, so validation, caching and error codes behave the same in both.
//
// # Quick Start
//
//	t, err := triangle.Generate(4, 8)
//	if err != nil {
//	    return err
//	}
//	sel := render.ValueSelection{Value: 25, Color: render.DefaultOptions().HighlightColor}
//	png, err := render.Render(ctx, t, sel, render.FormatPNG, render.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	return render.WriteFile(render.DefaultFilename(4, 8, render.FormatPNG), png)
//
// # Main Packages
//
// [triangle] - The generator and triangle accessors (Find, Diagonal, Max).
//
// [render] - Highlight selections, layout, PNG drawing with embedded Go
// fonts, Graphviz DOT/SVG and JSON export.
//
// [fonts] - Parsed Go fonts and cached faces for measuring and drawing text.
//
// [pipeline] - Validate, generate, render and write in one call.
//
// [cache] - Artifact caches: file (CLI), Redis (server), null (disabled).
//
// [config] - TOML configuration with defaults.
//
// [errors] - Coded errors and input validators.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [buildinfo] - Version information set via ldflags.
//
// # Testing
//
//	go test ./...
//	go test -run Example ./pkg/triangle
//
// [triangle]: https://pkg.go.dev/github.com/matzehuels/tompkins/pkg/triangle
// [render]: https://pkg.go.dev/github.com/matzehuels/tompkins/pkg/render
// [fonts]: https://pkg.go.dev/github.com/matzehuels/tompkins/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tompkins/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/tompkins/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/tompkins/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/tompkins/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tompkins/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/tompkins/pkg/buildinfo
package pkg
