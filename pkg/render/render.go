package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/tompkins/pkg/errors"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{FormatPNG: true, FormatJSON: true, FormatDOT: true, FormatSVG: true}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatSVG:  "image/svg+xml",
}

// ValidateFormat checks that f is a supported format.
func ValidateFormat(f string) error {
	if !ValidFormats[f] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'png', 'json', 'dot', or 'svg')", f)
	}
	return nil
}

// ParseFormats splits a comma-separated format list. Empty means png.
func ParseFormats(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return []string{FormatPNG}, nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Render produces one artifact of t in the given format.
func Render(ctx context.Context, t triangle.Triangle, sel Selection, format string, opts Options) ([]byte, error) {
	if t.Empty() {
		return nil, errors.New(errors.ErrCodeRenderFailed, "cannot render an empty triangle")
	}
	switch format {
	case FormatPNG:
		return RenderPNG(ctx, t, sel, opts)
	case FormatJSON:
		return RenderJSON(t, sel)
	case FormatDOT:
		return []byte(ToDOT(t, sel)), nil
	case FormatSVG:
		return RenderSVG(ctx, ToDOT(t, sel))
	default:
		return nil, ValidateFormat(format)
	}
}

// DefaultFilename returns tompkins_triangle_k{k}_n{n}.{format}.
func DefaultFilename(k, n int, format string) string {
	return fmt.Sprintf("tompkins_triangle_k%d_n%d.%s", k, n, format)
}

// WriteFile writes data to path atomically: it writes a temporary file in
// the same directory and renames it into place, so path either keeps its
// old content or holds all of data.
func WriteFile(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "output %s is not writable", path)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "create %s", path)
	}
	name := tmp.Name()
	cleanup := func() { _ = os.Remove(name) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		cleanup()
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "chmod %s", path)
	}
	if err := os.Rename(name, path); err != nil {
		cleanup()
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "rename into %s", path)
	}
	return nil
}
