package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/tompkins/pkg/errors"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

// Selection decides which entries are highlighted and in which color.
// String returns a stable description used in cache keys.
type Selection interface {
	Match(p triangle.Position, v uint64) (Color, bool)
	String() string
}

// ValueSelection highlights every entry equal to Value.
type ValueSelection struct {
	Value uint64
	Color Color
}

func (s ValueSelection) Match(_ triangle.Position, v uint64) (Color, bool) {
	return s.Color, v == s.Value
}

func (s ValueSelection) String() string {
	return fmt.Sprintf("value=%d:%s", s.Value, HexColor(s.Color))
}

// DiagonalSelection highlights descending diagonal Diagonal, the entries with
// col == row-Diagonal. Diagonal 0 is the right edge.
type DiagonalSelection struct {
	Diagonal int
	Color    Color
}

func (s DiagonalSelection) Match(p triangle.Position, _ uint64) (Color, bool) {
	return s.Color, s.Diagonal >= 0 && p.Row-p.Col == s.Diagonal
}

func (s DiagonalSelection) String() string {
	return fmt.Sprintf("diagonal=%d:%s", s.Diagonal, HexColor(s.Color))
}

// MultiSelection combines selections; the first match wins.
type MultiSelection []Selection

func (m MultiSelection) Match(p triangle.Position, v uint64) (Color, bool) {
	for _, s := range m {
		if s == nil {
			continue
		}
		if c, ok := s.Match(p, v); ok {
			return c, true
		}
	}
	return Color{}, false
}

func (m MultiSelection) String() string {
	parts := make([]string, 0, len(m))
	for _, s := range m {
		if s != nil {
			parts = append(parts, s.String())
		}
	}
	return strings.Join(parts, ",")
}

// SelectionKey returns a cache-key component for sel; "none" for nil.
func SelectionKey(sel Selection) string {
	if sel == nil {
		return "none"
	}
	return sel.String()
}

// ParseDiagonalColors parses a "j:color,j:color" list into diagonal
// selections. Parts without a colon or with a non-integer diagonal are
// skipped and returned in skipped; an unknown color is an error.
func ParseDiagonalColors(s string) (sel MultiSelection, skipped []string, err error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil, nil
	}
	for _, part := range strings.Split(s, ",") {
		js, cs, ok := strings.Cut(part, ":")
		if !ok {
			skipped = append(skipped, part)
			continue
		}
		j, convErr := strconv.Atoi(strings.TrimSpace(js))
		if convErr != nil || j < 0 {
			skipped = append(skipped, part)
			continue
		}
		col, colErr := ParseColor(cs)
		if colErr != nil {
			return nil, skipped, errors.Wrap(errors.ErrCodeInvalidParameter, colErr, "highlight diagonal %d", j)
		}
		sel = append(sel, DiagonalSelection{Diagonal: j, Color: col})
	}
	return sel, skipped, nil
}

// Marked returns the positions sel highlights in t, in row-major order.
func Marked(t triangle.Triangle, sel Selection) []triangle.Position {
	if sel == nil {
		return nil
	}
	var out []triangle.Position
	for i, row := range t.Rows() {
		for j, v := range row {
			p := triangle.Position{Row: i, Col: j}
			if _, ok := sel.Match(p, v); ok {
				out = append(out, p)
			}
		}
	}
	return out
}
