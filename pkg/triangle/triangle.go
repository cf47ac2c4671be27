package triangle

import (
	"encoding/json"
	"math"
	"math/bits"
	"slices"

	"github.com/matzehuels/tompkins/pkg/errors"
)

// MaxRows is the largest row count the CLI and server accept. Generate
// itself only stops at uint64 overflow.
const MaxRows = 64

// Triangle is an immutable Tompkins triangle. Row i holds i+1 entries.
type Triangle struct {
	k    int
	rows [][]uint64
}

// Position addresses one entry by row and column (both 0-indexed).
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Generate builds the first n rows (rows 0..n-1) of T_k.
//
// It fails with an INVALID_PARAMETER error when k < 3 or n < 1 and with an
// OVERFLOW error when an entry does not fit in a uint64. No partial triangle
// is ever returned.
func Generate(k, n int) (Triangle, error) {
	if err := errors.ValidateOrder(k); err != nil {
		return Triangle{}, err
	}
	if err := errors.ValidateRows(n, 0); err != nil {
		return Triangle{}, err
	}

	c := uint64(k - 2)
	rows := make([][]uint64, n)
	rows[0] = []uint64{c}
	for i := 1; i < n; i++ {
		prev := rows[i-1]
		row := make([]uint64, i+1)
		row[0], row[i] = 1, c
		for j := 1; j < i; j++ {
			sum, carry := bits.Add64(prev[j-1], prev[j], 0)
			if carry != 0 {
				return Triangle{}, errors.New(errors.ErrCodeOverflow,
					"T_%d(%d,%d) exceeds %d; use fewer rows", k, i, j, uint64(math.MaxUint64))
			}
			row[j] = sum
		}
		rows[i] = row
	}
	return Triangle{k: k, rows: rows}, nil
}

// Pascal returns the first n rows of Pascal's triangle. It is the k = 3 case
// of [Generate] and exists for cross-checking.
func Pascal(n int) (Triangle, error) {
	return Generate(3, n)
}

// K returns the polygonal order.
func (t Triangle) K() int { return t.k }

// Seed returns c = k-2, the apex value and the constant of the right edge.
func (t Triangle) Seed() uint64 {
	if t.k < errors.MinOrder {
		return 0
	}
	return uint64(t.k - 2)
}

// Len returns the number of rows.
func (t Triangle) Len() int { return len(t.rows) }

// Empty reports whether the triangle has no rows (the zero value).
func (t Triangle) Empty() bool { return len(t.rows) == 0 }

// Row returns a copy of row i, or nil if i is out of range.
func (t Triangle) Row(i int) []uint64 {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return slices.Clone(t.rows[i])
}

// Rows returns a deep copy of all rows.
func (t Triangle) Rows() [][]uint64 {
	out := make([][]uint64, len(t.rows))
	for i, r := range t.rows {
		out[i] = slices.Clone(r)
	}
	return out
}

// At returns entry (i, j) and whether it exists.
func (t Triangle) At(i, j int) (uint64, bool) {
	if i < 0 || i >= len(t.rows) || j < 0 || j > i {
		return 0, false
	}
	return t.rows[i][j], true
}

// Max returns the largest entry, or 0 for an empty triangle.
func (t Triangle) Max() uint64 {
	var m uint64
	for _, r := range t.rows {
		m = max(m, slices.Max(r))
	}
	return m
}

// Find returns every position holding v, in row-major order.
func (t Triangle) Find(v uint64) []Position {
	var out []Position
	for i, r := range t.rows {
		for j, x := range r {
			if x == v {
				out = append(out, Position{Row: i, Col: j})
			}
		}
	}
	return out
}

// Contains reports whether any entry equals v.
func (t Triangle) Contains(v uint64) bool {
	for _, r := range t.rows {
		if slices.Contains(r, v) {
			return true
		}
	}
	return false
}

// Diagonal returns the positions on descending diagonal j, the cells with
// col == row-j. Diagonal 0 is the right edge (constant c). Negative j
// yields nil.
func (t Triangle) Diagonal(j int) []Position {
	if j < 0 {
		return nil
	}
	var out []Position
	for i := j; i < len(t.rows); i++ {
		out = append(out, Position{Row: i, Col: i - j})
	}
	return out
}

// Equal reports whether two triangles have the same order and entries.
func (t Triangle) Equal(o Triangle) bool {
	if t.k != o.k || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.rows {
		if !slices.Equal(t.rows[i], o.rows[i]) {
			return false
		}
	}
	return true
}

type triangleJSON struct {
	K    int        `json:"k"`
	C    uint64     `json:"c"`
	Rows [][]uint64 `json:"rows"`
}

// MarshalJSON encodes the triangle as {"k":..,"c":..,"rows":[[..],..]}.
func (t Triangle) MarshalJSON() ([]byte, error) {
	return json.Marshal(triangleJSON{K: t.k, C: t.Seed(), Rows: t.rows})
}

// UnmarshalJSON decodes the form written by MarshalJSON. The rows are
// regenerated from k and checked against the decoded entries so a decoded
// Triangle always satisfies the recurrence.
func (t *Triangle) UnmarshalJSON(data []byte) error {
	var raw triangleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	got, err := Generate(raw.K, len(raw.Rows))
	if err != nil {
		return err
	}
	if !got.Equal(Triangle{k: raw.K, rows: raw.Rows}) {
		return errors.New(errors.ErrCodeInvalidParameter, "rows do not match T_%d", raw.K)
	}
	*t = got
	return nil
}
