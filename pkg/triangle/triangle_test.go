package triangle

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/matzehuels/tompkins/pkg/errors"
)

// golden T_4, rows 0..7.
var square8 = [][]uint64{
	{2},
	{1, 2},
	{1, 3, 2},
	{1, 4, 5, 2},
	{1, 5, 9, 7, 2},
	{1, 6, 14, 16, 9, 2},
	{1, 7, 20, 30, 25, 11, 2},
	{1, 8, 27, 50, 55, 36, 13, 2},
}

func TestGenerateShape(t *testing.T) {
	for k := 3; k <= 12; k++ {
		for n := 1; n <= 20; n++ {
			tri, err := Generate(k, n)
			if err != nil {
				t.Fatalf("Generate(%d, %d): %v", k, n, err)
			}
			if tri.Len() != n {
				t.Fatalf("Generate(%d, %d).Len() = %d", k, n, tri.Len())
			}
			for i, row := range tri.Rows() {
				if len(row) != i+1 {
					t.Fatalf("Generate(%d, %d) row %d has %d entries", k, n, i, len(row))
				}
			}
		}
	}
}

func TestGenerateSeed(t *testing.T) {
	for k := 3; k <= 10; k++ {
		for _, n := range []int{1, 2, 7} {
			tri, err := Generate(k, n)
			if err != nil {
				t.Fatal(err)
			}
			want := []uint64{uint64(k - 2)}
			if got := tri.Row(0); !slices.Equal(got, want) {
				t.Errorf("Generate(%d, %d) row 0 = %v, want %v", k, n, got, want)
			}
			if tri.Seed() != uint64(k-2) {
				t.Errorf("Seed() = %d, want %d", tri.Seed(), k-2)
			}
		}
	}
}

func TestGenerateGolden(t *testing.T) {
	tri, err := Generate(4, 8)
	if err != nil {
		t.Fatal(err)
	}
	got := tri.Rows()
	for i := range square8 {
		if !slices.Equal(got[i], square8[i]) {
			t.Errorf("row %d = %v, want %v", i, got[i], square8[i])
		}
	}
}

func TestTriangularOrderIsPascal(t *testing.T) {
	tri, err := Generate(3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tri.Row(4), []uint64{1, 4, 6, 4, 1}; !slices.Equal(got, want) {
		t.Errorf("row 4 = %v, want %v", got, want)
	}

	// binomial check against C(i, j) computed multiplicatively
	tri, err = Pascal(30)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		c := uint64(1)
		for j := 0; j <= i; j++ {
			if v, _ := tri.At(i, j); v != c {
				t.Fatalf("Pascal(%d,%d) = %d, want %d", i, j, v, c)
			}
			c = c * uint64(i-j) / uint64(j+1)
		}
	}
}

func TestGenerateIdempotent(t *testing.T) {
	a, err := Generate(7, 15)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(7, 15)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("Generate(7, 15) is not deterministic")
	}

	// mutating a returned row must not leak into the triangle
	row := a.Row(3)
	row[0] = 99
	if v, _ := a.At(3, 0); v != 1 {
		t.Errorf("At(3,0) = %d after mutating copy, want 1", v)
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name string
		k, n int
	}{
		{"pascal order, no rows", 2, 0},
		{"zero order", 0, 5},
		{"order two", 2, 5},
		{"negative rows", 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri, err := Generate(tt.k, tt.n)
			if !errors.Is(err, errors.ErrCodeInvalidParameter) {
				t.Fatalf("Generate(%d, %d) error = %v, want INVALID_PARAMETER", tt.k, tt.n, err)
			}
			if !tri.Empty() {
				t.Error("expected empty triangle on error")
			}
		})
	}
}

func TestGenerateOverflow(t *testing.T) {
	if _, err := Generate(3, MaxRows); err != nil {
		t.Fatalf("Pascal with %d rows should fit: %v", MaxRows, err)
	}

	_, err := Generate(1<<40, MaxRows)
	if !errors.Is(err, errors.ErrCodeOverflow) {
		t.Fatalf("error = %v, want OVERFLOW", err)
	}
}

func TestFind(t *testing.T) {
	tri, _ := Generate(4, 8)

	// 2 only occurs on the right edge.
	got := tri.Find(2)
	if len(got) != 8 {
		t.Fatalf("Find(2) returned %d positions, want 8", len(got))
	}
	for i, p := range got {
		if p.Row != i || p.Col != i {
			t.Errorf("Find(2)[%d] = %+v, want {%d %d}", i, p, i, i)
		}
	}

	if got := tri.Find(25); len(got) != 1 || got[0] != (Position{Row: 6, Col: 4}) {
		t.Errorf("Find(25) = %v", got)
	}
	if got := tri.Find(1000); got != nil {
		t.Errorf("Find(1000) = %v, want nil", got)
	}
	if !tri.Contains(55) || tri.Contains(56) {
		t.Error("Contains mismatch")
	}
}

func TestDiagonal(t *testing.T) {
	tri, _ := Generate(4, 8)

	tests := []struct {
		j    int
		want []uint64
	}{
		{0, []uint64{2, 2, 2, 2, 2, 2, 2, 2}},
		{1, []uint64{1, 3, 5, 7, 9, 11, 13}},
		{2, []uint64{1, 4, 9, 16, 25, 36}},
		{7, []uint64{1}},
		{8, nil},
	}

	for _, tt := range tests {
		var got []uint64
		for _, p := range tri.Diagonal(tt.j) {
			v, ok := tri.At(p.Row, p.Col)
			if !ok {
				t.Fatalf("Diagonal(%d) returned out-of-range %+v", tt.j, p)
			}
			got = append(got, v)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Diagonal(%d) values = %v, want %v", tt.j, got, tt.want)
		}
	}

	if tri.Diagonal(-1) != nil {
		t.Error("Diagonal(-1) should be nil")
	}
}

func TestAtOutOfRange(t *testing.T) {
	tri, _ := Generate(5, 3)
	for _, p := range []Position{{-1, 0}, {3, 0}, {1, 2}, {2, -1}} {
		if _, ok := tri.At(p.Row, p.Col); ok {
			t.Errorf("At(%d, %d) should be out of range", p.Row, p.Col)
		}
	}
	if tri.Row(5) != nil {
		t.Error("Row(5) should be nil")
	}
}

func TestMax(t *testing.T) {
	tri, _ := Generate(4, 8)
	if got := tri.Max(); got != 55 {
		t.Errorf("Max() = %d, want 55", got)
	}
	if got := (Triangle{}).Max(); got != 0 {
		t.Errorf("zero Triangle Max() = %d, want 0", got)
	}
}

func TestJSON(t *testing.T) {
	tri, _ := Generate(4, 3)
	data, err := json.Marshal(tri)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"k":4,"c":2,"rows":[[2],[1,2],[1,3,2]]}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Triangle
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(tri) {
		t.Error("decoded triangle differs")
	}

	bad := `{"k":4,"c":2,"rows":[[2],[1,3]]}`
	if err := json.Unmarshal([]byte(bad), &back); err == nil {
		t.Error("expected error for rows that do not satisfy the recurrence")
	}
}
