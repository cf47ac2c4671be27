// Package triangle builds Tompkins triangles.
//
// # Overview
//
// A Tompkins triangle T_k generalizes Pascal's triangle by the polygonal
// order k (3 = triangular, 4 = square, 5 = pentagonal, ...). With c = k-2:
//
//	T(0,0) = c
//	T(i,0) = 1,  T(i,i) = c               for i >= 1
//	T(i,j) = T(i-1,j-1) + T(i-1,j)        for 0 < j < i
//
// For k = 3 the seed and both edges are 1 and the triangle is exactly
// Pascal's triangle. For larger k the right edge is the constant c, and the
// descending diagonals next to it enumerate the k-gonal numbers: diagonal 1
// of T_4 is 1, 3, 5, 7, ... whose partial sums are the squares.
//
// # Basic Usage
//
//	t, err := triangle.Generate(4, 8)
//	if err != nil {
//	    return err // INVALID_PARAMETER or OVERFLOW
//	}
//	for i, row := range t.Rows() {
//	    fmt.Println(i, row)
//	}
//
// [Generate] is a pure function of (k, n): the same arguments always yield
// an [Triangle.Equal] result, and the returned triangle is never mutated.
// Accessors hand out copies.
//
// # Lookups
//
// [Triangle.Find] returns every position holding a value and
// [Triangle.Diagonal] returns the positions of a descending diagonal. Both
// back the highlighting options of the renderer.
//
// # Overflow
//
// Entries are uint64. Rows grow roughly like c*2^i, so very deep triangles
// overflow; [Generate] detects this and fails with an OVERFLOW error rather
// than wrapping around.
package triangle
