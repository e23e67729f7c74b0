// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

// M4 is a row-major 4x4 matrix of float32: m[row][col]. This is the
// layout legacy transform state is kept in.
type M4 [4]V4

// I sets m to the identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l * r, using the source-order convention
// (row-major, right-multiplied row vectors): for a row vector v,
// v*(l*r) == (v*l)*r.
func (m *M4) Mul(l, r *M4) {
	*m = M4{}
	for i := range m {
		for j := range m {
			for k := range m {
				m[i][j] += l[i][k] * r[k][j]
			}
		}
	}
}

// Transpose sets m to contain the transpose of n, converting between
// the row-major source layout and the column-major layout the backend
// constant buffer expects.
func (m *M4) Transpose(n *M4) {
	var t M4
	for i := range n {
		for j := range n {
			t[j][i] = n[i][j]
		}
	}
	*m = t
}
