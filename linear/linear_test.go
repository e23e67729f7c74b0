package linear_test

import (
	"testing"

	"github.com/rgl/ffp8/linear"
)

func TestIdentityMul(t *testing.T) {
	var i, m, out linear.M4
	i.I()
	m = linear.M4{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	out.Mul(&i, &m)
	if out != m {
		t.Errorf("I*m = %v, want %v", out, m)
	}
	out.Mul(&m, &i)
	if out != m {
		t.Errorf("m*I = %v, want %v", out, m)
	}
}

func TestTransposeInvolution(t *testing.T) {
	m := linear.M4{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	var t1, t2 linear.M4
	t1.Transpose(&m)
	t2.Transpose(&t1)
	if t2 != m {
		t.Errorf("transpose(transpose(m)) = %v, want %v", t2, m)
	}
	if t1[0][1] != m[1][0] || t1[1][0] != m[0][1] {
		t.Errorf("transpose did not swap off-diagonal elements: %v", t1)
	}
}

func TestMulRowVec(t *testing.T) {
	var m linear.M4
	m.I()
	m[3] = linear.V4{10, 20, 30, 1} // translation in row-major, vector-on-left.
	v := linear.V4{1, 2, 3, 1}
	var out linear.V4
	out.MulRowVec(&v, &m)
	want := linear.V4{11, 22, 33, 1}
	if out != want {
		t.Errorf("v*M = %v, want %v", out, want)
	}
}
