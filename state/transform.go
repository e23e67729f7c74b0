package state

import "github.com/rgl/ffp8/linear"

// TransformID identifies a slot in the transform array.
type TransformID uint32

// Named transform slots: world, view, projection, texture, and the
// world-matrix-palette slots.
const (
	View TransformID = iota
	Projection
	Texture0
	Texture1
	Texture2
	Texture3
	World TransformID = 256
)

// MaxTransforms is the size of the transform array: up to 512 4x4
// matrices.
const MaxTransforms = 512

// WorldPalette returns the transform id of the i'th world-matrix
// palette slot. Only palette 0 (the World constant) is driven by the
// pipeline emulator; the rest exist so that callers addressing the
// legacy vertex-blend palette round-trip correctly, even though vertex
// blending itself is out of scope.
func WorldPalette(i int) TransformID { return World + TransformID(i) }

// Transforms holds the transform array. All entries are identity on
// init.
type Transforms struct {
	v [MaxTransforms]linear.M4
}

// NewTransforms returns a transform array with every slot set to the
// identity matrix.
func NewTransforms() *Transforms {
	t := &Transforms{}
	for i := range t.v {
		t.v[i].I()
	}
	return t
}

// Set stores a copy of m at id, in the source's row-major layout;
// matrices are transposed only at the point of constant-buffer
// upload.
func (t *Transforms) Set(id TransformID, m *linear.M4) {
	if uint32(id) < MaxTransforms {
		t.v[id] = *m
	}
}

// Get returns a copy of id's matrix. Out-of-range ids return the
// identity matrix.
func (t *Transforms) Get(id TransformID) linear.M4 {
	if uint32(id) < MaxTransforms {
		return t.v[id]
	}
	var m linear.M4
	m.I()
	return m
}
