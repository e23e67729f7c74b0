package device

import (
	"github.com/rgl/ffp8/resource"
	"github.com/rgl/ffp8/xerr"
)

// SetStreamSource binds vb at stream 0 and forwards it to the backend
// input assembler; streams other than 0 are accepted and ignored.
// Binding AddRefs vb; replacing a previous binding Releases it.
func (d *Device) SetStreamSource(streamNumber int, vb *resource.VertexBuffer, stride int) error {
	if streamNumber != 0 {
		return nil
	}
	if d.boundVB != nil {
		d.boundVB.release()
	}
	if vb == nil {
		d.boundVB = nil
		d.ctx.SetVertexBuffer(0, nil, 0, 0)
		return nil
	}
	vb.AddRef()
	d.boundVB = &vbBinding{buf: vb.Backend(), stride: stride, addRef: vb.AddRef, release: vb.Release}
	d.ctx.SetVertexBuffer(0, vb.Backend(), stride, 0)
	return nil
}

// SetIndices binds ib, choosing u16/u32 from its index format.
// baseVertexIndex is recorded for the next indexed draw.
func (d *Device) SetIndices(ib *resource.IndexBuffer, baseVertexIndex int) error {
	if d.boundIB != nil {
		d.boundIB.release()
	}
	if ib == nil {
		d.boundIB = nil
		d.ctx.SetIndexBuffer(nil, 0, 0)
		return nil
	}
	ib.AddRef()
	d.boundIB = &ibBinding{buf: ib.Backend(), format: ib.Format(), addRef: ib.AddRef, release: ib.Release}
	d.ctx.SetIndexBuffer(ib.Backend(), ib.Format(), baseVertexIndex)
	return nil
}

// currentStride returns the byte stride of the currently bound vertex
// buffer, or an error if none is bound.
func (d *Device) currentStride() (int, error) {
	if d.boundVB == nil {
		return 0, xerr.InvalidArgument(prefix, "no vertex buffer bound")
	}
	return d.boundVB.stride, nil
}
