package device

import (
	"log"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/resource"
	"github.com/rgl/ffp8/xerr"
)

// Primitive is a legacy primitive topology identifier.
type Primitive int

// Legacy primitive types, each with a fixed vertex-count formula
// (see vertexCount).
const (
	PointList Primitive = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
	TriangleFan
)

func (p Primitive) topology() backend.Topology {
	switch p {
	case PointList:
		return backend.TopologyPointList
	case LineList:
		return backend.TopologyLineList
	case LineStrip:
		return backend.TopologyLineStrip
	case TriangleStrip:
		return backend.TopologyTriangleStrip
	case TriangleFan:
		// Conservative emulation: no native fan topology, caller's
		// data is assumed pre-converted.
		return backend.TopologyTriangleList
	default:
		return backend.TopologyTriangleList
	}
}

// vertexCount returns the number of vertices primCount primitives of
// type p span.
func vertexCount(p Primitive, primCount int) int {
	switch p {
	case PointList:
		return primCount
	case LineList:
		return primCount * 2
	case LineStrip:
		return primCount + 1
	case TriangleList, TriangleFan:
		return primCount * 3
	case TriangleStrip:
		return primCount + 2
	default:
		return 0
	}
}

// prepareDraw runs the sequence common to every draw entry point:
// synthesize the pipeline for the current FVF, apply pending state
// objects, then set the primitive topology.
func (d *Device) prepareDraw(p Primitive) error {
	screenW, screenH := float32(d.width), float32(d.height)
	if err := d.emu.PrepareDraw(d.backend, d.ctx, d.store, d.store.FVF(), screenW, screenH); err != nil {
		return err
	}
	if err := d.trans.Apply(d.store, d.ctx); err != nil {
		return err
	}
	d.ctx.SetPrimitiveTopology(p.topology())
	return nil
}

// DrawPrimitive draws primCount primitives of type p starting at
// startVertex from the currently bound vertex buffer.
func (d *Device) DrawPrimitive(p Primitive, startVertex, primCount int) error {
	if err := d.prepareDraw(p); err != nil {
		if !d.cfg.Quiet {
			log.Printf("[!] device: DrawPrimitive skipped: %v", err)
		}
		return err
	}
	d.ctx.Draw(vertexCount(p, primCount), startVertex)
	return nil
}

// DrawIndexedPrimitive draws primCount primitives of type p from the
// currently bound vertex and index buffers.
func (d *Device) DrawIndexedPrimitive(p Primitive, baseVertexIndex, minVertex, numVertices, startIndex, primCount int) error {
	if err := d.prepareDraw(p); err != nil {
		if !d.cfg.Quiet {
			log.Printf("[!] device: DrawIndexedPrimitive skipped: %v", err)
		}
		return err
	}
	d.ctx.DrawIndexed(vertexCount(p, primCount), startIndex, baseVertexIndex)
	return nil
}

// DrawPrimitiveUP draws primCount primitives of type p from user
// memory: it creates a transient vertex buffer, binds it, draws, and
// restores the previously bound vertex buffer.
func (d *Device) DrawPrimitiveUP(p Primitive, primCount int, vertexData []byte, stride int) error {
	vc := vertexCount(p, primCount)
	if vc*stride > len(vertexData) {
		return xerr.InvalidArgument(prefix, "vertex data too small for primitive count/stride")
	}
	vb, err := resource.NewVertexBuffer(d.backend, vc*stride, resource.UsageWriteOnly, d.store.FVF())
	if err != nil {
		return err
	}
	mem, err := vb.Lock(0, 0)
	if err != nil {
		return err
	}
	copy(mem, vertexData[:vc*stride])
	if err := vb.Unlock(); err != nil {
		return err
	}

	prevVB := d.boundVB
	if err := d.SetStreamSource(0, vb, stride); err != nil {
		return err
	}
	drawErr := d.DrawPrimitive(p, 0, primCount)

	d.boundVB.release() // undoes SetStreamSource's bind AddRef
	vb.Release()        // drops the creation reference: the transient buffer is gone
	if prevVB != nil {
		prevVB.addRef() // compensates for the release above
	}
	d.boundVB = prevVB
	if prevVB != nil {
		d.ctx.SetVertexBuffer(0, prevVB.buf, prevVB.stride, 0)
	} else {
		d.ctx.SetVertexBuffer(0, nil, 0, 0)
	}
	return drawErr
}

// DrawIndexedPrimitiveUP is DrawPrimitiveUP's indexed counterpart: it
// additionally creates a transient index buffer from indexData.
func (d *Device) DrawIndexedPrimitiveUP(p Primitive, primCount int, vertexData []byte, stride int, indexData []byte, indexFormat backend.IndexFormat) error {
	vb, err := resource.NewVertexBuffer(d.backend, len(vertexData), resource.UsageWriteOnly, d.store.FVF())
	if err != nil {
		return err
	}
	if mem, err := vb.Lock(0, 0); err != nil {
		return err
	} else {
		copy(mem, vertexData)
		if err := vb.Unlock(); err != nil {
			return err
		}
	}

	ib, err := resource.NewIndexBuffer(d.backend, len(indexData), resource.UsageWriteOnly, indexFormat)
	if err != nil {
		return err
	}
	if mem, err := ib.Lock(0, 0); err != nil {
		return err
	} else {
		copy(mem, indexData)
		if err := ib.Unlock(); err != nil {
			return err
		}
	}

	prevVB, prevIB := d.boundVB, d.boundIB
	if err := d.SetStreamSource(0, vb, stride); err != nil {
		return err
	}
	if err := d.SetIndices(ib, 0); err != nil {
		return err
	}
	drawErr := d.DrawIndexedPrimitive(p, 0, 0, 0, 0, primCount)

	d.boundVB.release() // undoes SetStreamSource's bind AddRef
	d.boundIB.release() // undoes SetIndices's bind AddRef
	vb.Release()        // drops the creation reference
	ib.Release()        // drops the creation reference
	if prevVB != nil {
		prevVB.addRef() // compensates for the release above
	}
	if prevIB != nil {
		prevIB.addRef() // compensates for the release above
	}
	d.boundVB, d.boundIB = prevVB, prevIB
	if prevVB != nil {
		d.ctx.SetVertexBuffer(0, prevVB.buf, prevVB.stride, 0)
	} else {
		d.ctx.SetVertexBuffer(0, nil, 0, 0)
	}
	if prevIB != nil {
		d.ctx.SetIndexBuffer(prevIB.buf, prevIB.format, 0)
	} else {
		d.ctx.SetIndexBuffer(nil, 0, 0)
	}
	return drawErr
}
