package device_test

import (
	"testing"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/device"
	"github.com/rgl/ffp8/pipeline"
	"github.com/rgl/ffp8/resource"
)

func TestDrawPrimitiveUPPreservesPriorBindingRefCount(t *testing.T) {
	d, nd := newTestDevice(t)
	fvf := pipeline.FVFXYZRHW | pipeline.FVFDiffuse
	storeFVF(d, fvf)

	vb, err := resource.NewVertexBuffer(nd, 3*20, resource.UsageDefault, fvf)
	if err != nil {
		t.Fatalf("NewVertexBuffer: %v", err)
	}
	if err := d.SetStreamSource(0, vb, 20); err != nil {
		t.Fatalf("SetStreamSource: %v", err)
	}
	before := vb.Release() // peek the current count, then restore it
	vb.AddRef()
	if before != 1 {
		t.Fatalf("Release after SetStreamSource = %d, want 1 (creation + bind, minus this Release)", before)
	}

	data := make([]byte, 3*20)
	if err := d.DrawPrimitiveUP(device.TriangleList, 1, data, 20); err != nil {
		t.Fatalf("DrawPrimitiveUP: %v", err)
	}

	after := vb.Release()
	vb.AddRef()
	if after != before {
		t.Fatalf("refcount after DrawPrimitiveUP = %d, want %d (unchanged)", after, before)
	}
}

func TestDrawIndexedPrimitiveUPPreservesPriorBindingRefCount(t *testing.T) {
	d, nd := newTestDevice(t)
	fvf := pipeline.FVFXYZRHW | pipeline.FVFDiffuse
	storeFVF(d, fvf)

	vb, err := resource.NewVertexBuffer(nd, 3*20, resource.UsageDefault, fvf)
	if err != nil {
		t.Fatalf("NewVertexBuffer: %v", err)
	}
	ib, err := resource.NewIndexBuffer(nd, 3*2, resource.UsageDefault, backend.Index16)
	if err != nil {
		t.Fatalf("NewIndexBuffer: %v", err)
	}
	if err := d.SetStreamSource(0, vb, 20); err != nil {
		t.Fatalf("SetStreamSource: %v", err)
	}
	if err := d.SetIndices(ib, 0); err != nil {
		t.Fatalf("SetIndices: %v", err)
	}
	vbBefore := vb.Release()
	vb.AddRef()
	ibBefore := ib.Release()
	ib.AddRef()

	vdata := make([]byte, 3*20)
	idata := make([]byte, 3*2)
	if err := d.DrawIndexedPrimitiveUP(device.TriangleList, 1, vdata, 20, idata, backend.Index16); err != nil {
		t.Fatalf("DrawIndexedPrimitiveUP: %v", err)
	}

	vbAfter := vb.Release()
	vb.AddRef()
	ibAfter := ib.Release()
	ib.AddRef()
	if vbAfter != vbBefore {
		t.Fatalf("vertex buffer refcount after DrawIndexedPrimitiveUP = %d, want %d", vbAfter, vbBefore)
	}
	if ibAfter != ibBefore {
		t.Fatalf("index buffer refcount after DrawIndexedPrimitiveUP = %d, want %d", ibAfter, ibBefore)
	}
}
