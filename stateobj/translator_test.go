package stateobj_test

import (
	"testing"

	"github.com/rgl/ffp8/backend/noop"
	"github.com/rgl/ffp8/state"
	"github.com/rgl/ffp8/stateobj"
)

func TestApplyBindsDefaultsOnFirstCall(t *testing.T) {
	dev := noop.New()
	s := state.New(nil)
	tr := stateobj.New(dev)

	if err := tr.Apply(s, dev.ImmediateContext()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	ctx := dev.Context()
	if ctx.Blend == nil || ctx.DepthStencil == nil || ctx.Rasterizer == nil {
		t.Fatalf("Apply left a state object unbound: %+v", ctx)
	}
	if ctx.BlendFactor != [4]float32{1, 1, 1, 1} {
		t.Errorf("blend factor = %v, want (1,1,1,1)", ctx.BlendFactor)
	}
	if ctx.SampleMask != 0xFFFFFFFF {
		t.Errorf("sample mask = %x, want 0xFFFFFFFF", ctx.SampleMask)
	}
}

func TestApplyReusesCachedObjectsWhenStateUnchanged(t *testing.T) {
	dev := noop.New()
	s := state.New(nil)
	tr := stateobj.New(dev)
	ctx := dev.ImmediateContext()

	if err := tr.Apply(s, ctx); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	firstBlend := dev.Context().Blend
	firstDS := dev.Context().DepthStencil
	firstRast := dev.Context().Rasterizer

	// No state changed: a second Apply must reuse, not recreate.
	if err := tr.Apply(s, ctx); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if dev.Context().Blend != firstBlend {
		t.Errorf("blend object changed with no state change")
	}
	if dev.Context().DepthStencil != firstDS {
		t.Errorf("depth-stencil object changed with no state change")
	}
	if dev.Context().Rasterizer != firstRast {
		t.Errorf("rasterizer object changed with no state change")
	}
}

func TestApplyRebuildsBlendWhenStateChanges(t *testing.T) {
	dev := noop.New()
	s := state.New(nil)
	tr := stateobj.New(dev)
	ctx := dev.ImmediateContext()

	if err := tr.Apply(s, ctx); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	firstBlend := dev.Context().Blend

	s.Render.Set(state.AlphaBlendEnable, 1)
	if err := tr.Apply(s, ctx); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if dev.Context().Blend == firstBlend {
		t.Errorf("blend object unchanged after AlphaBlendEnable flipped")
	}
}

func TestUnknownBlendOpFallsBackToAdd(t *testing.T) {
	dev := noop.New()
	s := state.New(nil)
	s.Render.Set(state.BlendOp, 0)
	tr := stateobj.New(dev)
	if err := tr.Apply(s, dev.ImmediateContext()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	bs, ok := dev.Context().Blend.(*noop.BlendState)
	if !ok {
		t.Fatalf("Blend is not *noop.BlendState")
	}
	if bs.Desc.ColorOp != 0 { // backend.BlendOpAdd == 0
		t.Errorf("ColorOp = %d, want BlendOpAdd", bs.Desc.ColorOp)
	}
}

func TestSamplerAddressDefaultsToWrap(t *testing.T) {
	dev := noop.New()
	s := state.New(nil)
	tr := stateobj.New(dev)
	if err := tr.Apply(s, dev.ImmediateContext()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	ss, ok := dev.Context().PSSamplers[0].(*noop.SamplerState)
	if !ok {
		t.Fatalf("stage 0 sampler is not *noop.SamplerState")
	}
	if ss.Desc.AddrU != 0 { // backend.AddrWrap == 0
		t.Errorf("AddrU = %d, want AddrWrap", ss.Desc.AddrU)
	}
}

func TestBindSamplerRejectsOutOfRangeStage(t *testing.T) {
	dev := noop.New()
	s := state.New(nil)
	tr := stateobj.New(dev)
	if err := tr.BindSampler(state.MaxStages, s, dev.ImmediateContext()); err == nil {
		t.Fatalf("BindSampler(MaxStages) err = nil, want error")
	}
}
