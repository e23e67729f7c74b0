package state_test

import (
	"testing"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/linear"
	"github.com/rgl/ffp8/state"
)

type fakeSink struct {
	got backend.Viewport
	n   int
}

func (f *fakeSink) SetViewport(vp backend.Viewport) { f.got = vp; f.n++ }

func TestRenderStateRoundTrip(t *testing.T) {
	r := state.NewRenderStates()
	r.Set(state.CullMode, state.CullCW)
	if got := r.Get(state.CullMode); got != state.CullCW {
		t.Errorf("Get(CullMode) = %d, want %d", got, state.CullCW)
	}
}

func TestRenderStateOutOfRangeIgnored(t *testing.T) {
	r := state.NewRenderStates()
	r.Set(state.RenderStateID(9999), 42)
	if got := r.Get(state.RenderStateID(9999)); got != 0 {
		t.Errorf("out-of-range Get = %d, want 0", got)
	}
}

func TestRenderStateDefaults(t *testing.T) {
	r := state.NewRenderStates()
	cases := map[state.RenderStateID]uint32{
		state.ZEnable:           1,
		state.ZWriteEnable:      1,
		state.ZFunc:             state.CmpLessEqual,
		state.FillMode:          state.FillSolid,
		state.ShadeMode:         state.ShadeGouraud,
		state.CullMode:          state.CullCCW,
		state.AlphaBlendEnable:  0,
		state.SrcBlend:          state.BlendOne,
		state.DestBlend:         state.BlendZero,
		state.AlphaTestEnable:   0,
		state.AlphaFunc:         state.CmpAlways,
		state.AlphaRef:          0,
		state.StencilEnable:     0,
		state.ColorWriteEnable:  state.ColorWriteAll,
	}
	for id, want := range cases {
		if got := r.Get(id); got != want {
			t.Errorf("default Get(%d) = %d, want %d", id, got, want)
		}
	}
}

func TestTexStageRoundTrip(t *testing.T) {
	ts := state.NewTexStageStates()
	ts.Set(2, state.ColorOp, state.TexOpModulate)
	if got := ts.Get(2, state.ColorOp); got != state.TexOpModulate {
		t.Errorf("Get(2, ColorOp) = %d, want %d", got, state.TexOpModulate)
	}
	// Out-of-range stage/id ignored.
	ts.Set(99, state.ColorOp, 7)
	if got := ts.Get(99, state.ColorOp); got != 0 {
		t.Errorf("out-of-range stage Get = %d, want 0", got)
	}
}

func TestTexStageAllZeroInitially(t *testing.T) {
	ts := state.NewTexStageStates()
	for stage := 0; stage < state.MaxStages; stage++ {
		if got := ts.Get(stage, state.ColorOp); got != 0 {
			t.Errorf("stage %d ColorOp = %d, want 0", stage, got)
		}
	}
}

func TestTransformRoundTripAndIdentityInit(t *testing.T) {
	xf := state.NewTransforms()
	var id linear.M4
	id.I()
	if got := xf.Get(state.World); got != id {
		t.Errorf("initial World = %v, want identity", got)
	}
	m := linear.M4{{2}, {0, 2}, {0, 0, 2}, {0, 0, 0, 1}}
	xf.Set(state.Projection, &m)
	if got := xf.Get(state.Projection); got != m {
		t.Errorf("Get(Projection) = %v, want %v", got, m)
	}
}

func TestViewportEagerApplication(t *testing.T) {
	sink := &fakeSink{}
	s := state.New(sink)
	vp := state.Viewport{X: 100, Y: 100, Width: 200, Height: 150, MinZ: 0, MaxZ: 1}
	s.SetViewport(vp)
	if sink.n != 1 {
		t.Fatalf("viewport sink called %d times, want 1", sink.n)
	}
	want := backend.Viewport{X: 100, Y: 100, Width: 200, Height: 150, MinDepth: 0, MaxDepth: 1}
	if sink.got != want {
		t.Errorf("pushed viewport = %+v, want %+v", sink.got, want)
	}
	if got := s.GetViewport(); got != vp {
		t.Errorf("GetViewport() = %+v, want %+v", got, vp)
	}
}

func TestMaterialRoundTrip(t *testing.T) {
	s := state.New(nil)
	m := state.Material{Diffuse: state.Color{R: 1, G: 0.5, B: 0.25, A: 1}, Power: 8}
	s.SetMaterial(m)
	if got := s.GetMaterial(); got != m {
		t.Errorf("GetMaterial() = %+v, want %+v", got, m)
	}
}

func TestLightRoundTripAndEnable(t *testing.T) {
	s := state.New(nil)
	l := state.Light{Type: state.LightPoint, Range: 100}
	s.SetLight(3, l)
	got, ok := s.GetLight(3)
	if !ok || got != l {
		t.Errorf("GetLight(3) = %+v, %v, want %+v, true", got, ok, l)
	}
	if s.IsLightEnabled(3) {
		t.Errorf("light 3 enabled before LightEnable call")
	}
	s.LightEnable(3, true)
	if !s.IsLightEnabled(3) {
		t.Errorf("light 3 not enabled after LightEnable(3, true)")
	}
	s.LightEnable(3, false)
	if s.IsLightEnabled(3) {
		t.Errorf("light 3 still enabled after LightEnable(3, false)")
	}
}

func TestLightOutOfRange(t *testing.T) {
	s := state.New(nil)
	if _, ok := s.GetLight(state.MaxLights); ok {
		t.Errorf("GetLight(MaxLights) ok = true, want false")
	}
}
