package state

import (
	"github.com/rgl/ffp8/backend"
)

// Color is a legacy RGBA color with float32 channels.
type Color struct{ R, G, B, A float32 }

// Material holds the legacy D3DMATERIAL-shaped lighting material.
// Nothing in this emulator's fixed single-texture-modulate shader
// consumes these fields; they are carried purely so Set/GetMaterial
// round-trips.
type Material struct {
	Diffuse, Ambient, Specular, Emissive Color
	Power                                float32
}

// LightType is the legacy light kind.
type LightType int

// Light kinds.
const (
	LightPoint LightType = iota
	LightSpot
	LightDirectional
)

// Light holds one legacy D3DLIGHT-shaped light. See Material's note:
// these fields are not consumed by the pipeline emulator.
type Light struct {
	Type                             LightType
	Diffuse, Specular, Ambient       Color
	Position, Direction              [3]float32
	Range                            float32
	Falloff                          float32
	Attenuation0, Attenuation1, Attenuation2 float32
	Theta, Phi                       float32
}

// MaxLights is the number of light slots: the legacy D3D8/Xbox
// convention of 8.
const MaxLights = 8

// Viewport describes the legacy viewport rectangle and depth range.
type Viewport struct {
	X, Y, Width, Height int
	MinZ, MaxZ          float32
}

func (v Viewport) toBackend() backend.Viewport {
	return backend.Viewport{
		X: float32(v.X), Y: float32(v.Y),
		Width: float32(v.Width), Height: float32(v.Height),
		MinDepth: v.MinZ, MaxDepth: v.MaxZ,
	}
}

// ViewportSink receives the immediate backend effect of SetViewport.
// backend.Context satisfies this interface.
type ViewportSink interface {
	SetViewport(backend.Viewport)
}

// Store is the device's full monolithic state: render states,
// texture-stage states, transforms, viewport, material and lights,
// minus bindings and scene/ref-count bookkeeping, which belong to the
// façade.
type Store struct {
	Render   *RenderStates
	TexStage *TexStageStates
	Xform    *Transforms

	viewport Viewport
	material Material
	lights   [MaxLights]Light
	litMask  uint8 // bit i set means lights[i] is enabled

	fvf uint32

	sink ViewportSink
}

// New creates a Store with every field at its legacy default and
// wires sink to receive the eager effect of SetViewport.
func New(sink ViewportSink) *Store {
	return &Store{
		Render:   NewRenderStates(),
		TexStage: NewTexStageStates(),
		Xform:    NewTransforms(),
		sink:     sink,
	}
}

// SetViewport stores vp and immediately pushes the corresponding
// backend viewport — the one setter with an eager effect, because
// viewport is not part of any state-object hash.
func (s *Store) SetViewport(vp Viewport) {
	s.viewport = vp
	if s.sink != nil {
		s.sink.SetViewport(vp.toBackend())
	}
}

// GetViewport returns the last value passed to SetViewport.
func (s *Store) GetViewport() Viewport { return s.viewport }

// SetMaterial stores a copy of m.
func (s *Store) SetMaterial(m Material) { s.material = m }

// GetMaterial returns the last value passed to SetMaterial.
func (s *Store) GetMaterial() Material { return s.material }

// SetLight stores a copy of l at index i. Out-of-range indices are
// ignored, matching the lenience of SetRenderState/SetTextureStageState.
func (s *Store) SetLight(i int, l Light) {
	if i >= 0 && i < MaxLights {
		s.lights[i] = l
	}
}

// GetLight returns the light last set at index i, and whether i is in
// range.
func (s *Store) GetLight(i int) (Light, bool) {
	if i >= 0 && i < MaxLights {
		return s.lights[i], true
	}
	return Light{}, false
}

// LightEnable sets whether light i contributes to shading.
func (s *Store) LightEnable(i int, enable bool) {
	if i < 0 || i >= MaxLights {
		return
	}
	if enable {
		s.litMask |= 1 << uint(i)
	} else {
		s.litMask &^= 1 << uint(i)
	}
}

// IsLightEnabled reports whether light i is enabled.
func (s *Store) IsLightEnabled(i int) bool {
	if i < 0 || i >= MaxLights {
		return false
	}
	return s.litMask&(1<<uint(i)) != 0
}

// SetFVF stores the current vertex-format flags (the legacy "FVF").
func (s *Store) SetFVF(fvf uint32) { s.fvf = fvf }

// FVF returns the current vertex-format flags.
func (s *Store) FVF() uint32 { return s.fvf }
