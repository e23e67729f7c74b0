// Package state implements the emulated device state store: flat,
// enum-indexed arrays for render states, per-stage texture-stage
// states, transforms, plus viewport/material/light state. Every
// setter/getter here is a plain store or load; no backend work happens
// until the pipeline emulator (package pipeline) and the state object
// translator (package stateobj) next run.
package state

// RenderStateID identifies a slot in the render-state array. Values
// below MaxRenderStates are addressable.
type RenderStateID uint32

// Render-state identifiers used by this emulator. Unlike the legacy
// ABI's numeric constants, their exact values are an implementation
// detail: nothing outside this module depends on matching the
// original driver's numbering, only on round-tripping and on each
// slot's documented meaning.
const (
	ZEnable RenderStateID = iota
	ZWriteEnable
	ZFunc
	FillMode
	ShadeMode
	CullMode
	AlphaBlendEnable
	SrcBlend
	DestBlend
	BlendOp
	AlphaTestEnable
	AlphaFunc
	AlphaRef
	StencilEnable
	StencilFunc
	StencilFail
	StencilZFail
	StencilPass
	StencilRef
	StencilMask
	StencilWriteMask
	ColorWriteEnable
	TextureFactor
)

// MaxRenderStates is the size of the render-state array: a small
// (<=256) enumerated render-state identifier space.
const MaxRenderStates = 256

// Legacy-convention values for the enumerated fields above.
const (
	CmpNever = 1 + iota
	CmpLess
	CmpEqual
	CmpLessEqual
	CmpGreater
	CmpNotEqual
	CmpGreaterEqual
	CmpAlways
)

const (
	BlendZero = 1 + iota
	BlendOne
	BlendSrcColor
	BlendInvSrcColor
	BlendSrcAlpha
	BlendInvSrcAlpha
	BlendDestAlpha
	BlendInvDestAlpha
	BlendDestColor
	BlendInvDestColor
	BlendSrcAlphaSat
)

const (
	BlendOpAdd = 1 + iota
	BlendOpSubtract
	BlendOpRevSubtract
	BlendOpMin
	BlendOpMax
)

const (
	FillPoint = 1 + iota
	FillWireframe
	FillSolid
)

const (
	ShadeFlat = 1 + iota
	ShadeGouraud
)

const (
	CullNone = 1 + iota
	CullCW
	CullCCW
)

const (
	StencilOpKeep = 1 + iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncrSat
	StencilOpDecrSat
	StencilOpInvert
	StencilOpIncr
	StencilOpDecr
)

const (
	ColorWriteRed   = 1 << 0
	ColorWriteGreen = 1 << 1
	ColorWriteBlue  = 1 << 2
	ColorWriteAlpha = 1 << 3
	ColorWriteAll   = ColorWriteRed | ColorWriteGreen | ColorWriteBlue | ColorWriteAlpha
)

// RenderStates holds the dense render-state array.
type RenderStates struct {
	v [MaxRenderStates]uint32
}

// NewRenderStates returns a render-state array initialized to the
// legacy driver's defaults.
func NewRenderStates() *RenderStates {
	r := &RenderStates{}
	r.v[ZEnable] = 1
	r.v[ZWriteEnable] = 1
	r.v[ZFunc] = CmpLessEqual
	r.v[FillMode] = FillSolid
	r.v[ShadeMode] = ShadeGouraud
	r.v[CullMode] = CullCCW
	r.v[AlphaBlendEnable] = 0
	r.v[SrcBlend] = BlendOne
	r.v[DestBlend] = BlendZero
	r.v[BlendOp] = BlendOpAdd
	r.v[AlphaTestEnable] = 0
	r.v[AlphaFunc] = CmpAlways
	r.v[AlphaRef] = 0
	r.v[StencilEnable] = 0
	r.v[StencilFunc] = CmpAlways
	r.v[StencilFail] = StencilOpKeep
	r.v[StencilZFail] = StencilOpKeep
	r.v[StencilPass] = StencilOpKeep
	r.v[StencilMask] = 0xFFFFFFFF
	r.v[StencilWriteMask] = 0xFFFFFFFF
	r.v[ColorWriteEnable] = ColorWriteAll
	return r
}

// Set writes value to id's slot. Out-of-range identifiers are
// silently ignored, matching the legacy contract's lenience toward
// unknown hardware states.
func (r *RenderStates) Set(id RenderStateID, value uint32) {
	if uint32(id) < MaxRenderStates {
		r.v[id] = value
	}
}

// Get returns id's slot, or 0 for an out-of-range identifier.
func (r *RenderStates) Get(id RenderStateID) uint32 {
	if uint32(id) < MaxRenderStates {
		return r.v[id]
	}
	return 0
}
