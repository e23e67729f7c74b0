// Package stateobj translates the mutable render-state and
// texture-stage-state tracked by the state store into the immutable
// backend objects a D3D11-class API expects: it hashes the relevant
// subset of that state and lazily builds and caches the backend blend,
// depth-stencil, rasterizer and per-stage sampler objects, matching the
// teacher's preference for small single-purpose translation helpers
// (driver/core.go's state-to-descriptor builders).
package stateobj

import (
	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/state"
)

func mapBlendFactor(v uint32) backend.BlendFactor {
	switch v {
	case state.BlendZero:
		return backend.BlendZero
	case state.BlendOne:
		return backend.BlendOne
	case state.BlendSrcColor:
		return backend.BlendSrcColor
	case state.BlendInvSrcColor:
		return backend.BlendInvSrcColor
	case state.BlendSrcAlpha:
		return backend.BlendSrcAlpha
	case state.BlendInvSrcAlpha:
		return backend.BlendInvSrcAlpha
	case state.BlendDestAlpha:
		return backend.BlendDstAlpha
	case state.BlendInvDestAlpha:
		return backend.BlendInvDstAlpha
	case state.BlendDestColor:
		return backend.BlendDstColor
	case state.BlendInvDestColor:
		return backend.BlendInvDstColor
	case state.BlendSrcAlphaSat:
		return backend.BlendSrcAlphaSat
	default:
		return backend.BlendOne
	}
}

func mapBlendOp(v uint32) backend.BlendOp {
	switch v {
	case state.BlendOpSubtract:
		return backend.BlendOpSubtract
	case state.BlendOpRevSubtract:
		return backend.BlendOpRevSubtract
	case state.BlendOpMin:
		return backend.BlendOpMin
	case state.BlendOpMax:
		return backend.BlendOpMax
	default:
		// BlendOpAdd, and the unset (zero) value, both mean ADD.
		return backend.BlendOpAdd
	}
}

func mapColorWriteMask(v uint32) backend.ColorWriteMask {
	var m backend.ColorWriteMask
	if v&state.ColorWriteRed != 0 {
		m |= backend.WriteRed
	}
	if v&state.ColorWriteGreen != 0 {
		m |= backend.WriteGreen
	}
	if v&state.ColorWriteBlue != 0 {
		m |= backend.WriteBlue
	}
	if v&state.ColorWriteAlpha != 0 {
		m |= backend.WriteAlpha
	}
	return m
}

func mapCmpFunc(v uint32, fallback backend.CmpFunc) backend.CmpFunc {
	switch v {
	case state.CmpNever:
		return backend.CmpNever
	case state.CmpLess:
		return backend.CmpLess
	case state.CmpEqual:
		return backend.CmpEqual
	case state.CmpLessEqual:
		return backend.CmpLessEqual
	case state.CmpGreater:
		return backend.CmpGreater
	case state.CmpNotEqual:
		return backend.CmpNotEqual
	case state.CmpGreaterEqual:
		return backend.CmpGreaterEqual
	case state.CmpAlways:
		return backend.CmpAlways
	default:
		return fallback
	}
}

func mapStencilOp(v uint32) backend.StencilOp {
	switch v {
	case state.StencilOpKeep:
		return backend.StencilKeep
	case state.StencilOpZero:
		return backend.StencilZero
	case state.StencilOpReplace:
		return backend.StencilReplace
	case state.StencilOpIncrSat:
		return backend.StencilIncrSat
	case state.StencilOpDecrSat:
		return backend.StencilDecrSat
	case state.StencilOpInvert:
		return backend.StencilInvert
	case state.StencilOpIncr:
		return backend.StencilIncrWrap
	case state.StencilOpDecr:
		return backend.StencilDecrWrap
	default:
		return backend.StencilKeep
	}
}

func mapFillMode(v uint32) backend.FillMode {
	switch v {
	case state.FillPoint, state.FillWireframe:
		// Point fill has no backend equivalent; wireframe is the
		// closest approximation.
		return backend.FillWireframe
	default:
		return backend.FillSolid
	}
}

func mapCullMode(v uint32) backend.CullMode {
	switch v {
	case state.CullCW:
		return backend.CullFront
	case state.CullCCW:
		return backend.CullBack
	default:
		return backend.CullNone
	}
}

func mapFilter(mag, min, mip uint32) backend.Filter {
	if mag == state.TexFilterAnisotropic || min == state.TexFilterAnisotropic || mip == state.TexFilterAnisotropic {
		return backend.FilterAnisotropic
	}
	if mag == state.TexFilterLinear || min == state.TexFilterLinear || mip == state.TexFilterLinear {
		return backend.FilterLinear
	}
	return backend.FilterPoint
}

func mapAddrMode(v uint32) backend.AddrMode {
	switch v {
	case state.TexAddressMirror:
		return backend.AddrMirror
	case state.TexAddressClamp:
		return backend.AddrClamp
	case state.TexAddressBorder:
		return backend.AddrBorder
	case state.TexAddressMirrorOnce:
		return backend.AddrMirrorOnce
	default:
		// TexAddressWrap, and unset (zero), both mean wrap.
		return backend.AddrWrap
	}
}
