package pipeline

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/xerr"
)

// Legacy vertex-format flag bits.
const (
	FVFXYZ       uint32 = 0x002
	FVFXYZRHW    uint32 = 0x004
	FVFNormal    uint32 = 0x010
	FVFDiffuse   uint32 = 0x040
	FVFSpecular  uint32 = 0x080
	fvfTexCountMask     = 0xF00
	fvfTexCountShift    = 8
)

// TexCoordCount returns the number of texture-coordinate sets encoded
// in fvf's bits 8-11.
func TexCoordCount(fvf uint32) int {
	return int((fvf & fvfTexCountMask) >> fvfTexCountShift)
}

// HasDiffuse reports whether fvf carries a diffuse color element.
func HasDiffuse(fvf uint32) bool { return fvf&FVFDiffuse != 0 }

// Stride returns the per-vertex byte stride implied by fvf's bits.
func Stride(fvf uint32) int {
	var s int
	switch {
	case fvf&FVFXYZRHW != 0:
		s += 16
	case fvf&FVFXYZ != 0:
		s += 12
	}
	if fvf&FVFNormal != 0 {
		s += 12
	}
	if fvf&FVFDiffuse != 0 {
		s += 4
	}
	if fvf&FVFSpecular != 0 {
		s += 4
	}
	s += TexCoordCount(fvf) * 8
	return s
}

// inputElements builds the ordered input-element list for fvf:
// position, normal, diffuse, specular (stride-only), then one
// TEXCOORDi per texcount.
func inputElements(fvf uint32) []backend.InputElementDesc {
	var elems []backend.InputElementDesc
	offset := 0

	switch {
	case fvf&FVFXYZRHW != 0:
		elems = append(elems, backend.InputElementDesc{
			Semantic: "POSITION", Index: 0, Format: backend.VertexFloat4, Offset: offset,
		})
		offset += 16
	case fvf&FVFXYZ != 0:
		elems = append(elems, backend.InputElementDesc{
			Semantic: "POSITION", Index: 0, Format: backend.VertexFloat3, Offset: offset,
		})
		offset += 12
	}

	if fvf&FVFNormal != 0 {
		elems = append(elems, backend.InputElementDesc{
			Semantic: "NORMAL", Index: 0, Format: backend.VertexFloat3, Offset: offset,
		})
		offset += 12
	}

	if fvf&FVFDiffuse != 0 {
		elems = append(elems, backend.InputElementDesc{
			Semantic: "COLOR", Index: 0, Format: backend.VertexUNorm8x4, Offset: offset,
		})
		offset += 4
	}

	if fvf&FVFSpecular != 0 {
		// Specular only contributes to stride: it is not bound as an
		// input element.
		offset += 4
	}

	n := TexCoordCount(fvf)
	for i := 0; i < n; i++ {
		elems = append(elems, backend.InputElementDesc{
			Semantic: "TEXCOORD", Index: i, Format: backend.VertexFloat2, Offset: offset,
		})
		offset += 8
	}

	stride := offset
	for i := range elems {
		elems[i].Stride = stride
	}
	return elems
}

const layoutCacheCapacity = 16

// pipelineEntry bundles the input layout synthesized for one FVF word
// with the pipeline state object built from it, since both are keyed
// by the same FVF and the static shaders never change.
type pipelineEntry struct {
	layout backend.InputLayout
	pso    backend.PipelineStateObject
}

// LayoutCache synthesizes and caches backend input layouts (and the
// pipeline state objects built from them) keyed by the full 32-bit FVF
// word, bounded at its capacity (layoutCacheCapacity by default) with
// FIFO eviction: a
// cache hit never promotes its entry, so eviction order tracks
// insertion order alone.
type LayoutCache struct {
	cache *lru.Cache
}

// NewLayoutCache creates a LayoutCache with the default capacity.
func NewLayoutCache() *LayoutCache {
	return NewLayoutCacheWithCapacity(layoutCacheCapacity)
}

// NewLayoutCacheWithCapacity creates a LayoutCache bounded at
// capacity entries. Tests use a small capacity to exercise eviction
// deterministically; device.Config.LayoutCacheCapacity exposes this
// as an ambient, non-functional knob.
func NewLayoutCacheWithCapacity(capacity int) *LayoutCache {
	if capacity <= 0 {
		capacity = layoutCacheCapacity
	}
	c, _ := lru.New(capacity)
	return &LayoutCache{cache: c}
}

// Get returns the cached or newly synthesized (input layout, pipeline
// state object) pair for fvf, built against vs/ps. A vertex format
// with no position element is rejected: the caller must skip the draw
// with a diagnostic. Looking up a cached entry never promotes it,
// preserving FIFO eviction order.
func (lc *LayoutCache) Get(dev backend.Device, vs, ps backend.ShaderCode, fvf uint32) (backend.InputLayout, backend.PipelineStateObject, error) {
	if fvf&(FVFXYZ|FVFXYZRHW) == 0 {
		return nil, nil, xerr.InvalidArgument(prefix, "vertex format has no position element")
	}
	if v, ok := lc.cache.Peek(fvf); ok {
		e := v.(pipelineEntry)
		return e.layout, e.pso, nil
	}
	elems := inputElements(fvf)
	if len(elems) == 0 || len(elems) > 8 {
		return nil, nil, xerr.InvalidArgument(prefix, "vertex format element count out of range")
	}
	layout, err := dev.NewInputLayout(elems, vs)
	if err != nil {
		return nil, nil, xerr.BackendFailure(prefix, err)
	}
	pso, err := dev.NewPipelineStateObject(&backend.PipelineDesc{VertexShader: vs, PixelShader: ps, InputLayout: layout})
	if err != nil {
		return nil, nil, xerr.BackendFailure(prefix, err)
	}
	lc.cache.Add(fvf, pipelineEntry{layout: layout, pso: pso})
	return layout, pso, nil
}

// Len reports the number of entries currently cached, for tests
// asserting on cache behaviour.
func (lc *LayoutCache) Len() int { return lc.cache.Len() }
