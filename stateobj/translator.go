package stateobj

import (
	"math"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/state"
	"github.com/rgl/ffp8/xerr"
)

const prefix = "stateobj"

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Translator lazily builds and caches the backend state objects for
// the blend, depth-stencil and rasterizer families, plus one sampler
// per texture stage. Each family keeps the hash its current object was
// built from; Apply only rebuilds a family when its hash changes.
type Translator struct {
	dev backend.Device

	blendHash uint64
	blendObj  backend.BlendState

	dsHash uint64
	dsObj  backend.DepthStencilState

	rastHash uint64
	rastObj  backend.RasterizerState

	samplerHash [state.MaxStages]uint64
	samplerObj  [state.MaxStages]backend.SamplerState
}

// New creates a Translator backed by dev.
func New(dev backend.Device) *Translator {
	return &Translator{dev: dev}
}

func (t *Translator) updateBlend(r *state.RenderStates) error {
	enable := r.Get(state.AlphaBlendEnable) != 0
	src := mapBlendFactor(r.Get(state.SrcBlend))
	dst := mapBlendFactor(r.Get(state.DestBlend))
	op := mapBlendOp(r.Get(state.BlendOp))
	mask := mapColorWriteMask(r.Get(state.ColorWriteEnable))

	h := hashUint32s(b2u(enable), uint32(src), uint32(dst), uint32(op), uint32(mask))
	if t.blendObj != nil && h == t.blendHash {
		return nil
	}
	desc := backend.BlendDesc{
		Enable:    enable,
		SrcColor:  src,
		DstColor:  dst,
		ColorOp:   op,
		SrcAlpha:  src,
		DstAlpha:  dst,
		AlphaOp:   op,
		WriteMask: mask,
	}
	obj, err := t.dev.NewBlendState(&desc)
	if err != nil {
		return xerr.BackendFailure(prefix, err)
	}
	if t.blendObj != nil {
		t.blendObj.Destroy()
	}
	t.blendObj, t.blendHash = obj, h
	return nil
}

func (t *Translator) updateDepthStencil(r *state.RenderStates) error {
	depthEnable := r.Get(state.ZEnable) != 0
	depthWrite := r.Get(state.ZWriteEnable) != 0
	depthCmp := mapCmpFunc(r.Get(state.ZFunc), backend.CmpLessEqual)
	stencilEnable := r.Get(state.StencilEnable) != 0
	stencilCmp := mapCmpFunc(r.Get(state.StencilFunc), backend.CmpAlways)
	fail := mapStencilOp(r.Get(state.StencilFail))
	zfail := mapStencilOp(r.Get(state.StencilZFail))
	pass := mapStencilOp(r.Get(state.StencilPass))
	readMask := uint8(r.Get(state.StencilMask))
	writeMask := uint8(r.Get(state.StencilWriteMask))

	face := backend.StencilFace{Fail: fail, DepthFail: zfail, Pass: pass, Cmp: stencilCmp}

	h := hashUint32s(
		b2u(depthEnable), b2u(depthWrite), uint32(depthCmp),
		b2u(stencilEnable), uint32(stencilCmp), uint32(fail), uint32(zfail), uint32(pass),
		uint32(readMask), uint32(writeMask),
	)
	if t.dsObj != nil && h == t.dsHash {
		return nil
	}
	desc := backend.DepthStencilDesc{
		DepthEnable:      depthEnable,
		DepthWriteEnable: depthWrite,
		DepthCmp:         depthCmp,
		StencilEnable:    stencilEnable,
		StencilReadMask:  readMask,
		StencilWriteMask: writeMask,
		Front:            face,
		Back:             face,
	}
	obj, err := t.dev.NewDepthStencilState(&desc)
	if err != nil {
		return xerr.BackendFailure(prefix, err)
	}
	if t.dsObj != nil {
		t.dsObj.Destroy()
	}
	t.dsObj, t.dsHash = obj, h
	return nil
}

func (t *Translator) updateRasterizer(r *state.RenderStates) error {
	fill := mapFillMode(r.Get(state.FillMode))
	cull := mapCullMode(r.Get(state.CullMode))

	h := hashUint32s(uint32(fill), uint32(cull))
	if t.rastObj != nil && h == t.rastHash {
		return nil
	}
	desc := backend.RasterizerDesc{
		Fill:                  fill,
		Cull:                  cull,
		FrontCounterClockwise: false,
		DepthClipEnable:       true,
		ScissorEnable:         false,
		MultisampleEnable:     false,
	}
	obj, err := t.dev.NewRasterizerState(&desc)
	if err != nil {
		return xerr.BackendFailure(prefix, err)
	}
	if t.rastObj != nil {
		t.rastObj.Destroy()
	}
	t.rastObj, t.rastHash = obj, h
	return nil
}

// updateSampler rebuilds stage's sampler object if its relevant TSS
// subset changed.
func (t *Translator) updateSampler(stage int, ts *state.TexStageStates) error {
	mag := ts.Get(stage, state.MagFilter)
	min := ts.Get(stage, state.MinFilter)
	mip := ts.Get(stage, state.MipFilter)
	addrU := ts.Get(stage, state.AddressU)
	addrV := ts.Get(stage, state.AddressV)
	aniso := ts.Get(stage, state.MaxAnisotropy)

	filter := mapFilter(mag, min, mip)
	u := mapAddrMode(addrU)
	v := mapAddrMode(addrV)

	h := hashUint32s(uint32(filter), uint32(u), uint32(v), aniso)
	if t.samplerObj[stage] != nil && h == t.samplerHash[stage] {
		return nil
	}
	desc := backend.SamplerDesc{
		Filter:        filter,
		AddrU:         u,
		AddrV:         v,
		AddrW:         backend.AddrWrap,
		MaxAnisotropy: int(aniso),
		MaxLOD:        math.MaxFloat32,
	}
	obj, err := t.dev.NewSamplerState(&desc)
	if err != nil {
		return xerr.BackendFailure(prefix, err)
	}
	if t.samplerObj[stage] != nil {
		t.samplerObj[stage].Destroy()
	}
	t.samplerObj[stage], t.samplerHash[stage] = obj, h
	return nil
}

// Apply runs the translator's apply sequence against the store's
// current state and binds the results on ctx: update blend,
// depth-stencil and rasterizer, bind all three with blend factor
// (1,1,1,1), sample mask 0xFFFFFFFF and the store's stencil reference,
// then update and bind stage 0's sampler.
func (t *Translator) Apply(s *state.Store, ctx backend.Context) error {
	if err := t.updateBlend(s.Render); err != nil {
		return err
	}
	if err := t.updateDepthStencil(s.Render); err != nil {
		return err
	}
	if err := t.updateRasterizer(s.Render); err != nil {
		return err
	}
	ctx.SetBlendState(t.blendObj, [4]float32{1, 1, 1, 1}, 0xFFFFFFFF)
	ctx.SetDepthStencilState(t.dsObj, s.Render.Get(state.StencilRef))
	ctx.SetRasterizerState(t.rastObj)

	if err := t.updateSampler(0, s.TexStage); err != nil {
		return err
	}
	ctx.SetPixelSampler(0, t.samplerObj[0])
	return nil
}

// BindSampler updates and binds the sampler for an arbitrary stage.
// The façade calls this whenever a texture is bound to a stage
// (stage 0 included): Apply only covers stage 0, but other active
// stages still need a sampler bound before they can be sampled.
func (t *Translator) BindSampler(stage int, s *state.Store, ctx backend.Context) error {
	if stage < 0 || stage >= state.MaxStages {
		return xerr.InvalidArgument(prefix, "sampler stage out of range")
	}
	if err := t.updateSampler(stage, s.TexStage); err != nil {
		return err
	}
	ctx.SetPixelSampler(stage, t.samplerObj[stage])
	return nil
}
