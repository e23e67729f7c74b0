// Package noop implements backend.Device without touching any real
// graphics API. It exists so that the translation engine — the code
// under test in this module — can be driven end to end in ordinary Go
// tests.
//
// Buffers and textures keep their CPU-side contents in a plain byte
// slice so tests can assert on what the engine uploaded; every state
// object records the descriptor it was built from for the same reason.
// The Context tracks current bindings so tests can assert on bound
// state (e.g. that SetViewport takes effect immediately).
package noop

import (
	"fmt"

	"github.com/rgl/ffp8/backend"
)

// Device is a backend.Device that performs no real GPU work.
type Device struct {
	ctx *Context
}

// New creates a noop Device and its immediate Context. It owns no
// render target: RTV/DSV handles are whatever the caller passes on.
func New() *Device {
	d := &Device{}
	d.ctx = &Context{dev: d}
	return d
}

// Context returns the device's immediate context, exposing the
// noop-only introspection fields tests use to assert on bound state.
func (d *Device) Context() *Context { return d.ctx }

func (d *Device) NewBuffer(size int64, usg backend.Usage) (backend.Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("noop: negative buffer size")
	}
	return &Buffer{data: make([]byte, size), usage: usg}, nil
}

func (d *Device) NewTexture2D(fmt_ backend.Format, width, height, levels int, usg backend.Usage) (backend.Texture2D, error) {
	if width < 1 || height < 1 || levels < 1 {
		return nil, fmt.Errorf("noop: invalid texture dimensions")
	}
	t := &Texture2D{
		format: fmt_,
		width:  width,
		height: height,
		levels: make([][]byte, levels),
		usage:  usg,
	}
	return t, nil
}

func (d *Device) NewSamplerState(desc *backend.SamplerDesc) (backend.SamplerState, error) {
	cp := *desc
	return &SamplerState{Desc: cp}, nil
}

func (d *Device) NewBlendState(desc *backend.BlendDesc) (backend.BlendState, error) {
	cp := *desc
	return &BlendState{Desc: cp}, nil
}

func (d *Device) NewDepthStencilState(desc *backend.DepthStencilDesc) (backend.DepthStencilState, error) {
	cp := *desc
	return &DepthStencilState{Desc: cp}, nil
}

func (d *Device) NewRasterizerState(desc *backend.RasterizerDesc) (backend.RasterizerState, error) {
	cp := *desc
	return &RasterizerState{Desc: cp}, nil
}

func (d *Device) NewShaderCode(stage backend.ShaderStage, source string) (backend.ShaderCode, error) {
	if source == "" {
		return nil, fmt.Errorf("noop: empty shader source")
	}
	return &ShaderCode{Stage: stage, Source: source}, nil
}

func (d *Device) NewInputLayout(elems []backend.InputElementDesc, vs backend.ShaderCode) (backend.InputLayout, error) {
	if len(elems) == 0 {
		return nil, fmt.Errorf("noop: empty input layout")
	}
	cp := make([]backend.InputElementDesc, len(elems))
	copy(cp, elems)
	return &InputLayout{Elems: cp}, nil
}

func (d *Device) NewPipelineStateObject(desc *backend.PipelineDesc) (backend.PipelineStateObject, error) {
	if desc.VertexShader == nil || desc.PixelShader == nil {
		return nil, fmt.Errorf("noop: pipeline missing a shader")
	}
	cp := *desc
	return &PipelineStateObject{Desc: cp}, nil
}

func (d *Device) ImmediateContext() backend.Context { return d.ctx }

// Buffer is the noop backend.Buffer.
type Buffer struct {
	data  []byte
	usage backend.Usage
}

func (b *Buffer) Destroy() {}

func (b *Buffer) Update(data []byte, discard bool) error {
	if int64(len(data)) > int64(len(b.data)) {
		return fmt.Errorf("noop: update exceeds buffer capacity")
	}
	copy(b.data, data)
	return nil
}

func (b *Buffer) Size() int64 { return int64(len(b.data)) }

// Bytes exposes the buffer's current contents for test assertions.
func (b *Buffer) Bytes() []byte { return b.data }

// Texture2D is the noop backend.Texture2D.
type Texture2D struct {
	format backend.Format
	width  int
	height int
	levels [][]byte
	usage  backend.Usage
}

func (t *Texture2D) Destroy() {}

func (t *Texture2D) UpdateSubresource(level int, data []byte, rowPitch, slicePitch int) error {
	if level < 0 || level >= len(t.levels) {
		return fmt.Errorf("noop: level %d out of range", level)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	t.levels[level] = cp
	return nil
}

func (t *Texture2D) ShaderResourceView() backend.ShaderResourceView { return t }

func (t *Texture2D) Width() int           { return t.width }
func (t *Texture2D) Height() int          { return t.height }
func (t *Texture2D) Levels() int          { return len(t.levels) }
func (t *Texture2D) Format() backend.Format { return t.format }

// Level returns the raw bytes uploaded for the given mip level, or nil
// if nothing was ever uploaded.
func (t *Texture2D) Level(level int) []byte { return t.levels[level] }

// SamplerState records the descriptor it was created from.
type SamplerState struct {
	Desc backend.SamplerDesc
}

func (*SamplerState) Destroy() {}

// BlendState records the descriptor it was created from.
type BlendState struct {
	Desc backend.BlendDesc
}

func (*BlendState) Destroy() {}

// DepthStencilState records the descriptor it was created from.
type DepthStencilState struct {
	Desc backend.DepthStencilDesc
}

func (*DepthStencilState) Destroy() {}

// RasterizerState records the descriptor it was created from.
type RasterizerState struct {
	Desc backend.RasterizerDesc
}

func (*RasterizerState) Destroy() {}

// ShaderCode records the source it was compiled from.
type ShaderCode struct {
	Stage  backend.ShaderStage
	Source string
}

func (*ShaderCode) Destroy() {}

// InputLayout records the elements it was created from.
type InputLayout struct {
	Elems []backend.InputElementDesc
}

func (*InputLayout) Destroy() {}

// PipelineStateObject records the descriptor it was created from.
type PipelineStateObject struct {
	Desc backend.PipelineDesc
}

func (*PipelineStateObject) Destroy() {}
