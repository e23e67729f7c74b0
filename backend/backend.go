// Package backend defines the interface through which the translation
// engine drives a modern programmable graphics backend.
//
// The engine never talks to a real GPU API directly: it creates and
// drives backend.Buffer, backend.Texture2D, backend.SamplerState and
// backend.PipelineStateObject values obtained from a backend.Device,
// and everything else in this module is backend-agnostic. Construction
// of the Device itself (opening an adapter, creating a swap chain,
// wiring up a window) is outside this module's scope; see
// backend/noop for a dependency-free Device used by this module's own
// tests.
package backend

import "errors"

// ErrNoDevice means that no suitable backend device could be created.
var ErrNoDevice = errors.New("backend: no suitable device")

// ErrFatal means that the backend is in an unrecoverable state.
var ErrFatal = errors.New("backend: fatal error")

// Destroyer is implemented by backend resources that hold memory or
// handles the garbage collector does not manage.
type Destroyer interface {
	Destroy()
}

// Format describes the format of pixel/vertex/index data understood by
// the backend. It deliberately mirrors only the subset the legacy
// formats in package format can map onto (see format.ToBackendFormat).
type Format int

// Backend pixel/vertex formats.
const (
	RGBA8Unorm Format = iota
	BGRA8Unorm
	BGRX8Unorm
	B5G6R5Unorm
	B5G5R5A1Unorm
	BC1Unorm
	BC2Unorm
	BC3Unorm
	A8Unorm
	R8Unorm
	R16UInt
	R32UInt
	D16Unorm
	D24UnormS8UInt

	R32G32B32A32Float
	R32G32B32Float
	R32G32Float
)

// Usage is a mask of valid uses for a Buffer or Texture2D.
type Usage int

// Usage flags.
const (
	UsageVertex Usage = 1 << iota
	UsageIndex
	UsageConstant
	UsageShaderResource
	UsageRenderTarget
	UsageDepthStencil
)

// Device is the interface to an underlying graphics backend. The
// translation engine consumes it but does not construct it: building
// the concrete device/context/swap chain belongs to the caller.
type Device interface {
	// NewBuffer creates a buffer of the given size and usage, with no
	// initial contents.
	NewBuffer(size int64, usg Usage) (Buffer, error)

	// NewTexture2D creates a 2D texture with the given mip chain.
	NewTexture2D(fmt Format, width, height, levels int, usg Usage) (Texture2D, error)

	// NewSamplerState creates an immutable sampler object.
	NewSamplerState(desc *SamplerDesc) (SamplerState, error)

	// NewBlendState creates an immutable blend-state object.
	NewBlendState(desc *BlendDesc) (BlendState, error)

	// NewDepthStencilState creates an immutable depth/stencil-state
	// object.
	NewDepthStencilState(desc *DepthStencilDesc) (DepthStencilState, error)

	// NewRasterizerState creates an immutable rasterizer-state object.
	NewRasterizerState(desc *RasterizerDesc) (RasterizerState, error)

	// NewShaderCode compiles shader source into a backend binary.
	NewShaderCode(stage ShaderStage, source string) (ShaderCode, error)

	// NewInputLayout creates an input layout, validated against the
	// given vertex shader's input signature.
	NewInputLayout(elems []InputElementDesc, vs ShaderCode) (InputLayout, error)

	// NewPipelineStateObject links a vertex and pixel shader together
	// with an input layout into a bindable pipeline.
	NewPipelineStateObject(desc *PipelineDesc) (PipelineStateObject, error)

	// ImmediateContext returns the single immediate device context
	// used to record and submit commands. A BackendDevice in this
	// module's scope always has exactly one.
	ImmediateContext() Context
}

// ShaderStage identifies a programmable stage.
type ShaderStage int

// Shader stages.
const (
	StageVertex ShaderStage = iota
	StagePixel
)

// Buffer is a linear GPU-visible memory allocation: vertex data, index
// data, or a constant buffer.
type Buffer interface {
	Destroyer

	// Update replaces the full contents of the buffer. discard, when
	// true, tells the backend that previous contents need not be
	// preserved (a write-discard map), matching the resource manager's
	// whole-buffer Unlock semantics.
	Update(data []byte, discard bool) error

	// Size returns the buffer's size in bytes.
	Size() int64
}

// Texture2D is a 2D image resource with an arbitrary number of mip
// levels.
type Texture2D interface {
	Destroyer

	// UpdateSubresource uploads one mip level's worth of linear image
	// data, given its row pitch and (for compressed formats) slice
	// pitch, matching the resource manager's Unlock contract.
	UpdateSubresource(level int, data []byte, rowPitch, slicePitch int) error

	// ShaderResourceView returns a handle usable to bind the texture
	// for sampling.
	ShaderResourceView() ShaderResourceView

	Width() int
	Height() int
	Levels() int
	Format() Format
}

// ShaderResourceView is an opaque handle to a texture bound for
// sampling.
type ShaderResourceView interface{}

// SamplerDesc describes the parameters of a SamplerState.
type SamplerDesc struct {
	Filter       Filter
	AddrU        AddrMode
	AddrV        AddrMode
	AddrW        AddrMode
	MaxAnisotropy int
	MaxLOD       float32
}

// Filter is the type of a sampler's min/mag/mip filter combination.
type Filter int

// Filters.
const (
	FilterPoint Filter = iota
	FilterLinear
	FilterAnisotropic
)

// AddrMode is a sampler's texture-coordinate address mode.
type AddrMode int

// Address modes.
const (
	AddrWrap AddrMode = iota
	AddrMirror
	AddrClamp
	AddrBorder
	AddrMirrorOnce
)

// SamplerState is an immutable sampler object.
type SamplerState interface{ Destroyer }

// BlendFactor is a blend-equation operand.
type BlendFactor int

// Blend factors.
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendInvSrcColor
	BlendSrcAlpha
	BlendInvSrcAlpha
	BlendDstAlpha
	BlendInvDstAlpha
	BlendDstColor
	BlendInvDstColor
	BlendSrcAlphaSat
)

// BlendOp is a blend-equation combine operator.
type BlendOp int

// Blend operators.
const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpRevSubtract
	BlendOpMin
	BlendOpMax
)

// ColorWriteMask is a mask of color channels to write.
type ColorWriteMask int

// Color write mask bits.
const (
	WriteRed ColorWriteMask = 1 << iota
	WriteGreen
	WriteBlue
	WriteAlpha
	WriteAll = WriteRed | WriteGreen | WriteBlue | WriteAlpha
)

// BlendDesc describes a BlendState.
type BlendDesc struct {
	Enable     bool
	SrcColor   BlendFactor
	DstColor   BlendFactor
	ColorOp    BlendOp
	SrcAlpha   BlendFactor
	DstAlpha   BlendFactor
	AlphaOp    BlendOp
	WriteMask  ColorWriteMask
}

// BlendState is an immutable blend-state object.
type BlendState interface{ Destroyer }

// CmpFunc is a comparison function used by depth, stencil and sampler
// tests.
type CmpFunc int

// Comparison functions.
const (
	CmpNever CmpFunc = iota
	CmpLess
	CmpEqual
	CmpLessEqual
	CmpGreater
	CmpNotEqual
	CmpGreaterEqual
	CmpAlways
)

// StencilOp is a stencil write operation.
type StencilOp int

// Stencil operations.
const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrSat
	StencilDecrSat
	StencilInvert
	StencilIncrWrap
	StencilDecrWrap
)

// StencilFace describes one face's stencil test parameters.
type StencilFace struct {
	Fail      StencilOp
	DepthFail StencilOp
	Pass      StencilOp
	Cmp       CmpFunc
}

// DepthStencilDesc describes a DepthStencilState.
type DepthStencilDesc struct {
	DepthEnable     bool
	DepthWriteEnable bool
	DepthCmp        CmpFunc
	StencilEnable   bool
	StencilReadMask  uint8
	StencilWriteMask uint8
	Front           StencilFace
	Back            StencilFace
}

// DepthStencilState is an immutable depth/stencil-state object.
type DepthStencilState interface{ Destroyer }

// CullMode is a triangle culling mode.
type CullMode int

// Cull modes.
const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FillMode is a triangle rasterization fill mode.
type FillMode int

// Fill modes.
const (
	FillSolid FillMode = iota
	FillWireframe
)

// RasterizerDesc describes a RasterizerState.
type RasterizerDesc struct {
	Fill                FillMode
	Cull                CullMode
	FrontCounterClockwise bool
	DepthClipEnable     bool
	ScissorEnable       bool
	MultisampleEnable   bool
}

// RasterizerState is an immutable rasterizer-state object.
type RasterizerState interface{ Destroyer }

// ShaderCode is a compiled shader binary.
type ShaderCode interface{ Destroyer }

// VertexFormat is the scalar/vector type of a vertex input element.
type VertexFormat int

// Vertex input element formats.
const (
	VertexFloat1 VertexFormat = iota
	VertexFloat2
	VertexFloat3
	VertexFloat4
	VertexUNorm8x4
)

// InputElementDesc describes one element of an input layout.
type InputElementDesc struct {
	Semantic   string
	Index      int
	Format     VertexFormat
	Offset     int
	Stride     int
}

// InputLayout is an immutable vertex-input-layout object.
type InputLayout interface{ Destroyer }

// PipelineDesc describes a PipelineStateObject.
type PipelineDesc struct {
	VertexShader ShaderCode
	PixelShader  ShaderCode
	InputLayout  InputLayout
}

// PipelineStateObject bundles a vertex+pixel shader pair with an input
// layout.
type PipelineStateObject interface{ Destroyer }

// Topology is a primitive topology.
type Topology int

// Primitive topologies.
const (
	TopologyPointList Topology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
)

// IndexFormat is the width of index buffer elements.
type IndexFormat int

// Index formats.
const (
	Index16 IndexFormat = 2
	Index32 IndexFormat = 4
)

// Viewport defines the bounds of a viewport.
type Viewport struct {
	X, Y, Width, Height, MinDepth, MaxDepth float32
}

// ClearValue describes a clear color or depth/stencil value.
type ClearValue struct {
	Color        [4]float32
	Depth        float32
	Stencil      uint32
}

// RenderTargetView is an opaque handle to a color render target.
type RenderTargetView interface{}

// DepthStencilView is an opaque handle to a depth/stencil target.
type DepthStencilView interface{}

// Context is the single immediate command-recording/submission
// interface exposed by a Device. Every call takes effect immediately
// (there is no deferred command list in this module's scope).
type Context interface {
	// ClearRenderTargetView clears a color render target to rgba,
	// already linearized from whatever encoding the caller used.
	ClearRenderTargetView(rtv RenderTargetView, rgba [4]float32)

	// ClearDepthStencilView clears the depth and/or stencil planes of
	// a depth/stencil target.
	ClearDepthStencilView(dsv DepthStencilView, clearDepth, clearStencil bool, depth float32, stencil uint8)

	SetViewport(vp Viewport)
	SetRenderTargets(rtv RenderTargetView, dsv DepthStencilView)

	SetPipelineState(pso PipelineStateObject)
	SetInputLayout(il InputLayout)
	SetPrimitiveTopology(t Topology)

	SetVertexBuffer(slot int, buf Buffer, stride, offset int)
	SetIndexBuffer(buf Buffer, format IndexFormat, offset int)

	SetVertexConstantBuffer(slot int, buf Buffer)
	SetPixelConstantBuffer(slot int, buf Buffer)

	SetPixelShaderResource(slot int, srv ShaderResourceView)
	SetPixelSampler(slot int, s SamplerState)

	SetBlendState(bs BlendState, blendFactor [4]float32, sampleMask uint32)
	SetDepthStencilState(dss DepthStencilState, stencilRef uint32)
	SetRasterizerState(rs RasterizerState)

	Draw(vertexCount, startVertex int)
	DrawIndexed(indexCount, startIndex, baseVertex int)

	// Present presents the backend's default swap chain, if any.
	Present(syncInterval int) error
}
