package noop

import "github.com/rgl/ffp8/backend"

// Context is the noop backend.Context. It records every binding so
// that tests can make assertions about what the engine set without
// needing a real GPU to read back from.
type Context struct {
	dev *Device

	RTV backend.RenderTargetView
	DSV backend.DepthStencilView

	Viewport backend.Viewport

	PSO      backend.PipelineStateObject
	Layout   backend.InputLayout
	Topology backend.Topology

	VertexBuffers [1]vbBinding
	IndexBuffer   ibBinding

	VSConstants [1]backend.Buffer
	PSConstants [1]backend.Buffer

	PSResources [4]backend.ShaderResourceView
	PSSamplers  [4]backend.SamplerState

	Blend            backend.BlendState
	BlendFactor      [4]float32
	SampleMask       uint32
	DepthStencil     backend.DepthStencilState
	StencilRef       uint32
	Rasterizer       backend.RasterizerState

	// DrawCount and DrawIndexedCount tally calls for test assertions.
	DrawCount        int
	DrawIndexedCount int
	PresentCount     int

	// ClearedTarget/ClearedDepth/ClearedStencil record the most
	// recent clear of each kind, so tests can assert that a clear of
	// one kind does not touch the others.
	ClearedTarget  bool
	ClearedDepth   bool
	ClearedStencil bool
	LastColor      [4]float32
	LastDepth      float32
	LastStencil    uint8
}

type vbBinding struct {
	buf    backend.Buffer
	stride int
	offset int
}

type ibBinding struct {
	buf    backend.Buffer
	format backend.IndexFormat
	offset int
}

func (c *Context) ClearRenderTargetView(rtv backend.RenderTargetView, rgba [4]float32) {
	c.ClearedTarget = true
	c.LastColor = rgba
}

func (c *Context) ClearDepthStencilView(dsv backend.DepthStencilView, clearDepth, clearStencil bool, depth float32, stencil uint8) {
	if clearDepth {
		c.ClearedDepth = true
		c.LastDepth = depth
	}
	if clearStencil {
		c.ClearedStencil = true
		c.LastStencil = stencil
	}
}

func (c *Context) SetViewport(vp backend.Viewport)        { c.Viewport = vp }
func (c *Context) SetRenderTargets(rtv backend.RenderTargetView, dsv backend.DepthStencilView) {
	c.RTV, c.DSV = rtv, dsv
}

func (c *Context) SetPipelineState(pso backend.PipelineStateObject) { c.PSO = pso }
func (c *Context) SetInputLayout(il backend.InputLayout)            { c.Layout = il }
func (c *Context) SetPrimitiveTopology(t backend.Topology)          { c.Topology = t }

func (c *Context) SetVertexBuffer(slot int, buf backend.Buffer, stride, offset int) {
	c.VertexBuffers[slot] = vbBinding{buf, stride, offset}
}

func (c *Context) SetIndexBuffer(buf backend.Buffer, format backend.IndexFormat, offset int) {
	c.IndexBuffer = ibBinding{buf, format, offset}
}

func (c *Context) SetVertexConstantBuffer(slot int, buf backend.Buffer) { c.VSConstants[slot] = buf }
func (c *Context) SetPixelConstantBuffer(slot int, buf backend.Buffer)  { c.PSConstants[slot] = buf }

func (c *Context) SetPixelShaderResource(slot int, srv backend.ShaderResourceView) {
	c.PSResources[slot] = srv
}

func (c *Context) SetPixelSampler(slot int, s backend.SamplerState) { c.PSSamplers[slot] = s }

func (c *Context) SetBlendState(bs backend.BlendState, blendFactor [4]float32, sampleMask uint32) {
	c.Blend, c.BlendFactor, c.SampleMask = bs, blendFactor, sampleMask
}

func (c *Context) SetDepthStencilState(dss backend.DepthStencilState, stencilRef uint32) {
	c.DepthStencil, c.StencilRef = dss, stencilRef
}

func (c *Context) SetRasterizerState(rs backend.RasterizerState) { c.Rasterizer = rs }

func (c *Context) Draw(vertexCount, startVertex int) { c.DrawCount++ }

func (c *Context) DrawIndexed(indexCount, startIndex, baseVertex int) { c.DrawIndexedCount++ }

func (c *Context) Present(syncInterval int) error { c.PresentCount++; return nil }
