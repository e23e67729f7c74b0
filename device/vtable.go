package device

import (
	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/resource"
	"github.com/rgl/ffp8/state"
)

// The legacy ABI requires each object to begin with a pointer to a
// statically-initialised table of function pointers; the owning
// object is recovered by a cast of the vtable call's self argument.
// Reproducing that byte layout, rather than modeling it with Go's
// native polymorphism, is deliberate: callers marshal these objects
// as if across the original binary interface. D3DDeviceVtbl and its
// siblings below are that table; DeviceObject and its siblings are
// the wrapper structs whose first field is the vtable pointer. Every
// function in a vtable takes the wrapper as its first (self)
// argument and forwards to the corresponding Go method, which holds
// the actual translation-engine logic.

// D3DDeviceVtbl is the device interface's function-pointer table:
// the three reference-counting methods, then device operations in
// their legacy ABI order.
type D3DDeviceVtbl struct {
	QueryInterface func(self *DeviceObject, iid uint32) error
	AddRef         func(self *DeviceObject) uint32
	Release        func(self *DeviceObject) uint32

	BeginScene func(self *DeviceObject) error
	EndScene   func(self *DeviceObject) error
	Clear      func(self *DeviceObject, flags uint32, color uint32, z float32, stencil uint8) error
	Present    func(self *DeviceObject) error

	SetRenderState func(self *DeviceObject, id state.RenderStateID, value uint32)
	GetRenderState func(self *DeviceObject, id state.RenderStateID) uint32

	SetTextureStageState func(self *DeviceObject, stage int, id state.TexStageID, value uint32)
	GetTextureStageState func(self *DeviceObject, stage int, id state.TexStageID) uint32

	SetTexture func(self *DeviceObject, stage int, tex *TextureObject) error

	SetFVF func(self *DeviceObject, fvf uint32)
	GetFVF func(self *DeviceObject) uint32

	SetStreamSource func(self *DeviceObject, stream int, vb *VertexBufferObject, stride int) error
	SetIndices      func(self *DeviceObject, ib *IndexBufferObject, baseVertexIndex int) error

	DrawPrimitive          func(self *DeviceObject, p Primitive, startVertex, primCount int) error
	DrawIndexedPrimitive   func(self *DeviceObject, p Primitive, baseVertexIndex, minVertex, numVertices, startIndex, primCount int) error
	DrawPrimitiveUP        func(self *DeviceObject, p Primitive, primCount int, vertexData []byte, stride int) error
	DrawIndexedPrimitiveUP func(self *DeviceObject, p Primitive, primCount int, vertexData []byte, stride int, indexData []byte, indexFormat backend.IndexFormat) error

	SetVertexShader func(self *DeviceObject, handle uintptr) error
	SetPixelShader  func(self *DeviceObject, handle uintptr) error

	Reset           func(self *DeviceObject, width, height int) error
	GetBackBuffer   func(self *DeviceObject) backend.RenderTargetView
	GetRenderTarget func(self *DeviceObject) backend.RenderTargetView
	SetRenderTarget func(self *DeviceObject, rtv backend.RenderTargetView, dsv backend.DepthStencilView) error

	GetDeviceCaps func(self *DeviceObject) Caps
}

var deviceVtbl = &D3DDeviceVtbl{
	QueryInterface: func(self *DeviceObject, iid uint32) error { return errNoInterface },
	AddRef:         func(self *DeviceObject) uint32 { return uint32(self.dev.AddRef()) },
	Release:        func(self *DeviceObject) uint32 { return uint32(self.dev.Release()) },

	BeginScene: func(self *DeviceObject) error { return self.dev.BeginScene() },
	EndScene:   func(self *DeviceObject) error { return self.dev.EndScene() },
	Clear: func(self *DeviceObject, flags uint32, color uint32, z float32, stencil uint8) error {
		return self.dev.Clear(flags, color, z, stencil)
	},
	Present: func(self *DeviceObject) error { return self.dev.Present() },

	SetRenderState: func(self *DeviceObject, id state.RenderStateID, value uint32) {
		self.dev.SetRenderState(id, value)
	},
	GetRenderState: func(self *DeviceObject, id state.RenderStateID) uint32 {
		return self.dev.GetRenderState(id)
	},

	SetTextureStageState: func(self *DeviceObject, stage int, id state.TexStageID, value uint32) {
		self.dev.SetTextureStageState(stage, id, value)
	},
	GetTextureStageState: func(self *DeviceObject, stage int, id state.TexStageID) uint32 {
		return self.dev.GetTextureStageState(stage, id)
	},

	SetTexture: func(self *DeviceObject, stage int, tex *TextureObject) error {
		if tex == nil {
			return self.dev.SetTexture(stage, nil)
		}
		return self.dev.SetTexture(stage, tex.tex)
	},

	SetFVF: func(self *DeviceObject, fvf uint32) { self.dev.SetFVF(fvf) },
	GetFVF: func(self *DeviceObject) uint32 { return self.dev.GetFVF() },

	SetStreamSource: func(self *DeviceObject, stream int, vb *VertexBufferObject, stride int) error {
		if vb == nil {
			return self.dev.SetStreamSource(stream, nil, stride)
		}
		return self.dev.SetStreamSource(stream, vb.vb, stride)
	},
	SetIndices: func(self *DeviceObject, ib *IndexBufferObject, baseVertexIndex int) error {
		if ib == nil {
			return self.dev.SetIndices(nil, baseVertexIndex)
		}
		return self.dev.SetIndices(ib.ib, baseVertexIndex)
	},

	DrawPrimitive: func(self *DeviceObject, p Primitive, startVertex, primCount int) error {
		return self.dev.DrawPrimitive(p, startVertex, primCount)
	},
	DrawIndexedPrimitive: func(self *DeviceObject, p Primitive, baseVertexIndex, minVertex, numVertices, startIndex, primCount int) error {
		return self.dev.DrawIndexedPrimitive(p, baseVertexIndex, minVertex, numVertices, startIndex, primCount)
	},
	DrawPrimitiveUP: func(self *DeviceObject, p Primitive, primCount int, vertexData []byte, stride int) error {
		return self.dev.DrawPrimitiveUP(p, primCount, vertexData, stride)
	},
	DrawIndexedPrimitiveUP: func(self *DeviceObject, p Primitive, primCount int, vertexData []byte, stride int, indexData []byte, indexFormat backend.IndexFormat) error {
		return self.dev.DrawIndexedPrimitiveUP(p, primCount, vertexData, stride, indexData, indexFormat)
	},

	SetVertexShader: func(self *DeviceObject, handle uintptr) error { return self.dev.SetVertexShader(handle) },
	SetPixelShader:  func(self *DeviceObject, handle uintptr) error { return self.dev.SetPixelShader(handle) },

	Reset: func(self *DeviceObject, width, height int) error { return self.dev.Reset(width, height) },
	GetBackBuffer:   func(self *DeviceObject) backend.RenderTargetView { return self.dev.GetBackBuffer() },
	GetRenderTarget: func(self *DeviceObject) backend.RenderTargetView { return self.dev.GetRenderTarget() },
	SetRenderTarget: func(self *DeviceObject, rtv backend.RenderTargetView, dsv backend.DepthStencilView) error {
		return self.dev.SetRenderTarget(rtv, dsv)
	},

	GetDeviceCaps: func(self *DeviceObject) Caps { return self.dev.GetDeviceCaps() },
}

// DeviceObject is the ABI-facing device object: its first field is
// the vtable pointer, matching the required byte layout.
type DeviceObject struct {
	vtbl *D3DDeviceVtbl
	dev  *Device
}

// NewDeviceObject wraps dev as a vtable-bearing ABI object.
func NewDeviceObject(dev *Device) *DeviceObject {
	return &DeviceObject{vtbl: deviceVtbl, dev: dev}
}

// Vtbl returns o's function-pointer table, as the ABI adapter would
// dereference it from the object's first field.
func (o *DeviceObject) Vtbl() *D3DDeviceVtbl { return o.vtbl }

// D3DVertexBufferVtbl is the vertex-buffer interface's function table:
// AddRef and Release, then Lock/Unlock. Unlike D3DDeviceVtbl, it has
// no QueryInterface entry, and neither do the index-buffer and texture
// tables below.
type D3DVertexBufferVtbl struct {
	AddRef  func(self *VertexBufferObject) uint32
	Release func(self *VertexBufferObject) uint32
	Lock    func(self *VertexBufferObject, offsetToLock, sizeToLock int) ([]byte, error)
	Unlock  func(self *VertexBufferObject) error
}

var vertexBufferVtbl = &D3DVertexBufferVtbl{
	AddRef:  func(self *VertexBufferObject) uint32 { return uint32(self.vb.AddRef()) },
	Release: func(self *VertexBufferObject) uint32 { return uint32(self.vb.Release()) },
	Lock: func(self *VertexBufferObject, offsetToLock, sizeToLock int) ([]byte, error) {
		return self.vb.Lock(offsetToLock, sizeToLock)
	},
	Unlock: func(self *VertexBufferObject) error { return self.vb.Unlock() },
}

// VertexBufferObject is the ABI-facing vertex buffer object.
type VertexBufferObject struct {
	vtbl *D3DVertexBufferVtbl
	vb   *resource.VertexBuffer
}

// NewVertexBufferObject wraps vb as a vtable-bearing ABI object.
func NewVertexBufferObject(vb *resource.VertexBuffer) *VertexBufferObject {
	return &VertexBufferObject{vtbl: vertexBufferVtbl, vb: vb}
}

func (o *VertexBufferObject) Vtbl() *D3DVertexBufferVtbl { return o.vtbl }

// D3DIndexBufferVtbl is the index-buffer interface's function table.
type D3DIndexBufferVtbl struct {
	AddRef  func(self *IndexBufferObject) uint32
	Release func(self *IndexBufferObject) uint32
	Lock    func(self *IndexBufferObject, offsetToLock, sizeToLock int) ([]byte, error)
	Unlock  func(self *IndexBufferObject) error
}

var indexBufferVtbl = &D3DIndexBufferVtbl{
	AddRef:  func(self *IndexBufferObject) uint32 { return uint32(self.ib.AddRef()) },
	Release: func(self *IndexBufferObject) uint32 { return uint32(self.ib.Release()) },
	Lock: func(self *IndexBufferObject, offsetToLock, sizeToLock int) ([]byte, error) {
		return self.ib.Lock(offsetToLock, sizeToLock)
	},
	Unlock: func(self *IndexBufferObject) error { return self.ib.Unlock() },
}

// IndexBufferObject is the ABI-facing index buffer object.
type IndexBufferObject struct {
	vtbl *D3DIndexBufferVtbl
	ib   *resource.IndexBuffer
}

// NewIndexBufferObject wraps ib as a vtable-bearing ABI object.
func NewIndexBufferObject(ib *resource.IndexBuffer) *IndexBufferObject {
	return &IndexBufferObject{vtbl: indexBufferVtbl, ib: ib}
}

func (o *IndexBufferObject) Vtbl() *D3DIndexBufferVtbl { return o.vtbl }

// D3DTextureVtbl is the texture interface's function table.
type D3DTextureVtbl struct {
	AddRef  func(self *TextureObject) uint32
	Release func(self *TextureObject) uint32
	Lock    func(self *TextureObject, level int) ([]byte, int, error)
	Unlock  func(self *TextureObject) error
}

var textureVtbl = &D3DTextureVtbl{
	AddRef:  func(self *TextureObject) uint32 { return uint32(self.tex.AddRef()) },
	Release: func(self *TextureObject) uint32 { return uint32(self.tex.Release()) },
	Lock: func(self *TextureObject, level int) ([]byte, int, error) {
		return self.tex.Lock(level)
	},
	Unlock: func(self *TextureObject) error { return self.tex.Unlock() },
}

// TextureObject is the ABI-facing texture object.
type TextureObject struct {
	vtbl *D3DTextureVtbl
	tex  *resource.Texture2D
}

// NewTextureObject wraps tex as a vtable-bearing ABI object.
func NewTextureObject(tex *resource.Texture2D) *TextureObject {
	return &TextureObject{vtbl: textureVtbl, tex: tex}
}

func (o *TextureObject) Vtbl() *D3DTextureVtbl { return o.vtbl }
