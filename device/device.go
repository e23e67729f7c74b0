// Package device implements the device façade: it presents the legacy
// vtable surface, routes each call to the state store, resource
// manager, state-object translator and pipeline emulator, and owns
// scene/present sequencing.
package device

import (
	"log"
	"sync/atomic"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/format"
	"github.com/rgl/ffp8/linear"
	"github.com/rgl/ffp8/pipeline"
	"github.com/rgl/ffp8/state"
	"github.com/rgl/ffp8/stateobj"
	"github.com/rgl/ffp8/xerr"
)

const prefix = "device"

// Device is the translation engine's top-level object: one per
// process. Its backend device/context, swap chain and default views
// are supplied by the caller; their construction is outside this
// module's scope.
type Device struct {
	backend backend.Device
	ctx     backend.Context

	rtv           backend.RenderTargetView
	dsv           backend.DepthStencilView
	width, height int

	store *state.Store
	trans *stateobj.Translator
	emu   *pipeline.Emulator

	cfg *Config

	sceneActive bool
	refcount    int32

	boundVB     *vbBinding
	boundIB     *ibBinding
	boundTex    [state.MaxStages]*texBinding
	vertexShader uintptr
	pixelShader  uintptr
}

type vbBinding struct {
	buf    backend.Buffer
	stride int
	addRef func() int32
	release func() int32
}

type ibBinding struct {
	buf     backend.Buffer
	format  backend.IndexFormat
	addRef  func() int32
	release func() int32
}

type texBinding struct {
	srv     backend.ShaderResourceView
	release func() int32
}

// New creates a Device driving backendDev, with rtv/dsv as the default
// render target and depth-stencil views and the given backbuffer
// dimensions. cfg may be nil for DefaultConfig().
func New(backendDev backend.Device, rtv backend.RenderTargetView, dsv backend.DepthStencilView, width, height int, cfg *Config) (*Device, error) {
	if backendDev == nil {
		return nil, xerr.InvalidArgument(prefix, "backend device is nil")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	format.Quiet = cfg.Quiet
	emu, err := pipeline.NewEmulatorWithLayoutCacheCapacity(backendDev, cfg.LayoutCacheCapacity)
	if err != nil {
		return nil, err
	}
	ctx := backendDev.ImmediateContext()
	store := state.New(ctx)
	d := &Device{
		backend:  backendDev,
		ctx:      ctx,
		rtv:      rtv,
		dsv:      dsv,
		width:    width,
		height:   height,
		store:    store,
		trans:    stateobj.New(backendDev),
		emu:      emu,
		cfg:      cfg,
		refcount: 1,
	}
	d.store.SetViewport(state.Viewport{X: 0, Y: 0, Width: width, Height: height, MinZ: 0, MaxZ: 1})
	return d, nil
}

// AddRef atomically increments d's reference count.
func (d *Device) AddRef() int32 { return atomic.AddInt32(&d.refcount, 1) }

// Release atomically decrements d's reference count.
func (d *Device) Release() int32 { return atomic.AddInt32(&d.refcount, -1) }

// BeginScene sets the scene-in-progress flag. Drawing outside a scene
// is permitted: this platform is lenient about scene bracketing.
func (d *Device) BeginScene() error {
	d.sceneActive = true
	return nil
}

// EndScene clears the scene-in-progress flag.
func (d *Device) EndScene() error {
	d.sceneActive = false
	return nil
}

// Clear flags.
const (
	ClearTarget  uint32 = 1 << 0
	ClearZBuffer uint32 = 1 << 1
	ClearStencil uint32 = 1 << 2
)

// Clear clears the default render target and/or depth-stencil view
// per flags. It takes no clear rectangles: every clear covers the
// whole target.
func (d *Device) Clear(flags uint32, argbColor uint32, z float32, stencil uint8) error {
	if flags&ClearTarget != 0 {
		rgba := unpackARGBClear(argbColor)
		d.ctx.ClearRenderTargetView(d.rtv, rgba)
	}
	clearZ := flags&ClearZBuffer != 0
	clearStencil := flags&ClearStencil != 0
	if clearZ || clearStencil {
		d.ctx.ClearDepthStencilView(d.dsv, clearZ, clearStencil, z, stencil)
	}
	return nil
}

func unpackARGBClear(argb uint32) [4]float32 {
	a := float32((argb>>24)&0xFF) / 255
	r := float32((argb>>16)&0xFF) / 255
	g := float32((argb>>8)&0xFF) / 255
	b := float32(argb&0xFF) / 255
	return [4]float32{r, g, b, a}
}

// Present presents the backend's default swap chain at sync interval
// 1.
func (d *Device) Present() error {
	if err := d.ctx.Present(1); err != nil {
		return xerr.BackendFailure(prefix, err)
	}
	return nil
}

// SetRenderState/GetRenderState forward to the state store.
func (d *Device) SetRenderState(id state.RenderStateID, value uint32) { d.store.Render.Set(id, value) }
func (d *Device) GetRenderState(id state.RenderStateID) uint32        { return d.store.Render.Get(id) }

// SetTextureStageState/GetTextureStageState forward to the state store.
func (d *Device) SetTextureStageState(stage int, id state.TexStageID, value uint32) {
	d.store.TexStage.Set(stage, id, value)
}
func (d *Device) GetTextureStageState(stage int, id state.TexStageID) uint32 {
	return d.store.TexStage.Get(stage, id)
}

// SetTransform/GetTransform forward to the state store.
func (d *Device) SetTransform(id state.TransformID, m *linear.M4) { d.store.Xform.Set(id, m) }
func (d *Device) GetTransform(id state.TransformID) linear.M4     { return d.store.Xform.Get(id) }

// SetViewport/GetViewport forward to the state store, which applies
// SetViewport eagerly.
func (d *Device) SetViewport(vp state.Viewport) { d.store.SetViewport(vp) }
func (d *Device) GetViewport() state.Viewport   { return d.store.GetViewport() }

// SetMaterial/GetMaterial forward to the state store.
func (d *Device) SetMaterial(m state.Material) { d.store.SetMaterial(m) }
func (d *Device) GetMaterial() state.Material  { return d.store.GetMaterial() }

// SetLight/GetLight/LightEnable forward to the state store.
func (d *Device) SetLight(i int, l state.Light) { d.store.SetLight(i, l) }
func (d *Device) GetLight(i int) (state.Light, bool) { return d.store.GetLight(i) }
func (d *Device) LightEnable(i int, enable bool)     { d.store.LightEnable(i, enable) }

// SetFVF/GetFVF forward to the state store's current vertex-format
// flags.
func (d *Device) SetFVF(fvf uint32) { d.store.SetFVF(fvf) }
func (d *Device) GetFVF() uint32    { return d.store.FVF() }

// SetVertexShader/SetPixelShader store an opaque handle; the emulator
// always uses the fixed-function static shaders regardless of it.
func (d *Device) SetVertexShader(handle uintptr) error { d.vertexShader = handle; return nil }
func (d *Device) SetPixelShader(handle uintptr) error  { d.pixelShader = handle; return nil }
func (d *Device) GetVertexShader() uintptr             { return d.vertexShader }
func (d *Device) GetPixelShader() uintptr              { return d.pixelShader }

// Reset is accepted to satisfy the ABI; only SetViewport and the
// default RTV/DSV are honoured by this emulator (see DESIGN.md for
// the Reset/MRT scoping decision).
func (d *Device) Reset(width, height int) error {
	d.width, d.height = width, height
	d.store.SetViewport(state.Viewport{X: 0, Y: 0, Width: width, Height: height, MinZ: 0, MaxZ: 1})
	return nil
}

// GetBackBuffer / GetRenderTarget return the default RTV; this
// emulator has no additional render targets.
func (d *Device) GetBackBuffer() backend.RenderTargetView { return d.rtv }
func (d *Device) GetRenderTarget() backend.RenderTargetView { return d.rtv }

// CreateRenderTarget / CreateDepthStencilSurface are accepted to
// satisfy the ABI but return the existing default view: this
// emulator's scope excludes multisample/MRT outputs.
func (d *Device) CreateRenderTarget() (backend.RenderTargetView, error) { return d.rtv, nil }
func (d *Device) CreateDepthStencilSurface() (backend.DepthStencilView, error) { return d.dsv, nil }

// SetRenderTarget is accepted but only the default view is actually
// bound.
func (d *Device) SetRenderTarget(rtv backend.RenderTargetView, dsv backend.DepthStencilView) error {
	if !d.cfg.Quiet {
		log.Printf("[!] device: SetRenderTarget is a no-op stub; the default view remains bound")
	}
	return nil
}
