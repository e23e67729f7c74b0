package pipeline

import (
	"encoding/binary"
	"math"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/linear"
	"github.com/rgl/ffp8/state"
	"github.com/rgl/ffp8/xerr"
)

const prefix = "pipeline"

// vsConstantsSize is the byte size of the vertex constant buffer: a
// 4x4 matrix (64 bytes), a float2 screen size, a uint flags word, and
// 4 bytes of tail padding to a 16-byte multiple.
const vsConstantsSize = 80

// psConstantsSize is the byte size of the pixel constant buffer: a
// float4 TEXTUREFACTOR, a float alphaRef, a uint flags word, a uint
// alphaFunc, and 4 bytes of tail padding.
const psConstantsSize = 32

// Emulator compiles the static shaders once and, per draw, synthesizes
// the input layout and fills the constant buffers for the current
// device state.
type Emulator struct {
	vs      backend.ShaderCode
	ps      backend.ShaderCode
	layouts *LayoutCache

	vsConstants backend.Buffer
	psConstants backend.Buffer
}

// NewEmulator compiles the static vertex/pixel shaders on dev and
// allocates the two constant buffers, using the default layout-cache
// capacity.
func NewEmulator(dev backend.Device) (*Emulator, error) {
	return NewEmulatorWithLayoutCacheCapacity(dev, layoutCacheCapacity)
}

// NewEmulatorWithLayoutCacheCapacity is NewEmulator with an explicit
// input-layout cache capacity (device.Config.LayoutCacheCapacity).
func NewEmulatorWithLayoutCacheCapacity(dev backend.Device, capacity int) (*Emulator, error) {
	vs, err := dev.NewShaderCode(backend.StageVertex, vertexShaderSource)
	if err != nil {
		return nil, xerr.BackendFailure(prefix, err)
	}
	ps, err := dev.NewShaderCode(backend.StagePixel, pixelShaderSource)
	if err != nil {
		return nil, xerr.BackendFailure(prefix, err)
	}
	vsBuf, err := dev.NewBuffer(vsConstantsSize, backend.UsageConstant)
	if err != nil {
		return nil, xerr.BackendFailure(prefix, err)
	}
	psBuf, err := dev.NewBuffer(psConstantsSize, backend.UsageConstant)
	if err != nil {
		return nil, xerr.BackendFailure(prefix, err)
	}
	return &Emulator{
		vs:          vs,
		ps:          ps,
		layouts:     NewLayoutCacheWithCapacity(capacity),
		vsConstants: vsBuf,
		psConstants: psBuf,
	}, nil
}

// Vertex shader constant-buffer flags: bit 0 marks pre-transformed
// (XYZRHW) vertices, bit 1 marks a diffuse color element, bit 2 marks
// a bound texcoord0 element.
const (
	vsFlagPreTransformed uint32 = 1 << 0
	vsFlagHasDiffuse     uint32 = 1 << 1
	vsFlagHasTexCoord0   uint32 = 1 << 2
)

// Pixel shader constant-buffer flags.
const (
	psFlagSampleTexture0  uint32 = 1 << 0
	psFlagAlphaTestEnable uint32 = 1 << 1
)

func packVSConstants(wvp *linear.M4, screenW, screenH float32, flags uint32) []byte {
	buf := make([]byte, vsConstantsSize)
	off := 0
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(wvp[row][col]))
			off += 4
		}
	}
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(screenW))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(screenH))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], flags)
	return buf
}

func packPSConstants(textureFactor [4]float32, alphaRef float32, flags, alphaFunc uint32) []byte {
	buf := make([]byte, psConstantsSize)
	off := 0
	for _, c := range textureFactor {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(c))
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(alphaRef))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], flags)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], alphaFunc)
	return buf
}

// unpackARGB unpacks a packed ARGB DWORD (A in the high byte) into
// (R, G, B, A) float channels in [0,1].
func unpackARGB(argb uint32) [4]float32 {
	a := float32((argb>>24)&0xFF) / 255
	r := float32((argb>>16)&0xFF) / 255
	g := float32((argb>>8)&0xFF) / 255
	b := float32(argb&0xFF) / 255
	return [4]float32{r, g, b, a}
}

// PrepareDraw binds the static shaders, looks up/synthesizes the
// input layout for fvf, and fills and binds both constant buffers.
// screenW/screenH are the current backbuffer dimensions, used only by
// the pre-transformed vertex path.
func (e *Emulator) PrepareDraw(dev backend.Device, ctx backend.Context, s *state.Store, fvf uint32, screenW, screenH float32) error {
	layout, pso, err := e.layouts.Get(dev, e.vs, e.ps, fvf)
	if err != nil {
		return err
	}
	ctx.SetPipelineState(pso)
	ctx.SetInputLayout(layout)

	preTransformed := fvf&FVFXYZRHW != 0
	var vsFlags uint32
	var wvp linear.M4
	if preTransformed {
		wvp.I()
		vsFlags |= vsFlagPreTransformed
	} else {
		world := s.Xform.Get(state.World)
		view := s.Xform.Get(state.View)
		proj := s.Xform.Get(state.Projection)
		var wv linear.M4
		wv.Mul(&world, &view)
		wvp.Mul(&wv, &proj)
		wvp.Transpose(&wvp)
	}
	if HasDiffuse(fvf) {
		vsFlags |= vsFlagHasDiffuse
	}
	if TexCoordCount(fvf) > 0 {
		vsFlags |= vsFlagHasTexCoord0
	}

	vsData := packVSConstants(&wvp, screenW, screenH, vsFlags)
	if err := e.vsConstants.Update(vsData, true); err != nil {
		return xerr.BackendFailure(prefix, err)
	}

	textureFactor := unpackARGB(s.Render.Get(state.TextureFactor))
	alphaRef := float32(s.Render.Get(state.AlphaRef)) / 255
	stage0Active := s.TexStage.Get(0, state.ColorOp) != state.TexOpDisable && s.TexStage.Get(0, state.ColorOp) != 0
	var psFlags uint32
	if stage0Active {
		psFlags |= psFlagSampleTexture0
	}
	if s.Render.Get(state.AlphaTestEnable) != 0 {
		psFlags |= psFlagAlphaTestEnable
	}
	alphaFunc := s.Render.Get(state.AlphaFunc)

	psData := packPSConstants(textureFactor, alphaRef, psFlags, alphaFunc)
	if err := e.psConstants.Update(psData, true); err != nil {
		return xerr.BackendFailure(prefix, err)
	}

	ctx.SetVertexConstantBuffer(0, e.vsConstants)
	ctx.SetPixelConstantBuffer(0, e.psConstants)
	return nil
}

// VertexShader returns the compiled static vertex shader, for input
// layout construction outside the cache (e.g. device initialization).
func (e *Emulator) VertexShader() backend.ShaderCode { return e.vs }

// PixelShader returns the compiled static pixel shader.
func (e *Emulator) PixelShader() backend.ShaderCode { return e.ps }

// LayoutCacheLen reports how many input layouts are currently cached.
func (e *Emulator) LayoutCacheLen() int { return e.layouts.Len() }
