package resource

import (
	"sync/atomic"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/format"
	"github.com/rgl/ffp8/xerr"
)

// Texture2D is a CPU-staged 2D texture resource. Only level 0's
// staging buffer is addressable through Lock/Unlock: the remaining
// mip levels, when present, are carried purely as backend storage.
// Runtime mip generation and locking levels above 0 are out of scope.
type Texture2D struct {
	backendTex backend.Texture2D
	pixelFmt   format.Pixel
	width      int
	height     int
	levels     int
	usage      Usage

	sysMem     []byte
	rowPitch   int
	locked     bool
	lockLevel  int
	dirty      bool
	refcount   int32
}

// NewTexture2D allocates a texture with the given source pixel format,
// dimensions and mip-level count, along with a level-0 staging region
// sized by format.RowPitch/HeightInBlocks, using DefaultAllocator.
func NewTexture2D(dev backend.Device, src format.Pixel, width, height, levels int, usage Usage) (*Texture2D, error) {
	return (&Manager{Alloc: DefaultAllocator}).NewTexture2D(dev, src, width, height, levels, usage)
}

// NewTexture2D is NewTexture2D using m's Allocator instead of
// DefaultAllocator.
func (m *Manager) NewTexture2D(dev backend.Device, src format.Pixel, width, height, levels int, usage Usage) (*Texture2D, error) {
	if width <= 0 || height <= 0 {
		return nil, xerr.InvalidArgument(prefix, "texture dimensions must be positive")
	}
	if levels <= 0 {
		levels = 1
	}
	backendFmt := format.ToBackendFormat(src)
	tex, err := dev.NewTexture2D(backendFmt, width, height, levels, backend.UsageShaderResource)
	if err != nil {
		return nil, xerr.BackendFailure(prefix, err)
	}
	pitch := int(format.RowPitch(src, width))
	rows := format.HeightInBlocks(src, height)
	sysMem, err := m.alloc().Alloc(pitch * rows)
	if err != nil {
		tex.Destroy()
		return nil, xerr.OutOfMemory(prefix, "texture staging region")
	}
	return &Texture2D{
		backendTex: tex,
		pixelFmt:   src,
		width:      width,
		height:     height,
		levels:     levels,
		usage:      usage,
		sysMem:     sysMem,
		rowPitch:   pitch,
		refcount:   1,
	}, nil
}

// Width returns the level-0 width in pixels.
func (t *Texture2D) Width() int { return t.width }

// Height returns the level-0 height in pixels.
func (t *Texture2D) Height() int { return t.height }

// Levels returns the number of mip levels the texture was created
// with.
func (t *Texture2D) Levels() int { return t.levels }

// PixelFormat returns the legacy source pixel format.
func (t *Texture2D) PixelFormat() format.Pixel { return t.pixelFmt }

// Usage returns the texture's usage hint.
func (t *Texture2D) Usage() Usage { return t.usage }

// Backend returns the backend.Texture2D backing t, for binding as a
// shader-resource view.
func (t *Texture2D) Backend() backend.Texture2D { return t.backendTex }

// Lock returns the level-0 staging region and its row pitch in bytes.
// Locking any level other than 0 is rejected: tiled/swizzled and
// higher-level mip editing paths beyond simple level-0 authoring are
// out of scope.
func (t *Texture2D) Lock(level int) (data []byte, rowPitch int, err error) {
	if level != 0 {
		return nil, 0, xerr.InvalidArgument(prefix, "only level 0 can be locked")
	}
	if t.locked {
		return nil, 0, xerr.InvalidArgument(prefix, "texture already locked")
	}
	t.locked = true
	t.lockLevel = level
	return t.sysMem, t.rowPitch, nil
}

// Unlock clears the locked flag and uploads the level-0 staging region
// to the backend.
func (t *Texture2D) Unlock() error {
	if !t.locked {
		return xerr.InvalidArgument(prefix, "texture not locked")
	}
	t.locked = false
	t.dirty = true
	slicePitch := t.rowPitch * format.HeightInBlocks(t.pixelFmt, t.height)
	if err := t.backendTex.UpdateSubresource(t.lockLevel, t.sysMem, t.rowPitch, slicePitch); err != nil {
		return xerr.BackendFailure(prefix, err)
	}
	t.dirty = false
	return nil
}

// AddRef atomically increments t's reference count.
func (t *Texture2D) AddRef() int32 { return atomic.AddInt32(&t.refcount, 1) }

// Release atomically decrements t's reference count, releasing the
// backend texture and staging memory at zero.
func (t *Texture2D) Release() int32 {
	n := atomic.AddInt32(&t.refcount, -1)
	if n == 0 {
		t.backendTex.Destroy()
		t.sysMem = nil
	}
	return n
}
