// Package resource implements creation, reference counting, and
// CPU-staged lock/unlock semantics for vertex buffers, index buffers
// and 2D textures. Staging memory is the observable memory model: a
// Lock hands out a window into sysMem, and Unlock uploads the whole
// staged region to the backend resource.
package resource

import (
	"sync/atomic"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/xerr"
)

const prefix = "resource"

// Allocator supplies the staging memory backing a resource's CPU-side
// copy. The default allocates with make and never fails; tests inject
// one that returns an error to exercise the out-of-memory path a real
// allocator can hit under pressure.
type Allocator interface {
	Alloc(size int) ([]byte, error)
}

type defaultAllocator struct{}

func (defaultAllocator) Alloc(size int) ([]byte, error) { return make([]byte, size), nil }

// DefaultAllocator is the Allocator every package-level constructor
// uses unless a Manager overrides it.
var DefaultAllocator Allocator = defaultAllocator{}

// Manager creates resources through an injectable Allocator, letting
// tests simulate allocation failure without a real backend that can
// run out of memory. A zero Manager behaves like the package-level
// constructors.
type Manager struct {
	Alloc Allocator
}

func (m *Manager) alloc() Allocator {
	if m.Alloc == nil {
		return DefaultAllocator
	}
	return m.Alloc
}

// Usage is a creation-time usage hint. It has no behavioral effect in
// this emulator beyond being recorded and returned, since every
// backend resource here is created with default usage.
type Usage int

// Usage hints.
const (
	UsageDefault Usage = iota
	UsageDynamic
	UsageWriteOnly
)

// VertexBuffer is a CPU-staged vertex buffer.
type VertexBuffer struct {
	backendBuf backend.Buffer
	size       int
	fvfHint    uint32
	usage      Usage
	sysMem     []byte
	locked     bool
	lockOffset int
	lockSize   int
	dirty      bool
	refcount   int32
}

// NewVertexBuffer allocates a zero-initialised staging region of
// length bytes and a same-sized backend buffer, using DefaultAllocator.
func NewVertexBuffer(dev backend.Device, length int, usage Usage, fvf uint32) (*VertexBuffer, error) {
	return (&Manager{Alloc: DefaultAllocator}).NewVertexBuffer(dev, length, usage, fvf)
}

// NewVertexBuffer is NewVertexBuffer using m's Allocator instead of
// DefaultAllocator.
func (m *Manager) NewVertexBuffer(dev backend.Device, length int, usage Usage, fvf uint32) (*VertexBuffer, error) {
	if length <= 0 {
		return nil, xerr.InvalidArgument(prefix, "vertex buffer length must be positive")
	}
	buf, err := dev.NewBuffer(int64(length), backend.UsageVertex)
	if err != nil {
		return nil, xerr.BackendFailure(prefix, err)
	}
	sysMem, err := m.alloc().Alloc(length)
	if err != nil {
		buf.Destroy()
		return nil, xerr.OutOfMemory(prefix, "vertex buffer staging region")
	}
	return &VertexBuffer{
		backendBuf: buf,
		size:       length,
		fvfHint:    fvf,
		usage:      usage,
		sysMem:     sysMem,
		refcount:   1,
	}, nil
}

// Size returns the buffer's length in bytes.
func (v *VertexBuffer) Size() int { return v.size }

// FVFHint returns the vertex-format flags the buffer was created
// with.
func (v *VertexBuffer) FVFHint() uint32 { return v.fvfHint }

// Usage returns the buffer's usage hint.
func (v *VertexBuffer) Usage() Usage { return v.usage }

// Backend returns the backend.Buffer backing v, for binding as a
// vertex-input source.
func (v *VertexBuffer) Backend() backend.Buffer { return v.backendBuf }

// Lock returns a window into the staging region. While locked, the
// backend buffer is not touched. offsetToLock/sizeToLock are recorded
// (a sizeToLock of 0 means "to the end") but only select the returned
// window: the whole buffer is considered dirty on Unlock regardless of
// the requested sub-range. Lock takes no flags.
func (v *VertexBuffer) Lock(offsetToLock, sizeToLock int) ([]byte, error) {
	if v.locked {
		return nil, xerr.InvalidArgument(prefix, "vertex buffer already locked")
	}
	if sizeToLock == 0 {
		sizeToLock = v.size - offsetToLock
	}
	if offsetToLock < 0 || sizeToLock < 0 || offsetToLock+sizeToLock > v.size {
		return nil, xerr.InvalidArgument(prefix, "lock range out of bounds")
	}
	v.locked = true
	v.lockOffset, v.lockSize = offsetToLock, sizeToLock
	return v.sysMem[offsetToLock : offsetToLock+sizeToLock], nil
}

// Unlock clears the locked flag, marks the buffer dirty, and uploads
// the full staging region to the backend.
func (v *VertexBuffer) Unlock() error {
	if !v.locked {
		return xerr.InvalidArgument(prefix, "vertex buffer not locked")
	}
	v.locked = false
	v.dirty = true
	if err := v.backendBuf.Update(v.sysMem, true); err != nil {
		return xerr.BackendFailure(prefix, err)
	}
	v.dirty = false
	return nil
}

// AddRef atomically increments v's reference count.
func (v *VertexBuffer) AddRef() int32 { return atomic.AddInt32(&v.refcount, 1) }

// Release atomically decrements v's reference count, releasing the
// backend buffer and staging memory at zero.
func (v *VertexBuffer) Release() int32 {
	n := atomic.AddInt32(&v.refcount, -1)
	if n == 0 {
		v.backendBuf.Destroy()
		v.sysMem = nil
	}
	return n
}

// IndexBuffer is a CPU-staged index buffer: same shape as VertexBuffer
// plus an index format.
type IndexBuffer struct {
	backendBuf  backend.Buffer
	size        int
	usage       Usage
	indexFormat backend.IndexFormat
	sysMem      []byte
	locked      bool
	lockOffset  int
	lockSize    int
	dirty       bool
	refcount    int32
}

// NewIndexBuffer allocates an index buffer of length bytes and the
// given index width, using DefaultAllocator.
func NewIndexBuffer(dev backend.Device, length int, usage Usage, format backend.IndexFormat) (*IndexBuffer, error) {
	return (&Manager{Alloc: DefaultAllocator}).NewIndexBuffer(dev, length, usage, format)
}

// NewIndexBuffer is NewIndexBuffer using m's Allocator instead of
// DefaultAllocator.
func (m *Manager) NewIndexBuffer(dev backend.Device, length int, usage Usage, format backend.IndexFormat) (*IndexBuffer, error) {
	if length <= 0 {
		return nil, xerr.InvalidArgument(prefix, "index buffer length must be positive")
	}
	if format != backend.Index16 && format != backend.Index32 {
		return nil, xerr.InvalidArgument(prefix, "invalid index format")
	}
	buf, err := dev.NewBuffer(int64(length), backend.UsageIndex)
	if err != nil {
		return nil, xerr.BackendFailure(prefix, err)
	}
	sysMem, err := m.alloc().Alloc(length)
	if err != nil {
		buf.Destroy()
		return nil, xerr.OutOfMemory(prefix, "index buffer staging region")
	}
	return &IndexBuffer{
		backendBuf:  buf,
		size:        length,
		usage:       usage,
		indexFormat: format,
		sysMem:      sysMem,
		refcount:    1,
	}, nil
}

// Size returns the buffer's length in bytes.
func (ib *IndexBuffer) Size() int { return ib.size }

// Format returns the index width (16 or 32 bit).
func (ib *IndexBuffer) Format() backend.IndexFormat { return ib.indexFormat }

// Backend returns the backend.Buffer backing ib.
func (ib *IndexBuffer) Backend() backend.Buffer { return ib.backendBuf }

// Lock is the index-buffer analogue of VertexBuffer.Lock.
func (ib *IndexBuffer) Lock(offsetToLock, sizeToLock int) ([]byte, error) {
	if ib.locked {
		return nil, xerr.InvalidArgument(prefix, "index buffer already locked")
	}
	if sizeToLock == 0 {
		sizeToLock = ib.size - offsetToLock
	}
	if offsetToLock < 0 || sizeToLock < 0 || offsetToLock+sizeToLock > ib.size {
		return nil, xerr.InvalidArgument(prefix, "lock range out of bounds")
	}
	ib.locked = true
	ib.lockOffset, ib.lockSize = offsetToLock, sizeToLock
	return ib.sysMem[offsetToLock : offsetToLock+sizeToLock], nil
}

// Unlock is the index-buffer analogue of VertexBuffer.Unlock.
func (ib *IndexBuffer) Unlock() error {
	if !ib.locked {
		return xerr.InvalidArgument(prefix, "index buffer not locked")
	}
	ib.locked = false
	ib.dirty = true
	if err := ib.backendBuf.Update(ib.sysMem, true); err != nil {
		return xerr.BackendFailure(prefix, err)
	}
	ib.dirty = false
	return nil
}

// AddRef atomically increments ib's reference count.
func (ib *IndexBuffer) AddRef() int32 { return atomic.AddInt32(&ib.refcount, 1) }

// Release atomically decrements ib's reference count, releasing the
// backend buffer and staging memory at zero.
func (ib *IndexBuffer) Release() int32 {
	n := atomic.AddInt32(&ib.refcount, -1)
	if n == 0 {
		ib.backendBuf.Destroy()
		ib.sysMem = nil
	}
	return n
}
