package pipeline_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/backend/noop"
	"github.com/rgl/ffp8/pipeline"
	"github.com/rgl/ffp8/state"
)

func TestStrideMatchesElementTable(t *testing.T) {
	cases := []struct {
		fvf  uint32
		want int
	}{
		{pipeline.FVFXYZRHW | pipeline.FVFDiffuse, 20},
		{pipeline.FVFXYZ | pipeline.FVFNormal, 24},
		{pipeline.FVFXYZRHW | 0x100, 24}, // XYZRHW(16) + 1 texcoord(8)
		{pipeline.FVFXYZ | pipeline.FVFDiffuse | pipeline.FVFSpecular, 20},
	}
	for _, c := range cases {
		if got := pipeline.Stride(c.fvf); got != c.want {
			t.Errorf("Stride(%#x) = %d, want %d", c.fvf, got, c.want)
		}
	}
}

func TestTexCoordCount(t *testing.T) {
	if got := pipeline.TexCoordCount(0x300); got != 3 {
		t.Errorf("TexCoordCount(0x300) = %d, want 3", got)
	}
	if got := pipeline.TexCoordCount(0); got != 0 {
		t.Errorf("TexCoordCount(0) = %d, want 0", got)
	}
}

func TestPrepareDrawCachesLayoutAcrossCalls(t *testing.T) {
	dev := noop.New()
	e, err := pipeline.NewEmulator(dev)
	if err != nil {
		t.Fatalf("NewEmulator: %v", err)
	}
	s := state.New(nil)
	fvf := pipeline.FVFXYZRHW | pipeline.FVFDiffuse
	ctx := dev.ImmediateContext()

	if err := e.PrepareDraw(dev, ctx, s, fvf, 640, 480); err != nil {
		t.Fatalf("first PrepareDraw: %v", err)
	}
	if got := e.LayoutCacheLen(); got != 1 {
		t.Fatalf("cache len after first draw = %d, want 1", got)
	}
	if err := e.PrepareDraw(dev, ctx, s, fvf, 640, 480); err != nil {
		t.Fatalf("second PrepareDraw: %v", err)
	}
	if got := e.LayoutCacheLen(); got != 1 {
		t.Fatalf("cache len after repeated fvf = %d, want 1", got)
	}
}

func TestPrepareDrawRejectsFormatWithNoPosition(t *testing.T) {
	dev := noop.New()
	e, _ := pipeline.NewEmulator(dev)
	s := state.New(nil)
	ctx := dev.ImmediateContext()
	if err := e.PrepareDraw(dev, ctx, s, pipeline.FVFDiffuse, 640, 480); err == nil {
		t.Fatalf("PrepareDraw with no position element: err = nil, want error")
	}
}

func TestPrepareDrawBindsIdentityWVPForPreTransformed(t *testing.T) {
	dev := noop.New()
	e, _ := pipeline.NewEmulator(dev)
	s := state.New(nil)
	ctx := dev.ImmediateContext()
	fvf := pipeline.FVFXYZRHW | pipeline.FVFDiffuse
	if err := e.PrepareDraw(dev, ctx, s, fvf, 640, 480); err != nil {
		t.Fatalf("PrepareDraw: %v", err)
	}
	nctx := dev.Context()
	if nctx.VSConstants[0] == nil || nctx.PSConstants[0] == nil {
		t.Fatalf("constant buffers not bound")
	}
	buf := nctx.VSConstants[0].(*noop.Buffer).Bytes()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var want float32
			if row == col {
				want = 1
			}
			got := math.Float32frombits(binary.LittleEndian.Uint32(buf[(row*4+col)*4:]))
			if got != want {
				t.Errorf("wvp[%d][%d] = %v, want %v", row, col, got, want)
			}
		}
	}
}

func TestPrepareDrawSetsSampleFlagWhenStage0Active(t *testing.T) {
	dev := noop.New()
	e, _ := pipeline.NewEmulator(dev)
	s := state.New(nil)
	s.TexStage.Set(0, state.ColorOp, state.TexOpModulate)
	ctx := dev.ImmediateContext()
	fvf := pipeline.FVFXYZRHW | pipeline.FVFDiffuse | 0x100
	if err := e.PrepareDraw(dev, ctx, s, fvf, 640, 480); err != nil {
		t.Fatalf("PrepareDraw: %v", err)
	}
	buf := dev.Context().PSConstants[0].(*noop.Buffer).Bytes()
	flags := buf[20] // textureFactor(16) + alphaRef(4) = offset 20
	if flags&1 == 0 {
		t.Errorf("PS flags byte = %#x, want bit0 set", flags)
	}
}

func TestPrepareDrawSetsTexCoord0FlagWhenFVFHasTexCoords(t *testing.T) {
	dev := noop.New()
	e, _ := pipeline.NewEmulator(dev)
	s := state.New(nil)
	ctx := dev.ImmediateContext()
	fvf := pipeline.FVFXYZRHW | pipeline.FVFDiffuse | 0x100 // 1 texcoord set
	if err := e.PrepareDraw(dev, ctx, s, fvf, 640, 480); err != nil {
		t.Fatalf("PrepareDraw: %v", err)
	}
	buf := dev.Context().VSConstants[0].(*noop.Buffer).Bytes()
	flags := buf[72] // wvp(64) + screenSize(8) = offset 72
	if flags&(1<<2) == 0 {
		t.Errorf("VS flags byte = %#x, want bit2 set", flags)
	}

	fvfNoTex := pipeline.FVFXYZRHW | pipeline.FVFDiffuse
	if err := e.PrepareDraw(dev, ctx, s, fvfNoTex, 640, 480); err != nil {
		t.Fatalf("PrepareDraw: %v", err)
	}
	buf = dev.Context().VSConstants[0].(*noop.Buffer).Bytes()
	flags = buf[72]
	if flags&(1<<2) != 0 {
		t.Errorf("VS flags byte = %#x, want bit2 clear", flags)
	}
}

func TestLayoutCacheEvictsBeyondCapacity(t *testing.T) {
	dev := noop.New()
	e, _ := pipeline.NewEmulator(dev)
	s := state.New(nil)
	ctx := dev.ImmediateContext()
	for i := 0; i < 20; i++ {
		fvf := pipeline.FVFXYZRHW | uint32(i)<<16
		if err := e.PrepareDraw(dev, ctx, s, fvf, 640, 480); err != nil {
			t.Fatalf("PrepareDraw(%d): %v", i, err)
		}
	}
	if got := e.LayoutCacheLen(); got > 16 {
		t.Fatalf("cache len = %d, want <= 16", got)
	}
}

func TestLayoutCacheEvictionIsFIFONotLRU(t *testing.T) {
	dev := noop.New()
	lc := pipeline.NewLayoutCacheWithCapacity(2)
	vs, err := dev.NewShaderCode(backend.StageVertex, "vs")
	if err != nil {
		t.Fatalf("NewShaderCode(vs): %v", err)
	}
	ps, err := dev.NewShaderCode(backend.StagePixel, "ps")
	if err != nil {
		t.Fatalf("NewShaderCode(ps): %v", err)
	}

	fvfA := pipeline.FVFXYZRHW
	fvfB := pipeline.FVFXYZRHW | 0x100
	fvfC := pipeline.FVFXYZRHW | 0x200

	layoutA1, _, err := lc.Get(dev, vs, ps, fvfA)
	if err != nil {
		t.Fatalf("Get(A): %v", err)
	}
	layoutB1, _, err := lc.Get(dev, vs, ps, fvfB)
	if err != nil {
		t.Fatalf("Get(B): %v", err)
	}
	// Re-fetching A is a cache hit; under true FIFO it must not promote
	// A, so inserting a third distinct key still evicts A, not B.
	layoutA2, _, err := lc.Get(dev, vs, ps, fvfA)
	if err != nil {
		t.Fatalf("Get(A) again: %v", err)
	}
	if layoutA2 != layoutA1 {
		t.Fatalf("Get(A) again returned a different layout: cache hit did not reuse the entry")
	}
	if _, _, err := lc.Get(dev, vs, ps, fvfC); err != nil {
		t.Fatalf("Get(C): %v", err)
	}
	if got := lc.Len(); got != 2 {
		t.Fatalf("cache len = %d, want 2", got)
	}

	layoutB2, _, err := lc.Get(dev, vs, ps, fvfB)
	if err != nil {
		t.Fatalf("Get(B) again: %v", err)
	}
	if layoutB2 != layoutB1 {
		t.Fatalf("B was evicted despite being newer than A: eviction is not FIFO")
	}
	layoutA3, _, err := lc.Get(dev, vs, ps, fvfA)
	if err != nil {
		t.Fatalf("Get(A) a third time: %v", err)
	}
	if layoutA3 == layoutA1 {
		t.Fatalf("A survived eviction: a cache hit promoted it (LRU behavior), breaking FIFO order")
	}
}
