package format_test

import (
	"testing"

	"github.com/rgl/ffp8/backend"
	"github.com/rgl/ffp8/backend/noop"
	"github.com/rgl/ffp8/format"
	"github.com/rgl/ffp8/resource"
)

func TestToBackendFormat(t *testing.T) {
	cases := []struct {
		src  format.Pixel
		want backend.Format
	}{
		{format.A8R8G8B8, backend.BGRA8Unorm},
		{format.X8R8G8B8, backend.BGRX8Unorm},
		{format.R5G6B5, backend.B5G6R5Unorm},
		{format.A1R5G5B5, backend.B5G5R5A1Unorm},
		{format.DXT1, backend.BC1Unorm},
		{format.DXT3, backend.BC2Unorm},
		{format.DXT5, backend.BC3Unorm},
		{format.A8, backend.A8Unorm},
		{format.L8, backend.R8Unorm},
		{format.D24S8, backend.D24UnormS8UInt},
		{format.D16, backend.D16Unorm},
		{format.Index16, backend.R16UInt},
		{format.Index32, backend.R32UInt},
	}
	for _, c := range cases {
		if got := format.ToBackendFormat(c.src); got != c.want {
			t.Errorf("ToBackendFormat(%v) = %v, want %v", c.src, got, c.want)
		}
	}
}

func TestToBackendFormatUnknownNeverFails(t *testing.T) {
	format.Quiet = true
	defer func() { format.Quiet = false }()
	if got := format.ToBackendFormat(format.Pixel(999)); got != backend.BGRA8Unorm {
		t.Errorf("unknown format = %v, want BGRA8Unorm fallback", got)
	}
}

func TestBitsPerPixel(t *testing.T) {
	cases := map[format.Pixel]uint{
		format.A8R8G8B8: 32,
		format.R5G6B5:   16,
		format.A1R5G5B5: 16,
		format.A8:       8,
		format.L8:       8,
		format.DXT1:     4,
		format.DXT3:     8,
		format.DXT5:     8,
		format.D24S8:    32,
		format.D16:      16,
		format.Index16:  16,
		format.Index32:  32,
	}
	for f, want := range cases {
		if got := format.BitsPerPixel(f); got != want {
			t.Errorf("BitsPerPixel(%v) = %d, want %d", f, got, want)
		}
	}
}

func TestIsCompressed(t *testing.T) {
	for _, f := range []format.Pixel{format.DXT1, format.DXT3, format.DXT5} {
		if !format.IsCompressed(f) {
			t.Errorf("IsCompressed(%v) = false, want true", f)
		}
	}
	for _, f := range []format.Pixel{format.A8R8G8B8, format.R5G6B5, format.A8, format.D16} {
		if format.IsCompressed(f) {
			t.Errorf("IsCompressed(%v) = true, want false", f)
		}
	}
}

func TestRowPitch(t *testing.T) {
	// Uncompressed: (width * bpp) / 8.
	if got, want := format.RowPitch(format.A8R8G8B8, 16), uint(64); got != want {
		t.Errorf("RowPitch(A8R8G8B8, 16) = %d, want %d", got, want)
	}
	if got, want := format.RowPitch(format.R5G6B5, 16), uint(32); got != want {
		t.Errorf("RowPitch(R5G6B5, 16) = %d, want %d", got, want)
	}
	// Compressed: ceil(width/4) * block_bytes.
	if got, want := format.RowPitch(format.DXT1, 15), uint(4*8); got != want {
		t.Errorf("RowPitch(DXT1, 15) = %d, want %d", got, want)
	}
	if got, want := format.RowPitch(format.DXT5, 16), uint(4*16); got != want {
		t.Errorf("RowPitch(DXT5, 16) = %d, want %d", got, want)
	}
}

func TestHeightInBlocks(t *testing.T) {
	if got, want := format.HeightInBlocks(format.DXT1, 15), 4; got != want {
		t.Errorf("HeightInBlocks(DXT1, 15) = %d, want %d", got, want)
	}
	if got, want := format.HeightInBlocks(format.A8R8G8B8, 15), 15; got != want {
		t.Errorf("HeightInBlocks(A8R8G8B8, 15) = %d, want %d", got, want)
	}
}

// RowPitch(F,w) x HeightInBlocks(F,h) must equal the size the resource
// manager stages for a w x h image, for every supported format.
func TestRowPitchTimesHeightBlocksMatchesStagingSize(t *testing.T) {
	dev := noop.New()
	for _, f := range []format.Pixel{format.A8R8G8B8, format.R5G6B5, format.DXT1, format.DXT5} {
		w, h := 18, 10
		size := int(format.RowPitch(f, w)) * format.HeightInBlocks(f, h)
		if size <= 0 {
			t.Errorf("%v: non-positive staging size %d", f, size)
		}
		tex, err := resource.NewTexture2D(dev, f, w, h, 1, resource.UsageDefault)
		if err != nil {
			t.Fatalf("%v: NewTexture2D: %v", f, err)
		}
		data, _, err := tex.Lock(0)
		if err != nil {
			t.Fatalf("%v: Lock: %v", f, err)
		}
		if len(data) != size {
			t.Errorf("%v: staged %d bytes, want %d", f, len(data), size)
		}
		if err := tex.Unlock(); err != nil {
			t.Fatalf("%v: Unlock: %v", f, err)
		}
		if got := len(tex.Backend().(*noop.Texture2D).Level(0)); got != size {
			t.Errorf("%v: uploaded %d bytes, want %d", f, got, size)
		}
	}
}
