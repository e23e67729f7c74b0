// Package format implements the legacy pixel-format tables: total,
// never-failing mappings from legacy source formats to backend
// formats, plus bits-per-pixel, compression and row-pitch queries used
// by the resource manager.
package format

import (
	"log"

	"github.com/rgl/ffp8/backend"
)

// Pixel is a legacy pixel format identifier.
type Pixel int

// Legacy pixel formats.
const (
	A8R8G8B8 Pixel = iota
	X8R8G8B8
	LinA8R8G8B8
	LinX8R8G8B8
	R5G6B5
	LinR5G6B5
	A1R5G5B5
	LinA1R5G5B5
	DXT1
	DXT3
	DXT5
	A8
	L8
	D24S8
	D16
	Index16
	Index32
)

// Quiet, when true, suppresses the diagnostic log line emitted by
// ToBackendFormat for unrecognised formats. device.New sets this from
// the Config passed to it, so a single knob governs every diagnostic
// this module emits.
var Quiet bool

// ToBackendFormat maps a legacy source format to a backend format. It
// never fails: unrecognised inputs map to a safe default and emit a
// diagnostic.
func ToBackendFormat(src Pixel) backend.Format {
	switch src {
	case A8R8G8B8, LinA8R8G8B8:
		return backend.BGRA8Unorm
	case X8R8G8B8, LinX8R8G8B8:
		return backend.BGRX8Unorm
	case R5G6B5, LinR5G6B5:
		return backend.B5G6R5Unorm
	case A1R5G5B5, LinA1R5G5B5:
		return backend.B5G5R5A1Unorm
	case DXT1:
		return backend.BC1Unorm
	case DXT3:
		return backend.BC2Unorm
	case DXT5:
		return backend.BC3Unorm
	case A8:
		return backend.A8Unorm
	case L8:
		return backend.R8Unorm
	case D24S8:
		return backend.D24UnormS8UInt
	case D16:
		return backend.D16Unorm
	case Index16:
		return backend.R16UInt
	case Index32:
		return backend.R32UInt
	default:
		if !Quiet {
			log.Printf("[!] format: unrecognised source format %d, defaulting to BGRA8Unorm", src)
		}
		return backend.BGRA8Unorm
	}
}

// BitsPerPixel returns the number of bits occupied by one pixel (for
// compressed formats, the per-pixel average over a 4x4 block: 4 for
// DXT1, 8 for DXT3/DXT5). Unrecognised formats report 32.
func BitsPerPixel(src Pixel) uint {
	switch src {
	case A8R8G8B8, X8R8G8B8, LinA8R8G8B8, LinX8R8G8B8, D24S8, Index32:
		return 32
	case R5G6B5, LinR5G6B5, A1R5G5B5, LinA1R5G5B5, D16, Index16:
		return 16
	case A8, L8:
		return 8
	case DXT1:
		return 4
	case DXT3, DXT5:
		return 8
	default:
		return 32
	}
}

// IsCompressed reports whether src is a block-compressed format.
func IsCompressed(src Pixel) bool {
	switch src {
	case DXT1, DXT3, DXT5:
		return true
	default:
		return false
	}
}

// blockBytes returns the number of bytes in one compressed block of
// src. It is only meaningful when IsCompressed(src) is true.
func blockBytes(src Pixel) uint {
	if src == DXT1 {
		return 8
	}
	return 16
}

// RowPitch returns the number of bytes in one row of src-formatted
// image data width pixels wide.
func RowPitch(src Pixel, width int) uint {
	if IsCompressed(src) {
		blocks := uint(width+3) / 4
		return blocks * blockBytes(src)
	}
	return uint(width) * BitsPerPixel(src) / 8
}

// HeightInBlocks returns the number of rows of RowPitch-sized data
// needed to cover height pixels: ceil(height/4) for compressed
// formats, height otherwise.
func HeightInBlocks(src Pixel, height int) int {
	if IsCompressed(src) {
		return (height + 3) / 4
	}
	return height
}
