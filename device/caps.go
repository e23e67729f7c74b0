package device

import "github.com/rgl/ffp8/state"

// Caps describes the fixed limits this emulator honors, in the
// D3D8/D3D9 GetDeviceCaps convention.
type Caps struct {
	MaxTextureStages      int
	MaxSimultaneousLights int
	MaxVertexBlendMatrices int // always 0: vertex blending is unsupported
	MaxAnisotropy         int
	MaxTextureWidth       int
	MaxTextureHeight      int
}

// GetDeviceCaps returns d's fixed capability set. It never changes
// over the Device's lifetime.
func (d *Device) GetDeviceCaps() Caps {
	return Caps{
		MaxTextureStages:       state.MaxStages,
		MaxSimultaneousLights:  state.MaxLights,
		MaxVertexBlendMatrices: 0,
		MaxAnisotropy:          16,
		MaxTextureWidth:        4096,
		MaxTextureHeight:       4096,
	}
}
