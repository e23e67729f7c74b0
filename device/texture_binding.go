package device

import (
	"github.com/rgl/ffp8/resource"
	"github.com/rgl/ffp8/state"
)

// SetTexture binds tex's shader-resource view at pixel-shader resource
// slot stage. If the stage's color-op was DISABLE (or unset), it is
// flipped to MODULATE so the pipeline emulator recognises the stage as
// active. A nil tex unbinds the slot and resets the stage's color-op
// to DISABLE. Binding AddRefs the texture; replacing a binding
// Releases the old one.
func (d *Device) SetTexture(stage int, tex *resource.Texture2D) error {
	if stage < 0 || stage >= state.MaxStages {
		return nil
	}
	if d.boundTex[stage] != nil {
		d.boundTex[stage].release()
	}
	if tex == nil {
		d.boundTex[stage] = nil
		d.ctx.SetPixelShaderResource(stage, nil)
		d.store.TexStage.Set(stage, state.ColorOp, state.TexOpDisable)
		return nil
	}
	tex.AddRef()
	d.boundTex[stage] = &texBinding{srv: tex.Backend().ShaderResourceView(), release: tex.Release}
	d.ctx.SetPixelShaderResource(stage, d.boundTex[stage].srv)

	op := d.store.TexStage.Get(stage, state.ColorOp)
	if op == state.TexOpDisable || op == 0 {
		d.store.TexStage.Set(stage, state.ColorOp, state.TexOpModulate)
	}
	if err := d.trans.BindSampler(stage, d.store, d.ctx); err != nil {
		return err
	}
	return nil
}
