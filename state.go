package surface

import (
	"github.com/gogpu/surface/internal/engine"
	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

// BlendMode selects how a source surface is combined with the destination
// during blits.
type BlendMode int

const (
	// BlendNone copies source pixels.
	BlendNone = BlendMode(engine.BlendNone)
	// BlendBlend composites the source over the destination using source
	// alpha.
	BlendBlend = BlendMode(engine.BlendBlend)
	// BlendAdd adds alpha-weighted source color to the destination.
	BlendAdd = BlendMode(engine.BlendAdd)
	// BlendMod multiplies destination color by source color.
	BlendMod = BlendMode(engine.BlendMod)
)

func (m BlendMode) String() string {
	switch m {
	case BlendNone:
		return "none"
	case BlendBlend:
		return "blend"
	case BlendAdd:
		return "add"
	case BlendMod:
		return "mod"
	default:
		return "unknown"
	}
}

// SetPalette installs p on a surface with an indexed format. The palette is
// shared, not copied.
func (r *Ref) SetPalette(p *pixels.Palette) error {
	return wrap("surface.SetPalette", engine.SetSurfacePalette(r.raw, p))
}

// EnableRLE turns on RLE acceleration. The surface must then be locked for
// direct pixel access.
func (r *Ref) EnableRLE() {
	must("surface.EnableRLE", engine.SetSurfaceRLE(r.raw, true))
	Logger().Debug("surface: rle enabled", "opaque", engine.OpaquePixels(r.raw))
}

// DisableRLE turns off RLE acceleration.
func (r *Ref) DisableRLE() {
	must("surface.DisableRLE", engine.SetSurfaceRLE(r.raw, false))
}

// SetColorKey sets or clears the color treated as transparent when the
// surface is a blit source. The color is mapped to the surface format.
func (r *Ref) SetColorKey(enable bool, c pixels.Color) error {
	key := c.ToU32(r.raw.Format())
	return wrap("surface.SetColorKey", engine.SetColorKey(r.raw, enable, key))
}

// ColorKey returns the color key. It fails with ErrNoColorKey when none
// is set.
func (r *Ref) ColorKey() (pixels.Color, error) {
	key, err := engine.GetColorKey(r.raw)
	if err != nil {
		return pixels.Color{}, wrap("surface.ColorKey", err)
	}
	return pixels.ColorFromU32(r.raw.Format(), key), nil
}

// SetColorMod sets the multipliers applied to source color during blits.
// The alpha of c is ignored.
func (r *Ref) SetColorMod(c pixels.Color) {
	must("surface.SetColorMod", engine.SetSurfaceColorMod(r.raw, c.R, c.G, c.B))
}

// ColorMod returns the color multipliers as an opaque color.
func (r *Ref) ColorMod() pixels.Color {
	cr, cg, cb, err := engine.GetSurfaceColorMod(r.raw)
	must("surface.ColorMod", err)
	return pixels.RGB(cr, cg, cb)
}

// SetAlphaMod sets the multiplier applied to source alpha during blits.
func (r *Ref) SetAlphaMod(alpha uint8) {
	must("surface.SetAlphaMod", engine.SetSurfaceAlphaMod(r.raw, alpha))
}

// AlphaMod returns the alpha multiplier.
func (r *Ref) AlphaMod() uint8 {
	a, err := engine.GetSurfaceAlphaMod(r.raw)
	must("surface.AlphaMod", err)
	return a
}

// SetBlendMode sets the blend mode used when the surface is a blit source.
// Unsupported modes fail with ErrUnsupportedBlendMode.
func (r *Ref) SetBlendMode(mode BlendMode) error {
	return wrap("surface.SetBlendMode", engine.SetSurfaceBlendMode(r.raw, engine.BlendMode(mode)))
}

// BlendMode returns the blend mode.
func (r *Ref) BlendMode() BlendMode {
	m, err := engine.GetSurfaceBlendMode(r.raw)
	must("surface.BlendMode", err)
	return BlendMode(m)
}

// SetClipRect restricts blits and fills into the surface to clip. A nil
// clip disables clipping. The result reports whether the effective clip
// rectangle has a non-zero area.
func (r *Ref) SetClipRect(clip *rect.Rect) bool {
	return engine.SetClipRect(r.raw, clip)
}

// ClipRect returns the effective clip rectangle, or nil when it is empty.
func (r *Ref) ClipRect() *rect.Rect {
	c := engine.GetClipRect(r.raw)
	if c.Empty() {
		return nil
	}
	return &c
}
