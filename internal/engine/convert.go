package engine

import (
	"fmt"

	"github.com/gogpu/surface/pixels"
)

// ConvertSurface copies src into a new surface of format pf. The color key
// is remapped to the new format; modulation, clip rectangle and RLE
// acceleration carry over. An indexed pf without a palette borrows a copy
// of the source palette, or gets a default one.
func ConvertSurface(src *Surface, pf *pixels.PixelFormat) (*Surface, error) {
	if err := valid(src); err != nil {
		return nil, err
	}
	if pf == nil || pf.Enum().IsFourCC() || pf.BitsPerPixel() < 8 || pf.Enum() == pixels.Unknown {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, pf)
	}
	if pf.IsIndexed() && pf.Palette() == nil {
		var (
			pal *pixels.Palette
			err error
		)
		if src.format.IsIndexed() && src.format.Palette() != nil {
			pal, err = pixels.PaletteFromColors(src.format.Palette().Colors())
		} else {
			pal, err = pixels.NewPalette(1 << pf.BitsPerPixel())
		}
		if err != nil {
			return nil, err
		}
		pf = pf.WithPalette(pal)
	}

	dst, err := createWithFormat(src.w, src.h, pf)
	if err != nil {
		return nil, err
	}

	// Copy raw colors: no key, no modulation, no blending.
	info, blend := src.info, src.blend
	src.info &^= copyColorKey | copyModulateColor | copyModulateAlpha
	src.blend = BlendNone
	full := src.clipFull()
	err = LowerBlit(src, full, dst, full)
	src.info, src.blend = info, blend
	if err != nil {
		Free(dst)
		return nil, err
	}

	dst.modR, dst.modG, dst.modB, dst.modA = src.modR, src.modG, src.modB, src.modA
	dst.info |= src.info & (copyModulateColor | copyModulateAlpha)
	if src.info&copyColorKey != 0 {
		key := src.colorKey
		if !sameFormat(src.format, dst.format) {
			key = pixels.ColorFromU32(src.format, key).ToU32(dst.format)
		}
		dst.info |= copyColorKey
		dst.colorKey = key
	}
	dst.clip = src.clip
	if (src.format.HasAlpha() && dst.format.HasAlpha()) || src.info&copyModulateAlpha != 0 {
		dst.blend = BlendBlend
	}
	if src.info&copyRLEDesired != 0 {
		if err := SetSurfaceRLE(dst, true); err != nil {
			Free(dst)
			return nil, err
		}
	}
	return dst, nil
}
