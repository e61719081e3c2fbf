package engine

import (
	"fmt"

	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

// BlendMode selects how blitted pixels combine with the destination.
type BlendMode int

const (
	// BlendNone copies source pixels: dstRGBA = srcRGBA.
	BlendNone BlendMode = 0
	// BlendBlend is alpha blending:
	// dstRGB = srcRGB*srcA + dstRGB*(1-srcA), dstA = srcA + dstA*(1-srcA).
	BlendBlend BlendMode = 1
	// BlendAdd is additive blending: dstRGB = srcRGB*srcA + dstRGB.
	BlendAdd BlendMode = 2
	// BlendMod is color modulation: dstRGB = srcRGB*dstRGB.
	BlendMod BlendMode = 4
)

// Valid reports whether m is a supported mode.
func (m BlendMode) Valid() bool {
	switch m {
	case BlendNone, BlendBlend, BlendAdd, BlendMod:
		return true
	}
	return false
}

// SetSurfacePalette replaces the palette of an indexed surface.
func SetSurfacePalette(s *Surface, p *pixels.Palette) error {
	if err := valid(s); err != nil {
		return err
	}
	if p == nil {
		return ErrInvalidPalette
	}
	if !s.format.IsIndexed() {
		return fmt.Errorf("%w: %v", ErrNotIndexed, s.format)
	}
	if p.Len() > 1<<s.format.BitsPerPixel() {
		return fmt.Errorf("%w: %d colors for %d bits", ErrPaletteTooLarge, p.Len(), s.format.BitsPerPixel())
	}
	s.format = s.format.WithPalette(p)
	s.touch()
	return nil
}

// SetSurfaceRLE turns RLE acceleration on or off. While enabled the surface
// reports MustLock and blits skip transparent runs.
func SetSurfaceRLE(s *Surface, enable bool) error {
	if err := valid(s); err != nil {
		return err
	}
	if enable {
		s.info |= copyRLEDesired
		s.flags |= FlagRLEAccel
		s.touch()
		return nil
	}
	s.info &^= copyRLEDesired
	s.flags &^= FlagRLEAccel
	s.rle = nil
	return nil
}

// HasSurfaceRLE reports whether RLE acceleration was requested.
func HasSurfaceRLE(s *Surface) bool {
	return valid(s) == nil && s.info&copyRLEDesired != 0
}

// SetColorKey enables or disables the transparent pixel value.
func SetColorKey(s *Surface, enable bool, key uint32) error {
	if err := valid(s); err != nil {
		return err
	}
	if enable {
		s.info |= copyColorKey
		s.colorKey = key
	} else {
		s.info &^= copyColorKey
	}
	s.touch()
	return nil
}

// GetColorKey returns the color key, or ErrNoColorKey when none is set.
func GetColorKey(s *Surface) (uint32, error) {
	if err := valid(s); err != nil {
		return 0, err
	}
	if s.info&copyColorKey == 0 {
		return 0, ErrNoColorKey
	}
	return s.colorKey, nil
}

// SetSurfaceColorMod sets the multipliers applied to source color channels
// during blits.
func SetSurfaceColorMod(s *Surface, r, g, b uint8) error {
	if err := valid(s); err != nil {
		return err
	}
	s.modR, s.modG, s.modB = r, g, b
	if r != 255 || g != 255 || b != 255 {
		s.info |= copyModulateColor
	} else {
		s.info &^= copyModulateColor
	}
	return nil
}

// GetSurfaceColorMod returns the color multipliers.
func GetSurfaceColorMod(s *Surface) (r, g, b uint8, err error) {
	if err := valid(s); err != nil {
		return 0, 0, 0, err
	}
	return s.modR, s.modG, s.modB, nil
}

// SetSurfaceAlphaMod sets the multiplier applied to source alpha during
// blits.
func SetSurfaceAlphaMod(s *Surface, a uint8) error {
	if err := valid(s); err != nil {
		return err
	}
	s.modA = a
	if a != 255 {
		s.info |= copyModulateAlpha
	} else {
		s.info &^= copyModulateAlpha
	}
	return nil
}

// GetSurfaceAlphaMod returns the alpha multiplier.
func GetSurfaceAlphaMod(s *Surface) (uint8, error) {
	if err := valid(s); err != nil {
		return 0, err
	}
	return s.modA, nil
}

// SetSurfaceBlendMode sets the blend mode used when s is a blit source.
func SetSurfaceBlendMode(s *Surface, mode BlendMode) error {
	if err := valid(s); err != nil {
		return err
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidBlendMode, mode)
	}
	s.blend = mode
	return nil
}

// GetSurfaceBlendMode returns the blend mode.
func GetSurfaceBlendMode(s *Surface) (BlendMode, error) {
	if err := valid(s); err != nil {
		return 0, err
	}
	return s.blend, nil
}

// SetClipRect restricts blits and fills into s to r intersected with the
// surface bounds. A nil r resets clipping to the whole surface. The result
// reports whether the clip rectangle is non-empty.
func SetClipRect(s *Surface, r *rect.Rect) bool {
	if valid(s) != nil {
		return false
	}
	full := rect.Rect{W: int32(s.w), H: int32(s.h)}
	if r == nil {
		s.clip = full
		return !full.Empty()
	}
	clip, ok := r.Intersect(full)
	s.clip = clip
	return ok
}

// GetClipRect returns the current clip rectangle.
func GetClipRect(s *Surface) rect.Rect {
	if valid(s) != nil {
		return rect.Rect{}
	}
	return s.clip
}
