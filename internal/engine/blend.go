package engine

import "github.com/gogpu/surface/pixels"

// mulDiv255 multiplies two channel values and divides by 255 exactly,
// using Alvy Ray Smith's shift formula instead of a division.
func mulDiv255(a, b uint8) uint8 {
	t := uint16(a)*uint16(b) + 1
	return uint8((t + t>>8) >> 8)
}

// modulate applies the color and alpha multipliers of src to c.
func (s *Surface) modulate(c pixels.Color) pixels.Color {
	if s.info&copyModulateColor != 0 {
		c.R = mulDiv255(c.R, s.modR)
		c.G = mulDiv255(c.G, s.modG)
		c.B = mulDiv255(c.B, s.modB)
	}
	if s.info&copyModulateAlpha != 0 {
		c.A = mulDiv255(c.A, s.modA)
	}
	return c
}

// blendColors combines a modulated source color with the destination.
func blendColors(mode BlendMode, src, dst pixels.Color) pixels.Color {
	switch mode {
	case BlendBlend:
		a := src.A
		inv := 255 - a
		return pixels.Color{
			R: mulDiv255(src.R, a) + mulDiv255(dst.R, inv),
			G: mulDiv255(src.G, a) + mulDiv255(dst.G, inv),
			B: mulDiv255(src.B, a) + mulDiv255(dst.B, inv),
			A: a + mulDiv255(dst.A, inv),
		}
	case BlendAdd:
		a := src.A
		return pixels.Color{
			R: addClamp(mulDiv255(src.R, a), dst.R),
			G: addClamp(mulDiv255(src.G, a), dst.G),
			B: addClamp(mulDiv255(src.B, a), dst.B),
			A: dst.A,
		}
	case BlendMod:
		return pixels.Color{
			R: mulDiv255(src.R, dst.R),
			G: mulDiv255(src.G, dst.G),
			B: mulDiv255(src.B, dst.B),
			A: dst.A,
		}
	default:
		return src
	}
}

func addClamp(a, b uint8) uint8 {
	if s := uint16(a) + uint16(b); s < 255 {
		return uint8(s)
	}
	return 255
}
