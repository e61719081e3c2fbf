package pixels

import "image/color"

// Color is a non-premultiplied 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromColor converts any image/color value.
func FromColor(c color.Color) Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Opaque returns c with alpha set to 255.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// ToU32 maps the color to a pixel value of format pf.
// Indexed formats map to the closest palette entry; without a palette the
// result is 0. Alpha is dropped for formats without an alpha channel.
func (c Color) ToU32(pf *PixelFormat) uint32 {
	if pf.IsIndexed() {
		if pf.palette == nil {
			return 0
		}
		return uint32(pf.palette.Closest(c))
	}
	return pf.r.encode(c.R) | pf.g.encode(c.G) | pf.b.encode(c.B) | pf.a.encode(c.A)
}

// ColorFromU32 decodes a pixel value of format pf. Formats without alpha
// decode as opaque; indexes outside the palette decode as transparent black.
func ColorFromU32(pf *PixelFormat, v uint32) Color {
	if pf.IsIndexed() {
		if pf.palette == nil || int(v) >= pf.palette.Len() {
			return Color{}
		}
		return pf.palette.At(int(v))
	}
	c := Color{
		R: pf.r.decode(v),
		G: pf.g.decode(v),
		B: pf.b.decode(v),
		A: 255,
	}
	if pf.a.mask != 0 {
		c.A = pf.a.decode(v)
	}
	return c
}
