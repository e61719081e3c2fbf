package engine

// Pixel values are stored little-endian regardless of the host.

// LoadPixel reads a pixel value of bpp bytes from b.
func LoadPixel(b []byte, bpp int) uint32 {
	switch bpp {
	case 1:
		return uint32(b[0])
	case 2:
		_ = b[1]
		return uint32(b[0]) | uint32(b[1])<<8
	case 3:
		_ = b[2]
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	default:
		_ = b[3]
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
}

// StorePixel writes the low bpp bytes of v to b.
func StorePixel(b []byte, bpp int, v uint32) {
	switch bpp {
	case 1:
		b[0] = byte(v)
	case 2:
		_ = b[1]
		b[0] = byte(v)
		b[1] = byte(v >> 8)
	case 3:
		_ = b[2]
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
	default:
		_ = b[3]
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
		b[3] = byte(v >> 24)
	}
}

// offset returns the byte offset of pixel (x, y).
func (s *Surface) offset(x, y int) int {
	return y*s.pitch + x*s.format.BytesPerPixel()
}

// PixelAt returns the raw pixel value at (x, y). Coordinates must be in
// bounds.
func (s *Surface) PixelAt(x, y int) uint32 {
	bpp := s.format.BytesPerPixel()
	off := s.offset(x, y)
	return LoadPixel(s.pixels[off:off+bpp], bpp)
}

// fillPattern writes one pixel value n times into dst using doubling copies.
func fillPattern(dst []byte, bpp int, v uint32, n int) {
	if n <= 0 {
		return
	}
	StorePixel(dst, bpp, v)
	total := n * bpp
	for filled := bpp; filled < total; filled *= 2 {
		copy(dst[filled:total], dst[:filled])
	}
}
