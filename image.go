package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/surface/internal/engine"
	"github.com/gogpu/surface/pixels"
)

// ColorModel implements image.Image.
func (r *Ref) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (r *Ref) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.raw.Width(), r.raw.Height())
}

// At implements image.Image. Points outside the surface are transparent.
func (r *Ref) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return color.NRGBA{}
	}
	return pixels.ColorFromU32(r.raw.Format(), r.raw.PixelAt(x, y))
}

// ToImage returns a copy of the pixels as non-premultiplied RGBA.
func (r *Ref) ToImage() *image.NRGBA {
	w, h := r.raw.Width(), r.raw.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := pixels.ColorFromU32(r.raw.Format(), r.raw.PixelAt(x, y))
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}

// FromImage creates a surface of the given format holding a copy of img.
// The image is flattened to NRGBA first; indexed formats map every color
// to the closest entry of the palette set with WithPalette, or of the
// default palette.
func FromImage(img image.Image, format pixels.PixelFormatEnum, opts ...Option) (*Surface, error) {
	b := img.Bounds()
	src, ok := img.(*image.NRGBA)
	if !ok || src.Rect.Min != (image.Point{}) {
		src = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
	}

	s, err := New(uint32(b.Dx()), uint32(b.Dy()), format, opts...)
	if err != nil {
		return nil, err
	}
	pf := s.raw.Format()
	bpp := pf.BytesPerPixel()
	pitch := s.raw.Pitch()
	err = s.WithLockMut(func(buf []byte) error {
		for y := range b.Dy() {
			row := buf[y*pitch:]
			for x := range b.Dx() {
				i := src.PixOffset(x, y)
				c := pixels.RGBA(src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3])
				engine.StorePixel(row[x*bpp:], bpp, c.ToU32(pf))
			}
		}
		return nil
	})
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
