package engine

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/bmp"

	"github.com/gogpu/surface/pixels"
)

const (
	bmpFileHeaderLen = 14
	bmpInfoV3Len     = 40
	bmpInfoV4Len     = 108

	biRGB       = 0
	biBitfields = 3
	lcsSRGB     = 0x73524742 // "sRGB"
)

type bmpFileHeader struct {
	Type      [2]byte
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32
}

type bmpInfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// bmpV4Fields extend the info header to BITMAPV4HEADER.
type bmpV4Fields struct {
	RedMask, GreenMask, BlueMask, AlphaMask uint32
	CSType                                  uint32
	Endpoints                               [9]int32
	GammaRed, GammaGreen, GammaBlue         uint32
}

// LoadBMP decodes a Windows bitmap. Palettized files load as Index8 with
// the file palette, 24-bit files as BGR24 and 32-bit files as RGB888, or
// ARGB8888 when the header carries a non-zero alpha mask.
func LoadBMP(r io.Reader) (*Surface, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bmp: %w", err)
	}
	if len(data) < bmpFileHeaderLen+bmpInfoV3Len || data[0] != 'B' || data[1] != 'M' {
		return nil, ErrNotBMP
	}
	infoLen := binary.LittleEndian.Uint32(data[14:18])
	bitCount := binary.LittleEndian.Uint16(data[28:30])
	var alphaMask uint32
	if infoLen >= bmpInfoV4Len && len(data) >= bmpFileHeaderLen+bmpInfoV3Len+16 {
		alphaMask = binary.LittleEndian.Uint32(data[54:58])
	}

	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, bmp.ErrUnsupported) {
			return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedBMP, bitCount)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedBMP, err)
	}

	if p, ok := img.(*image.Paletted); ok {
		return loadPaletted(p)
	}

	var target pixels.PixelFormatEnum
	switch {
	case bitCount == 24:
		target = pixels.BGR24
	case bitCount == 32 && alphaMask != 0:
		target = pixels.ARGB8888
	case bitCount == 32:
		target = pixels.RGB888
	default:
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedBMP, bitCount)
	}
	masks, err := target.IntoMasks()
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	s, err := CreateRGBSurface(b.Dx(), b.Dy(), masks)
	if err != nil {
		return nil, err
	}
	bpp := s.format.BytesPerPixel()
	for y := range s.h {
		for x := range s.w {
			v := pixels.FromColor(img.At(b.Min.X+x, b.Min.Y+y)).ToU32(s.format)
			off := s.offset(x, y)
			StorePixel(s.pixels[off:off+bpp], bpp, v)
		}
	}
	return s, nil
}

func loadPaletted(p *image.Paletted) (*Surface, error) {
	colors := make([]pixels.Color, len(p.Palette))
	for i, c := range p.Palette {
		colors[i] = pixels.FromColor(c)
	}
	pal, err := pixels.PaletteFromColors(colors)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedBMP, err)
	}
	masks, _ := pixels.Index8.IntoMasks()
	b := p.Bounds()
	s, err := CreateRGBSurface(b.Dx(), b.Dy(), masks)
	if err != nil {
		return nil, err
	}
	s.format = s.format.WithPalette(pal)
	for y := range s.h {
		copy(s.pixels[y*s.pitch:y*s.pitch+s.w], p.Pix[y*p.Stride:y*p.Stride+s.w])
	}
	return s, nil
}

// SaveBMP encodes s as a Windows bitmap. Indexed surfaces are written with
// their palette, 32-bit and alpha formats as 32-bit files and everything
// else as 24-bit. The depth therefore changes for 16-bit formats: RGB565
// and friends reload as BGR24, ARGB4444 and friends as ARGB8888.
func SaveBMP(s *Surface, w io.Writer) error {
	if err := valid(s); err != nil {
		return err
	}
	switch {
	case s.format.IsIndexed():
		return bmp.Encode(w, palettedImage(s))
	case s.format.HasAlpha() || s.format.BytesPerPixel() == 4:
		return writeBMP32(s, w)
	default:
		return bmp.Encode(w, rgbaImage(s, true))
	}
}

func palettedImage(s *Surface) *image.Paletted {
	var pal color.Palette
	if p := s.format.Palette(); p != nil {
		for _, c := range p.Colors() {
			pal = append(pal, c)
		}
	} else {
		pal = color.Palette{color.Black}
	}
	img := image.NewPaletted(image.Rect(0, 0, s.w, s.h), pal)
	for y := range s.h {
		copy(img.Pix[y*img.Stride:y*img.Stride+s.w], s.pixels[y*s.pitch:])
	}
	return img
}

// rgbaImage decodes every pixel of s. With opaque set, alpha is forced to
// 255.
func rgbaImage(s *Surface, opaque bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.w, s.h))
	for y := range s.h {
		for x := range s.w {
			c := pixels.ColorFromU32(s.format, s.PixelAt(x, y))
			if opaque {
				c.A = 255
			}
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}

// writeBMP32 writes a bottom-up 32-bit bitmap. Formats with alpha get a
// BITMAPV4HEADER with channel masks so readers keep the alpha channel.
func writeBMP32(s *Surface, w io.Writer) error {
	alpha := s.format.HasAlpha()
	infoLen := uint32(bmpInfoV3Len)
	if alpha {
		infoLen = bmpInfoV4Len
	}
	imageSize := uint32(s.w) * uint32(s.h) * 4
	offset := bmpFileHeaderLen + infoLen

	fh := bmpFileHeader{
		Type:    [2]byte{'B', 'M'},
		Size:    offset + imageSize,
		OffBits: offset,
	}
	ih := bmpInfoHeader{
		Size:        infoLen,
		Width:       int32(s.w),
		Height:      int32(s.h),
		Planes:      1,
		BitCount:    32,
		Compression: biRGB,
		SizeImage:   imageSize,
		XPixelsPerM: 2835,
		YPixelsPerM: 2835,
	}
	if alpha {
		ih.Compression = biBitfields
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, fh); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, ih); err != nil {
		return err
	}
	if alpha {
		v4 := bmpV4Fields{
			RedMask:   0x00FF0000,
			GreenMask: 0x0000FF00,
			BlueMask:  0x000000FF,
			AlphaMask: 0xFF000000,
			CSType:    lcsSRGB,
		}
		if err := binary.Write(bw, binary.LittleEndian, v4); err != nil {
			return err
		}
	}

	row := make([]byte, s.w*4)
	for y := s.h - 1; y >= 0; y-- {
		for x := range s.w {
			c := pixels.ColorFromU32(s.format, s.PixelAt(x, y))
			if !alpha {
				c.A = 0
			}
			row[4*x], row[4*x+1], row[4*x+2], row[4*x+3] = c.B, c.G, c.R, c.A
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
