// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pixels describes pixel layouts: format enums, channel masks,
// format descriptors, colors and palettes.
//
// Packed pixel values are always interpreted little-endian, so a BGR24
// pixel is stored as the bytes B, G, R and has the red mask 0xFF0000.
package pixels

import (
	"errors"
	"fmt"
	"math/bits"

	"golang.org/x/text/cases"
)

// Format errors.
var (
	// ErrUnknownFormat is returned when a format enum has no mask layout
	// (FOURCC/YUV formats and Unknown).
	ErrUnknownFormat = errors.New("unknown pixel format")

	// ErrNoMatchingFormat is returned when a set of masks matches no format.
	ErrNoMatchingFormat = errors.New("no pixel format matches the given masks")
)

// PixelFormatEnum identifies a pixel layout.
type PixelFormatEnum uint32

const (
	typeIndex1   = 1
	typeIndex4   = 2
	typeIndex8   = 3
	typePacked8  = 4
	typePacked16 = 5
	typePacked32 = 6
	typeArrayU8  = 7

	bitmapOrder4321 = 1
	bitmapOrder1234 = 2

	packedXRGB = 1
	packedRGBX = 2
	packedARGB = 3
	packedRGBA = 4
	packedXBGR = 5
	packedBGRX = 6
	packedABGR = 7
	packedBGRA = 8

	arrayRGB = 1
	arrayBGR = 4

	layout332     = 1
	layout4444    = 2
	layout1555    = 3
	layout5551    = 4
	layout565     = 5
	layout8888    = 6
	layout2101010 = 7
)

// Known pixel formats. Non-FOURCC values pack flag, type, order, layout,
// bits per pixel and bytes per pixel into one word.
const (
	Unknown     PixelFormatEnum = 0
	Index1LSB   PixelFormatEnum = 1<<28 | typeIndex1<<24 | bitmapOrder4321<<20 | 1<<8
	Index1MSB   PixelFormatEnum = 1<<28 | typeIndex1<<24 | bitmapOrder1234<<20 | 1<<8
	Index4LSB   PixelFormatEnum = 1<<28 | typeIndex4<<24 | bitmapOrder4321<<20 | 4<<8
	Index4MSB   PixelFormatEnum = 1<<28 | typeIndex4<<24 | bitmapOrder1234<<20 | 4<<8
	Index8      PixelFormatEnum = 1<<28 | typeIndex8<<24 | 8<<8 | 1
	RGB332      PixelFormatEnum = 1<<28 | typePacked8<<24 | packedXRGB<<20 | layout332<<16 | 8<<8 | 1
	RGB444      PixelFormatEnum = 1<<28 | typePacked16<<24 | packedXRGB<<20 | layout4444<<16 | 12<<8 | 2
	RGB555      PixelFormatEnum = 1<<28 | typePacked16<<24 | packedXRGB<<20 | layout1555<<16 | 15<<8 | 2
	BGR555      PixelFormatEnum = 1<<28 | typePacked16<<24 | packedXBGR<<20 | layout1555<<16 | 15<<8 | 2
	ARGB4444    PixelFormatEnum = 1<<28 | typePacked16<<24 | packedARGB<<20 | layout4444<<16 | 16<<8 | 2
	RGBA4444    PixelFormatEnum = 1<<28 | typePacked16<<24 | packedRGBA<<20 | layout4444<<16 | 16<<8 | 2
	ABGR4444    PixelFormatEnum = 1<<28 | typePacked16<<24 | packedABGR<<20 | layout4444<<16 | 16<<8 | 2
	BGRA4444    PixelFormatEnum = 1<<28 | typePacked16<<24 | packedBGRA<<20 | layout4444<<16 | 16<<8 | 2
	ARGB1555    PixelFormatEnum = 1<<28 | typePacked16<<24 | packedARGB<<20 | layout1555<<16 | 16<<8 | 2
	RGBA5551    PixelFormatEnum = 1<<28 | typePacked16<<24 | packedRGBA<<20 | layout5551<<16 | 16<<8 | 2
	ABGR1555    PixelFormatEnum = 1<<28 | typePacked16<<24 | packedABGR<<20 | layout1555<<16 | 16<<8 | 2
	BGRA5551    PixelFormatEnum = 1<<28 | typePacked16<<24 | packedBGRA<<20 | layout5551<<16 | 16<<8 | 2
	RGB565      PixelFormatEnum = 1<<28 | typePacked16<<24 | packedXRGB<<20 | layout565<<16 | 16<<8 | 2
	BGR565      PixelFormatEnum = 1<<28 | typePacked16<<24 | packedXBGR<<20 | layout565<<16 | 16<<8 | 2
	RGB24       PixelFormatEnum = 1<<28 | typeArrayU8<<24 | arrayRGB<<20 | 24<<8 | 3
	BGR24       PixelFormatEnum = 1<<28 | typeArrayU8<<24 | arrayBGR<<20 | 24<<8 | 3
	RGB888      PixelFormatEnum = 1<<28 | typePacked32<<24 | packedXRGB<<20 | layout8888<<16 | 24<<8 | 4
	RGBX8888    PixelFormatEnum = 1<<28 | typePacked32<<24 | packedRGBX<<20 | layout8888<<16 | 24<<8 | 4
	BGR888      PixelFormatEnum = 1<<28 | typePacked32<<24 | packedXBGR<<20 | layout8888<<16 | 24<<8 | 4
	BGRX8888    PixelFormatEnum = 1<<28 | typePacked32<<24 | packedBGRX<<20 | layout8888<<16 | 24<<8 | 4
	ARGB8888    PixelFormatEnum = 1<<28 | typePacked32<<24 | packedARGB<<20 | layout8888<<16 | 32<<8 | 4
	RGBA8888    PixelFormatEnum = 1<<28 | typePacked32<<24 | packedRGBA<<20 | layout8888<<16 | 32<<8 | 4
	ABGR8888    PixelFormatEnum = 1<<28 | typePacked32<<24 | packedABGR<<20 | layout8888<<16 | 32<<8 | 4
	BGRA8888    PixelFormatEnum = 1<<28 | typePacked32<<24 | packedBGRA<<20 | layout8888<<16 | 32<<8 | 4
	ARGB2101010 PixelFormatEnum = 1<<28 | typePacked32<<24 | packedARGB<<20 | layout2101010<<16 | 32<<8 | 4

	// FOURCC formats are planar or packed YUV and have no RGB masks.
	YV12 PixelFormatEnum = 'Y' | 'V'<<8 | '1'<<16 | '2'<<24
	IYUV PixelFormatEnum = 'I' | 'Y'<<8 | 'U'<<16 | 'V'<<24
	YUY2 PixelFormatEnum = 'Y' | 'U'<<8 | 'Y'<<16 | '2'<<24
	UYVY PixelFormatEnum = 'U' | 'Y'<<8 | 'V'<<16 | 'Y'<<24
	YVYU PixelFormatEnum = 'Y' | 'V'<<8 | 'Y'<<16 | 'U'<<24
)

// PixelMasks is the channel-mask description of a packed or indexed format.
type PixelMasks struct {
	// BPP is the bits per pixel. Formats wider than two bytes report whole
	// bytes (RGB888 is 32), narrower ones report significant bits
	// (RGB555 is 15).
	BPP   uint8
	RMask uint32
	GMask uint32
	BMask uint32
	AMask uint32
}

type formatEntry struct {
	format PixelFormatEnum
	name   string
	masks  PixelMasks
}

// formatTable lists every format with a mask layout. Order matters for
// FormatFromMasks: the first entry with matching bytes and masks wins.
var formatTable = []formatEntry{
	{Index1MSB, "Index1MSB", PixelMasks{BPP: 1}},
	{Index1LSB, "Index1LSB", PixelMasks{BPP: 1}},
	{Index4MSB, "Index4MSB", PixelMasks{BPP: 4}},
	{Index4LSB, "Index4LSB", PixelMasks{BPP: 4}},
	{Index8, "Index8", PixelMasks{BPP: 8}},
	{RGB332, "RGB332", PixelMasks{8, 0xE0, 0x1C, 0x03, 0}},
	{RGB444, "RGB444", PixelMasks{12, 0x0F00, 0x00F0, 0x000F, 0}},
	{RGB555, "RGB555", PixelMasks{15, 0x7C00, 0x03E0, 0x001F, 0}},
	{BGR555, "BGR555", PixelMasks{15, 0x001F, 0x03E0, 0x7C00, 0}},
	{ARGB4444, "ARGB4444", PixelMasks{16, 0x0F00, 0x00F0, 0x000F, 0xF000}},
	{RGBA4444, "RGBA4444", PixelMasks{16, 0xF000, 0x0F00, 0x00F0, 0x000F}},
	{ABGR4444, "ABGR4444", PixelMasks{16, 0x000F, 0x00F0, 0x0F00, 0xF000}},
	{BGRA4444, "BGRA4444", PixelMasks{16, 0x00F0, 0x0F00, 0xF000, 0x000F}},
	{ARGB1555, "ARGB1555", PixelMasks{16, 0x7C00, 0x03E0, 0x001F, 0x8000}},
	{RGBA5551, "RGBA5551", PixelMasks{16, 0xF800, 0x07C0, 0x003E, 0x0001}},
	{ABGR1555, "ABGR1555", PixelMasks{16, 0x001F, 0x03E0, 0x7C00, 0x8000}},
	{BGRA5551, "BGRA5551", PixelMasks{16, 0x003E, 0x07C0, 0xF800, 0x0001}},
	{RGB565, "RGB565", PixelMasks{16, 0xF800, 0x07E0, 0x001F, 0}},
	{BGR565, "BGR565", PixelMasks{16, 0x001F, 0x07E0, 0xF800, 0}},
	{RGB24, "RGB24", PixelMasks{24, 0x0000FF, 0x00FF00, 0xFF0000, 0}},
	{BGR24, "BGR24", PixelMasks{24, 0xFF0000, 0x00FF00, 0x0000FF, 0}},
	{RGB888, "RGB888", PixelMasks{32, 0x00FF0000, 0x0000FF00, 0x000000FF, 0}},
	{RGBX8888, "RGBX8888", PixelMasks{32, 0xFF000000, 0x00FF0000, 0x0000FF00, 0}},
	{BGR888, "BGR888", PixelMasks{32, 0x000000FF, 0x0000FF00, 0x00FF0000, 0}},
	{BGRX8888, "BGRX8888", PixelMasks{32, 0x0000FF00, 0x00FF0000, 0xFF000000, 0}},
	{ARGB8888, "ARGB8888", PixelMasks{32, 0x00FF0000, 0x0000FF00, 0x000000FF, 0xFF000000}},
	{RGBA8888, "RGBA8888", PixelMasks{32, 0xFF000000, 0x00FF0000, 0x0000FF00, 0x000000FF}},
	{ABGR8888, "ABGR8888", PixelMasks{32, 0x000000FF, 0x0000FF00, 0x00FF0000, 0xFF000000}},
	{BGRA8888, "BGRA8888", PixelMasks{32, 0x0000FF00, 0x00FF0000, 0xFF000000, 0x000000FF}},
	{ARGB2101010, "ARGB2101010", PixelMasks{32, 0x3FF00000, 0x000FFC00, 0x000003FF, 0xC0000000}},
}

var fourCCNames = map[PixelFormatEnum]string{
	YV12: "YV12",
	IYUV: "IYUV",
	YUY2: "YUY2",
	UYVY: "UYVY",
	YVYU: "YVYU",
}

func lookup(f PixelFormatEnum) (formatEntry, bool) {
	for _, e := range formatTable {
		if e.format == f {
			return e, true
		}
	}
	return formatEntry{}, false
}

// IntoMasks resolves the format to its channel masks.
// FOURCC formats and Unknown have no masks and return ErrUnknownFormat.
func (f PixelFormatEnum) IntoMasks() (PixelMasks, error) {
	e, ok := lookup(f)
	if !ok {
		return PixelMasks{}, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	return e.masks, nil
}

// IsFourCC reports whether f is a FOURCC (YUV) format.
func (f PixelFormatEnum) IsFourCC() bool {
	return f != Unknown && (f>>28)&0x0F != 1
}

func (f PixelFormatEnum) pixelType() uint32 {
	return uint32(f>>24) & 0x0F
}

// IsIndexed reports whether pixels are palette indices.
func (f PixelFormatEnum) IsIndexed() bool {
	if f.IsFourCC() {
		return false
	}
	switch f.pixelType() {
	case typeIndex1, typeIndex4, typeIndex8:
		return true
	}
	return false
}

// HasAlpha reports whether the format carries an alpha channel.
func (f PixelFormatEnum) HasAlpha() bool {
	e, ok := lookup(f)
	return ok && e.masks.AMask != 0
}

// BitsPerPixel returns the number of significant bits per pixel.
func (f PixelFormatEnum) BitsPerPixel() int {
	if f.IsFourCC() {
		return 0
	}
	return int(f>>8) & 0xFF
}

// BytesPerPixel returns the storage size of one pixel, 0 for sub-byte
// indexed formats and FOURCC formats.
func (f PixelFormatEnum) BytesPerPixel() int {
	if f.IsFourCC() {
		return 0
	}
	return int(f) & 0xFF
}

// String returns the format name.
func (f PixelFormatEnum) String() string {
	if e, ok := lookup(f); ok {
		return e.name
	}
	if name, ok := fourCCNames[f]; ok {
		return name
	}
	if f == Unknown {
		return "Unknown"
	}
	return fmt.Sprintf("PixelFormatEnum(%#08x)", uint32(f))
}

// ParseFormat looks a format up by name, ignoring case.
func ParseFormat(name string) (PixelFormatEnum, error) {
	folder := cases.Fold()
	key := folder.String(name)
	for _, e := range formatTable {
		if folder.String(e.name) == key {
			return e.format, nil
		}
	}
	for f, n := range fourCCNames {
		if folder.String(n) == key {
			return f, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Formats returns every format that has a mask layout, in table order.
func Formats() []PixelFormatEnum {
	out := make([]PixelFormatEnum, len(formatTable))
	for i, e := range formatTable {
		out[i] = e.format
	}
	return out
}

func bytesForBPP(bpp uint8) int {
	return (int(bpp) + 7) / 8
}

// FormatFromMasks finds the format with the given masks.
// All-zero color masks select the conventional default for the depth.
func FormatFromMasks(m PixelMasks) PixelFormatEnum {
	if m.RMask == 0 && m.GMask == 0 && m.BMask == 0 && m.AMask == 0 {
		switch m.BPP {
		case 1:
			return Index1MSB
		case 4:
			return Index4MSB
		case 8:
			return Index8
		case 12:
			return RGB444
		case 15:
			return RGB555
		case 16:
			return RGB565
		case 24:
			return RGB24
		case 32:
			return RGB888
		}
		return Unknown
	}
	want := bytesForBPP(m.BPP)
	for _, e := range formatTable {
		if e.format.IsIndexed() {
			continue
		}
		if e.format.BytesPerPixel() != want {
			continue
		}
		if e.masks.RMask == m.RMask && e.masks.GMask == m.GMask &&
			e.masks.BMask == m.BMask && e.masks.AMask == m.AMask {
			return e.format
		}
	}
	return Unknown
}

// channel is the position of one color channel inside a pixel value.
type channel struct {
	mask  uint32
	shift uint8
	bits  uint8
}

func newChannel(mask uint32) channel {
	if mask == 0 {
		return channel{}
	}
	return channel{
		mask:  mask,
		shift: uint8(bits.TrailingZeros32(mask)),
		bits:  uint8(bits.OnesCount32(mask)),
	}
}

// encode scales an 8-bit channel value into the channel and positions it.
func (c channel) encode(v uint8) uint32 {
	if c.mask == 0 {
		return 0
	}
	var x uint32
	if c.bits <= 8 {
		x = uint32(v) >> (8 - c.bits)
	} else {
		x = uint32(v)<<(c.bits-8) | uint32(v)>>(16-c.bits)
	}
	return (x << c.shift) & c.mask
}

// decode extracts the channel from a pixel value and expands it to 8 bits.
func (c channel) decode(p uint32) uint8 {
	if c.mask == 0 {
		return 0
	}
	x := (p & c.mask) >> c.shift
	if c.bits >= 8 {
		return uint8(x >> (c.bits - 8))
	}
	top := uint32(1)<<c.bits - 1
	return uint8((x*255 + top/2) / top)
}

// PixelFormat is an immutable descriptor of a concrete pixel layout.
// The palette, when present, is shared by reference.
type PixelFormat struct {
	format        PixelFormatEnum
	bitsPerPixel  uint8
	bytesPerPixel uint8
	r, g, b, a    channel
	palette       *Palette
}

// NewPixelFormat builds the descriptor of a known format.
// Indexed formats get no palette; attach one with WithPalette.
func NewPixelFormat(f PixelFormatEnum) (*PixelFormat, error) {
	m, err := f.IntoMasks()
	if err != nil {
		return nil, err
	}
	pf := PixelFormatFromMasks(m)
	if pf.format == Unknown {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	pf.format = f
	return pf, nil
}

// PixelFormatFromMasks builds a descriptor from raw masks. The enum is
// Unknown when no known format matches. All-zero masks on a direct color
// depth take the masks of the default format for that depth.
func PixelFormatFromMasks(m PixelMasks) *PixelFormat {
	f := FormatFromMasks(m)
	if m.RMask|m.GMask|m.BMask|m.AMask == 0 && m.BPP > 8 {
		if e, ok := lookup(f); ok {
			m = e.masks
		}
	}
	return &PixelFormat{
		format:        f,
		bitsPerPixel:  m.BPP,
		bytesPerPixel: uint8(bytesForBPP(m.BPP)),
		r:             newChannel(m.RMask),
		g:             newChannel(m.GMask),
		b:             newChannel(m.BMask),
		a:             newChannel(m.AMask),
	}
}

// WithPalette returns a copy of the descriptor that uses p.
func (pf *PixelFormat) WithPalette(p *Palette) *PixelFormat {
	cp := *pf
	cp.palette = p
	return &cp
}

// Enum returns the format enum.
func (pf *PixelFormat) Enum() PixelFormatEnum { return pf.format }

// BitsPerPixel returns the depth in bits.
func (pf *PixelFormat) BitsPerPixel() int { return int(pf.bitsPerPixel) }

// BytesPerPixel returns the storage size of one pixel.
func (pf *PixelFormat) BytesPerPixel() int { return int(pf.bytesPerPixel) }

// Palette returns the attached palette or nil.
func (pf *PixelFormat) Palette() *Palette { return pf.palette }

// HasAlpha reports whether the format has an alpha mask.
func (pf *PixelFormat) HasAlpha() bool { return pf.a.mask != 0 }

// IsIndexed reports whether pixel values are palette indices.
func (pf *PixelFormat) IsIndexed() bool {
	return pf.r.mask == 0 && pf.g.mask == 0 && pf.b.mask == 0 && pf.bitsPerPixel <= 8
}

// Masks returns the channel masks of the format.
func (pf *PixelFormat) Masks() PixelMasks {
	return PixelMasks{
		BPP:   pf.bitsPerPixel,
		RMask: pf.r.mask,
		GMask: pf.g.mask,
		BMask: pf.b.mask,
		AMask: pf.a.mask,
	}
}

// String returns the format name.
func (pf *PixelFormat) String() string {
	return pf.format.String()
}
