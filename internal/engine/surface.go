// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package engine implements software surfaces: pixel storage in any packed
// or 8-bit indexed format, locking with RLE acceleration, color keys, color
// and alpha modulation, blend modes, clip rectangles, rectangle fills,
// format conversion, clipped and unclipped (optionally scaled) blits and a
// BMP codec.
//
// The package exposes a flat, handle-based API. Every entry point validates
// the handle and reports failures as errors with descriptive messages; it
// never keeps hidden global error state.
package engine

import (
	"fmt"

	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

// Flags describe how a surface stores its pixels.
type Flags uint32

const (
	// FlagPrealloc marks pixel memory that belongs to the caller.
	FlagPrealloc Flags = 1 << iota

	// FlagRLEAccel marks a surface carrying RLE run data. Such surfaces
	// must be locked before their pixels are accessed directly.
	FlagRLEAccel
)

// copyFlags select the per-pixel stages of a blit from the surface.
type copyFlags uint32

const (
	copyColorKey copyFlags = 1 << iota
	copyModulateColor
	copyModulateAlpha
	copyRLEDesired
)

// maxBytes bounds both the pitch and the total size of a surface.
const maxBytes = 1<<31 - 1

// Surface is an in-memory pixel buffer. Handles are created by the Create*
// functions, LoadBMP and ConvertSurface, and released with Free.
type Surface struct {
	flags  Flags
	format *pixels.PixelFormat
	w, h   int
	pitch  int
	pixels []byte
	locked int
	clip   rect.Rect

	info       copyFlags
	colorKey   uint32
	modR, modG uint8
	modB, modA uint8
	blend      BlendMode
	rle        *rleData

	freed bool
}

func valid(s *Surface) error {
	if s == nil || s.freed {
		return ErrInvalidSurface
	}
	return nil
}

// newFormat resolves masks into a descriptor, attaching a default palette
// to indexed formats.
func newFormat(masks pixels.PixelMasks) (*pixels.PixelFormat, error) {
	if masks.BPP < 8 || masks.BPP > 32 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedDepth, masks.BPP)
	}
	pf := pixels.PixelFormatFromMasks(masks)
	if pf.Enum() == pixels.Unknown {
		return nil, fmt.Errorf("%w: %w (bpp=%d r=%#x g=%#x b=%#x a=%#x)", ErrUnknownMasks,
			pixels.ErrNoMatchingFormat, masks.BPP, masks.RMask, masks.GMask, masks.BMask, masks.AMask)
	}
	if pf.IsIndexed() {
		pal, err := pixels.NewPalette(1 << pf.BitsPerPixel())
		if err != nil {
			return nil, err
		}
		pf = pf.WithPalette(pal)
	}
	return pf, nil
}

// calculatePitch returns the 4-byte aligned row size.
func calculatePitch(w int, pf *pixels.PixelFormat) (int, error) {
	row := int64(w) * int64(pf.BytesPerPixel())
	pitch := (row + 3) &^ 3
	if pitch > maxBytes {
		return 0, fmt.Errorf("%w: pitch %d", ErrOutOfMemory, pitch)
	}
	return int(pitch), nil
}

func checkSize(w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return nil
}

func newSurface(w, h int, pf *pixels.PixelFormat) *Surface {
	s := &Surface{
		format: pf,
		w:      w,
		h:      h,
		clip:   rect.Rect{W: int32(w), H: int32(h)},
		modR:   255,
		modG:   255,
		modB:   255,
		modA:   255,
	}
	if pf.HasAlpha() {
		s.blend = BlendBlend
	}
	return s
}

// CreateRGBSurface allocates a zeroed surface with the given masks.
func CreateRGBSurface(w, h int, masks pixels.PixelMasks) (*Surface, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	pf, err := newFormat(masks)
	if err != nil {
		return nil, err
	}
	return createWithFormat(w, h, pf)
}

func createWithFormat(w, h int, pf *pixels.PixelFormat) (*Surface, error) {
	pitch, err := calculatePitch(w, pf)
	if err != nil {
		return nil, err
	}
	if size := int64(pitch) * int64(h); size > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrOutOfMemory, size)
	}
	s := newSurface(w, h, pf)
	s.pitch = pitch
	s.pixels = make([]byte, pitch*h)
	return s, nil
}

// CreateRGBSurfaceFrom creates a surface over caller-owned memory. Writes
// to the surface go straight to data.
func CreateRGBSurfaceFrom(data []byte, w, h, pitch int, masks pixels.PixelMasks) (*Surface, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	pf, err := newFormat(masks)
	if err != nil {
		return nil, err
	}
	if minPitch := w * pf.BytesPerPixel(); pitch < minPitch {
		return nil, fmt.Errorf("%w: pitch %d, need %d", ErrPitchTooSmall, pitch, minPitch)
	}
	need := int64(pitch) * int64(h)
	if need > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrOutOfMemory, need)
	}
	if int64(len(data)) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrDataTooSmall, len(data), need)
	}
	s := newSurface(w, h, pf)
	s.flags |= FlagPrealloc
	s.pitch = pitch
	s.pixels = data[:need:need]
	return s, nil
}

// Free releases the surface. Freeing nil or an already freed surface does
// nothing. Caller-owned memory is left untouched.
func Free(s *Surface) {
	if s == nil || s.freed {
		return
	}
	s.freed = true
	s.pixels = nil
	s.rle = nil
	s.locked = 0
}

func (s *Surface) clipFull() rect.Rect {
	return rect.Rect{W: int32(s.w), H: int32(s.h)}
}

// Width returns the width in pixels.
func (s *Surface) Width() int { return s.w }

// Height returns the height in pixels.
func (s *Surface) Height() int { return s.h }

// Pitch returns the row size in bytes.
func (s *Surface) Pitch() int { return s.pitch }

// Format returns the pixel format descriptor.
func (s *Surface) Format() *pixels.PixelFormat { return s.format }

// Flags returns the storage flags.
func (s *Surface) Flags() Flags { return s.flags }

// Pixels returns the raw pixel memory, pitch*height bytes.
func (s *Surface) Pixels() []byte { return s.pixels }

// Locked reports whether the surface is currently locked.
func (s *Surface) Locked() bool { return s.locked > 0 }

// Freed reports whether Free has been called.
func (s *Surface) Freed() bool { return s.freed }

// MustLock reports whether the pixels may only be accessed while locked.
func MustLock(s *Surface) bool {
	return s.flags&FlagRLEAccel != 0
}

// LockSurface makes the pixels directly addressable. Locks nest; each
// LockSurface must be paired with UnlockSurface.
func LockSurface(s *Surface) error {
	if err := valid(s); err != nil {
		return err
	}
	s.locked++
	if s.flags&FlagRLEAccel != 0 {
		// Pixels may be rewritten while locked, so the runs are dropped
		// and rebuilt on the final unlock.
		s.rle = nil
	}
	return nil
}

// UnlockSurface releases one lock level, re-encoding RLE data when the
// last lock goes away.
func UnlockSurface(s *Surface) {
	if valid(s) != nil || s.locked == 0 {
		return
	}
	s.locked--
	if s.locked == 0 {
		s.touch()
	}
}

// touch refreshes derived pixel data after the pixels changed.
func (s *Surface) touch() {
	if s.flags&FlagRLEAccel != 0 && s.locked == 0 {
		s.rle = encodeRLE(s)
	}
}
