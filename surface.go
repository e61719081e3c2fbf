// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/surface/internal/engine"
	"github.com/gogpu/surface/pixels"
)

// MutableHandle is implemented by anything that can serve as a blit
// destination. Both *Surface and *Ref implement it.
type MutableHandle interface {
	AsMut() *Ref
}

// Ref is a borrowed view of a surface. It carries every read and write
// operation but cannot release the pixels.
type Ref struct {
	raw *engine.Surface
}

// AsMut implements MutableHandle.
func (r *Ref) AsMut() *Ref { return r }

// Surface owns a pixel buffer. Close releases it exactly once.
//
// Surface embeds *Ref, so every Ref operation is available on a Surface
// and s.Ref can be handed out as a borrowed view.
type Surface struct {
	*Ref
	closeOnce sync.Once
}

// Close releases the surface. Calling Close more than once is safe;
// only the first call has an effect. Borrowed views must not be used
// afterwards.
func (s *Surface) Close() error {
	if s == nil || s.Ref == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		Logger().Debug("surface: free",
			"width", s.raw.Width(), "height", s.raw.Height(), "format", s.raw.Format())
		engine.Free(s.raw)
	})
	return nil
}

func newOwned(op string, raw *engine.Surface, opts []Option) (*Surface, error) {
	s := &Surface{Ref: &Ref{raw: raw}}
	if err := s.apply(opts); err != nil {
		_ = s.Close()
		return nil, wrap(op, err)
	}
	Logger().Debug("surface: created", "op", op,
		"width", raw.Width(), "height", raw.Height(), "pitch", raw.Pitch(), "format", raw.Format())
	return s, nil
}

// checkDims rejects sizes that do not fit in a non-negative int32.
func checkDims(width, height uint32) error {
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return fmt.Errorf("%w (%dx%d)", ErrTooLarge, width, height)
	}
	return nil
}

// New creates a zeroed surface of the given size and format.
// Failure to resolve the format's masks is returned as is.
func New(width, height uint32, format pixels.PixelFormatEnum, opts ...Option) (*Surface, error) {
	masks, err := format.IntoMasks()
	if err != nil {
		return nil, err
	}
	return FromPixelMasks(width, height, masks, opts...)
}

// FromPixelMasks creates a zeroed surface with explicit channel masks.
func FromPixelMasks(width, height uint32, masks pixels.PixelMasks, opts ...Option) (*Surface, error) {
	const op = "surface.FromPixelMasks"
	if err := checkDims(width, height); err != nil {
		return nil, wrap(op, err)
	}
	raw, err := engine.CreateRGBSurface(int(width), int(height), masks)
	if err != nil {
		return nil, wrap(op, err)
	}
	return newOwned(op, raw, opts)
}

// FromData creates a surface that uses data as its pixel memory, with
// rows pitch bytes apart. Writes through the surface modify data directly;
// data must not be resized or reused while the surface is in use.
func FromData(data []byte, width, height, pitch uint32, format pixels.PixelFormatEnum, opts ...Option) (*Surface, error) {
	masks, err := format.IntoMasks()
	if err != nil {
		return nil, err
	}
	return FromDataPixelMasks(data, width, height, pitch, masks, opts...)
}

// FromDataPixelMasks is FromData with explicit channel masks.
func FromDataPixelMasks(data []byte, width, height, pitch uint32, masks pixels.PixelMasks, opts ...Option) (*Surface, error) {
	const op = "surface.FromDataPixelMasks"
	if err := checkDims(width, height); err != nil {
		return nil, wrap(op, err)
	}
	if pitch > math.MaxInt32 {
		return nil, wrap(op, fmt.Errorf("%w (%d)", ErrPitchTooLarge, pitch))
	}
	raw, err := engine.CreateRGBSurfaceFrom(data, int(width), int(height), int(pitch), masks)
	if err != nil {
		return nil, wrap(op, err)
	}
	return newOwned(op, raw, opts)
}
