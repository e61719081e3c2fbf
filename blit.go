// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"github.com/gogpu/surface/internal/engine"
	"github.com/gogpu/surface/rect"
)

// Blit copies srcRect of the surface to dst at the position of dstRect,
// applying color key, modulation and blend mode. A nil srcRect copies the
// whole surface and a nil dstRect places it at (0, 0); the size of dstRect
// is ignored. Both rectangles are clipped, the destination one to the clip
// rectangle of dst.
//
// When dstRect is non-nil the result is the area of dst that was actually
// written, which is empty if nothing was drawn. A nil dstRect yields a nil
// result.
func (r *Ref) Blit(srcRect *rect.Rect, dst MutableHandle, dstRect *rect.Rect) (*rect.Rect, error) {
	final, err := engine.UpperBlit(r.raw, srcRect, dst.AsMut().raw, dstRect)
	if err != nil {
		return nil, wrap("surface.Blit", err)
	}
	if dstRect == nil {
		return nil, nil
	}
	return &final, nil
}

// BlitScaled is Blit with stretching: srcRect is scaled to the size of
// dstRect with nearest-neighbor sampling. A nil dstRect covers all of dst.
func (r *Ref) BlitScaled(srcRect *rect.Rect, dst MutableHandle, dstRect *rect.Rect) (*rect.Rect, error) {
	final, err := engine.UpperBlitScaled(r.raw, srcRect, dst.AsMut().raw, dstRect)
	if err != nil {
		return nil, wrap("surface.BlitScaled", err)
	}
	if dstRect == nil {
		return nil, nil
	}
	return &final, nil
}

// Unchecked exposes blits that skip clipping and lock checks.
//
// The caller guarantees that every rectangle lies inside its surface.
// Out-of-range rectangles panic with an index out of range error or draw
// into the wrong rows.
type Unchecked struct {
	r *Ref
}

// Unchecked returns the unchecked blit operations of the surface.
func (r *Ref) Unchecked() Unchecked { return Unchecked{r: r} }

func (u Unchecked) rects(srcRect *rect.Rect, dstRect *rect.Rect) (rect.Rect, rect.Rect) {
	src := rect.Or(srcRect, u.r.Rect())
	dst := rect.Or(dstRect, rect.Rect{W: src.W, H: src.H})
	return src, dst
}

// LowerBlit copies srcRect to the position of dstRect without clipping.
// nil rectangles mean the whole source and the origin of dst.
func (u Unchecked) LowerBlit(srcRect *rect.Rect, dst MutableHandle, dstRect *rect.Rect) error {
	src, d := u.rects(srcRect, dstRect)
	return wrap("surface.LowerBlit", engine.LowerBlit(u.r.raw, src, dst.AsMut().raw, d))
}

// LowerBlitScaled stretches srcRect onto dstRect without clipping.
// A nil dstRect covers all of dst.
func (u Unchecked) LowerBlitScaled(srcRect *rect.Rect, dst MutableHandle, dstRect *rect.Rect) error {
	d := dst.AsMut()
	src := rect.Or(srcRect, u.r.Rect())
	dr := rect.Or(dstRect, d.Rect())
	return wrap("surface.LowerBlitScaled", engine.LowerBlitScaled(u.r.raw, src, d.raw, dr))
}
