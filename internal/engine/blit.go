// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"bytes"
	"math"

	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

// blitter carries the per-blit state shared by the copy loops.
type blitter struct {
	src, dst   *Surface
	srcPix     []byte
	sbpp, dbpp int
	key        bool
	keyVal     uint32
	mode       BlendMode
	// direct means raw source values are already the destination values.
	direct bool
}

func newBlitter(src, dst *Surface) *blitter {
	b := &blitter{
		src:    src,
		dst:    dst,
		srcPix: src.pixels,
		sbpp:   src.format.BytesPerPixel(),
		dbpp:   dst.format.BytesPerPixel(),
		key:    src.info&copyColorKey != 0,
		keyVal: src.colorKey,
		mode:   src.blend,
	}
	if src == dst {
		b.srcPix = bytes.Clone(src.pixels)
	}
	noMods := src.info&(copyModulateColor|copyModulateAlpha) == 0
	opaqueBlend := b.mode == BlendBlend && !src.format.HasAlpha()
	b.direct = sameFormat(src.format, dst.format) && noMods && (b.mode == BlendNone || opaqueBlend)
	return b
}

// sameFormat reports whether raw pixel values mean the same color in a and b.
func sameFormat(a, b *pixels.PixelFormat) bool {
	if a.Enum() != b.Enum() {
		return false
	}
	return !a.IsIndexed() || a.Palette() == b.Palette()
}

// useRLE reports whether skipping transparent runs gives the same result
// as visiting every pixel.
func (b *blitter) useRLE() bool {
	if b.src.rle == nil {
		return false
	}
	return b.key || b.mode == BlendBlend || b.mode == BlendAdd
}

func (b *blitter) pixel(sx, sy, dx, dy int) {
	soff := sy*b.src.pitch + sx*b.sbpp
	v := LoadPixel(b.srcPix[soff:soff+b.sbpp], b.sbpp)
	if b.key && v == b.keyVal {
		return
	}
	doff := b.dst.offset(dx, dy)
	out := b.dst.pixels[doff : doff+b.dbpp]
	if b.direct {
		StorePixel(out, b.dbpp, v)
		return
	}
	c := b.src.modulate(pixels.ColorFromU32(b.src.format, v))
	if b.mode != BlendNone {
		d := pixels.ColorFromU32(b.dst.format, LoadPixel(out, b.dbpp))
		c = blendColors(b.mode, c, d)
	}
	StorePixel(out, b.dbpp, c.ToU32(b.dst.format))
}

// UpperBlit clips srcRect to src and the destination position to the clip
// rectangle of dst, then copies. A nil srcRect means the whole source, a
// nil dstRect means position (0, 0); the size of dstRect is ignored.
// The returned rectangle is the area of dst that was written; its size is
// zero when nothing was drawn.
func UpperBlit(src *Surface, srcRect *rect.Rect, dst *Surface, dstRect *rect.Rect) (rect.Rect, error) {
	if err := valid(src); err != nil {
		return rect.Rect{}, err
	}
	if err := valid(dst); err != nil {
		return rect.Rect{}, err
	}
	if src.locked > 0 || dst.locked > 0 {
		return rect.Rect{}, ErrLocked
	}

	// Clipping runs in int64 so that positions near the int32 limits
	// cannot wrap.
	var dstX, dstY int64
	if dstRect != nil {
		dstX, dstY = int64(dstRect.X), int64(dstRect.Y)
	}

	var srcX, srcY int64
	w, h := int64(src.w), int64(src.h)
	if srcRect != nil {
		srcX, w = int64(srcRect.X), int64(srcRect.W)
		if srcX < 0 {
			w += srcX
			dstX -= srcX
			srcX = 0
		}
		w = min(w, int64(src.w)-srcX)

		srcY, h = int64(srcRect.Y), int64(srcRect.H)
		if srcY < 0 {
			h += srcY
			dstY -= srcY
			srcY = 0
		}
		h = min(h, int64(src.h)-srcY)
	}

	clip := dst.clip
	if d := int64(clip.X) - dstX; d > 0 {
		w -= d
		dstX += d
		srcX += d
	}
	if d := dstX + w - (int64(clip.X) + int64(clip.W)); d > 0 {
		w -= d
	}
	if d := int64(clip.Y) - dstY; d > 0 {
		h -= d
		dstY += d
		srcY += d
	}
	if d := dstY + h - (int64(clip.Y) + int64(clip.H)); d > 0 {
		h -= d
	}

	if w <= 0 || h <= 0 {
		return rect.Rect{X: narrow(dstX), Y: narrow(dstY)}, nil
	}
	sr := rect.Rect{X: int32(srcX), Y: int32(srcY), W: int32(w), H: int32(h)}
	dr := rect.Rect{X: int32(dstX), Y: int32(dstY), W: int32(w), H: int32(h)}
	return dr, LowerBlit(src, sr, dst, dr)
}

// narrow saturates v to the int32 range.
func narrow(v int64) int32 {
	return int32(min(max(v, math.MinInt32), math.MaxInt32))
}

// LowerBlit copies srcRect of src to the position of dstRect in dst.
// No clipping or lock checks are done: srcRect must lie inside src and the
// destination area inside dst.
func LowerBlit(src *Surface, srcRect rect.Rect, dst *Surface, dstRect rect.Rect) error {
	if err := valid(src); err != nil {
		return err
	}
	if err := valid(dst); err != nil {
		return err
	}
	w, h := int(srcRect.W), int(srcRect.H)
	if w <= 0 || h <= 0 {
		return nil
	}
	sx0, sy0 := int(srcRect.X), int(srcRect.Y)
	dx0, dy0 := int(dstRect.X), int(dstRect.Y)
	b := newBlitter(src, dst)

	switch {
	case b.direct && !b.key:
		n := w * b.sbpp
		for y := range h {
			soff := (sy0+y)*src.pitch + sx0*b.sbpp
			doff := dst.offset(dx0, dy0+y)
			copy(dst.pixels[doff:doff+n], b.srcPix[soff:soff+n])
		}
	case b.useRLE():
		for y := range h {
			src.rle.spans(sy0+y, sx0, sx0+w, func(start, end int) {
				for sx := start; sx < end; sx++ {
					b.pixel(sx, sy0+y, dx0+sx-sx0, dy0+y)
				}
			})
		}
	default:
		for y := range h {
			for x := range w {
				b.pixel(sx0+x, sy0+y, dx0+x, dy0+y)
			}
		}
	}
	dst.touch()
	return nil
}

// UpperBlitScaled stretches srcRect of src onto dstRect of dst, clipping
// both. A nil srcRect means the whole source and a nil dstRect the whole
// destination. Equal sizes fall back to UpperBlit.
func UpperBlitScaled(src *Surface, srcRect *rect.Rect, dst *Surface, dstRect *rect.Rect) (rect.Rect, error) {
	if err := valid(src); err != nil {
		return rect.Rect{}, err
	}
	if err := valid(dst); err != nil {
		return rect.Rect{}, err
	}
	if src.locked > 0 || dst.locked > 0 {
		return rect.Rect{}, ErrLocked
	}

	sr := rect.Or(srcRect, rect.Rect{W: int32(src.w), H: int32(src.h)})
	dr := rect.Or(dstRect, rect.Rect{W: int32(dst.w), H: int32(dst.h)})
	if sr.W == dr.W && sr.H == dr.H {
		return UpperBlit(src, srcRect, dst, dstRect)
	}
	if sr.W <= 0 || sr.H <= 0 || dr.W <= 0 || dr.H <= 0 {
		return rect.Rect{X: dr.X, Y: dr.Y}, nil
	}

	scaleW := float64(dr.W) / float64(sr.W)
	scaleH := float64(dr.H) / float64(sr.H)

	srcX0, srcY0 := float64(sr.X), float64(sr.Y)
	srcX1, srcY1 := srcX0+float64(sr.W), srcY0+float64(sr.H)
	dstX0, dstY0 := float64(dr.X), float64(dr.Y)
	dstX1, dstY1 := dstX0+float64(dr.W), dstY0+float64(dr.H)

	// Clip the source rectangle to the source surface.
	if srcX0 < 0 {
		dstX0 -= srcX0 * scaleW
		srcX0 = 0
	}
	if sw := float64(src.w); srcX1 > sw {
		dstX1 -= (srcX1 - sw) * scaleW
		srcX1 = sw
	}
	if srcY0 < 0 {
		dstY0 -= srcY0 * scaleH
		srcY0 = 0
	}
	if sh := float64(src.h); srcY1 > sh {
		dstY1 -= (srcY1 - sh) * scaleH
		srcY1 = sh
	}

	// Clip the destination rectangle to the clip rectangle.
	clip := dst.clip
	cx, cy := float64(clip.X), float64(clip.Y)
	cw, ch := float64(clip.W), float64(clip.H)
	dstX0, dstX1 = dstX0-cx, dstX1-cx
	dstY0, dstY1 = dstY0-cy, dstY1-cy
	if dstX0 < 0 {
		srcX0 -= dstX0 / scaleW
		dstX0 = 0
	}
	if dstX1 > cw {
		srcX1 -= (dstX1 - cw) / scaleW
		dstX1 = cw
	}
	if dstY0 < 0 {
		srcY0 -= dstY0 / scaleH
		dstY0 = 0
	}
	if dstY1 > ch {
		srcY1 -= (dstY1 - ch) / scaleH
		dstY1 = ch
	}
	dstX0, dstX1 = dstX0+cx, dstX1+cx
	dstY0, dstY1 = dstY0+cy, dstY1+cy

	finalSrc := rect.Rect{
		X: int32(math.Round(srcX0)),
		Y: int32(math.Round(srcY0)),
		W: int32(math.Round(srcX1 - srcX0)),
		H: int32(math.Round(srcY1 - srcY0)),
	}
	finalDst := rect.Rect{
		X: int32(math.Round(dstX0)),
		Y: int32(math.Round(dstY0)),
		W: max(int32(math.Round(dstX1-dstX0)), 0),
		H: max(int32(math.Round(dstY1-dstY0)), 0),
	}
	if finalDst.Empty() || finalSrc.W <= 0 || finalSrc.H <= 0 {
		return finalDst, nil
	}
	// Rounding may push the source one pixel past the edge.
	finalSrc.W = min(finalSrc.W, int32(src.w)-finalSrc.X)
	finalSrc.H = min(finalSrc.H, int32(src.h)-finalSrc.Y)
	return finalDst, LowerBlitScaled(src, finalSrc, dst, finalDst)
}

// LowerBlitScaled stretches srcRect of src onto dstRect of dst with
// nearest-neighbor sampling. Like LowerBlit it trusts both rectangles.
func LowerBlitScaled(src *Surface, srcRect rect.Rect, dst *Surface, dstRect rect.Rect) error {
	if err := valid(src); err != nil {
		return err
	}
	if err := valid(dst); err != nil {
		return err
	}
	if srcRect.W == dstRect.W && srcRect.H == dstRect.H {
		return LowerBlit(src, srcRect, dst, dstRect)
	}
	sw, sh := int64(srcRect.W), int64(srcRect.H)
	dw, dh := int64(dstRect.W), int64(dstRect.H)
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return nil
	}
	b := newBlitter(src, dst)
	for dy := range dh {
		sy := int(srcRect.Y) + int((2*dy+1)*sh/(2*dh))
		for dx := range dw {
			sx := int(srcRect.X) + int((2*dx+1)*sw/(2*dw))
			b.pixel(sx, sy, int(dstRect.X)+int(dx), int(dstRect.Y)+int(dy))
		}
	}
	dst.touch()
	return nil
}
