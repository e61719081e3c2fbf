package engine

import (
	"fmt"

	"github.com/gogpu/surface/rect"
)

// FillRect fills r, clipped to the clip rectangle of dst, with a raw pixel
// value. A nil r fills the whole clip rectangle.
func FillRect(dst *Surface, r *rect.Rect, color uint32) error {
	if err := valid(dst); err != nil {
		return err
	}
	area := dst.clip
	if r != nil {
		if r.W < 0 || r.H < 0 {
			return fmt.Errorf("%w: %v", ErrInvalidRect, *r)
		}
		var ok bool
		if area, ok = r.Intersect(dst.clip); !ok {
			return nil
		}
	}
	fillArea(dst, area, color)
	dst.touch()
	return nil
}

// FillRects fills every rectangle in order and stops at the first failure.
func FillRects(dst *Surface, rects []rect.Rect, color uint32) error {
	if err := valid(dst); err != nil {
		return err
	}
	for i := range rects {
		if err := FillRect(dst, &rects[i], color); err != nil {
			return fmt.Errorf("rect %d: %w", i, err)
		}
	}
	return nil
}

func fillArea(dst *Surface, area rect.Rect, color uint32) {
	if area.Empty() {
		return
	}
	bpp := dst.format.BytesPerPixel()
	w := int(area.W)
	for y := int(area.Y); y < int(area.Bottom()); y++ {
		off := dst.offset(int(area.X), y)
		fillPattern(dst.pixels[off:off+w*bpp], bpp, color, w)
	}
}
