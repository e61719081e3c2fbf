package surface

import (
	"github.com/gogpu/surface/internal/engine"
	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

// FillRect paints r with c. A nil r paints the whole surface. The area is
// clipped to the clip rectangle.
func (r *Ref) FillRect(area *rect.Rect, c pixels.Color) error {
	return wrap("surface.FillRect", engine.FillRect(r.raw, area, c.ToU32(r.raw.Format())))
}

// FillRects paints every rectangle with c in order. It stops at the first
// failure and returns it; rectangles after the failing one stay unpainted.
func (r *Ref) FillRects(areas []rect.Rect, c pixels.Color) error {
	return wrap("surface.FillRects", engine.FillRects(r.raw, areas, c.ToU32(r.raw.Format())))
}
