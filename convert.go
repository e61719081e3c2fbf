package surface

import (
	"github.com/gogpu/surface/internal/engine"
	"github.com/gogpu/surface/pixels"
)

// Convert copies the surface into a new surface of format pf. Color key,
// color and alpha modulation, clip rectangle and RLE acceleration carry
// over. The caller owns the result.
func (r *Ref) Convert(pf *pixels.PixelFormat) (*Surface, error) {
	const op = "surface.Convert"
	raw, err := engine.ConvertSurface(r.raw, pf)
	if err != nil {
		return nil, wrap(op, err)
	}
	return newOwned(op, raw, nil)
}

// ConvertFormat is Convert with a format enum. Indexed targets get a copy
// of the source palette when the source is indexed, or a default one.
func (r *Ref) ConvertFormat(format pixels.PixelFormatEnum) (*Surface, error) {
	pf, err := pixels.NewPixelFormat(format)
	if err != nil {
		return nil, wrap("surface.ConvertFormat", err)
	}
	return r.Convert(pf)
}
