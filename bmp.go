package surface

import (
	"github.com/gogpu/surface/internal/engine"
	"github.com/gogpu/surface/rwops"
)

// LoadBMP decodes a Windows bitmap file.
func LoadBMP(path string, opts ...Option) (*Surface, error) {
	rw, err := rwops.FromFile(path, "rb")
	if err != nil {
		return nil, wrap("surface.LoadBMP", err)
	}
	defer func() {
		_ = rw.Close()
	}()
	return LoadBMPRW(rw, opts...)
}

// LoadBMPRW decodes a Windows bitmap from rw. The stream is read to its
// end and left open.
func LoadBMPRW(rw *rwops.RWops, opts ...Option) (*Surface, error) {
	const op = "surface.LoadBMPRW"
	raw, err := engine.LoadBMP(rw)
	if err != nil {
		return nil, wrap(op, err)
	}
	Logger().Debug("surface: bmp loaded", "source", rw.Name())
	return newOwned(op, raw, opts)
}

// SaveBMP writes the surface to path as a Windows bitmap, replacing any
// existing file.
//
// Bits per pixel survive a save and reload except for 16-bit formats:
// those without alpha (RGB565, RGB555 ...) are written as 24-bit and reload
// as BGR24, those with alpha (ARGB4444, ARGB1555 ...) are written as 32-bit
// and reload as ARGB8888.
func (r *Ref) SaveBMP(path string) error {
	rw, err := rwops.FromFile(path, "wb")
	if err != nil {
		return wrap("surface.SaveBMP", err)
	}
	if err := r.SaveBMPRW(rw); err != nil {
		_ = rw.Close()
		return err
	}
	return wrap("surface.SaveBMP", rw.Close())
}

// SaveBMPRW writes the surface to rw as a Windows bitmap. The stream is
// left open.
func (r *Ref) SaveBMPRW(rw *rwops.RWops) error {
	if err := engine.SaveBMP(r.raw, rw); err != nil {
		return wrap("surface.SaveBMPRW", err)
	}
	Logger().Debug("surface: bmp saved", "target", rw.Name())
	return nil
}
