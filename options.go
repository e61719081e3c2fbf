package surface

import (
	"github.com/gogpu/surface/pixels"
)

// Option configures a Surface during creation.
//
// Example:
//
//	s, err := surface.New(64, 64, pixels.RGB888,
//	    surface.WithColorKey(pixels.RGB(255, 0, 255)),
//	    surface.WithRLE())
type Option func(*options)

type options struct {
	rle      bool
	colorKey *pixels.Color
	blend    *BlendMode
	palette  *pixels.Palette
}

// WithRLE enables RLE acceleration on the new surface.
func WithRLE() Option {
	return func(o *options) {
		o.rle = true
	}
}

// WithColorKey sets the transparent color of the new surface.
func WithColorKey(c pixels.Color) Option {
	return func(o *options) {
		o.colorKey = &c
	}
}

// WithBlendMode overrides the default blend mode, which is BlendBlend for
// formats with alpha and BlendNone otherwise.
func WithBlendMode(m BlendMode) Option {
	return func(o *options) {
		o.blend = &m
	}
}

// WithPalette installs p on a surface with an indexed format.
func WithPalette(p *pixels.Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

// apply runs the options against a freshly created surface. The palette
// goes first so a color key maps through it.
func (s *Surface) apply(opts []Option) error {
	if len(opts) == 0 {
		return nil
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.palette != nil {
		if err := s.SetPalette(o.palette); err != nil {
			return err
		}
	}
	if o.colorKey != nil {
		if err := s.SetColorKey(true, *o.colorKey); err != nil {
			return err
		}
	}
	if o.blend != nil {
		if err := s.SetBlendMode(*o.blend); err != nil {
			return err
		}
	}
	if o.rle {
		s.EnableRLE()
	}
	return nil
}
