package pixels

import (
	"errors"
	"fmt"
)

// MaxPaletteColors is the largest palette an 8-bit indexed format can use.
const MaxPaletteColors = 256

// Palette errors.
var (
	ErrPaletteSize  = errors.New("palette size must be between 1 and 256 colors")
	ErrPaletteRange = errors.New("palette range out of bounds")
)

// Palette is a shared, mutable color table for indexed formats.
// Formats referencing the same palette observe SetColors immediately.
type Palette struct {
	colors  []Color
	version uint32
}

// NewPalette creates a palette of n white entries.
func NewPalette(n int) (*Palette, error) {
	if n < 1 || n > MaxPaletteColors {
		return nil, fmt.Errorf("%w: %d", ErrPaletteSize, n)
	}
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = RGB(255, 255, 255)
	}
	return &Palette{colors: colors, version: 1}, nil
}

// PaletteFromColors creates a palette holding a copy of colors.
func PaletteFromColors(colors []Color) (*Palette, error) {
	p, err := NewPalette(len(colors))
	if err != nil {
		return nil, err
	}
	copy(p.colors, colors)
	return p, nil
}

// Len returns the number of entries.
func (p *Palette) Len() int { return len(p.colors) }

// At returns entry i.
func (p *Palette) At(i int) Color { return p.colors[i] }

// Colors returns a copy of the entries.
func (p *Palette) Colors() []Color {
	out := make([]Color, len(p.colors))
	copy(out, p.colors)
	return out
}

// Version increases on every SetColors call.
func (p *Palette) Version() uint32 { return p.version }

// SetColors overwrites entries starting at first.
func (p *Palette) SetColors(first int, colors []Color) error {
	if first < 0 || first+len(colors) > len(p.colors) {
		return fmt.Errorf("%w: [%d, %d) of %d", ErrPaletteRange, first, first+len(colors), len(p.colors))
	}
	copy(p.colors[first:], colors)
	p.version++
	return nil
}

// Closest returns the index of the entry nearest to c, comparing all four
// channels by squared distance. Exact matches win immediately.
func (p *Palette) Closest(c Color) int {
	best, bestDist := 0, int(^uint(0)>>1)
	for i, e := range p.colors {
		dr := int(e.R) - int(c.R)
		dg := int(e.G) - int(c.G)
		db := int(e.B) - int(c.B)
		da := int(e.A) - int(c.A)
		d := dr*dr + dg*dg + db*db + da*da
		if d == 0 {
			return i
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
