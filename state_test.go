package surface

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

func TestColorKey_Unset(t *testing.T) {
	s := newSurface(t, 2, 2, pixels.RGB888)
	_, err := s.ColorKey()
	if !errors.Is(err, ErrNoColorKey) {
		t.Fatalf("err = %v, want ErrNoColorKey", err)
	}
	if want := "surface.ColorKey: surface doesn't have a colorkey"; err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestColorKey_RoundTrip(t *testing.T) {
	s := newSurface(t, 2, 2, pixels.RGB888)
	c := pixels.RGB(12, 34, 56)
	if err := s.SetColorKey(true, c); err != nil {
		t.Fatal(err)
	}
	got, err := s.ColorKey()
	if err != nil || got != c {
		t.Errorf("ColorKey() = %v, %v; want %v", got, err, c)
	}
	if err := s.SetColorKey(false, c); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ColorKey(); !errors.Is(err, ErrNoColorKey) {
		t.Errorf("after disable: err = %v", err)
	}
}

func TestColorMod_RoundTrip(t *testing.T) {
	s := newSurface(t, 1, 1, pixels.RGB888)
	for v := range 256 {
		c := pixels.RGB(uint8(v), uint8(255-v), uint8(v/2))
		s.SetColorMod(c)
		if got := s.ColorMod(); got != c {
			t.Fatalf("ColorMod() = %v, want %v", got, c)
		}
	}
	// Alpha of the argument is ignored.
	s.SetColorMod(pixels.RGBA(1, 2, 3, 4))
	if got := s.ColorMod(); got != pixels.RGB(1, 2, 3) {
		t.Errorf("ColorMod() = %v", got)
	}
}

func TestAlphaMod_RoundTrip(t *testing.T) {
	s := newSurface(t, 1, 1, pixels.ARGB8888)
	for v := range 256 {
		s.SetAlphaMod(uint8(v))
		if got := s.AlphaMod(); got != uint8(v) {
			t.Fatalf("AlphaMod() = %d, want %d", got, v)
		}
	}
}

func TestBlendMode_RoundTrip(t *testing.T) {
	s := newSurface(t, 1, 1, pixels.ARGB8888)
	if s.BlendMode() != BlendBlend {
		t.Errorf("default = %v, want blend", s.BlendMode())
	}
	for _, m := range []BlendMode{BlendNone, BlendBlend, BlendAdd, BlendMod} {
		if err := s.SetBlendMode(m); err != nil {
			t.Fatalf("SetBlendMode(%v): %v", m, err)
		}
		if got := s.BlendMode(); got != m {
			t.Errorf("BlendMode() = %v, want %v", got, m)
		}
	}
}

func TestSetBlendMode_Unsupported(t *testing.T) {
	s := newSurface(t, 1, 1, pixels.ARGB8888)
	err := s.SetBlendMode(BlendMode(3))
	if !errors.Is(err, ErrUnsupportedBlendMode) {
		t.Fatalf("err = %v", err)
	}
	if s.BlendMode() != BlendBlend {
		t.Error("failed SetBlendMode changed the mode")
	}
}

func TestBlendMode_String(t *testing.T) {
	tests := map[BlendMode]string{
		BlendNone:    "none",
		BlendBlend:   "blend",
		BlendAdd:     "add",
		BlendMod:     "mod",
		BlendMode(9): "unknown",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(m), got, want)
		}
	}
}

func TestClipRect(t *testing.T) {
	s := newSurface(t, 10, 10, pixels.RGB888)
	if !s.SetClipRect(&rect.Rect{X: -5, Y: 2, W: 10, H: 3}) {
		t.Fatal("SetClipRect reported empty")
	}
	if got := s.ClipRect(); got == nil || *got != (rect.Rect{X: 0, Y: 2, W: 5, H: 3}) {
		t.Errorf("ClipRect() = %v", got)
	}
	if s.SetClipRect(&rect.Rect{X: 50, Y: 50, W: 1, H: 1}) {
		t.Error("disjoint clip reported non-empty")
	}
	if s.ClipRect() != nil {
		t.Errorf("empty clip = %v, want nil", s.ClipRect())
	}
	if !s.SetClipRect(nil) {
		t.Error("nil clip reported empty")
	}
	if got := s.ClipRect(); got == nil || *got != s.Rect() {
		t.Errorf("reset clip = %v", got)
	}
}

func TestClipRect_Huge(t *testing.T) {
	tests := []struct {
		name string
		clip rect.Rect
		want rect.Rect
	}{
		{"max width", rect.Rect{X: 10, W: math.MaxInt32, H: 5}, rect.Rect{X: 10, W: 10, H: 5}},
		{"max height", rect.Rect{Y: 10, W: 5, H: math.MaxInt32}, rect.Rect{Y: 10, W: 5, H: 10}},
		{"min origin", rect.Rect{X: math.MinInt32, Y: -1, W: math.MaxInt32, H: 3}, rect.Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSurface(t, 20, 20, pixels.RGB888)
			ok := s.SetClipRect(&tt.clip)
			if ok != !tt.want.Empty() {
				t.Fatalf("SetClipRect() = %v", ok)
			}
			got := s.ClipRect()
			if tt.want.Empty() {
				if got != nil {
					t.Errorf("ClipRect() = %v, want nil", got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("ClipRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetPalette(t *testing.T) {
	s := newSurface(t, 1, 1, pixels.Index8)
	pal, _ := pixels.PaletteFromColors([]pixels.Color{pixels.RGB(7, 8, 9)})
	if err := s.SetPalette(pal); err != nil {
		t.Fatal(err)
	}
	if got := pixels.FromColor(s.At(0, 0)); got != pixels.RGB(7, 8, 9) {
		t.Errorf("At(0, 0) = %v", got)
	}

	rgb := newSurface(t, 1, 1, pixels.RGB888)
	if err := rgb.SetPalette(pal); !errors.Is(err, ErrNotIndexed) {
		t.Errorf("err = %v, want ErrNotIndexed", err)
	}
}
