// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

func colorAt(s *Surface, x, y int) pixels.Color {
	return pixels.ColorFromU32(s.Format(), s.PixelAt(x, y))
}

func TestUpperBlit_Clipping(t *testing.T) {
	tests := []struct {
		name    string
		srcRect *rect.Rect
		dstRect *rect.Rect
		clip    *rect.Rect
		want    rect.Rect
	}{
		{"whole", nil, nil, nil, rect.Rect{W: 4, H: 4}},
		{"offset", nil, &rect.Rect{X: 6, Y: 7, W: 100, H: 100}, nil, rect.Rect{X: 6, Y: 7, W: 2, H: 1}},
		{"negative dst", nil, &rect.Rect{X: -1, Y: -3}, nil, rect.Rect{X: 0, Y: 0, W: 3, H: 1}},
		{"negative src", &rect.Rect{X: -2, Y: 0, W: 4, H: 4}, &rect.Rect{X: 1, Y: 1}, nil, rect.Rect{X: 3, Y: 1, W: 2, H: 4}},
		{"src beyond edge", &rect.Rect{X: 3, Y: 3, W: 5, H: 5}, nil, nil, rect.Rect{W: 1, H: 1}},
		{"clip", nil, nil, &rect.Rect{X: 1, Y: 2, W: 2, H: 5}, rect.Rect{X: 1, Y: 2, W: 2, H: 2}},
		{"disjoint", nil, &rect.Rect{X: 8, Y: 0}, nil, rect.Rect{X: 8, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestSurface(t, 4, 4, pixels.RGB888)
			dst := newTestSurface(t, 8, 8, pixels.RGB888)
			if err := FillRect(src, nil, 0xFF0000); err != nil {
				t.Fatal(err)
			}
			SetClipRect(dst, tt.clip)
			got, err := UpperBlit(src, tt.srcRect, dst, tt.dstRect)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("result rect mismatch (-want +got):\n%s", diff)
			}
			if n := countPixels(dst, 0xFF0000); n != int(got.W*got.H) {
				t.Errorf("wrote %d pixels, want %d", n, got.W*got.H)
			}
		})
	}
}

func TestUpperBlit_Locked(t *testing.T) {
	src := newTestSurface(t, 2, 2, pixels.RGB888)
	dst := newTestSurface(t, 2, 2, pixels.RGB888)
	if err := LockSurface(dst); err != nil {
		t.Fatal(err)
	}
	if _, err := UpperBlit(src, nil, dst, nil); !errors.Is(err, ErrLocked) {
		t.Errorf("UpperBlit: err = %v, want ErrLocked", err)
	}
	if _, err := UpperBlitScaled(src, nil, dst, nil); !errors.Is(err, ErrLocked) {
		t.Errorf("UpperBlitScaled: err = %v, want ErrLocked", err)
	}
	UnlockSurface(dst)
	if _, err := UpperBlit(src, nil, dst, nil); err != nil {
		t.Errorf("after unlock: %v", err)
	}
}

func TestBlit_ColorKey(t *testing.T) {
	for _, rle := range []bool{false, true} {
		src := newTestSurface(t, 3, 1, pixels.RGB888)
		dst := newTestSurface(t, 3, 1, pixels.RGB888)
		_ = FillRect(src, nil, 0x00FF00)
		_ = FillRect(src, &rect.Rect{X: 1, W: 1, H: 1}, 0xFF00FF)
		_ = FillRect(dst, nil, 0x0000FF)
		if err := SetColorKey(src, true, 0xFF00FF); err != nil {
			t.Fatal(err)
		}
		if err := SetSurfaceRLE(src, rle); err != nil {
			t.Fatal(err)
		}
		if _, err := UpperBlit(src, nil, dst, nil); err != nil {
			t.Fatal(err)
		}
		want := []uint32{0x00FF00, 0x0000FF, 0x00FF00}
		for x, w := range want {
			if got := dst.PixelAt(x, 0); got != w {
				t.Errorf("rle=%v: pixel %d = %#x, want %#x", rle, x, got, w)
			}
		}
	}
}

func TestBlit_BlendModes(t *testing.T) {
	tests := []struct {
		mode BlendMode
		want pixels.Color
	}{
		{BlendNone, pixels.RGBA(255, 0, 0, 128)},
		{BlendBlend, pixels.RGBA(128, 0, 127, 255)},
		{BlendAdd, pixels.RGBA(128, 0, 255, 255)},
		{BlendMod, pixels.RGBA(0, 0, 0, 255)},
	}
	for _, tt := range tests {
		src := newTestSurface(t, 1, 1, pixels.ARGB8888)
		dst := newTestSurface(t, 1, 1, pixels.ARGB8888)
		_ = FillRect(src, nil, pixels.RGBA(255, 0, 0, 128).ToU32(src.Format()))
		_ = FillRect(dst, nil, pixels.RGBA(0, 0, 255, 255).ToU32(dst.Format()))
		if err := SetSurfaceBlendMode(src, tt.mode); err != nil {
			t.Fatal(err)
		}
		if _, err := UpperBlit(src, nil, dst, nil); err != nil {
			t.Fatal(err)
		}
		if got := colorAt(dst, 0, 0); got != tt.want {
			t.Errorf("mode %d: got %+v, want %+v", tt.mode, got, tt.want)
		}
	}
}

func TestBlit_Modulation(t *testing.T) {
	src := newTestSurface(t, 1, 1, pixels.RGB888)
	dst := newTestSurface(t, 1, 1, pixels.RGB888)
	_ = FillRect(src, nil, 0xFFFFFF)
	if err := SetSurfaceColorMod(src, 255, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := SetSurfaceAlphaMod(src, 255); err != nil {
		t.Fatal(err)
	}
	if _, err := UpperBlit(src, nil, dst, nil); err != nil {
		t.Fatal(err)
	}
	if got := dst.PixelAt(0, 0); got != 0xFF0000 {
		t.Errorf("color mod: got %#x, want 0xff0000", got)
	}

	// Alpha modulation of an opaque source with blending.
	_ = SetSurfaceColorMod(src, 255, 255, 255)
	_ = SetSurfaceAlphaMod(src, 0)
	_ = SetSurfaceBlendMode(src, BlendBlend)
	_ = FillRect(dst, nil, 0x000080)
	if _, err := UpperBlit(src, nil, dst, nil); err != nil {
		t.Fatal(err)
	}
	if got := dst.PixelAt(0, 0); got != 0x000080 {
		t.Errorf("alpha mod 0: got %#x, want dst unchanged", got)
	}
}

func TestBlit_ConvertsFormats(t *testing.T) {
	src := newTestSurface(t, 2, 1, pixels.RGB565)
	dst := newTestSurface(t, 2, 1, pixels.ABGR8888)
	_ = FillRect(src, nil, pixels.RGB(255, 0, 255).ToU32(src.Format()))
	if _, err := UpperBlit(src, nil, dst, nil); err != nil {
		t.Fatal(err)
	}
	if got := colorAt(dst, 1, 0); got != pixels.RGB(255, 0, 255) {
		t.Errorf("got %+v", got)
	}
}

func TestBlit_SelfOverlap(t *testing.T) {
	s := newTestSurface(t, 4, 1, pixels.Index8)
	for x := range 4 {
		_ = FillRect(s, &rect.Rect{X: int32(x), W: 1, H: 1}, uint32(x+1))
	}
	if _, err := UpperBlit(s, &rect.Rect{W: 3, H: 1}, s, &rect.Rect{X: 1}); err != nil {
		t.Fatal(err)
	}
	want := []uint32{1, 1, 2, 3}
	for x, w := range want {
		if got := s.PixelAt(x, 0); got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
}

func TestUpperBlitScaled(t *testing.T) {
	src := newTestSurface(t, 2, 2, pixels.RGB888)
	_ = FillRect(src, &rect.Rect{W: 1, H: 1}, 0x000001)
	_ = FillRect(src, &rect.Rect{X: 1, W: 1, H: 1}, 0x000002)
	_ = FillRect(src, &rect.Rect{Y: 1, W: 1, H: 1}, 0x000003)
	_ = FillRect(src, &rect.Rect{X: 1, Y: 1, W: 1, H: 1}, 0x000004)

	dst := newTestSurface(t, 4, 4, pixels.RGB888)
	got, err := UpperBlitScaled(src, nil, dst, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != (rect.Rect{W: 4, H: 4}) {
		t.Errorf("rect = %v", got)
	}
	want := [4][4]uint32{
		{1, 1, 2, 2},
		{1, 1, 2, 2},
		{3, 3, 4, 4},
		{3, 3, 4, 4},
	}
	for y := range 4 {
		for x := range 4 {
			if v := dst.PixelAt(x, y); v != want[y][x] {
				t.Errorf("(%d, %d) = %d, want %d", x, y, v, want[y][x])
			}
		}
	}
}

func TestUpperBlitScaled_Clipped(t *testing.T) {
	src := newTestSurface(t, 2, 2, pixels.RGB888)
	_ = FillRect(src, nil, 0xABCDEF)
	dst := newTestSurface(t, 4, 4, pixels.RGB888)

	got, err := UpperBlitScaled(src, nil, dst, &rect.Rect{X: 2, Y: 2, W: 4, H: 4})
	if err != nil {
		t.Fatal(err)
	}
	if got != (rect.Rect{X: 2, Y: 2, W: 2, H: 2}) {
		t.Errorf("rect = %v, want {2 2 2 2}", got)
	}
	if n := countPixels(dst, 0xABCDEF); n != 4 {
		t.Errorf("wrote %d pixels, want 4", n)
	}
}

func TestUpperBlitScaled_ZeroSize(t *testing.T) {
	src := newTestSurface(t, 2, 2, pixels.RGB888)
	dst := newTestSurface(t, 4, 4, pixels.RGB888)
	got, err := UpperBlitScaled(src, &rect.Rect{W: 0, H: 2}, dst, &rect.Rect{X: 1, Y: 1, W: 3, H: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Empty() {
		t.Errorf("rect = %v, want empty", got)
	}
}

func TestLowerBlit_Unclipped(t *testing.T) {
	src := newTestSurface(t, 2, 2, pixels.RGB888)
	dst := newTestSurface(t, 4, 4, pixels.RGB888)
	_ = FillRect(src, nil, 0x111111)
	SetClipRect(dst, &rect.Rect{W: 1, H: 1})
	if err := LowerBlit(src, rect.Rect{W: 2, H: 2}, dst, rect.Rect{X: 2, Y: 2, W: 2, H: 2}); err != nil {
		t.Fatal(err)
	}
	if got := dst.PixelAt(3, 3); got != 0x111111 {
		t.Errorf("LowerBlit honored the clip rect: %#x", got)
	}
}
