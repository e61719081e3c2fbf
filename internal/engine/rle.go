// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

// rleRun is one segment of a row: skip transparent pixels, then n opaque
// pixels follow.
type rleRun struct {
	skip int
	n    int
}

// rleData holds the run structure of every row. Blits from an encoded
// surface only visit the opaque runs.
type rleData struct {
	rows   [][]rleRun
	opaque int
}

// transparentFunc reports whether a raw pixel value is skipped by blits.
func (s *Surface) transparentFunc() func(v uint32) bool {
	if s.info&copyColorKey != 0 {
		key := s.colorKey
		return func(v uint32) bool { return v == key }
	}
	if s.format.HasAlpha() {
		amask := s.format.Masks().AMask
		return func(v uint32) bool { return v&amask == 0 }
	}
	return nil
}

func encodeRLE(s *Surface) *rleData {
	d := &rleData{rows: make([][]rleRun, s.h)}
	bpp := s.format.BytesPerPixel()
	transparent := s.transparentFunc()

	for y := range s.h {
		row := s.pixels[y*s.pitch:]
		var runs []rleRun
		x := 0
		for x < s.w {
			skip := 0
			for x < s.w && transparent != nil && transparent(LoadPixel(row[x*bpp:], bpp)) {
				skip++
				x++
			}
			n := 0
			for x < s.w && (transparent == nil || !transparent(LoadPixel(row[x*bpp:], bpp))) {
				n++
				x++
			}
			runs = append(runs, rleRun{skip: skip, n: n})
			d.opaque += n
		}
		d.rows[y] = runs
	}
	return d
}

// spans calls fn for every opaque span of row y that intersects [x0, x1),
// clipped to that range.
func (d *rleData) spans(y, x0, x1 int, fn func(start, end int)) {
	x := 0
	for _, r := range d.rows[y] {
		x += r.skip
		start, end := max(x, x0), min(x+r.n, x1)
		if start < end {
			fn(start, end)
		}
		x += r.n
		if x >= x1 {
			return
		}
	}
}

// OpaquePixels returns the number of pixels in opaque runs, or -1 when the
// surface is not RLE encoded.
func OpaquePixels(s *Surface) int {
	if s == nil || s.rle == nil {
		return -1
	}
	return s.rle.opaque
}
