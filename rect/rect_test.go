package rect

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	r, err := New(-3, 4, 10, 20)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if diff := cmp.Diff(Rect{X: -3, Y: 4, W: 10, H: 20}, r); diff != "" {
		t.Errorf("New() mismatch (-want +got):\n%s", diff)
	}

	for _, sz := range [][2]uint32{{1 << 31, 1}, {1, 1 << 31}, {^uint32(0), 5}} {
		if _, err := New(0, 0, sz[0], sz[1]); !errors.Is(err, ErrTooLarge) {
			t.Errorf("New(%d, %d) error = %v, want ErrTooLarge", sz[0], sz[1], err)
		}
	}
	if _, err := New(0, 0, MaxSize, MaxSize); err != nil {
		t.Errorf("New(MaxSize) error = %v", err)
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Rect
		want   Rect
		wantOK bool
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, Rect{5, 5, 5, 5}, true},
		{"contained", Rect{0, 0, 10, 10}, Rect{2, 3, 4, 5}, Rect{2, 3, 4, 5}, true},
		{"touching", Rect{0, 0, 10, 10}, Rect{10, 0, 5, 5}, Rect{10, 0, 0, 0}, false},
		{"disjoint", Rect{0, 0, 2, 2}, Rect{5, 5, 2, 2}, Rect{5, 5, 0, 0}, false},
		{"empty", Rect{0, 0, 0, 10}, Rect{0, 0, 10, 10}, Rect{0, 0, 0, 0}, false},
		{"negative origin", Rect{-5, -5, 10, 10}, Rect{0, 0, 100, 100}, Rect{0, 0, 5, 5}, true},
		{"max width", Rect{10, 0, math.MaxInt32, 5}, Rect{0, 0, 20, 20}, Rect{10, 0, 10, 5}, true},
		{"max height", Rect{0, 10, 5, math.MaxInt32}, Rect{0, 0, 20, 20}, Rect{0, 10, 5, 10}, true},
		{"both huge", Rect{1, 1, math.MaxInt32, math.MaxInt32}, Rect{math.MaxInt32 - 1, 0, 5, 5}, Rect{math.MaxInt32 - 1, 1, 5, 4}, true},
		{"min origin", Rect{math.MinInt32, math.MinInt32, math.MaxInt32, math.MaxInt32}, Rect{-3, -3, 5, 5}, Rect{-3, -3, 2, 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.wantOK {
				t.Errorf("Intersect() ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Intersect() mismatch (-want +got):\n%s", diff)
			}
			if tt.a.HasIntersection(tt.b) != tt.wantOK {
				t.Error("HasIntersection() disagrees with Intersect()")
			}
		})
	}
}

func TestUnion(t *testing.T) {
	got := Rect{0, 0, 2, 2}.Union(Rect{5, 6, 1, 1})
	if diff := cmp.Diff(Rect{0, 0, 6, 7}, got); diff != "" {
		t.Errorf("Union() mismatch (-want +got):\n%s", diff)
	}
	if got := (Rect{}).Union(Rect{1, 1, 1, 1}); got != (Rect{1, 1, 1, 1}) {
		t.Errorf("Union(empty) = %v", got)
	}
	wide := Rect{10, 0, math.MaxInt32, 5}.Union(Rect{-10, 0, 1, 1})
	if diff := cmp.Diff(Rect{-10, 0, math.MaxInt32, 5}, wide); diff != "" {
		t.Errorf("Union(wide) mismatch (-want +got):\n%s", diff)
	}
}

func TestEdgesSaturate(t *testing.T) {
	tests := []struct {
		name          string
		r             Rect
		right, bottom int32
	}{
		{"small", Rect{1, 2, 3, 4}, 4, 6},
		{"max size", Rect{10, 10, math.MaxInt32, math.MaxInt32}, math.MaxInt32, math.MaxInt32},
		{"negative", Rect{math.MinInt32, math.MinInt32, -1, -1}, math.MinInt32, math.MinInt32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Right(); got != tt.right {
				t.Errorf("Right() = %d, want %d", got, tt.right)
			}
			if got := tt.r.Bottom(); got != tt.bottom {
				t.Errorf("Bottom() = %d, want %d", got, tt.bottom)
			}
		})
	}
}

func TestContains(t *testing.T) {
	r := Rect{1, 1, 3, 3}
	if !r.Contains(1, 1) || !r.Contains(3, 3) {
		t.Error("Contains() false for inside points")
	}
	if r.Contains(4, 1) || r.Contains(0, 2) {
		t.Error("Contains() true for outside points")
	}
	if !r.ContainsRect(Rect{2, 2, 2, 2}) {
		t.Error("ContainsRect(inner) = false")
	}
	if r.ContainsRect(Rect{2, 2, 3, 3}) {
		t.Error("ContainsRect(overhanging) = true")
	}
	if r.ContainsRect(Rect{2, 2, math.MaxInt32, 1}) {
		t.Error("ContainsRect(max width) = true")
	}
	huge := Rect{10, 0, math.MaxInt32, 5}
	if !huge.Contains(math.MaxInt32, 4) || !huge.ContainsRect(Rect{1000, 1, 5, 2}) {
		t.Error("wide rect does not contain points past the int32 wrap")
	}
}

func TestImageConversion(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 5}
	if got := r.Image(); got != image.Rect(2, 3, 6, 8) {
		t.Errorf("Image() = %v", got)
	}
	if got := FromImage(image.Rect(6, 8, 2, 3)); got != r {
		t.Errorf("FromImage() = %v, want %v", got, r)
	}
}

func TestOptionalHelpers(t *testing.T) {
	def := Rect{0, 0, 9, 9}
	if got := Or(nil, def); got != def {
		t.Errorf("Or(nil) = %v", got)
	}
	p := Ptr(Rect{1, 2, 3, 4})
	if got := Or(p, def); got != *p {
		t.Errorf("Or(p) = %v", got)
	}
	if (Rect{0, 0, -1, 2}).Valid() {
		t.Error("Valid() = true for negative width")
	}
}
