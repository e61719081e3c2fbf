// Package rect provides integer rectangles in pixel coordinates.
//
// Optional rectangles are passed as *Rect; nil stands for "the whole
// surface" (or "no clipping" where a clip rectangle is expected).
package rect

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// MaxSize is the largest width or height a Rect can hold.
const MaxSize = 1<<31 - 1

// ErrTooLarge is returned when a width or height exceeds MaxSize.
var ErrTooLarge = errors.New("rect: size is too large")

// Rect is an axis-aligned rectangle. W and H are signed so that invalid
// rectangles can be represented and rejected by consumers; constructors
// never produce negative sizes.
type Rect struct {
	X, Y int32
	W, H int32
}

// New creates a rectangle, rejecting sizes that do not fit in 31 bits.
func New(x, y int32, w, h uint32) (Rect, error) {
	if w > MaxSize || h > MaxSize {
		return Rect{}, fmt.Errorf("%w: %dx%d", ErrTooLarge, w, h)
	}
	return Rect{X: x, Y: y, W: int32(w), H: int32(h)}, nil
}

// MustNew is like New but panics on error. Intended for literals in tests
// and examples.
func MustNew(x, y int32, w, h uint32) Rect {
	r, err := New(x, y, w, h)
	if err != nil {
		panic(err)
	}
	return r
}

// FromImage converts an image.Rectangle.
func FromImage(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: int32(r.Min.X), Y: int32(r.Min.Y), W: int32(r.Dx()), H: int32(r.Dy())}
}

// Image converts the rectangle to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.W), int(r.Y)+int(r.H))
}

// Valid reports whether both sizes are non-negative.
func (r Rect) Valid() bool {
	return r.W >= 0 && r.H >= 0
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Right returns the exclusive right edge, saturated to the int32 range.
func (r Rect) Right() int32 { return clamp32(r.right()) }

// Bottom returns the exclusive bottom edge, saturated to the int32 range.
func (r Rect) Bottom() int32 { return clamp32(r.bottom()) }

func (r Rect) right() int64 { return int64(r.X) + int64(r.W) }
func (r Rect) bottom() int64 { return int64(r.Y) + int64(r.H) }

func clamp32(v int64) int32 {
	return int32(min(max(v, math.MinInt32), math.MaxInt32))
}

// Area returns W*H, or 0 for empty rectangles.
func (r Rect) Area() int64 {
	if r.Empty() {
		return 0
	}
	return int64(r.W) * int64(r.H)
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && int64(x) < r.right() && y >= r.Y && int64(y) < r.bottom()
}

// ContainsRect reports whether o lies completely inside r.
// An empty o is contained in any non-empty r.
func (r Rect) ContainsRect(o Rect) bool {
	if r.Empty() {
		return false
	}
	if o.Empty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.right() <= r.right() && o.bottom() <= r.bottom()
}

// Intersect returns the overlap of r and o. The boolean is false, and the
// returned size zero, when they do not overlap.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	if r.Empty() || o.Empty() {
		return Rect{X: r.X, Y: r.Y}, false
	}
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.right(), o.right()), min(r.bottom(), o.bottom())
	if x1 <= int64(x0) || y1 <= int64(y0) {
		return Rect{X: x0, Y: y0}, false
	}
	return Rect{X: x0, Y: y0, W: int32(x1 - int64(x0)), H: int32(y1 - int64(y0))}, true
}

// HasIntersection reports whether r and o overlap.
func (r Rect) HasIntersection(o Rect) bool {
	_, ok := r.Intersect(o)
	return ok
}

// Union returns the smallest rectangle containing both. Sizes that do not
// fit in int32 are saturated to math.MaxInt32.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.right(), o.right()), max(r.bottom(), o.bottom())
	return Rect{X: x0, Y: y0, W: clamp32(x1 - int64(x0)), H: clamp32(y1 - int64(y0))}
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy int32) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Ptr returns a pointer to a copy of r, for use as an optional argument.
func Ptr(r Rect) *Rect {
	return &r
}

// Or returns *r, or def when r is nil.
func Or(r *Rect, def Rect) Rect {
	if r == nil {
		return def
	}
	return *r
}
