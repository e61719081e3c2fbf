package surface

import (
	"github.com/gogpu/surface/internal/engine"
	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

// Width returns the width in pixels.
func (r *Ref) Width() uint32 { return uint32(r.raw.Width()) }

// Height returns the height in pixels.
func (r *Ref) Height() uint32 { return uint32(r.raw.Height()) }

// Pitch returns the length of a row in bytes, padding included.
func (r *Ref) Pitch() uint32 { return uint32(r.raw.Pitch()) }

// Size returns the width and height.
func (r *Ref) Size() (width, height uint32) {
	return r.Width(), r.Height()
}

// Rect returns the bounds of the surface at the origin.
func (r *Ref) Rect() rect.Rect {
	return rect.Rect{W: int32(r.raw.Width()), H: int32(r.raw.Height())}
}

// PixelFormat returns the format descriptor.
func (r *Ref) PixelFormat() *pixels.PixelFormat { return r.raw.Format() }

// PixelFormatEnum returns the format enum.
func (r *Ref) PixelFormatEnum() pixels.PixelFormatEnum { return r.raw.Format().Enum() }

// MustLock reports whether the pixels can only be reached through
// WithLock or WithLockMut. This is the case while RLE acceleration is on.
func (r *Ref) MustLock() bool {
	return engine.MustLock(r.raw)
}

// WithLock locks the surface, passes its pixels to fn and unlocks again,
// also when fn returns an error or panics. The slice holds Pitch()*Height()
// bytes and must not be modified or retained after fn returns.
// Lock failure panics.
func (r *Ref) WithLock(fn func(pixels []byte) error) error {
	return r.withLock("surface.WithLock", fn)
}

// WithLockMut is WithLock for callbacks that write pixels. Derived data
// such as RLE runs is rebuilt when the lock is released.
func (r *Ref) WithLockMut(fn func(pixels []byte) error) error {
	return r.withLock("surface.WithLockMut", fn)
}

func (r *Ref) withLock(op string, fn func([]byte) error) error {
	must(op, engine.LockSurface(r.raw))
	defer engine.UnlockSurface(r.raw)
	return fn(r.raw.Pixels())
}

// WithoutLock returns the pixels when the surface does not need locking.
// The boolean is false, and the slice nil, when MustLock is true.
func (r *Ref) WithoutLock() ([]byte, bool) {
	if r.MustLock() {
		return nil, false
	}
	return r.raw.Pixels(), true
}

// WithoutLockMut is WithoutLock for callers that write pixels.
func (r *Ref) WithoutLockMut() ([]byte, bool) {
	return r.WithoutLock()
}
