package surface

import (
	"errors"
	"fmt"

	"github.com/gogpu/surface/internal/engine"
)

// Errors reported by the package. Engine failures are matched with
// errors.Is against the sentinels below.
var (
	// ErrTooLarge is returned when a width or height does not fit in 31 bits.
	ErrTooLarge = errors.New("Image is too large.") //nolint:staticcheck // message kept as callers see it

	// ErrPitchTooLarge is returned when a pitch does not fit in 31 bits.
	ErrPitchTooLarge = errors.New("Pitch is too large.") //nolint:staticcheck // message kept as callers see it

	ErrInvalidSurface       = engine.ErrInvalidSurface
	ErrNoColorKey           = engine.ErrNoColorKey
	ErrUnsupportedBlendMode = engine.ErrInvalidBlendMode
	ErrLocked               = engine.ErrLocked
	ErrOutOfMemory          = engine.ErrOutOfMemory
	ErrInvalidRect          = engine.ErrInvalidRect
	ErrInvalidFormat        = engine.ErrInvalidFormat
	ErrNotIndexed           = engine.ErrNotIndexed
	ErrNotBMP               = engine.ErrNotBMP
	ErrUnsupportedBMP       = engine.ErrUnsupportedBMP
)

// Error describes a failed surface operation.
type Error struct {
	// Op is the operation that failed (e.g. "surface.Blit").
	Op string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// must panics with a *Error when err is non-nil. It guards engine calls
// that can only fail on a released handle.
func must(op string, err error) {
	if err == nil {
		return
	}
	e := &Error{Op: op, Err: err}
	Logger().Warn("surface: invariant violated", "op", op, "err", err)
	panic(e)
}
