package engine

import "errors"

// Engine errors. Messages are the descriptive texts surfaced to callers.
var (
	ErrInvalidSurface   = errors.New("invalid surface")
	ErrInvalidSize      = errors.New("surface size must be non-negative")
	ErrUnsupportedDepth = errors.New("unsupported pixel depth")
	ErrUnknownMasks     = errors.New("unknown pixel format masks")
	ErrOutOfMemory      = errors.New("out of memory")
	ErrPitchTooSmall    = errors.New("pitch is smaller than a row of pixels")
	ErrDataTooSmall     = errors.New("pixel buffer is too small")
	ErrNoColorKey       = errors.New("surface doesn't have a colorkey")
	ErrInvalidBlendMode = errors.New("invalid blend mode")
	ErrNotIndexed       = errors.New("surface format is not indexed")
	ErrPaletteTooLarge  = errors.New("palette has more colors than the format can index")
	ErrInvalidRect      = errors.New("invalid rectangle")
	ErrLocked           = errors.New("surfaces must not be locked during blit")
	ErrInvalidFormat    = errors.New("invalid pixel format")
	ErrInvalidPalette   = errors.New("invalid palette")
	ErrNotBMP           = errors.New("file is not a Windows BMP file")
	ErrUnsupportedBMP   = errors.New("unsupported BMP file")
)
