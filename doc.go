// Package surface provides in-memory pixel buffers and the operations that
// copy pixels between them.
//
// # Overview
//
// A [Surface] owns a pixel buffer of a given [pixels.PixelFormatEnum],
// size and row pitch. A [Ref] is a borrowed view of the same buffer: it has
// every read and write operation of a Surface but cannot release it.
// Surface embeds *Ref, so both can be passed anywhere a [MutableHandle] is
// expected.
//
// # Quick Start
//
//	import "github.com/gogpu/surface"
//
//	s, err := surface.New(320, 240, pixels.RGB888)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	_ = s.FillRect(nil, pixels.RGB(0, 0, 64))
//	_ = s.FillRect(rect.Ptr(rect.MustNew(10, 10, 100, 50)), pixels.RGB(255, 200, 0))
//	return s.SaveBMP("out.bmp")
//
// # Pixel access
//
// Surfaces with RLE acceleration must be locked before their bytes are
// touched. [Ref.WithLock] and [Ref.WithLockMut] lock, run a callback and
// unlock on every exit path. [Ref.WithoutLock] hands out the bytes
// directly when [Ref.MustLock] is false.
//
// # Errors
//
// Operations that can fail for reasons under the caller's control return a
// *[Error]. Operations whose only failure is a released handle panic with
// a *[Error] instead.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to route its debug and
// warning records to a [log/slog.Logger].
package surface
