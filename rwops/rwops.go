// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package rwops provides RWops, a generic stream handle used for loading
// and saving surfaces. An RWops wraps whatever subset of reading, writing,
// seeking and closing its source supports.
package rwops

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stream errors.
var (
	ErrNotReadable = errors.New("rwops: stream is not readable")
	ErrNotWritable = errors.New("rwops: stream is not writable")
	ErrNotSeekable = errors.New("rwops: stream is not seekable")
	ErrClosed      = errors.New("rwops: stream is closed")
	ErrInvalidMode = errors.New("rwops: invalid file mode")
)

// RWops is a read/write/seek stream handle.
// It is not safe for concurrent use.
type RWops struct {
	name   string
	r      io.Reader
	w      io.Writer
	s      io.Seeker
	c      io.Closer
	closed bool
}

var fileModes = map[string]int{
	"r":   os.O_RDONLY,
	"rb":  os.O_RDONLY,
	"w":   os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
	"wb":  os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
	"a":   os.O_WRONLY | os.O_CREATE | os.O_APPEND,
	"ab":  os.O_WRONLY | os.O_CREATE | os.O_APPEND,
	"r+":  os.O_RDWR,
	"r+b": os.O_RDWR,
	"rb+": os.O_RDWR,
	"w+":  os.O_RDWR | os.O_CREATE | os.O_TRUNC,
	"w+b": os.O_RDWR | os.O_CREATE | os.O_TRUNC,
	"wb+": os.O_RDWR | os.O_CREATE | os.O_TRUNC,
}

// FromFile opens path with an fopen-style mode ("rb", "wb", "ab", "r+b",
// "w+b" and their text/alias spellings).
func FromFile(path, mode string) (*RWops, error) {
	flag, ok := fileModes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	f, err := os.OpenFile(filepath.Clean(path), flag, 0o644) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("rwops: open file: %w", err)
	}

	rw := &RWops{name: path, s: f, c: f}
	if flag&(os.O_WRONLY) == 0 {
		rw.r = f
	}
	if flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		rw.w = f
	}
	return rw, nil
}

// FromBytes creates a read-only, seekable stream over b.
func FromBytes(b []byte) *RWops {
	br := bytes.NewReader(b)
	return &RWops{name: "bytes", r: br, s: br}
}

// FromBuffer creates a stream that writes to and reads from buf.
// It cannot seek.
func FromBuffer(buf *bytes.Buffer) *RWops {
	return &RWops{name: "buffer", r: buf, w: buf}
}

// FromReader wraps r. Seeking and closing are available when r supports
// them.
func FromReader(r io.Reader) *RWops {
	rw := &RWops{name: "reader", r: r}
	if s, ok := r.(io.Seeker); ok {
		rw.s = s
	}
	if c, ok := r.(io.Closer); ok {
		rw.c = c
	}
	return rw
}

// FromWriter wraps w. Seeking and closing are available when w supports
// them.
func FromWriter(w io.Writer) *RWops {
	rw := &RWops{name: "writer", w: w}
	if s, ok := w.(io.Seeker); ok {
		rw.s = s
	}
	if c, ok := w.(io.Closer); ok {
		rw.c = c
	}
	return rw
}

// Name describes the stream origin, used in error messages.
func (rw *RWops) Name() string { return rw.name }

// CanRead reports whether Read is supported.
func (rw *RWops) CanRead() bool { return rw.r != nil }

// CanWrite reports whether Write is supported.
func (rw *RWops) CanWrite() bool { return rw.w != nil }

// CanSeek reports whether Seek is supported.
func (rw *RWops) CanSeek() bool { return rw.s != nil }

// Read implements io.Reader.
func (rw *RWops) Read(p []byte) (int, error) {
	if rw.closed {
		return 0, ErrClosed
	}
	if rw.r == nil {
		return 0, ErrNotReadable
	}
	return rw.r.Read(p)
}

// Write implements io.Writer.
func (rw *RWops) Write(p []byte) (int, error) {
	if rw.closed {
		return 0, ErrClosed
	}
	if rw.w == nil {
		return 0, ErrNotWritable
	}
	return rw.w.Write(p)
}

// Seek implements io.Seeker.
func (rw *RWops) Seek(offset int64, whence int) (int64, error) {
	if rw.closed {
		return 0, ErrClosed
	}
	if rw.s == nil {
		return 0, ErrNotSeekable
	}
	return rw.s.Seek(offset, whence)
}

// Tell returns the current position.
func (rw *RWops) Tell() (int64, error) {
	return rw.Seek(0, io.SeekCurrent)
}

// Size returns the total stream size, restoring the current position.
func (rw *RWops) Size() (int64, error) {
	cur, err := rw.Tell()
	if err != nil {
		return 0, err
	}
	end, err := rw.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := rw.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

// Close releases the underlying resource, if any. Close is idempotent.
func (rw *RWops) Close() error {
	if rw.closed {
		return nil
	}
	rw.closed = true
	if rw.c == nil {
		return nil
	}
	return rw.c.Close()
}
