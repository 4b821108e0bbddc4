// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package ondisk provides bounds-checked, big-endian read cursors over
// shared immutable bytes (usually a memory-mapped file).
package ondisk

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a seek or read would go past either end
// of the underlying bytes.
var ErrOutOfBounds = errors.New("read out of bounds")

// View is a read cursor over a byte slice.  Views are values: copying one
// (or calling Duplicate) never shares the cursor position, only the
// underlying bytes, which must not be mutated while any View refers to
// them.
type View struct {
	b   []byte
	pos int
}

// NewView returns a View over b positioned at 0.
func NewView(b []byte) View {
	return View{b: b}
}

// Duplicate returns an independent cursor over the same bytes, positioned
// at 0.
func (v View) Duplicate() View {
	return View{b: v.b}
}

// Len returns the length of the underlying bytes.
func (v *View) Len() int {
	return len(v.b)
}

// Pos returns the current cursor position.
func (v *View) Pos() int {
	return v.pos
}

// Seek moves the cursor to an absolute offset.  Seeking to exactly Len()
// is allowed; any following read fails.
func (v *View) Seek(off int64) error {
	if off < 0 || off > int64(len(v.b)) {
		return fmt.Errorf("seek to %d (len %d): %w", off, len(v.b), ErrOutOfBounds)
	}
	v.pos = int(off)
	return nil
}

// next returns the next n bytes and advances the cursor.
func (v *View) next(n int) ([]byte, error) {
	if n < 0 || n > len(v.b)-v.pos {
		return nil, fmt.Errorf("read %d bytes at %d (len %d): %w", n, v.pos, len(v.b), ErrOutOfBounds)
	}
	b := v.b[v.pos : v.pos+n]
	v.pos += n
	return b, nil
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func (v *View) ReadInt32() (int32, error) {
	b, err := v.next(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// ReadUint8 reads a single unsigned byte.
func (v *View) ReadUint8() (uint8, error) {
	b, err := v.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt8 reads a single signed byte.
func (v *View) ReadInt8() (int8, error) {
	b, err := v.ReadUint8()
	return int8(b), err
}

// ReadBytes returns the next n bytes.  The result aliases the underlying
// bytes; callers that need the data to outlive the mapping must copy it.
func (v *View) ReadBytes(n int) ([]byte, error) {
	return v.next(n)
}
