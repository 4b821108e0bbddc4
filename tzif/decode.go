// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package tzif

import (
	"errors"
	"fmt"

	"github.com/bpowers/tzdb/internal/ondisk"
)

const (
	// Magic is "TZif" read as a big-endian int32.
	Magic = 0x545A6966

	// HeaderSize is the size of the fixed TZif header.
	HeaderSize = 44

	countsOff = 32
	typeSize  = 4 + 1 + 1
)

var (
	ErrBadMagic  = errors.New("bad TZif magic")
	ErrTruncated = errors.New("truncated TZif record")
)

// truncated maps a cursor bounds failure to ErrTruncated, keeping the
// detail of which read failed.
func truncated(what string, err error) error {
	if errors.Is(err, ondisk.ErrOutOfBounds) {
		return fmt.Errorf("%w: %s: %w", ErrTruncated, what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// Parse decodes a record stored at the start of b.
func Parse(b []byte, id string) (*Record, error) {
	return Decode(ondisk.NewView(b), 0, id)
}

// Decode decodes the record starting at byte start of v.  v itself is never
// moved: decoding happens on a duplicate, so any number of goroutines can
// decode from the same view at once.
func Decode(v ondisk.View, start int32, id string) (*Record, error) {
	c := v.Duplicate()

	if err := c.Seek(int64(start)); err != nil {
		return nil, truncated("seek to record", err)
	}
	magic, err := c.ReadInt32()
	if err != nil {
		return nil, truncated("magic", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: %#08x at offset %d", ErrBadMagic, uint32(magic), start)
	}

	if err := c.Seek(int64(start) + countsOff); err != nil {
		return nil, truncated("seek to counts", err)
	}
	var counts [3]int32
	for i := range counts {
		if counts[i], err = c.ReadInt32(); err != nil {
			return nil, truncated("counts", err)
		}
	}
	transitionCount, typeCount, abbrevCount := counts[0], counts[1], counts[2]
	if transitionCount < 0 || typeCount < 0 || abbrevCount < 0 {
		return nil, fmt.Errorf("%w: negative count (T=%d N=%d C=%d)", ErrTruncated, transitionCount, typeCount, abbrevCount)
	}
	// fail before allocating anything if the counts can't fit
	need := int64(transitionCount)*5 + int64(typeCount)*typeSize + int64(abbrevCount)
	if remaining := int64(c.Len() - c.Pos()); need > remaining {
		return nil, fmt.Errorf("%w: need %d bytes after header, have %d", ErrTruncated, need, remaining)
	}

	r := &Record{
		ID:          id,
		Transitions: make([]int32, transitionCount),
		TypeIndices: make([]uint8, transitionCount),
		Types:       make([]Type, typeCount),
	}
	for i := range r.Transitions {
		if r.Transitions[i], err = c.ReadInt32(); err != nil {
			return nil, truncated("transitions", err)
		}
	}
	indices, err := c.ReadBytes(int(transitionCount))
	if err != nil {
		return nil, truncated("type indices", err)
	}
	copy(r.TypeIndices, indices)

	for i := range r.Types {
		off, err := c.ReadInt32()
		if err != nil {
			return nil, truncated("type offset", err)
		}
		isDST, err := c.ReadInt8()
		if err != nil {
			return nil, truncated("type isdst", err)
		}
		abbrevIndex, err := c.ReadUint8()
		if err != nil {
			return nil, truncated("type abbreviation index", err)
		}
		r.Types[i] = Type{Offset: off, IsDST: isDST != 0, AbbrevIndex: abbrevIndex}
	}

	abbrevs, err := c.ReadBytes(int(abbrevCount))
	if err != nil {
		return nil, truncated("abbreviations", err)
	}
	r.Abbrevs = append([]byte(nil), abbrevs...)

	return r, nil
}
