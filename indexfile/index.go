// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package indexfile reads and writes the tzdb index: a flat sequence of
// fixed-size entries mapping zone ids to record offsets in the data file.
//
// Each entry is 52 bytes:
//
//	 0                                        40     44     48     52
//	+----------------------------------------+------+------+------+
//	| id, ASCII, NUL padded                  | off  | len  | raw  |
//	+----------------------------------------+------+------+------+
//
// off, len and raw are big-endian int32s: the record's byte offset in the
// data file, its length (at least the 44-byte TZif header) and the zone's
// raw (standard) UTC offset in seconds.  Entries are sorted by id.
package indexfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/bpowers/tzdb/internal/unsafestring"
)

const (
	IDSize    = 40
	EntrySize = IDSize + 4 + 4 + 4

	// MinRecordLen is the size of a TZif header; no record can be shorter.
	MinRecordLen = 44
)

var (
	ErrTruncated   = errors.New("index truncated")
	ErrMalformed   = errors.New("index malformed")
	ErrUnsorted    = errors.New("index ids not sorted")
	ErrDuplicateID = errors.New("duplicate index id")
)

// Index holds the loaded entries as three parallel slices, in file order.
type Index struct {
	IDs        []string
	Offsets    []int32
	RawOffsets []int32
}

// ReadFile reads and parses the index file at path.
func ReadFile(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s): %w", path, err)
	}
	idx, err := Load(b)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", path, err)
	}
	return idx, nil
}

// Load parses an index.  The returned ids refer directly to b, which must
// not be modified afterwards.
//
// Ids are expected to be sorted byte-wise ascending and unique; Load does not
// check this (see Validate).  Find gives undefined results on an index that
// breaks that precondition.
func Load(b []byte) (*Index, error) {
	if len(b)%EntrySize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d", ErrTruncated, len(b), EntrySize)
	}
	n := len(b) / EntrySize
	idx := &Index{
		IDs:        make([]string, n),
		Offsets:    make([]int32, n),
		RawOffsets: make([]int32, n),
	}
	for i := 0; i < n; i++ {
		entry := b[i*EntrySize : (i+1)*EntrySize]
		// bounds check elimination
		_ = entry[EntrySize-1]

		id := entry[:IDSize]
		if nul := bytes.IndexByte(id, 0); nul >= 0 {
			id = id[:nul]
		}
		if err := checkID(id); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		recordLen := int32(binary.BigEndian.Uint32(entry[IDSize+4 : IDSize+8]))
		if recordLen < MinRecordLen {
			return nil, fmt.Errorf("%w: entry %d (%q) has record length %d < %d", ErrMalformed, i, id, recordLen, MinRecordLen)
		}

		idx.IDs[i] = unsafestring.FromBytes(id)
		idx.Offsets[i] = int32(binary.BigEndian.Uint32(entry[IDSize : IDSize+4]))
		idx.RawOffsets[i] = int32(binary.BigEndian.Uint32(entry[IDSize+8 : IDSize+12]))
	}
	return idx, nil
}

func checkID(id []byte) error {
	if len(id) == 0 {
		return fmt.Errorf("%w: empty id", ErrMalformed)
	}
	if len(id) > IDSize {
		return fmt.Errorf("%w: id %q longer than %d bytes", ErrMalformed, id, IDSize)
	}
	for _, c := range id {
		if c == 0 || c >= 0x80 {
			return fmt.Errorf("%w: id %q is not NUL-free ASCII", ErrMalformed, id)
		}
	}
	return nil
}

// Len returns the number of entries.
func (x *Index) Len() int {
	return len(x.IDs)
}

// Find returns the position of id, using a binary search over the sorted
// ids.  Matching is exact and byte-wise.
func (x *Index) Find(id string) (int, bool) {
	i := sort.SearchStrings(x.IDs, id)
	if i < len(x.IDs) && x.IDs[i] == id {
		return i, true
	}
	return i, false
}

// Validate checks the precondition Find relies on: ids strictly ascending.
// It is a diagnostic pass and is never run by Load.
func (x *Index) Validate() error {
	for i := 1; i < len(x.IDs); i++ {
		prev, cur := x.IDs[i-1], x.IDs[i]
		switch {
		case prev == cur:
			return fmt.Errorf("%w: %q at entries %d and %d", ErrDuplicateID, cur, i-1, i)
		case prev > cur:
			return fmt.Errorf("%w: %q (entry %d) sorts after %q (entry %d)", ErrUnsorted, prev, i-1, cur, i)
		}
	}
	return nil
}
