// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package tzif

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bpowers/tzdb/internal/bitset"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid record")

// Type is a local time type: an offset from UTC, whether it is daylight
// saving time, and where its abbreviation starts in Record.Abbrevs.
type Type struct {
	Offset      int32
	IsDST       bool
	AbbrevIndex uint8
}

// Record holds the decoded rules for a single zone.  Records are created
// fresh for every lookup and share no memory with the database they were
// read from.
type Record struct {
	ID          string
	Transitions []int32 // seconds since the Unix epoch
	TypeIndices []uint8 // one per transition, indexes Types
	Types       []Type
	Abbrevs     []byte
}

// Abbreviation returns the NUL-terminated designation for Types[typeIndex],
// or "" if either index is out of range.
func (r *Record) Abbreviation(typeIndex int) string {
	if typeIndex < 0 || typeIndex >= len(r.Types) {
		return ""
	}
	start := int(r.Types[typeIndex].AbbrevIndex)
	if start >= len(r.Abbrevs) {
		return ""
	}
	s := r.Abbrevs[start:]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return string(s)
}

// RawOffset returns the standard (non-daylight) offset in effect after the
// last transition.  With no usable transitions it is the offset of the
// first type.
func (r *Record) RawOffset() int32 {
	if len(r.Types) == 0 {
		return 0
	}
	for i := len(r.TypeIndices) - 1; i >= 0; i-- {
		idx := int(r.TypeIndices[i])
		if idx < len(r.Types) && !r.Types[idx].IsDST {
			return r.Types[idx].Offset
		}
	}
	return r.Types[0].Offset
}

// Validate checks the cross references Decode leaves alone: transition
// type indices, abbreviation indices and transition order.
func (r *Record) Validate() error {
	var errs []error
	if len(r.Types) == 0 {
		errs = append(errs, fmt.Errorf("%w: no local time types", ErrInvalid))
	}
	if len(r.TypeIndices) != len(r.Transitions) {
		errs = append(errs, fmt.Errorf("%w: %d transitions but %d type indices", ErrInvalid, len(r.Transitions), len(r.TypeIndices)))
	}
	for i, idx := range r.TypeIndices {
		if int(idx) >= len(r.Types) {
			errs = append(errs, fmt.Errorf("%w: transition %d uses type %d (have %d)", ErrInvalid, i, idx, len(r.Types)))
		}
	}
	for i := 1; i < len(r.Transitions); i++ {
		if r.Transitions[i] < r.Transitions[i-1] {
			errs = append(errs, fmt.Errorf("%w: transition %d (%d) before transition %d (%d)", ErrInvalid, i, r.Transitions[i], i-1, r.Transitions[i-1]))
			break
		}
	}
	for i, typ := range r.Types {
		if int(typ.AbbrevIndex) >= len(r.Abbrevs) {
			errs = append(errs, fmt.Errorf("%w: type %d abbreviation index %d (have %d bytes)", ErrInvalid, i, typ.AbbrevIndex, len(r.Abbrevs)))
		}
	}
	return errors.Join(errs...)
}

// UnusedTypes returns the indices of types no transition refers to.  The
// first type is always considered used: it applies before the first
// transition.
func (r *Record) UnusedTypes() []int {
	used := bitset.New(len(r.Types))
	used.Set(0)
	for _, idx := range r.TypeIndices {
		used.Set(int(idx))
	}
	if used.Count() == len(r.Types) {
		return nil
	}
	var unused []int
	for i := range r.Types {
		if !used.IsSet(i) {
			unused = append(unused, i)
		}
	}
	return unused
}
