// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package tzif

import (
	"encoding/binary"
)

// Encode returns r as a version 1 TZif record with no leap second or
// indicator data.  TypeIndices must have the same length as Transitions.
func Encode(r *Record) []byte {
	size := HeaderSize + 5*len(r.Transitions) + typeSize*len(r.Types) + len(r.Abbrevs)
	buf := make([]byte, countsOff, size)
	binary.BigEndian.PutUint32(buf[:4], Magic)
	// version byte, reserved bytes and the isut/isstd/leap counts stay 0

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(r.Transitions)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(r.Types)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(r.Abbrevs)))
	for _, t := range r.Transitions {
		buf = binary.BigEndian.AppendUint32(buf, uint32(t))
	}
	buf = append(buf, r.TypeIndices...)
	for _, typ := range r.Types {
		buf = binary.BigEndian.AppendUint32(buf, uint32(typ.Offset))
		var isDST byte
		if typ.IsDST {
			isDST = 1
		}
		buf = append(buf, isDST, typ.AbbrevIndex)
	}
	buf = append(buf, r.Abbrevs...)
	return buf
}
