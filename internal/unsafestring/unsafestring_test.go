// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package unsafestring

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestFromBytes(t *testing.T) {
	for _, input := range [][]byte{
		nil,
		{},
		[]byte("UTC"),
		[]byte("America/Los_Angeles"),
	} {
		var s string
		allocs := testing.AllocsPerRun(1, func() {
			s = FromBytes(input)
		})
		require.Zero(t, allocs)
		require.Equal(t, string(input), s)
		if len(input) > 0 {
			// the string should share memory with the input
			require.True(t, unsafe.SliceData(input) == unsafe.StringData(s))
		}
	}
}
