// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitset(t *testing.T) {
	const size = 130
	b := New(size)
	require.Equal(t, size, b.Len())
	require.Zero(t, b.Count())

	for i := 0; i < size; i += 3 {
		b.Set(i)
	}
	// out of range sets are ignored
	b.Set(-1)
	b.Set(size)
	b.Set(size + 64)

	for i := 0; i < size; i++ {
		require.Equal(t, i%3 == 0, b.IsSet(i), "bit %d", i)
	}
	require.False(t, b.IsSet(-1))
	require.False(t, b.IsSet(size))
	require.Equal(t, (size+2)/3, b.Count())

	// setting a bit twice doesn't change the count
	b.Set(0)
	require.Equal(t, (size+2)/3, b.Count())
}

func TestBitset_Empty(t *testing.T) {
	b := New(0)
	b.Set(0)
	require.False(t, b.IsSet(0))
	require.Zero(t, b.Count())
}
