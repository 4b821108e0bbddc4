// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package tzdb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/tzdb/indexfile"
	"github.com/bpowers/tzdb/tzif"
)

func TestBuilder_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBuilder(dir)
	require.NoError(t, err)

	zones := testZones()
	// put them in reverse order; the index is sorted at Finalize
	for i := len(zones) - 1; i >= 0; i-- {
		require.NoError(t, b.Put(zones[i].ID, tzif.Encode(zones[i])))
	}
	assert.Equal(t, len(zones), b.Len())
	require.NoError(t, b.Finalize("2026b"))

	// only the three database files should be left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
		info, err := e.Info()
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0444), info.Mode().Perm(), e.Name())
	}
	assert.ElementsMatch(t, []string{IndexFileName, DataFileName, VersionFileName}, names)

	db, err := Open(dir, WithIndexValidation())
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	assert.Equal(t, "2026b", db.Version())
	ids := db.AvailableIDs()
	require.Len(t, ids, len(zones))
	for i, id := range ids {
		assert.Equal(t, zones[i].ID, id)
		r, ok, err := db.Lookup(id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, zones[i], r)
	}
	assert.Equal(t, []string{"Europe/Berlin", "Europe/Paris"}, db.AvailableIDsForOffset(3600))
}

func TestBuilder_PutWithRawOffset(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBuilder(dir)
	require.NoError(t, err)

	require.NoError(t, b.PutWithRawOffset("Etc/Odd", tzif.Encode(utcRecord()), 1234))
	require.NoError(t, b.Finalize("1"))

	idx, err := indexfile.ReadFile(filepath.Join(dir, IndexFileName))
	require.NoError(t, err)
	assert.Equal(t, []int32{1234}, idx.RawOffsets)
}

func TestBuilder_Errors(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBuilder(dir)
	require.NoError(t, err)

	utc := tzif.Encode(utcRecord())
	require.NoError(t, b.Put("UTC", utc))

	err = b.Put("UTC", utc)
	assert.True(t, errors.Is(err, errDuplicateID))

	err = b.Put("Etc/Garbage", []byte("not a tzif record at all, no sir"))
	assert.True(t, errors.Is(err, tzif.ErrBadMagic))

	err = b.Put("Etc/Short", utc[:len(utc)-1])
	assert.True(t, errors.Is(err, tzif.ErrTruncated))

	for _, id := range []string{"", "Zürich", "A/Very/Long/Zone/Name/That/Wont/Fit/In/Forty/Bytes"} {
		err = b.Put(id, utc)
		assert.True(t, errors.Is(err, indexfile.ErrMalformed), "%q: %v", id, err)
	}
	assert.Equal(t, 1, b.Len())

	assert.True(t, errors.Is(b.Finalize(""), errInvalidVersion))
	assert.True(t, errors.Is(b.Finalize("2026a\n2026b"), errInvalidVersion))

	require.NoError(t, b.Finalize("2026a"))
	assert.True(t, errors.Is(b.Finalize("2026a"), errFinalized))
	assert.True(t, errors.Is(b.Put("GMT", utc), errFinalized))
	// Abort after Finalize is a no-op
	b.Abort()

	db, err := Open(dir)
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	assert.Equal(t, []string{"UTC"}, db.AvailableIDs())
}

func TestBuilder_Abort(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBuilder(dir)
	require.NoError(t, err)
	require.NoError(t, b.Put("UTC", tzif.Encode(utcRecord())))

	b.Abort()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.True(t, errors.Is(b.Finalize("2026a"), errFinalized))
}

func TestBuilder_Empty(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBuilder(dir)
	require.NoError(t, err)
	defer b.Abort()

	assert.True(t, errors.Is(b.Finalize("2026a"), ErrEmptyIndex))
}

func TestNewBuilder_Errors(t *testing.T) {
	_, err := NewBuilder(filepath.Join(t.TempDir(), "doesnt", "exist"))
	assert.Error(t, err)
}
