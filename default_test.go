// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package tzdb

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyOpen(t *testing.T) {
	dir := t.TempDir()
	writeTestDB(t, dir, testZones())

	var opens atomic.Int32
	load := lazyOpen(func() string {
		opens.Add(1)
		return dir
	})

	var wg sync.WaitGroup
	dbs := make([]*Database, 16)
	for i := range dbs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := load()
			assert.NoError(t, err)
			dbs[i] = db
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), opens.Load())
	require.NotNil(t, dbs[0])
	for _, db := range dbs {
		assert.Same(t, dbs[0], db)
	}
	require.NoError(t, dbs[0].Close())
}

func TestLazyOpen_FailureIsSticky(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	var opens atomic.Int32
	load := lazyOpen(func() string {
		opens.Add(1)
		return dir
	})

	db1, err1 := load()
	assert.Nil(t, db1)
	require.Error(t, err1)
	assert.True(t, errors.Is(err1, os.ErrNotExist))

	// creating the files afterwards doesn't help: the failure is final
	require.NoError(t, os.MkdirAll(dir, 0755))
	writeTestDB(t, dir, testZones())

	db2, err2 := load()
	assert.Nil(t, db2)
	assert.Equal(t, err1, err2)
	assert.Equal(t, int32(1), opens.Load())
}

func TestLocalZoneID(t *testing.T) {
	for _, testcase := range []struct {
		tz       string
		expected string
	}{
		{"", "UTC"},
		{":", "UTC"},
		{"Europe/Berlin", "Europe/Berlin"},
		{":America/New_York", "America/New_York"},
		{"/usr/share/zoneinfo/Asia/Tokyo", "Asia/Tokyo"},
		{":/usr/share/zoneinfo/posix/Asia/Tokyo", "Asia/Tokyo"},
		{"/etc/some/other/file", "UTC"},
	} {
		t.Setenv("TZ", testcase.tz)
		assert.Equal(t, testcase.expected, LocalZoneID(), "TZ=%q", testcase.tz)
	}
}

func TestZoneIDFromPath(t *testing.T) {
	for _, testcase := range []struct {
		path     string
		expected string
		ok       bool
	}{
		{"/usr/share/zoneinfo/Europe/Berlin", "Europe/Berlin", true},
		{"../usr/share/zoneinfo/UTC", "UTC", true},
		{"/var/db/timezone/zoneinfo/right/America/Denver", "America/Denver", true},
		{"/usr/share/zoneinfo/", "", false},
		{"/etc/localtime", "", false},
	} {
		id, ok := zoneIDFromPath(testcase.path)
		assert.Equal(t, testcase.ok, ok, testcase.path)
		assert.Equal(t, testcase.expected, id, testcase.path)
	}
}

func TestDatabase_SystemDefault(t *testing.T) {
	resolved := "Europe/Berlin"
	var calls int
	db := openTestDB(t, testZones(), WithSystemDefaultResolver(func() string {
		calls++
		return resolved
	}))

	assert.Equal(t, "Europe/Berlin", db.SystemDefaultID())
	r, err := db.SystemDefault()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", r.ID)
	// resolved once, then cached
	assert.Equal(t, 1, calls)

	require.NoError(t, db.SetSystemDefaultID("America/New_York"))
	assert.Equal(t, "America/New_York", db.SystemDefaultID())

	err = db.SetSystemDefaultID("Mars/Olympus_Mons")
	assert.True(t, errors.Is(err, ErrNoSystemDefault))
	assert.Equal(t, "America/New_York", db.SystemDefaultID())

	// clearing the override re-resolves, falling back to UTC for unknown zones
	resolved = "Mars/Olympus_Mons"
	require.NoError(t, db.SetSystemDefaultID(""))
	assert.Equal(t, "UTC", db.SystemDefaultID())
	assert.Equal(t, 2, calls)
}

func TestDatabase_SystemDefaultNoFallback(t *testing.T) {
	db := openTestDB(t, testZones()[:2], WithSystemDefaultResolver(func() string {
		return "Nowhere"
	}))

	assert.Equal(t, "UTC", db.SystemDefaultID())
	_, err := db.SystemDefault()
	assert.True(t, errors.Is(err, ErrNoSystemDefault))
}

func TestDatabase_SystemDefaultConcurrent(t *testing.T) {
	db := openTestDB(t, testZones(), WithSystemDefaultResolver(func() string {
		return "America/Los_Angeles"
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := db.SystemDefault()
			assert.NoError(t, err)
			if r != nil {
				assert.Equal(t, "America/Los_Angeles", r.ID)
			}
			_, ok, err := db.Lookup("UTC")
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}
