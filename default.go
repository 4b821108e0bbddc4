// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package tzdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bpowers/tzdb/tzif"
)

// DirEnv names the environment variable that overrides DefaultDir.
const DirEnv = "TZDB_DIR"

// DefaultDir is where Default looks for the database files when DirEnv is
// unset.  It is read once, on the first call to Default.
var DefaultDir = "/usr/share/tzdb"

var ErrNoSystemDefault = errors.New("no usable system default zone")

// fallbackIDs are tried, in order, when the host's zone isn't in the
// database.
var fallbackIDs = []string{"UTC", "Etc/UTC", "GMT"}

var loadDefault = lazyOpen(func() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir
	}
	return DefaultDir
})

func lazyOpen(dir func() string, opts ...Option) func() (*Database, error) {
	return sync.OnceValues(func() (*Database, error) {
		return Open(dir(), opts...)
	})
}

// Default returns the process-wide database, opening it on first use.
// Concurrent first callers wait for the single open to finish.  If opening
// fails, every call returns that same error: there is no retry.
func Default() (*Database, error) {
	return loadDefault()
}

// LocalZoneID returns the host's configured zone id: $TZ if set, otherwise
// the zone /etc/localtime links to, otherwise "UTC".
func LocalZoneID() string {
	if tz, ok := os.LookupEnv("TZ"); ok {
		tz = strings.TrimPrefix(tz, ":")
		if tz == "" {
			return "UTC"
		}
		if filepath.IsAbs(tz) {
			if id, ok := zoneIDFromPath(tz); ok {
				return id
			}
			return "UTC"
		}
		return tz
	}
	if target, err := os.Readlink("/etc/localtime"); err == nil {
		if id, ok := zoneIDFromPath(target); ok {
			return id
		}
	}
	return "UTC"
}

// zoneIDFromPath turns ".../zoneinfo/Europe/Berlin" into "Europe/Berlin".
func zoneIDFromPath(path string) (string, bool) {
	path = filepath.ToSlash(filepath.Clean(path))
	const marker = "/zoneinfo/"
	i := strings.LastIndex(path, marker)
	if i < 0 {
		return "", false
	}
	id := path[i+len(marker):]
	// posix/ and right/ trees hold the same zones under a prefix
	id = strings.TrimPrefix(id, "posix/")
	id = strings.TrimPrefix(id, "right/")
	return id, id != ""
}

// SystemDefaultID returns the id of the host's default zone, resolved once
// and cached.  Zones missing from the database fall back to UTC.
func (db *Database) SystemDefaultID() string {
	db.defaultMu.Lock()
	defer db.defaultMu.Unlock()

	return db.systemDefaultIDLocked()
}

func (db *Database) systemDefaultIDLocked() string {
	if db.defaultID != "" {
		return db.defaultID
	}
	id := db.resolver()
	if _, ok := db.idx.Find(id); !ok {
		fallback := fallbackIDs[0]
		for _, candidate := range fallbackIDs {
			if _, ok := db.idx.Find(candidate); ok {
				fallback = candidate
				break
			}
		}
		db.logger.Warn("system default zone not in database", "zone", id, "fallback", fallback)
		id = fallback
	}
	db.defaultID = id
	return id
}

// SystemDefault returns the decoded rules of the system default zone.
func (db *Database) SystemDefault() (*tzif.Record, error) {
	db.defaultMu.Lock()
	defer db.defaultMu.Unlock()

	id := db.systemDefaultIDLocked()
	// Lookup takes no locks, so calling it with defaultMu held is safe
	r, ok, err := db.Lookup(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSystemDefault, id)
	}
	return r, nil
}

// SetSystemDefaultID overrides the system default zone.  An empty id
// clears the override so the next call re-resolves it.
func (db *Database) SetSystemDefaultID(id string) error {
	db.defaultMu.Lock()
	defer db.defaultMu.Unlock()

	if id != "" {
		if _, ok := db.idx.Find(id); !ok {
			return fmt.Errorf("%w: %q is not in the database", ErrNoSystemDefault, id)
		}
	}
	db.defaultID = id
	return nil
}
