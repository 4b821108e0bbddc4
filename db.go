// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package tzdb is a read-only time zone rule database: a sorted index of
// zone ids over a memory-mapped file of concatenated TZif records.
package tzdb

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dgryski/go-farm"

	"github.com/bpowers/tzdb/indexfile"
	"github.com/bpowers/tzdb/internal/mmap"
	"github.com/bpowers/tzdb/internal/ondisk"
	"github.com/bpowers/tzdb/tzif"
)

const (
	IndexFileName   = "zoneinfo.idx"
	DataFileName    = "zoneinfo.dat"
	VersionFileName = "zoneinfo.version"
)

var (
	ErrEmptyIndex = errors.New("index has no entries")
	ErrClosed     = errors.New("database closed")
)

// Database maps zone ids to their TZif records.  It is immutable once
// opened, and all read methods are safe for concurrent use without
// locking.
type Database struct {
	idx         *indexfile.Index
	data        *mmap.ReaderAt
	view        ondisk.View
	version     string
	fingerprint uint64
	logger      *slog.Logger
	metrics     *metrics
	isClosed    atomic.Bool

	// defaultMu guards the system default zone id, the only mutable state.
	defaultMu sync.Mutex
	defaultID string
	resolver  func() string
}

// Open opens the database files stored in dir under their standard names.
func Open(dir string, opts ...Option) (*Database, error) {
	return OpenFiles(
		filepath.Join(dir, IndexFileName),
		filepath.Join(dir, DataFileName),
		filepath.Join(dir, VersionFileName),
		opts...,
	)
}

// OpenFiles opens a database from explicit index, data and version file
// paths.  Any failure is fatal: either a fully loaded Database or an error
// is returned.
func OpenFiles(indexPath, dataPath, versionPath string, opts ...Option) (*Database, error) {
	o := newOptions(opts)

	idx, err := indexfile.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("indexfile.ReadFile: %w", err)
	}
	if idx.Len() == 0 {
		return nil, fmt.Errorf("index %s: %w", indexPath, ErrEmptyIndex)
	}
	if o.validateIndex {
		if err := idx.Validate(); err != nil {
			return nil, fmt.Errorf("index %s: %w", indexPath, err)
		}
	}

	version, err := readVersion(versionPath)
	if err != nil {
		return nil, fmt.Errorf("readVersion: %w", err)
	}

	m, err := newMetrics(o.registerer)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("mmap.Open: %w", err)
	}

	db := &Database{
		idx:         idx,
		data:        data,
		view:        ondisk.NewView(data.Data()),
		version:     version,
		fingerprint: farm.Fingerprint64(data.Data()),
		logger:      o.logger,
		metrics:     m,
		resolver:    o.resolver,
	}
	db.logger.Info("opened time zone database",
		"entries", idx.Len(),
		"version", version,
		"dataBytes", data.Len(),
		"fingerprint", fmt.Sprintf("%016x", db.fingerprint))

	return db, nil
}

// Len returns the number of zones in the database.
func (db *Database) Len() int {
	return db.idx.Len()
}

// Version returns the database version, e.g. "2024a".
func (db *Database) Version() string {
	return db.version
}

// Fingerprint returns a 64-bit fingerprint of the data file contents.
func (db *Database) Fingerprint() uint64 {
	return db.fingerprint
}

// AvailableIDs returns a copy of all zone ids, in index order.
func (db *Database) AvailableIDs() []string {
	ids := make([]string, len(db.idx.IDs))
	copy(ids, db.idx.IDs)
	return ids
}

// AvailableIDsForOffset returns the ids whose raw (standard) UTC offset is
// rawOffset seconds, in index order.
func (db *Database) AvailableIDsForOffset(rawOffset int32) []string {
	var ids []string
	for i, off := range db.idx.RawOffsets {
		if off == rawOffset {
			ids = append(ids, db.idx.IDs[i])
		}
	}
	return ids
}

// Lookup returns the decoded rules for id.  Ids are matched exactly; an
// unknown id returns ok == false and a nil error.  A decode error only
// affects this call.
func (db *Database) Lookup(id string) (r *tzif.Record, ok bool, err error) {
	defer func() {
		db.metrics.observe(ok, err)
	}()

	if db.isClosed.Load() {
		return nil, false, ErrClosed
	}
	i, found := db.idx.Find(id)
	if !found {
		return nil, false, nil
	}
	off := db.idx.Offsets[i]
	r, err = tzif.Decode(db.view, off, id)
	if err != nil {
		return nil, false, fmt.Errorf("zone %q at offset %d: %w", id, off, err)
	}
	return r, true, nil
}

// Close unmaps the data file.  It must not be called while other
// goroutines are still reading from db.
func (db *Database) Close() error {
	if db.isClosed.Swap(true) {
		return nil
	}
	db.view = ondisk.View{}
	return db.data.Close()
}
