// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package tzdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bpowers/tzdb/indexfile"
	"github.com/bpowers/tzdb/tzif"
)

var (
	errDuplicateID    = errors.New("duplicate zone ids aren't supported")
	errDataTooLarge   = errors.New("data file would exceed 2 GB")
	errFinalized      = errors.New("builder already finalized")
	errInvalidVersion = errors.New("version must be a single non-empty line")
)

// BuilderOption configures the Builder.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	logger *slog.Logger
}

// WithBuilderLogger sets an optional logger for the builder to use for progress updates.
// If not provided, no logging output will be produced.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// Builder writes a new database.  Records are appended to the data file in
// the order they are Put; the index is sorted when the builder is finalized.
type Builder struct {
	dir      string
	dataFile *os.File
	w        *bufio.Writer
	off      int64
	entries  []indexfile.Entry
	ids      stringSet
	logger   *slog.Logger
}

// NewBuilder creates a Builder that writes the database files into dir.
// Nothing in dir is replaced until Finalize succeeds.
func NewBuilder(dir string, opts ...BuilderOption) (*Builder, error) {
	var options builderOptions
	options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&options)
	}
	// we want to write to a new file and do an atomic rename when we're done on disk
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("filepath.Abs: %w", err)
	}
	dataFile, err := os.CreateTemp(dir, "tzdb-builder.*.dat")
	if err != nil {
		return nil, fmt.Errorf("CreateTemp failed (may need permissions for dir %q): %w", dir, err)
	}
	return &Builder{
		dir:      dir,
		dataFile: dataFile,
		w:        bufio.NewWriter(dataFile),
		ids:      make(stringSet),
		logger:   options.logger,
	}, nil
}

// Put adds a TZif record for id, deriving the index raw offset from the
// record's latest standard time type.
func (b *Builder) Put(id string, record []byte) error {
	r, err := tzif.Parse(record, id)
	if err != nil {
		return fmt.Errorf("zone %q: %w", id, err)
	}
	return b.put(id, record, r.RawOffset())
}

// PutWithRawOffset adds a TZif record for id with an explicit raw offset.
// The record is copied verbatim into the data file.
func (b *Builder) PutWithRawOffset(id string, record []byte, rawOffset int32) error {
	if _, err := tzif.Parse(record, id); err != nil {
		return fmt.Errorf("zone %q: %w", id, err)
	}
	return b.put(id, record, rawOffset)
}

func (b *Builder) put(id string, record []byte, rawOffset int32) error {
	if b.dataFile == nil {
		return errFinalized
	}
	if b.ids.Contains(id) {
		return fmt.Errorf("%w: %q", errDuplicateID, id)
	}
	if b.off+int64(len(record)) > math.MaxInt32 {
		return errDataTooLarge
	}
	entry := indexfile.Entry{
		ID:        id,
		Offset:    int32(b.off),
		Length:    int32(len(record)),
		RawOffset: rawOffset,
	}
	if err := entry.Check(); err != nil {
		return err
	}

	n, err := b.w.Write(record)
	if err != nil {
		return fmt.Errorf("bufio.Write: %w", err)
	}
	b.off += int64(n)
	b.ids.Add(id)
	b.entries = append(b.entries, entry)
	return nil
}

// Len returns the number of records added so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Abort discards everything written so far.
func (b *Builder) Abort() {
	if b.dataFile == nil {
		return
	}
	_ = b.dataFile.Close()
	_ = os.Remove(b.dataFile.Name())
	b.dataFile = nil
}

// Finalize flushes the data file, writes the sorted index and the version
// file, and moves all three into place read-only.
func (b *Builder) Finalize(version string) error {
	if b.dataFile == nil {
		return errFinalized
	}
	version = strings.TrimSpace(version)
	if version == "" || strings.ContainsAny(version, "\r\n") {
		return errInvalidVersion
	}
	if len(b.entries) == 0 {
		return ErrEmptyIndex
	}

	dataFile := b.dataFile
	b.dataFile = nil
	var temps []string
	defer func() {
		for _, path := range temps {
			_ = os.Remove(path)
		}
	}()
	temps = append(temps, dataFile.Name())

	if err := b.w.Flush(); err != nil {
		_ = dataFile.Close()
		return fmt.Errorf("bufio.Flush: %w", err)
	}
	if err := dataFile.Sync(); err != nil {
		_ = dataFile.Close()
		return fmt.Errorf("f.Sync: %w", err)
	}
	if err := dataFile.Close(); err != nil {
		return fmt.Errorf("f.Close: %w", err)
	}

	sort.Slice(b.entries, func(i, j int) bool {
		return b.entries[i].ID < b.entries[j].ID
	})

	indexFile, err := os.CreateTemp(b.dir, "tzdb-builder.*.idx")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	temps = append(temps, indexFile.Name())
	err = writeFileSync(indexFile, func(w *bufio.Writer) error {
		iw := indexfile.NewWriter(w)
		for _, e := range b.entries {
			if err := iw.Write(e); err != nil {
				return fmt.Errorf("indexfile.Write: %w", err)
			}
		}
		return iw.Flush()
	})
	if err != nil {
		return err
	}

	versionFile, err := os.CreateTemp(b.dir, "tzdb-builder.*.version")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	temps = append(temps, versionFile.Name())
	err = writeFileSync(versionFile, func(w *bufio.Writer) error {
		_, err := w.WriteString(version + "\n")
		return err
	})
	if err != nil {
		return err
	}

	// data first: an index must never point into a data file older than itself
	for i, name := range []string{DataFileName, IndexFileName, VersionFileName} {
		// make the file read-only
		if err := os.Chmod(temps[i], 0444); err != nil {
			return fmt.Errorf("os.Chmod(0444): %w", err)
		}
		if err := os.Rename(temps[i], filepath.Join(b.dir, name)); err != nil {
			return fmt.Errorf("os.Rename: %w", err)
		}
	}
	temps = nil

	b.logger.Info("wrote time zone database",
		"dir", b.dir,
		"zones", len(b.entries),
		"dataBytes", b.off,
		"version", version)

	return nil
}
