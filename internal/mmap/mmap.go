// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build unix

// Package mmap provides a read-only view of a whole file mapped into
// memory.
package mmap

import (
	"fmt"
	"os"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

// ReaderAt is a read-only memory-mapped file.  The bytes returned by Data
// are shared by every caller and must never be written to.
type ReaderAt struct {
	data     []byte
	isClosed atomic.Bool
}

// Open memory-maps the named file for reading.
func Open(path string) (*ReaderAt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s): %w", path, err)
	}
	defer func() {
		// the mapping outlives the descriptor
		_ = f.Close()
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("f.Stat: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("mmap %s: not a regular file", path)
	}

	size := fi.Size()
	if size == 0 {
		// mmap(2) rejects zero-length mappings
		return &ReaderAt{}, nil
	}
	if size < 0 || int64(int(size)) != size {
		return nil, fmt.Errorf("mmap %s: file size %d out of range", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("unix.Mmap(%s): %w", path, err)
	}

	// lookups jump around the file; readahead only wastes page cache
	if err := unix.Madvise(data, syscall.MADV_RANDOM); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("madvise: %w", err)
	}

	return &ReaderAt{data: data}, nil
}

// Data returns the mapped bytes.
func (r *ReaderAt) Data() []byte {
	return r.data
}

// Len returns the length of the mapping.
func (r *ReaderAt) Len() int {
	return len(r.data)
}

// Close unmaps the file.  Any slice previously returned by Data is
// invalid afterwards.  Calling Close more than once is a no-op.
func (r *ReaderAt) Close() error {
	if r.isClosed.Swap(true) {
		return nil
	}
	data := r.data
	r.data = nil
	if data == nil {
		return nil
	}
	return unix.Munmap(data)
}
