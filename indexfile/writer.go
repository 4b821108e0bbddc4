// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package indexfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bpowers/tzdb/internal/zero"
)

// Entry is a single index entry as written to disk.
type Entry struct {
	ID        string
	Offset    int32
	Length    int32
	RawOffset int32
}

// Check returns an error if e can't be represented in an index.
func (e Entry) Check() error {
	if err := checkID([]byte(e.ID)); err != nil {
		return err
	}
	if e.Offset < 0 {
		return fmt.Errorf("%w: %q has negative offset %d", ErrMalformed, e.ID, e.Offset)
	}
	if e.Length < MinRecordLen {
		return fmt.Errorf("%w: %q has record length %d < %d", ErrMalformed, e.ID, e.Length, MinRecordLen)
	}
	return nil
}

// Writer writes index entries in the order they are given; sorting is up
// to the caller.
type Writer struct {
	w     *bufio.Writer
	entry [EntrySize]byte
	count int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) Write(e Entry) error {
	if err := e.Check(); err != nil {
		return err
	}
	buf := w.entry[:]
	zero.Bytes(buf[:IDSize])
	copy(buf[:IDSize], e.ID)
	binary.BigEndian.PutUint32(buf[IDSize:IDSize+4], uint32(e.Offset))
	binary.BigEndian.PutUint32(buf[IDSize+4:IDSize+8], uint32(e.Length))
	binary.BigEndian.PutUint32(buf[IDSize+8:IDSize+12], uint32(e.RawOffset))
	if _, err := w.w.Write(buf); err != nil {
		return fmt.Errorf("bufio.Write: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of entries written so far.
func (w *Writer) Count() int {
	return w.count
}

func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("bufio.Flush: %w", err)
	}
	return nil
}
