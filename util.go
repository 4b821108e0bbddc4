// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package tzdb

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

type stringSet map[string]struct{}

func (set stringSet) Contains(s string) bool {
	_, ok := set[s]
	return ok
}

func (set stringSet) Add(s string) {
	set[s] = struct{}{}
}

// readVersion returns the first line of the version file, trimmed.
func readVersion(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s): %w", path, err)
	}
	line, _, _ := bytes.Cut(b, []byte{'\n'})
	version := strings.TrimSpace(string(line))
	if version == "" {
		return "", fmt.Errorf("version file %s is empty", path)
	}
	return version, nil
}

// writeFileSync writes data to a new file and fsyncs it before closing.
func writeFileSync(f *os.File, write func(w *bufio.Writer) error) error {
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("bufio.Flush: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("f.Sync: %w", err)
	}
	return f.Close()
}
