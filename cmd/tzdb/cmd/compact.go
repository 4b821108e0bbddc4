// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bpowers/tzdb"
	"github.com/bpowers/tzdb/indexfile"
	"github.com/bpowers/tzdb/tzif"
)

var errNoVersion = errors.New("no version given and none found in the zoneinfo tree")

// compactCmd represents the compact command
var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Build a database from a zoneinfo tree",
	Long: `Compact reads every TZif file below a zoneinfo directory and writes
them into a single database.  The posix/ and right/ subtrees are skipped, as
are files that are not TZif records.

Example:
  tzdb compact --zoneinfo /usr/share/zoneinfo --out ./db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := cfg.ZoneinfoDir
		if cmd.Flags().Changed("zoneinfo") {
			src, _ = cmd.Flags().GetString("zoneinfo")
		}
		out := cfg.DataDir
		if cmd.Flags().Changed("out") {
			out, _ = cmd.Flags().GetString("out")
		}
		version, _ := cmd.Flags().GetString("version")

		n, err := compactZoneinfo(cmd.Context(), logger, src, out, version)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d zones to %s\n", n, out)
		return nil
	},
}

type zoneFile struct {
	id   string
	path string
	data []byte
}

// findZoneFiles returns the candidate zone files below root, sorted by id.
func findZoneFiles(root string) ([]zoneFile, error) {
	var files []zoneFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel == "posix" || rel == "right" {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if strings.Contains(name, ".") || name == "localtime" || name == "posixrules" || strings.HasPrefix(name, "+") {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, zoneFile{id: filepath.ToSlash(rel), path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filepath.WalkDir(%q): %w", root, err)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].id < files[j].id
	})
	return files, nil
}

func isTZif(b []byte) bool {
	return len(b) >= tzif.HeaderSize && binary.BigEndian.Uint32(b) == tzif.Magic
}

// zoneinfoVersion reads the tzdata release from +VERSION or the tzdata.zi
// header.
func zoneinfoVersion(root string) (string, error) {
	if b, err := os.ReadFile(filepath.Join(root, "+VERSION")); err == nil {
		if v := strings.TrimSpace(string(b)); v != "" {
			return v, nil
		}
	}
	f, err := os.Open(filepath.Join(root, "tzdata.zi"))
	if err != nil {
		return "", errNoVersion
	}
	defer func() {
		_ = f.Close()
	}()
	s := bufio.NewScanner(f)
	if s.Scan() {
		if v, ok := strings.CutPrefix(s.Text(), "# version "); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return "", errNoVersion
}

func compactZoneinfo(ctx context.Context, logger *slog.Logger, src, out, version string) (int, error) {
	if version == "" {
		v, err := zoneinfoVersion(src)
		if err != nil {
			return 0, err
		}
		version = v
	}

	files, err := findZoneFiles(src)
	if err != nil {
		return 0, err
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range files {
		f := &files[i]
		g.Go(func() error {
			data, err := os.ReadFile(f.path)
			if err != nil {
				return fmt.Errorf("os.ReadFile(%q): %w", f.path, err)
			}
			if isTZif(data) {
				f.data = data
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return 0, fmt.Errorf("os.MkdirAll(%q): %w", out, err)
	}
	b, err := tzdb.NewBuilder(out, tzdb.WithBuilderLogger(logger))
	if err != nil {
		return 0, err
	}
	for _, f := range files {
		if f.data == nil {
			logger.Debug("skipping non-TZif file", "path", f.path)
			continue
		}
		if len(f.id) > indexfile.IDSize || !isASCII(f.id) {
			logger.Warn("skipping zone with unrepresentable id", "id", f.id)
			continue
		}
		if err := b.Put(f.id, f.data); err != nil {
			b.Abort()
			return 0, err
		}
	}
	n := b.Len()
	if err := b.Finalize(version); err != nil {
		b.Abort()
		return 0, err
	}
	return n, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func init() {
	compactCmd.Flags().String("zoneinfo", "", "Source zoneinfo directory (default from config)")
	compactCmd.Flags().String("out", "", "Output database directory (default --data-dir)")
	compactCmd.Flags().String("version", "", "tzdata version (default: read from +VERSION or tzdata.zi)")
	rootCmd.AddCommand(compactCmd)
}
