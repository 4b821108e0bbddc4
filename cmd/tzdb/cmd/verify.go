// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bpowers/tzdb"
	"github.com/bpowers/tzdb/indexfile"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the index and decode every record",
	Long: `Verify checks that the index is sorted and free of duplicates, then
decodes every record and checks its type and abbreviation indices.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return verifyDatabase(cmd.OutOrStdout(), logger, cfg.DataDir)
	},
}

func verifyDatabase(out io.Writer, logger *slog.Logger, dir string) error {
	idx, err := indexfile.ReadFile(filepath.Join(dir, tzdb.IndexFileName))
	if err != nil {
		return err
	}
	if err := idx.Validate(); err != nil {
		return err
	}

	db, err := tzdb.Open(dir, tzdb.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	failed := 0
	for _, id := range db.AvailableIDs() {
		r, ok, err := db.Lookup(id)
		if err == nil && !ok {
			err = fmt.Errorf("indexed zone %q not found", id)
		}
		if err == nil {
			err = r.Validate()
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s: %v\n", id, err)
			continue
		}
		if unused := r.UnusedTypes(); len(unused) > 0 {
			logger.Warn("zone has unused local time types", "id", id, "types", unused)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d zones failed verification", failed, db.Len())
	}
	fmt.Fprintf(out, "ok: %d zones, version %s\n", db.Len(), db.Version())
	return nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
