// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/bpowers/tzdb/tzif"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <id>",
	Short: "Print the rules for a zone",
	Long: `Decode and print the local time types and transitions of a zone.

Example:
  tzdb lookup Europe/Berlin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()

		r, ok, err := db.Lookup(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("zone %q not found", args[0])
		}
		writeRecord(cmd.OutOrStdout(), r)
		return nil
	},
}

func formatOffset(seconds int32) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	s := fmt.Sprintf("%c%02d:%02d", sign, seconds/3600, seconds/60%60)
	if seconds%60 != 0 {
		s += fmt.Sprintf(":%02d", seconds%60)
	}
	return s
}

func writeRecord(w io.Writer, r *tzif.Record) {
	fmt.Fprintf(w, "zone %s (raw offset %s)\n", r.ID, formatOffset(r.RawOffset()))
	fmt.Fprintf(w, "types: %d\n", len(r.Types))
	for i, typ := range r.Types {
		kind := "std"
		if typ.IsDST {
			kind = "dst"
		}
		fmt.Fprintf(w, "  %3d  %s  %s  %s\n", i, formatOffset(typ.Offset), kind, r.Abbreviation(i))
	}
	fmt.Fprintf(w, "transitions: %d\n", len(r.Transitions))
	for i, when := range r.Transitions {
		var idx int
		if i < len(r.TypeIndices) {
			idx = int(r.TypeIndices[i])
		}
		ts := time.Unix(int64(when), 0).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, "  %s  -> %d (%s)\n", ts, idx, r.Abbreviation(idx))
	}
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
