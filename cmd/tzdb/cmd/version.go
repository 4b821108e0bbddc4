// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the database version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d zones, fingerprint %016x)\n", db.Version(), db.Len(), db.Fingerprint())
		return nil
	},
}

// defaultCmd represents the default command
var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the system default zone id",
	Long: `Print the zone id this host uses by default ($TZ, then the
/etc/localtime link), as resolved against the database.  Zones missing
from the database fall back to UTC.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()

		fmt.Fprintln(cmd.OutOrStdout(), db.SystemDefaultID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(defaultCmd)
}
