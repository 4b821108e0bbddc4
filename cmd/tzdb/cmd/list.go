// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List zone ids",
	Long: `List every zone id in the database, in index order.

Example:
  tzdb list
  tzdb list --offset -28800`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()

		ids := db.AvailableIDs()
		if cmd.Flags().Changed("offset") {
			offset, _ := cmd.Flags().GetInt32("offset")
			ids = db.AvailableIDsForOffset(offset)
		}
		out := cmd.OutOrStdout()
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Int32("offset", 0, "Only list zones with this raw UTC offset, in seconds")
	rootCmd.AddCommand(listCmd)
}
