// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bpowers/tzdb"
	"github.com/bpowers/tzdb/internal/config"
)

var (
	cfg    = config.DefaultConfig()
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tzdb",
	Short: "Inspect and build compact time zone databases",
	Long: `tzdb reads and writes compact time zone databases: a sorted index
of zone ids (zoneinfo.idx) over a single file of concatenated TZif
records (zoneinfo.dat), plus a version file (zoneinfo.version).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c := config.DefaultConfig()
		if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			c = loaded
		}
		if dir := os.Getenv(tzdb.DirEnv); dir != "" {
			c.DataDir = dir
		}
		if cmd.Flags().Changed("data-dir") {
			c.DataDir, _ = cmd.Flags().GetString("data-dir")
		}
		if cmd.Flags().Changed("log-level") {
			c.Logging.Level, _ = cmd.Flags().GetString("log-level")
		}
		level, err := c.Logging.SlogLevel()
		if err != nil {
			return err
		}
		cfg = c
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDatabase opens the configured database with the command's logger.
func openDatabase(opts ...tzdb.Option) (*tzdb.Database, error) {
	return tzdb.Open(cfg.DataDir, append([]tzdb.Option{tzdb.WithLogger(logger)}, opts...)...)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().StringP("data-dir", "d", cfg.DataDir, "Directory holding the database files")
	rootCmd.PersistentFlags().String("log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")
}
