// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "/usr/share/tzdb", config.DataDir)
	assert.Equal(t, "/usr/share/zoneinfo", config.ZoneinfoDir)
	assert.Equal(t, "warn", config.Logging.Level)

	level, err := config.Logging.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoadConfig(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "tzdb.yaml")
		expected := &Config{
			DataDir:     "/custom/tzdb",
			ZoneinfoDir: "/custom/zoneinfo",
			Logging: Logging{
				Level: "debug",
			},
		}
		require.NoError(t, SaveConfig(expected, configPath))

		loaded, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expected, loaded)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "tzdb.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("data_dir: /srv/tzdb\n"), 0644))

		loaded, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "/srv/tzdb", loaded.DataDir)
		assert.Equal(t, "/usr/share/zoneinfo", loaded.ZoneinfoDir)
		assert.Equal(t, "warn", loaded.Logging.Level)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "tzdb.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("data_dir: [unterminated\n"), 0644))
		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "tzdb.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: chatty\n"), 0644))
		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})
}
