// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("database.type", "sqlite", "")
	cmd.Flags().String("database.dsn", "./sitescope.db", "")
	return cmd
}

var testDefaults = map[string]any{
	"database.type":     "sqlite",
	"database.dsn":      "./sitescope.db",
	"language":          "en",
	"fetch.timeout":     30,
	"crawl.max_urls":    500,
	"crawl.concurrency": 8,
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitescope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  type: postgres
  dsn: postgres://localhost/sitescope
language: de
crawl:
  max_urls: 42
`), 0600))

	cfg, err := LoadConfig[Config](newTestCmd(), testDefaults, &path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgres://localhost/sitescope", cfg.Database.Dsn)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, 42, cfg.Crawl.MaxURLs)
	// Values absent from the file fall back to defaults.
	assert.Equal(t, 30, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, 8, cfg.Crawl.Concurrency)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	// Run from an empty directory so no stray sitescope.yaml is found.
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	cfg, err := LoadConfig[Config](newTestCmd(), testDefaults, nil)
	if err != nil {
		// A missing config file is reported but the defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		require.ErrorAs(t, err, &notFound)
	}
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 500, cfg.Crawl.MaxURLs)
}

func TestLoadConfigFlagOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitescope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  type: mysql\n"), 0600))

	cmd := newTestCmd()
	require.NoError(t, cmd.Flags().Set("database.type", "postgres"))

	cfg, err := LoadConfig[Config](cmd, testDefaults, &path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitescope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: de\n"), 0600))
	t.Setenv("SITESCOPE_LANGUAGE", "en")

	cfg, err := LoadConfig[Config](newTestCmd(), testDefaults, &path)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
}
