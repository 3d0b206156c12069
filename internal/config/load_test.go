// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default config location at an empty directory and
// clears every override.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{
		"ARC_CARDS_STORAGE_BACKEND",
		"ARC_CARDS_STORAGE_PATH",
		"ARC_CARDS_STORAGE_KEY",
		"ARC_CARDS_STORAGE_ON_CORRUPT",
		"ARC_CARDS_LOG_LEVEL",
		"ARC_CARDS_LOG_FORMAT",
		"ARC_CARDS_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("ARC_CARDS_STORAGE_BACKEND", "file")
	t.Setenv("ARC_CARDS_STORAGE_PATH", "/tmp/cards")
	t.Setenv("ARC_CARDS_STORAGE_ON_CORRUPT", "seed")
	t.Setenv("ARC_CARDS_LOG_LEVEL", "DEBUG")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/cards", cfg.Storage.Path)
	assert.Equal(t, "seed", cfg.Storage.OnCorrupt)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "CA_FLASHCARDS_V1", cfg.Storage.Key)
}

func TestLoadDefaultFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, "arc-cards", "config.yaml"), `
storage:
  backend: memory
  key: MY_DECK
log:
  format: json
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "MY_DECK", cfg.Storage.Key)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeConfig(t, path, "storage:\n  backend: memory\n")
	t.Setenv("ARC_CARDS_STORAGE_BACKEND", "sqlite")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
}

func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"ARC_CARDS_STORAGE_BACKEND": "postgres"}},
		{"unknown fallback", map[string]string{"ARC_CARDS_STORAGE_ON_CORRUPT": "panic"}},
		{"unknown level", map[string]string{"ARC_CARDS_LOG_LEVEL": "trace"}},
		{"unknown format", map[string]string{"ARC_CARDS_LOG_FORMAT": "xml"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}
