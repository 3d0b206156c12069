// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtreilly/arc-cards/internal/config"
	"github.com/mtreilly/arc-cards/internal/deck"
	"github.com/mtreilly/arc-cards/internal/storage"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(backend, path string) *config.Config {
	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Storage.Path = path
	return &cfg
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()

	kv, name, err := OpenBackend(testConfig(BackendSQLite, filepath.Join(dir, "cards.db")).Storage, discard)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, name)
	assert.IsType(t, &storage.SQLiteStore{}, kv)
	require.NoError(t, kv.Close())

	kv, name, err = OpenBackend(testConfig(BackendFile, filepath.Join(dir, "kv")).Storage, discard)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, name)
	assert.IsType(t, &storage.FileStore{}, kv)

	kv, name, err = OpenBackend(testConfig(BackendMemory, "").Storage, discard)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, name)
	assert.IsType(t, &storage.MemoryStore{}, kv)

	_, _, err = OpenBackend(testConfig("postgres", "").Storage, discard)
	assert.Error(t, err)
}

func TestOpenBackendFallsBackToMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	kv, name, err := OpenBackend(testConfig(BackendFile, filepath.Join(blocker, "kv")).Storage, log)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, name)
	assert.IsType(t, &storage.MemoryStore{}, kv)
	assert.Contains(t, buf.String(), "falling back")
}

func TestAppPersistsAcrossRuns(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(BackendSQLite, filepath.Join(t.TempDir(), "cards.db"))

	a, err := New(cfg, discard)
	require.NoError(t, err)
	require.NoError(t, a.Load(ctx))
	require.Len(t, a.Controller.Cards(), 7)

	_, err = a.Store.Create("Persisted?", "Yes")
	require.NoError(t, err)
	require.NoError(t, a.Close(ctx))

	b, err := New(cfg, discard)
	require.NoError(t, err)
	defer b.Close(ctx)
	require.NoError(t, b.Load(ctx))

	cards := b.Controller.Cards()
	require.Len(t, cards, 8)
	assert.Equal(t, "Persisted?", cards[0].Question)
}

func TestAppLocation(t *testing.T) {
	dir := t.TempDir()

	a, err := New(testConfig(BackendSQLite, filepath.Join(dir, "cards.db")), discard)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cards.db"), a.Location())
	require.NoError(t, a.Close(context.Background()))

	a, err = New(testConfig(BackendFile, filepath.Join(dir, "kv")), discard)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kv"), a.Location())
	require.NoError(t, a.Close(context.Background()))

	a, err = New(testConfig(BackendMemory, ""), discard)
	require.NoError(t, err)
	assert.Empty(t, a.Location())
}

func TestAppCloseLogsFailedWrites(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	dir := filepath.Join(t.TempDir(), "kv")
	a, err := New(testConfig(BackendFile, dir), log)
	require.NoError(t, err)
	require.NoError(t, a.Load(ctx))

	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o644))
	_, err = a.Store.Create("Q", "A")
	require.NoError(t, err)

	require.NoError(t, a.Close(ctx))
	assert.Contains(t, buf.String(), "some collection writes failed")
}

func TestAppLoadToleratesCorruptBlob(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(BackendFile, t.TempDir())
	cfg.Storage.OnCorrupt = string(deck.FallbackSeed)

	a, err := New(cfg, discard)
	require.NoError(t, err)
	require.NoError(t, a.KV.Set(ctx, cfg.Storage.Key, []byte("{broken")))

	require.NoError(t, a.Load(ctx))
	assert.Equal(t, deck.Seed(), a.Controller.Cards())
	require.NoError(t, a.Close(ctx))
}
