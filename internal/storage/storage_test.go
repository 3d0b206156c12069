// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]KVStore {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := OpenSQLiteStore(filepath.Join(dir, "cards.db"))
	require.NoError(t, err)
	fileStore, err := OpenFileStore(filepath.Join(dir, "kv"))
	require.NoError(t, err)

	stores := map[string]KVStore{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
		"file":   fileStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestKVStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "CA_FLASHCARDS_V1")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set(ctx, "CA_FLASHCARDS_V1", []byte(`[{"id":"1"}]`)))
			got, err := kv.Get(ctx, "CA_FLASHCARDS_V1")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, string(got))

			// Overwrite replaces the whole value.
			require.NoError(t, kv.Set(ctx, "CA_FLASHCARDS_V1", []byte(`[]`)))
			got, err = kv.Get(ctx, "CA_FLASHCARDS_V1")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))

			require.NoError(t, kv.Delete(ctx, "CA_FLASHCARDS_V1"))
			_, err = kv.Get(ctx, "CA_FLASHCARDS_V1")
			require.ErrorIs(t, err, ErrNotFound)

			// Deleting an absent key is not an error.
			require.NoError(t, kv.Delete(ctx, "CA_FLASHCARDS_V1"))
		})
	}
}

func TestKVStoreKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, "a", []byte("1")))
			require.NoError(t, kv.Set(ctx, "a/b", []byte("2")))

			a, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			ab, err := kv.Get(ctx, "a/b")
			require.NoError(t, err)
			assert.Equal(t, "1", string(a))
			assert.Equal(t, "2", string(ab))
		})
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cards.db")

	s, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = OpenSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
	assert.Equal(t, path, s.Path())
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	kv := NewMemoryStore()
	assert.Error(t, kv.Set(ctx, "k", []byte("v")))
	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
