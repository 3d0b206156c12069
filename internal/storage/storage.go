// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package storage provides the key/value backends the card collection is
// persisted to. Values are opaque blobs; callers own their encoding.
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get when no value is stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// KVStore is a string-keyed blob store.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DataDir returns the directory arc-cards keeps its data in.
// $XDG_DATA_HOME/arc-cards, falling back to ~/.local/share/arc-cards.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "arc-cards")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "arc-cards")
	}
	return filepath.Join(home, ".local", "share", "arc-cards")
}

// DefaultSQLitePath is where the sqlite backend lives unless configured otherwise.
func DefaultSQLitePath() string {
	return filepath.Join(DataDir(), "cards.db")
}

// DefaultFileDir is where the file backend keeps one file per key.
func DefaultFileDir() string {
	return filepath.Join(DataDir(), "kv")
}
