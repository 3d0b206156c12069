// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package app

import (
	"fmt"
	"log/slog"

	"github.com/mtreilly/arc-cards/internal/config"
	"github.com/mtreilly/arc-cards/internal/storage"
)

// Backend names accepted by storage.backend.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// OpenBackend opens the configured key/value backend and returns it with
// the name of the backend actually in use. If sqlite or file storage
// cannot be opened (missing directory, bad permissions, corrupt database)
// it falls back to the in-memory store so the tool stays usable without
// persistence.
func OpenBackend(cfg config.StorageConfig, log *slog.Logger) (storage.KVStore, string, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		path := cfg.Path
		if path == "" {
			path = storage.DefaultSQLitePath()
		}
		kv, err := storage.OpenSQLiteStore(path)
		if err != nil {
			return fallback(log, BackendSQLite, path, err), BackendMemory, nil
		}
		return kv, BackendSQLite, nil

	case BackendFile:
		dir := cfg.Path
		if dir == "" {
			dir = storage.DefaultFileDir()
		}
		kv, err := storage.OpenFileStore(dir)
		if err != nil {
			return fallback(log, BackendFile, dir, err), BackendMemory, nil
		}
		return kv, BackendFile, nil

	case BackendMemory:
		return storage.NewMemoryStore(), BackendMemory, nil

	default:
		return nil, "", fmt.Errorf("unknown storage backend %q (choose sqlite, file, or memory)", cfg.Backend)
	}
}

func fallback(log *slog.Logger, backend, location string, err error) storage.KVStore {
	log.Warn("cannot open storage, falling back to in-memory store (no persistence)",
		"backend", backend, "path", location, "error", err)
	return storage.NewMemoryStore()
}
