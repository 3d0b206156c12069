// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package app assembles the storage backend, persistence and collection
// state into one value shared by the CLI and the interactive UI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mtreilly/arc-cards/internal/config"
	"github.com/mtreilly/arc-cards/internal/deck"
	"github.com/mtreilly/arc-cards/internal/storage"
)

// App owns every long-lived component.
type App struct {
	Config     *config.Config
	Log        *slog.Logger
	KV         storage.KVStore
	Backend    string
	Persister  *deck.Persister
	Writer     *deck.Writer
	Store      *deck.Store
	Controller *deck.Controller
}

// New opens the backend and wires persistence. The collection is not read
// until Load is called.
func New(cfg *config.Config, log *slog.Logger, opts ...deck.StoreOption) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	kv, backend, err := OpenBackend(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	p := deck.NewPersister(kv,
		deck.WithKey(cfg.Storage.Key),
		deck.WithFallback(deck.Fallback(cfg.Storage.OnCorrupt)),
		deck.WithLogger(log),
	)
	w := deck.NewWriter(p, log)
	store := deck.NewStore(w, opts...)

	return &App{
		Config:     cfg,
		Log:        log,
		KV:         kv,
		Backend:    backend,
		Persister:  p,
		Writer:     w,
		Store:      store,
		Controller: deck.NewController(p, store, log),
	}, nil
}

// Load reads the collection. Recoverable storage problems are logged by
// the persister and do not fail the load.
func (a *App) Load(ctx context.Context) error {
	err := a.Controller.Load(ctx)
	var rerr *deck.ReadError
	if err != nil && !errors.As(err, &rerr) {
		return err
	}
	return nil
}

// Location returns the file or directory holding the collection, or ""
// for the in-memory backend.
func (a *App) Location() string {
	switch kv := a.KV.(type) {
	case *storage.SQLiteStore:
		return kv.Path()
	case *storage.FileStore:
		return kv.Dir()
	}
	return ""
}

// Close flushes the pending snapshot and releases the backend.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Writer.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flush collection: %w", err))
	}
	written, failed := a.Writer.Stats()
	if failed > 0 {
		a.Log.Warn("some collection writes failed", "written", written, "failed", failed)
	} else {
		a.Log.Debug("collection writer stopped", "written", written)
	}
	if err := a.KV.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}
