// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mtreilly/arc-cards/internal/storage"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "CA_FLASHCARDS_V1"

// Fallback chooses what replaces a stored collection that cannot be read.
type Fallback string

const (
	FallbackEmpty Fallback = "empty"
	FallbackSeed  Fallback = "seed"
)

// Persister reads and writes the whole collection as one JSON array under
// a single key.
type Persister struct {
	kv       storage.KVStore
	key      string
	fallback Fallback
	log      *slog.Logger
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithKey overrides DefaultKey.
func WithKey(key string) PersisterOption {
	return func(p *Persister) {
		if key != "" {
			p.key = key
		}
	}
}

// WithFallback sets the collection used when the stored one is unreadable.
func WithFallback(f Fallback) PersisterOption {
	return func(p *Persister) {
		if f != "" {
			p.fallback = f
		}
	}
}

// WithLogger sets the logger for recovered read and write failures.
func WithLogger(l *slog.Logger) PersisterOption {
	return func(p *Persister) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPersister creates a persister over kv.
func NewPersister(kv storage.KVStore, opts ...PersisterOption) *Persister {
	p := &Persister{
		kv:       kv,
		key:      DefaultKey,
		fallback: FallbackEmpty,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the storage key in use.
func (p *Persister) Key() string { return p.key }

// Load returns the stored collection. It always returns a usable
// collection:
//   - nothing stored: the seed deck, which is written back immediately;
//   - unreadable or corrupt: the configured fallback, and a *ReadError
//     describing what was recovered from. Nothing is written in that case;
//   - readable: the stored cards, minus invalid entries and repeated ids.
func (p *Persister) Load(ctx context.Context) (Collection, error) {
	raw, err := p.kv.Get(ctx, p.key)
	switch {
	case errors.Is(err, storage.ErrNotFound), err == nil && len(bytes.TrimSpace(raw)) == 0:
		cards := Seed()
		if err := p.Save(ctx, cards); err != nil {
			p.log.Warn("failed to store seed collection", "key", p.key, "error", err)
		}
		p.log.Debug("seeded empty storage", "key", p.key, "cards", len(cards))
		return cards, nil
	case err != nil:
		return p.fallbackFor(&ReadError{Key: p.key, Err: err})
	}

	cards, err := Decode(raw)
	if err != nil {
		return p.fallbackFor(&ReadError{Key: p.key, Err: err})
	}
	cards, invalid := cards.DropInvalid()
	if invalid > 0 {
		p.log.Warn("dropped cards without an id, question or answer", "key", p.key, "count", invalid)
	}
	cards, dropped := cards.Dedupe()
	if len(dropped) > 0 {
		p.log.Warn("dropped cards with duplicate ids", "key", p.key, "ids", dropped)
	}
	return cards, nil
}

func (p *Persister) fallbackFor(rerr *ReadError) (Collection, error) {
	cards := Collection{}
	if p.fallback == FallbackSeed {
		cards = Seed()
	}
	p.log.Warn("failed to load storage", "key", p.key, "fallback", string(p.fallback), "error", rerr.Err)
	return cards, rerr
}

// Save overwrites the stored collection with cards.
func (p *Persister) Save(ctx context.Context, cards Collection) error {
	data, err := Encode(cards)
	if err != nil {
		return &WriteError{Key: p.key, Err: err}
	}
	if err := p.kv.Set(ctx, p.key, data); err != nil {
		return &WriteError{Key: p.key, Err: err}
	}
	return nil
}

// Raw returns the stored blob as-is.
func (p *Persister) Raw(ctx context.Context) ([]byte, error) {
	return p.kv.Get(ctx, p.key)
}

// Encode serializes cards in the stored format: a JSON array of
// {id, question, answer} objects in collection order.
func Encode(cards Collection) ([]byte, error) {
	if cards == nil {
		cards = Collection{}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return nil, fmt.Errorf("marshal collection: %w", err)
	}
	return data, nil
}

// Decode parses the stored format. JSON null decodes to an empty collection.
func Decode(data []byte) (Collection, error) {
	var cards Collection
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("unmarshal collection: %w", err)
	}
	if cards == nil {
		cards = Collection{}
	}
	return cards, nil
}
