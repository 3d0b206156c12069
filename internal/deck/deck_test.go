// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mtreilly/arc-cards/internal/storage"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// recorder is a Saver that keeps every snapshot it is handed.
type recorder struct {
	mu        sync.Mutex
	snapshots []Collection
}

func (r *recorder) Submit(c Collection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, c)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func (r *recorder) last() Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

// sequentialIDs returns ids "id-1", "id-2", ...
func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// brokenKV fails whichever operations are switched on.
type brokenKV struct {
	*storage.MemoryStore
	failGet bool
	failSet bool
}

var errDisk = errors.New("disk unavailable")

func newBrokenKV() *brokenKV {
	return &brokenKV{MemoryStore: storage.NewMemoryStore()}
}

func (b *brokenKV) Get(ctx context.Context, key string) ([]byte, error) {
	if b.failGet {
		return nil, errDisk
	}
	return b.MemoryStore.Get(ctx, key)
}

func (b *brokenKV) Set(ctx context.Context, key string, value []byte) error {
	if b.failSet {
		return errDisk
	}
	return b.MemoryStore.Set(ctx, key, value)
}

func twoCards() Collection {
	return Collection{
		{ID: "a", Question: "Q A", Answer: "A A"},
		{ID: "b", Question: "Q B", Answer: "A B"},
	}
}

func threeCards() Collection {
	return Collection{
		{ID: "a", Question: "Q A", Answer: "A A"},
		{ID: "b", Question: "Q B", Answer: "A B"},
		{ID: "c", Question: "Q C", Answer: "A C"},
	}
}
