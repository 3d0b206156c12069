// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Saver accepts collection snapshots for persistence.
type Saver interface {
	Submit(Collection)
}

// Writer persists snapshots on a background goroutine. Persistence is
// best-effort: Submit never blocks the caller, and a failed write is
// logged and dropped without retry.
//
// Only the newest snapshot is kept while a write is in flight, so the last
// write to complete always carries the latest state.
type Writer struct {
	p       *Persister
	log     *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending chan Collection
	closed  bool
	done    chan struct{}

	written int
	failed  int
}

// NewWriter starts a writer goroutine saving through p.
func NewWriter(p *Persister, log *slog.Logger) *Writer {
	if log == nil {
		log = slog.Default()
	}
	w := &Writer{
		p:       p,
		log:     log,
		timeout: 10 * time.Second,
		pending: make(chan Collection, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// Submit queues cards to be written, replacing any snapshot still waiting.
// Submits after Close are ignored.
func (w *Writer) Submit(cards Collection) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case <-w.pending:
	default:
	}
	w.pending <- cards.Clone()
}

func (w *Writer) run() {
	defer close(w.done)
	for cards := range w.pending {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		err := w.p.Save(ctx, cards)
		cancel()

		w.mu.Lock()
		if err != nil {
			w.failed++
		} else {
			w.written++
		}
		w.mu.Unlock()

		if err != nil {
			w.log.Warn("failed to persist collection", "cards", len(cards), "error", err)
			continue
		}
		w.log.Debug("persisted collection", "cards", len(cards))
	}
}

// Close stops accepting snapshots and waits for the pending one to be
// written, or for ctx to end.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.pending)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats reports how many snapshots were written and how many failed.
func (w *Writer) Stats() (written, failed int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written, w.failed
}
