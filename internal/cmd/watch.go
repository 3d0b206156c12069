// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-cards/internal/deck"
)

func newWatchCmd(s *session) *cobra.Command {
	var (
		recursive  bool
		debounceMs int
		oneShot    bool
	)

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a folder for new deck files and auto-import",
		Long: `Monitor a directory for new JSON or YAML deck files and import their cards.

Examples:
  arc-cards watch ~/Downloads/decks
  arc-cards watch ~/Dropbox/cards --recursive
  arc-cards watch ~/decks --one-shot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := expandHome(args[0])

			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("cannot access directory %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			w := &watcher{
				ctrl:     s.app.Controller,
				log:      s.logger(),
				out:      cmd.OutOrStdout(),
				debounce: time.Duration(debounceMs) * time.Millisecond,
			}

			if oneShot {
				return w.processExisting(dir, recursive)
			}
			return w.watch(cmd.Context(), dir, recursive)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch subdirectories recursively")
	cmd.Flags().IntVar(&debounceMs, "debounce", 1000, "Debounce milliseconds for file events")
	cmd.Flags().BoolVar(&oneShot, "one-shot", false, "Process existing files and exit (don't watch)")

	return cmd
}

type watcher struct {
	ctrl     *deck.Controller
	log      *slog.Logger
	out      io.Writer
	debounce time.Duration

	// importFn replaces importFile for scheduled imports when set.
	importFn func(path string) (int, error)

	mu      sync.Mutex
	pending map[string]*time.Timer
	running sync.WaitGroup
}

func (w *watcher) watch(ctx context.Context, dir string, recursive bool) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	w.pending = make(map[string]*time.Timer)
	defer w.stopPending()

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if err := fw.Add(path); err != nil {
					w.log.Warn("cannot watch directory", "path", path, "error", err)
				} else {
					w.log.Info("watching", "path", path)
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("walk directories: %w", err)
		}
	} else {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch directory: %w", err)
		}
		w.log.Info("watching", "path", dir)
	}

	fmt.Fprintln(w.out, "Press Ctrl+C to stop watching")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !isDeckFile(event.Name) {
				continue
			}
			switch {
			case event.Op&(fsnotify.Create|fsnotify.Rename) != 0:
				w.schedule(event.Name, false)
			case event.Op&fsnotify.Write != 0:
				// a file still being written restarts its own timer only
				w.schedule(event.Name, true)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)
		}
	}
}

// schedule imports path once events for it stop arriving for the debounce
// interval. With onlyPending set it only restarts an existing timer.
func (w *watcher) schedule(path string, onlyPending bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	timer, exists := w.pending[path]
	if !exists && onlyPending {
		return
	}
	if exists && timer.Stop() {
		w.running.Done()
	}

	importFn := w.importFn
	if importFn == nil {
		importFn = w.importFile
	}

	// running counts every timer that has not finished; Done is called by
	// whoever stops the timer or by the callback itself.
	w.running.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		defer w.running.Done()

		w.mu.Lock()
		if w.pending[path] == t {
			delete(w.pending, path)
		}
		w.mu.Unlock()

		if _, err := importFn(path); err != nil {
			w.log.Warn("failed to import deck file", "path", path, "error", err)
		}
	})
	w.pending[path] = t
}

// stopPending cancels timers that have not fired and waits for imports
// already in progress.
func (w *watcher) stopPending() {
	w.mu.Lock()
	for path, timer := range w.pending {
		if timer.Stop() {
			w.running.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()
	w.running.Wait()
}

func (w *watcher) processExisting(dir string, recursive bool) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if isDeckFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintln(w.out, "No deck files found")
		return nil
	}

	fmt.Fprintf(w.out, "Found %d deck file(s), importing...\n", len(files))

	imported, failed := 0, 0
	for _, f := range files {
		n, err := w.importFile(f)
		if err != nil {
			w.log.Warn("failed to import deck file", "path", f, "error", err)
			failed++
			continue
		}
		imported += n
	}

	fmt.Fprintf(w.out, "\nImported: %d card(s), Failed: %d file(s)\n", imported, failed)
	return nil
}

func (w *watcher) importFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	drafts, err := deck.ParseDrafts(data)
	if err != nil {
		return 0, err
	}
	cards, skipped, err := w.ctrl.Import(drafts)
	if err != nil {
		return 0, err
	}
	w.log.Info("imported deck file", "path", path, "cards", len(cards), "skipped", skipped)
	return len(cards), nil
}
