// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-cards/internal/app"
	"github.com/mtreilly/arc-cards/internal/config"
	"github.com/mtreilly/arc-cards/internal/deck"
	"github.com/mtreilly/arc-cards/internal/storage"
	"github.com/mtreilly/arc-cards/internal/tui"
)

// shutdownTimeout bounds the final flush of pending writes.
const shutdownTimeout = 5 * time.Second

// Option adjusts how commands are wired.
type Option func(*session)

// WithConfig skips config loading and uses cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *session) { s.cfg = cfg }
}

// WithStoreOptions forwards options to the collection store.
func WithStoreOptions(opts ...deck.StoreOption) Option {
	return func(s *session) { s.storeOpts = append(s.storeOpts, opts...) }
}

// session is the state shared by the commands of one invocation.
type session struct {
	configPath string
	cfg        *config.Config
	storeOpts  []deck.StoreOption

	app     *app.App
	logFile io.Closer
}

// Execute runs the command line in args and flushes pending writes
// before returning, whether or not the command failed.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) error {
	s := &session{}
	for _, opt := range opts {
		opt(s)
	}

	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, s.shutdown())
}

// newRootCmd creates the root command for arc-cards. Run without a
// subcommand it opens the interactive UI.
func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "arc-cards",
		Short: "Create, edit, and study flashcards",
		Long: `Keep a deck of question/answer flashcards and study them in the terminal.

arc-cards provides tools to:
- Add, edit, and delete cards interactively or from scripts
- Study the deck one card at a time, revealing answers on demand
- Import cards from JSON or YAML files, or watch a folder for new decks
- Export to JSON, YAML, Markdown, or an Anki package`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd, cmd == cmd.Root())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := s.app
			model := tui.New(a.Controller, a.Load, a.Log)
			return tui.Run(model, tea.WithContext(cmd.Context()))
		},
	}

	root.PersistentFlags().StringVar(&s.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/arc-cards/config.yaml)")

	root.AddCommand(newCardCmd(s))
	root.AddCommand(newImportCmd(s))
	root.AddCommand(newWatchCmd(s))
	root.AddCommand(newExportCmd(s))
	root.AddCommand(newStatsCmd(s))
	root.AddCommand(newDuplicatesCmd(s))
	root.AddCommand(newResetCmd(s))

	return root
}

// setup loads config, opens storage and, for scripted commands, reads
// the collection. The interactive UI logs to a file and loads in the
// background so the terminal stays responsive.
func (s *session) setup(cmd *cobra.Command, interactive bool) error {
	if s.cfg == nil {
		cfg, err := config.Load(s.configPath)
		if err != nil {
			return err
		}
		s.cfg = cfg
	}

	logOut := cmd.ErrOrStderr()
	if interactive {
		f, err := openLogFile(s.cfg.Log.File)
		if err != nil {
			return err
		}
		s.logFile = f
		logOut = f
	}
	log := app.NewLogger(s.cfg.Log, logOut)

	a, err := app.New(s.cfg, log, s.storeOpts...)
	if err != nil {
		return err
	}
	s.app = a

	if interactive {
		return nil
	}
	return a.Load(cmd.Context())
}

func (s *session) shutdown() error {
	var errs []error
	if s.app != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		s.app = nil
	}
	if s.logFile != nil {
		if err := s.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
		s.logFile = nil
	}
	return errors.Join(errs...)
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		path = filepath.Join(storage.DataDir(), "arc-cards.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// logger returns the session logger, or the slog default before setup.
func (s *session) logger() *slog.Logger {
	if s.app != nil {
		return s.app.Log
	}
	return slog.Default()
}
