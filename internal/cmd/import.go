// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-cards/internal/deck"
	"github.com/mtreilly/arc-cards/internal/output"
)

func newImportCmd(s *session) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import flashcards from JSON or YAML files",
		Long: `Import flashcards from files into the deck.

Each file holds a list of {question, answer} objects, or a mapping with
that list under "cards". Cards are placed at the top of the deck in file
order and always receive new ids. Cards missing a question or an answer
are skipped. Use "-" to read from standard input.

Examples:
  arc-cards import deck.json
  arc-cards import ~/decks/*.yaml
  arc-cards export --format json | arc-cards import -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			type fileResult struct {
				Path     string `json:"path" yaml:"path"`
				Imported int    `json:"imported" yaml:"imported"`
				Skipped  int    `json:"skipped" yaml:"skipped"`
			}
			var results []fileResult

			for _, path := range args {
				drafts, err := readDrafts(path, cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				imported, skipped, err := s.app.Controller.Import(drafts)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				results = append(results, fileResult{Path: path, Imported: len(imported), Skipped: skipped})
			}

			w := cmd.OutOrStdout()
			if out.Structured() {
				return out.Encode(w, results)
			}

			total, skipped := 0, 0
			for _, r := range results {
				fmt.Fprintf(w, "Imported: %s - %d card(s)", r.Path, r.Imported)
				if r.Skipped > 0 {
					fmt.Fprintf(w, ", skipped %d incomplete", r.Skipped)
				}
				fmt.Fprintln(w)
				total += r.Imported
				skipped += r.Skipped
			}
			fmt.Fprintf(w, "\nImported %d card(s), skipped %d incomplete.\n", total, skipped)
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

// readDrafts loads one import file. "-" reads stdin.
func readDrafts(path string, stdin io.Reader) ([]deck.Draft, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(expandHome(path))
	}
	if err != nil {
		return nil, err
	}
	return deck.ParseDrafts(data)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// isDeckFile reports whether path looks like an importable deck.
func isDeckFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
