// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-cards/internal/deck"
	"github.com/mtreilly/arc-cards/internal/export"
)

func newExportCmd(s *session) *cobra.Command {
	var (
		format   string
		outPath  string
		search   string
		deckName string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export flashcards to various formats",
		Long: `Export the deck to JSON, YAML, Markdown, or an Anki package (.apkg).

JSON output uses the same layout the deck is stored in, so it can be
imported again or kept as a backup. Anki packages are binary and need -o.

Examples:
  arc-cards export --format markdown
  arc-cards export --format anki -o mobile.apkg --deck "Mobile Dev"
  arc-cards export --format yaml --search expo -o expo.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			cards := s.app.Controller.Cards()
			if search != "" {
				cards = cards.Filter(&deck.ListOptions{Search: search})
			}
			opts := export.Options{DeckName: deckName}

			if outPath == "-" || outPath == "" {
				if f.Binary() {
					return fmt.Errorf("%s export is binary; write it to a file with -o", f)
				}
				w := cmd.OutOrStdout()
				if err := export.Write(w, f, cards, opts); err != nil {
					return fmt.Errorf("export %s: %w", f, err)
				}
				if f == export.FormatJSON {
					fmt.Fprintln(w)
				}
				return nil
			}

			file, err := os.Create(expandHome(outPath))
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			if err := export.Write(file, f, cards, opts); err != nil {
				file.Close()
				return fmt.Errorf("export %s: %w", f, err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d card(s) to %s\n", len(cards), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, yaml, markdown, anki")
	cmd.Flags().StringVarP(&outPath, "output", "o", "-", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only export cards matching this text")
	cmd.Flags().StringVar(&deckName, "deck", "", "Deck name for Markdown title and Anki deck (default: Arc Cards)")

	return cmd
}
