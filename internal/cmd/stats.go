// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-cards/internal/output"
	"github.com/mtreilly/arc-cards/internal/storage"
)

type deckStats struct {
	Cards       int     `json:"cards" yaml:"cards"`
	StoredBytes int     `json:"stored_bytes" yaml:"stored_bytes"`
	AvgQuestion float64 `json:"avg_question_chars" yaml:"avg_question_chars"`
	AvgAnswer   float64 `json:"avg_answer_chars" yaml:"avg_answer_chars"`
	Backend     string  `json:"backend" yaml:"backend"`
	Location    string  `json:"location,omitempty" yaml:"location,omitempty"`
	Key         string  `json:"key" yaml:"key"`
}

func newStatsCmd(s *session) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show deck statistics",
		Long:  `Display statistics about your deck: card count, stored size, and where it is kept.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			a := s.app
			cards := a.Controller.Cards()

			raw, err := a.Persister.Raw(cmd.Context())
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("read stored deck: %w", err)
			}

			st := deckStats{
				Cards:       len(cards),
				StoredBytes: len(raw),
				Backend:     a.Backend,
			Location:    a.Location(),
				Key:         a.Persister.Key(),
			}
			if len(cards) > 0 {
				var q, ans int
				for _, c := range cards {
					q += len([]rune(c.Question))
					ans += len([]rune(c.Answer))
				}
				st.AvgQuestion = float64(q) / float64(len(cards))
				st.AvgAnswer = float64(ans) / float64(len(cards))
			}

			w := cmd.OutOrStdout()
			if out.Structured() {
				return out.Encode(w, st)
			}

			fmt.Fprintf(w, "Deck Statistics\n")
			fmt.Fprintf(w, "===============\n\n")
			fmt.Fprintf(w, "Cards:         %s\n", humanize.Comma(int64(st.Cards)))
			fmt.Fprintf(w, "Stored size:   %s\n", humanize.Bytes(uint64(st.StoredBytes)))
			fmt.Fprintf(w, "Avg question:  %.1f chars\n", st.AvgQuestion)
			fmt.Fprintf(w, "Avg answer:    %.1f chars\n", st.AvgAnswer)
			fmt.Fprintf(w, "Backend:       %s\n", st.Backend)
			if st.Location != "" {
				fmt.Fprintf(w, "Location:      %s\n", st.Location)
			}
			fmt.Fprintf(w, "Key:           %s\n", st.Key)
			if a.Backend != s.cfg.Storage.Backend {
				fmt.Fprintf(w, "\nConfigured %q storage is unavailable; changes are not being saved.\n", s.cfg.Storage.Backend)
			}
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
