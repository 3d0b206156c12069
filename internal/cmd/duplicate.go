// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-cards/internal/deck"
	"github.com/mtreilly/arc-cards/internal/output"
)

type duplicatePair struct {
	First  deck.Flashcard `json:"first" yaml:"first"`
	Second deck.Flashcard `json:"second" yaml:"second"`
	Score  float64        `json:"score" yaml:"score"`
}

func newDuplicatesCmd(s *session) *cobra.Command {
	var (
		threshold float64
		out       output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Detect duplicate or similar flashcards",
		Long:  "Scan the deck for cards whose questions share most of their words.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			if threshold < 0 || threshold > 1 {
				return fmt.Errorf("threshold must be between 0 and 1")
			}

			pairs := findDuplicates(s.app.Controller.Cards(), threshold)

			w := cmd.OutOrStdout()
			if out.Structured() {
				if pairs == nil {
					pairs = []duplicatePair{}
				}
				return out.Encode(w, pairs)
			}

			if len(pairs) == 0 {
				fmt.Fprintf(w, "No duplicates found (threshold %.2f)\n", threshold)
				return nil
			}

			fmt.Fprintf(w, "Found %d potential duplicate pairs:\n\n", len(pairs))
			for i, p := range pairs {
				fmt.Fprintf(w, "[%d] Score: %.2f\n", i+1, p.Score)
				fmt.Fprintf(w, "    %s  %s\n", p.First.ID, output.Truncate(p.First.Question, 60))
				fmt.Fprintf(w, "    %s  %s\n", p.Second.ID, output.Truncate(p.Second.Question, 60))
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.7, "Similarity threshold (0-1)")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

// findDuplicates compares every pair of cards and returns those at or
// above threshold, most similar first. Identical questions always score 1.
func findDuplicates(cards deck.Collection, threshold float64) []duplicatePair {
	var pairs []duplicatePair
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			a, b := cards[i], cards[j]
			score := questionSimilarity(a.Question, b.Question)
			if strings.EqualFold(strings.TrimSpace(a.Question), strings.TrimSpace(b.Question)) {
				score = 1
			}
			if score >= threshold && score > 0 {
				pairs = append(pairs, duplicatePair{First: a, Second: b, Score: score})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Score > pairs[j].Score
	})
	return pairs
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// questionSimilarity is the Jaccard index of the words longer than two
// letters in a and b.
func questionSimilarity(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	intersection := 0
	for word := range setA {
		if setB[word] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	clean := punctuation.ReplaceAllString(strings.ToLower(s), "")
	set := make(map[string]bool)
	for _, word := range strings.Fields(clean) {
		if len(word) > 2 {
			set[word] = true
		}
	}
	return set
}
