// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-cards/internal/deck"
	"github.com/mtreilly/arc-cards/internal/output"
)

func newCardCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "card",
		Aliases: []string{"cards"},
		Short:   "Manage flashcards",
		Long:    "Add, list, show, edit, and delete flashcards without opening the interactive UI.",
	}

	cmd.AddCommand(newCardAddCmd(s))
	cmd.AddCommand(newCardListCmd(s))
	cmd.AddCommand(newCardShowCmd(s))
	cmd.AddCommand(newCardEditCmd(s))
	cmd.AddCommand(newCardDeleteCmd(s))

	return cmd
}

func newCardAddCmd(s *session) *cobra.Command {
	var (
		question string
		answer   string
		out      output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new flashcard",
		Long:  "Create a flashcard. It is placed at the top of the deck.",
		Example: `  arc-cards card add -q "What is Hermes?" -a "A JavaScript engine optimized for React Native."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			card, err := s.app.Store.Create(question, answer)
			if err != nil {
				return fmt.Errorf("add flashcard: %w", err)
			}

			w := cmd.OutOrStdout()
			if out.Structured() {
				return out.Encode(w, card)
			}
			fmt.Fprintf(w, "Flashcard created: %s\n", card.ID)
			fmt.Fprintf(w, "Question: %s\n", output.Truncate(card.Question, 60))
			fmt.Fprintf(w, "Answer: %s\n", output.Truncate(card.Answer, 60))
			return nil
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "Question text (required)")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "Answer text (required)")
	out.AddOutputFlags(cmd, output.OutputTable)

	return cmd
}

func newCardListCmd(s *session) *cobra.Command {
	var (
		search string
		limit  int
		out    output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List flashcards",
		Long:    "List flashcards in deck order, optionally filtered by a search term.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			cards := s.app.Controller.Cards().Filter(&deck.ListOptions{Search: search, Limit: limit})

			w := cmd.OutOrStdout()
			if out.Structured() {
				return out.Encode(w, cards)
			}

			if len(cards) == 0 {
				fmt.Fprintln(w, "No flashcards found.")
				return nil
			}

			table := output.NewTable("ID", "Question", "Answer")
			for _, c := range cards {
				table.AddRow(output.Truncate(c.ID, 12), output.Truncate(c.Question, 40), output.Truncate(c.Answer, 40))
			}
			table.Render(w)

			fmt.Fprintf(w, "\nTotal: %d flashcard(s)\n", table.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only cards whose question or answer contains this text")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of results")
	out.AddOutputFlags(cmd, output.OutputTable)

	return cmd
}

func newCardShowCmd(s *session) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "show <flashcard-id>",
		Short: "Show one flashcard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			card, ok := s.app.Store.Get(args[0])
			if !ok {
				return fmt.Errorf("flashcard not found: %s", args[0])
			}

			w := cmd.OutOrStdout()
			if out.Structured() {
				return out.Encode(w, card)
			}
			fmt.Fprintf(w, "ID: %s\n\n", card.ID)
			fmt.Fprintf(w, "Q: %s\n\n", card.Question)
			fmt.Fprintf(w, "A: %s\n", card.Answer)
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

func newCardEditCmd(s *session) *cobra.Command {
	var (
		question string
		answer   string
		out      output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "edit <flashcard-id>",
		Short: "Edit a flashcard",
		Long:  "Change the question, the answer, or both. The card keeps its id and position.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			id := args[0]
			card, ok := s.app.Store.Get(id)
			if !ok {
				return fmt.Errorf("flashcard not found: %s", id)
			}
			if cmd.Flags().Changed("question") {
				card.Question = question
			}
			if cmd.Flags().Changed("answer") {
				card.Answer = answer
			}

			if _, err := s.app.Store.Update(id, card.Question, card.Answer); err != nil {
				return fmt.Errorf("edit flashcard: %w", err)
			}
			card, _ = s.app.Store.Get(id)

			w := cmd.OutOrStdout()
			if out.Structured() {
				return out.Encode(w, card)
			}
			fmt.Fprintf(w, "Flashcard updated: %s\n", card.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "New question text")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "New answer text")
	out.AddOutputFlags(cmd, output.OutputTable)

	return cmd
}

func newCardDeleteCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <flashcard-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a flashcard",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !s.app.Store.Delete(id) {
				return fmt.Errorf("flashcard not found: %s", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Flashcard deleted: %s\n", id)
			return nil
		},
	}

	return cmd
}
