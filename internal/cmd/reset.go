// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(s *session) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the deck with the sample cards",
		Long:  "Discard every card and restore the seven sample cards a new deck starts with.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes all %d card(s); pass --yes to confirm", len(s.app.Controller.Cards()))
			}
			if err := s.app.Controller.ResetToSeed(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deck reset to %d sample card(s).\n", len(s.app.Controller.Cards()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm replacing the deck")
	return cmd
}
