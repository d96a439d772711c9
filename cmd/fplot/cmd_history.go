// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear recently plotted formulas",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List formulas, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.plotter()
			if err != nil {
				return err
			}
			defer p.Close()

			for i, f := range p.History() {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i+1, f)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every formula from history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.plotter()
			if err != nil {
				return err
			}
			defer p.Close()
			return p.ClearHistory()
		},
	})

	return cmd
}
