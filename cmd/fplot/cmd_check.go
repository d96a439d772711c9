// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <formula>",
		Short: "Validate a formula and print its canonical forms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.plotter()
			if err != nil {
				return err
			}
			defer p.Close()

			c, err := p.Check(strings.Join(args, " "))
			if err != nil {
				return userError(cmd, err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "normalized: %s\n", c.Normalized)
			fmt.Fprintf(w, "display:    %s\n", c.Display)
			fmt.Fprintf(w, "eval:       %s\n", c.Eval)
			return nil
		},
	}
}
