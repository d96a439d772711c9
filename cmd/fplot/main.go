// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Command fplot checks and samples formulas of one variable.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:     "fplot",
		Short:   "Sample formulas y = f(x) over an interval",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "YAML configuration file (default fplot.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&app.dbPath, "db", "", "SQLite history database path")
	rootCmd.PersistentFlags().BoolVar(&app.noHistory, "no-history", false, "keep history in memory only")
	rootCmd.PersistentFlags().CountVarP(&app.verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newPlotCmd(app))
	rootCmd.AddCommand(newCheckCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newREPLCmd(app))
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
