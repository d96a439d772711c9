// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"nickandperla.net/fplot/internal/export"
	"nickandperla.net/fplot/pkg/fplot"
)

func newPlotCmd(app *app) *cobra.Command {
	var (
		minF, maxF, stepF string
		deg, rad          bool
		format            string
		out               string
	)

	cmd := &cobra.Command{
		Use:   "plot <formula>",
		Short: "Sample a formula and print the series",
		Long: `Sample a formula over [min, max] and print the points.

The formula may use x, pi, e, + - * / ^ and the functions
sin cos tan asin acos atan log ln exp abs sqrt pow cbrt.
Multiplication may be implicit ("2x", "(x+1)(x-1)") and a function may
be applied without parentheses ("sin x").

Undefined points are printed as an empty y in CSV and skipped in the
table. Use --out to write the CSV to a file; "-" picks a name derived
from the formula.`,
		Example: `  fplot plot "2x^2+1" --min -5 --max 5 --step 1
  fplot plot "tan x" --format table
  fplot plot "sin(x)*x" --deg --out -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			angle, err := app.angle(deg, rad)
			if err != nil {
				return err
			}

			p, err := app.plotter()
			if err != nil {
				return err
			}
			defer p.Close()

			req := fplot.Request{
				Formula: strings.Join(args, " "),
				Min:     pick(cmd, "min", minF, app.cfg.Defaults.Min),
				Max:     pick(cmd, "max", maxF, app.cfg.Defaults.Max),
				Step:    pick(cmd, "step", stepF, app.cfg.Defaults.Step),
				Angle:   angle,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			res, err := p.Build(ctx, req)
			if err != nil {
				return userError(cmd, err)
			}

			return writeResult(cmd, res, req.Formula, format, out)
		},
	}

	cmd.Flags().StringVar(&minF, "min", "", "start of the interval (default from config, -10)")
	cmd.Flags().StringVar(&maxF, "max", "", "end of the interval (default from config, 10)")
	cmd.Flags().StringVar(&stepF, "step", "", "grid step (default from config, 0.1)")
	cmd.Flags().BoolVar(&deg, "deg", false, "x is in degrees")
	cmd.Flags().BoolVar(&rad, "rad", false, "x is in radians")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or table")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write CSV to this file (\"-\" derives a name from the formula)")

	return cmd
}

// pick returns the flag value when it was given, otherwise fallback.
func pick(cmd *cobra.Command, name, value, fallback string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

func writeResult(cmd *cobra.Command, res *fplot.Result, formula, format, out string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(cmd.ErrOrStderr(), "y = %s (%d points, %d undefined of %d, %s)\n",
		res.Canonical.Display, len(res.Series), res.Meta.Invalid, res.Meta.Total, res.Angle)

	if out != "" {
		name := out
		if name == "-" {
			name = export.CSVFilename(formula)
		}
		if err := writeCSVFile(name, res.Series); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", name)
		return nil
	}

	return writeSeries(w, res.Series, format)
}

// writeCSVFile writes s as CSV to a new file called name.
func writeCSVFile(name string, s fplot.Series) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := export.WriteCSV(f, s); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func writeSeries(w io.Writer, s fplot.Series, format string) error {
	switch format {
	case "csv":
		return export.WriteCSV(w, s)
	case "table":
		return export.WriteTable(w, s)
	default:
		return fmt.Errorf("unknown format %q (use csv or table)", format)
	}
}
