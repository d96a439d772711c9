// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"nickandperla.net/fplot/internal/sample"
)

// WriteTable renders the defined points of s as an aligned two-column
// table with six decimals. Gaps are skipped.
func WriteTable(w io.Writer, s sample.Series) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "x\ty\t\n")

	rows := 0
	for _, p := range s {
		if !p.Defined {
			continue
		}
		fmt.Fprintf(tw, "%.6f\t%.6f\t\n", p.X, p.Y)
		rows++
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "(%d points, %d shown)\n", len(s), rows)
	return err
}
