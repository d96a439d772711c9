// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package export turns a sampled series into text for files and terminals.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"nickandperla.net/fplot/internal/expr"
	"nickandperla.net/fplot/internal/sample"
)

// DefaultDataName is the base name used when a sanitized name comes out empty.
const DefaultDataName = "data"

// WriteCSV writes s as two columns with an "x,y" header. An undefined y is
// an empty field. An empty series writes nothing.
func WriteCSV(w io.Writer, s sample.Series) error {
	if len(s) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, p := range s {
		y := ""
		if p.Defined {
			y = expr.FormatNumber(p.Y)
		}
		if err := cw.Write([]string{expr.FormatNumber(p.X), y}); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV returns the CSV text for s.
func CSV(s sample.Series) (string, error) {
	var sb strings.Builder
	if err := WriteCSV(&sb, s); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// SanitizeFilename replaces every rune that is not a letter or digit with
// an underscore. An empty result falls back to fallback.
func SanitizeFilename(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
}

// CSVFilename builds the export file name for a formula, e.g.
// "data_sin_x_.csv" for "sin(x)".
func CSVFilename(formula string) string {
	base := SanitizeFilename(formula, "")
	if base == "" {
		return DefaultDataName + ".csv"
	}
	return DefaultDataName + "_" + base + ".csv"
}
