// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package formula

import "nickandperla.net/fplot/internal/expr"

// Canonical holds the two equivalent textual forms of a validated formula.
type Canonical struct {
	// Normalized is the text the tree was parsed from.
	Normalized string
	// Display has explicit multiplication and minimal parentheses, e.g. "2 * x^2 + 1".
	Display string
	// Eval is the same formula for the evaluation engine, e.g. "2*x**2+1".
	Eval string
}

// Canonicalize serializes a validated tree in both forms.
func Canonicalize(root expr.Node) Canonical {
	return Canonical{
		Display: expr.Format(root, expr.Display),
		Eval:    expr.Format(root, expr.Eval),
	}
}

// Prepare runs the whole text pipeline: normalize, parse, validate and
// canonicalize. It is the single entry point for untrusted input.
func Prepare(raw string) (Canonical, error) {
	normalized := Normalize(raw)
	root, err := ParseAndValidate(normalized)
	if err != nil {
		return Canonical{}, err
	}
	c := Canonicalize(root)
	c.Normalized = normalized
	return c, nil
}
