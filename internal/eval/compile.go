// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval compiles canonical evaluation-form text into a numeric
// function of x.
//
// Evaluation is delegated to govaluate, which reads "**" as exponentiation
// (its "^" is bitwise xor, which is why the evaluation form exists). The
// engine only ever sees a closed function table and a parameter resolver
// that knows x, pi and e. Text that does not re-validate against the
// formula whitelist, or is not already in evaluation form, is refused
// before it reaches the engine.
package eval

import (
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"

	"nickandperla.net/fplot/internal/expr"
	"nickandperla.net/fplot/internal/formula"
)

// AngleMode selects the unit of x.
type AngleMode int

const (
	// Radians passes x through unchanged.
	Radians AngleMode = iota
	// Degrees converts x to radians before evaluation.
	Degrees
)

// String returns the string representation of an AngleMode.
func (m AngleMode) String() string {
	switch m {
	case Radians:
		return "rad"
	case Degrees:
		return "deg"
	default:
		return "unknown"
	}
}

// ParseAngleMode parses "rad"/"radians" or "deg"/"degrees".
func ParseAngleMode(s string) (AngleMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rad", "radian", "radians":
		return Radians, true
	case "deg", "degree", "degrees":
		return Degrees, true
	default:
		return Radians, false
	}
}

// Program is a compiled formula. It is immutable and safe for concurrent use.
type Program struct {
	source string
	mode   AngleMode
	expr   *govaluate.EvaluableExpression
}

// Compile builds a Program from evaluation-form text.
func Compile(evalForm string, mode AngleMode) (*Program, error) {
	root, err := formula.ParseAndValidate(evalForm)
	if err != nil {
		return nil, err
	}
	// Only canonical text reaches the engine; "^" would otherwise be xor.
	if canon := expr.Format(root, expr.Eval); canon != evalForm {
		return nil, fmt.Errorf("compile %q: not in evaluation form, expected %q", evalForm, canon)
	}

	ge, err := govaluate.NewEvaluableExpressionWithFunctions(evalForm, functions)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", evalForm, err)
	}
	for _, v := range ge.Vars() {
		if !formula.IsSymbol(v) {
			return nil, fmt.Errorf("compile %q: unbound name %q", evalForm, v)
		}
	}

	return &Program{source: evalForm, mode: mode, expr: ge}, nil
}

// Source returns the evaluation-form text the program was compiled from.
func (p *Program) Source() string {
	return p.source
}

// Mode returns the angle mode baked into the program.
func (p *Program) Mode() AngleMode {
	return p.mode
}

// Eval evaluates the program at x. ok is false when the result is
// undefined; y then carries the non-finite value produced (NaN when
// evaluation itself failed), so callers can tell poles from domain errors.
func (p *Program) Eval(x float64) (y float64, ok bool) {
	if p.mode == Degrees {
		x = x * math.Pi / 180
	}

	defer func() {
		if recover() != nil {
			y, ok = math.NaN(), false
		}
	}()

	v, err := p.expr.Eval(bindings{x: x})
	if err != nil {
		return math.NaN(), false
	}
	f, isNum := v.(float64)
	if !isNum {
		return math.NaN(), false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f, false
	}
	return f, true
}

// bindings resolves the free symbols of a formula. It is the only source
// of names the engine can look up.
type bindings struct {
	x float64
}

func (b bindings) Get(name string) (interface{}, error) {
	switch name {
	case "x":
		return b.x, nil
	case "pi":
		return math.Pi, nil
	case "e":
		return math.E, nil
	}
	return nil, fmt.Errorf("unbound name %q", name)
}
