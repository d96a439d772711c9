// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package sample evaluates a compiled formula over an interval and builds
// a plottable series with explicit gaps where the formula is undefined.
package sample

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("fplot.sample")

// Function is a formula of one variable. Eval reports ok=false when the
// value is undefined, returning the non-finite value seen (or NaN).
type Function interface {
	Eval(x float64) (y float64, ok bool)
	Source() string
}

// Range is the closed sampling interval. Min must be less than Max.
type Range struct {
	Min float64
	Max float64
}

// Point is one sample. Defined is false where the formula has no value;
// Y is zero in that case and must not be drawn.
type Point struct {
	X       float64
	Y       float64
	Defined bool
}

// Series is ordered by ascending X with no repeated X.
type Series []Point

// Cause is a coarse guess at why samples were undefined.
type Cause string

const (
	CauseNone           Cause = ""
	CauseDivisionByZero Cause = "division-by-zero-like"
)

// Meta describes the raw grid pass.
type Meta struct {
	Invalid     int
	Total       int
	Cause       Cause
	Refinements int // Grid intervals that received extra points
}

// AllUndefined reports whether no grid point produced a value.
func (m Meta) AllUndefined() bool {
	return m.Total > 0 && m.Invalid == m.Total
}

// DefaultMaxPoints bounds the grid size when no limit is configured.
const DefaultMaxPoints = 100000

const (
	refineFactor    = 5   // Jump and slope must exceed this many typical cell heights
	refineSteps     = 10  // Sub-intervals per refined grid interval
	minRefineYRange = 1e-6
)

var (
	// ErrInvalidRange is returned when Min >= Max or a bound is not finite.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidStep is returned when the step is not a positive finite number.
	ErrInvalidStep = errors.New("invalid step")
	// ErrTooManyPoints is returned when the grid would exceed the point limit.
	ErrTooManyPoints = errors.New("too many points")
)

// divisionByZero matches a literal zero denominator such as "/0" or "/ 0"
// but not "/0.5" or "/05".
var divisionByZero = regexp.MustCompile(`/\s*0(?:[^0-9.]|$)`)

// Grid returns x values from r.Min in increments of step. The last value is
// exactly r.Max: a final point within rounding distance of Max is snapped
// to it, otherwise Max is appended.
func Grid(r Range, step float64, maxPoints int) ([]float64, error) {
	if err := Check(r, step, maxPoints); err != nil {
		return nil, err
	}
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}

	n := int(math.Floor((r.Max-r.Min)/step+1e-9)) + 1
	xs := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		xs = append(xs, round12(r.Min+float64(i)*step))
	}

	last := xs[len(xs)-1]
	switch {
	case math.Abs(r.Max-last) <= step*1e-6:
		xs[len(xs)-1] = r.Max
	case last < r.Max:
		if len(xs)+1 > maxPoints {
			return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyPoints, len(xs)+1, maxPoints)
		}
		xs = append(xs, r.Max)
	}
	xs[0] = r.Min
	return xs, nil
}

// Check validates r and step and rejects grids larger than maxPoints
// without building them. A maxPoints <= 0 selects DefaultMaxPoints.
func Check(r Range, step float64, maxPoints int) error {
	if !isFinite(r.Min) || !isFinite(r.Max) || r.Min >= r.Max {
		return ErrInvalidRange
	}
	if !isFinite(step) || step <= 0 {
		return ErrInvalidStep
	}
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	cells := (r.Max - r.Min) / step
	if math.IsInf(cells, 0) || cells+1 > float64(maxPoints) {
		return fmt.Errorf("%w: %.0f exceeds %d", ErrTooManyPoints, math.Floor(cells)+1, maxPoints)
	}
	return nil
}

// round12 rounds to 12 decimal places, absorbing accumulated step error.
func round12(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 12, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Options tunes a sampling pass.
type Options struct {
	MaxPoints int
}

// Sample evaluates f over the grid for r and step, then refines steep
// intervals once. Undefined values stay in the series as gaps.
func Sample(f Function, r Range, step float64, opts Options) (Series, Meta, error) {
	xs, err := Grid(r, step, opts.MaxPoints)
	if err != nil {
		return nil, Meta{}, err
	}

	raw := make(Series, len(xs))
	meta := Meta{Total: len(xs)}
	sawInf := false
	for i, x := range xs {
		y, ok := f.Eval(x)
		if !ok {
			meta.Invalid++
			if math.IsInf(y, 0) {
				sawInf = true
			}
			raw[i] = Point{X: x}
			continue
		}
		raw[i] = Point{X: x, Y: y, Defined: true}
	}

	if sawInf || divisionByZero.MatchString(f.Source()) {
		meta.Cause = CauseDivisionByZero
	}

	series, refined := refine(f, raw)
	meta.Refinements = refined
	series = dedupe(series)

	log.Debugf("sampled %q: %d grid points, %d undefined, %d refined intervals, %d output points",
		f.Source(), meta.Total, meta.Invalid, meta.Refinements, len(series))
	return series, meta, nil
}

// refine inserts evaluated points inside grid intervals whose jump and
// slope both exceed refineFactor typical cell heights, where a cell height
// is the y-range of the defined samples divided by the grid size. It runs
// once over the raw grid and never recurses.
func refine(f Function, raw Series) (Series, int) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range raw {
		if p.Defined {
			lo = math.Min(lo, p.Y)
			hi = math.Max(hi, p.Y)
		}
	}
	yRange := hi - lo
	if !(yRange > minRefineYRange) || len(raw) < 2 {
		return raw, 0
	}
	threshold := yRange / float64(len(raw)) * refineFactor

	out := make(Series, 0, len(raw))
	out = append(out, raw[0])
	refined := 0
	for i := 0; i+1 < len(raw); i++ {
		a, b := raw[i], raw[i+1]
		if a.Defined && b.Defined {
			dx := b.X - a.X
			dy := math.Abs(b.Y - a.Y)
			if dy > threshold && dy/dx > threshold {
				out = append(out, subdivide(f, a, b, dy)...)
				refined++
			}
		}
		out = append(out, b)
	}
	return out, refined
}

// subdivide evaluates refineSteps-1 interior points of [a, b]. Where two
// neighbouring points change sign with a jump larger than the whole
// interval's jump, the function has a pole between them: an undefined
// point is placed at their midpoint so the gap is never bridged.
func subdivide(f Function, a, b Point, jump float64) Series {
	h := (b.X - a.X) / refineSteps
	pts := make(Series, 0, refineSteps+1)
	prev := a
	for j := 1; j < refineSteps; j++ {
		x := a.X + float64(j)*h
		p := Point{X: x}
		if y, ok := f.Eval(x); ok {
			p.Y, p.Defined = y, true
		}
		if pole(prev, p, jump) {
			pts = append(pts, Point{X: (prev.X + p.X) / 2})
		}
		pts = append(pts, p)
		prev = p
	}
	if pole(prev, b, jump) {
		pts = append(pts, Point{X: (prev.X + b.X) / 2})
	}
	return pts
}

func pole(p, q Point, jump float64) bool {
	if !p.Defined || !q.Defined {
		return false
	}
	if (p.Y > 0) == (q.Y > 0) || p.Y == 0 || q.Y == 0 {
		return false
	}
	return math.Abs(q.Y-p.Y) > jump
}

// dedupe collapses points with equal X, keeping the last one. The input is
// already ordered by X.
func dedupe(s Series) Series {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, p := range s[1:] {
		if p.X == out[len(out)-1].X {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
