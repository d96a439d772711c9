// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package fplot provides the public API for validating, canonicalizing and
// sampling formulas of one variable.
package fplot

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tliron/commonlog"

	"nickandperla.net/fplot/internal/eval"
	"nickandperla.net/fplot/internal/formula"
	"nickandperla.net/fplot/internal/history"
	"nickandperla.net/fplot/internal/sample"
	"nickandperla.net/fplot/internal/store"
	"nickandperla.net/fplot/internal/worker"
)

var log = commonlog.GetLogger("fplot")

// Request is a build request as entered by a user. Range and step are
// text and are validated before the formula is looked at.
type Request struct {
	Formula string
	Min     string
	Max     string
	Step    string
	Angle   AngleMode
}

// Canonical holds the normalized, display and evaluation forms of a
// formula.
type Canonical = formula.Canonical

// Point, Series and Meta describe a sampled formula.
type (
	Point  = sample.Point
	Series = sample.Series
	Meta   = sample.Meta
)

// Result is a successful build.
type Result struct {
	Canonical Canonical
	Series    Series
	Meta      Meta
	Angle     AngleMode
}

type sampled struct {
	series sample.Series
	meta   sample.Meta
}

// Plotter runs builds one at a time and records successful formulas in
// history.
type Plotter struct {
	store        Store
	history      *history.History
	cache        *eval.Cache
	worker       *worker.Worker[sampled]
	historyLimit int
	maxPoints    int
	cacheSize    int
	err          error
}

// New creates a Plotter with the given options. History defaults to an
// in-memory store.
func New(opts ...Option) (*Plotter, error) {
	p := &Plotter{
		maxPoints: sample.DefaultMaxPoints,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.err != nil {
		if p.store != nil {
			p.store.Close()
		}
		return nil, p.err
	}
	if p.store == nil {
		p.store = store.NewMemory()
	}

	p.history = history.New(p.store, p.historyLimit)
	p.cache = eval.NewCache(p.cacheSize)
	p.worker = worker.New[sampled]()
	return p, nil
}

func (p *Plotter) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Plotter) setStore(s Store) {
	if p.store != nil {
		p.store.Close()
	}
	p.store = s
}

// Check runs the formula through normalization, validation and
// canonicalization without sampling it.
func (p *Plotter) Check(raw string) (Canonical, error) {
	c, err := formula.Prepare(raw)
	if err != nil {
		return Canonical{}, classify(err)
	}
	return c, nil
}

// Build validates req, samples the formula off the calling goroutine and
// records it in history. Only one build runs at a time; a concurrent call
// fails with KindBusy. Cancelling ctx abandons the wait, not the sampling.
func (p *Plotter) Build(ctx context.Context, req Request) (*Result, error) {
	raw := strings.TrimSpace(req.Formula)
	if raw == "" {
		return nil, &Error{Kind: KindEmptyFormula}
	}

	r, step, err := p.preflight(req)
	if err != nil {
		return nil, err
	}

	c, err := formula.Prepare(raw)
	if err != nil {
		return nil, classify(err)
	}

	prog, err := p.cache.Compile(c.Eval, req.Angle)
	if err != nil {
		return nil, &Error{Kind: KindCalculation, Err: err}
	}

	opts := sample.Options{MaxPoints: p.maxPoints}
	h, err := p.worker.Submit(func() (sampled, error) {
		s, m, err := sample.Sample(prog, r, step, opts)
		return sampled{series: s, meta: m}, err
	})
	if err != nil {
		return nil, classify(err)
	}

	out, err := h.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		if errors.Is(err, sample.ErrTooManyPoints) {
			return nil, &Error{Kind: KindTooManyPoints, Err: err}
		}
		return nil, &Error{Kind: KindCalculation, Err: err}
	}

	if out.meta.AllUndefined() {
		if out.meta.Cause == sample.CauseDivisionByZero {
			return nil, &Error{Kind: KindDivisionByZero}
		}
		return nil, &Error{Kind: KindUndefinedOnInterval}
	}

	if err := p.history.Add(raw); err != nil {
		log.Warningf("recording %q in history: %v", raw, err)
	}

	return &Result{
		Canonical: c,
		Series:    out.series,
		Meta:      out.meta,
		Angle:     req.Angle,
	}, nil
}

// preflight checks the numeric fields in order: all numbers, then
// min < max, then step > 0, then the grid size.
func (p *Plotter) preflight(req Request) (sample.Range, float64, error) {
	lo, okMin := parseNumber(req.Min)
	hi, okMax := parseNumber(req.Max)
	step, okStep := parseNumber(req.Step)
	if !okMin || !okMax || !okStep {
		return sample.Range{}, 0, &Error{Kind: KindNumbersRequired}
	}
	if lo >= hi {
		return sample.Range{}, 0, &Error{Kind: KindMinNotLessThanMax}
	}
	if step <= 0 {
		return sample.Range{}, 0, &Error{Kind: KindStepNotPositive}
	}

	r := sample.Range{Min: lo, Max: hi}
	if err := sample.Check(r, step, p.maxPoints); err != nil {
		return sample.Range{}, 0, &Error{Kind: KindTooManyPoints, Err: err}
	}
	return r, step, nil
}

// parseNumber accepts a finite decimal number, with "," allowed as the
// decimal separator.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	s = strings.ReplaceAll(s, "−", "-")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// History returns the recorded formulas, most recent first.
func (p *Plotter) History() []string {
	return p.history.All()
}

// ClearHistory removes every recorded formula.
func (p *Plotter) ClearHistory() error {
	return p.history.Clear()
}

// Busy reports whether a build is sampling.
func (p *Plotter) Busy() bool {
	return p.worker.Busy()
}

// Close waits briefly for a running build and releases the history store.
func (p *Plotter) Close() error {
	p.worker.Shutdown(5 * time.Second)
	return p.store.Close()
}
