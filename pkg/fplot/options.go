// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package fplot

import (
	"fmt"

	"nickandperla.net/fplot/internal/eval"
	"nickandperla.net/fplot/internal/store"
)

// Option configures a Plotter.
type Option func(*Plotter)

// WithSQLiteHistory keeps history in a SQLite database at path.
func WithSQLiteHistory(path string) Option {
	return func(p *Plotter) {
		s, err := store.NewSQLite(path)
		if err != nil {
			p.fail(fmt.Errorf("open history database: %w", err))
			return
		}
		p.setStore(s)
	}
}

// WithMemoryHistory keeps history in memory (for testing).
func WithMemoryHistory() Option {
	return func(p *Plotter) {
		p.setStore(store.NewMemory())
	}
}

// WithStore keeps history in a caller-provided store. The Plotter closes
// it on Close.
func WithStore(s Store) Option {
	return func(p *Plotter) {
		p.setStore(s)
	}
}

// WithHistoryLimit sets how many formulas history keeps.
func WithHistoryLimit(n int) Option {
	return func(p *Plotter) {
		p.historyLimit = n
	}
}

// WithMaxPoints caps the grid size of a single build.
func WithMaxPoints(n int) Option {
	return func(p *Plotter) {
		p.maxPoints = n
	}
}

// WithCacheSize sets how many compiled formulas are kept.
func WithCacheSize(n int) Option {
	return func(p *Plotter) {
		p.cacheSize = n
	}
}

// Store interface for custom history stores.
type Store = store.Store

// AngleMode selects the unit of x.
type AngleMode = eval.AngleMode

// Angle mode constants.
const (
	Radians = eval.Radians
	Degrees = eval.Degrees
)

// ParseAngleMode parses "rad" or "deg" (and their long forms).
func ParseAngleMode(s string) (AngleMode, bool) {
	return eval.ParseAngleMode(s)
}
