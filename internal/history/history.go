// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package history keeps the most recently plotted formulas in a Store.
package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"nickandperla.net/fplot/internal/store"
)

var log = commonlog.GetLogger("fplot.history")

// Key is the store key the list is saved under.
const Key = "formula_history_v1"

// DefaultLimit is the number of formulas kept when no limit is configured.
const DefaultLimit = 20

// History is an ordered list of formula texts, most recent first, without
// duplicates.
type History struct {
	mu    sync.Mutex
	store store.Store
	limit int
}

// New creates a history backed by s. A limit <= 0 selects DefaultLimit.
func New(s store.Store, limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{store: s, limit: limit}
}

// All returns the saved formulas, most recent first. Unreadable or corrupt
// data yields an empty list.
func (h *History) All() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load()
}

// Add moves formula to the front of the list, dropping any earlier copy
// and the oldest entries past the limit. Blank formulas are ignored.
func (h *History) Add(formula string) error {
	if strings.TrimSpace(formula) == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.load()
	next := make([]string, 0, len(prev)+1)
	next = append(next, formula)
	for _, f := range prev {
		if f != formula {
			next = append(next, f)
		}
	}
	if len(next) > h.limit {
		next = next[:h.limit]
	}
	return h.save(next)
}

// Clear removes every entry.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Delete(Key); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

func (h *History) load() []string {
	raw, ok, err := h.store.Get(Key)
	if err != nil {
		log.Warningf("reading history: %v", err)
		return []string{}
	}
	if !ok || raw == "" {
		return []string{}
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warningf("discarding corrupt history: %v", err)
		return []string{}
	}

	out := items[:0]
	for _, f := range items {
		if strings.TrimSpace(f) != "" {
			out = append(out, f)
		}
	}
	if len(out) > h.limit {
		out = out[:h.limit]
	}
	return out
}

func (h *History) save(items []string) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := h.store.Put(Key, string(data)); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
