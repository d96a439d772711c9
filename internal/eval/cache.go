// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"container/list"
	"sync"
)

// entry is a cache entry stored in the doubly-linked list.
type entry struct {
	key     string
	program *Program
}

// Cache is a thread-safe LRU cache of compiled programs, keyed by
// evaluation form and angle mode.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

// NewCache creates a cache holding at most capacity programs.
// A capacity <= 0 selects the default of 64.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 64
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

func cacheKey(evalForm string, mode AngleMode) string {
	return mode.String() + "|" + evalForm
}

// Compile returns the cached program for (evalForm, mode), compiling and
// caching it on a miss. Errors are not cached.
func (c *Cache) Compile(evalForm string, mode AngleMode) (*Program, error) {
	key := cacheKey(evalForm, mode)

	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		p := el.Value.(*entry).program
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	p, err := Compile(evalForm, mode)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(*entry).program, nil
	}
	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}
	c.items[key] = c.ll.PushFront(&entry{key: key, program: p})
	return p, nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// evictLocked removes the least recently used entry.
// Must be called with c.mu held.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
