// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package worker runs CPU-bound jobs off the caller's goroutine, one at a
// time. A job receives nothing but its own inputs and hands back a single
// result over a channel.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrBusy is returned by Submit while another job is in flight.
	ErrBusy = errors.New("worker busy")
	// ErrClosed is returned by Submit after Shutdown.
	ErrClosed = errors.New("worker closed")
)

// Handle represents a submitted job.
type Handle[T any] struct {
	id     string
	done   chan struct{}
	result T
	err    error
}

// ID returns the handle identifier.
func (h *Handle[T]) ID() string {
	return h.id
}

// Wait blocks until the job finishes or ctx is done. Cancelling ctx stops
// the wait, not the job.
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		return h.result, h.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Worker owns a single job slot.
type Worker[T any] struct {
	mu      sync.Mutex
	busy    bool
	closed  bool
	counter atomic.Int64
	wg      sync.WaitGroup
}

// New creates a new worker.
func New[T any]() *Worker[T] {
	return &Worker[T]{}
}

// Submit starts job on its own goroutine. It fails with ErrBusy if the
// previous job has not finished. A panicking job finishes with an error.
func (w *Worker[T]) Submit(job func() (T, error)) (*Handle[T], error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, ErrClosed
	}
	if w.busy {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	w.busy = true
	w.wg.Add(1)
	w.mu.Unlock()

	h := &Handle[T]{
		id:   fmt.Sprintf("_job_%d", w.counter.Add(1)),
		done: make(chan struct{}),
	}

	go func() {
		defer w.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				var zero T
				h.result, h.err = zero, fmt.Errorf("job %s panicked: %v", h.id, r)
			}
			w.mu.Lock()
			w.busy = false
			w.mu.Unlock()
			close(h.done)
		}()
		h.result, h.err = job()
	}()

	return h, nil
}

// Busy reports whether a job is in flight.
func (w *Worker[T]) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Shutdown refuses new jobs and waits for the running one, at most timeout.
func (w *Worker[T]) Shutdown(timeout time.Duration) {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
