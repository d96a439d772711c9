// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package store provides opaque key-value persistence.
package store

import "errors"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Store is the interface for key-value persistence.
type Store interface {
	// Get retrieves a value by key. ok is false if the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Put stores a value by key, overwriting if it exists.
	Put(key, value string) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases resources.
	Close() error
}
