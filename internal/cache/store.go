// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
)

// Store holds cache blobs by key. For the file store the key is a path, for
// object stores it is an object key.
type Store interface {
	// Read returns the blob stored under key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the blob stored under key. Readers must never observe a
	// partially written blob.
	Write(ctx context.Context, key string, data []byte) error
}

var (
	// ErrNotFound is returned by a Store when no blob exists for a key.
	ErrNotFound = errors.New("cache entry not found")

	// ErrInvalidMapping is returned when asked to save a nil mapping.
	ErrInvalidMapping = errors.New("mapping must not be nil")
)
