// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/mimemap/internal/cacheutil"
	"github.com/staranto/mimemap/internal/definitions"
	"github.com/staranto/mimemap/internal/mapping"
)

// DefaultSuffix is appended to a definitions path to name its cache when no
// cache path is given.
const DefaultSuffix = ".db"

// Loader loads mappings through a hash-checked cache and saves them back.
type Loader struct {
	ctx    context.Context
	store  Store
	suffix string
}

// Option customizes a Loader.
type Option func(*Loader)

// WithStore sets where cache blobs are kept. Defaults to a FileStore.
func WithStore(s Store) Option {
	return func(l *Loader) { l.store = s }
}

// WithContext sets the context passed to the Store. Defaults to
// context.Background().
func WithContext(ctx context.Context) Option {
	return func(l *Loader) { l.ctx = ctx }
}

// WithSuffix overrides DefaultSuffix.
func WithSuffix(suffix string) Option {
	return func(l *Loader) { l.suffix = suffix }
}

// New returns a Loader backed by the local filesystem unless overridden.
func New(opts ...Option) *Loader {
	l := &Loader{
		ctx:    context.Background(),
		store:  NewFileStore(),
		suffix: DefaultSuffix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultCachePath returns the cache key used for source when the caller
// gives none. It is empty when source is empty.
func (l *Loader) DefaultCachePath(source string) string {
	if source == "" {
		return ""
	}
	return source + l.suffix
}

// Load returns the mapping for the definitions file at source.
//
// If cachePath names a decodable cache it is used as is when source is empty,
// or when its stored hash matches the current content hash of source.
// Otherwise the mapping is rebuilt from source (blank when source is empty)
// and written to cachePath, or to DefaultCachePath(source) when cachePath is
// empty. The returned mapping never carries the hash.
func (l *Loader) Load(source, cachePath string) (*mapping.Mapping, error) {
	logger := log.WithFields(log.Fields{"source": source, "cache": cachePath})

	var sourceHash string
	if source != "" {
		h, err := cacheutil.HashFile(source)
		if err != nil {
			return nil, err
		}
		sourceHash = h
	}

	if cachePath != "" {
		res := l.read(cachePath)
		switch {
		case res.Status == Invalid:
			logger.WithError(res.Err).Warn("ignoring unreadable cache")
		case res.Status == Decoded && (source == "" || (res.Envelope.Hash != "" && res.Envelope.Hash == sourceHash)):
			logger.Debug("cache hit")
			return res.Envelope.Mapping, nil
		case res.Status == Decoded:
			logger.WithField("hash", res.Envelope.Hash).Debug("stale cache")
		default:
			logger.Debug("cache absent")
		}
	}

	env := Envelope{Mapping: mapping.New()}
	if source != "" {
		m, err := definitions.GenerateMapping(source)
		if err != nil {
			return nil, err
		}
		env = Envelope{Mapping: m, Hash: sourceHash}
	}

	target := cachePath
	if target == "" {
		target = l.DefaultCachePath(source)
	}
	if target == "" {
		return env.Mapping, nil
	}

	if err := l.write(target, env); err != nil {
		return nil, err
	}
	logger.WithField("target", target).Debug("cache rebuilt")

	return env.Mapping, nil
}

// Save writes m to path without a hash. A mapping saved this way is only
// accepted by a Load without a source.
func (l *Loader) Save(m *mapping.Mapping, path string) error {
	if m == nil {
		return ErrInvalidMapping
	}
	return l.write(path, Envelope{Mapping: m})
}

// Inspect reads and decodes the cache at key without rebuilding or writing
// anything.
func (l *Loader) Inspect(key string) DecodeResult {
	return l.read(key)
}

func (l *Loader) read(key string) DecodeResult {
	data, err := l.store.Read(l.ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return DecodeResult{Status: Absent}
		}
		return DecodeResult{Status: Invalid, Err: err}
	}
	return Decode(data)
}

func (l *Loader) write(key string, env Envelope) error {
	data, err := Encode(env)
	if err != nil {
		return err
	}
	if err := l.store.Write(l.ctx, key, data); err != nil {
		return fmt.Errorf("failed to save mapping to %s: %w", key, err)
	}
	return nil
}
