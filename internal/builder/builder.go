// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"slices"

	"github.com/apex/log"

	"github.com/staranto/mimemap/internal/builtin"
	"github.com/staranto/mimemap/internal/cache"
	"github.com/staranto/mimemap/internal/mapping"
)

// Loader loads a mapping for a definitions file through a cache and saves
// mappings as caches. *cache.Loader is the default implementation.
type Loader interface {
	Load(source, cachePath string) (*mapping.Mapping, error)
	Save(m *mapping.Mapping, path string) error
}

// Builder owns a mapping and the loader used to persist it. It is not safe
// for concurrent use.
type Builder struct {
	mapping *mapping.Mapping
	loader  Loader
}

type options struct {
	loader      Loader
	definitions string
	cachePath   string
}

// Option customizes how a Builder is created.
type Option func(*options)

// WithLoader replaces the default cache loader.
func WithLoader(l Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithDefinitions makes FromBuiltin read path instead of the embedded
// definitions.
func WithDefinitions(path string) Option {
	return func(o *options) { o.definitions = path }
}

// WithCachePath makes FromBuiltin and FromFile use path as the cache instead
// of the definitions path plus the loader's suffix.
func WithCachePath(path string) Option {
	return func(o *options) { o.cachePath = path }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.loader == nil {
		o.loader = cache.New()
	}
	return o
}

// FromBuiltin returns a Builder holding the built-in definitions.
func FromBuiltin(opts ...Option) (*Builder, error) {
	o := newOptions(opts)

	source := o.definitions
	if source == "" {
		p, err := builtin.Path()
		if err != nil {
			return nil, err
		}
		source = p
	}

	return load(o, source, o.cachePath)
}

// FromFile returns a Builder holding the definitions read from path.
func FromFile(path string, opts ...Option) (*Builder, error) {
	o := newOptions(opts)
	return load(o, path, o.cachePath)
}

// FromCacheFile returns a Builder holding the mapping cached at path. There
// is no source to check the cache against, so any well-formed cache is used.
// A missing or unreadable cache yields a blank mapping, which is then written
// to path.
func FromCacheFile(path string, opts ...Option) (*Builder, error) {
	o := newOptions(opts)
	return load(o, "", path)
}

// Blank returns a Builder with no associations. It does no I/O.
func Blank(opts ...Option) *Builder {
	o := newOptions(opts)
	return &Builder{mapping: mapping.New(), loader: o.loader}
}

func load(o options, source, cachePath string) (*Builder, error) {
	m, err := o.loader.Load(source, cachePath)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = mapping.New()
	}
	return &Builder{mapping: m, loader: o.loader}, nil
}

// Add associates mime with extension. With preferExtension set, extension
// becomes the first (preferred) extension of mime, otherwise it goes last.
// preferMime does the same for mime within extension's list. Adding an
// existing association with a preference moves it to the front.
func (b *Builder) Add(mime, extension string, preferExtension, preferMime bool) {
	exts := slices.Clone(b.mapping.Extensions[mime])
	mimes := slices.Clone(b.mapping.Mimes[extension])

	if preferExtension {
		exts = slices.Insert(exts, 0, extension)
	} else {
		exts = append(exts, extension)
	}

	if preferMime {
		mimes = slices.Insert(mimes, 0, mime)
	} else {
		mimes = append(mimes, mime)
	}

	if b.mapping.Extensions == nil {
		b.mapping.Extensions = map[string][]string{}
	}
	if b.mapping.Mimes == nil {
		b.mapping.Mimes = map[string][]string{}
	}
	b.mapping.Extensions[mime] = unique(exts)
	b.mapping.Mimes[extension] = unique(mimes)

	log.WithFields(log.Fields{
		"mime":      mime,
		"extension": extension,
	}).Debug("added association")
}

// Mapping returns the mapping held by b. It is not a copy.
func (b *Builder) Mapping() *mapping.Mapping {
	return b.mapping
}

// Save writes the mapping to path through the loader.
func (b *Builder) Save(path string) error {
	return b.loader.Save(b.mapping, path)
}

// unique drops repeated values, keeping the first occurrence of each.
func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
