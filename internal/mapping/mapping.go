// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrNotMirrored is wrapped by Mirrored when the two sides disagree.
var ErrNotMirrored = errors.New("mapping is not mirrored")

// Mapping associates MIME types with extensions in both directions. The first
// entry of every list is the preferred one.
type Mapping struct {
	// Extensions maps a MIME type to its extensions, e.g. image/jpeg ->
	// [jpeg jpg jpe].
	Extensions map[string][]string `json:"extensions"`
	// Mimes maps an extension to its MIME types, e.g. jpg -> [image/jpeg].
	Mimes map[string][]string `json:"mimes"`
}

// New returns a blank mapping.
func New() *Mapping {
	return &Mapping{
		Extensions: map[string][]string{},
		Mimes:      map[string][]string{},
	}
}

// Append adds ext to the end of mime's extension list and mime to the end of
// ext's MIME list. Duplicates are kept.
func (m *Mapping) Append(mime, ext string) {
	m.init()
	m.Extensions[mime] = append(m.Extensions[mime], ext)
	m.Mimes[ext] = append(m.Mimes[ext], mime)
}

func (m *Mapping) init() {
	if m.Extensions == nil {
		m.Extensions = map[string][]string{}
	}
	if m.Mimes == nil {
		m.Mimes = map[string][]string{}
	}
}

// Extension returns the preferred extension for mime.
func (m *Mapping) Extension(mime string) (string, bool) {
	if exts := m.Extensions[mime]; len(exts) > 0 {
		return exts[0], true
	}
	return "", false
}

// AllExtensions returns every extension for mime in preference order.
func (m *Mapping) AllExtensions(mime string) []string {
	return slices.Clone(m.Extensions[mime])
}

// MimeType returns the preferred MIME type for ext.
func (m *Mapping) MimeType(ext string) (string, bool) {
	if mimes := m.Mimes[ext]; len(mimes) > 0 {
		return mimes[0], true
	}
	return "", false
}

// AllMimeTypes returns every MIME type for ext in preference order.
func (m *Mapping) AllMimeTypes(ext string) []string {
	return slices.Clone(m.Mimes[ext])
}

// Len returns the number of MIME types and extensions known.
func (m *Mapping) Len() (mimes int, exts int) {
	return len(m.Extensions), len(m.Mimes)
}

// MimeKeys returns the MIME types in lexical order.
func (m *Mapping) MimeKeys() []string {
	return sortedKeys(m.Extensions)
}

// ExtensionKeys returns the extensions in lexical order.
func (m *Mapping) ExtensionKeys() []string {
	return sortedKeys(m.Mimes)
}

// Clone returns a deep copy of m.
func (m *Mapping) Clone() *Mapping {
	c := New()
	for k, v := range m.Extensions {
		c.Extensions[k] = slices.Clone(v)
	}
	for k, v := range m.Mimes {
		c.Mimes[k] = slices.Clone(v)
	}
	return c
}

// Equal reports whether both sides of m and o hold the same lists in the same
// order. A nil map and an empty map are equal.
func (m *Mapping) Equal(o *Mapping) bool {
	if m == nil || o == nil {
		return m == o
	}
	return sideEqual(m.Extensions, o.Extensions) && sideEqual(m.Mimes, o.Mimes)
}

// Mirrored checks that every extension listed for a MIME type lists that MIME
// type back, and vice versa.
func (m *Mapping) Mirrored() error {
	for _, mime := range m.MimeKeys() {
		for _, ext := range m.Extensions[mime] {
			if !slices.Contains(m.Mimes[ext], mime) {
				return fmt.Errorf("%w: %s lists %s but %s does not list it back", ErrNotMirrored, mime, ext, ext)
			}
		}
	}
	for _, ext := range m.ExtensionKeys() {
		for _, mime := range m.Mimes[ext] {
			if !slices.Contains(m.Extensions[mime], ext) {
				return fmt.Errorf("%w: %s lists %s but %s does not list it back", ErrNotMirrored, ext, mime, mime)
			}
		}
	}
	return nil
}

func sideEqual(a, b map[string][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !slices.Equal(av, bv) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
