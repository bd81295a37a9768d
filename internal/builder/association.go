// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadAssociation is wrapped when an association spec cannot be parsed.
var ErrBadAssociation = errors.New("invalid association")

// Association is one MIME type to extension pairing to be added to a Builder
// with both preferences set.
type Association struct {
	Mime      string
	Extension string
}

func (a Association) String() string {
	return a.Mime + ":" + a.Extension
}

// ParseAssociation accepts "mime:ext" or "mime ext". A leading dot on the
// extension is dropped.
func ParseAssociation(spec string) (Association, error) {
	spec = strings.TrimSpace(spec)

	var mime, ext string
	if m, e, ok := strings.Cut(spec, ":"); ok {
		mime, ext = strings.TrimSpace(m), strings.TrimSpace(e)
	} else if fields := strings.Fields(spec); len(fields) == 2 {
		mime, ext = fields[0], fields[1]
	}
	ext = strings.TrimPrefix(ext, ".")

	if mime == "" || ext == "" || strings.ContainsAny(mime+ext, " \t#") {
		return Association{}, fmt.Errorf("%w %q: want mime:ext", ErrBadAssociation, spec)
	}

	return Association{Mime: mime, Extension: ext}, nil
}

// ParseAssociations parses every spec, stopping at the first bad one.
func ParseAssociations(specs []string) ([]Association, error) {
	result := make([]Association, 0, len(specs))
	for _, s := range specs {
		a, err := ParseAssociation(s)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

// AddAll adds each association in order, preferring both sides, so the last
// association for a MIME type or extension ends up preferred.
func (b *Builder) AddAll(assocs []Association) {
	for _, a := range assocs {
		b.Add(a.Mime, a.Extension, true, true)
	}
}
