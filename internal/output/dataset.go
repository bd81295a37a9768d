// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/staranto/mimemap/internal/mapping"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Orientations accepted by Dataset.
const (
	ByMime = "mime"
	ByExt  = "ext"
)

// MimeRow is one MIME type and its extensions, preferred first.
type MimeRow struct {
	Mime string   `json:"mime"`
	Ext  []string `json:"ext"`
}

// ExtRow is one extension and its MIME types, preferred first.
type ExtRow struct {
	Ext  string   `json:"ext"`
	Mime []string `json:"mime"`
}

// NewMimeRow builds a row, never leaving Ext nil so it encodes as [].
func NewMimeRow(mime string, exts ...string) MimeRow {
	return MimeRow{Mime: mime, Ext: append([]string{}, exts...)}
}

// NewExtRow builds a row, never leaving Mime nil so it encodes as [].
func NewExtRow(ext string, mimes ...string) ExtRow {
	return ExtRow{Ext: ext, Mime: append([]string{}, mimes...)}
}

// Dataset renders the whole mapping as a JSON array of rows sorted by key.
func Dataset(m *mapping.Mapping, by string) ([]byte, error) {
	switch by {
	case "", ByMime:
		rows := make([]MimeRow, 0, len(m.Extensions))
		for _, mime := range m.MimeKeys() {
			rows = append(rows, NewMimeRow(mime, m.Extensions[mime]...))
		}
		return Encode(rows)
	case ByExt:
		rows := make([]ExtRow, 0, len(m.Mimes))
		for _, ext := range m.ExtensionKeys() {
			rows = append(rows, NewExtRow(ext, m.Mimes[ext]...))
		}
		return Encode(rows)
	default:
		return nil, fmt.Errorf("unknown orientation %q, expected %s or %s", by, ByMime, ByExt)
	}
}

// Encode marshals rows into the JSON document SliceDiceSpit consumes.
func Encode(rows any) ([]byte, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	return data, nil
}
