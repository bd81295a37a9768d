// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"slices"

	"github.com/apex/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/mimemap/internal/mapping"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Supported renderings of a difference.
const (
	FormatASCII = "ascii"
	FormatDelta = "delta"
)

// Options controls how Diff renders its text.
type Options struct {
	Format string
	Color  bool
}

// Changes lists MIME types by how they differ between the left and right
// mappings.
type Changes struct {
	Added   []string
	Removed []string
	Changed []string
}

// Result is the outcome of Diff.
type Result struct {
	Modified bool
	Changes  Changes
	Text     string
}

// Diff compares left against right. Text is empty when nothing changed.
func Diff(left, right *mapping.Mapping, opts Options) (Result, error) {
	if left == nil || right == nil {
		return Result{}, fmt.Errorf("cannot diff a nil mapping")
	}

	a, err := json.Marshal(left)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode left mapping: %w", err)
	}
	b, err := json.Marshal(right)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode right mapping: %w", err)
	}

	d, err := gojsondiff.New().Compare(a, b)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compare mappings: %w", err)
	}

	result := Result{
		Modified: d.Modified(),
		Changes:  changes(left, right),
	}
	log.WithFields(log.Fields{
		"added":   len(result.Changes.Added),
		"removed": len(result.Changes.Removed),
		"changed": len(result.Changes.Changed),
	}).Debug("diffed mappings")

	if !result.Modified {
		return result, nil
	}

	switch opts.Format {
	case "", FormatASCII:
		var leftDoc map[string]interface{}
		if err := json.Unmarshal(a, &leftDoc); err != nil {
			return Result{}, fmt.Errorf("failed to decode left mapping: %w", err)
		}
		f := formatter.NewAsciiFormatter(leftDoc, formatter.AsciiFormatterConfig{
			ShowArrayIndex: true,
			Coloring:       opts.Color,
		})
		result.Text, err = f.Format(d)
	case FormatDelta:
		result.Text, err = formatter.NewDeltaFormatter().Format(d)
	default:
		return Result{}, fmt.Errorf("unknown diff format %q", opts.Format)
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to format diff: %w", err)
	}

	return result, nil
}

func changes(left, right *mapping.Mapping) Changes {
	var c Changes
	for _, mime := range right.MimeKeys() {
		theirs, ok := left.Extensions[mime]
		switch {
		case !ok:
			c.Added = append(c.Added, mime)
		case !slices.Equal(theirs, right.Extensions[mime]):
			c.Changed = append(c.Changed, mime)
		}
	}
	for _, mime := range left.MimeKeys() {
		if _, ok := right.Extensions[mime]; !ok {
			c.Removed = append(c.Removed, mime)
		}
	}
	return c
}
