// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package definitions

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/mimemap/internal/mapping"
)

// ErrUnexpectedEOF is wrapped when the definitions stream fails before a clean
// end of file.
var ErrUnexpectedEOF = errors.New("unexpected end of definitions")

// maxLineSize bounds a single definitions line.
const maxLineSize = 1024 * 1024

// lineRegex splits a trimmed line into the MIME type and its extension list.
// The MIME type may not start with '#' or contain whitespace. Everything from
// the first '#' after it is a comment.
var lineRegex = regexp.MustCompile(`^([^\s#/]+(?:/\S+)?)\s+([^#]+)`)

// GenerateMapping parses the definitions file at path. An empty path yields a
// blank mapping.
func GenerateMapping(path string) (*mapping.Mapping, error) {
	if path == "" {
		return mapping.New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definitions: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return m, nil
}

// Parse reads definitions from r. Lines that do not look like a MIME type
// followed by at least one extension are skipped.
func Parse(r io.Reader) (*mapping.Mapping, error) {
	m := mapping.New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines, skipped int
	for scanner.Scan() {
		lines++

		parts := lineRegex.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if len(parts) != 3 {
			skipped++
			continue
		}

		mime := parts[1]
		for _, ext := range strings.Fields(parts[2]) {
			if mime != "" && ext != "" {
				m.Append(mime, ext)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w after line %d: %w", ErrUnexpectedEOF, lines, err)
	}

	mimes, exts := m.Len()
	log.WithFields(log.Fields{
		"lines":   lines,
		"skipped": skipped,
		"mimes":   mimes,
		"exts":    exts,
	}).Debug("parsed definitions")

	return m, nil
}
