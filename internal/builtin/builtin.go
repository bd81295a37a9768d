// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package builtin

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/staranto/mimemap/internal/cache"
	"github.com/staranto/mimemap/internal/cacheutil"
)

// FileName is the name the definitions are written under.
const FileName = "mime.types"

//go:embed mime.types
var definitions []byte

// Bytes returns the embedded definitions.
func Bytes() []byte {
	return bytes.Clone(definitions)
}

// Path writes the embedded definitions beneath the cache base directory, or
// beneath os.TempDir() when caching is disabled, and returns the file path.
// The file is only rewritten when its content differs, so its hash (and
// therefore its cache) stays valid between runs of the same binary.
func Path() (string, error) {
	base, ok, err := cacheutil.EnsureBaseDir()
	if err != nil {
		return "", err
	}
	if !ok {
		base = filepath.Join(os.TempDir(), "mimemap")
	}

	p := filepath.Join(base, FileName)
	if current, err := os.ReadFile(p); err == nil && bytes.Equal(current, definitions) {
		return p, nil
	}

	if err := cache.NewFileStore().Write(context.Background(), p, definitions); err != nil {
		return "", fmt.Errorf("failed to write built-in definitions: %w", err)
	}
	log.Debugf("wrote built-in definitions to %s", p)

	return p, nil
}
