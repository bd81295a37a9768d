// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps cache blobs as files on the local filesystem.
type FileStore struct {
	// Mode is applied to written files. Zero means 0o644.
	Mode os.FileMode
}

// NewFileStore returns a FileStore with default permissions.
func NewFileStore() *FileStore {
	return &FileStore{Mode: 0o644} //nolint:mnd
}

func (s *FileStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write stores data in a temp file next to key and renames it into place, so
// a concurrent reader sees either the old or the new blob.
func (s *FileStore) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(key)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mimemap-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, s.mode())
	}
	if err == nil {
		err = os.Rename(tmpName, key)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	return nil
}

func (s *FileStore) mode() os.FileMode {
	if s.Mode == 0 {
		return 0o644 //nolint:mnd
	}
	return s.Mode
}
