// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/mimemap/internal/config"
)

const argSets = `dump:
  defaults:
    - --by ext
  images:
    - --filter mime^image/
    - -o json
`

func withArgSets(t *testing.T) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "mimemap.yaml")
	require.NoError(t, os.WriteFile(p, []byte(argSets), 0o600))
	t.Setenv("MIMEMAP_CFG", p)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

func TestMangleArguments(t *testing.T) {
	withArgSets(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults set",
			args: []string{"mimemap", "dump", "-o", "yaml"},
			want: []string{"mimemap", "dump", "--by", "ext", "-o", "yaml"},
		},
		{
			name: "named set replaces defaults",
			args: []string{"mimemap", "dump", "-t", "@images"},
			want: []string{"mimemap", "dump", "-t", "--filter", "mime^image/", "-o", "json"},
		},
		{
			name: "unknown set is dropped",
			args: []string{"mimemap", "dump", "@nope", "-t"},
			want: []string{"mimemap", "dump", "-t"},
		},
		{
			name: "command without sets",
			args: []string{"mimemap", "ext", "image/png"},
			want: []string{"mimemap", "ext", "image/png"},
		},
		{
			name: "help wins",
			args: []string{"mimemap", "dump", "@images", "-h"},
			want: []string{"mimemap", "dump", "--help"},
		},
		{
			name: "flag in command position",
			args: []string{"mimemap", "--version"},
			want: []string{"mimemap", "--version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mangleArguments(tt.args))
		})
	}
}

func TestEnsureCacheDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIMEMAP_CACHE", "")

	t.Run("created", func(t *testing.T) {
		base := filepath.Join(dir, "cache")
		t.Setenv("MIMEMAP_CACHE_DIR", base)

		var stderr bytes.Buffer
		ensureCacheDir(&stderr)
		assert.Empty(t, stderr.String())
		assert.DirExists(t, base)
	})

	t.Run("failure is reported", func(t *testing.T) {
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))
		t.Setenv("MIMEMAP_CACHE_DIR", filepath.Join(blocker, "cache"))

		var stderr bytes.Buffer
		ensureCacheDir(&stderr)
		assert.Contains(t, stderr.String(), "failed to create cache base directory")
	})

	t.Run("disabled", func(t *testing.T) {
		t.Setenv("MIMEMAP_CACHE", "0")
		t.Setenv("MIMEMAP_CACHE_DIR", filepath.Join(dir, "never"))

		var stderr bytes.Buffer
		ensureCacheDir(&stderr)
		assert.Empty(t, stderr.String())
		assert.NoDirExists(t, filepath.Join(dir, "never"))
	})
}
