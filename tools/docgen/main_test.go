// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/command"
)

const sampleNotes = "# mimemap ext\n\nUnknown types print nothing.\n\n## Examples\n\n```\n# First one\nmimemap ext   image/png\nmimemap ext text/plain\n```\n"

func TestParseNotes(t *testing.T) {
	desc, exs := parseNotes(sampleNotes)
	assert.Equal(t, "Unknown types print nothing.", desc)
	require.Len(t, exs, 2)
	assert.Equal(t, example{Desc: "First one", Cmd: "mimemap ext image/png"}, exs[0])
	assert.Equal(t, example{Desc: "Example", Cmd: "mimemap ext text/plain"}, exs[1])

	desc, exs = parseNotes("# title only\n")
	assert.Empty(t, desc)
	assert.Nil(t, exs)
}

func TestFlagDocSpelling(t *testing.T) {
	assert.Equal(t, "-o, --output VALUE", flagDoc{Names: []string{"o", "output"}, Value: true}.Spelling())
	assert.Equal(t, "--all, -a", flagDoc{Names: []string{"all", "a"}}.Spelling())
}

func TestCommandPages(t *testing.T) {
	notes := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(notes, "ext.md"), []byte(sampleNotes), 0o600))

	app, err := command.InitApp(context.Background(), []string{prog})
	require.NoError(t, err)

	pages, err := commandPages(app, notes)
	require.NoError(t, err)

	byName := map[string]page{}
	for _, p := range pages {
		byName[p.Name] = p
	}
	require.Contains(t, byName, "ext")
	require.Contains(t, byName, "dump")

	ext := byName["ext"]
	assert.Equal(t, "mimemap ext MIME... [options]", ext.Synopsis)
	assert.Equal(t, "Unknown types print nothing.", ext.Description)
	assert.Len(t, ext.Examples, 2)

	var options, global []string
	for _, f := range ext.Options {
		options = append(options, f.Names[0])
	}
	for _, f := range ext.Global {
		global = append(global, f.Names[0])
	}
	assert.Equal(t, []string{"all"}, options)
	assert.Contains(t, global, "definitions")
	assert.NotContains(t, global, "all")

	// No notes file is fine.
	assert.Empty(t, byName["dump"].Description)
	assert.Empty(t, byName["dump"].Examples)
}

func TestPageRendering(t *testing.T) {
	p := page{
		Name:        "ext",
		Short:       "extension lookup by MIME type",
		Synopsis:    "mimemap ext MIME... [options]",
		Description: "Unknown types print nothing.",
		Options:     []flagDoc{{Names: []string{"all", "a"}, Usage: "list every extension"}},
		Global:      []flagDoc{{Names: []string{"cache", "c"}, Value: true, Usage: "cache file", Env: []string{"MIMEMAP_CACHE_FILE"}}},
		Examples:    []example{{Desc: "First one", Cmd: "mimemap ext image/png"}},
	}

	md := string(p.Markdown())
	assert.Contains(t, md, "# mimemap ext\n\nExtension lookup by MIME type\n")
	assert.Contains(t, md, "## Synopsis\n\n`mimemap ext MIME... [options]`")
	assert.Contains(t, md, "## Options\n\n`--all, -a`\n: list every extension\n")
	assert.Contains(t, md, "## Global options\n\n`--cache, -c VALUE`\n: cache file\n")
	assert.Contains(t, md, "`MIMEMAP_CACHE_FILE`\n: sets `--cache`")
	assert.Contains(t, md, "First one:\n\n    mimemap ext image/png\n")

	assert.NotEmpty(t, p.Man())

	tldr := string(p.TLDR())
	assert.Contains(t, tldr, "# mimemap-ext\n")
	assert.Contains(t, tldr, "> Extension lookup by MIME type.\n")
	assert.Contains(t, tldr, "- First one:\n\n`mimemap ext image/png`\n")

	bare := string(page{Name: "purge", Short: "remove old files"}.TLDR())
	assert.Contains(t, bare, "`mimemap purge --help`")
}

func TestDescribeFlag(t *testing.T) {
	d := describeFlag(&cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Sources: cli.EnvVars("MIMEMAP_OUTPUT"),
	})
	assert.Equal(t, []string{"output", "o"}, d.Names)
	assert.Equal(t, "output format", d.Usage)
	assert.True(t, d.Value)
	assert.Equal(t, []string{"MIMEMAP_OUTPUT"}, d.Env)

	d = describeFlag(&cli.BoolFlag{Name: "all"})
	assert.False(t, d.Value)
}

func TestWriteFileIfChanged(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, writeFileIfChanged(p, []byte("a\n"), true))

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(p, old, old))
	require.NoError(t, writeFileIfChanged(p, []byte("a"), true))

	after, err := os.Stat(p)
	require.NoError(t, err)
	assert.True(t, old.Equal(after.ModTime()), "unchanged content is not rewritten")

	require.NoError(t, writeFileIfChanged(p, []byte("b"), true))
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}
