// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/builder"
	"github.com/staranto/mimemap/internal/builtin"
	"github.com/staranto/mimemap/internal/cache"
	"github.com/staranto/mimemap/internal/cacheutil"
	"github.com/staranto/mimemap/internal/meta"
)

// InfoRow is one line of info output.
type InfoRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// InfoCommandAction is the action handler for the "info" subcommand. It
// reports where the mapping came from, its size and the state of its cache.
func InfoCommandAction(ctx context.Context, cmd *cli.Command) error {
	loader, err := NewLoader(ctx, cmd)
	if err != nil {
		return err
	}

	b, err := newBuilder(cmd, builder.WithLoader(loader))
	if err != nil {
		return err
	}

	source, cachePath, err := sources(cmd, loader)
	if err != nil {
		return err
	}

	m := b.Mapping()
	mimes, exts := m.Len()
	var assocs int
	for _, list := range m.Extensions {
		assocs += len(list)
	}

	rows := []InfoRow{
		{"source", orDash(source)},
		{"cache", orDash(cachePath)},
		{"store", storeName(cmd)},
		{"mimes", strconv.Itoa(mimes)},
		{"extensions", strconv.Itoa(exts)},
		{"associations", strconv.Itoa(assocs)},
	}

	if cachePath != "" {
		res := loader.Inspect(cachePath)
		rows = append(rows, InfoRow{"cache status", res.Status.String()})
		if res.Status == cache.Decoded {
			rows = append(rows, InfoRow{"cache hash", orDash(res.Envelope.Hash)})
			if source != "" {
				current, err := cacheutil.HashFile(source)
				if err == nil {
					rows = append(rows, InfoRow{"cache fresh", strconv.FormatBool(current == res.Envelope.Hash)})
				}
			}
		}
		if cmd.String("s3-bucket") == "" {
			if fi, err := os.Stat(cachePath); err == nil {
				rows = append(rows,
					InfoRow{"cache size", humanize.Bytes(uint64(fi.Size()))},
					InfoRow{"cache modified", humanize.Time(fi.ModTime())},
				)
			}
		}
	}

	if base, ok := cacheutil.Dir(); ok && cacheutil.Enabled() {
		rows = append(rows, InfoRow{"cache dir", base})
	}

	return Emit(cmd, rows)
}

// sources resolves the definitions file and cache key a builder created from
// cmd's flags reads.
func sources(cmd *cli.Command, loader *cache.Loader) (source, cachePath string, err error) {
	if cmd.Bool("blank") {
		return "", "", nil
	}

	source = cmd.String("definitions")
	cachePath = cmd.String("cache")
	if source == "" && cachePath == "" {
		if source, err = builtin.Path(); err != nil {
			return "", "", err
		}
	}
	if cachePath == "" {
		cachePath = loader.DefaultCachePath(source)
	}
	return source, cachePath, nil
}

func storeName(cmd *cli.Command) string {
	bucket := cmd.String("s3-bucket")
	if bucket == "" {
		return "file"
	}
	if prefix := cmd.String("s3-prefix"); prefix != "" {
		return "s3://" + bucket + "/" + prefix
	}
	return "s3://" + bucket
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// InfoCommandBuilder constructs the cli.Command definition for the "info"
// command.
func InfoCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "info",
		Usage:     "show where the mapping comes from and how big it is",
		UsageText: `mimemap info [options]`,
		Action:    InfoCommandAction,
		Meta:      meta,
	}).Build()
}
