// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/cache"
	"github.com/staranto/mimemap/internal/differ"
	"github.com/staranto/mimemap/internal/mapping"
	"github.com/staranto/mimemap/internal/meta"
	"github.com/staranto/mimemap/internal/output"
)

// ErrMappingsDiffer is returned by diff --fail when the caches differ.
var ErrMappingsDiffer = errors.New("mappings differ")

// DiffCommandAction is the action handler for the "diff" subcommand. It
// compares the mappings held in two cache files.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return errors.New("exactly two cache files are required")
	}

	loader, err := NewLoader(ctx, cmd)
	if err != nil {
		return err
	}

	left, err := inspect(loader, cmd.Args().Get(0))
	if err != nil {
		return err
	}
	right, err := inspect(loader, cmd.Args().Get(1))
	if err != nil {
		return err
	}

	result, err := differ.Diff(left, right, differ.Options{
		Format: cmd.String("format"),
		Color:  output.ColorEnabled(cmd.Bool("color"), Writer(cmd)),
	})
	if err != nil {
		return err
	}

	w := Writer(cmd)
	if !result.Modified {
		fmt.Fprintln(w, "no differences")
		return nil
	}

	if cmd.Bool("summary") {
		c := result.Changes
		fmt.Fprintf(w, "%d added, %d removed, %d changed\n", len(c.Added), len(c.Removed), len(c.Changed))
	} else {
		fmt.Fprintln(w, strings.TrimRight(result.Text, "\n"))
	}

	if cmd.Bool("fail") {
		return ErrMappingsDiffer
	}
	return nil
}

func inspect(loader *cache.Loader, path string) (*mapping.Mapping, error) {
	res := loader.Inspect(path)
	switch res.Status {
	case cache.Decoded:
		return res.Envelope.Mapping, nil
	case cache.Absent:
		return nil, fmt.Errorf("%s: %w", path, cache.ErrNotFound)
	default:
		return nil, fmt.Errorf("%s: not a mapping cache: %w", path, res.Err)
	}
}

// DiffCommandBuilder constructs the cli.Command definition for the "diff"
// command.
func DiffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "compare two cache files",
		UsageText: `mimemap diff A B [options]`,
		ArgsUsage: "A B",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "fail",
				Usage:       "exit non-zero when the mappings differ",
				HideDefault: true,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "ascii or delta",
				Value: differ.FormatASCII,
			},
			&cli.BoolFlag{
				Name:        "summary",
				Aliases:     []string{"s"},
				Usage:       "only print counts of added, removed and changed MIME types",
				HideDefault: true,
			},
		},
		Action: DiffCommandAction,
		Meta:   meta,
	}).Build()
}
