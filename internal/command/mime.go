// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/meta"
	"github.com/staranto/mimemap/internal/output"
)

// MimeCommandAction is the action handler for the "mime" subcommand. It prints
// the preferred MIME type, or every MIME type with --all, of each extension. A
// leading dot on an extension is ignored.
func MimeCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errors.New("at least one extension is required")
	}

	b, err := NewBuilder(ctx, cmd)
	if err != nil {
		return err
	}
	m := b.Mapping()

	rows := make([]output.ExtRow, 0, cmd.NArg())
	for _, arg := range cmd.Args().Slice() {
		ext := strings.TrimPrefix(arg, ".")
		switch {
		case cmd.Bool("all"):
			rows = append(rows, output.NewExtRow(ext, m.AllMimeTypes(ext)...))
		default:
			if mime, ok := m.MimeType(ext); ok {
				rows = append(rows, output.NewExtRow(ext, mime))
			} else {
				rows = append(rows, output.NewExtRow(ext))
			}
		}
	}

	return Emit(cmd, rows)
}

// MimeCommandBuilder constructs the cli.Command definition for the "mime"
// command.
func MimeCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "mime",
		Usage:     "MIME type lookup by extension",
		UsageText: `mimemap mime EXT... [options]`,
		ArgsUsage: "EXT...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "list every MIME type, preferred first",
				HideDefault: true,
			},
		},
		Action: MimeCommandAction,
		Meta:   meta,
	}).Build()
}
