// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/meta"
	"github.com/staranto/mimemap/internal/output"
)

// ExtCommandAction is the action handler for the "ext" subcommand. It prints
// the preferred extension, or every extension with --all, of each MIME type.
func ExtCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errors.New("at least one MIME type is required")
	}

	b, err := NewBuilder(ctx, cmd)
	if err != nil {
		return err
	}
	m := b.Mapping()

	rows := make([]output.MimeRow, 0, cmd.NArg())
	for _, mime := range cmd.Args().Slice() {
		switch {
		case cmd.Bool("all"):
			rows = append(rows, output.NewMimeRow(mime, m.AllExtensions(mime)...))
		default:
			if ext, ok := m.Extension(mime); ok {
				rows = append(rows, output.NewMimeRow(mime, ext))
			} else {
				rows = append(rows, output.NewMimeRow(mime))
			}
		}
	}

	return Emit(cmd, rows)
}

// ExtCommandBuilder constructs the cli.Command definition for the "ext"
// command.
func ExtCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "ext",
		Usage:     "extension lookup by MIME type",
		UsageText: `mimemap ext MIME... [options]`,
		ArgsUsage: "MIME...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "list every extension, preferred first",
				HideDefault: true,
			},
		},
		Action: ExtCommandAction,
		Meta:   meta,
	}).Build()
}
