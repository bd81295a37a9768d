// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/meta"
)

// BuildCommandAction is the action handler for the "build" subcommand. It
// builds the mapping selected by the global flags and saves it to OUT.
func BuildCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return errors.New("exactly one output path is required")
	}
	out := cmd.Args().First()

	b, err := NewBuilder(ctx, cmd)
	if err != nil {
		return err
	}

	if err := b.Save(out); err != nil {
		return err
	}

	mimes, exts := b.Mapping().Len()
	log.WithFields(log.Fields{"path": out, "mimes": mimes, "exts": exts}).Info("mapping saved")

	if !cmd.Bool("quiet") {
		fmt.Fprintf(Writer(cmd), "%s: %d MIME types, %d extensions\n", out, mimes, exts)
	}

	return nil
}

// BuildCommandBuilder constructs the cli.Command definition for the "build"
// command.
func BuildCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "build",
		Usage:     "build a mapping and save it as a cache file",
		UsageText: `mimemap build OUT [options]`,
		ArgsUsage: "OUT",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"Q"},
				Usage:       "do not print a summary",
				HideDefault: true,
			},
		},
		Action: BuildCommandAction,
		Meta:   meta,
	}).Build()
}
