// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	meta := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}

	app := &cli.Command{
		Name:  "mimemap",
		Usage: "MIME type and file extension mapping",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "mimemap version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		BuildCommandBuilder(meta),
		DiffCommandBuilder(meta),
		DumpCommandBuilder(meta),
		ExtCommandBuilder(meta),
		InfoCommandBuilder(meta),
		MimeCommandBuilder(meta),
		PurgeCommandBuilder(meta),
		CompletionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
