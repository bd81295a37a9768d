// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/meta"
	"github.com/staranto/mimemap/internal/output"
)

// DumpCommandAction is the action handler for the "dump" subcommand. It lists
// the whole mapping, one row per MIME type or per extension.
func DumpCommandAction(ctx context.Context, cmd *cli.Command) error {
	b, err := NewBuilder(ctx, cmd)
	if err != nil {
		return err
	}

	raw, err := output.Dataset(b.Mapping(), cmd.String("by"))
	if err != nil {
		return err
	}

	return output.SliceDiceSpit(raw, OutputOptions(cmd), Writer(cmd))
}

// DumpCommandBuilder constructs the cli.Command definition for the "dump"
// command.
func DumpCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "dump",
		Usage:     "list the whole mapping",
		UsageText: `mimemap dump [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "by",
				Usage: "row per mime or per ext",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("dump.by", altsrc.StringSourcer(cfg.Source)),
				),
				Value: output.ByMime,
				Validator: func(value string) error {
					return FlagValidators(value, ByValidator)
				},
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "comma-separated list of filters to apply to results",
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "gjson path applied to the filtered rows",
			},
		},
		Action: DumpCommandAction,
		Meta:   meta,
	}).Build()
}
