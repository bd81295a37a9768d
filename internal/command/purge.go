// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/cacheutil"
	"github.com/staranto/mimemap/internal/meta"
)

// defaultPurgeHours is used when neither --hours nor cache.clean is set.
const defaultPurgeHours = 24 * 7

// PurgeCommandAction is the action handler for the "purge" subcommand. It
// removes files in the base cache directory older than --hours.
func PurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	base, ok := cacheutil.Dir()
	if !ok || !cacheutil.Enabled() {
		log.Debug("cache directory disabled")
		fmt.Fprintln(Writer(cmd), "cache directory disabled")
		return nil
	}

	hours := cmd.Int("hours")
	removed, err := cacheutil.Purge(hours)
	if err != nil {
		return err
	}

	fmt.Fprintf(Writer(cmd), "removed %d files older than %dh from %s\n", removed, hours, base)
	return nil
}

// PurgeCommandBuilder constructs the cli.Command definition for the "purge"
// command.
func PurgeCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "purge",
		Usage:     "remove old files from the cache directory",
		UsageText: `mimemap purge [options]`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "hours",
				Usage: "age in hours beyond which files are removed, 0 disables",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("cache.clean", altsrc.StringSourcer(cfg.Source)),
				),
				Value: defaultPurgeHours,
				Validator: func(value int) error {
					return FlagValidators(value, NonNegativeValidator)
				},
			},
		},
		Action: PurgeCommandAction,
		Meta:   meta,
	}).Build()
}
