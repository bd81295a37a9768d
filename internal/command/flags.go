// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/config"
	"github.com/staranto/mimemap/internal/output"
)

func init() {
	cfg, _ = config.Load()
}

var cfg config.Type

// NewGlobalFlags returns the flags shared by every subcommand. params[0] is
// the command name, used as the config namespace.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	ns := ""
	if len(params) > 0 {
		ns = params[0]
	}

	flags = []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "add",
			Usage: "extra association as mime:ext, applied after the config file's add list",
			Validator: func(values []string) error {
				for _, v := range values {
					if err := FlagValidators(v, AssociationValidator); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cli.BoolFlag{
			Name:        "blank",
			Usage:       "start from an empty mapping",
			HideDefault: true,
		},
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, "cache.file", &cli.StringFlag{
			Name:    "cache",
			Aliases: []string{"c"},
			Usage:   "cache file to load and refresh",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MIMEMAP_CACHE_FILE"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		}),
		&cli.BoolWithInverseFlag{
			Name:  "color",
			Usage: "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, "definitions", &cli.StringFlag{
			Name:    "definitions",
			Aliases: []string{"d"},
			Usage:   "mime.types style definitions file to use instead of the built-in set",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MIMEMAP_DEFINITIONS"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		}),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: output.FormatText,
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, "s3.bucket", &cli.StringFlag{
			Name:  "s3-bucket",
			Usage: "keep cache files in this S3 bucket instead of on disk",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MIMEMAP_S3_BUCKET"),
			),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, "s3.endpoint", &cli.StringFlag{
			Name:  "s3-endpoint",
			Usage: "S3-compatible endpoint URL, enables path-style addressing",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MIMEMAP_S3_ENDPOINT"),
			),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, "s3.prefix", &cli.StringFlag{
			Name:  "s3-prefix",
			Usage: "object key prefix for cache files",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MIMEMAP_S3_PREFIX"),
			),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, "s3.profile", &cli.StringFlag{
			Name:  "s3-profile",
			Usage: "AWS shared config profile",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_PROFILE"),
			),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, "s3.region", &cli.StringFlag{
			Name:  "s3-region",
			Usage: "AWS region of the bucket",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_REGION"),
			),
		}),
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources for key to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, key string, flag *cli.StringFlag) *cli.StringFlag {
	if ns != "" {
		src := yaml.YAML(ns+"."+key, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	src := yaml.YAML(key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
