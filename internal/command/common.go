// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/aws"
	"github.com/staranto/mimemap/internal/builder"
	"github.com/staranto/mimemap/internal/cache"
	s3store "github.com/staranto/mimemap/internal/cache/s3"
	"github.com/staranto/mimemap/internal/config"
	"github.com/staranto/mimemap/internal/meta"
	"github.com/staranto/mimemap/internal/output"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// CommandBuilder constructs a cli.Command for a subcommand using a consistent
// pattern. It wires metadata, applies global flags and the config namespace,
// and sets up validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	ArgsUsage string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		ArgsUsage: cb.ArgsUsage,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: append(cb.Flags, NewGlobalFlags(cb.Name)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			config.SetNamespace(cb.Name)
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			m := GetMeta(c)
			log.Debugf("Executing action for %v", m.Args)
			return cb.Action(ctx, c)
		},
	}
}

// NewLoader returns the cache loader selected by the --s3-* flags. Without a
// bucket the cache lives on the local filesystem.
func NewLoader(ctx context.Context, cmd *cli.Command) (*cache.Loader, error) {
	opts := []cache.Option{cache.WithContext(ctx)}

	if bucket := cmd.String("s3-bucket"); bucket != "" {
		client, err := aws.NewS3Client(ctx,
			aws.WithProfile(cmd.String("s3-profile")),
			aws.WithRegion(cmd.String("s3-region")),
			aws.WithEndpoint(cmd.String("s3-endpoint")),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		log.WithFields(log.Fields{
			"bucket": bucket,
			"prefix": cmd.String("s3-prefix"),
		}).Debug("using S3 cache store")
		opts = append(opts, cache.WithStore(s3store.New(client, bucket, cmd.String("s3-prefix"))))
	}

	return cache.New(opts...), nil
}

// NewBuilder creates the Builder described by the global flags and applies
// the config file's add list followed by any --add flags.
func NewBuilder(ctx context.Context, cmd *cli.Command) (*builder.Builder, error) {
	loader, err := NewLoader(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return newBuilder(cmd, builder.WithLoader(loader))
}

func newBuilder(cmd *cli.Command, opts ...builder.Option) (*builder.Builder, error) {
	definitions := cmd.String("definitions")
	cachePath := cmd.String("cache")

	logger := log.WithFields(log.Fields{
		"definitions": definitions,
		"cache":       cachePath,
		"blank":       cmd.Bool("blank"),
	})

	var (
		b   *builder.Builder
		err error
	)
	switch {
	case cmd.Bool("blank"):
		logger.Debug("starting blank")
		b = builder.Blank(opts...)
	case definitions != "":
		logger.Debug("loading definitions file")
		b, err = builder.FromFile(definitions, append(opts, builder.WithCachePath(cachePath))...)
	case cachePath != "":
		logger.Debug("loading cache file")
		b, err = builder.FromCacheFile(cachePath, opts...)
	default:
		logger.Debug("loading built-in definitions")
		b, err = builder.FromBuiltin(opts...)
	}
	if err != nil {
		return nil, err
	}

	if err := applyAdds(b, cmd); err != nil {
		return nil, err
	}

	return b, nil
}

func applyAdds(b *builder.Builder, cmd *cli.Command) error {
	specs, _ := config.GetStringSlice("add", nil)
	specs = append(specs, cmd.StringSlice("add")...)
	if len(specs) == 0 {
		return nil
	}

	assocs, err := builder.ParseAssociations(specs)
	if err != nil {
		return err
	}
	log.Debugf("applying %d associations", len(assocs))
	b.AddAll(assocs)

	return nil
}

// OutputOptions collects the presentation flags of cmd. Commands without
// --filter or --query read them as empty.
func OutputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format: cmd.String("output"),
		Filter: cmd.String("filter"),
		Query:  cmd.String("query"),
		Color:  output.ColorEnabled(cmd.Bool("color"), Writer(cmd)),
		Titles: cmd.Bool("titles"),
	}
}

// Writer returns where command output goes.
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return cmd.Writer
}

// Emit encodes rows and passes them to the common output routine.
func Emit(cmd *cli.Command, rows any) error {
	raw, err := output.Encode(rows)
	if err != nil {
		return err
	}
	return output.SliceDiceSpit(raw, OutputOptions(cmd), Writer(cmd))
}
