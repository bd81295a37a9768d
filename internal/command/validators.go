// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/builder"
	"github.com/staranto/mimemap/internal/output"
)

// GlobalFlagsValidator checks combinations of global flags that can not be
// caught by a single flag's validator.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.String("s3-bucket") == "" {
		for _, name := range []string{"s3-prefix", "s3-endpoint"} {
			if c.String(name) != "" {
				return fmt.Errorf("--%s requires --s3-bucket", name)
			}
		}
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

// AssociationValidator verifies a --add value parses as mime:ext.
func AssociationValidator(value any) error {
	_, err := builder.ParseAssociation(value.(string))
	return err
}

// NonNegativeValidator rejects negative numbers.
func NonNegativeValidator(value any) error {
	if value.(int) < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func ByValidator(value any) error {
	valid := []string{output.ByMime, output.ByExt}
	if !slices.Contains(valid, value.(string)) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
