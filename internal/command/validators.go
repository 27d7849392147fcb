// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/staranto/gedcomdiff/internal/report"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// ThresholdsValidator rejects out of range limits before any tree is read.
func ThresholdsValidator(ctx context.Context, c *cli.Command) (context.Context, error) {
	if err := thresholdsFromFlags(c).Validate(); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func OutputValidator(value any) error {
	s, ok := value.(string)
	if !ok || !slices.Contains(report.Formats, s) {
		return fmt.Errorf("must be one of %v", report.Formats)
	}
	return nil
}
