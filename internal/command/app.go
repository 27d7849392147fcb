// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/staranto/gedcomdiff/internal/config"
	"github.com/staranto/gedcomdiff/internal/log"
	"github.com/staranto/gedcomdiff/internal/meta"
)

// Namespace is the config file key space of the diff command.
const Namespace = "diff"

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// A missing config file is normal. Flags then fall back to env vars and
	// defaults.
	config.Config.Namespace = Namespace
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: err=%v", err)
	}
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:      "gedcomdiff",
		Usage:     "Report the differences between two GEDCOM family trees",
		ArgsUsage: "tree1-path person1-id tree2-path person2-id",
		Description: "Walks both trees outward from two start people believed to be the same\n" +
			"person and reports what changed in the second tree. Only people in the\n" +
			"first tree are reported; swap the trees to find additions.",
		Flags: append(NewDiffFlags(Namespace, cfg.Source),
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "gedcomdiff version info",
				HideDefault: true,
			},
		),
		Metadata: map[string]any{
			"meta": meta,
		},
		Before: ThresholdsValidator,
		Action: diffCommandAction,
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}
