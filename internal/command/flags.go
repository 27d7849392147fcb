// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/gedcomdiff/internal/config"
)

// NewDiffFlags constructs the flags of the diff command. When path names a
// config file, every flag can also be set there, either under the ns
// namespace or at the top level. Explicit flags and env vars win.
func NewDiffFlags(ns string, path string) (flags []cli.Flag) {
	d := config.DefaultThresholds()

	iditem := &cli.StringFlag{
		Name:  "iditem",
		Usage: `how to find the start people: "xref" for the GEDCOM id, otherwise an identifier tag such as "refn" or "exid"`,
		Value: d.IDField,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("GEDCOMDIFF_IDITEM"),
		),
	}
	personName := &cli.FloatFlag{
		Name:  "person-name-diff",
		Usage: "names less similar than this are different people (0=very different, 1=exact same)",
		Value: d.PersonName,
	}
	personDate := &cli.IntFlag{
		Name:  "person-date-diff",
		Usage: "life events more than this many days apart are different people",
		Value: d.PersonDate,
	}
	personPlace := &cli.FloatFlag{
		Name:  "person-place-diff",
		Usage: "life event places less similar than this are different people",
		Value: d.PersonPlace,
	}
	reportName := &cli.FloatFlag{
		Name:  "report-name-diff",
		Usage: "for the same person, report names and places less similar than this",
		Value: d.ReportName,
	}
	reportDate := &cli.IntFlag{
		Name:  "report-date-diff",
		Usage: "for the same person, report dates more than this many days apart",
		Value: d.ReportDate,
	}
	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   "text",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	color := &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Value:   false,
	}

	if path != "" {
		for name, sources := range map[string]*cli.ValueSourceChain{
			iditem.Name:      &iditem.Sources,
			personName.Name:  &personName.Sources,
			personDate.Name:  &personDate.Sources,
			personPlace.Name: &personPlace.Sources,
			reportName.Name:  &reportName.Sources,
			reportDate.Name:  &reportDate.Sources,
			output.Name:      &output.Sources,
			color.Name:       &color.Sources,
		} {
			NameSpacedValueChainFromConfigFile(ns, path, name, sources)
		}
	}

	flags = []cli.Flag{
		iditem,
		personName,
		personDate,
		personPlace,
		reportName,
		reportDate,
		output,
		color,
	}

	return
}

// NameSpacedValueChainFromConfigFile adds namespaced and global config file
// sources for the named flag to its Sources chain.
func NameSpacedValueChainFromConfigFile(ns string, path string, name string, sources *cli.ValueSourceChain) {
	src := yaml.YAML(ns+"."+name, altsrc.StringSourcer(path))
	sources.Chain = append(sources.Chain, src)

	src = yaml.YAML(name, altsrc.StringSourcer(path))
	sources.Chain = append(sources.Chain, src)
}

// thresholdsFromFlags collects the matching and reporting limits.
func thresholdsFromFlags(cmd *cli.Command) config.Thresholds {
	return config.Thresholds{
		PersonName:  cmd.Float("person-name-diff"),
		PersonDate:  cmd.Int("person-date-diff"),
		PersonPlace: cmd.Float("person-place-diff"),
		ReportName:  cmd.Float("report-name-diff"),
		ReportDate:  cmd.Int("report-date-diff"),
		IDField:     cmd.String("iditem"),
	}
}
