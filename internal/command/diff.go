// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/gedcomdiff/internal/differ"
	"github.com/staranto/gedcomdiff/internal/gedcom"
	"github.com/staranto/gedcomdiff/internal/log"
	"github.com/staranto/gedcomdiff/internal/match"
	"github.com/staranto/gedcomdiff/internal/meta"
	"github.com/staranto/gedcomdiff/internal/report"
)

var (
	// ErrIdenticalFiles is returned when both tree paths name the same file.
	ErrIdenticalFiles = errors.New("identical files")

	// ErrUsage is returned for a wrong number of positional arguments.
	ErrUsage = errors.New("usage")
)

// diffCommandAction reads both trees, resolves the start people and walks
// them, writing the report to the command's writer.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("executing action for %v", meta.Args[1:])
	if meta.Config.Source != "" {
		log.Debugf("flags layered from config: source=%s namespace=%s", meta.Config.Source, meta.Config.Namespace)
	}

	if cmd.NArg() != 4 {
		return fmt.Errorf("%w: gedcomdiff [options] %s (got %d arguments)",
			ErrUsage, cmd.ArgsUsage, cmd.NArg())
	}
	args := cmd.Args()
	path1, id1, path2, id2 := args.Get(0), args.Get(1), args.Get(2), args.Get(3)

	if samePath(meta.StartingDir, path1, path2) {
		return fmt.Errorf("%w: %s and %s", ErrIdenticalFiles, path1, path2)
	}

	th := thresholdsFromFlags(cmd)
	log.WithFields(log.Fields{
		"iditem":            th.IDField,
		"person-name-diff":  th.PersonName,
		"person-date-diff":  th.PersonDate,
		"person-place-diff": th.PersonPlace,
		"report-name-diff":  th.ReportName,
		"report-date-diff":  th.ReportDate,
	}).Debug("thresholds")

	first, err := gedcom.ReadFile(path1)
	if err != nil {
		return err
	}
	second, err := gedcom.ReadFile(path2)
	if err != nil {
		return err
	}

	p1, err := first.FindOne(th.IDField, id1)
	if err != nil {
		return fmt.Errorf("%s: %w", path1, err)
	}
	p2, err := second.FindOne(th.IDField, id2)
	if err != nil {
		return fmt.Errorf("%s: %w", path2, err)
	}

	out, errOut := writers(cmd)
	r, err := report.New(out, cmd.String("output"), cmd.Bool("color") && isTerminal(out))
	if err != nil {
		return err
	}

	log.Infof("comparing %s (%d people) with %s (%d people)", path1, first.Len(), path2, second.Len())

	matcher := match.New(th)
	r.StartingPoints(p1, p2)
	if !matcher.IsSamePerson(p1, p2) {
		fmt.Fprintln(errOut, "WARNING: start persons fail test for same person")
	}

	walker := differ.New(first, second, matcher, r)
	walker.Walk(p1.ID, p2.ID)
	log.Debugf("walk done: visited=%d", len(walker.Visited()))

	return r.Close(len(walker.Visited()))
}

// samePath reports whether two paths name the same file, ignoring case.
// Relative paths are taken from dir.
func samePath(dir, a, b string) bool {
	abs := func(p string) string {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		return filepath.Clean(p)
	}
	return strings.EqualFold(abs(a), abs(b))
}

func writers(cmd *cli.Command) (io.Writer, io.Writer) {
	root := cmd.Root()
	out, errOut := root.Writer, root.ErrWriter
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return out, errOut
}

// isTerminal reports whether w is a terminal. Color codes are only written
// to terminals.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
