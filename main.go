// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/gedcomdiff/internal/command"
	"github.com/staranto/gedcomdiff/internal/config"
	"github.com/staranto/gedcomdiff/internal/log"
	"github.com/staranto/gedcomdiff/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no arguments are provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
// Every failure exits 1; differences between the trees are not failures.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.WithError(err).Debug("app run failed")
		return 1
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return initAndRunApp(args)
}

// isSetArg reports whether a is an @set reference. GEDCOM xrefs such as
// @I1@ also start with @ but are closed by a second one.
func isSetArg(a string) bool {
	return len(a) > 1 && strings.HasPrefix(a, "@") && !strings.HasSuffix(a, "@")
}

// processSetOnly expands the first @set argument into the flags stored under
// diff.<set> in the config file.
func processSetOnly(args []string) []string {
	idx := 1
	removeIdx := -1
	set := ""
	for i, a := range args[min(idx, len(args)):] {
		if isSetArg(a) {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx != -1 {
		// Remove the @set argument.
		args = append(args[:removeIdx], args[removeIdx+1:]...)
		// Expand the set arguments at the removeIdx position.
		setArgs, _ := config.GetStringSlice(command.Namespace + "." + set)
		for _, arg := range setArgs {
			parts := strings.Fields(arg)
			args = append(args[:removeIdx], append(parts, args[removeIdx:]...)...)
			removeIdx += len(parts)
		}
	}
	return args
}
