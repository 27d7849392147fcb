// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the gedcomdiff CLI. It wires flags, config file
// sources, validators and the diff action.
package command
