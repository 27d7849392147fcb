// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"github.com/staranto/gedcomdiff/internal/config"
)

// Meta contains runtime metadata shared with the command action. It carries
// CLI arguments, loaded configuration and the starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	StartingDir string
}
