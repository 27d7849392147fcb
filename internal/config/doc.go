// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides the comparison thresholds and loading of
// gedcomdiff's optional user configuration. The configuration is a YAML
// document located in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/gedcomdiff.yaml or $HOME/.config/gedcomdiff.yaml
//   - Windows: %APPDATA%/gedcomdiff.yaml
//
// GEDCOMDIFF_CFG_FILE overrides the location.
package config
