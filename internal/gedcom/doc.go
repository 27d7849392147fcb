// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package gedcom reads a GEDCOM file into an immutable in-memory tree of
// individuals and families. Only the records needed to compare two trees are
// kept: names, the best birth and death events, family links and identifier
// tags usable for lookup.
package gedcom
