// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ walks two family trees outward from a pair of start people,
// through parents, partners and children, and reports how the second tree
// differs from the first. People only present in the second tree are never
// reported.
package differ
