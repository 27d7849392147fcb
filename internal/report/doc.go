// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report renders the differences found between two trees. Every
// difference is a fixed sentence grouped under a header naming the person it
// belongs to.
package report
