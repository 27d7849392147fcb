// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package assign pairs up two lists of candidates, such as the children of a
// family in each tree, using a greedy highest-score-first strategy.
//
// The result is not a globally optimal assignment. A pair that wins early can
// take a candidate another pairing needed, leaving that one unmatched even
// though a different choice would have matched both.
package assign

import (
	"github.com/staranto/gedcomdiff/internal/log"
)

// Result holds the committed pairs and, in input order, the members of the
// first list that found no counterpart. Unmatched members of the second list
// are not reported.
type Result[A, B comparable] struct {
	Pairs     map[A]B
	Unmatched []A
}

// Assign pairs as with bs. The score matrix is computed once; then, while the
// best remaining score is at least floor, every cell holding that score is
// committed in as-then-bs order unless either side is already taken. No
// member of either list is used twice and every pair scores at least floor.
func Assign[A, B comparable](as []A, bs []B, score func(A, B) float64, floor float64) Result[A, B] {
	as = unique(as)
	bs = unique(bs)

	matrix := make([][]float64, len(as))
	for i, a := range as {
		matrix[i] = make([]float64, len(bs))
		for j, b := range bs {
			matrix[i][j] = score(a, b)
		}
	}

	usedA := make([]bool, len(as))
	usedB := make([]bool, len(bs))
	result := Result[A, B]{Pairs: make(map[A]B)}

	for {
		best, ok := maxOpen(matrix, usedA, usedB)
		if !ok || best < floor {
			break
		}
		for i := range as {
			if usedA[i] {
				continue
			}
			for j := range bs {
				if usedB[j] || matrix[i][j] != best {
					continue
				}
				result.Pairs[as[i]] = bs[j]
				usedA[i], usedB[j] = true, true
				log.Tracef("assign: %v -> %v score=%.3f", as[i], bs[j], best)
				break
			}
		}
	}

	for i, a := range as {
		if !usedA[i] {
			result.Unmatched = append(result.Unmatched, a)
		}
	}
	return result
}

// maxOpen returns the highest score among cells whose row and column are
// both still free.
func maxOpen(matrix [][]float64, usedA, usedB []bool) (float64, bool) {
	best, found := 0.0, false
	for i, row := range matrix {
		if usedA[i] {
			continue
		}
		for j, v := range row {
			if usedB[j] {
				continue
			}
			if !found || v > best {
				best, found = v, true
			}
		}
	}
	return best, found
}

func unique[T comparable](in []T) []T {
	seen := make(map[T]bool, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
