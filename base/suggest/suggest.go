// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package suggest finds the closest known name to an unknown one,
// for "did you mean" hints in error messages.
package suggest

import (
	"fmt"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Threshold is the minimum similarity, from 0 to 1, for a candidate
// to be suggested.
var Threshold = 0.5

// Closest returns the candidate most similar to name, or "" if none
// reaches [Threshold].
func Closest(name string, candidates []string) string {
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false
	best, bestSim := "", Threshold
	for _, c := range candidates {
		if c == name {
			continue
		}
		if sim := strutil.Similarity(name, c, lev); sim >= bestSim {
			best, bestSim = c, sim
		}
	}
	return best
}

// Hint returns a parenthesized "did you mean" hint for name, starting
// with a space, or "" if no candidate is close enough.
func Hint(name string, candidates []string) string {
	c := Closest(name, candidates)
	if c == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", c)
}
