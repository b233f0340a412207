// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package fd

import "github.com/parnum/parnum/internal/hwy"

// lanes calls fn(i, n) for consecutive vector blocks covering [lo, hi). The
// last block may be shorter; it goes through the same vector code, so a
// point gets the same bits whichever block it falls in.
func lanes(lo, hi int, fn func(i, n int)) {
	if hi <= lo {
		return
	}
	hwy.ProcessWithTail[float64](hi-lo, func(offset, count int) {
		fn(lo+offset, count)
	})
}

// at loads the n values of s starting at i.
func at(s []float64, i, n int) hwy.Vec[float64] {
	return hwy.Load(s[i : i+n])
}
