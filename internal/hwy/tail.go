// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package hwy

// ProcessWithTail calls fn(offset, count) for consecutive blocks covering
// [0, size): full vectors of MaxLanes first, then one shorter block for the
// remainder. Since Load and Store take count lanes from a slice of that
// length, the tail runs through the same vector code as the full blocks.
//
// Example:
//
//	hwy.ProcessWithTail[float64](len(dst), func(off, n int) {
//	    v := hwy.Load(src[off : off+n])
//	    hwy.Store(hwy.Add(v, v), dst[off:off+n])
//	})
func ProcessWithTail[T Floats](size int, fn func(offset, count int)) {
	lanes := MaxLanes[T]()
	full := size / lanes
	for i := range full {
		fn(i*lanes, lanes)
	}
	if rem := size % lanes; rem > 0 {
		fn(full*lanes, rem)
	}
}
