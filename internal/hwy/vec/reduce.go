// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

// Package vec reduces float slices with hwy vectors.
package vec

import "github.com/parnum/parnum/internal/hwy"

// Sum returns the sum of v, or 0 if v is empty. Lanes accumulate
// separately and are added in lane order, followed by the tail.
//
// Example:
//
//	vec.Sum([]float64{1, 2, 3, 4}) // 10
func Sum[T hwy.Floats](v []T) T {
	if len(v) == 0 {
		return 0
	}

	sum := hwy.Zero[T]()
	lanes := sum.NumLanes()

	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		sum = hwy.Add(sum, hwy.Load(v[i:]))
	}

	result := hwy.ReduceSum(sum)
	for ; i < len(v); i++ {
		result += v[i]
	}
	return result
}

// Min returns the minimum value of v. It panics if v is empty.
func Min[T hwy.Floats](v []T) T {
	if len(v) == 0 {
		panic("vec: Min called on empty slice")
	}

	lanes := hwy.MaxLanes[T]()
	if len(v) < lanes {
		return hwy.ReduceMin(hwy.Load(v))
	}

	minVec := hwy.Load(v)
	var i int
	for i = lanes; i+lanes <= len(v); i += lanes {
		minVec = hwy.Min(minVec, hwy.Load(v[i:]))
	}

	result := hwy.ReduceMin(minVec)
	for ; i < len(v); i++ {
		if v[i] < result {
			result = v[i]
		}
	}
	return result
}

// Max returns the maximum value of v. It panics if v is empty.
func Max[T hwy.Floats](v []T) T {
	if len(v) == 0 {
		panic("vec: Max called on empty slice")
	}

	lanes := hwy.MaxLanes[T]()
	if len(v) < lanes {
		return hwy.ReduceMax(hwy.Load(v))
	}

	maxVec := hwy.Load(v)
	var i int
	for i = lanes; i+lanes <= len(v); i += lanes {
		maxVec = hwy.Max(maxVec, hwy.Load(v[i:]))
	}

	result := hwy.ReduceMax(maxVec)
	for ; i < len(v); i++ {
		if v[i] > result {
			result = v[i]
		}
	}
	return result
}
