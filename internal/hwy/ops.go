// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package hwy

// Floats is a constraint for floating-point lane types.
type Floats interface {
	~float32 | ~float64
}

// maxVecLanes is the most lanes a Vec holds: 64 bytes of float32.
const maxVecLanes = 16

// Vec is a vector of up to MaxLanes values. Vecs are values; operations
// never allocate.
//
// Vec instances should not be created directly; use Load, Set or Zero.
type Vec[T Floats] struct {
	data [maxVecLanes]T
	n    int
}

// NumLanes returns the number of lanes in v.
func (v Vec[T]) NumLanes() int {
	return v.n
}

// Data returns the lanes of v as a slice.
func (v Vec[T]) Data() []T {
	return v.data[:v.n]
}

// Load creates a vector from the first min(len(src), MaxLanes) values.
func Load[T Floats](src []T) Vec[T] {
	var v Vec[T]
	v.n = copy(v.data[:MaxLanes[T]()], src)
	return v
}

// Store writes v to the first min(len(dst), NumLanes) values of dst.
func Store[T Floats](v Vec[T], dst []T) {
	copy(dst, v.data[:v.n])
}

// Set creates a vector with all lanes set to value.
func Set[T Floats](value T) Vec[T] {
	v := Vec[T]{n: MaxLanes[T]()}
	for i := range v.n {
		v.data[i] = value
	}
	return v
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Floats]() Vec[T] {
	return Vec[T]{n: MaxLanes[T]()}
}

// Add performs element-wise addition.
func Add[T Floats](a, b Vec[T]) Vec[T] {
	r := Vec[T]{n: min(a.n, b.n)}
	for i := range r.n {
		r.data[i] = a.data[i] + b.data[i]
	}
	return r
}

// Sub performs element-wise subtraction.
func Sub[T Floats](a, b Vec[T]) Vec[T] {
	r := Vec[T]{n: min(a.n, b.n)}
	for i := range r.n {
		r.data[i] = a.data[i] - b.data[i]
	}
	return r
}

// Mul performs element-wise multiplication.
func Mul[T Floats](a, b Vec[T]) Vec[T] {
	r := Vec[T]{n: min(a.n, b.n)}
	for i := range r.n {
		r.data[i] = a.data[i] * b.data[i]
	}
	return r
}

// Div performs element-wise division.
func Div[T Floats](a, b Vec[T]) Vec[T] {
	r := Vec[T]{n: min(a.n, b.n)}
	for i := range r.n {
		r.data[i] = a.data[i] / b.data[i]
	}
	return r
}

// Min returns the element-wise minimum.
func Min[T Floats](a, b Vec[T]) Vec[T] {
	r := Vec[T]{n: min(a.n, b.n)}
	for i := range r.n {
		if a.data[i] < b.data[i] {
			r.data[i] = a.data[i]
		} else {
			r.data[i] = b.data[i]
		}
	}
	return r
}

// Max returns the element-wise maximum.
func Max[T Floats](a, b Vec[T]) Vec[T] {
	r := Vec[T]{n: min(a.n, b.n)}
	for i := range r.n {
		if a.data[i] > b.data[i] {
			r.data[i] = a.data[i]
		} else {
			r.data[i] = b.data[i]
		}
	}
	return r
}

// ReduceSum sums all lanes in order.
func ReduceSum[T Floats](v Vec[T]) T {
	var sum T
	for i := range v.n {
		sum += v.data[i]
	}
	return sum
}

// ReduceMin returns the minimum lane, or zero for an empty vector.
func ReduceMin[T Floats](v Vec[T]) T {
	if v.n == 0 {
		return 0
	}
	m := v.data[0]
	for i := 1; i < v.n; i++ {
		if v.data[i] < m {
			m = v.data[i]
		}
	}
	return m
}

// ReduceMax returns the maximum lane, or zero for an empty vector.
func ReduceMax[T Floats](v Vec[T]) T {
	if v.n == 0 {
		return 0
	}
	m := v.data[0]
	for i := 1; i < v.n; i++ {
		if v.data[i] > m {
			m = v.data[i]
		}
	}
	return m
}
