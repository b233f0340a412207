// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package mpi

import (
	"errors"
	"fmt"
)

// ErrOp is returned for an unknown reduction operator.
var ErrOp = errors.New("mpi: unknown reduction op")

// Op is an aggregation operation: Sum, Prod, Max, Min.
type Op int

const (
	OpSum Op = iota
	OpProd
	OpMax
	OpMin
)

func (op Op) String() string {
	switch op {
	case OpSum:
		return "sum"
	case OpProd:
		return "prod"
	case OpMax:
		return "max"
	case OpMin:
		return "min"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Number is the set of scalar types that can be reduced.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func (op Op) valid() bool {
	return op >= OpSum && op <= OpMin
}

// combine applies op to a and b. op must be valid.
func combine[T Number](op Op, a, b T) T {
	switch op {
	case OpProd:
		return a * b
	case OpMax:
		return max(a, b)
	case OpMin:
		return min(a, b)
	default:
		return a + b
	}
}
