// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

// Package montecarlo estimates π and definite integrals by uniform sampling.
//
// Samples are split across the ranks of an mpi world with mpi.Split64, each
// rank draws from its own generator seeded with Seed+rank, and the partial
// counts or sums are reduced to the root rank. A given (Seed, Workers) pair
// always produces the same estimate.
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"

	"cogentcore.org/core/base/randx"
	"go.uber.org/zap"

	"github.com/parnum/parnum/integrand"
)

var (
	// ErrSamples is returned when the sample count is not positive.
	ErrSamples = errors.New("montecarlo: sample count must be positive")

	// ErrWorkers is returned when the worker count is not positive.
	ErrWorkers = errors.New("montecarlo: worker count must be positive")

	// ErrBounds is returned when the integration interval is empty or not finite.
	ErrBounds = errors.New("montecarlo: invalid integration bounds")
)

// Defaults taken from the reference runs.
const (
	DefaultPiSamples       = 10_000_000
	DefaultIntegralSamples = 1_000_000
	DefaultSeed            = 1
)

// checkEvery is the number of draws between context checks.
const checkEvery = 1 << 12

// CountInside draws n points uniformly in [-1, 1]² and returns how many fall
// strictly inside the unit circle. It stops early with ctx.Err() when ctx is
// done, returning the hits counted so far.
func CountInside(ctx context.Context, r randx.Rand, n int64) (int64, error) {
	var inside int64
	for done := int64(0); done < n; done += checkEvery {
		if err := ctx.Err(); err != nil {
			return inside, err
		}
		for range min(checkEvery, n-done) {
			x := 2*r.Float64() - 1
			y := 2*r.Float64() - 1
			if x*x+y*y < 1 {
				inside++
			}
		}
	}
	return inside, nil
}

// SumSamples draws n points uniformly in [a, b) and returns the sum of f
// over them. It stops early with ctx.Err() when ctx is done.
func SumSamples(ctx context.Context, r randx.Rand, f integrand.Func, a, b float64, n int64) (float64, error) {
	var sum float64
	width := b - a
	for done := int64(0); done < n; done += checkEvery {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		for range min(checkEvery, n-done) {
			sum += f(a + width*r.Float64())
		}
	}
	return sum, nil
}

// rankRand returns the generator of one rank.
func rankRand(seed int64, rank int) randx.Rand {
	return randx.NewSysRand(seed + int64(rank))
}

func validate(samples int64, workers int) error {
	if samples <= 0 {
		return fmt.Errorf("%w: got %d", ErrSamples, samples)
	}
	if workers <= 0 {
		return fmt.Errorf("%w: got %d", ErrWorkers, workers)
	}
	return nil
}

func validBounds(a, b float64) bool {
	return a < b && !math.IsInf(a, 0) && !math.IsInf(b, 0)
}

func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

func discardIfNil(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
