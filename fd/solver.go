// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package fd

import (
	"go.uber.org/zap"

	"github.com/parnum/parnum/workerpool"
)

// DefaultMinParallelCells is the number of cells per time step below which a
// Solver runs a step in the caller instead of the pool.
const DefaultMinParallelCells = 4096

// Solver runs the kernels with each time step split by rows (2D) or by
// index ranges (1D) across a worker pool. A nil *Solver, or one without a
// pool, runs serially.
type Solver struct {
	pool *workerpool.Pool
	log  *zap.Logger

	// MinParallelCells overrides DefaultMinParallelCells when positive.
	// Negative values parallelize every step.
	MinParallelCells int
}

// NewSolver returns a Solver using pool. pool and log may be nil.
func NewSolver(pool *workerpool.Pool, log *zap.Logger) *Solver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Solver{pool: pool, log: log}
}

func (s *Solver) logger() *zap.Logger {
	if s == nil || s.log == nil {
		return zap.NewNop()
	}
	return s.log
}

func (s *Solver) workers() int {
	if s == nil || s.pool == nil {
		return 1
	}
	return s.pool.NumWorkers()
}

// forRange calls fn over [lo, hi), in parallel when the step updates at
// least the threshold number of cells.
func (s *Solver) forRange(lo, hi, cells int, fn func(start, end int)) {
	if hi <= lo {
		return
	}
	if s == nil || s.pool == nil || cells < s.threshold() {
		fn(lo, hi)
		return
	}
	s.pool.ParallelFor(hi-lo, func(start, end int) {
		fn(lo+start, lo+end)
	})
}

func (s *Solver) threshold() int {
	switch {
	case s.MinParallelCells > 0:
		return s.MinParallelCells
	case s.MinParallelCells < 0:
		return 0
	}
	return DefaultMinParallelCells
}
