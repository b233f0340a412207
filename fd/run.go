// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package fd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Result is the final state of a Run.
type Result struct {
	Problem Problem
	DT      float64
	// U is the final field. 1D results are a 1×nx matrix sharing the grid slice.
	U *mat.Dense
	// V is the final v field of coupled schemes, nil otherwise.
	V       *mat.Dense
	Summary Summary
	Elapsed time.Duration
}

// Run builds the grid of p, applies the hat initial condition, and advances
// p.NT steps. ctx is checked between steps.
func (s *Solver) Run(ctx context.Context, p Problem) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	log := s.logger().With(zap.Stringer("scheme", p.Scheme))
	dt := p.TimeStep()
	start := time.Now()

	var res Result
	var err error
	if p.Scheme.Dims() == 1 {
		res, err = s.run1D(ctx, p, dt)
	} else {
		res, err = s.run2D(ctx, p, dt)
	}
	if err != nil {
		return Result{}, fmt.Errorf("fd: %v: %w", p.Scheme, err)
	}

	res.Problem = p
	res.DT = dt
	res.Summary = Summarize(res.U)
	res.Elapsed = time.Since(start)
	log.Info("solve finished",
		zap.Int("nx", p.NX),
		zap.Int("ny", p.NY),
		zap.Int("nt", p.NT),
		zap.Float64("dt", dt),
		zap.Int("workers", s.workers()),
		zap.Float64("sum", res.Summary.Sum),
		zap.Float64("max", res.Summary.Max),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

func (s *Solver) run1D(ctx context.Context, p Problem, dt float64) (Result, error) {
	g := NewGrid1D(p.NX, p.Length)
	g.Hat(p.HatLow, p.HatHigh, 2)
	un := make([]float64, g.NX)

	step := func() error {
		switch p.Scheme {
		case SchemeLinearConv1D:
			return s.LinearConv1D(g.U, un, 1, dt, g.DX, p.C)
		case SchemeNonlinearConv1D:
			return s.NonlinearConv1D(g.U, un, 1, dt, g.DX)
		case SchemeDiffusion1D:
			return s.Diffusion1D(g.U, un, 1, dt, g.DX, p.Nu)
		default:
			return s.Burgers1D(g.U, un, 1, dt, g.DX, p.Nu)
		}
	}
	if err := steps(ctx, p.NT, step); err != nil {
		return Result{}, err
	}
	return Result{U: mat.NewDense(1, g.NX, g.U)}, nil
}

func (s *Solver) run2D(ctx context.Context, p Problem, dt float64) (Result, error) {
	g := NewGrid2D(p.NX, p.NY, p.Length)
	g.Hat(p.HatLow, p.HatHigh, 2)
	un := mat.NewDense(g.NX, g.NY, nil)
	var vn *mat.Dense
	if p.Scheme.Coupled() {
		vn = mat.NewDense(g.NX, g.NY, nil)
	}

	step := func() error {
		switch p.Scheme {
		case SchemeLinearConv2D:
			return s.LinearConv2D(g.U, un, 1, dt, g.DX, g.DY, p.C)
		case SchemeNonlinearConv2D:
			return s.NonlinearConv2D(g.U, un, g.V, vn, 1, dt, g.DX, g.DY)
		case SchemeDiffusion2D:
			return s.Diffusion2D(g.U, un, 1, dt, g.DX, g.DY, p.Nu)
		default:
			return s.Burgers2D(g.U, un, g.V, vn, 1, dt, g.DX, g.DY, p.Nu)
		}
	}
	if err := steps(ctx, p.NT, step); err != nil {
		return Result{}, err
	}
	res := Result{U: g.U}
	if p.Scheme.Coupled() {
		res.V = g.V
	}
	return res, nil
}

func steps(ctx context.Context, nt int, step func() error) error {
	for n := range nt {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped at step %d: %w", n, err)
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
