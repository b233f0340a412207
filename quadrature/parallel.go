// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package quadrature

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/parnum/parnum/integrand"
	"github.com/parnum/parnum/mpi"
)

// DefaultNodes is the grid size of the reference runs.
const DefaultNodes = 1000

// Config configures a distributed quadrature.
type Config struct {
	A, B float64
	// Nodes is the number of grid nodes, Nodes-1 intervals.
	Nodes   int
	Rule    Rule
	Func    string
	Workers int
	Logger  *zap.Logger
	// Output receives each rank's share line and the root's result line
	// through mpi.Comm.Fprintf. Nil discards them.
	Output io.Writer
}

// DefaultConfig integrates cos over [0, 3π/2] on 1000 nodes with the
// trapezoid rule.
func DefaultConfig() Config {
	return Config{
		A:       0,
		B:       3 * math.Pi / 2,
		Nodes:   DefaultNodes,
		Rule:    RuleTrapezoid,
		Func:    integrand.Default,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Result is the outcome of Integrate.
type Result struct {
	Value   float64
	Rule    Rule
	Nodes   int
	Workers int
	Elapsed time.Duration
}

// grid is the global node layout shared by every rank.
type grid struct {
	a, b float64
	n    int
	dx   float64
}

func newGrid(a, b float64, n int) grid {
	return grid{a: a, b: b, n: n, dx: (b - a) / float64(n-1)}
}

// node returns x_i with the same arithmetic as Linspace.
func (g grid) node(i int) float64 {
	if i == g.n-1 {
		return g.b
	}
	return g.a + float64(i)*g.dx
}

// local builds the nodes and samples of the intervals [start, start+count).
func (g grid) local(f integrand.Func, start, count int) (x, y []float64) {
	x = make([]float64, count+1)
	y = make([]float64, count+1)
	for k := range x {
		x[k] = g.node(start + k)
		y[k] = f(x[k])
	}
	return x, y
}

// Integrate splits the Nodes-1 intervals across Workers ranks with
// mpi.Split, lets every rank apply the rule to its own intervals, and
// sum-reduces the partial integrals to the root. Every rank derives its nodes
// from the global grid, so neighbouring ranks share their boundary node
// exactly.
func Integrate(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Nodes < 2 {
		return Result{}, fmt.Errorf("%w: got %d", ErrNodes, cfg.Nodes)
	}
	if cfg.Workers <= 0 || cfg.Workers > cfg.Nodes-1 {
		return Result{}, fmt.Errorf("%w: %d workers for %d intervals", ErrWorkers, cfg.Workers, cfg.Nodes-1)
	}
	if !cfg.Rule.valid() {
		return Result{}, fmt.Errorf("%w: %v", ErrRule, cfg.Rule)
	}
	name := cfg.Func
	if name == "" {
		name = integrand.Default
	}
	f, err := integrand.Lookup(name)
	if err != nil {
		return Result{}, fmt.Errorf("quadrature: %w", err)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	g := newGrid(cfg.A, cfg.B, cfg.Nodes)
	out := cfg.Output
	if out == nil {
		out = io.Discard
	}

	res := Result{Rule: cfg.Rule, Nodes: cfg.Nodes, Workers: cfg.Workers}
	err = mpi.Run(ctx, cfg.Workers, func(ctx context.Context, c *mpi.Comm) error {
		first, count := mpi.Split(g.n-1, c.Size(), c.Rank())
		c.Fprintf(out, "rank %d integrates intervals [%d, %d)\n", c.Rank(), first, first+count)

		x, y := g.local(f, first, count)
		partial, err := cfg.Rule.Apply(x, y)
		if err != nil {
			return err
		}
		total, err := mpi.Reduce(ctx, c, partial, mpi.OpSum, mpi.Root)
		if err != nil {
			return err
		}
		if c.IsRoot() {
			res.Value = total
			res.Elapsed = time.Since(start)
			c.Fprintf(out, "%v = %.10f in %.6f s\n", res.Rule, res.Value, res.Elapsed.Seconds())
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("quadrature: %w", err)
	}

	log.Info("integral computed",
		zap.Stringer("rule", res.Rule),
		zap.String("func", name),
		zap.Float64("value", res.Value),
		zap.Int("nodes", res.Nodes),
		zap.Int("workers", res.Workers),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}
