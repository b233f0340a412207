// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package montecarlo

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/parnum/parnum/integrand"
	"github.com/parnum/parnum/mpi"
)

// IntegralConfig configures a Monte Carlo estimate of ∫_A^B f(x) dx.
type IntegralConfig struct {
	Samples int64
	Workers int
	Seed    int64
	A, B    float64
	// Func names a function registered in package integrand.
	Func   string
	Logger *zap.Logger
	// Output receives each rank's share line and the root's result line
	// through mpi.Comm.Fprintf. Nil discards them.
	Output io.Writer
}

// DefaultIntegralConfig returns 1M samples of cos on [0, 3π/2].
func DefaultIntegralConfig() IntegralConfig {
	return IntegralConfig{
		Samples: DefaultIntegralSamples,
		Workers: defaultWorkers(),
		Seed:    DefaultSeed,
		A:       0,
		B:       3 * math.Pi / 2,
		Func:    integrand.Default,
	}
}

// IntegralResult is the outcome of Integral.
type IntegralResult struct {
	// Value is the integral estimate (B-A)·Mean.
	Value float64
	// Mean is the sample mean of f.
	Mean    float64
	Samples int64
	Workers int
	Elapsed time.Duration
}

// Integral estimates ∫_A^B f(x) dx as (B-A) times the mean of f over
// uniform samples. Each rank sums f over its share and the sums are
// reduced to the root, so ranks with the remainder weigh proportionally.
func Integral(ctx context.Context, cfg IntegralConfig) (IntegralResult, error) {
	if err := validate(cfg.Samples, cfg.Workers); err != nil {
		return IntegralResult{}, err
	}
	if !validBounds(cfg.A, cfg.B) {
		return IntegralResult{}, fmt.Errorf("%w: [%v, %v]", ErrBounds, cfg.A, cfg.B)
	}
	name := cfg.Func
	if name == "" {
		name = integrand.Default
	}
	f, err := integrand.Lookup(name)
	if err != nil {
		return IntegralResult{}, fmt.Errorf("montecarlo: %w", err)
	}
	log := nopIfNil(cfg.Logger)
	out := discardIfNil(cfg.Output)
	start := time.Now()

	var res IntegralResult
	err = mpi.Run(ctx, cfg.Workers, func(ctx context.Context, c *mpi.Comm) error {
		_, n := mpi.Split64(cfg.Samples, c.Size(), c.Rank())
		c.Fprintf(out, "rank %d will generate %d samples\n", c.Rank(), n)

		partial, err := SumSamples(ctx, rankRand(cfg.Seed, c.Rank()), f, cfg.A, cfg.B, n)
		if err != nil {
			return err
		}
		total, err := mpi.Reduce(ctx, c, partial, mpi.OpSum, mpi.Root)
		if err != nil {
			return err
		}
		if c.IsRoot() {
			mean := total / float64(cfg.Samples)
			res = IntegralResult{
				Value:   (cfg.B - cfg.A) * mean,
				Mean:    mean,
				Samples: cfg.Samples,
				Workers: cfg.Workers,
				Elapsed: time.Since(start),
			}
			c.Fprintf(out, "integral = %.10f in %.6f s\n", res.Value, res.Elapsed.Seconds())
		}
		return nil
	})
	if err != nil {
		return IntegralResult{}, fmt.Errorf("montecarlo: integral: %w", err)
	}

	log.Info("integral estimated",
		zap.String("func", name),
		zap.Float64("a", cfg.A),
		zap.Float64("b", cfg.B),
		zap.Float64("value", res.Value),
		zap.Int64("samples", res.Samples),
		zap.Int("workers", res.Workers),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}
