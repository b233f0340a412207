// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package montecarlo

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/parnum/parnum/mpi"
)

// PiConfig configures a π estimate.
type PiConfig struct {
	Samples int64
	Workers int
	Seed    int64
	Logger  *zap.Logger
	// Output receives each rank's share line and the root's result line
	// through mpi.Comm.Fprintf. Nil discards them.
	Output io.Writer
}

// DefaultPiConfig returns 10M samples over GOMAXPROCS workers.
func DefaultPiConfig() PiConfig {
	return PiConfig{
		Samples: DefaultPiSamples,
		Workers: defaultWorkers(),
		Seed:    DefaultSeed,
	}
}

// PiResult is the outcome of Pi, as seen by the root rank.
type PiResult struct {
	Pi     float64
	Inside int64
	// PerRank holds the hits counted by each rank, gathered on the root.
	PerRank []int64
	Samples int64
	Workers int
	Elapsed time.Duration
}

// Pi estimates π as 4·inside/samples. Each rank counts the hits of its
// share of the samples and the counts are sum-reduced to the root.
func Pi(ctx context.Context, cfg PiConfig) (PiResult, error) {
	if err := validate(cfg.Samples, cfg.Workers); err != nil {
		return PiResult{}, err
	}
	log := nopIfNil(cfg.Logger)
	out := discardIfNil(cfg.Output)
	start := time.Now()

	res := PiResult{Samples: cfg.Samples, Workers: cfg.Workers}
	err := mpi.Run(ctx, cfg.Workers, func(ctx context.Context, c *mpi.Comm) error {
		_, n := mpi.Split64(cfg.Samples, c.Size(), c.Rank())
		c.Fprintf(out, "rank %d will generate %d samples\n", c.Rank(), n)

		inside, err := CountInside(ctx, rankRand(cfg.Seed, c.Rank()), n)
		if err != nil {
			return err
		}
		total, err := mpi.Reduce(ctx, c, inside, mpi.OpSum, mpi.Root)
		if err != nil {
			return err
		}
		perRank, err := mpi.Gather(ctx, c, inside, mpi.Root)
		if err != nil {
			return err
		}
		if c.IsRoot() {
			res.Inside = total
			res.PerRank = perRank
			res.Pi = 4 * float64(total) / float64(cfg.Samples)
			res.Elapsed = time.Since(start)
			c.Fprintf(out, "pi = %.10f in %.6f s\n", res.Pi, res.Elapsed.Seconds())
		}
		return nil
	})
	if err != nil {
		return PiResult{}, fmt.Errorf("montecarlo: pi: %w", err)
	}

	log.Info("pi estimated",
		zap.Float64("pi", res.Pi),
		zap.Int64("inside", res.Inside),
		zap.Int64("samples", res.Samples),
		zap.Int("workers", res.Workers),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}
