// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

// Command parnum runs the parallel numerical kernels: Monte Carlo estimates,
// distributed quadrature and explicit finite-difference solvers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/parnum/parnum/internal/config"
	"github.com/parnum/parnum/internal/cpuinfo"
	"github.com/parnum/parnum/internal/hwy"
	"github.com/parnum/parnum/internal/logging"
	"github.com/parnum/parnum/mpi"
)

// app holds the state shared by every command of one invocation.
type app struct {
	configPath string
	workers    int
	seed       int64
	verbose    bool
	allProcs   bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "parnum",
		Short: "Parallel numerical kernels",
		Long: `parnum runs data-parallel numerical kernels over an in-process
message-passing world (one goroutine per rank) or a persistent worker pool:

  pi        Monte Carlo estimate of π
  integral  Monte Carlo integral of a named function
  quad      rectangle or trapezoid quadrature split across ranks
  fd        1D/2D convection, diffusion and Burgers solvers
  batch     every job listed in the configuration file`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	flags.IntVarP(&a.workers, "workers", "w", 0, "number of ranks or pool workers (0 = GOMAXPROCS)")
	flags.Int64Var(&a.seed, "seed", 0, "base random seed; rank r uses seed+r")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.allProcs, "all-procs", false, "print the output of every rank, not only the root")

	root.AddCommand(
		a.piCmd(),
		a.integralCmd(),
		a.quadCmd(),
		a.fdCmd(),
		a.schemesCmd(),
		a.batchCmd(),
		a.cpuCmd(),
	)
	return root
}

// setup loads the configuration, applies the global flags and builds the
// logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = a.workers
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = a.seed
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg, a.log = cfg, logger
	mpi.PrintAllProcs = a.allProcs
	logger.Debug("host", cpuinfo.Detect().Fields()...)
	logger.Debug("kernels", zap.Stringer("level", hwy.CurrentLevel()), zap.Int("lanes", hwy.MaxLanes[float64]()))
	return nil
}

// numWorkers resolves the configured worker count.
func (a *app) numWorkers() int {
	if a.cfg.Workers > 0 {
		return a.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
