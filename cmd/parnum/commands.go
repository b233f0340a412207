// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parnum/parnum/fd"
	"github.com/parnum/parnum/integrand"
	"github.com/parnum/parnum/internal/config"
	"github.com/parnum/parnum/internal/cpuinfo"
	"github.com/parnum/parnum/internal/hwy"
	"github.com/parnum/parnum/montecarlo"
	"github.com/parnum/parnum/quadrature"
	"github.com/parnum/parnum/workerpool"
)

func (a *app) piCmd() *cobra.Command {
	var samples int64
	cmd := &cobra.Command{
		Use:   "pi",
		Short: "Estimate π by Monte Carlo sampling of the unit disc",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			section := a.cfg.Pi
			if cmd.Flags().Changed("samples") {
				section.Samples = samples
			}
			return a.runPi(commandContext(cmd), cmd.OutOrStdout(), section)
		},
	}
	cmd.Flags().Int64VarP(&samples, "samples", "n", 0, "number of samples (default from config)")
	return cmd
}

func (a *app) integralCmd() *cobra.Command {
	var section config.IntegralConfig
	cmd := &cobra.Command{
		Use:   "integral",
		Short: "Estimate ∫ f(x) dx on [a, b] by Monte Carlo sampling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.cfg.Integral
			flags := cmd.Flags()
			if flags.Changed("samples") {
				s.Samples = section.Samples
			}
			if flags.Changed("a") {
				s.A = section.A
			}
			if flags.Changed("b") {
				s.B = section.B
			}
			if flags.Changed("func") {
				s.Func = section.Func
			}
			return a.runIntegral(commandContext(cmd), cmd.OutOrStdout(), s)
		},
	}
	flags := cmd.Flags()
	flags.Int64VarP(&section.Samples, "samples", "n", 0, "number of samples (default from config)")
	flags.Float64Var(&section.A, "a", 0, "lower bound")
	flags.Float64Var(&section.B, "b", 0, "upper bound")
	flags.StringVarP(&section.Func, "func", "f", "", "integrand: "+strings.Join(integrand.Names(), ", "))
	return cmd
}

func (a *app) quadCmd() *cobra.Command {
	var (
		section config.QuadratureConfig
		rule    string
	)
	cmd := &cobra.Command{
		Use:   "quad",
		Short: "Integrate f on [a, b] with the rectangle or trapezoid rule across ranks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.cfg.Quadrature
			flags := cmd.Flags()
			if flags.Changed("rule") {
				r, err := quadrature.ParseRule(rule)
				if err != nil {
					return err
				}
				s.Rule = r
			}
			if flags.Changed("nodes") {
				s.Nodes = section.Nodes
			}
			if flags.Changed("a") {
				s.A = section.A
			}
			if flags.Changed("b") {
				s.B = section.B
			}
			if flags.Changed("func") {
				s.Func = section.Func
			}
			return a.runQuad(commandContext(cmd), cmd.OutOrStdout(), s)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&rule, "rule", "r", "", "rectangle or trapezoid (default from config)")
	flags.IntVar(&section.Nodes, "nodes", 0, "number of grid nodes (default from config)")
	flags.Float64Var(&section.A, "a", 0, "lower bound")
	flags.Float64Var(&section.B, "b", 0, "upper bound")
	flags.StringVarP(&section.Func, "func", "f", "", "integrand: "+strings.Join(integrand.Names(), ", "))
	return cmd
}

func (a *app) fdCmd() *cobra.Command {
	var (
		job config.FDJob
		out string
	)
	cmd := &cobra.Command{
		Use:       "fd <scheme>",
		Short:     "Run a finite-difference solver from its hat initial condition",
		Long:      "Schemes: " + strings.Join(fd.SchemeNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: fd.SchemeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := fd.ParseScheme(args[0])
			if err != nil {
				return err
			}
			job.Scheme = &s
			p, err := job.Problem()
			if err != nil {
				return err
			}
			return a.runFD(commandContext(cmd), cmd.OutOrStdout(), p, out)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&job.NX, "nx", 0, "grid points along x (default per scheme)")
	flags.IntVar(&job.NY, "ny", 0, "grid points along y, 2D schemes only")
	flags.IntVar(&job.NT, "nt", 0, "time steps (default per scheme)")
	flags.Float64Var(&job.Sigma, "sigma", 0, "Courant-like number dt is derived from")
	flags.Float64Var(&job.Nu, "nu", 0, "viscosity")
	flags.StringVarP(&out, "out", "o", "", "write the final field as CSV to this file (- for stdout)")
	return cmd
}

func (a *app) schemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List the finite-difference schemes and their default problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, s := range fd.Schemes() {
				p := fd.DefaultProblem(s)
				grid := fmt.Sprintf("%d", p.NX)
				if s.Dims() == 2 {
					grid = fmt.Sprintf("%dx%d", p.NX, p.NY)
				}
				fmt.Fprintf(w, "%-16s %dD  grid=%-8s nt=%-4d dt=%.6g\n", s, s.Dims(), grid, p.NT, p.TimeStep())
			}
			return nil
		},
	}
}

func (a *app) cpuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpu",
		Short: "Report the CPU features and parallelism available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, cpuinfo.Detect())
			fmt.Fprintf(w, "kernels: %v, %d float64 lanes\n", hwy.CurrentLevel(), hwy.MaxLanes[float64]())
			fmt.Fprintf(w, "workers: %d\n", a.numWorkers())
			return nil
		},
	}
}

func (a *app) runPi(ctx context.Context, w io.Writer, s config.PiConfig) error {
	_, err := montecarlo.Pi(ctx, montecarlo.PiConfig{
		Samples: s.Samples,
		Workers: a.numWorkers(),
		Seed:    a.cfg.Seed,
		Logger:  a.log,
		Output:  w,
	})
	return err
}

func (a *app) runIntegral(ctx context.Context, w io.Writer, s config.IntegralConfig) error {
	_, err := montecarlo.Integral(ctx, montecarlo.IntegralConfig{
		Samples: s.Samples,
		Workers: a.numWorkers(),
		Seed:    a.cfg.Seed,
		A:       s.A,
		B:       s.B,
		Func:    s.Func,
		Logger:  a.log,
		Output:  w,
	})
	return err
}

func (a *app) runQuad(ctx context.Context, w io.Writer, s config.QuadratureConfig) error {
	// A rank needs at least one interval.
	workers := min(a.numWorkers(), max(s.Nodes-1, 1))
	_, err := quadrature.Integrate(ctx, quadrature.Config{
		A:       s.A,
		B:       s.B,
		Nodes:   s.Nodes,
		Rule:    s.Rule,
		Func:    s.Func,
		Workers: workers,
		Logger:  a.log,
		Output:  w,
	})
	return err
}

func (a *app) runFD(ctx context.Context, w io.Writer, p fd.Problem, out string) error {
	pool := workerpool.New(a.numWorkers())
	defer pool.Close()
	solver := fd.NewSolver(pool, a.log)
	solver.MinParallelCells = a.cfg.FD.MinParallelCells

	res, err := solver.Run(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v = %v in %.6f s\n", p.Scheme, res.Summary, res.Elapsed.Seconds())

	switch out {
	case "":
		return nil
	case "-":
		return res.WriteCSV(w)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := res.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return f.Close()
}
