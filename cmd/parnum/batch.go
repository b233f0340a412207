// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/parnum/parnum/fd"
	"github.com/parnum/parnum/internal/config"
)

var errNoJobs = errors.New("no jobs in configuration")

func (a *app) batchCmd() *cobra.Command {
	var keepGoing bool
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every job of the configuration file in order",
		Long: `Runs the jobs list of the configuration file. Each job names its kind
(pi, integral, quad or fd) and may carry its own section. The keys a job sets
override the top-level section for that job; the others are inherited. An fd
job must name its scheme.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.Jobs) == 0 {
				return errNoJobs
			}
			ctx := commandContext(cmd)
			w := cmd.OutOrStdout()

			var errs []error
			for i, job := range a.cfg.Jobs {
				name := job.Name
				if name == "" {
					name = fmt.Sprintf("%s#%d", job.Kind, i)
				}
				a.log.Debug("running job", zap.String("job", name), zap.String("kind", job.Kind))

				var err error
				switch job.Kind {
				case config.KindPi:
					s := a.cfg.Pi
					if job.Pi != nil {
						s = *job.Pi
					}
					err = a.runPi(ctx, w, s)
				case config.KindIntegral:
					s := a.cfg.Integral
					if job.Integral != nil {
						s = *job.Integral
					}
					err = a.runIntegral(ctx, w, s)
				case config.KindQuadrature:
					s := a.cfg.Quadrature
					if job.Quadrature != nil {
						s = *job.Quadrature
					}
					err = a.runQuad(ctx, w, s)
				case config.KindFD:
					var p fd.Problem
					if p, err = job.FD.Problem(); err == nil {
						err = a.runFD(ctx, w, p, "")
					}
				}
				if err == nil {
					continue
				}
				err = fmt.Errorf("job %s: %w", name, err)
				if !keepGoing {
					return err
				}
				a.log.Warn("job failed", zap.String("job", name), zap.Error(err))
				errs = append(errs, err)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "run the remaining jobs after a failure")
	return cmd
}
