// Copyright 2026 The parnum Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fd provides explicit finite-difference solvers for the 1D and 2D
// linear convection, nonlinear convection, diffusion and Burgers' equations.
//
// Each kernel implements one textbook forward-in-time scheme on a uniform
// grid: first-order upwind for convection, central second differences for
// diffusion. Cells outside a kernel's update range are never written, which
// gives a fixed Dirichlet boundary.
//
// 2D fields are gonum *mat.Dense values. Row i is the x index (spacing dx)
// and column j the y index (spacing dy). 1D fields are plain slices.
//
// Example usage:
//
//	g := fd.NewGrid1D(41, 2)
//	g.Hat(0.5, 1, 2)
//	un := make([]float64, g.NX)
//	fd.LinearConv1D(g.U, un, 25, 0.025, g.DX, 1)
//
// A Solver runs the same kernels with each time step split by rows across a
// workerpool.Pool. The update of step n only reads the copy of step n-1, so
// the row-parallel result is bit-identical to the serial one.
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//	res, err := fd.NewSolver(pool, logger).Run(ctx, fd.DefaultProblem(fd.SchemeBurgers2D))
//
// Stability is the caller's business: no CFL check is made.
package fd
