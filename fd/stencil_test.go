// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package fd

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/parnum/parnum/internal/cpuinfo"
	"github.com/parnum/parnum/internal/hwy"
)

// The one-step cases use dyadic values, so every expected value is exact.

func equal1D(t *testing.T, name string, got, want []float64) {
	t.Helper()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: u[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func equal2D(t *testing.T, name string, got *mat.Dense, want []float64) {
	t.Helper()
	r, c := got.Dims()
	if w := mat.NewDense(r, c, want); !mat.Equal(got, w) {
		t.Errorf("%s =\n%v\nwant\n%v", name, mat.Formatted(got), mat.Formatted(w))
	}
}

func TestNonlinearConv1DOneStep(t *testing.T) {
	u := []float64{1, 2, 1.5, 1}
	if err := NonlinearConv1D(u, make([]float64, 4), 1, 0.5, 1); err != nil {
		t.Fatal(err)
	}
	// u[i] - u[i]·dt·(u[i]-u[i-1])/dx
	equal1D(t, "nonlinearconv1d", u, []float64{1, 1, 1.875, 1.25})
}

func TestBurgers1DOneStep(t *testing.T) {
	u := []float64{1, 2, 1.5, 1, 1}
	if err := Burgers1D(u, make([]float64, 5), 1, 0.5, 1, 0.25); err != nil {
		t.Fatal(err)
	}
	equal1D(t, "burgers1d", u, []float64{1, 0.8125, 1.875, 1.3125, 1})
}

func TestNonlinearConv2DOneStep(t *testing.T) {
	u := mat.NewDense(3, 3, []float64{
		1, 1, 1,
		1, 2, 1,
		1, 1, 1,
	})
	v := mat.NewDense(3, 3, []float64{
		1, 1, 1,
		1, 1.5, 1,
		1, 1, 1,
	})
	if err := NonlinearConv2D(u, mat.NewDense(3, 3, nil), v, mat.NewDense(3, 3, nil), 1, 0.5, 1, 2); err != nil {
		t.Fatal(err)
	}
	equal2D(t, "u", u, []float64{
		1, 1, 1,
		1, 0.625, 1.25,
		1, 1.5, 1,
	})
	equal2D(t, "v", v, []float64{
		1, 1, 1,
		1, 0.8125, 1.125,
		1, 1.25, 1,
	})
}

func TestDiffusion2DOneStep(t *testing.T) {
	u := mat.NewDense(3, 4, []float64{
		1, 1, 1, 1,
		1, 3, 2, 1,
		1, 1, 5, 1,
	})
	// dx ≠ dy so swapping the axes changes the answer.
	if err := Diffusion2D(u, mat.NewDense(3, 4, nil), 1, 0.0625, 1, 0.5, 1); err != nil {
		t.Fatal(err)
	}
	equal2D(t, "diffusion2d", u, []float64{
		1, 1, 1, 1,
		1, 2, 2.125, 1,
		1, 1, 5, 1,
	})
}

func TestBurgers2DOneStep(t *testing.T) {
	u := mat.NewDense(3, 4, []float64{
		1, 1.5, 1, 1,
		1, 2, 1, 1,
		1, 1, 1, 1,
	})
	v := mat.NewDense(3, 4, []float64{
		1, 1, 1, 1,
		1, 1.5, 1, 1,
		1, 1, 1.5, 1,
	})
	if err := Burgers2D(u, mat.NewDense(3, 4, nil), v, mat.NewDense(3, 4, nil), 1, 0.5, 1, 2, 0.25); err != nil {
		t.Fatal(err)
	}
	equal2D(t, "u", u, []float64{
		1, 1.5, 1, 1,
		1, 0.875, 1.28125, 1,
		1, 1, 1, 1,
	})
	equal2D(t, "v", v, []float64{
		1, 1, 1, 1,
		1, 0.65625, 1.203125, 1,
		1, 1, 1.5, 1,
	})
}

// Reference loops, one point at a time.

func refBurgers1D(u []float64, nt int, dt, dx, nu float64) {
	un := make([]float64, len(u))
	for range nt {
		copy(un, u)
		for i := 1; i < len(u)-1; i++ {
			u[i] = un[i] + nu*dt*(un[i-1]+un[i+1]-2*un[i])/(dx*dx) - un[i]*dt*(un[i]-un[i-1])/dx
		}
	}
}

func refNonlinearConv1D(u []float64, nt int, dt, dx float64) {
	un := make([]float64, len(u))
	for range nt {
		copy(un, u)
		for i := 1; i < len(u); i++ {
			u[i] = un[i] - un[i]*dt*(un[i]-un[i-1])/dx
		}
	}
}

func refNonlinearConv2D(u, v [][]float64, nt int, dt, dx, dy float64) {
	for range nt {
		un, vn := clone(u), clone(v)
		for i := 1; i < len(u); i++ {
			for j := 1; j < len(u[i]); j++ {
				u[i][j] = un[i][j] - un[i][j]*dt*(un[i][j]-un[i-1][j])/dx - vn[i][j]*dt*(un[i][j]-un[i][j-1])/dy
				v[i][j] = vn[i][j] - un[i][j]*dt*(vn[i][j]-vn[i-1][j])/dx - vn[i][j]*dt*(vn[i][j]-vn[i][j-1])/dy
			}
		}
	}
}

func refDiffusion2D(u [][]float64, nt int, dt, dx, dy, nu float64) {
	for range nt {
		un := clone(u)
		for i := 1; i < len(u)-1; i++ {
			for j := 1; j < len(u[i])-1; j++ {
				u[i][j] = un[i][j] + nu*dt*(un[i+1][j]-2*un[i][j]+un[i-1][j])/(dx*dx) +
					nu*dt*(un[i][j+1]-2*un[i][j]+un[i][j-1])/(dy*dy)
			}
		}
	}
}

func refBurgers2D(u, v [][]float64, nt int, dt, dx, dy, nu float64) {
	for range nt {
		un, vn := clone(u), clone(v)
		for i := 1; i < len(u)-1; i++ {
			for j := 1; j < len(u[i])-1; j++ {
				u[i][j] = un[i][j] -
					un[i][j]*dt/dx*(un[i][j]-un[i-1][j]) -
					vn[i][j]*dt/dy*(un[i][j]-un[i][j-1]) +
					nu*dt/(dx*dx)*(un[i+1][j]-2*un[i][j]+un[i-1][j]) +
					nu*dt/(dy*dy)*(un[i][j+1]-2*un[i][j]+un[i][j-1])
				v[i][j] = vn[i][j] -
					un[i][j]*dt/dx*(vn[i][j]-vn[i-1][j]) -
					vn[i][j]*dt/dy*(vn[i][j]-vn[i][j-1]) +
					nu*dt/(dx*dx)*(vn[i+1][j]-2*vn[i][j]+vn[i-1][j]) +
					nu*dt/(dy*dy)*(vn[i][j+1]-2*vn[i][j]+vn[i][j-1])
			}
		}
	}
}

func clone(a [][]float64) [][]float64 {
	b := make([][]float64, len(a))
	for i := range a {
		b[i] = append([]float64(nil), a[i]...)
	}
	return b
}

func rowsOf(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range r {
		out[i] = append([]float64(nil), m.RawRowView(i)...)
	}
	return out
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Abs(b))
}

func nearRows(t *testing.T, name string, got *mat.Dense, want [][]float64) {
	t.Helper()
	for i, row := range want {
		for j, w := range row {
			if g := got.At(i, j); !near(g, w) {
				t.Errorf("%s: (%d, %d) = %v, want %v", name, i, j, g, w)
				return
			}
		}
	}
}

var levels = []cpuinfo.Level{cpuinfo.LevelScalar, cpuinfo.LevelSSE2, cpuinfo.LevelAVX2, cpuinfo.LevelAVX512}

func TestKernelsMatchReferenceLoops(t *testing.T) {
	defer hwy.SetLevel(hwy.CurrentLevel())
	const nx, ny = 23, 19 // not multiples of any lane count
	dx, dy := 2.0/(nx-1), 2.0/(ny-1)

	for _, level := range levels {
		hwy.SetLevel(level)

		u1 := hat1D(nx, 5, 11)
		ref1 := append([]float64(nil), u1...)
		if err := Burgers1D(u1, make([]float64, nx), 30, 0.2*dx*dx/0.07, dx, 0.07); err != nil {
			t.Fatal(err)
		}
		refBurgers1D(ref1, 30, 0.2*dx*dx/0.07, dx, 0.07)
		for i := range u1 {
			if !near(u1[i], ref1[i]) {
				t.Errorf("%v burgers1d: u[%d] = %v, want %v", level, i, u1[i], ref1[i])
			}
		}

		u1 = hat1D(nx, 5, 11)
		ref1 = append(ref1[:0], u1...)
		if err := NonlinearConv1D(u1, make([]float64, nx), 15, 0.5*dx, dx); err != nil {
			t.Fatal(err)
		}
		refNonlinearConv1D(ref1, 15, 0.5*dx, dx)
		for i := range u1 {
			if !near(u1[i], ref1[i]) {
				t.Errorf("%v nonlinearconv1d: u[%d] = %v, want %v", level, i, u1[i], ref1[i])
			}
		}

		g := NewGrid2D(nx, ny, 2)
		g.Hat(0.5, 1, 2)
		ru, rv := rowsOf(g.U), rowsOf(g.V)
		if err := NonlinearConv2D(g.U, mat.NewDense(nx, ny, nil), g.V, mat.NewDense(nx, ny, nil), 8, 0.2*dx, dx, dy); err != nil {
			t.Fatal(err)
		}
		refNonlinearConv2D(ru, rv, 8, 0.2*dx, dx, dy)
		nearRows(t, level.String()+" nonlinearconv2d u", g.U, ru)
		nearRows(t, level.String()+" nonlinearconv2d v", g.V, rv)

		g = NewGrid2D(nx, ny, 2)
		g.Hat(0.5, 1, 2)
		ru = rowsOf(g.U)
		if err := Diffusion2D(g.U, mat.NewDense(nx, ny, nil), 8, 0.2*dx*dy/0.05, dx, dy, 0.05); err != nil {
			t.Fatal(err)
		}
		refDiffusion2D(ru, 8, 0.2*dx*dy/0.05, dx, dy, 0.05)
		nearRows(t, level.String()+" diffusion2d", g.U, ru)

		g = NewGrid2D(nx, ny, 2)
		g.Hat(0.5, 1, 2)
		ru, rv = rowsOf(g.U), rowsOf(g.V)
		if err := Burgers2D(g.U, mat.NewDense(nx, ny, nil), g.V, mat.NewDense(nx, ny, nil), 8, 0.0009*dx*dy/0.01, dx, dy, 0.01); err != nil {
			t.Fatal(err)
		}
		refBurgers2D(ru, rv, 8, 0.0009*dx*dy/0.01, dx, dy, 0.01)
		nearRows(t, level.String()+" burgers2d u", g.U, ru)
		nearRows(t, level.String()+" burgers2d v", g.V, rv)
	}
}

func TestKernelsSameBitsAtEveryLevel(t *testing.T) {
	defer hwy.SetLevel(hwy.CurrentLevel())
	var first []Result
	for _, level := range levels {
		hwy.SetLevel(level)
		for k, s := range Schemes() {
			p := DefaultProblem(s)
			p.NT = 5
			res, err := (*Solver)(nil).Run(t.Context(), p)
			if err != nil {
				t.Fatalf("%v %v: %v", level, s, err)
			}
			if level == levels[0] {
				first = append(first, res)
				continue
			}
			if !mat.Equal(res.U, first[k].U) {
				t.Errorf("%v: %v differs from %v", s, level, levels[0])
			}
		}
	}
}
