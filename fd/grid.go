// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package fd

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrGrid is returned for grids with fewer than three points along an axis.
	ErrGrid = errors.New("fd: grid needs at least 3 points per axis")

	// ErrShape is returned when a field and its scratch buffer differ in shape.
	ErrShape = errors.New("fd: field shapes differ")

	// ErrSteps is returned for a negative number of time steps.
	ErrSteps = errors.New("fd: negative step count")
)

// Grid1D is a uniform grid on [0, Length] with field U.
type Grid1D struct {
	NX int
	DX float64
	U  []float64
}

// NewGrid1D returns nx points on [0, length], all set to 1.
func NewGrid1D(nx int, length float64) *Grid1D {
	g := &Grid1D{
		NX: nx,
		DX: length / float64(nx-1),
		U:  make([]float64, nx),
	}
	for i := range g.U {
		g.U[i] = 1
	}
	return g
}

// X returns the coordinate of point i.
func (g *Grid1D) X(i int) float64 {
	return float64(i) * g.DX
}

// Hat sets U to value on the points int(low/DX) up to, but excluding,
// int(high/DX+1).
func (g *Grid1D) Hat(low, high, value float64) {
	lo, hi := hatRange(low, high, g.DX, g.NX)
	for i := lo; i < hi; i++ {
		g.U[i] = value
	}
}

// Grid2D is a uniform grid on [0, Length]² with fields U and V.
type Grid2D struct {
	NX, NY int
	DX, DY float64
	U, V   *mat.Dense
}

// NewGrid2D returns an nx×ny grid on [0, length]², with U and V set to 1.
func NewGrid2D(nx, ny int, length float64) *Grid2D {
	g := &Grid2D{
		NX: nx,
		NY: ny,
		DX: length / float64(nx-1),
		DY: length / float64(ny-1),
		U:  ones(nx, ny),
		V:  ones(nx, ny),
	}
	return g
}

func ones(r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = 1
	}
	return mat.NewDense(r, c, data)
}

// Hat sets U and V to value on the square [low, high]², using the same
// index rule as Grid1D.Hat on each axis.
func (g *Grid2D) Hat(low, high, value float64) {
	ilo, ihi := hatRange(low, high, g.DX, g.NX)
	jlo, jhi := hatRange(low, high, g.DY, g.NY)
	for i := ilo; i < ihi; i++ {
		u := g.U.RawRowView(i)
		v := g.V.RawRowView(i)
		for j := jlo; j < jhi; j++ {
			u[j] = value
			v[j] = value
		}
	}
}

func hatRange(low, high, d float64, n int) (lo, hi int) {
	lo = max(int(low/d), 0)
	hi = min(int(high/d+1), n)
	return lo, hi
}

func check1D(u, un []float64, nt int) error {
	if len(u) < 3 {
		return fmt.Errorf("%w: nx=%d", ErrGrid, len(u))
	}
	if len(un) != len(u) {
		return fmt.Errorf("%w: len(u)=%d, len(un)=%d", ErrShape, len(u), len(un))
	}
	if nt < 0 {
		return fmt.Errorf("%w: %d", ErrSteps, nt)
	}
	return nil
}

func check2D(nt int, fields ...*mat.Dense) error {
	r, c := fields[0].Dims()
	if r < 3 || c < 3 {
		return fmt.Errorf("%w: %dx%d", ErrGrid, r, c)
	}
	for _, f := range fields[1:] {
		if fr, fc := f.Dims(); fr != r || fc != c {
			return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShape, r, c, fr, fc)
		}
	}
	if nt < 0 {
		return fmt.Errorf("%w: %d", ErrSteps, nt)
	}
	return nil
}
