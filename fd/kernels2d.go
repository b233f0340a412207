// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package fd

import (
	"gonum.org/v1/gonum/mat"

	"github.com/parnum/parnum/internal/hwy"
)

// LinearConv2D advances u_t + c·(u_x + u_y) = 0 by nt steps with upwind
// differences. Cells with i, j ≥ 1 are updated; row 0 and column 0 are fixed.
func LinearConv2D(u, un *mat.Dense, nt int, dt, dx, dy, c float64) error {
	return (*Solver)(nil).LinearConv2D(u, un, nt, dt, dx, dy, c)
}

// NonlinearConv2D advances the coupled system
//
//	u_t + u·u_x + v·u_y = 0
//	v_t + u·v_x + v·v_y = 0
//
// by nt steps with upwind differences. Cells with i, j ≥ 1 are updated.
func NonlinearConv2D(u, un, v, vn *mat.Dense, nt int, dt, dx, dy float64) error {
	return (*Solver)(nil).NonlinearConv2D(u, un, v, vn, nt, dt, dx, dy)
}

// Diffusion2D advances u_t = ν·(u_xx + u_yy) by nt steps. Interior cells are
// updated; the outer ring is fixed.
func Diffusion2D(u, un *mat.Dense, nt int, dt, dx, dy, nu float64) error {
	return (*Solver)(nil).Diffusion2D(u, un, nt, dt, dx, dy, nu)
}

// Burgers2D advances the coupled viscous Burgers system by nt steps.
// Interior cells are updated; the outer ring is fixed.
func Burgers2D(u, un, v, vn *mat.Dense, nt int, dt, dx, dy, nu float64) error {
	return (*Solver)(nil).Burgers2D(u, un, v, vn, nt, dt, dx, dy, nu)
}

// LinearConv2D is the row-parallel form of the package function.
func (s *Solver) LinearConv2D(u, un *mat.Dense, nt int, dt, dx, dy, c float64) error {
	if err := check2D(nt, u, un); err != nil {
		return err
	}
	rows, cols := u.Dims()
	cdt, vdx, vdy := hwy.Set(c*dt), hwy.Set(dx), hwy.Set(dy)
	for range nt {
		un.Copy(u)
		s.forRange(1, rows, rows*cols, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				ur := u.RawRowView(i)
				unr := un.RawRowView(i)
				up := un.RawRowView(i - 1)
				lanes(1, cols, func(j, n int) {
					cur := at(unr, j, n)
					grad := hwy.Add(hwy.Div(hwy.Sub(cur, at(up, j, n)), vdx), hwy.Div(hwy.Sub(cur, at(unr, j-1, n)), vdy))
					hwy.Store(hwy.Sub(cur, hwy.Mul(cdt, grad)), ur[j:j+n])
				})
			}
		})
	}
	return nil
}

// NonlinearConv2D is the row-parallel form of the package function.
func (s *Solver) NonlinearConv2D(u, un, v, vn *mat.Dense, nt int, dt, dx, dy float64) error {
	if err := check2D(nt, u, un, v, vn); err != nil {
		return err
	}
	rows, cols := u.Dims()
	vdt, vdx, vdy := hwy.Set(dt), hwy.Set(dx), hwy.Set(dy)
	// conv is a·dt·(c-b)/d.
	conv := func(a, c, b, d hwy.Vec[float64]) hwy.Vec[float64] {
		return hwy.Div(hwy.Mul(hwy.Mul(a, vdt), hwy.Sub(c, b)), d)
	}
	for range nt {
		un.Copy(u)
		vn.Copy(v)
		s.forRange(1, rows, rows*cols, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				ur, vr := u.RawRowView(i), v.RawRowView(i)
				unr, vnr := un.RawRowView(i), vn.RawRowView(i)
				unUp, vnUp := un.RawRowView(i-1), vn.RawRowView(i-1)
				lanes(1, cols, func(j, n int) {
					uc, vc := at(unr, j, n), at(vnr, j, n)
					uNew := hwy.Sub(hwy.Sub(uc, conv(uc, uc, at(unUp, j, n), vdx)), conv(vc, uc, at(unr, j-1, n), vdy))
					vNew := hwy.Sub(hwy.Sub(vc, conv(uc, vc, at(vnUp, j, n), vdx)), conv(vc, vc, at(vnr, j-1, n), vdy))
					hwy.Store(uNew, ur[j:j+n])
					hwy.Store(vNew, vr[j:j+n])
				})
			}
		})
	}
	return nil
}

// Diffusion2D is the row-parallel form of the package function.
func (s *Solver) Diffusion2D(u, un *mat.Dense, nt int, dt, dx, dy, nu float64) error {
	if err := check2D(nt, u, un); err != nil {
		return err
	}
	rows, cols := u.Dims()
	nudt, vdx2, vdy2, two := hwy.Set(nu*dt), hwy.Set(dx*dx), hwy.Set(dy*dy), hwy.Set(2.0)
	for range nt {
		un.Copy(u)
		s.forRange(1, rows-1, rows*cols, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				ur := u.RawRowView(i)
				unr := un.RawRowView(i)
				up, down := un.RawRowView(i-1), un.RawRowView(i+1)
				lanes(1, cols-1, func(j, n int) {
					twice := hwy.Mul(two, at(unr, j, n))
					xx := hwy.Div(hwy.Sub(hwy.Sub(twice, at(up, j, n)), at(down, j, n)), vdx2)
					yy := hwy.Div(hwy.Sub(hwy.Sub(twice, at(unr, j-1, n)), at(unr, j+1, n)), vdy2)
					hwy.Store(hwy.Sub(at(unr, j, n), hwy.Mul(nudt, hwy.Add(xx, yy))), ur[j:j+n])
				})
			}
		})
	}
	return nil
}

// Burgers2D is the row-parallel form of the package function.
func (s *Solver) Burgers2D(u, un, v, vn *mat.Dense, nt int, dt, dx, dy, nu float64) error {
	if err := check2D(nt, u, un, v, vn); err != nil {
		return err
	}
	rows, cols := u.Dims()
	vdt, vdx, vdy := hwy.Set(dt), hwy.Set(dx), hwy.Set(dy)
	nudt, vdx2, vdy2, two := hwy.Set(nu*dt), hwy.Set(dx*dx), hwy.Set(dy*dy), hwy.Set(2.0)
	// conv is a·dt·(c-b)/d.
	conv := func(a, c, b, d hwy.Vec[float64]) hwy.Vec[float64] {
		return hwy.Div(hwy.Mul(hwy.Mul(a, vdt), hwy.Sub(c, b)), d)
	}
	// diff is ν·dt·((next-2c+prev)/dx² + (right-2c+left)/dy²).
	diff := func(c, next, prev, right, left hwy.Vec[float64]) hwy.Vec[float64] {
		twice := hwy.Mul(two, c)
		xx := hwy.Div(hwy.Add(hwy.Sub(next, twice), prev), vdx2)
		yy := hwy.Div(hwy.Add(hwy.Sub(right, twice), left), vdy2)
		return hwy.Mul(nudt, hwy.Add(xx, yy))
	}
	for range nt {
		un.Copy(u)
		vn.Copy(v)
		s.forRange(1, rows-1, rows*cols, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				ur, vr := u.RawRowView(i), v.RawRowView(i)
				unr, vnr := un.RawRowView(i), vn.RawRowView(i)
				unUp, vnUp := un.RawRowView(i-1), vn.RawRowView(i-1)
				unDn, vnDn := un.RawRowView(i+1), vn.RawRowView(i+1)
				lanes(1, cols-1, func(j, n int) {
					uc, vc := at(unr, j, n), at(vnr, j, n)
					uUp, vUp := at(unUp, j, n), at(vnUp, j, n)
					uLeft, vLeft := at(unr, j-1, n), at(vnr, j-1, n)
					uNew := hwy.Sub(hwy.Sub(uc, conv(uc, uc, uUp, vdx)), conv(vc, uc, uLeft, vdy))
					uNew = hwy.Add(uNew, diff(uc, at(unDn, j, n), uUp, at(unr, j+1, n), uLeft))
					vNew := hwy.Sub(hwy.Sub(vc, conv(uc, vc, vUp, vdx)), conv(vc, vc, vLeft, vdy))
					vNew = hwy.Add(vNew, diff(vc, at(vnDn, j, n), vUp, at(vnr, j+1, n), vLeft))
					hwy.Store(uNew, ur[j:j+n])
					hwy.Store(vNew, vr[j:j+n])
				})
			}
		})
	}
	return nil
}
