// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package fd

import "github.com/parnum/parnum/internal/hwy"

// LinearConv1D advances u_t + c·u_x = 0 by nt steps with first-order
// upwind differences. Points [1, nx) are updated; u[0] is fixed.
func LinearConv1D(u, un []float64, nt int, dt, dx, c float64) error {
	return (*Solver)(nil).LinearConv1D(u, un, nt, dt, dx, c)
}

// NonlinearConv1D advances u_t + u·u_x = 0 by nt steps with first-order
// upwind differences. Points [1, nx) are updated; u[0] is fixed.
func NonlinearConv1D(u, un []float64, nt int, dt, dx float64) error {
	return (*Solver)(nil).NonlinearConv1D(u, un, nt, dt, dx)
}

// Diffusion1D advances u_t = ν·u_xx by nt steps with central differences.
// Interior points [1, nx-1) are updated; both ends are fixed.
func Diffusion1D(u, un []float64, nt int, dt, dx, nu float64) error {
	return (*Solver)(nil).Diffusion1D(u, un, nt, dt, dx, nu)
}

// Burgers1D advances u_t + u·u_x = ν·u_xx by nt steps: upwind convection,
// central diffusion. Interior points [1, nx-1) are updated.
func Burgers1D(u, un []float64, nt int, dt, dx, nu float64) error {
	return (*Solver)(nil).Burgers1D(u, un, nt, dt, dx, nu)
}

// LinearConv1D splits each step of the package function by index range.
func (s *Solver) LinearConv1D(u, un []float64, nt int, dt, dx, c float64) error {
	if err := check1D(u, un, nt); err != nil {
		return err
	}
	nx := len(u)
	cdt, vdx := hwy.Set(c*dt), hwy.Set(dx)
	for range nt {
		copy(un, u)
		s.forRange(1, nx, nx, func(lo, hi int) {
			lanes(lo, hi, func(i, n int) {
				cur, left := at(un, i, n), at(un, i-1, n)
				hwy.Store(hwy.Sub(cur, hwy.Div(hwy.Mul(cdt, hwy.Sub(cur, left)), vdx)), u[i:i+n])
			})
		})
	}
	return nil
}

// NonlinearConv1D splits each step of the package function by index range.
func (s *Solver) NonlinearConv1D(u, un []float64, nt int, dt, dx float64) error {
	if err := check1D(u, un, nt); err != nil {
		return err
	}
	nx := len(u)
	vdt, vdx := hwy.Set(dt), hwy.Set(dx)
	for range nt {
		copy(un, u)
		s.forRange(1, nx, nx, func(lo, hi int) {
			lanes(lo, hi, func(i, n int) {
				cur, left := at(un, i, n), at(un, i-1, n)
				hwy.Store(hwy.Sub(cur, hwy.Div(hwy.Mul(hwy.Mul(cur, vdt), hwy.Sub(cur, left)), vdx)), u[i:i+n])
			})
		})
	}
	return nil
}

// Diffusion1D splits each step of the package function by index range.
func (s *Solver) Diffusion1D(u, un []float64, nt int, dt, dx, nu float64) error {
	if err := check1D(u, un, nt); err != nil {
		return err
	}
	nx := len(u)
	nudt, vdx2, two := hwy.Set(nu*dt), hwy.Set(dx*dx), hwy.Set(2.0)
	for range nt {
		copy(un, u)
		s.forRange(1, nx-1, nx, func(lo, hi int) {
			lanes(lo, hi, func(i, n int) {
				cur, left, right := at(un, i, n), at(un, i-1, n), at(un, i+1, n)
				lap := hwy.Sub(hwy.Add(left, right), hwy.Mul(two, cur))
				hwy.Store(hwy.Add(cur, hwy.Div(hwy.Mul(nudt, lap), vdx2)), u[i:i+n])
			})
		})
	}
	return nil
}

// Burgers1D splits each step of the package function by index range.
func (s *Solver) Burgers1D(u, un []float64, nt int, dt, dx, nu float64) error {
	if err := check1D(u, un, nt); err != nil {
		return err
	}
	nx := len(u)
	vdt, vdx := hwy.Set(dt), hwy.Set(dx)
	nudt, vdx2, two := hwy.Set(nu*dt), hwy.Set(dx*dx), hwy.Set(2.0)
	for range nt {
		copy(un, u)
		s.forRange(1, nx-1, nx, func(lo, hi int) {
			lanes(lo, hi, func(i, n int) {
				cur, left, right := at(un, i, n), at(un, i-1, n), at(un, i+1, n)
				diff := hwy.Div(hwy.Mul(nudt, hwy.Sub(hwy.Add(left, right), hwy.Mul(two, cur))), vdx2)
				conv := hwy.Div(hwy.Mul(hwy.Mul(cur, vdt), hwy.Sub(cur, left)), vdx)
				hwy.Store(hwy.Sub(hwy.Add(cur, diff), conv), u[i:i+n])
			})
		})
	}
	return nil
}
