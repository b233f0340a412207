// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package fd

import (
	"errors"
	"fmt"
)

// ErrProblem is returned by Problem.Validate.
var ErrProblem = errors.New("fd: invalid problem")

// Problem is one solver run: scheme, grid, step count and physical
// parameters. The hat initial condition is always u = v = 2 on
// [HatLow, HatHigh] (squared in 2D) and 1 elsewhere.
type Problem struct {
	Scheme Scheme `yaml:"scheme"`
	NX     int    `yaml:"nx"`
	// NY is ignored by 1D schemes.
	NY     int     `yaml:"ny"`
	NT     int     `yaml:"nt"`
	Length float64 `yaml:"length"`

	// Sigma is the Courant-like number dt is derived from, unless DT is set.
	Sigma float64 `yaml:"sigma"`
	DT    float64 `yaml:"dt"`

	// C is the wave speed of the linear convection schemes.
	C float64 `yaml:"c"`
	// Nu is the viscosity of the diffusion and Burgers schemes.
	Nu float64 `yaml:"nu"`

	HatLow  float64 `yaml:"hat_low"`
	HatHigh float64 `yaml:"hat_high"`
}

// DefaultProblem returns the classic setup of each scheme on [0, 2].
func DefaultProblem(s Scheme) Problem {
	p := Problem{
		Scheme:  s,
		Length:  2,
		C:       1,
		HatLow:  0.5,
		HatHigh: 1,
	}
	switch s {
	case SchemeLinearConv1D:
		p.NX, p.NT, p.Sigma = 41, 25, 0.5
	case SchemeNonlinearConv1D:
		p.NX, p.NT, p.Sigma = 41, 20, 0.5
	case SchemeDiffusion1D:
		p.NX, p.NT, p.Sigma, p.Nu = 41, 20, 0.2, 0.3
	case SchemeBurgers1D:
		p.NX, p.NT, p.Sigma, p.Nu = 41, 100, 0.2, 0.07
	case SchemeLinearConv2D:
		p.NX, p.NY, p.NT, p.Sigma = 81, 81, 100, 0.2
	case SchemeNonlinearConv2D:
		p.NX, p.NY, p.NT, p.Sigma = 101, 101, 80, 0.2
	case SchemeDiffusion2D:
		p.NX, p.NY, p.NT, p.Sigma, p.Nu = 31, 31, 17, 0.25, 0.05
	case SchemeBurgers2D:
		p.NX, p.NY, p.NT, p.Sigma, p.Nu = 41, 41, 120, 0.0009, 0.01
	}
	return p
}

// Spacing returns dx and dy. dy is 0 for 1D schemes.
func (p Problem) Spacing() (dx, dy float64) {
	dx = p.Length / float64(p.NX-1)
	if p.Scheme.Dims() == 2 {
		dy = p.Length / float64(p.NY-1)
	}
	return dx, dy
}

// TimeStep returns DT when set, otherwise the step derived from Sigma:
// σ·dx for convection, σ·dx²/ν for diffusion and 1D Burgers, σ·dx·dy/ν for
// 2D diffusion and 2D Burgers.
func (p Problem) TimeStep() float64 {
	if p.DT > 0 {
		return p.DT
	}
	dx, dy := p.Spacing()
	switch p.Scheme {
	case SchemeDiffusion1D, SchemeBurgers1D:
		return p.Sigma * dx * dx / p.Nu
	case SchemeDiffusion2D, SchemeBurgers2D:
		return p.Sigma * dx * dy / p.Nu
	}
	return p.Sigma * dx
}

// Validate checks the grid and the parameters TimeStep needs.
func (p Problem) Validate() error {
	if p.Scheme < 0 || p.Scheme >= numSchemes {
		return fmt.Errorf("%w: %v", ErrScheme, p.Scheme)
	}
	if p.NX < 3 || (p.Scheme.Dims() == 2 && p.NY < 3) {
		return fmt.Errorf("%w: nx=%d ny=%d", ErrGrid, p.NX, p.NY)
	}
	if p.NT < 0 {
		return fmt.Errorf("%w: %d", ErrSteps, p.NT)
	}
	if p.Length <= 0 {
		return fmt.Errorf("%w: length %v", ErrProblem, p.Length)
	}
	if p.DT <= 0 && p.Sigma <= 0 {
		return fmt.Errorf("%w: need dt or sigma", ErrProblem)
	}
	if p.DT <= 0 && p.needsNu() && p.Nu <= 0 {
		return fmt.Errorf("%w: viscosity must be positive to derive dt", ErrProblem)
	}
	return nil
}

func (p Problem) needsNu() bool {
	switch p.Scheme {
	case SchemeDiffusion1D, SchemeBurgers1D, SchemeDiffusion2D, SchemeBurgers2D:
		return true
	}
	return false
}
