// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

// Package quadrature integrates tabulated functions with the left rectangle
// and trapezoid rules, serially or split across the ranks of an mpi world.
package quadrature

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/integrate"
)

var (
	// ErrNodes is returned for a grid with fewer than two nodes.
	ErrNodes = errors.New("quadrature: need at least two nodes")

	// ErrWorkers is returned when there are more workers than intervals.
	ErrWorkers = errors.New("quadrature: invalid worker count")

	// ErrRule is returned for an unknown rule name.
	ErrRule = errors.New("quadrature: unknown rule")
)

// Rule selects the quadrature formula.
type Rule int

const (
	// RuleRectangle is the left rectangle rule: Σ y[i]·(x[i+1]-x[i]).
	RuleRectangle Rule = iota
	// RuleTrapezoid is Σ (x[i+1]-x[i])/2·(y[i]+y[i+1]).
	RuleTrapezoid
)

func (r Rule) String() string {
	switch r {
	case RuleRectangle:
		return "rectangle"
	case RuleTrapezoid:
		return "trapezoid"
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

func (r Rule) valid() bool {
	return r == RuleRectangle || r == RuleTrapezoid
}

// ParseRule accepts "rectangle"/"rect" and "trapezoid"/"trapeze"/"trap".
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect":
		return RuleRectangle, nil
	case "trapezoid", "trapeze", "trap":
		return RuleTrapezoid, nil
	}
	return 0, fmt.Errorf("%w %q", ErrRule, s)
}

// Apply integrates the samples y over the nodes x with the rule.
func (r Rule) Apply(x, y []float64) (float64, error) {
	switch r {
	case RuleRectangle:
		return Rectangle(x, y), nil
	case RuleTrapezoid:
		return Trapezoid(x, y), nil
	}
	return 0, fmt.Errorf("%w: %v", ErrRule, r)
}

// Linspace returns n evenly spaced nodes from a to b. Both endpoints are
// exact. n == 1 returns [a]; n <= 0 returns nil.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	x := make([]float64, n)
	x[0] = a
	if n == 1 {
		return x
	}
	dx := (b - a) / float64(n-1)
	for i := 1; i < n-1; i++ {
		x[i] = a + float64(i)*dx
	}
	x[n-1] = b
	return x
}

// Rectangle applies the left rectangle rule over the len(x)-1 intervals.
// y must have at least len(x)-1 values.
func Rectangle(x, y []float64) float64 {
	var sum float64
	for i := 0; i+1 < len(x); i++ {
		sum += y[i] * (x[i+1] - x[i])
	}
	return sum
}

// Trapezoid applies the trapezoid rule over the len(x)-1 intervals with
// integrate.Trapezoidal. x must be ascending and y must have len(x) values.
func Trapezoid(x, y []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return integrate.Trapezoidal(x, y)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("%w: %d", ErrRule, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rule) UnmarshalText(text []byte) error {
	v, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
