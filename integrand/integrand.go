// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

// Package integrand holds the named scalar functions the Monte Carlo and
// quadrature jobs integrate.
package integrand

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

// Default is the integrand used when none is configured.
const Default = "cos"

// ErrUnknown is returned by Lookup for an unregistered name.
var ErrUnknown = errors.New("integrand: unknown function")

// Func is a scalar function of one variable.
type Func func(x float64) float64

var registry = map[string]Func{
	"cos":    math.Cos,
	"sin":    math.Sin,
	"exp":    math.Exp,
	"square": func(x float64) float64 { return x * x },
	// 4/(1+x²) integrates to π on [0, 1].
	"quarter-circle": func(x float64) float64 { return 4 / (1 + x*x) },
}

// Lookup returns the function registered under name.
func Lookup(name string) (Func, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknown, name, Names())
	}
	return f, nil
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}
