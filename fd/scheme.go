// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package fd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ErrScheme is returned by ParseScheme for an unknown name.
var ErrScheme = errors.New("fd: unknown scheme")

// Scheme names one of the eight solvers.
type Scheme int

const (
	SchemeLinearConv1D Scheme = iota
	SchemeNonlinearConv1D
	SchemeDiffusion1D
	SchemeBurgers1D
	SchemeLinearConv2D
	SchemeNonlinearConv2D
	SchemeDiffusion2D
	SchemeBurgers2D
	numSchemes
)

var schemeNames = [numSchemes]string{
	"linearconv1d",
	"nonlinearconv1d",
	"diffusion1d",
	"burgers1d",
	"linearconv2d",
	"nonlinearconv2d",
	"diffusion2d",
	"burgers2d",
}

func (s Scheme) String() string {
	if s < 0 || s >= numSchemes {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return schemeNames[s]
}

// Dims returns 1 or 2.
func (s Scheme) Dims() int {
	if s >= SchemeLinearConv2D {
		return 2
	}
	return 1
}

// Coupled reports whether the scheme also evolves a v field.
func (s Scheme) Coupled() bool {
	return s == SchemeNonlinearConv2D || s == SchemeBurgers2D
}

// Schemes returns every scheme in declaration order.
func Schemes() []Scheme {
	return lo.Times(int(numSchemes), func(i int) Scheme { return Scheme(i) })
}

// SchemeNames returns the names accepted by ParseScheme.
func SchemeNames() []string {
	return lo.Map(Schemes(), func(s Scheme, _ int) string { return s.String() })
}

// ParseScheme accepts the scheme names case-insensitively, with or without
// '-' and '_' separators ("burgers-2d", "Linear_Conv_1D").
func ParseScheme(name string) (Scheme, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	for i, n := range schemeNames {
		if n == key {
			return Scheme(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q (known: %s)", ErrScheme, name, strings.Join(SchemeNames(), ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	if s < 0 || s >= numSchemes {
		return nil, fmt.Errorf("%w: %d", ErrScheme, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(text []byte) error {
	v, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
