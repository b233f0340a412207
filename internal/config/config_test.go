// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parnum/parnum/fd"
	"github.com/parnum/parnum/quadrature"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(10_000_000), cfg.Pi.Samples)
	assert.Equal(t, int64(1_000_000), cfg.Integral.Samples)
	assert.Equal(t, 1000, cfg.Quadrature.Nodes)
	assert.Equal(t, quadrature.RuleTrapezoid, cfg.Quadrature.Rule)
	assert.Equal(t, "cos", cfg.Integral.Func)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parnum.yaml")
	src := `
workers: 3
seed: 42
log:
  level: debug
pi:
  samples: 1000
quadrature:
  nodes: 200
  rule: rect
jobs:
  - name: heat
    kind: fd
    fd:
      scheme: diffusion-2d
      nt: 5
  - kind: quad
    quadrature:
      a: 0
      b: 1
      nodes: 11
      rule: trapezoid
      func: square
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, int64(1000), cfg.Pi.Samples)
	assert.Equal(t, 200, cfg.Quadrature.Nodes)
	assert.Equal(t, quadrature.RuleRectangle, cfg.Quadrature.Rule)
	assert.Equal(t, "cos", cfg.Quadrature.Func)

	require.Len(t, cfg.Jobs, 2)
	require.NotNil(t, cfg.Jobs[0].FD)
	p, err := cfg.Jobs[0].FD.Problem()
	require.NoError(t, err)
	assert.Equal(t, fd.SchemeDiffusion2D, p.Scheme)
	assert.Equal(t, 5, p.NT)
	assert.Equal(t, 31, p.NX, "unset fields keep the scheme default")
	assert.Equal(t, KindQuadrature, cfg.Jobs[1].Kind)
	assert.Equal(t, 11, cfg.Jobs[1].Quadrature.Nodes)
}

func TestLoadMergesJobSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parnum.yaml")
	src := `
integral:
  samples: 5000
  func: square
quadrature:
  a: 2
  b: 4
jobs:
  - kind: quad
    quadrature:
      rule: rectangle
  - kind: quad
    quadrature:
      a: 0
  - kind: integral
    integral:
      b: 1
  - kind: pi
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Jobs, 4)

	q := cfg.Jobs[0].Quadrature
	require.NotNil(t, q)
	assert.Equal(t, quadrature.RuleRectangle, q.Rule)
	assert.Equal(t, quadrature.DefaultNodes, q.Nodes, "nodes inherited from the defaults")
	assert.Equal(t, 2.0, q.A, "bounds inherited from the top-level section")
	assert.Equal(t, 4.0, q.B)

	// An explicit zero overrides.
	q = cfg.Jobs[1].Quadrature
	assert.Equal(t, 0.0, q.A)
	assert.Equal(t, 4.0, q.B)
	assert.Equal(t, quadrature.RuleTrapezoid, q.Rule)

	in := cfg.Jobs[2].Integral
	require.NotNil(t, in)
	assert.Equal(t, int64(5000), in.Samples)
	assert.Equal(t, "square", in.Func)
	assert.Equal(t, 1.0, in.B)

	assert.Nil(t, cfg.Jobs[3].Pi)
	assert.Equal(t, 2.0, cfg.Quadrature.A, "top-level section unchanged")
}

func TestLoadFDJobNeedsScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parnum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs:\n  - kind: fd\n    fd: {}\n"), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	_, err = FDJob{}.Problem()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("workers: [1, 2\n"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "rule.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("quadrature:\n  rule: simpson\n"), 0644))
	_, err = Load(unknown)
	assert.ErrorIs(t, err, quadrature.ErrRule)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvWorkers, "7")
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "warn", cfg.Log.Level)

	t.Setenv(EnvWorkers, "many")
	_, err = Load("")
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 5
	cfg.Jobs = []Job{
		{Name: "pi", Kind: KindPi, Pi: &PiConfig{Samples: 500}},
		{Kind: KindFD, FD: &FDJob{Scheme: lo.ToPtr(fd.SchemeBurgers1D), NT: 10}},
	}
	path := filepath.Join(t.TempDir(), "nested", "parnum.yaml")
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rule: trapezoid")
	assert.Contains(t, string(data), "scheme: burgers1d")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"no pi samples", func(c *Config) { c.Pi.Samples = 0 }},
		{"integral bounds", func(c *Config) { c.Integral.A, c.Integral.B = 2, 1 }},
		{"integral func", func(c *Config) { c.Integral.Func = "tan" }},
		{"one node", func(c *Config) { c.Quadrature.Nodes = 1 }},
		{"job kind", func(c *Config) { c.Jobs = []Job{{Kind: "fft"}} }},
		{"fd job without section", func(c *Config) { c.Jobs = []Job{{Kind: KindFD}} }},
		{"fd job without scheme", func(c *Config) { c.Jobs = []Job{{Kind: KindFD, FD: &FDJob{NT: 3}}} }},
		{"fd job bad grid", func(c *Config) {
			c.Jobs = []Job{{Kind: KindFD, FD: &FDJob{Scheme: lo.ToPtr(fd.SchemeBurgers2D), NX: 2}}}
		}},
		{"pi job samples", func(c *Config) { c.Jobs = []Job{{Kind: KindPi, Pi: &PiConfig{Samples: -5}}} }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mod(cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalid, tt.name)
	}
}
