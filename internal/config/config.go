// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

// Package config loads the parnum YAML configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/parnum/parnum/fd"
	"github.com/parnum/parnum/integrand"
	"github.com/parnum/parnum/montecarlo"
	"github.com/parnum/parnum/quadrature"
)

// Environment variables that override the file.
const (
	EnvWorkers  = "PARNUM_WORKERS"
	EnvSeed     = "PARNUM_SEED"
	EnvLogLevel = "PARNUM_LOG_LEVEL"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Job kinds run by the batch command.
const (
	KindPi         = "pi"
	KindIntegral   = "integral"
	KindQuadrature = "quad"
	KindFD         = "fd"
)

// Config holds all parnum configuration.
type Config struct {
	// Workers is the number of ranks or pool workers; 0 means GOMAXPROCS.
	Workers int   `yaml:"workers"`
	Seed    int64 `yaml:"seed"`

	Log        LogConfig        `yaml:"log"`
	Pi         PiConfig         `yaml:"pi"`
	Integral   IntegralConfig   `yaml:"integral"`
	Quadrature QuadratureConfig `yaml:"quadrature"`
	FD         FDConfig         `yaml:"fd"`

	Jobs []Job `yaml:"jobs,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
}

// PiConfig configures the Monte Carlo π estimate.
type PiConfig struct {
	Samples int64 `yaml:"samples"`
}

// IntegralConfig configures the Monte Carlo integral.
type IntegralConfig struct {
	Samples int64   `yaml:"samples"`
	A       float64 `yaml:"a"`
	B       float64 `yaml:"b"`
	Func    string  `yaml:"func"`
}

// QuadratureConfig configures the distributed quadrature.
type QuadratureConfig struct {
	A     float64         `yaml:"a"`
	B     float64         `yaml:"b"`
	Nodes int             `yaml:"nodes"`
	Rule  quadrature.Rule `yaml:"rule"`
	Func  string          `yaml:"func"`
}

// FDConfig configures the finite-difference solvers.
type FDConfig struct {
	// MinParallelCells is the per-step cell count below which a step runs
	// serially. 0 keeps the solver default; negative always parallelizes.
	MinParallelCells int `yaml:"min_parallel_cells"`
}

// Job is one entry of the batch list. Kind selects the computation. Load
// merges a job's pi, integral or quadrature section over the top-level one:
// the keys the job sets override, the others are inherited.
type Job struct {
	Name       string            `yaml:"name,omitempty"`
	Kind       string            `yaml:"kind"`
	Pi         *PiConfig         `yaml:"pi,omitempty"`
	Integral   *IntegralConfig   `yaml:"integral,omitempty"`
	Quadrature *QuadratureConfig `yaml:"quadrature,omitempty"`
	FD         *FDJob            `yaml:"fd,omitempty"`
}

// FDJob selects a scheme, which is required. Zero fields keep the scheme's
// default problem.
type FDJob struct {
	Scheme *fd.Scheme `yaml:"scheme"`
	NX     int        `yaml:"nx,omitempty"`
	NY     int        `yaml:"ny,omitempty"`
	NT     int        `yaml:"nt,omitempty"`
	Sigma  float64    `yaml:"sigma,omitempty"`
	Nu     float64    `yaml:"nu,omitempty"`
}

// Problem returns the scheme's default problem with the job's overrides.
func (j FDJob) Problem() (fd.Problem, error) {
	if j.Scheme == nil {
		return fd.Problem{}, fmt.Errorf("%w: fd job needs a scheme", ErrInvalid)
	}
	p := fd.DefaultProblem(*j.Scheme)
	if j.NX > 0 {
		p.NX = j.NX
	}
	if j.NY > 0 {
		p.NY = j.NY
	}
	if j.NT > 0 {
		p.NT = j.NT
	}
	if j.Sigma > 0 {
		p.Sigma = j.Sigma
	}
	if j.Nu > 0 {
		p.Nu = j.Nu
	}
	return p, nil
}

// DefaultConfig returns the reference setup: 1e7 samples for π, 1e6 for the
// cos integral on [0, 3π/2], and trapezoid quadrature on 1000 nodes.
func DefaultConfig() *Config {
	return &Config{
		Workers: 0,
		Seed:    montecarlo.DefaultSeed,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Pi: PiConfig{
			Samples: montecarlo.DefaultPiSamples,
		},
		Integral: IntegralConfig{
			Samples: montecarlo.DefaultIntegralSamples,
			A:       0,
			B:       3 * math.Pi / 2,
			Func:    integrand.Default,
		},
		Quadrature: QuadratureConfig{
			A:     0,
			B:     3 * math.Pi / 2,
			Nodes: quadrature.DefaultNodes,
			Rule:  quadrature.RuleTrapezoid,
			Func:  integrand.Default,
		},
	}
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			if err := cfg.mergeJobSections(data); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// jobSections holds the job sections as written, to tell which keys a job
// sets.
type jobSections struct {
	Jobs []struct {
		Pi         yaml.Node `yaml:"pi"`
		Integral   yaml.Node `yaml:"integral"`
		Quadrature yaml.Node `yaml:"quadrature"`
	} `yaml:"jobs"`
}

// mergeJobSections replaces each job section with the top-level section
// overlaid with the keys the job sets.
func (c *Config) mergeJobSections(data []byte) error {
	var raw jobSections
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, r := range raw.Jobs {
		if i >= len(c.Jobs) {
			break
		}
		j := &c.Jobs[i]
		if r.Pi.Kind != 0 {
			s := c.Pi
			if err := r.Pi.Decode(&s); err != nil {
				return err
			}
			j.Pi = &s
		}
		if r.Integral.Kind != 0 {
			s := c.Integral
			if err := r.Integral.Decode(&s); err != nil {
				return err
			}
			j.Integral = &s
		}
		if r.Quadrature.Kind != 0 {
			s := c.Quadrature
			if err := r.Quadrature.Decode(&s); err != nil {
				return err
			}
			j.Quadrature = &s
		}
	}
	return nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks every section and job.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if err := c.Pi.validate(); err != nil {
		return err
	}
	if err := c.Integral.validate(); err != nil {
		return err
	}
	if err := c.Quadrature.validate(); err != nil {
		return err
	}
	for i, j := range c.Jobs {
		if err := j.validate(); err != nil {
			return fmt.Errorf("job %d (%s): %w", i, j.Name, err)
		}
	}
	return nil
}

func (p PiConfig) validate() error {
	if p.Samples <= 0 {
		return fmt.Errorf("%w: pi samples %d", ErrInvalid, p.Samples)
	}
	return nil
}

func (ic IntegralConfig) validate() error {
	if ic.Samples <= 0 {
		return fmt.Errorf("%w: integral samples %d", ErrInvalid, ic.Samples)
	}
	if !(ic.A < ic.B) {
		return fmt.Errorf("%w: integral bounds [%v, %v]", ErrInvalid, ic.A, ic.B)
	}
	return validFunc(ic.Func)
}

func (q QuadratureConfig) validate() error {
	if q.Nodes < 2 {
		return fmt.Errorf("%w: quadrature nodes %d", ErrInvalid, q.Nodes)
	}
	if !(q.A < q.B) {
		return fmt.Errorf("%w: quadrature bounds [%v, %v]", ErrInvalid, q.A, q.B)
	}
	return validFunc(q.Func)
}

// validFunc accepts registered integrands, and "" for the default.
func validFunc(name string) error {
	if name == "" {
		return nil
	}
	if _, err := integrand.Lookup(name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (j Job) validate() error {
	switch j.Kind {
	case KindPi:
		if j.Pi != nil {
			return j.Pi.validate()
		}
	case KindIntegral:
		if j.Integral != nil {
			return j.Integral.validate()
		}
	case KindQuadrature:
		if j.Quadrature != nil {
			return j.Quadrature.validate()
		}
	case KindFD:
		if j.FD == nil {
			return fmt.Errorf("%w: fd job needs a scheme", ErrInvalid)
		}
		p, err := j.FD.Problem()
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	default:
		return fmt.Errorf("%w: job kind %q", ErrInvalid, j.Kind)
	}
	return nil
}
