// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

// Package cpuinfo reports the vector extensions and parallelism available to
// the kernels, as printed by "parnum cpu" and logged at startup.
package cpuinfo

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sys/cpu"
)

// Level is the widest vector extension the CPU offers.
type Level int

const (
	// LevelScalar means no vector extension was detected.
	LevelScalar Level = iota
	// LevelSSE2 is 128-bit x86.
	LevelSSE2
	// LevelAVX2 is 256-bit x86 with FMA.
	LevelAVX2
	// LevelAVX512 is 512-bit x86 (F, BW, VL, DQ).
	LevelAVX512
	// LevelNEON is 128-bit ARM Advanced SIMD.
	LevelNEON
	// LevelSVE is ARM scalable vectors.
	LevelSVE
)

func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelNEON:
		return "neon"
	case LevelSVE:
		return "sve"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// VectorBytes returns the register width of the level, 0 for scalar. SVE
// reports its 128-bit minimum.
func (l Level) VectorBytes() int {
	switch l {
	case LevelSSE2, LevelNEON, LevelSVE:
		return 16
	case LevelAVX2:
		return 32
	case LevelAVX512:
		return 64
	}
	return 0
}

// Report describes the host.
type Report struct {
	Arch     string
	OS       string
	NumCPU   int
	MaxProcs int
	Level    Level
	Features []string
}

type feature struct {
	name string
	has  bool
}

// Detect inspects the running CPU.
func Detect() Report {
	features := []feature{
		{"sse2", cpu.X86.HasSSE2},
		{"sse41", cpu.X86.HasSSE41},
		{"avx", cpu.X86.HasAVX},
		{"avx2", cpu.X86.HasAVX2},
		{"fma", cpu.X86.HasFMA},
		{"avx512f", cpu.X86.HasAVX512F},
		{"avx512bw", cpu.X86.HasAVX512BW},
		{"avx512vl", cpu.X86.HasAVX512VL},
		{"avx512dq", cpu.X86.HasAVX512DQ},
		{"asimd", cpu.ARM64.HasASIMD},
		{"fphp", cpu.ARM64.HasFPHP},
		{"sve", cpu.ARM64.HasSVE},
		{"sve2", cpu.ARM64.HasSVE2},
	}
	return newReport(runtime.GOARCH, features)
}

func newReport(arch string, features []feature) Report {
	names := lo.FilterMap(features, func(f feature, _ int) (string, bool) {
		return f.name, f.has
	})
	return Report{
		Arch:     arch,
		OS:       runtime.GOOS,
		NumCPU:   runtime.NumCPU(),
		MaxProcs: runtime.GOMAXPROCS(0),
		Level:    levelFor(arch, names),
		Features: names,
	}
}

func levelFor(arch string, names []string) Level {
	has := func(want ...string) bool { return lo.Every(names, want) }
	switch arch {
	case "amd64", "386":
		switch {
		case has("avx512f", "avx512bw", "avx512vl", "avx512dq"):
			return LevelAVX512
		case has("avx2", "fma"):
			return LevelAVX2
		case has("sse2"):
			return LevelSSE2
		}
	case "arm64":
		switch {
		case has("sve"):
			return LevelSVE
		case has("asimd"):
			return LevelNEON
		}
	}
	return LevelScalar
}

func (r Report) String() string {
	features := "none"
	if len(r.Features) > 0 {
		features = strings.Join(r.Features, " ")
	}
	return fmt.Sprintf("%s/%s: %d CPUs, GOMAXPROCS=%d, vector level %v (%d bytes), features: %s",
		r.OS, r.Arch, r.NumCPU, r.MaxProcs, r.Level, r.Level.VectorBytes(), features)
}

// Fields returns the report as zap fields.
func (r Report) Fields() []zap.Field {
	return []zap.Field{
		zap.String("arch", r.Arch),
		zap.Int("cpus", r.NumCPU),
		zap.Int("gomaxprocs", r.MaxProcs),
		zap.Stringer("level", r.Level),
		zap.Strings("features", r.Features),
	}
}
