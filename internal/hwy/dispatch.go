// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

// Package hwy provides portable fixed-width vectors for float kernels. The
// lane count follows the vector level cpuinfo detects, so a kernel written
// once against Vec processes 2 float64 lanes on SSE2 or NEON, 4 on AVX2 and
// 8 on AVX-512.
//
// Every operation is one IEEE operation per lane, so a kernel gives the same
// bits at every level as long as its expression order is fixed.
package hwy

import (
	"os"
	"strconv"
	"sync/atomic"
	"unsafe"

	"github.com/parnum/parnum/internal/cpuinfo"
)

// EnvNoSIMD forces the scalar level when set to a true value.
const EnvNoSIMD = "PARNUM_NO_SIMD"

// scalarWidth is the width used at cpuinfo.LevelScalar: one float64 lane.
const scalarWidth = 8

var currentLevel atomic.Int64

func init() {
	level := cpuinfo.Detect().Level
	if NoSimdEnv() {
		level = cpuinfo.LevelScalar
	}
	currentLevel.Store(int64(level))
}

// NoSimdEnv reports whether EnvNoSIMD is set.
func NoSimdEnv() bool {
	val := os.Getenv(EnvNoSIMD)
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// CurrentLevel returns the level the kernels dispatch on.
func CurrentLevel() cpuinfo.Level {
	return cpuinfo.Level(currentLevel.Load())
}

// SetLevel switches the dispatch level and returns the previous one. It is
// meant for tests and benchmarks comparing levels.
func SetLevel(l cpuinfo.Level) cpuinfo.Level {
	return cpuinfo.Level(currentLevel.Swap(int64(l)))
}

// CurrentWidth returns the register width in bytes of the current level.
func CurrentWidth() int {
	if w := CurrentLevel().VectorBytes(); w > 0 {
		return w
	}
	return scalarWidth
}

// MaxLanes returns the number of lanes of T at the current level.
//
// For example, with AVX2 (32 bytes):
//   - float32: 8 lanes
//   - float64: 4 lanes
func MaxLanes[T Floats]() int {
	var dummy T
	return max(1, min(maxVecLanes, CurrentWidth()/int(unsafe.Sizeof(dummy))))
}
