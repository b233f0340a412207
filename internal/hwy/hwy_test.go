// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package hwy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parnum/parnum/internal/cpuinfo"
)

func TestMaxLanes(t *testing.T) {
	defer SetLevel(CurrentLevel())
	for _, tc := range []struct {
		level    cpuinfo.Level
		f64, f32 int
	}{
		{cpuinfo.LevelScalar, 1, 2},
		{cpuinfo.LevelSSE2, 2, 4},
		{cpuinfo.LevelNEON, 2, 4},
		{cpuinfo.LevelAVX2, 4, 8},
		{cpuinfo.LevelAVX512, 8, 16},
	} {
		SetLevel(tc.level)
		assert.Equal(t, tc.f64, MaxLanes[float64](), tc.level.String())
		assert.Equal(t, tc.f32, MaxLanes[float32](), tc.level.String())
	}
}

func TestSetLevel(t *testing.T) {
	prev := SetLevel(cpuinfo.LevelAVX2)
	defer SetLevel(prev)
	assert.Equal(t, cpuinfo.LevelAVX2, CurrentLevel())
	assert.Equal(t, 32, CurrentWidth())
}

func TestNoSimdEnv(t *testing.T) {
	t.Setenv(EnvNoSIMD, "")
	assert.False(t, NoSimdEnv())
	t.Setenv(EnvNoSIMD, "false")
	assert.False(t, NoSimdEnv())
	t.Setenv(EnvNoSIMD, "1")
	assert.True(t, NoSimdEnv())
	t.Setenv(EnvNoSIMD, "yes")
	assert.True(t, NoSimdEnv())
}

func TestOps(t *testing.T) {
	defer SetLevel(SetLevel(cpuinfo.LevelAVX2))
	a := Load([]float64{1, 2, 3, 4, 5})
	b := Load([]float64{4, 3, 2, 1})
	require.Equal(t, 4, a.NumLanes())

	assert.Equal(t, []float64{5, 5, 5, 5}, Add(a, b).Data())
	assert.Equal(t, []float64{-3, -1, 1, 3}, Sub(a, b).Data())
	assert.Equal(t, []float64{4, 6, 6, 4}, Mul(a, b).Data())
	assert.Equal(t, []float64{0.25, 2.0 / 3, 1.5, 4}, Div(a, b).Data())
	assert.Equal(t, []float64{1, 2, 2, 1}, Min(a, b).Data())
	assert.Equal(t, []float64{4, 3, 3, 4}, Max(a, b).Data())
	assert.Equal(t, []float64{7, 7, 7, 7}, Set(7.0).Data())
	assert.Equal(t, []float64{0, 0, 0, 0}, Zero[float64]().Data())

	assert.Equal(t, 10.0, ReduceSum(a))
	assert.Equal(t, 1.0, ReduceMin(a))
	assert.Equal(t, 4.0, ReduceMax(a))
	assert.Zero(t, ReduceMin(Vec[float64]{}))
	assert.Zero(t, ReduceMax(Vec[float64]{}))

	dst := make([]float64, 6)
	Store(a, dst)
	assert.Equal(t, []float64{1, 2, 3, 4, 0, 0}, dst)
}

func TestPartialVectors(t *testing.T) {
	defer SetLevel(SetLevel(cpuinfo.LevelAVX512))
	short := Load([]float64{1, 2, 3})
	require.Equal(t, 3, short.NumLanes())

	// Mixing with a full vector keeps the shorter count.
	sum := Add(Set(10.0), short)
	assert.Equal(t, []float64{11, 12, 13}, sum.Data())

	dst := []float64{-1, -1}
	Store(sum, dst)
	assert.Equal(t, []float64{11, 12}, dst)
}

func TestProcessWithTail(t *testing.T) {
	defer SetLevel(CurrentLevel())
	for _, level := range []cpuinfo.Level{cpuinfo.LevelScalar, cpuinfo.LevelSSE2, cpuinfo.LevelAVX2, cpuinfo.LevelAVX512} {
		SetLevel(level)
		lanes := MaxLanes[float64]()
		for _, size := range []int{0, 1, 5, 8, 13, 33} {
			var covered, blocks int
			ProcessWithTail[float64](size, func(offset, count int) {
				assert.Equal(t, covered, offset)
				assert.LessOrEqual(t, count, lanes)
				assert.Positive(t, count)
				covered += count
				blocks++
			})
			assert.Equal(t, size, covered, "%v size %d", level, size)
			assert.Equal(t, (size+lanes-1)/lanes, blocks)
		}
	}
}

func TestProcessWithTailDoubles(t *testing.T) {
	defer SetLevel(SetLevel(cpuinfo.LevelAVX2))
	src := []float64{1, 2, 3, 4, 5, 6, 7}
	dst := make([]float64, len(src))
	ProcessWithTail[float64](len(dst), func(off, n int) {
		v := Load(src[off : off+n])
		Store(Add(v, v), dst[off:off+n])
	})
	assert.Equal(t, []float64{2, 4, 6, 8, 10, 12, 14}, dst)
}
