// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package mpi

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrLength is returned by ReduceSlice when ranks contribute slices of
// different lengths.
var ErrLength = errors.New("mpi: slice length mismatch")

// Reserved tags, one per collective.
const (
	tagReduce = -1 - iota
	tagBcast
	tagGather
)

// Reduce combines v from every rank with op and returns the result on root.
// Root folds the contributions in rank order, so the result is deterministic
// for a given world size. Other ranks get the zero value.
func Reduce[T Number](ctx context.Context, c *Comm, v T, op Op, root int) (T, error) {
	var zero T
	if !op.valid() {
		return zero, fmt.Errorf("%w: %v", ErrOp, op)
	}
	if err := c.checkRank(root); err != nil {
		return zero, err
	}
	if c.rank != root {
		return zero, c.send(ctx, root, tagReduce, v)
	}
	var acc T
	for r := range c.world.size {
		x := v
		if r != root {
			var err error
			if x, err = recvAs[T](ctx, c, r, tagReduce); err != nil {
				return zero, err
			}
		}
		if r == 0 {
			acc = x
			continue
		}
		acc = combine(op, acc, x)
	}
	return acc, nil
}

// ReduceSlice combines equal-length slices element-wise on root.
// The input slice is never modified; root receives a new slice.
func ReduceSlice[T Number](ctx context.Context, c *Comm, v []T, op Op, root int) ([]T, error) {
	if !op.valid() {
		return nil, fmt.Errorf("%w: %v", ErrOp, op)
	}
	if err := c.checkRank(root); err != nil {
		return nil, err
	}
	if c.rank != root {
		return nil, c.send(ctx, root, tagReduce, slices.Clone(v))
	}
	var acc []T
	for r := range c.world.size {
		x := v
		if r != root {
			var err error
			if x, err = recvAs[[]T](ctx, c, r, tagReduce); err != nil {
				return nil, err
			}
		}
		if len(x) != len(v) {
			return nil, fmt.Errorf("%w: rank %d sent %d values, root has %d", ErrLength, r, len(x), len(v))
		}
		if r == 0 {
			acc = slices.Clone(x)
			continue
		}
		for i := range acc {
			acc[i] = combine(op, acc[i], x[i])
		}
	}
	return acc, nil
}

// Bcast sends root's v to every rank and returns it on all of them.
func Bcast[T any](ctx context.Context, c *Comm, v T, root int) (T, error) {
	var zero T
	if err := c.checkRank(root); err != nil {
		return zero, err
	}
	if c.rank != root {
		return recvAs[T](ctx, c, root, tagBcast)
	}
	for r := range c.world.size {
		if r == root {
			continue
		}
		if err := c.send(ctx, r, tagBcast, v); err != nil {
			return zero, err
		}
	}
	return v, nil
}

// AllReduce is Reduce to Root followed by Bcast: every rank gets the result.
func AllReduce[T Number](ctx context.Context, c *Comm, v T, op Op) (T, error) {
	acc, err := Reduce(ctx, c, v, op, Root)
	if err != nil {
		var zero T
		return zero, err
	}
	return Bcast(ctx, c, acc, Root)
}

// Gather collects v from every rank on root, indexed by rank.
// Other ranks get nil.
func Gather[T any](ctx context.Context, c *Comm, v T, root int) ([]T, error) {
	if err := c.checkRank(root); err != nil {
		return nil, err
	}
	if c.rank != root {
		return nil, c.send(ctx, root, tagGather, v)
	}
	out := make([]T, c.world.size)
	for r := range c.world.size {
		if r == root {
			out[r] = v
			continue
		}
		x, err := recvAs[T](ctx, c, r, tagGather)
		if err != nil {
			return nil, err
		}
		out[r] = x
	}
	return out, nil
}

// Barrier blocks until every rank has reached it.
func (c *Comm) Barrier(ctx context.Context) error {
	_, err := AllReduce(ctx, c, 0, OpSum)
	return err
}
