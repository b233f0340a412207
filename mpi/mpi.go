// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package mpi

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Root is the rank 0 node, the coordinator of every reduction.
const Root = 0

// linkBuffer is the number of messages a link holds before Send blocks.
const linkBuffer = 64

var (
	// ErrSize is returned when a world is created with fewer than one rank.
	ErrSize = errors.New("mpi: world size must be positive")

	// ErrRank is returned for a rank outside [0, size).
	ErrRank = errors.New("mpi: rank out of range")

	// ErrTag is returned for negative user tags, which are reserved for collectives.
	ErrTag = errors.New("mpi: user tags must be non-negative")

	// ErrTagMismatch is returned by Recv when the next message from a rank
	// carries a different tag than the one requested.
	ErrTagMismatch = errors.New("mpi: tag mismatch")

	// ErrType is returned when a received payload does not have the expected type.
	ErrType = errors.New("mpi: unexpected payload type")
)

// message is the unit carried on a link.
type message struct {
	tag  int
	data any
}

// World is a set of ranks sharing links. A World is created once per job.
// Links are created on first use, so a world costs memory in proportion to
// the pairs that actually communicate.
type World struct {
	size int

	mu sync.Mutex
	// links[src*size+dst]
	links map[int]chan message
}

// NewWorld returns a world with the given number of ranks.
func NewWorld(size int) (*World, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrSize, size)
	}
	return &World{
		size:  size,
		links: make(map[int]chan message),
	}, nil
}

// link returns the channel carrying messages from src to dst.
func (w *World) link(src, dst int) chan message {
	key := src*w.size + dst
	w.mu.Lock()
	defer w.mu.Unlock()
	ch, ok := w.links[key]
	if !ok {
		ch = make(chan message, linkBuffer)
		w.links[key] = ch
	}
	return ch
}

// Size returns the number of ranks in the world.
func (w *World) Size() int {
	return w.size
}

// Comm returns the communicator handle of the given rank.
func (w *World) Comm(rank int) (*Comm, error) {
	if rank < 0 || rank >= w.size {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrRank, rank, w.size)
	}
	return &Comm{world: w, rank: rank}, nil
}

// Comm is the per-rank view of a World. All communication operates as
// methods on it (or as generic functions taking it).
type Comm struct {
	world *World
	rank  int
}

// Rank returns the rank of this proc.
func (c *Comm) Rank() int {
	return c.rank
}

// Size returns the number of procs in the world.
func (c *Comm) Size() int {
	return c.world.size
}

// IsRoot reports whether this proc is the Root rank.
func (c *Comm) IsRoot() bool {
	return c.rank == Root
}

func (c *Comm) checkRank(rank int) error {
	if rank < 0 || rank >= c.world.size {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrRank, rank, c.world.size)
	}
	return nil
}

// Send transmits data to dst with the given tag. Send returns once the
// message is queued on the link; it blocks only when the link is full.
// A proc may send to itself.
func (c *Comm) Send(ctx context.Context, dst, tag int, data any) error {
	if tag < 0 {
		return fmt.Errorf("%w: %d", ErrTag, tag)
	}
	return c.send(ctx, dst, tag, data)
}

// Recv returns the next message sent by src. The message must carry tag.
func (c *Comm) Recv(ctx context.Context, src, tag int) (any, error) {
	if tag < 0 {
		return nil, fmt.Errorf("%w: %d", ErrTag, tag)
	}
	return c.recv(ctx, src, tag)
}

func (c *Comm) send(ctx context.Context, dst, tag int, data any) error {
	if err := c.checkRank(dst); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case c.world.link(c.rank, dst) <- message{tag: tag, data: data}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Comm) recv(ctx context.Context, src, tag int) (any, error) {
	if err := c.checkRank(src); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case msg := <-c.world.link(src, c.rank):
		if msg.tag != tag {
			return nil, fmt.Errorf("%w: rank %d expected tag %d from %d, got %d",
				ErrTagMismatch, c.rank, tag, src, msg.tag)
		}
		return msg.data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// recvAs receives a message and asserts its payload type.
func recvAs[T any](ctx context.Context, c *Comm, src, tag int) (T, error) {
	var zero T
	data, err := c.recv(ctx, src, tag)
	if err != nil {
		return zero, err
	}
	v, ok := data.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T from rank %d, want %T", ErrType, data, src, zero)
	}
	return v, nil
}

// Run creates a world of size ranks and calls fn once per rank, each in its
// own goroutine. It blocks until every rank returns. The first non-nil error
// cancels the context passed to the other ranks and is returned, prefixed
// with the failing rank.
func Run(ctx context.Context, size int, fn func(ctx context.Context, c *Comm) error) error {
	w, err := NewWorld(size)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	for rank := range size {
		c := &Comm{world: w, rank: rank}
		g.Go(func() error {
			if err := fn(gctx, c); err != nil {
				return fmt.Errorf("rank %d: %w", rank, err)
			}
			return nil
		})
	}
	return g.Wait()
}
