// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for the row-parallel
// stencil kernels. A Pool is created once per solve and reused by every time
// step, so a step costs one channel send per chunk instead of a goroutine
// spawn per row.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for range nt {
//	    pool.ParallelFor(rows, func(start, end int) {
//	        updateRows(start, end)
//	    })
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/parnum/parnum/mpi"
)

// Pool is a fixed set of goroutines that execute chunks of parallel loops.
type Pool struct {
	numWorkers int
	tasks      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

type task struct {
	run  func()
	done *sync.WaitGroup
}

// New starts a pool of numWorkers goroutines. They persist until Close.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		tasks:      make(chan task, numWorkers*2),
	}
	for range numWorkers {
		go p.loop()
	}
	return p
}

func (p *Pool) loop() {
	for t := range p.tasks {
		t.run()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers once queued chunks finish. Close is idempotent.
// A closed pool still accepts loops and runs them in the caller.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.tasks)
	})
}

// chunks returns how many chunks a loop over n items is split into.
// 1 means the loop runs in the caller.
func (p *Pool) chunks(n int) int {
	if p == nil || p.closed.Load() {
		return 1
	}
	return max(min(p.numWorkers, n), 1)
}

// ParallelFor calls fn over [0, n) split into contiguous chunks, one per
// worker, and blocks until all chunks are done. Chunk k covers the same range
// mpi.Split gives rank k: every chunk has n/workers items and the last one
// also takes the remainder.
//
// A nil Pool runs fn(0, n) in the caller.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	k := p.chunks(n)
	if k == 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(k)
	for c := range k {
		start, count := mpi.Split(n, k, c)
		p.tasks <- task{
			run:  func() { fn(start, start+count) },
			done: &wg,
		}
	}
	wg.Wait()
}
