// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package mpi

// Split partitions n items across size ranks and returns the half-open range
// [start, start+count) owned by rank. Every rank gets n/size items and the
// last rank also takes the n%size remainder, so the ranges are contiguous,
// ordered by rank, and cover [0, n) exactly.
//
// Split returns (0, 0) when size <= 0, rank is out of range, or n <= 0.
func Split(n, size, rank int) (start, count int) {
	if size <= 0 || rank < 0 || rank >= size || n <= 0 {
		return 0, 0
	}
	base := n / size
	start = rank * base
	count = base
	if rank == size-1 {
		count += n % size
	}
	return start, count
}

// Split64 is Split for sample counts that may exceed the int range on 32-bit
// platforms.
func Split64(n int64, size, rank int) (start, count int64) {
	if size <= 0 || rank < 0 || rank >= size || n <= 0 {
		return 0, 0
	}
	base := n / int64(size)
	start = int64(rank) * base
	count = base
	if rank == size-1 {
		count += n % int64(size)
	}
	return start, count
}
