// Copyright 2026 The parnum Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mpi provides an in-process, MPI-like communicator. Each rank is a
// goroutine; ranks exchange values over buffered channels, one per ordered
// (source, destination) pair, so messages between two ranks arrive in the
// order they were sent.
//
// A job is a single function run once per rank:
//
//	err := mpi.Run(ctx, 4, func(ctx context.Context, c *mpi.Comm) error {
//	    start, count := mpi.Split(n, c.Size(), c.Rank())
//	    partial := work(start, count)
//	    total, err := mpi.Reduce(ctx, c, partial, mpi.OpSum, mpi.Root)
//	    if err != nil {
//	        return err
//	    }
//	    c.Printf("total = %v\n", total)
//	    return nil
//	})
//
// All calls are blocking. Collectives must be called by every rank of the
// world in the same order, as in MPI. The first rank to return an error
// cancels the context of every other rank, which unblocks any pending
// Send or Recv.
package mpi
