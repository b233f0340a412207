// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package mpi

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// PrintAllProcs causes Comm.Printf to print on all ranks; otherwise only root prints.
var PrintAllProcs = false

// printMu keeps lines of concurrent ranks whole, and lets ranks share a
// writer that is not safe for concurrent use.
var printMu sync.Mutex

// Printf does fmt.Printf to stdout on the root rank only. Set PrintAllProcs
// to print on every rank, prefixed with the rank.
func (c *Comm) Printf(format string, args ...any) {
	c.Fprintf(os.Stdout, format, args...)
}

// Fprintf is Printf to w.
func (c *Comm) Fprintf(w io.Writer, format string, args ...any) {
	if c.rank != Root {
		if !PrintAllProcs {
			return
		}
		format = fmt.Sprintf("P%d: ", c.rank) + format
	}
	printMu.Lock()
	defer printMu.Unlock()
	fmt.Fprintf(w, format, args...)
}

// Println does fmt.Println on the root rank only (see PrintAllProcs).
func (c *Comm) Println(args ...any) {
	c.Fprintln(os.Stdout, args...)
}

// Fprintln is Println to w.
func (c *Comm) Fprintln(w io.Writer, args ...any) {
	if c.rank != Root {
		if !PrintAllProcs {
			return
		}
		args = append([]any{fmt.Sprintf("P%d:", c.rank)}, args...)
	}
	printMu.Lock()
	defer printMu.Unlock()
	fmt.Fprintln(w, args...)
}
