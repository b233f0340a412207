// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

package fd

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/mat"

	"github.com/parnum/parnum/internal/hwy/vec"
)

// Summary reduces a field to the scalars a run prints.
type Summary struct {
	Sum   float64
	Mean  float64
	Min   float64
	Max   float64
	Cells int
}

func (s Summary) String() string {
	return fmt.Sprintf("sum=%.10g mean=%.10g min=%.10g max=%.10g cells=%d", s.Sum, s.Mean, s.Min, s.Max, s.Cells)
}

// Summarize reduces m row by row with vector reductions, in parallel for
// multi-row fields.
func Summarize(m *mat.Dense) Summary {
	rows, cols := m.Dims()
	if rows == 1 {
		row := m.RawRowView(0)
		sum := vec.Sum(row)
		return Summary{Sum: sum, Mean: sum / float64(cols), Min: vec.Min(row), Max: vec.Max(row), Cells: cols}
	}

	reduceRows := func(identity float64, rowFn func([]float64) float64, pair func(x, y float64) float64) float64 {
		return parallel.RangeReduceFloat64(0, rows, 0,
			func(low, high int) float64 {
				acc := identity
				for r := low; r < high; r++ {
					acc = pair(acc, rowFn(m.RawRowView(r)))
				}
				return acc
			},
			pair,
		)
	}
	sum := reduceRows(0, vec.Sum[float64], func(x, y float64) float64 { return x + y })
	cells := rows * cols
	return Summary{
		Sum:   sum,
		Mean:  sum / float64(cells),
		Min:   reduceRows(math.Inf(1), vec.Min[float64], math.Min),
		Max:   reduceRows(math.Inf(-1), vec.Max[float64], math.Max),
		Cells: cells,
	}
}

// WriteCSV writes the final field, one line per cell: "x,u" for 1D, and
// "x,y,u" or "x,y,u,v" for 2D.
func (r Result) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	dx, dy := r.Problem.Spacing()
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	if r.Problem.Scheme.Dims() == 1 {
		if err := cw.Write([]string{"x", "u"}); err != nil {
			return err
		}
		for i, u := range r.U.RawRowView(0) {
			if err := cw.Write([]string{f(float64(i) * dx), f(u)}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}

	header := []string{"x", "y", "u"}
	if r.V != nil {
		header = append(header, "v")
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	rows, cols := r.U.Dims()
	record := make([]string, len(header))
	for i := range rows {
		for j := range cols {
			record[0] = f(float64(i) * dx)
			record[1] = f(float64(j) * dy)
			record[2] = f(r.U.At(i, j))
			if r.V != nil {
				record[3] = f(r.V.At(i, j))
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
