// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"fmt"

	"github.com/aclements/go-moremath/vec"
	"github.com/ethicalfolio/chartgeom/scale"
)

// A Series is one set of values to be binned.
type Series struct {
	ID     string
	Values []float64

	// Color is an optional fill color. If empty, a palette color
	// is chosen by series index.
	Color string
}

// YScale selects what a histogram's bar heights measure.
type YScale int

const (
	// Count plots the number of values per bin.
	Count YScale = iota

	// Density plots count / (N * width), where N is the number of
	// finite values in the series.
	Density
)

func (y YScale) String() string {
	switch y {
	case Count:
		return "count"
	case Density:
		return "density"
	}
	return fmt.Sprintf("YScale(%d)", int(y))
}

// CountValues returns the number of finite values in each bin. Values
// outside every bin are dropped. bins must be sorted and contiguous.
func CountValues(values []float64, bins []Bin) []float64 {
	counts := make([]float64, len(bins))
	for _, v := range values {
		if i := Find(bins, v); i >= 0 {
			counts[i]++
		}
	}
	return counts
}

// Densities converts per-bin counts of a series with n finite values
// into densities: counts[i] / (max(1, n) * bins[i].Width). A zero-width
// bin is treated as having width 1.
//
// The densities integrate to 1 only when every value falls in some
// bin. With non-uniform widths the result is still a valid density
// estimate, but its integral over the bins need not be 1.
func Densities(counts []float64, bins []Bin, n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, len(counts))
	for i, c := range counts {
		w := bins[i].Width
		if w == 0 {
			w = 1
		}
		out[i] = c / (float64(n) * w)
	}
	return out
}

// Aggregate bins every series and returns, for each series, its
// per-bin values under y.
func Aggregate(series []Series, bins []Bin, y YScale) [][]float64 {
	out := make([][]float64, len(series))
	for i, s := range series {
		counts := CountValues(s.Values, bins)
		if y == Density {
			counts = Densities(counts, bins, len(scale.Finite(s.Values)))
		}
		out[i] = counts
	}
	return out
}

// BinTotals returns the sum across series of each bin's values.
func BinTotals(values [][]float64) []float64 {
	n := 0
	for _, vs := range values {
		if len(vs) > n {
			n = len(vs)
		}
	}
	col := make([]float64, len(values))
	totals := make([]float64, n)
	for bin := range totals {
		for s, vs := range values {
			col[s] = 0
			if bin < len(vs) {
				col[s] = vs[bin]
			}
		}
		totals[bin] = vec.Sum(col)
	}
	return totals
}

// StackedMax returns the largest per-bin total across series. This
// is the top of the y domain when series are stacked. If no total is
// positive, StackedMax returns 1.
func StackedMax(values [][]float64) float64 {
	max := 0.0
	for _, t := range BinTotals(values) {
		if t > max {
			max = t
		}
	}
	if max <= 0 {
		return 1
	}
	return max
}
