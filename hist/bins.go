// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hist computes histogram geometry: bin boundaries, per-series
// counts or densities, and the stacked extent of multiple series.
//
// Bins are half-open intervals [X0, X1), except the last bin of a
// sequence, which is closed [X0, X1]. A bin sequence is contiguous and
// sorted by X0. Non-finite values are ignored everywhere.
package hist

import (
	"math"
	"sort"

	"github.com/ethicalfolio/chartgeom/scale"
)

const (
	// MaxAutoBins bounds the number of bins chosen automatically.
	// A requested width narrower than span/MaxAutoBins is widened.
	MaxAutoBins = 6

	// maxBins bounds the number of bins emitted for any domain.
	maxBins = 10000

	// edgeSlack tolerates floating-point drift at the last edge.
	edgeSlack = 1e-12
)

// A Bin is one histogram interval.
type Bin struct {
	X0, X1 float64
	Width  float64
}

// A BinSpec selects how bins are computed. It is one of
// ExplicitEdges, ExplicitWidth, or AutoWidth.
type BinSpec interface {
	binSpec()
}

// ExplicitEdges places bin boundaries exactly at the given values.
// The edges need not be sorted.
type ExplicitEdges []float64

// ExplicitWidth requests bins of a given width. The width is subject
// to the same minimum and rounding as AutoWidth; see ComputeBins.
type ExplicitWidth float64

// AutoWidth derives the bin width from the domain.
type AutoWidth struct{}

func (ExplicitEdges) binSpec() {}
func (ExplicitWidth) binSpec() {}
func (AutoWidth) binSpec()     {}

// Config is the loosely specified bin configuration accepted from
// callers. The zero Config selects automatic bins over the data.
type Config struct {
	// Edges, if it has at least two elements, gives explicit bin
	// boundaries and takes precedence over Width.
	Edges []float64

	// Width, if positive, requests a bin width.
	Width float64

	// Domain, if non-nil, overrides the data extent.
	Domain *scale.Domain
}

// Spec resolves c to a BinSpec.
func (c Config) Spec() BinSpec {
	switch {
	case len(c.Edges) >= 2:
		return ExplicitEdges(c.Edges)
	case c.Width > 0:
		return ExplicitWidth(c.Width)
	}
	return AutoWidth{}
}

// Extent returns the x-axis domain of a histogram of series: override
// if non-nil, otherwise the range of all finite values. Unlike
// scale.ResolveDomain it does not force 0 into the domain. With no
// finite values it returns scale.Unit, and a single distinct value v
// yields [v-0.5, v+0.5].
func Extent(series []Series, override *scale.Domain) scale.Domain {
	if override != nil {
		return *override
	}
	lo, hi := math.NaN(), math.NaN()
	for _, s := range series {
		slo, shi := scale.FiniteBounds(s.Values)
		if math.IsNaN(slo) {
			continue
		}
		if slo < lo || math.IsNaN(lo) {
			lo = slo
		}
		if shi > hi || math.IsNaN(hi) {
			hi = shi
		}
	}
	if math.IsNaN(lo) {
		return scale.Unit
	}
	if lo == hi {
		return scale.Domain{Min: lo - 0.5, Max: hi + 0.5}
	}
	return scale.Domain{Min: lo, Max: hi}
}

// ComputeBins returns the bins for d under spec.
//
// ExplicitEdges with at least two finite edges are sorted and used as
// is, one bin per consecutive pair.
//
// Otherwise a working width is chosen: the ExplicitWidth if positive,
// else d.Span()/MaxAutoBins. A width below d.Span()/MaxAutoBins is
// raised to it. The width is then rounded up to a "nice" value, the
// next multiple of its leading power of ten. The rounded width always
// wins, so a requested width may be silently widened: ExplicitWidth(1.5)
// over [0.5, 5.5] yields bins of width 2, [0,2) [2,4) [4,6].
//
// The first bin starts at the largest multiple of the width at or
// below d.Min and bins continue until one reaches a multiple of the
// width at or above d.Max.
func ComputeBins(d scale.Domain, spec BinSpec) []Bin {
	var want float64
	switch spec := spec.(type) {
	case ExplicitEdges:
		if bins := edgeBins(spec); bins != nil {
			return bins
		}
	case ExplicitWidth:
		want = float64(spec)
	}

	// Work at half scale so that domains as wide as
	// [-MaxFloat64, MaxFloat64] keep finite spans and edges.
	width := (d.Max/2 - d.Min/2) / MaxAutoBins * 2
	if want > width {
		width = want
	}
	width = NiceWidth(width)
	if !(width > 0) || math.IsInf(width, 0) {
		return nil
	}
	hw := width / 2
	start := math.Floor(d.Min/2/hw) * hw
	end := math.Ceil(d.Max/2/hw) * hw
	if math.IsInf(start, 0) || math.IsInf(end, 0) || math.IsNaN(start) || math.IsNaN(end) {
		return nil
	}
	if end <= start {
		end = start + hw
	}
	edge := func(i int) float64 {
		// Outer edges of an overflowing domain pin to the largest
		// finite values.
		x := 2 * (start + float64(i)*hw)
		return math.Max(-math.MaxFloat64, math.Min(math.MaxFloat64, x))
	}
	var bins []Bin
	for i := 0; i < maxBins; i++ {
		if !(start+float64(i)*hw < end-edgeSlack/2) {
			break
		}
		bins = append(bins, Bin{X0: edge(i), X1: edge(i + 1), Width: width})
	}
	return bins
}

// NiceWidth rounds w up to the next multiple of 10^⌊log₁₀ w⌋. For
// example, 1.5 becomes 2, 0.83 becomes 0.9, and 340 becomes 400.
// Non-positive and non-finite widths are returned unchanged.
func NiceWidth(w float64) float64 {
	if !(w > 0) || math.IsInf(w, 0) {
		return w
	}
	mag := math.Pow(10, math.Floor(math.Log10(w)))
	return math.Ceil(w/mag) * mag
}

func edgeBins(edges []float64) []Bin {
	sorted := scale.Finite(edges)
	if len(sorted) < 2 {
		return nil
	}
	sorted = append([]float64(nil), sorted...)
	sort.Float64s(sorted)
	bins := make([]Bin, len(sorted)-1)
	for i := range bins {
		x0, x1 := sorted[i], sorted[i+1]
		bins[i] = Bin{X0: x0, X1: x1, Width: x1 - x0}
	}
	return bins
}

// Find returns the index of the bin containing v, or -1 if v is
// outside bins or not finite. bins must be sorted and contiguous.
func Find(bins []Bin, v float64) int {
	if len(bins) == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return -1
	}
	// Find the first bin whose open upper edge exceeds v.
	i := sort.Search(len(bins), func(i int) bool { return bins[i].X1 > v })
	if i < len(bins) && bins[i].X0 <= v {
		return i
	}
	// The last bin is also closed on top.
	last := len(bins) - 1
	if i == len(bins) && v == bins[last].X1 && bins[last].X0 <= v {
		return last
	}
	return -1
}
