// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/ethicalfolio/chartgeom/scale"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestExtent(t *testing.T) {
	nan := math.NaN()
	for _, test := range []struct {
		series   []Series
		override *scale.Domain
		want     scale.Domain
	}{
		{[]Series{{Values: []float64{3, 7}}, {Values: []float64{5, 9}}}, nil, scale.Domain{Min: 3, Max: 9}},
		{[]Series{{Values: []float64{nan}}, {Values: []float64{-2, math.Inf(1)}}}, nil, scale.Domain{Min: -2.5, Max: -1.5}},
		{[]Series{{Values: []float64{4, 4}}}, nil, scale.Domain{Min: 3.5, Max: 4.5}},
		{nil, nil, scale.Unit},
		{[]Series{{}}, nil, scale.Unit},
		{[]Series{{Values: []float64{1}}}, &scale.Domain{Min: 0.5, Max: 5.5}, scale.Domain{Min: 0.5, Max: 5.5}},
	} {
		if got := Extent(test.series, test.override); got != test.want {
			t.Errorf("Extent(%v) = %v, want %v", test.series, got, test.want)
		}
	}
}

func TestNiceWidth(t *testing.T) {
	for _, test := range []struct{ in, want float64 }{
		{1.5, 2},
		{1, 1},
		{10, 10},
		{340, 400},
		{0.83, 0.9},
		{0.0042, 0.005},
		{0, 0},
		{-3, -3},
	} {
		if got := NiceWidth(test.in); !near(got, test.want) {
			t.Errorf("NiceWidth(%v) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestComputeBinsRoundedWidthWins(t *testing.T) {
	d := scale.Domain{Min: 0.5, Max: 5.5}
	got := ComputeBins(d, Config{Width: 1.5}.Spec())
	want := []Bin{{0, 2, 2}, {2, 4, 2}, {4, 6, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ComputeBins(%v, width 1.5) = %v, want %v", d, got, want)
	}
}

func TestComputeBinsAuto(t *testing.T) {
	// span/6 = 10/6 ≈ 1.67, rounded up to 2.
	got := ComputeBins(scale.Domain{Min: 0, Max: 10}, AutoWidth{})
	want := []Bin{{0, 2, 2}, {2, 4, 2}, {4, 6, 2}, {6, 8, 2}, {8, 10, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("auto bins = %v, want %v", got, want)
	}

	// A requested width below the minimum is raised to it.
	if got := ComputeBins(scale.Domain{Min: 0, Max: 10}, ExplicitWidth(0.1)); !reflect.DeepEqual(got, want) {
		t.Errorf("width 0.1 bins = %v, want %v", got, want)
	}
	// As is a non-positive one.
	if got := ComputeBins(scale.Domain{Min: 0, Max: 10}, ExplicitWidth(-4)); !reflect.DeepEqual(got, want) {
		t.Errorf("width -4 bins = %v, want %v", got, want)
	}
}

func TestComputeBinsEdges(t *testing.T) {
	got := ComputeBins(scale.Domain{Min: 0, Max: 100}, Config{Edges: []float64{10, 0, 2.5, math.NaN()}}.Spec())
	want := []Bin{{0, 2.5, 2.5}, {2.5, 10, 7.5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("edge bins = %v, want %v", got, want)
	}

	// Fewer than two finite edges falls back to automatic bins.
	got = ComputeBins(scale.Domain{Min: 0, Max: 10}, ExplicitEdges{5, math.Inf(1)})
	if len(got) != 5 {
		t.Errorf("fallback bins = %v, want 5 automatic bins", got)
	}
}

func TestComputeBinsDegenerate(t *testing.T) {
	if got := ComputeBins(scale.Domain{Min: 3, Max: 3}, AutoWidth{}); got != nil {
		t.Errorf("zero-span auto bins = %v, want none", got)
	}
	want := []Bin{{3, 4, 1}}
	if got := ComputeBins(scale.Domain{Min: 3, Max: 3}, ExplicitWidth(1)); !reflect.DeepEqual(got, want) {
		t.Errorf("zero-span width 1 bins = %v, want %v", got, want)
	}
	if got := ComputeBins(scale.Domain{Min: math.NaN(), Max: 1}, AutoWidth{}); got != nil {
		t.Errorf("NaN domain bins = %v, want none", got)
	}
	// Edges far beyond float precision of the width must still stop.
	if got := ComputeBins(scale.Domain{Min: 1e16, Max: 1e16 + 6}, ExplicitWidth(1)); len(got) == 0 || len(got) > maxBins {
		t.Errorf("large-offset domain produced %d bins", len(got))
	}
}

func TestComputeBinsWide(t *testing.T) {
	for _, values := range [][]float64{
		{-1e308, 0, 1e308},
		{-math.MaxFloat64, math.MaxFloat64},
		{0, math.MaxFloat64},
	} {
		d := Extent([]Series{{Values: values}}, nil)
		bins := ComputeBins(d, AutoWidth{})
		if len(bins) == 0 || len(bins) > MaxAutoBins+1 {
			t.Errorf("%v: got %d bins", values, len(bins))
			continue
		}
		for i, b := range bins {
			if math.IsInf(b.X0, 0) || math.IsInf(b.X1, 0) || !(b.X0 < b.X1) {
				t.Errorf("%v: bad bin %d %+v", values, i, b)
			}
			if i > 0 && bins[i-1].X1 != b.X0 {
				t.Errorf("%v: bins %d and %d not contiguous", values, i-1, i)
			}
		}
		if total := vecSum(CountValues(values, bins)); total != float64(len(values)) {
			t.Errorf("%v: counted %v values, want %d", values, total, len(values))
		}
	}
}

func vecSum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func TestBinProperties(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for iter := 0; iter < 500; iter++ {
		lo := (r.Float64() - 0.5) * math.Pow(10, float64(r.Intn(8)-3))
		d := scale.Domain{Min: lo, Max: lo + r.Float64()*math.Pow(10, float64(r.Intn(8)-3)) + 1e-3}
		var spec BinSpec = AutoWidth{}
		if r.Intn(2) == 0 {
			spec = ExplicitWidth(r.Float64() * d.Span())
		}
		bins := ComputeBins(d, spec)
		if len(bins) == 0 {
			t.Fatalf("%v %v: no bins", d, spec)
		}
		if slack := tol * math.Max(1, math.Abs(d.Max)); bins[0].X0 > d.Min+slack || bins[len(bins)-1].X1 < d.Max-slack {
			t.Fatalf("%v %v: bins %v..%v do not cover domain", d, spec, bins[0].X0, bins[len(bins)-1].X1)
		}
		if len(bins) > MaxAutoBins+2 {
			t.Fatalf("%v %v: %d bins", d, spec, len(bins))
		}
		for i := 1; i < len(bins); i++ {
			if bins[i-1].X1 != bins[i].X0 {
				t.Fatalf("%v %v: bins %d and %d not contiguous", d, spec, i-1, i)
			}
		}
	}
}

func TestFind(t *testing.T) {
	bins := []Bin{{0, 1, 1}, {1, 2, 1}, {2, 3, 1}}
	for _, test := range []struct {
		v    float64
		want int
	}{
		{0, 0}, {0.5, 0}, {1, 1}, {2.99, 2}, {3, 2},
		{-0.1, -1}, {3.01, -1}, {math.NaN(), -1}, {math.Inf(1), -1},
	} {
		if got := Find(bins, test.v); got != test.want {
			t.Errorf("Find(%v) = %d, want %d", test.v, got, test.want)
		}
	}
	if got := Find(nil, 1); got != -1 {
		t.Errorf("Find(nil) = %d", got)
	}

	// A zero-width bin only matches as the closed last bin.
	bins = []Bin{{1, 2, 1}, {2, 2, 0}}
	if got := Find(bins, 2); got != 1 {
		t.Errorf("Find(2) in %v = %d, want 1", bins, got)
	}
}

func TestCountValues(t *testing.T) {
	bins := []Bin{{0, 2, 2}, {2, 4, 2}, {4, 6, 2}}
	values := []float64{0, 1.9, 2, 5, 6, 6.5, -1, math.NaN(), math.Inf(-1)}
	got := CountValues(values, bins)
	want := []float64{2, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountValues = %v, want %v", got, want)
	}
}

func TestConservation(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for iter := 0; iter < 200; iter++ {
		values := make([]float64, r.Intn(100))
		for i := range values {
			values[i] = r.NormFloat64() * 10
			if r.Intn(20) == 0 {
				values[i] = math.NaN()
			}
		}
		finite := len(scale.Finite(values))

		// Bins over the data's own extent capture every value.
		d := Extent([]Series{{Values: values}}, nil)
		bins := ComputeBins(d, AutoWidth{})
		if got := sum(CountValues(values, bins)); int(got) != finite {
			t.Fatalf("counted %v of %d finite values", got, finite)
		}

		// Narrower bins may drop values, but never invent them.
		bins = ComputeBins(scale.Domain{Min: -5, Max: 5}, AutoWidth{})
		if got := sum(CountValues(values, bins)); int(got) > finite {
			t.Fatalf("counted %v of %d finite values", got, finite)
		}
	}
}

func sum(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s
}

func TestDensityIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	values := make([]float64, 250)
	for i := range values {
		values[i] = r.ExpFloat64()
	}
	series := []Series{{ID: "a", Values: values}}
	bins := ComputeBins(Extent(series, nil), AutoWidth{})
	dens := Aggregate(series, bins, Density)[0]
	area := 0.0
	for i, d := range dens {
		area += d * bins[i].Width
	}
	if !near(area, 1) {
		t.Errorf("density integrates to %v, want 1", area)
	}
}

func TestDensities(t *testing.T) {
	bins := []Bin{{0, 1, 1}, {1, 1, 0}, {1, 5, 4}}
	got := Densities([]float64{2, 1, 4}, bins, 4)
	want := []float64{0.5, 0.25, 0.25}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Densities = %v, want %v", got, want)
	}
	// An empty series never divides by zero.
	if got := Densities([]float64{0, 0, 0}, bins, 0); !reflect.DeepEqual(got, []float64{0, 0, 0}) {
		t.Errorf("empty Densities = %v", got)
	}
}

func TestStackedMax(t *testing.T) {
	// Two series of 15 values each, binned with a requested width
	// of 1.5.
	a := []float64{0.1, 0.4, 0.9, 1.2, 1.6, 2.2, 2.5, 2.8, 3.1, 3.3, 3.9, 4.4, 5.0, 5.6, 6.0}
	b := []float64{0.3, 1.1, 1.4, 1.9, 2.0, 2.1, 2.6, 2.9, 3.5, 3.7, 3.8, 4.1, 4.9, 5.2, 5.9}
	series := []Series{{ID: "a", Values: a}, {ID: "b", Values: b}}
	bins := ComputeBins(Extent(series, nil), Config{Width: 1.5}.Spec())
	counts := Aggregate(series, bins, Count)

	best := 0.0
	for i := range bins {
		if s := counts[0][i] + counts[1][i]; s > best {
			best = s
		}
	}
	if got := StackedMax(counts); got != best {
		t.Errorf("StackedMax = %v, want %v", got, best)
	}
	// Width 1.5 rounds to 2 over [0.1, 6], giving [0,2) [2,4) [4,6].
	if want := []float64{9, 13, 8}; !reflect.DeepEqual(BinTotals(counts), want) {
		t.Errorf("BinTotals = %v, want %v", BinTotals(counts), want)
	}

	if got := StackedMax(nil); got != 1 {
		t.Errorf("StackedMax(nil) = %v, want 1", got)
	}
	if got := StackedMax([][]float64{{0, 0}, {0, 0}}); got != 1 {
		t.Errorf("StackedMax(zeros) = %v, want 1", got)
	}
}

func TestLayout(t *testing.T) {
	series := []Series{
		{ID: "a", Values: []float64{1, 1, 3}},
		{ID: "b", Values: []float64{1, 5}, Color: "#000000"},
	}
	c := Layout(series, Config{Edges: []float64{0, 2, 4, 6}}, Options{Width: 372})
	if c.PlotWidth != 300 || c.PlotHeight != 284 {
		t.Fatalf("plot area %vx%v, want 300x284", c.PlotWidth, c.PlotHeight)
	}
	if c.StackedMax != 3 {
		t.Errorf("StackedMax = %v, want 3", c.StackedMax)
	}
	if len(c.Bins) != 3 {
		t.Fatalf("got %d bins, want 3", len(c.Bins))
	}
	if got := c.Legend; !reflect.DeepEqual(got, []LegendEntry{{"a", Palette[0]}, {"b", "#000000"}}) {
		t.Errorf("Legend = %v", got)
	}

	// The first bin stacks 2 of a under 1 of b to the top.
	b0 := c.Bins[0]
	if len(b0.Segments) != 2 {
		t.Fatalf("bin 0 has %d segments", len(b0.Segments))
	}
	lo, hi := b0.Segments[0], b0.Segments[1]
	if !near(lo.Height, 284*2/3.0) || !near(lo.Y+lo.Height, 284) {
		t.Errorf("lower segment %+v", lo)
	}
	if !near(hi.Y, 0) || !near(hi.Y+hi.Height, lo.Y) {
		t.Errorf("upper segment %+v does not sit on %+v", hi, lo)
	}
	// Three bins in 300px leave exactly the minimum band.
	if b0.Label != "0.0–2.0" || b0.Placement.Rotated || b0.LabelY != 284+14 || b0.LabelX != 50 {
		t.Errorf("bin 0 label %q at (%v, %v), placement %+v", b0.Label, b0.LabelX, b0.LabelY, b0.Placement)
	}

	if len(c.Grid) != 5 || c.Grid[4].Label != "3" || c.Grid[0].Label != "0" {
		t.Errorf("grid = %+v", c.Grid)
	}

	// More than four bins always rotate, however wide.
	c = Layout(series, Config{Edges: []float64{0, 1, 2, 3, 4, 5}}, Options{Width: 2072})
	for _, b := range c.Bins {
		if !b.Placement.Rotated || b.Placement.Angle != 45 || b.LabelY != c.PlotHeight+50 {
			t.Errorf("crowded bin %q placement %+v at %v", b.Label, b.Placement, b.LabelY)
		}
	}

	// Wide bands and few bins keep labels level.
	c = Layout(series, Config{Edges: []float64{0, 3, 6}}, Options{Width: 672, YScale: Density, Unit: "ms"})
	for _, b := range c.Bins {
		if b.Placement.Rotated || b.LabelY != c.PlotHeight+14 {
			t.Errorf("bin %q rotated in a %v band", b.Label, c.PlotWidth/2)
		}
	}
	if c.Bins[0].Label != "0.0–3.0 ms" {
		t.Errorf("label = %q", c.Bins[0].Label)
	}
	if c.Grid[0].Label != "0.000" {
		t.Errorf("density grid label = %q", c.Grid[0].Label)
	}
}

func TestLayoutEmpty(t *testing.T) {
	c := Layout(nil, Config{}, Options{Width: 400})
	if len(c.Bins) != 5 {
		t.Errorf("empty histogram has %d bins over the unit domain", len(c.Bins))
	}
	for _, b := range c.Bins {
		if len(b.Segments) != 0 || b.Total != 0 {
			t.Errorf("empty histogram bin %+v has content", b)
		}
	}
	if c.StackedMax != 1 {
		t.Errorf("StackedMax = %v, want 1", c.StackedMax)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	series := []Series{{ID: "x", Values: []float64{1, 2, 2, 3, 8, math.NaN()}}}
	a := Layout(series, Config{Width: 1.5}, Options{Width: 500})
	b := Layout(series, Config{Width: 1.5}, Options{Width: 500})
	if !reflect.DeepEqual(a.Bins, b.Bins) || !reflect.DeepEqual(a.Grid, b.Grid) {
		t.Errorf("Layout not reproducible")
	}
}
