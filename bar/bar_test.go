// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bar

import (
	"math"
	"reflect"
	"testing"

	"github.com/ethicalfolio/chartgeom/scale"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func categories(data []Datum) []string {
	var out []string
	for _, d := range data {
		out = append(out, d.Category)
	}
	return out
}

func TestSort(t *testing.T) {
	data := []Datum{
		{Category: "cherry", Value: 2},
		{Category: "Banana", Value: 3},
		{Category: "apple", Value: 2},
		{Category: "date", Value: 1},
	}
	orig := append([]Datum(nil), data...)
	for _, test := range []struct {
		order Order
		want  []string
	}{
		{ValueDesc, []string{"Banana", "cherry", "apple", "date"}},
		{ValueAsc, []string{"date", "cherry", "apple", "Banana"}},
		{Alpha, []string{"apple", "Banana", "cherry", "date"}},
		{None, []string{"cherry", "Banana", "apple", "date"}},
	} {
		if got := categories(Sort(data, test.order, nil)); !reflect.DeepEqual(got, test.want) {
			t.Errorf("Sort(%v) = %v, want %v", test.order, got, test.want)
		}
	}
	if !reflect.DeepEqual(data, orig) {
		t.Errorf("Sort modified its input: %v", data)
	}

	byLen := func(a, b Datum) bool { return len(a.Category) < len(b.Category) }
	want := []string{"date", "apple", "cherry", "Banana"}
	if got := categories(Sort(data, ValueDesc, byLen)); !reflect.DeepEqual(got, want) {
		t.Errorf("Sort(custom) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	for _, o := range []Order{ValueDesc, ValueAsc, Alpha, None} {
		if got, err := ParseOrder(o.String()); err != nil || got != o {
			t.Errorf("ParseOrder(%q) = %v, %v", o.String(), got, err)
		}
	}
	if _, err := ParseOrder("random"); err == nil {
		t.Errorf("ParseOrder(random) succeeded")
	}
	for _, o := range []Orientation{Vertical, Horizontal} {
		if got, err := ParseOrientation(o.String()); err != nil || got != o {
			t.Errorf("ParseOrientation(%q) = %v, %v", o.String(), got, err)
		}
	}
	if _, err := ParseOrientation("diagonal"); err == nil {
		t.Errorf("ParseOrientation(diagonal) succeeded")
	}
}

func TestResolveDomain(t *testing.T) {
	data := []Datum{{Value: 10}, {Value: 20}, {Value: 30}}
	hundred, five := 100.0, 5.0
	for _, test := range []struct {
		o    Options
		want scale.Domain
	}{
		{Options{}, scale.Domain{Min: 0, Max: 30}},
		{Options{Max: &hundred}, scale.Domain{Min: 0, Max: 100}},
		{Options{Min: &five}, scale.Domain{Min: 5, Max: 30}},
		{Options{Min: &five, Max: &hundred}, scale.Domain{Min: 5, Max: 100}},
		{Options{Mode: scale.Log}, scale.Domain{Min: 10, Max: 100}},
	} {
		if got := ResolveDomain(data, test.o); got != test.want {
			t.Errorf("ResolveDomain(%+v) = %v, want %v", test.o, got, test.want)
		}
	}
}

func TestLayoutVertical(t *testing.T) {
	data := []Datum{{Category: "a", Value: 10}, {Category: "b", Value: 30}, {Category: "c", Value: 20}}
	c := Layout(data, Options{Width: 600})
	if c.PlotWidth != 528 || c.PlotHeight != 208 {
		t.Fatalf("plot area %vx%v, want 528x208", c.PlotWidth, c.PlotHeight)
	}
	if got := c.Value.Domain(); got != (scale.Domain{Min: 0, Max: 30}) {
		t.Errorf("domain = %v", got)
	}
	if !c.HasBaseline || c.Baseline != 208 {
		t.Errorf("baseline = %v, %v, want 208", c.Baseline, c.HasBaseline)
	}
	if len(c.Bars) != 3 {
		t.Fatalf("got %d bars", len(c.Bars))
	}

	// The largest bar fills the plot.
	b := c.Bars[0]
	if b.Category != "b" || b.Y != 0 || b.Height != 208 {
		t.Errorf("bar 0 = %+v, want b at 0 with height 208", b)
	}
	if !near(b.X, 17.6) || !near(b.Width, 140.8) || b.Radius != 6 {
		t.Errorf("bar 0 at x=%v width %v radius %v", b.X, b.Width, b.Radius)
	}
	if b.ValueLabel != "30" || b.ValueY != 12 || !near(b.ValueX, 88) {
		t.Errorf("bar 0 value label %q at (%v, %v)", b.ValueLabel, b.ValueX, b.ValueY)
	}

	b = c.Bars[2]
	if b.Category != "a" || !near(b.Y, 208*2/3.0) || !near(b.Y+b.Height, 208) {
		t.Errorf("bar 2 = %+v", b)
	}
	if !near(b.ValueY, b.Y-6) {
		t.Errorf("bar 2 value label at %v, want 6 above %v", b.ValueY, b.Y)
	}
	if b.Label.Rotated || b.LabelY != 224 || !near(b.LabelX, 440) {
		t.Errorf("bar 2 category label %+v at (%v, %v)", b.Label, b.LabelX, b.LabelY)
	}

	var labels []string
	for _, g := range c.Grid {
		labels = append(labels, g.Label)
	}
	if want := []string{"0", "7.5", "15", "22.5", "30"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("grid labels = %v, want %v", labels, want)
	}
}

func TestLayoutNegative(t *testing.T) {
	data := []Datum{{Category: "loss", Value: -10}, {Category: "gain", Value: 20}}
	c := Layout(data, Options{Width: 600, Order: None, Unit: "$"})
	zero := 208 * (1 - 10/30.0)
	if !near(c.Baseline, zero) {
		t.Errorf("baseline = %v, want %v", c.Baseline, zero)
	}
	b := c.Bars[0]
	if !near(b.Y, zero) || !near(b.Y+b.Height, 208) {
		t.Errorf("negative bar %+v does not hang from the baseline", b)
	}
	if b.ValueY != 204 {
		t.Errorf("negative value label at %v, want 204", b.ValueY)
	}
	if b.ValueLabel != "$-10" {
		t.Errorf("value label = %q", b.ValueLabel)
	}
	if b = c.Bars[1]; b.Y != 0 || !near(b.Height, zero) {
		t.Errorf("positive bar %+v does not stand on the baseline", b)
	}
}

func TestLayoutHorizontal(t *testing.T) {
	data := []Datum{{Category: "a", Value: 10}, {Category: "b", Value: 30}}
	c := Layout(data, Options{Width: 600, Orientation: Horizontal})
	if c.Baseline != 0 {
		t.Errorf("baseline = %v, want 0", c.Baseline)
	}
	b := c.Bars[0]
	if b.X != 0 || b.Width != 528 || !near(b.Height, 83.2) || !near(b.Y, 10.4) {
		t.Errorf("bar 0 = %+v", b)
	}
	if b.ValueX != 524 {
		t.Errorf("bar 0 value label at x=%v, want 524", b.ValueX)
	}
	b = c.Bars[1]
	if !near(b.Width, 176) || !near(b.ValueX, 182) {
		t.Errorf("bar 1 width %v, value at %v", b.Width, b.ValueX)
	}
	if b.LabelX != -8 || b.Label.Rotated {
		t.Errorf("bar 1 category label %+v at %v", b.Label, b.LabelX)
	}
	if first, last := c.Grid[0], c.Grid[len(c.Grid)-1]; first.Position != 0 || last.Position != 528 {
		t.Errorf("grid runs %v..%v, want 0..528", first.Position, last.Position)
	}
}

func TestLayoutLog(t *testing.T) {
	data := []Datum{{Value: 100}, {Value: 500}, {Value: 2000}}
	c := Layout(data, Options{Width: 600, Mode: scale.Log})
	if c.HasBaseline {
		t.Errorf("log chart has a baseline")
	}
	if got := c.Value.Domain(); got != (scale.Domain{Min: 100, Max: 2000}) {
		t.Errorf("domain = %v", got)
	}
	if len(c.Grid) != 5 {
		t.Errorf("got %d grid lines, want 5", len(c.Grid))
	}
	if b := c.Bars[0]; b.Y != 0 || b.Height != 208 {
		t.Errorf("largest bar %+v", b)
	}
	if b := c.Bars[2]; b.Height != 0 || b.Y != 208 {
		t.Errorf("bar at the domain floor has height %v at %v", b.Height, b.Y)
	}
}

func TestLayoutNonFinite(t *testing.T) {
	data := []Datum{{Category: "x", Value: math.NaN()}, {Category: "y", Value: math.Inf(1)}, {Category: "z", Value: 4}}
	c := Layout(data, Options{Width: 600, Order: None})
	if got := c.Value.Domain(); got != (scale.Domain{Min: 0, Max: 4}) {
		t.Errorf("domain = %v", got)
	}
	for _, b := range c.Bars[:2] {
		if b.Height != 0 || b.Y != c.Baseline || b.Radius != 0 {
			t.Errorf("non-finite bar %q = %+v, want zero height at baseline", b.Category, b)
		}
	}
}

func TestLayoutEmpty(t *testing.T) {
	c := Layout(nil, Options{Width: 600})
	if len(c.Bars) != 0 {
		t.Errorf("got %d bars", len(c.Bars))
	}
	if got := c.Value.Domain(); got != scale.Unit {
		t.Errorf("domain = %v, want %v", got, scale.Unit)
	}
}

func TestCategoryLabels(t *testing.T) {
	var data []Datum
	for i := 0; i < 12; i++ {
		data = append(data, Datum{Category: "Third-party Integration", Value: 1})
	}
	// 12 bars in 528px leave a 44px band.
	c := Layout(data, Options{Width: 600})
	if p := c.Bars[0].Label; !p.Rotated || len(p.Lines) != 1 {
		t.Errorf("narrow band label = %+v, want rotated", p)
	}

	c = Layout(data[:2], Options{Width: 600})
	if p := c.Bars[0].Label; p.Rotated || len(p.Lines) != 2 {
		t.Errorf("wide band label = %+v, want wrapped", p)
	}
}

func TestCustomFormat(t *testing.T) {
	f := func(v float64, unit string) string { return unit }
	c := Layout([]Datum{{Value: 1}}, Options{Width: 600, Unit: "u", Format: f, Ticks: -1})
	if c.Bars[0].ValueLabel != "u" {
		t.Errorf("value label = %q", c.Bars[0].ValueLabel)
	}
	if len(c.Grid) != 0 {
		t.Errorf("got %d grid lines, want none", len(c.Grid))
	}
}
