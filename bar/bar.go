// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bar lays out bar charts of categorical data.
//
// Layout is a pure function of its inputs. When the data or the chart
// size changes, call it again; there is no incremental update.
package bar

import (
	"fmt"
	"math"
	"sort"

	"github.com/ethicalfolio/chartgeom/axis"
	"github.com/ethicalfolio/chartgeom/format"
	"github.com/ethicalfolio/chartgeom/label"
	"github.com/ethicalfolio/chartgeom/scale"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Defaults for Options.
const (
	DefaultHeight  = 280
	DefaultPadding = 0.2
	DefaultRadius  = 6
	DefaultColor   = "#2563eb"
)

// DefaultMargin is the space around the plot area.
var DefaultMargin = axis.Margin{Top: 16, Right: 16, Bottom: 56, Left: 56}

// A Datum is one bar. Categories need not be unique; each Datum is
// drawn as its own bar.
type Datum struct {
	ID       string
	Category string
	Value    float64
}

// Order is the order bars are drawn in.
type Order int

const (
	// ValueDesc sorts by decreasing value.
	ValueDesc Order = iota
	// ValueAsc sorts by increasing value.
	ValueAsc
	// Alpha sorts categories in language-neutral collation order.
	Alpha
	// None keeps the input order.
	None
)

var orderNames = []string{"value-desc", "value-asc", "alpha", "none"}

func (o Order) String() string {
	if o >= 0 && int(o) < len(orderNames) {
		return orderNames[o]
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder returns the Order named s, as printed by Order.String.
// The empty string is ValueDesc.
func ParseOrder(s string) (Order, error) {
	if s == "" {
		return ValueDesc, nil
	}
	for i, name := range orderNames {
		if s == name {
			return Order(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sort order %q", s)
}

// Orientation selects the direction bars grow in.
type Orientation int

const (
	// Vertical bars grow up from a horizontal category axis.
	Vertical Orientation = iota
	// Horizontal bars grow right from a vertical category axis.
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation returns the Orientation named s. The empty string
// is Vertical.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// Options controls Layout. Zero fields take their defaults.
type Options struct {
	// Width and Height are the size of the whole chart.
	Width, Height float64

	// Margin, if non-nil, replaces DefaultMargin.
	Margin *axis.Margin

	Padding float64
	Radius  float64

	Orientation Orientation

	// Order sorts the bars. If Less is non-nil, it is used instead.
	Order Order
	Less  func(a, b Datum) bool

	// Mode is the value axis spacing.
	Mode scale.Mode

	// Min and Max, if non-nil, override the corresponding end of
	// the resolved value domain.
	Min, Max *float64

	// Unit is passed to Format with every value.
	Unit string

	// Format formats value labels and grid labels. If nil,
	// format.Value is used.
	Format format.Func

	// Ticks is the number of value grid intervals. If zero,
	// scale.DefaultTicks is used; if negative, there is no grid.
	Ticks int

	// Nice selects round-valued grid lines.
	Nice bool

	// Title is drawn above the chart. XTitle names the category
	// axis and YTitle the value axis.
	Title, XTitle, YTitle string

	// Color fills the bars. If empty, DefaultColor is used.
	Color string
}

// A Bar is the geometry of one Datum.
type Bar struct {
	Datum

	// X, Y, Width, and Height locate the bar in plot coordinates,
	// Y growing down.
	X, Y, Width, Height float64
	Radius              float64

	// ValueLabel is the formatted value, anchored at
	// (ValueX, ValueY).
	ValueLabel     string
	ValueX, ValueY float64

	// Label is the category text presentation, anchored at
	// (LabelX, LabelY).
	Label          label.Placement
	LabelX, LabelY float64
}

// A Chart is the complete geometry of a bar chart.
type Chart struct {
	Width, Height         float64
	Margin                axis.Margin
	PlotWidth, PlotHeight float64
	Orientation           Orientation

	// Value maps data values to offsets along the value axis.
	Value *scale.Scale
	Bars  []Bar

	// Grid positions are plot coordinates along the value axis:
	// y for Vertical charts, x for Horizontal.
	Grid []axis.Tick

	// Baseline is the position of the zero line along the value
	// axis. HasBaseline is false on a Log scale.
	Baseline    float64
	HasBaseline bool

	// YTitle carries the unit in parentheses if there is one.
	Title, XTitle, YTitle string
	Color                 string
}

// Sort returns a sorted copy of data. The sort is stable. If less is
// non-nil it defines the order; otherwise order does.
func Sort(data []Datum, order Order, less func(a, b Datum) bool) []Datum {
	out := append([]Datum(nil), data...)
	if less == nil {
		switch order {
		case ValueDesc:
			less = func(a, b Datum) bool { return a.Value > b.Value }
		case ValueAsc:
			less = func(a, b Datum) bool { return a.Value < b.Value }
		case Alpha:
			c := collate.New(language.Und)
			less = func(a, b Datum) bool { return c.CompareString(a.Category, b.Category) < 0 }
		default:
			return out
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// ResolveDomain returns the value domain for data under o: the
// scale.ResolveDomain of the values, with o.Min and o.Max replacing
// either end if set.
func ResolveDomain(data []Datum, o Options) scale.Domain {
	if o.Min != nil && o.Max != nil {
		return scale.Domain{Min: *o.Min, Max: *o.Max}
	}
	values := make([]float64, len(data))
	for i, d := range data {
		values[i] = d.Value
	}
	dom := scale.ResolveDomain(values, nil, o.Mode)
	if o.Min != nil {
		dom.Min = *o.Min
	}
	if o.Max != nil {
		dom.Max = *o.Max
	}
	return dom
}

// Layout computes the bar chart of data.
func Layout(data []Datum, o Options) *Chart {
	height := o.Height
	if height == 0 {
		height = DefaultHeight
	}
	margin := DefaultMargin
	if o.Margin != nil {
		margin = *o.Margin
	}
	padding := o.Padding
	if padding == 0 {
		padding = DefaultPadding
	}
	radius := o.Radius
	if radius == 0 {
		radius = DefaultRadius
	}
	ticks := o.Ticks
	if ticks == 0 {
		ticks = scale.DefaultTicks
	}
	f := o.Format
	if f == nil {
		f = format.Value
	}

	c := &Chart{Width: o.Width, Height: height, Margin: margin, Orientation: o.Orientation}
	c.Title, c.XTitle, c.YTitle = o.Title, o.XTitle, o.YTitle
	if c.YTitle != "" && o.Unit != "" {
		c.YTitle += " (" + o.Unit + ")"
	}
	c.Color = o.Color
	if c.Color == "" {
		c.Color = DefaultColor
	}
	c.PlotWidth, c.PlotHeight = margin.Inner(o.Width, height)

	data = Sort(data, o.Order, o.Less)
	valueExtent, bandExtent := c.PlotHeight, c.PlotWidth
	if o.Orientation == Horizontal {
		valueExtent, bandExtent = c.PlotWidth, c.PlotHeight
	}
	c.Value = scale.New(ResolveDomain(data, o), valueExtent, o.Mode)

	// pos converts a scale offset to a plot coordinate along the
	// value axis.
	pos := func(offset float64) float64 { return offset }
	if o.Orientation == Horizontal {
		pos = func(offset float64) float64 { return c.PlotWidth - offset }
	}

	var lines []scale.GridLine
	if o.Nice {
		lines = c.Value.NiceGridLines(ticks + 1)
	} else {
		lines = c.Value.GridLines(ticks)
	}
	c.Grid = axis.Ticks(lines, func(v float64) string { return f(v, o.Unit) })
	for i := range c.Grid {
		c.Grid[i].Position = pos(c.Grid[i].Position)
	}
	if off, ok := c.Value.Baseline(); ok {
		c.Baseline, c.HasBaseline = pos(off), true
	}

	band := axis.NewBand(bandExtent, len(data), padding)
	for i, d := range data {
		v := d.Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			// Draw a zero-height bar at the baseline.
			v = 0
		}
		// Along the value axis, lo is the end nearer zero and hi the
		// end nearer v, in plot coordinates.
		hi := pos(c.Value.Map(math.Max(0, v)))
		lo := pos(c.Value.Map(math.Min(0, v)))
		b := Bar{Datum: d, ValueLabel: f(d.Value, o.Unit)}
		if o.Orientation == Horizontal {
			// hi is the right end, lo the left.
			b.X, b.Width = lo, math.Max(0, hi-lo)
			b.Y, b.Height = band.Start(i), band.Bar
			b.ValueY = band.Center(i) + 4
			if v >= 0 {
				b.ValueX = math.Min(c.PlotWidth-4, hi+6)
			} else {
				b.ValueX = math.Max(4, lo-6)
			}
			b.Label = label.Place(d.Category, 0, label.Options{})
			b.LabelX, b.LabelY = -8, band.Center(i)
		} else {
			// hi is the top, lo the bottom.
			b.X, b.Width = band.Start(i), band.Bar
			b.Y, b.Height = hi, math.Max(0, lo-hi)
			b.ValueX = band.Center(i)
			if v >= 0 {
				b.ValueY = math.Max(12, hi-6)
			} else {
				b.ValueY = lo + 12
			}
			b.ValueY = math.Min(c.PlotHeight-4, b.ValueY)
			b.Label = label.Place(d.Category, band.Step, label.Options{CharWidth: label.DefaultCharWidth})
			b.LabelX, b.LabelY = band.Center(i), c.PlotHeight+16
		}
		b.Radius = axis.Radius(radius, b.Width, b.Height)
		c.Bars = append(c.Bars, b)
	}
	return c
}
