// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"

	"github.com/ethicalfolio/chartgeom/axis"
	"github.com/ethicalfolio/chartgeom/format"
	"github.com/ethicalfolio/chartgeom/label"
	"github.com/ethicalfolio/chartgeom/scale"
)

// Defaults for Options.
const (
	DefaultHeight  = 500
	DefaultPadding = 0.1
	DefaultRadius  = 4

	// MinLabelBand is the narrowest band whose bin label is drawn
	// level.
	MinLabelBand = 100

	// MaxLevelLabels is the most bins whose labels are drawn level.
	MaxLevelLabels = 4
)

// DefaultMargin leaves room below the plot for rotated bin labels.
var DefaultMargin = axis.Margin{Top: 16, Right: 16, Bottom: 200, Left: 56}

// Palette is the fill color cycle for series without a Color.
var Palette = []string{"#2563eb", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#06b6d4"}

// Options controls Layout. Zero fields take their defaults.
type Options struct {
	// Width and Height are the size of the whole chart.
	Width, Height float64

	// Margin, if non-nil, replaces DefaultMargin.
	Margin *axis.Margin

	// Padding is the fraction of each bin's band left empty.
	Padding float64

	// Radius is the corner radius of bar segments.
	Radius float64

	// Unit is appended to bin labels.
	Unit string

	YScale YScale

	// Ticks is the number of y grid intervals. If zero,
	// scale.DefaultTicks is used; if negative, there is no grid.
	Ticks int

	// Nice selects round-valued grid lines instead of evenly
	// divided ones.
	Nice bool

	// Title is drawn above the chart. XTitle names the bin axis
	// and YTitle the count axis.
	Title, XTitle, YTitle string
}

// A Segment is one series' share of a stacked bin.
type Segment struct {
	Series int
	Value  float64
	Color  string

	// X, Y, Width, and Height locate the segment in plot
	// coordinates, Y growing down.
	X, Y, Width, Height float64
	Radius              float64
}

// A BinLayout is the geometry of one bin.
type BinLayout struct {
	Bin
	Total    float64
	Segments []Segment

	// Label is the bin's range text, anchored at (LabelX, LabelY)
	// in plot coordinates.
	Label          string
	LabelX, LabelY float64
	Placement      label.Placement
}

// A LegendEntry names one series' color.
type LegendEntry struct {
	ID    string
	Color string
}

// A Chart is the complete geometry of a stacked histogram.
type Chart struct {
	Width, Height         float64
	Margin                axis.Margin
	PlotWidth, PlotHeight float64

	// Domain is the x extent the bins were computed over.
	Domain scale.Domain
	Bins   []BinLayout

	// Values holds per-series per-bin counts or densities.
	Values     [][]float64
	StackedMax float64
	YScale     YScale

	// Y maps stacked values to plot offsets.
	Y      *scale.Scale
	Grid   []axis.Tick
	Legend []LegendEntry

	// YTitle ends in " (density)" for density charts.
	Title, XTitle, YTitle string
}

// Layout computes the histogram of series under bins.
func Layout(series []Series, bins Config, o Options) *Chart {
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

	c := &Chart{Width: o.Width, Height: height, Margin: margin, YScale: o.YScale}
	c.Title, c.XTitle, c.YTitle = o.Title, o.XTitle, o.YTitle
	if c.YTitle != "" && o.YScale == Density {
		c.YTitle += " (density)"
	}
	c.PlotWidth, c.PlotHeight = margin.Inner(o.Width, height)

	c.Domain = Extent(series, bins.Domain)
	computed := ComputeBins(c.Domain, bins.Spec())
	c.Values = Aggregate(series, computed, o.YScale)
	c.StackedMax = StackedMax(c.Values)

	c.Y = scale.New(scale.ResolveDomain([]float64{c.StackedMax}, nil, scale.Linear), c.PlotHeight, scale.Linear)
	var lines []scale.GridLine
	if o.Nice {
		lines = c.Y.NiceGridLines(ticks + 1)
	} else {
		lines = c.Y.GridLines(ticks)
	}
	tickFormat := format.Count
	if o.YScale == Density {
		tickFormat = format.Density
	}
	c.Grid = axis.Ticks(lines, tickFormat)

	colors := make([]string, len(series))
	for i, s := range series {
		colors[i] = s.Color
		if colors[i] == "" {
			colors[i] = Palette[i%len(Palette)]
		}
		c.Legend = append(c.Legend, LegendEntry{s.ID, colors[i]})
	}

	band := axis.NewBand(c.PlotWidth, len(computed), padding)
	labels := label.Options{Angle: label.BinAngle, MinBand: MinLabelBand}
	if len(computed) > MaxLevelLabels {
		// Crowded axes always rotate.
		labels.MinBand = math.Inf(1)
	}
	totals := BinTotals(c.Values)
	for i, b := range computed {
		bl := BinLayout{Bin: b, Label: format.BinRange(b.X0, b.X1, o.Unit)}
		if i < len(totals) {
			bl.Total = totals[i]
		}
		bl.Placement = label.PlaceLine(bl.Label, band.Step, labels)
		bl.LabelX = band.Center(i)
		bl.LabelY = c.PlotHeight + 14
		if bl.Placement.Rotated {
			bl.LabelY = c.PlotHeight + 50
		}

		// Stack segments bottom-up in series order.
		x := band.Start(i)
		acc := c.PlotHeight
		for s := range series {
			v := c.Values[s][i]
			h := c.PlotHeight - c.Y.Map(v)
			acc -= h
			bl.Segments = append(bl.Segments, Segment{
				Series: s,
				Value:  v,
				Color:  colors[s],
				X:      x,
				Y:      acc,
				Width:  band.Bar,
				Height: h,
				Radius: axis.Radius(radius, band.Bar, h),
			})
		}
		c.Bins = append(c.Bins, bl)
	}
	return c
}
