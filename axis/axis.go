// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axis holds the plot-area geometry shared by bar charts and
// histograms: margins, category bands, and labelled ticks.
package axis

import (
	"math"

	"github.com/ethicalfolio/chartgeom/scale"
)

// A Margin is the space around a plot area, in pixels.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Inner returns the plot area left inside a width × height box. The
// results are never negative.
func (m Margin) Inner(width, height float64) (w, h float64) {
	w = math.Max(0, width-m.Left-m.Right)
	h = math.Max(0, height-m.Top-m.Bottom)
	return
}

// A Band divides an extent into N equal bands, each holding one bar
// centered in it.
type Band struct {
	N int

	// Step is the width of each band.
	Step float64

	// Bar is the width of the bar in each band. It is at least 1.
	Bar float64

	// Offset is the gap between the start of a band and its bar.
	Offset float64
}

// NewBand divides extent into n bands. padding is the fraction of each
// band left empty around its bar.
func NewBand(extent float64, n int, padding float64) Band {
	b := Band{N: n}
	if n > 0 {
		b.Step = extent / float64(n)
	}
	b.Bar = math.Max(1, b.Step*(1-padding))
	b.Offset = (b.Step - b.Bar) / 2
	return b
}

// Start returns the position of the leading edge of bar i.
func (b Band) Start(i int) float64 {
	return float64(i)*b.Step + b.Offset
}

// Center returns the position of the middle of bar i.
func (b Band) Center(i int) float64 {
	return b.Start(i) + b.Bar/2
}

// A Tick is a grid line with its display text.
type Tick struct {
	scale.GridLine
	Label string
}

// Ticks labels lines using format.
func Ticks(lines []scale.GridLine, format func(float64) string) []Tick {
	ticks := make([]Tick, len(lines))
	for i, g := range lines {
		ticks[i] = Tick{g, format(g.Value)}
	}
	return ticks
}

// Radius returns the corner radius for a bar of the given width and
// height: r, limited to half of either dimension.
func Radius(r, width, height float64) float64 {
	return math.Max(0, math.Min(r, math.Min(width/2, height/2)))
}
