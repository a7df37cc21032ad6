// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws chart geometry as SVG or PNG.
//
// A Scene is a flat list of shapes in absolute pixel coordinates. It
// is built from a laid-out chart by FromBar or FromHistogram and then
// written by one of the backends. Rendering adds no layout decisions
// of its own beyond placing text lines.
package render

import (
	"fmt"

	"github.com/ethicalfolio/chartgeom/axis"
	"github.com/ethicalfolio/chartgeom/bar"
	"github.com/ethicalfolio/chartgeom/hist"
	"github.com/ethicalfolio/chartgeom/label"
)

// Colors used by the chart builders.
const (
	Background = "#ffffff"
	GridColor  = "#e2e8f0"
	AxisColor  = "#334155"
	TextColor  = "#475569"
	TitleColor = "#0f172a"
)

// LineHeight is the distance between wrapped label lines.
const LineHeight = 14

// A Scene is a drawing in pixel coordinates, Y growing down. Shapes
// are drawn rects first, then lines, then texts.
type Scene struct {
	Width, Height float64

	Rects []Rect
	Lines []Line
	Texts []Text
}

// A Rect is a filled rectangle with corner radius R.
type Rect struct {
	X, Y, W, H float64
	R          float64
	Fill       string

	// Title, if set, is attached as a tooltip.
	Title string
}

// A Line is a 1px stroke.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
}

// Anchor is the point of a Text its position refers to.
type Anchor int

const (
	Start Anchor = iota
	Middle
	End
)

// A Text is one line of text. (X, Y) is the anchor point on the
// baseline.
type Text struct {
	X, Y   float64
	S      string
	Anchor Anchor
	Fill   string

	// Angle rotates the text about its anchor, in degrees clockwise.
	Angle float64
}

func (s *Scene) rect(r Rect) { s.Rects = append(s.Rects, r) }

func (s *Scene) line(x1, y1, x2, y2 float64, stroke string) {
	s.Lines = append(s.Lines, Line{x1, y1, x2, y2, stroke})
}

func (s *Scene) text(t Text) {
	if t.Fill == "" {
		t.Fill = TextColor
	}
	s.Texts = append(s.Texts, t)
}

// placement adds the lines of p anchored at (x, y). Rotated labels
// end at the anchor and slope down to the left. Wrapped lines stack
// downward from y, or are centered on y if center is set.
func (s *Scene) placement(p label.Placement, x, y float64, anchor Anchor, center bool) {
	if p.Rotated {
		s.text(Text{X: x, Y: y, S: p.Lines[0], Anchor: End, Angle: -p.Angle})
		return
	}
	if center {
		y -= float64(len(p.Lines)-1) * LineHeight / 2
	}
	for i, l := range p.Lines {
		s.text(Text{X: x, Y: y + float64(i)*LineHeight, S: l, Anchor: anchor})
	}
}

// titles adds the chart title centered at the top, the x title
// centered xGap below the plot, and the y title rotated to read
// upward, left of the grid labels.
func (s *Scene) titles(title, xTitle, yTitle string, m axis.Margin, plotW, plotH, xGap float64) {
	if title != "" {
		s.text(Text{X: s.Width / 2, Y: 20, S: title, Anchor: Middle, Fill: TitleColor})
	}
	if xTitle != "" {
		s.text(Text{X: m.Left + plotW/2, Y: m.Top + plotH + xGap, S: xTitle, Anchor: Middle, Fill: AxisColor})
	}
	if yTitle != "" {
		s.text(Text{X: m.Left - 42, Y: m.Top + plotH/2, S: yTitle, Anchor: Middle, Fill: AxisColor, Angle: -90})
	}
}

func newScene(w, h float64) *Scene {
	s := &Scene{Width: w, Height: h}
	s.rect(Rect{W: w, H: h, Fill: Background})
	return s
}

// FromBar returns the scene of a bar chart.
func FromBar(c *bar.Chart) *Scene {
	s := newScene(c.Width, c.Height)
	left, top := c.Margin.Left, c.Margin.Top
	horiz := c.Orientation == bar.Horizontal

	for _, g := range c.Grid {
		if horiz {
			x := left + g.Position
			s.line(x, top, x, top+c.PlotHeight, GridColor)
			s.text(Text{X: x, Y: top + c.PlotHeight + 16, S: g.Label, Anchor: Middle})
		} else {
			y := top + g.Position
			s.line(left, y, left+c.PlotWidth, y, GridColor)
			s.text(Text{X: left - 8, Y: y + 4, S: g.Label, Anchor: End})
		}
	}

	for _, b := range c.Bars {
		s.rect(Rect{
			X: left + b.X, Y: top + b.Y, W: b.Width, H: b.Height, R: b.Radius,
			Fill:  c.Color,
			Title: b.Category + ": " + b.ValueLabel,
		})
		anchor := Middle
		if horiz {
			anchor = Start
			if b.Value < 0 {
				anchor = End
			}
		}
		s.text(Text{X: left + b.ValueX, Y: top + b.ValueY, S: b.ValueLabel, Anchor: anchor, Fill: AxisColor})
		if horiz {
			s.placement(b.Label, left+b.LabelX, top+b.LabelY+4, End, true)
		} else {
			s.placement(b.Label, left+b.LabelX, top+b.LabelY, Middle, false)
		}
	}

	if c.HasBaseline {
		if horiz {
			x := left + c.Baseline
			s.line(x, top, x, top+c.PlotHeight, AxisColor)
		} else {
			y := top + c.Baseline
			s.line(left, y, left+c.PlotWidth, y, AxisColor)
		}
	}
	s.titles(c.Title, c.XTitle, c.YTitle, c.Margin, c.PlotWidth, c.PlotHeight, 40)
	return s
}

// FromHistogram returns the scene of a stacked histogram.
func FromHistogram(c *hist.Chart) *Scene {
	s := newScene(c.Width, c.Height)
	left, top := c.Margin.Left, c.Margin.Top

	for _, g := range c.Grid {
		y := top + g.Position
		s.line(left, y, left+c.PlotWidth, y, GridColor)
		s.text(Text{X: left - 8, Y: y + 4, S: g.Label, Anchor: End})
	}

	for _, b := range c.Bins {
		for _, seg := range b.Segments {
			if seg.Height <= 0 {
				continue
			}
			s.rect(Rect{
				X: left + seg.X, Y: top + seg.Y, W: seg.Width, H: seg.Height, R: seg.Radius,
				Fill:  seg.Color,
				Title: fmt.Sprintf("%s %s: %g", c.Legend[seg.Series].ID, b.Label, seg.Value),
			})
		}
		s.placement(b.Placement, left+b.LabelX, top+b.LabelY, Middle, false)
	}
	s.line(left, top+c.PlotHeight, left+c.PlotWidth, top+c.PlotHeight, AxisColor)

	// The legend runs along the bottom edge.
	y := c.Height - 16
	for i, e := range c.Legend {
		x := left + float64(i)*120
		s.rect(Rect{X: x, Y: y - 9, W: 10, H: 10, R: 2, Fill: e.Color})
		s.text(Text{X: x + 14, Y: y, S: e.ID})
	}
	s.titles(c.Title, c.XTitle, c.YTitle, c.Margin, c.PlotWidth, c.PlotHeight, 180)
	return s
}
