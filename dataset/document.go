// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset reads chart inputs: chart documents in YAML or
// JSON, and Go benchmark results files.
//
// A bar chart document looks like
//
//	kind: bar
//	title: Funding by sector
//	unit: $
//	sort: alpha
//	data:
//	  - {category: Energy, value: 1500000}
//	  - {category: Water, value: 420000}
//
// and a histogram document like
//
//	kind: histogram
//	unit: ms
//	yScale: density
//	bins: {width: 1.5}
//	series:
//	  - {id: before, values: [1.2, 3.4, 2.2]}
//	  - {id: after, values: [0.9, 1.1, 1.7], color: "#10b981"}
//
// Invalid enumerations, unknown fields, and malformed bin domains are
// reported by Decode, so a decoded Document always converts cleanly
// to layout inputs.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ethicalfolio/chartgeom/bar"
	"github.com/ethicalfolio/chartgeom/hist"
	"github.com/ethicalfolio/chartgeom/scale"
	"gopkg.in/yaml.v3"
)

// Document kinds.
const (
	KindBar       = "bar"
	KindHistogram = "histogram"
)

// A Document describes one chart.
type Document struct {
	Kind  string `yaml:"kind"`
	Unit  string `yaml:"unit,omitempty"`

	// Title is drawn above the chart; XTitle and YTitle label the
	// axes.
	Title  string `yaml:"title,omitempty"`
	XTitle string `yaml:"xTitle,omitempty"`
	YTitle string `yaml:"yTitle,omitempty"`

	// Width and Height are the chart size. Zero means the layout
	// default.
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`

	Ticks int  `yaml:"ticks,omitempty"`
	Nice  bool `yaml:"nice,omitempty"`

	// Bar chart fields.
	Data        []Datum  `yaml:"data,omitempty"`
	Sort        string   `yaml:"sort,omitempty"`
	Orientation string   `yaml:"orientation,omitempty"`
	Log         bool     `yaml:"log,omitempty"`
	Min         *float64 `yaml:"min,omitempty"`
	Max         *float64 `yaml:"max,omitempty"`
	Color       string   `yaml:"color,omitempty"`

	// Histogram fields.
	Series []Series `yaml:"series,omitempty"`
	Bins   Bins     `yaml:"bins,omitempty"`
	YScale string   `yaml:"yScale,omitempty"`

	order       bar.Order
	orientation bar.Orientation
	yScale      hist.YScale
}

// A Datum is one bar of a bar chart document.
type Datum struct {
	ID       string  `yaml:"id,omitempty"`
	Category string  `yaml:"category"`
	Value    float64 `yaml:"value"`
}

// A Series is one histogram series.
type Series struct {
	ID     string    `yaml:"id"`
	Values []float64 `yaml:"values"`
	Color  string    `yaml:"color,omitempty"`
}

// Bins is the histogram bin configuration.
type Bins struct {
	Edges []float64 `yaml:"edges,omitempty"`
	Width float64   `yaml:"width,omitempty"`

	// Domain, if set, must be [min, max].
	Domain []float64 `yaml:"domain,omitempty"`
}

// Decode reads one document from r. Documents after the first in a
// YAML stream are ignored.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	d := new(Document)
	if err := dec.Decode(d); err == io.EOF {
		return nil, errors.New("empty chart document")
	} else if err != nil {
		return nil, fmt.Errorf("decoding chart document: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("chart document: %w", err)
	}
	return d, nil
}

// Validate checks d and resolves its enumerations. Decode calls it;
// call it again after changing d.
func (d *Document) Validate() error {
	var err error
	switch d.Kind {
	case KindBar:
		if d.order, err = bar.ParseOrder(d.Sort); err != nil {
			return err
		}
		if d.orientation, err = bar.ParseOrientation(d.Orientation); err != nil {
			return err
		}
		if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
			return fmt.Errorf("min %v exceeds max %v", *d.Min, *d.Max)
		}
	case KindHistogram:
		switch d.YScale {
		case "", "count":
			d.yScale = hist.Count
		case "density":
			d.yScale = hist.Density
		default:
			return fmt.Errorf("unknown yScale %q", d.YScale)
		}
		if dom := d.Bins.Domain; dom != nil {
			if len(dom) != 2 {
				return fmt.Errorf("bin domain has %d values, want 2", len(dom))
			}
			if !(dom[0] <= dom[1]) || math.IsInf(dom[0], 0) || math.IsInf(dom[1], 0) {
				return fmt.Errorf("bad bin domain [%v, %v]", dom[0], dom[1])
			}
		}
	case "":
		return errors.New("missing kind")
	default:
		return fmt.Errorf("unknown kind %q", d.Kind)
	}
	if d.Width < 0 || d.Height < 0 {
		return fmt.Errorf("negative chart size %vx%v", d.Width, d.Height)
	}
	return nil
}

// BarData returns the data of a bar chart document.
func (d *Document) BarData() []bar.Datum {
	out := make([]bar.Datum, len(d.Data))
	for i, x := range d.Data {
		out[i] = bar.Datum{ID: x.ID, Category: x.Category, Value: x.Value}
	}
	return out
}

// BarOptions returns the layout options of a bar chart document.
func (d *Document) BarOptions() bar.Options {
	o := bar.Options{
		Width:       d.Width,
		Height:      d.Height,
		Orientation: d.orientation,
		Order:       d.order,
		Min:         d.Min,
		Max:         d.Max,
		Unit:        d.Unit,
		Ticks:       d.Ticks,
		Nice:        d.Nice,
		Title:       d.Title,
		XTitle:      d.XTitle,
		YTitle:      d.YTitle,
		Color:       d.Color,
	}
	if d.Log {
		o.Mode = scale.Log
	}
	return o
}

// HistSeries returns the series of a histogram document.
func (d *Document) HistSeries() []hist.Series {
	out := make([]hist.Series, len(d.Series))
	for i, s := range d.Series {
		out[i] = hist.Series{ID: s.ID, Values: s.Values, Color: s.Color}
	}
	return out
}

// HistConfig returns the bin configuration of a histogram document.
func (d *Document) HistConfig() hist.Config {
	c := hist.Config{Edges: d.Bins.Edges, Width: d.Bins.Width}
	if dom := d.Bins.Domain; len(dom) == 2 {
		c.Domain = &scale.Domain{Min: dom[0], Max: dom[1]}
	}
	return c
}

// HistOptions returns the layout options of a histogram document.
func (d *Document) HistOptions() hist.Options {
	return hist.Options{
		Width:  d.Width,
		Height: d.Height,
		Unit:   d.Unit,
		YScale: d.yScale,
		Ticks:  d.Ticks,
		Nice:   d.Nice,
		Title:  d.Title,
		XTitle: d.XTitle,
		YTitle: d.YTitle,
	}
}
