// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethicalfolio/chartgeom/bar"
	"github.com/ethicalfolio/chartgeom/dataset"
	"github.com/ethicalfolio/chartgeom/hist"
	"github.com/ethicalfolio/chartgeom/render"
)

// defaultWidth is the chart width when neither the document nor
// -width gives one.
const defaultWidth = 600

// A job is the configuration of one chart.
type job struct {
	out    string
	format string

	width, height float64
	nice          bool
	title         string

	bench bool
	unit  string
	where map[string]string

	// Bar chart overrides.
	sort        string
	orientation string
	log         bool

	// Histogram overrides.
	binWidth float64
	yScale   string
}

func (j *job) register(f *flag.FlagSet) {
	f.StringVar(&j.out, "o", "", "write output to `file` (default: stdout)")
	f.StringVar(&j.format, "format", "table", "output `format`, which must be one of: table, svg, png")
	f.Float64Var(&j.width, "width", 0, "chart width in `pixels` (default: document width or 600)")
	f.Float64Var(&j.height, "height", 0, "chart height in `pixels` (default: document height or chart default)")
	f.BoolVar(&j.nice, "nice", false, "place grid lines at round values")
	f.BoolVar(&j.bench, "bench", false, "read a Go benchmark results file instead of a chart document")
	f.Func("where", "with -bench, chart only results whose configuration has `key=value` (repeatable)", func(s string) error {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return fmt.Errorf("want key=value, got %q", s)
		}
		if j.where == nil {
			j.where = make(map[string]string)
		}
		j.where[k] = v
		return nil
	})
	f.StringVar(&j.title, "title", "", "chart `title`")
	f.StringVar(&j.unit, "unit", "", "value `unit`; with -bench, the benchmark metric to chart (default ns/op)")
	f.StringVar(&j.sort, "sort", "", "bar `order`, which must be one of: value-desc, value-asc, alpha, none")
	f.StringVar(&j.orientation, "orientation", "", "bar `orientation`, vertical or horizontal")
	f.BoolVar(&j.log, "log", false, "use a logarithmic value axis for bar charts")
	f.Float64Var(&j.binWidth, "bin-width", 0, "requested histogram bin `width`, rounded up to a nice value")
	f.StringVar(&j.yScale, "y", "", "histogram y `scale`, count or density")
}

// readInput reads path, or stdin if path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// load decodes input and applies j's overrides.
func (j *job) load(input []byte) (*dataset.Document, error) {
	var doc *dataset.Document
	var err error
	if j.bench {
		doc, err = dataset.ReadBench(bytes.NewReader(input), j.unit, j.where)
	} else {
		doc, err = dataset.Decode(bytes.NewReader(input))
		if err == nil && j.unit != "" {
			doc.Unit = j.unit
		}
	}
	if err != nil {
		return nil, err
	}

	if j.width > 0 {
		doc.Width = j.width
	}
	if doc.Width == 0 {
		doc.Width = defaultWidth
	}
	if j.height > 0 {
		doc.Height = j.height
	}
	doc.Nice = doc.Nice || j.nice
	if j.title != "" {
		doc.Title = j.title
	}
	switch doc.Kind {
	case dataset.KindBar:
		if j.sort != "" {
			doc.Sort = j.sort
		}
		if j.orientation != "" {
			doc.Orientation = j.orientation
		}
		doc.Log = doc.Log || j.log
	case dataset.KindHistogram:
		if j.binWidth > 0 {
			doc.Bins.Width = j.binWidth
		}
		if j.yScale != "" {
			doc.YScale = j.yScale
		}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// run computes the chart described by input and returns it in j's
// output format.
func (j *job) run(input []byte) ([]byte, error) {
	switch j.format {
	case "table", "svg", "png":
	default:
		return nil, fmt.Errorf("unknown format %q", j.format)
	}
	doc, err := j.load(input)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var scene *render.Scene
	switch doc.Kind {
	case dataset.KindBar:
		c := bar.Layout(doc.BarData(), doc.BarOptions())
		if j.format == "table" {
			writeBarTable(&buf, c)
		} else {
			scene = render.FromBar(c)
		}
	case dataset.KindHistogram:
		c := hist.Layout(doc.HistSeries(), doc.HistConfig(), doc.HistOptions())
		if j.format == "table" {
			writeHistTable(&buf, c)
		} else {
			scene = render.FromHistogram(c)
		}
	}
	switch j.format {
	case "svg":
		err = scene.WriteSVG(&buf)
	case "png":
		err = scene.WritePNG(&buf)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// write writes out to j's output file, or to stdout if there is none.
func (j *job) write(out []byte, stdout io.Writer) error {
	if j.out == "" {
		_, err := stdout.Write(out)
		return err
	}
	return os.WriteFile(j.out, out, 0666)
}
