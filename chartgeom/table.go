// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/ethicalfolio/chartgeom/axis"
	"github.com/ethicalfolio/chartgeom/bar"
	"github.com/ethicalfolio/chartgeom/hist"
	"github.com/ethicalfolio/chartgeom/label"
)

func writeBarTable(w io.Writer, c *bar.Chart) {
	n := len(c.Bars)
	cats, values, labels := make([]string, n), make([]string, n), make([]string, n)
	xs, ys, ws, hs := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, b := range c.Bars {
		cats[i], values[i], labels[i] = b.Category, b.ValueLabel, placementString(b.Label)
		xs[i], ys[i], ws[i], hs[i] = b.X, b.Y, b.Width, b.Height
	}
	tab := new(table.Builder).
		Add("category", cats).
		Add("value", values).
		Add("x", xs).
		Add("y", ys).
		Add("width", ws).
		Add("height", hs).
		Add("label", labels).
		Done()
	table.Fprint(w, tab, "%s", "%s", "%.1f", "%.1f", "%.1f", "%.1f", "%s")

	fmt.Fprintln(w)
	writeGrid(w, c.Grid)
}

func writeHistTable(w io.Writer, c *hist.Chart) {
	n := len(c.Bins)
	bins, totals := make([]string, n), make([]float64, n)
	for i, b := range c.Bins {
		bins[i], totals[i] = b.Label, b.Total
	}
	tb := new(table.Builder).Add("bin", bins)
	formats := []string{"%s"}
	seen := map[string]bool{"bin": true, "total": true}
	for s, e := range c.Legend {
		name := e.ID
		if name == "" || seen[name] {
			name = fmt.Sprintf("series %d", s+1)
		}
		seen[name] = true
		tb.Add(name, c.Values[s])
		formats = append(formats, "%.4g")
	}
	tab := tb.Add("total", totals).Done()
	table.Fprint(w, tab, append(formats, "%.4g")...)

	fmt.Fprintln(w)
	writeGrid(w, c.Grid)
}

func writeGrid(w io.Writer, grid []axis.Tick) {
	values, positions := make([]string, len(grid)), make([]float64, len(grid))
	for i, g := range grid {
		values[i], positions[i] = g.Label, g.Position
	}
	tab := new(table.Builder).
		Add("grid", values).
		Add("position", positions).
		Done()
	table.Fprint(w, tab, "%s", "%.1f")
}

// placementString describes a label placement in one cell.
func placementString(p label.Placement) string {
	s := strings.Join(p.Lines, " / ")
	if p.Rotated {
		s += fmt.Sprintf(" (rotated %g°)", p.Angle)
	}
	return s
}
