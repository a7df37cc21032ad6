// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package label decides how category labels are laid out under an
// axis: wrapped onto several stacked lines, or rotated as a single
// line.
//
// The decision is based on character counts alone. It never measures
// rendered text, so it is deterministic and linear in the length of
// the label.
package label

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxChars is the default per-line character budget.
	DefaultMaxChars = 12

	// DefaultAngle is the default rotation of category labels, in
	// degrees. Rotated labels slope down from right to left, ending
	// at their anchor.
	DefaultAngle = 30

	// BinAngle is the rotation used for histogram bin labels.
	BinAngle = 45

	// DefaultCharWidth is the assumed average advance of one
	// character of axis text, in pixels.
	DefaultCharWidth = 6
)

// Options controls Place. The zero value uses the defaults above and
// ignores band width.
type Options struct {
	// MaxChars is the character budget per wrapped line. If zero,
	// DefaultMaxChars is used.
	MaxChars int

	// Angle is the rotation applied to rotated labels. If zero,
	// DefaultAngle is used.
	Angle float64

	// CharWidth is the assumed pixel advance per character. If
	// positive, a label whose widest wrapped line would overflow
	// its band is rotated.
	CharWidth float64

	// MinBand, if positive, forces rotation for bands narrower than
	// MinBand pixels.
	MinBand float64
}

func (o Options) maxChars() int {
	if o.MaxChars <= 0 {
		return DefaultMaxChars
	}
	return o.MaxChars
}

func (o Options) angle() float64 {
	if o.Angle == 0 {
		return DefaultAngle
	}
	return o.Angle
}

// A Placement is the presentation chosen for one label.
type Placement struct {
	// Lines holds the text to draw, one element per line, top to
	// bottom. A rotated label always has exactly one line.
	Lines []string

	// Rotated is set if the single line should be drawn rotated by
	// Angle degrees.
	Rotated bool
	Angle   float64
}

// Place decides whether text is wrapped or rotated in a band of the
// given pixel width. A band width <= 0 means the width is unknown and
// only character counts are considered.
func Place(text string, band float64, o Options) Placement {
	max := o.maxChars()
	lines := Wrap(text, max)
	rotate := len(lines) == 1 && width(lines[0]) > max
	if !rotate && band > 0 {
		if o.MinBand > 0 && band < o.MinBand {
			rotate = true
		} else if o.CharWidth > 0 && float64(widest(lines))*o.CharWidth > band {
			rotate = true
		}
	}
	if rotate {
		return Placement{Lines: []string{text}, Rotated: true, Angle: o.angle()}
	}
	return Placement{Lines: lines}
}

// PlaceLine decides whether text, which is never wrapped, is drawn
// level or rotated in a band of the given pixel width. It rotates when
// the band is narrower than o.MinBand or, if o.CharWidth is positive,
// too narrow for the text.
func PlaceLine(text string, band float64, o Options) Placement {
	rotate := o.MinBand > 0 && band < o.MinBand
	if !rotate && o.CharWidth > 0 && band > 0 {
		rotate = float64(width(text))*o.CharWidth > band
	}
	return Placement{Lines: []string{text}, Rotated: rotate, Angle: angleIf(rotate, o)}
}

func angleIf(rotated bool, o Options) float64 {
	if rotated {
		return o.angle()
	}
	return 0
}

// Wrap splits text into lines of at most max characters by greedily
// packing whitespace-separated words. Text that already fits is
// returned unchanged as a single line. A single word longer than max
// gets a line of its own; Wrap never breaks inside a word.
func Wrap(text string, max int) []string {
	if width(text) <= max {
		return []string{text}
	}
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(text) {
		if cur.Len() > 0 && width(cur.String())+1+width(w) > max {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if lines == nil {
		// All whitespace.
		return []string{text}
	}
	return lines
}

// width returns the number of characters in s.
func width(s string) int {
	return utf8.RuneCountInString(s)
}

func widest(lines []string) int {
	n := 0
	for _, l := range lines {
		if w := width(l); w > n {
			n = w
		}
	}
	return n
}
