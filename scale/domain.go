// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale maps chart values into pixel space.
//
// A Domain is the numeric range a dataset is drawn against. A Scale
// maps values in a Domain to offsets within a pixel extent, either
// linearly or logarithmically, and produces evenly spaced grid lines
// consistent with that mapping.
//
// Offsets grow downward: the domain maximum maps to offset 0 and the
// domain minimum maps to the full extent. Everything in this package
// is a pure function of its arguments.
package scale

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Mode selects how values are spaced along an axis.
type Mode int

const (
	// Linear spaces values additively.
	Linear Mode = iota

	// Log spaces values multiplicatively (log10).
	Log
)

func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Log:
		return "log"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// LogFloor is the smallest value representable on a Log scale. Values
// at or below it, including zero and negatives, are clamped to it.
const LogFloor = 1e-4

// A Domain is the closed range [Min, Max] a dataset is scaled into.
type Domain struct {
	Min, Max float64
}

// Unit is the domain used when there is nothing to draw.
var Unit = Domain{0, 1}

// Span returns Max - Min.
func (d Domain) Span() float64 {
	return d.Max - d.Min
}

// Contains reports whether v lies in [d.Min, d.Max].
func (d Domain) Contains(v float64) bool {
	return d.Min <= v && v <= d.Max
}

func (d Domain) String() string {
	return fmt.Sprintf("[%g, %g]", d.Min, d.Max)
}

// ResolveDomain returns the domain values must be scaled into.
//
// If override is non-nil it is returned unchanged; its validity is
// the caller's responsibility. Otherwise the domain is derived from
// the finite elements of values:
//
// In Linear mode the domain always includes 0 so bars have a
// baseline to grow from.
//
// In Log mode the minimum is floored to LogFloor and the maximum is
// raised to at least ten times the minimum.
//
// With no finite values the result is Unit (adjusted for Log mode).
// A zero-width result is widened by 0.5 on each side.
func ResolveDomain(values []float64, override *Domain, mode Mode) Domain {
	if override != nil {
		return *override
	}

	lo, hi := FiniteBounds(values)
	var d Domain
	switch {
	case math.IsNaN(lo):
		d = Unit
	case mode == Log:
		d = Domain{lo, hi}
	default:
		d = Domain{math.Min(0, lo), math.Max(0, hi)}
	}
	if d.Min == d.Max {
		d = Domain{d.Min - 0.5, d.Max + 0.5}
	}
	if mode == Log {
		d.Min, d.Max = logBounds(d)
	}
	return d
}

// FiniteBounds returns the minimum and maximum of the finite elements
// of values. If there are none, it returns NaN, NaN.
func FiniteBounds(values []float64) (min, max float64) {
	return stats.Bounds(Finite(values))
}

// Finite returns the finite elements of values. If every element is
// finite, values itself is returned.
func Finite(values []float64) []float64 {
	for i, v := range values {
		if !isFinite(v) {
			out := append([]float64(nil), values[:i]...)
			for _, v := range values[i+1:] {
				if isFinite(v) {
					out = append(out, v)
				}
			}
			return out
		}
	}
	return values
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// logBounds applies the Log floor policy to d. The result satisfies
// LogFloor <= lo, lo*10 <= hi <= math.MaxFloat64.
func logBounds(d Domain) (lo, hi float64) {
	lo, hi = d.Min, d.Max
	if !(lo > LogFloor) {
		// Also catches NaN.
		lo = LogFloor
	}
	if lo > math.MaxFloat64/10 {
		lo = math.MaxFloat64 / 10
	}
	if !(hi >= lo*10) {
		hi = lo * 10
	}
	if hi > math.MaxFloat64 {
		hi = math.MaxFloat64
	}
	return lo, hi
}
