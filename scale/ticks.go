// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/vec"
)

// DefaultTicks is the default number of grid intervals. An axis with
// DefaultTicks intervals has DefaultTicks+1 grid lines.
const DefaultTicks = 4

// A GridLine is a reference value and its pixel offset on a Scale.
type GridLine struct {
	Position float64
	Value    float64
}

// GridLines returns n+1 grid lines evenly spaced across the domain of
// s, from the domain minimum to the domain maximum. In Log mode the
// lines are evenly spaced in log space, giving multiplicative steps.
// If n <= 0, GridLines returns nil.
func (s *Scale) GridLines(n int) []GridLine {
	if n <= 0 {
		return nil
	}
	var values []float64
	if s.mode == Log {
		values = vec.Logspace(math.Log10(s.domain.Min), math.Log10(s.domain.Max), n+1, 10)
	} else if lo, hi := s.domain.Min, s.domain.Max; math.IsInf(hi-lo, 0) {
		values = vec.Linspace(lo/2, hi/2, n+1)
		for i := range values {
			values[i] *= 2
		}
	} else {
		values = vec.Linspace(lo, hi, n+1)
	}
	return s.lines(values)
}

// NiceGridLines returns grid lines at "nice" round values within the
// domain of s: multiples of 1, 2, or 5 times a power of ten for
// Linear scales and powers of ten for Log scales. At most max lines
// are returned. If no such set of values exists, NiceGridLines falls
// back to GridLines(max-1).
func (s *Scale) NiceGridLines(max int) []GridLine {
	if max <= 0 {
		return nil
	}
	o := scale.TickOptions{Max: max}
	var major []float64
	if s.mode == Log {
		major, _ = s.log.Ticks(o)
	} else if !math.IsInf(s.lin.Max-s.lin.Min, 0) {
		major, _ = s.lin.Ticks(o)
	}
	if len(major) == 0 {
		return s.GridLines(max - 1)
	}
	return s.lines(major)
}

func (s *Scale) lines(values []float64) []GridLine {
	lines := make([]GridLine, len(values))
	for i, v := range values {
		// Rounding in log space can step just outside the domain.
		v = math.Max(s.domain.Min, math.Min(v, s.domain.Max))
		lines[i] = GridLine{Position: s.Map(v), Value: v}
	}
	return lines
}
