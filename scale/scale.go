// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// A Scale maps values in a Domain to pixel offsets in [0, Extent].
//
// A Scale is a value: it holds only its construction parameters and
// is safe for concurrent use. Rebuild it whenever the data, domain,
// or extent changes.
type Scale struct {
	domain Domain
	extent float64
	mode   Mode

	// Exactly one of lin and log is used, according to mode.
	lin scale.Linear
	log scale.Log
}

// New returns a Scale mapping d onto [0, extent] under mode.
//
// In Linear mode a zero-width domain is treated as having span 1. In
// Log mode d is adjusted by the same floor policy as ResolveDomain,
// so any Domain yields a well-defined mapping.
func New(d Domain, extent float64, mode Mode) *Scale {
	s := &Scale{domain: d, extent: extent, mode: mode}
	if mode == Log {
		lo, hi := logBounds(d)
		s.domain = Domain{lo, hi}
		l, err := scale.NewLog(lo, hi, 10)
		if err != nil {
			// logBounds guarantees 0 < lo < hi.
			panic("scale: " + err.Error())
		}
		l.SetClamp(true)
		s.log = l
		return s
	}

	lo, hi := d.Min, d.Max
	if lo == hi {
		hi = lo + 1
	}
	s.lin = scale.Linear{Min: lo, Max: hi, Clamp: true}
	return s
}

// Domain returns the domain actually used for mapping. In Log mode
// this reflects the floor policy.
func (s *Scale) Domain() Domain {
	return s.domain
}

// Map returns the pixel offset of v. Larger values map to smaller
// offsets. Values outside the domain pin to the nearest edge, NaN
// maps to the domain minimum, and the result is always in
// [0, Extent].
func (s *Scale) Map(v float64) float64 {
	return s.extent * (1 - s.fraction(v))
}

// fraction returns v's position in the domain as a value in [0, 1].
func (s *Scale) fraction(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	var t float64
	if s.mode == Log {
		t = s.log.Map(math.Max(v, s.log.Min))
	} else {
		t = s.lin.Map(v)
		if math.IsNaN(t) || s.overflows() {
			t = s.half().Map(v / 2)
		}
	}
	if math.IsNaN(t) {
		return 0
	}
	return t
}

// Unmap returns the value at pixel offset y. It is the inverse of Map
// within [0, Extent].
func (s *Scale) Unmap(y float64) float64 {
	t := 0.0
	if s.extent != 0 {
		t = 1 - y/s.extent
	}
	if s.mode == Log {
		return s.log.Unmap(t)
	}
	if s.overflows() {
		return 2 * s.half().Unmap(t)
	}
	return s.lin.Unmap(t)
}

// overflows reports whether the linear span is too wide to represent.
func (s *Scale) overflows() bool {
	return math.IsInf(s.lin.Max-s.lin.Min, 0)
}

// half returns the linear scale over half the domain, for evaluating
// a span that overflows.
func (s *Scale) half() scale.Linear {
	return scale.Linear{Min: s.lin.Min / 2, Max: s.lin.Max / 2, Clamp: true}
}

// Baseline returns the offset of the value 0, for drawing a zero
// reference line. Zero is unreachable on a Log scale, so ok is false
// in Log mode.
func (s *Scale) Baseline() (offset float64, ok bool) {
	if s.mode == Log {
		return 0, false
	}
	return s.Map(0), true
}
