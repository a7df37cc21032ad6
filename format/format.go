// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format renders chart values as display text.
package format

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// A Func formats a value with its unit tag.
type Func func(v float64, unit string) string

// Value is the default Func. It abbreviates currency ("$") and counts
// ("users", "units") with K and M suffixes, renders "%" as a whole
// percentage, and otherwise prints the value with digit grouping and
// at most two decimals, followed by the unit if any.
func Value(v float64, unit string) string {
	switch unit {
	case "$":
		switch {
		case v >= 1e6:
			return "$" + fixed(v/1e6, 1) + "M"
		case v >= 1e3:
			return "$" + fixed(v/1e3, 0) + "K"
		}
		return "$" + fixed(v, 0)
	case "users", "units":
		if v >= 1e3 {
			return fixed(v/1e3, 0) + "K"
		}
		return fixed(v, 0)
	case "%":
		return fixed(v, 0) + "%"
	}
	s := Number(v)
	if unit != "" {
		s += " " + unit
	}
	return s
}

// Number formats v with thousands separators and at most two decimal
// places, dropping trailing zeros.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	r := math.Round(v*100) / 100
	if r == 0 {
		// Avoid "-0".
		r = 0
	}
	return humanize.Commaf(r)
}

// Count formats a histogram count axis value as a whole number.
func Count(v float64) string {
	return fixed(v, 0)
}

// Density formats a histogram density axis value.
func Density(v float64) string {
	return fixed(v, 3)
}

// BinRange formats the interval [x0, x1] as a bin label, with one
// decimal place and an optional unit.
func BinRange(x0, x1 float64, unit string) string {
	s := fmt.Sprintf("%s–%s", fixed(x0, 1), fixed(x1, 1))
	if unit != "" {
		s += " " + unit
	}
	return s
}

// fixed formats v with exactly digits decimal places, rounding halves
// away from zero.
func fixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	p := math.Pow(10, float64(digits))
	r := math.Round(v*p) / p
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', digits, 64)
}
