// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultBenchUnit is the benchmark metric charted if none is given.
const DefaultBenchUnit = "ns/op"

// A Benchmark is a single benchmark result line.
type Benchmark struct {
	// Name is the benchmark name without the "Benchmark" prefix
	// and without a trailing GOMAXPROCS suffix. Sub-benchmark
	// components are kept.
	Name string

	// Config holds the configuration block lines in effect for this
	// result, plus "gomaxprocs" if the name carried it.
	Config map[string]string

	// Result maps units to values.
	Result map[string]float64
}

var configRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s\x85\xa0\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]*):(?:[ \t]+(.*))?$`)

// ParseBench parses a Go benchmark results file, in the format
// produced by "go test -bench". Lines other than configuration and
// benchmark lines are ignored.
func ParseBench(r io.Reader) ([]*Benchmark, error) {
	var benchmarks []*Benchmark
	config := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := configRe.FindStringSubmatch(line); m != nil {
			config[m[1]] = m[2]
			continue
		}
		if strings.HasPrefix(line, "Benchmark") {
			if b := parseBenchmark(line, config); b != nil {
				benchmarks = append(benchmarks, b)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading benchmarks: %w", err)
	}
	return benchmarks, nil
}

func parseBenchmark(line string, config map[string]string) *Benchmark {
	f := strings.Fields(line)
	if len(f) < 4 {
		return nil
	}
	if f[0] != "Benchmark" {
		next, _ := utf8.DecodeRuneInString(f[0][len("Benchmark"):])
		if !unicode.IsUpper(next) {
			return nil
		}
	}

	b := &Benchmark{
		Config: make(map[string]string, len(config)+1),
		Result: make(map[string]float64),
	}
	for k, v := range config {
		b.Config[k] = v
	}

	b.Name = strings.TrimPrefix(f[0], "Benchmark")
	if i := strings.LastIndex(b.Name, "-"); i >= 0 {
		if _, err := strconv.Atoi(b.Name[i+1:]); err == nil {
			b.Config["gomaxprocs"] = b.Name[i+1:]
			b.Name = b.Name[:i]
		}
	}

	if n, err := strconv.Atoi(f[1]); err != nil || n <= 0 {
		return nil
	}

	for i := 2; i+2 <= len(f); i += 2 {
		val, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			continue
		}
		b.Result[f[i+1]] = val
	}
	return b
}

// ReadBench reads a Go benchmark results file and returns a
// histogram document with one series per benchmark name, in order of
// first appearance. Each series holds the benchmark's results in
// unit, or DefaultBenchUnit if unit is empty. Results lacking unit
// are skipped, as are results whose configuration doesn't match
// every key and value in where.
func ReadBench(r io.Reader, unit string, where map[string]string) (*Document, error) {
	if unit == "" {
		unit = DefaultBenchUnit
	}
	benchmarks, err := ParseBench(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{Kind: KindHistogram, Unit: unit}
	index := make(map[string]int)
	for _, b := range benchmarks {
		v, ok := b.Result[unit]
		if !ok || !b.matches(where) {
			continue
		}
		i, ok := index[b.Name]
		if !ok {
			i = len(doc.Series)
			index[b.Name] = i
			doc.Series = append(doc.Series, Series{ID: b.Name})
		}
		doc.Series[i].Values = append(doc.Series[i].Values, v)
	}
	if len(doc.Series) == 0 {
		if len(where) > 0 {
			return nil, fmt.Errorf("no benchmark results in %s matching %s", unit, whereString(where))
		}
		return nil, fmt.Errorf("no benchmark results in %s", unit)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// matches reports whether b's configuration has every key and value
// in where.
func (b *Benchmark) matches(where map[string]string) bool {
	for k, v := range where {
		if got, ok := b.Config[k]; !ok || got != v {
			return false
		}
	}
	return true
}

func whereString(where map[string]string) string {
	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		keys[i] = k + "=" + where[k]
	}
	return strings.Join(keys, ",")
}
