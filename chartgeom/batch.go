// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethicalfolio/chartgeom/cache"
	"github.com/kballard/go-shellquote"
	"golang.org/x/sync/errgroup"
)

// cacheSize is the number of rendered charts the batch cache holds.
const cacheSize = 1024

// A batch runs many chart jobs, sharing results between identical
// ones.
type batch struct {
	limit int
	cache *cache.Cache[[]byte]
}

func newBatch(limit int, ttl time.Duration) (*batch, error) {
	c, err := cache.New[[]byte](cacheSize, ttl)
	if err != nil {
		return nil, err
	}
	return &batch{limit, c}, nil
}

func (b *batch) close() {
	b.cache.Close()
}

// A batchLine is one parsed line of a batch file.
type batchLine struct {
	num  int
	job  job
	path string
	args []string
	out  []byte
}

// parseBatch parses the batch file in r. Relative input and output
// paths are resolved against dir. No two lines may write the same
// output file.
func parseBatch(r io.Reader, dir string) ([]*batchLine, error) {
	var lines []*batchLine
	outputs := make(map[string]int)
	scanner := bufio.NewScanner(r)
	for num := 1; scanner.Scan(); num++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		args, err := shellquote.Split(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", num, err)
		}

		l := &batchLine{num: num, args: args}
		fs := flag.NewFlagSet(fmt.Sprintf("line %d", num), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		l.job.register(fs)
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("line %d: %w", num, err)
		}
		if fs.NArg() != 1 {
			return nil, fmt.Errorf("line %d: want one input file, got %d", num, fs.NArg())
		}
		l.path = resolve(dir, fs.Arg(0))
		if l.job.out != "" {
			l.job.out = resolve(dir, l.job.out)
			if prev, ok := outputs[l.job.out]; ok {
				return nil, fmt.Errorf("line %d: %s is also written by line %d", num, l.job.out, prev)
			}
			outputs[l.job.out] = num
		}
		lines = append(lines, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || path == "-" {
		return path
	}
	return filepath.Join(dir, path)
}

// runFile runs the batch file at path. Output of lines without -o is
// written to stdout in line order once every line has finished.
func (b *batch) runFile(ctx context.Context, path string, stdout io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	lines, err := parseBatch(f, filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := b.run(ctx, lines); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, l := range lines {
		if l.job.out == "" {
			if _, err := stdout.Write(l.out); err != nil {
				return err
			}
		}
	}
	return nil
}

// run runs lines concurrently, at most b.limit at a time, and stops
// at the first failure.
func (b *batch) run(ctx context.Context, lines []*batchLine) error {
	g, ctx := errgroup.WithContext(ctx)
	if b.limit > 0 {
		g.SetLimit(b.limit)
	}
	for _, l := range lines {
		l := l // per-iteration copy; go.mod targets go 1.21 (pre-1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := b.runLine(l); err != nil {
				return fmt.Errorf("line %d: %w", l.num, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (b *batch) runLine(l *batchLine) error {
	if l.path == "-" {
		return fmt.Errorf("batch lines cannot read standard input")
	}
	input, err := readInput(l.path, nil)
	if err != nil {
		return err
	}

	// The output depends only on the input and the flags that
	// shape it. -o names where it goes, so it is left out.
	j := l.job
	j.out = ""
	key := fmt.Sprintf("%+v\x00%s", j, input)
	out, ok := b.cache.Get(key)
	if !ok {
		if out, err = j.run(input); err != nil {
			return err
		}
		b.cache.Set(key, out)
	}
	l.out = bytes.Clone(out)
	return l.job.write(out, io.Discard)
}
