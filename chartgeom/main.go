// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command chartgeom lays out bar charts and histograms and prints or
// renders the result.
//
// Usage:
//
//	chartgeom [flags] [file]
//	chartgeom [-j N] -batch file
//
// chartgeom reads a chart document (YAML or JSON, see package
// dataset) from file, or standard input if file is omitted or "-".
// With -bench, the input is instead a Go benchmark results file and
// chartgeom builds a histogram with one series per benchmark. Each
// -where key=value keeps only results whose configuration matches,
// for example -where goos=linux.
//
// The -format flag selects the output: "table" prints the computed
// geometry, "svg" and "png" render the chart.
//
// In batch mode, each non-blank line of the batch file that doesn't
// start with "#" holds the shell-quoted flags and input file of one
// chart, exactly as they would be given on the command line. Lines
// run concurrently. Identical charts are computed once. Output of
// lines without -o is written to standard output in batch file order.
// No two lines may name the same -o file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"golang.org/x/term"
)

func main() {
	log.SetPrefix("chartgeom: ")
	log.SetFlags(0)

	var j job
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	j.register(fs)
	var (
		flagBatch    = fs.String("batch", "", "read chart command lines from `file`")
		flagJobs     = fs.Int("j", runtime.GOMAXPROCS(0), "run at most `N` batch lines at once")
		flagCacheTTL = fs.Duration("cache-ttl", 10*time.Minute, "keep computed charts for `duration` in batch mode")
	)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file]\n       %s [-j N] -batch file\n", os.Args[0], os.Args[0])
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if *flagBatch != "" {
		if fs.NArg() != 0 {
			fs.Usage()
			os.Exit(2)
		}
		b, err := newBatch(*flagJobs, *flagCacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer b.close()
		if err := b.runFile(context.Background(), *flagBatch, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(2)
	}
	path := "-"
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}
	if j.out == "" && j.format == "png" && term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("refusing to write PNG to a terminal; use -o")
	}
	input, err := readInput(path, os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	out, err := j.run(input)
	if err != nil {
		log.Fatal(err)
	}
	if err := j.write(out, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
