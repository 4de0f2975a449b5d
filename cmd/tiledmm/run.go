// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/ajroetker/go-tiledmm/matmul"
	"github.com/ajroetker/go-tiledmm/matrix"
	"github.com/ajroetker/go-tiledmm/platform"
	"github.com/ajroetker/go-tiledmm/timing"
	"github.com/ajroetker/go-tiledmm/workerpool"
)

const rule = "\t........................................................................"

// run allocates A, B, C and D, multiplies naively into D and tiled into C,
// reports both timings and verifies C against D. Every matrix is released
// before run returns.
func run(n int, opts options, stdout, stderr io.Writer) error {
	logf := func(format string, args ...any) {
		if opts.verbose {
			fmt.Fprintf(stderr, "tiledmm: "+format+"\n", args...)
		}
	}

	arena := matrix.NewArena()
	defer arena.Release()

	a, err := arena.Random(n)
	if err != nil {
		return fmt.Errorf("allocating A: %w", err)
	}
	b, err := arena.Random(n)
	if err != nil {
		return fmt.Errorf("allocating B: %w", err)
	}
	c, err := arena.Zeros(n)
	if err != nil {
		return fmt.Errorf("allocating C: %w", err)
	}
	d, err := arena.Zeros(n)
	if err != nil {
		return fmt.Errorf("allocating D: %w", err)
	}
	logf("allocated 4 matrices of %dx%d (seed %d)", n, n, matrix.Seed)

	pool := workerpool.New(opts.workers)
	defer pool.Close()
	logf("platform: %s", platform.Describe())
	logf("tiled kernel: %d workers, tile size %d", pool.NumWorkers(), matmul.TileSize)

	fmt.Fprintf(stdout, "\n%s\n", rule)
	fmt.Fprintf(stdout, " \t          Matrix Multiplication (Serial VS Tiled)\n")
	fmt.Fprintf(stdout, "%s\n", rule)

	serial := timing.Measure(func() { matmul.Naive(a, b, d) })
	reportPhase(stdout, "Serial", serial)

	tiled := timing.Measure(func() { matmul.Tiled(pool, a, b, c) })
	reportPhase(stdout, "Tiled", tiled)
	logf("tiled kernel: %d row-blocks dispatched", pool.Stats().Blocks)
	logf("speedup: %.2fx", serial/max(tiled, 1e-9))

	var blasResult *matrix.Matrix
	if opts.blas {
		if blasResult, err = arena.Zeros(n); err != nil {
			return fmt.Errorf("allocating BLAS result: %w", err)
		}
		elapsed := timing.Measure(func() { matmul.BLAS(a, b, blasResult) })
		reportPhase(stdout, "BLAS", elapsed)
	}
	fmt.Fprintf(stdout, "\n\t\t..........................................................................\n")

	if err := matmul.Verify(c, d); err != nil {
		fmt.Fprintln(stdout, "Failed")
		logf("tiled vs serial: %v", err)
		return fmt.Errorf("tiled vs serial: %w", err)
	}
	if blasResult != nil {
		if err := matmul.Verify(blasResult, d); err != nil {
			fmt.Fprintln(stdout, "Failed")
			logf("BLAS vs serial: %v", err)
			return fmt.Errorf("BLAS vs serial: %w", err)
		}
	}
	fmt.Fprintln(stdout, "Done Checking : Both Computations are same!!")
	return nil
}

func reportPhase(w io.Writer, name string, seconds float64) {
	fmt.Fprintf(w, "\n\n\t\t Matrix into Matrix Multiplication (%s) ......Done \n", name)
	fmt.Fprintf(w, "\n\t\t Time in Seconds (T)        : %f Seconds \n", seconds)
	fmt.Fprintf(w, "\n\t\t ( T represents the Time taken for computation )")
}
