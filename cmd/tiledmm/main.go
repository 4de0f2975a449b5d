// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Command tiledmm multiplies two seeded n×n matrices with a naive triple
// loop and with a cache-tiled parallel kernel, prints both timings and checks
// that the results are bit-identical.
//
// Usage:
//
//	tiledmm 1024
//	tiledmm 1024 --workers 4 --blas
//	tiledmm 100 -v                     # diagnostics on stderr
//
// Exit status is 0 on success, 255 when the results differ and 1 for an
// invalid dimension or a failed allocation. A wrong number of arguments
// prints a notice and exits 0.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ajroetker/go-tiledmm/matmul"
)

// exitMismatch is the status of a failed verification, the low byte of -1.
const exitMismatch = 255

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, matmul.ErrVerificationMismatch) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, matmul.ErrVerificationMismatch):
		return exitMismatch
	default:
		return 1
	}
}
