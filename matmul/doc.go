// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package matmul multiplies square float64 matrices from package matrix.
//
// Three strategies compute C = A * B:
//
//   - Naive: the textbook i-j-k triple loop on one goroutine. It is the
//     ground truth for correctness, not a performance path.
//   - Tiled: cache blocking over i, j and k in tiles of TileSize, with
//     row-blocks distributed across a workerpool.Pool.
//   - BLAS: gonum's dense multiply, an independent cross-check.
//
// Inputs produced by matrix.Arena.Random are small integers, so every
// partial sum is exactly representable and all strategies agree bit for bit.
// Equal, FirstMismatch and Verify compare results that way.
//
// Example:
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//
//	matmul.Naive(a, b, d)
//	matmul.Tiled(pool, a, b, c) // c must be zero on entry
//	if err := matmul.Verify(c, d); err != nil {
//	    log.Fatal(err)
//	}
package matmul
