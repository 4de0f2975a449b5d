// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"

	"github.com/ajroetker/go-tiledmm/matrix"
)

// Naive computes out = a * b with the standard triple loop:
// out[i,j] = sum(a[i,k] * b[k,j]) for k in 0..n-1.
//
// Every cell of out is overwritten, so out need not be zeroed.
// It runs on the calling goroutine.
func Naive(a, b, out *matrix.Matrix) {
	n := checkShapes(a, b, out)
	ad, bd, cd := a.Data(), b.Data(), out.Data()

	for i := range n {
		for j := range n {
			var sum float64
			for k := range n {
				sum += ad[i*n+k] * bd[k*n+j]
			}
			cd[i*n+j] = sum
		}
	}
}

// checkShapes panics unless a, b and out are live matrices of equal
// dimension, and returns that dimension.
func checkShapes(a, b, out *matrix.Matrix) int {
	for _, m := range []*matrix.Matrix{a, b, out} {
		if m == nil || m.Released() {
			panic("matmul: nil or released matrix")
		}
	}
	n := a.N()
	if b.N() != n || out.N() != n {
		panic(fmt.Sprintf("matmul: dimension mismatch: a=%d b=%d out=%d", n, b.N(), out.N()))
	}
	return n
}
