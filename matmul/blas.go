// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ajroetker/go-tiledmm/matrix"
)

// BLAS computes out = a * b with gonum's dense multiply. The gonum views
// share storage with a, b and out, so nothing is copied.
func BLAS(a, b, out *matrix.Matrix) {
	n := checkShapes(a, b, out)
	da := mat.NewDense(n, n, a.Data())
	db := mat.NewDense(n, n, b.Data())
	dc := mat.NewDense(n, n, out.Data())
	dc.Mul(da, db)
}
