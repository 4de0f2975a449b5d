// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"errors"
	"fmt"
	"math"

	"github.com/ajroetker/go-tiledmm/matrix"
)

// ErrVerificationMismatch is returned by Verify when two results differ.
var ErrVerificationMismatch = errors.New("matmul: results differ")

// FirstMismatch returns the first (i, j) in row-major order where c and d
// are not bit-identical. ok is false when they match everywhere.
// Matrices of different dimension mismatch at (0, 0).
func FirstMismatch(c, d *matrix.Matrix) (i, j int, ok bool) {
	n := c.N()
	if d.N() != n {
		return 0, 0, true
	}
	cd, dd := c.Data(), d.Data()
	for idx := range n * n {
		if math.Float64bits(cd[idx]) != math.Float64bits(dd[idx]) {
			return idx / n, idx % n, true
		}
	}
	return 0, 0, false
}

// Equal reports whether c and d hold bit-identical values.
// This is exact equality, not a tolerance check.
func Equal(c, d *matrix.Matrix) bool {
	_, _, mismatch := FirstMismatch(c, d)
	return !mismatch
}

// Verify returns nil if c and d are bit-identical, or an error wrapping
// ErrVerificationMismatch that names the first differing cell.
func Verify(c, d *matrix.Matrix) error {
	if c.N() != d.N() {
		return fmt.Errorf("%w: dimension %d vs %d", ErrVerificationMismatch, c.N(), d.N())
	}
	i, j, mismatch := FirstMismatch(c, d)
	if !mismatch {
		return nil
	}
	return fmt.Errorf("%w: at [%d][%d]: %v != %v", ErrVerificationMismatch, i, j, c.At(i, j), d.At(i, j))
}
