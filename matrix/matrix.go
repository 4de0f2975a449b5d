// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package matrix provides the square float64 matrices multiplied by package
// matmul, together with the Arena that owns them.
//
// Matrices are stored row-major in a single flat slice. A Matrix never changes
// size after creation and is owned by exactly one Arena; callers borrow it
// until the Arena (or the Matrix itself) is released.
//
// Usage:
//
//	arena := matrix.NewArena()
//	defer arena.Release()
//
//	a, err := arena.Random(n)
//	if err != nil {
//	    return err
//	}
//	c, err := arena.Zeros(n)
package matrix

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// Seed is the fixed seed used by Random. Every call reseeds, so two matrices
// of the same dimension always hold identical values.
const Seed uint64 = 0

// MaxValue bounds the random entries: each one is an integer in [0, MaxValue).
const MaxValue = 10

var (
	// ErrInvalidDimension is returned when the requested dimension is < 1.
	ErrInvalidDimension = errors.New("matrix: dimension must be positive")

	// ErrAllocation is returned when storage for the matrix cannot be obtained.
	ErrAllocation = errors.New("matrix: allocation failed")
)

// Matrix is a dense n×n matrix of float64 values in row-major order.
type Matrix struct {
	n    int
	data []float64
}

// N returns the dimension of the matrix.
func (m *Matrix) N() int {
	return m.n
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Set assigns v to the element at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[i*m.n+j] = v
}

// Row returns row i as a view into the matrix storage.
func (m *Matrix) Row(i int) []float64 {
	off := i * m.n
	return m.data[off : off+m.n : off+m.n]
}

// Data returns the backing row-major slice. Writes through it are visible in m.
func (m *Matrix) Data() []float64 {
	return m.data
}

// Released reports whether the storage of m has been freed.
func (m *Matrix) Released() bool {
	return m.data == nil
}

// Release frees the storage of m. Any later element access panics.
// Releasing an already released matrix does nothing.
func (m *Matrix) Release() {
	m.data = nil
}

// String implements fmt.Stringer, mostly for test failure messages.
func (m *Matrix) String() string {
	if m.Released() {
		return fmt.Sprintf("Matrix[%dx%d](released)", m.n, m.n)
	}
	return fmt.Sprintf("Matrix[%dx%d]", m.n, m.n)
}

// newMatrix allocates an n×n zero matrix.
func newMatrix(n int) (m *Matrix, err error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, n)
	}
	if n > math.MaxInt/n || n*n > maxElements {
		return nil, fmt.Errorf("%w: %dx%d float64 elements exceed addressable memory", ErrAllocation, n, n)
	}

	// make panics (recoverably) when the runtime refuses a length it cannot
	// satisfy; a true out-of-memory still kills the process, which is fatal
	// either way.
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("%w: %dx%d: %v", ErrAllocation, n, n, r)
		}
	}()
	return &Matrix{n: n, data: make([]float64, n*n)}, nil
}

// maxElements is the largest element count whose byte size fits in an int.
const maxElements = math.MaxInt / 8

// fillRandom fills m with integers in [0, MaxValue) drawn from a source
// seeded with Seed.
func fillRandom(m *Matrix) {
	rng := rand.New(rand.NewPCG(Seed, Seed))
	for i := range m.data {
		m.data[i] = float64(rng.IntN(MaxValue))
	}
}
