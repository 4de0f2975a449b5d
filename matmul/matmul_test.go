// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-tiledmm/matrix"
	"github.com/ajroetker/go-tiledmm/workerpool"
)

// matmulReference computes out = a * b with At/Set only, independent of the
// flat layout used by the kernels.
func matmulReference(a, b, out *matrix.Matrix) {
	n := a.N()
	for i := range n {
		for j := range n {
			var sum float64
			for k := range n {
				sum += a.At(i, k) * b.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}
}

// inputs returns seeded A and B plus zeroed C (tiled) and D (naive).
func inputs(t testing.TB, arena *matrix.Arena, n int) (a, b, c, d *matrix.Matrix) {
	t.Helper()
	var err error
	a, err = arena.Random(n)
	require.NoError(t, err)
	b, err = arena.Random(n)
	require.NoError(t, err)
	c, err = arena.Zeros(n)
	require.NoError(t, err)
	d, err = arena.Zeros(n)
	require.NoError(t, err)
	return a, b, c, d
}

func fromRows(t *testing.T, arena *matrix.Arena, rows [][]float64) *matrix.Matrix {
	t.Helper()
	m, err := arena.Zeros(len(rows))
	require.NoError(t, err)
	for i, row := range rows {
		copy(m.Row(i), row)
	}
	return m
}

func TestNaiveSmall(t *testing.T) {
	arena := matrix.NewArena()
	defer arena.Release()

	a := fromRows(t, arena, [][]float64{{1, 2}, {3, 4}})
	b := fromRows(t, arena, [][]float64{{5, 6}, {7, 8}})
	out := fromRows(t, arena, [][]float64{{-1, -1}, {-1, -1}}) // overwritten

	Naive(a, b, out)
	require.Equal(t, []float64{19, 22, 43, 50}, out.Data())
}

func TestScalarCase(t *testing.T) {
	arena := matrix.NewArena()
	defer arena.Release()
	pool := workerpool.New(4)
	defer pool.Close()

	a := fromRows(t, arena, [][]float64{{7}})
	b := fromRows(t, arena, [][]float64{{6}})
	c, err := arena.Zeros(1)
	require.NoError(t, err)
	d, err := arena.Zeros(1)
	require.NoError(t, err)

	Naive(a, b, d)
	Tiled(pool, a, b, c)
	require.Equal(t, 42.0, d.At(0, 0))
	require.Equal(t, 42.0, c.At(0, 0))

	// Seeded inputs reduce to the same single product.
	a, b, c, d = inputs(t, arena, 1)
	Naive(a, b, d)
	Tiled(pool, a, b, c)
	require.Equal(t, a.At(0, 0)*b.At(0, 0), d.At(0, 0))
	require.True(t, Equal(c, d))
}

func TestTiledMatchesNaive(t *testing.T) {
	pool := workerpool.New(0)
	defer pool.Close()

	// Below, at and around multiples of the tile size.
	for _, n := range []int{1, 2, 4, 10, 63, 64, 65, 100, 128, 130, 200} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			arena := matrix.NewArena()
			defer arena.Release()
			a, b, c, d := inputs(t, arena, n)

			Naive(a, b, d)
			Tiled(pool, a, b, c)

			require.NoError(t, Verify(c, d))
			require.True(t, Equal(c, d))
		})
	}
}

func TestTiledAgainstReference(t *testing.T) {
	arena := matrix.NewArena()
	defer arena.Release()
	pool := workerpool.New(3)
	defer pool.Close()

	a, b, c, _ := inputs(t, arena, 97)
	want, err := arena.Zeros(97)
	require.NoError(t, err)

	matmulReference(a, b, want)
	Tiled(pool, a, b, c)
	require.NoError(t, Verify(c, want))
}

func TestTiledWorkerCounts(t *testing.T) {
	arena := matrix.NewArena()
	defer arena.Release()

	const n = 150
	a, b, _, d := inputs(t, arena, n)
	Naive(a, b, d)

	for _, workers := range []int{1, 2, 3, runtime.GOMAXPROCS(0), 16} {
		pool := workerpool.New(workers)
		for run := range 3 {
			c, err := arena.Zeros(n)
			require.NoError(t, err)
			Tiled(pool, a, b, c)
			require.NoError(t, Verify(c, d), "workers=%d run=%d", workers, run)
		}
		pool.Close()
	}

	// No pool: sequential row-blocks.
	c, err := arena.Zeros(n)
	require.NoError(t, err)
	Tiled(nil, a, b, c)
	require.NoError(t, Verify(c, d))
}

func TestTiledRowBlocks(t *testing.T) {
	arena := matrix.NewArena()
	defer arena.Release()
	pool := workerpool.New(4)
	defer pool.Close()

	// One row-block per started tile along i, boundary block included.
	for _, tc := range []struct{ n, blocks int }{{10, 1}, {64, 1}, {65, 2}, {130, 3}} {
		a, b, c, d := inputs(t, arena, tc.n)
		before := pool.Stats().Blocks
		Tiled(pool, a, b, c)
		require.Equal(t, int64(tc.blocks), pool.Stats().Blocks-before, "n=%d", tc.n)

		Naive(a, b, d)
		require.NoError(t, Verify(c, d), "n=%d", tc.n)
	}
}

func TestTiledTileSizes(t *testing.T) {
	arena := matrix.NewArena()
	defer arena.Release()
	pool := workerpool.New(4)
	defer pool.Close()

	const n = 77
	a, b, _, d := inputs(t, arena, n)
	Naive(a, b, d)

	// Tiles that divide n, leave a remainder, equal n and exceed it.
	for _, tile := range []int{1, 7, 11, 16, 64, 77, 128} {
		c, err := arena.Zeros(n)
		require.NoError(t, err)
		TiledWithTileSize(pool, a, b, c, tile)
		require.NoError(t, Verify(c, d), "tile=%d", tile)
	}
}

func TestTiledAccumulates(t *testing.T) {
	arena := matrix.NewArena()
	defer arena.Release()

	// Tiled adds into out, so a non-zero out is offset by its initial value.
	a := fromRows(t, arena, [][]float64{{1, 2}, {3, 4}})
	b := fromRows(t, arena, [][]float64{{5, 6}, {7, 8}})
	out := fromRows(t, arena, [][]float64{{1, 1}, {1, 1}})

	TiledWithTileSize(nil, a, b, out, 1)
	require.Equal(t, []float64{20, 23, 44, 51}, out.Data())
}

// TestEndToEnd4x4 runs the full pipeline for n=4 against a hand-written
// triple loop over the seeded inputs.
func TestEndToEnd4x4(t *testing.T) {
	arena := matrix.NewArena()
	defer arena.Release()
	pool := workerpool.New(2)
	defer pool.Close()

	a, b, c, d := inputs(t, arena, 4)
	for _, v := range a.Data() {
		require.True(t, v >= 0 && v < matrix.MaxValue && v == float64(int(v)))
	}

	var expected [4][4]float64
	for i := range 4 {
		for j := range 4 {
			for k := range 4 {
				expected[i][j] += a.At(i, k) * b.At(k, j)
			}
		}
	}

	Naive(a, b, d)
	Tiled(pool, a, b, c)
	for i := range 4 {
		for j := range 4 {
			require.Equal(t, expected[i][j], d.At(i, j), "naive [%d][%d]", i, j)
			require.Equal(t, expected[i][j], c.At(i, j), "tiled [%d][%d]", i, j)
		}
	}
	require.True(t, Equal(c, d))
	require.NoError(t, Verify(c, d))
}

func TestBLASMatchesNaive(t *testing.T) {
	for _, n := range []int{1, 5, 64, 129} {
		arena := matrix.NewArena()
		a, b, c, d := inputs(t, arena, n)
		Naive(a, b, d)
		BLAS(a, b, c)
		require.NoError(t, Verify(c, d), "n=%d", n)
		arena.Release()
	}
}

func TestShapeChecks(t *testing.T) {
	arena := matrix.NewArena()
	defer arena.Release()

	a, err := arena.Zeros(3)
	require.NoError(t, err)
	b, err := arena.Zeros(4)
	require.NoError(t, err)
	out, err := arena.Zeros(3)
	require.NoError(t, err)

	require.PanicsWithValue(t, "matmul: dimension mismatch: a=3 b=4 out=3", func() { Naive(a, b, out) })
	require.Panics(t, func() { Tiled(nil, a, b, out) })
	require.Panics(t, func() { BLAS(a, b, out) })
	require.PanicsWithValue(t, "matmul: tile size must be positive", func() {
		TiledWithTileSize(nil, a, a, out, 0)
	})

	out.Release()
	require.PanicsWithValue(t, "matmul: nil or released matrix", func() { Naive(a, a, out) })
}

func BenchmarkNaive(b *testing.B) {
	for _, n := range []int{64, 256} {
		b.Run(fmt.Sprintf("%d", n), func(b *testing.B) {
			arena := matrix.NewArena()
			defer arena.Release()
			x, y, _, out := inputs(b, arena, n)
			b.SetBytes(int64(3 * n * n * 8))
			for b.Loop() {
				Naive(x, y, out)
			}
		})
	}
}

func BenchmarkTiled(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	for _, n := range []int{64, 256, 512} {
		b.Run(fmt.Sprintf("%d", n), func(b *testing.B) {
			arena := matrix.NewArena()
			defer arena.Release()
			x, y, out, _ := inputs(b, arena, n)
			b.SetBytes(int64(3 * n * n * 8))
			for b.Loop() {
				clear(out.Data())
				Tiled(pool, x, y, out)
			}
		})
	}
}

func BenchmarkBLAS(b *testing.B) {
	for _, n := range []int{256, 512} {
		b.Run(fmt.Sprintf("%d", n), func(b *testing.B) {
			arena := matrix.NewArena()
			defer arena.Release()
			x, y, out, _ := inputs(b, arena, n)
			for b.Loop() {
				BLAS(x, y, out)
			}
		})
	}
}
