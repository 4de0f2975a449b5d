// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"github.com/ajroetker/go-tiledmm/matrix"
	"github.com/ajroetker/go-tiledmm/workerpool"
)

// TileSize is the side of the i, j and k blocks used by Tiled.
// Three 64x64 float64 tiles are 96KB, which sits in a typical L2.
// It need not divide n; boundary tiles are clipped.
const TileSize = 64

// Tiled computes out += a * b using TileSize blocking and row-block
// parallelism. out must be zero on entry for the result to equal a * b.
//
// If pool is nil the row-blocks run sequentially on the calling goroutine.
func Tiled(pool *workerpool.Pool, a, b, out *matrix.Matrix) {
	TiledWithTileSize(pool, a, b, out, TileSize)
}

// TiledWithTileSize is Tiled with an explicit tile side.
//
// The iteration space is cut into tiles of rows [ii, ii+tile), columns
// [jj, jj+tile) and reductions [kk, kk+tile), each clipped at n. Tiles are
// visited ii -> jj -> kk. Within a tile, every (i, j) accumulates a private
// sum over the k block which is then added into out[i,j]; successive k
// blocks therefore add up rather than overwrite.
//
// Each row-block ii is claimed by exactly one pool worker. Row-blocks write
// disjoint rows of out and only read a and b, so they need no locking. The
// call returns once every row-block is done.
func TiledWithTileSize(pool *workerpool.Pool, a, b, out *matrix.Matrix, tile int) {
	if tile < 1 {
		panic("matmul: tile size must be positive")
	}
	n := checkShapes(a, b, out)
	ad, bd, cd := a.Data(), b.Data(), out.Data()

	// Each call covers one row-block [ii, iEnd), clipped at n by the pool.
	pool.ForEachBlock(n, tile, func(ii, iEnd int) {
		for jj := 0; jj < n; jj += tile {
			jEnd := min(jj+tile, n)
			for kk := 0; kk < n; kk += tile {
				kEnd := min(kk+tile, n)
				for i := ii; i < iEnd; i++ {
					aRow := ad[i*n : i*n+n]
					cRow := cd[i*n : i*n+n]
					for j := jj; j < jEnd; j++ {
						var sum float64
						for k := kk; k < kEnd; k++ {
							sum += aRow[k] * bd[k*n+j]
						}
						cRow[j] += sum
					}
				}
			}
		}
	})
}
