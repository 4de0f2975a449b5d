// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs block-partitioned loops on a fixed set of
// goroutines. It exists for the tiled matrix multiplication: the row range
// [0, n) is cut into blocks of a given size, and every block is handed to
// exactly one worker.
//
// A loop is a fan-out followed by an implicit join: ForEachBlock returns only
// after every block has been processed. There is no cancellation.
//
// Usage:
//
//	pool := workerpool.New(0) // GOMAXPROCS workers
//	defer pool.Close()
//
//	pool.ForEachBlock(n, 64, func(start, end int) {
//	    processRows(start, end)
//	})
//
// A nil *Pool is valid and runs every block on the calling goroutine.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool owns numWorkers goroutines that drain block loops.
type Pool struct {
	numWorkers int
	loops      chan *blockLoop

	// mu is held shared for the whole of each ForEachBlock and exclusively
	// by Close, so Close waits for loops in flight.
	mu     sync.RWMutex
	closed bool

	loopCount  atomic.Int64
	blockCount atomic.Int64
}

// Stats counts the work a pool has done since New.
type Stats struct {
	Loops  int64 // ForEachBlock calls with at least one block
	Blocks int64 // blocks processed across all loops
}

// blockLoop is one ForEachBlock call shared by every participating worker.
// Workers claim block indices from next until numBlocks is reached.
type blockLoop struct {
	n, blockSize, numBlocks int
	fn                      func(start, end int)
	next                    atomic.Int64
	done                    sync.WaitGroup
}

// run claims and processes blocks until none are left.
func (l *blockLoop) run() {
	for {
		b := int(l.next.Add(1)) - 1
		if b >= l.numBlocks {
			return
		}
		start := b * l.blockSize
		l.fn(start, min(start+l.blockSize, l.n))
	}
}

// New starts a pool with numWorkers goroutines.
// If numWorkers <= 0, the pool size is GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		loops:      make(chan *blockLoop, numWorkers),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for l := range p.loops {
		l.run()
		l.done.Done()
	}
}

// NumWorkers returns the size of the pool; a nil pool has one (the caller).
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 1
	}
	return p.numWorkers
}

// Stats returns the work counters. A nil pool reports zero.
func (p *Pool) Stats() Stats {
	if p == nil {
		return Stats{}
	}
	return Stats{Loops: p.loopCount.Load(), Blocks: p.blockCount.Load()}
}

// Close waits for loops in flight, then stops the workers.
// Calls after the first are no-ops. Loops started after Close run on the
// calling goroutine.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.loops)
	}
}

// ForEachBlock splits [0, n) into blocks [b*blockSize, min((b+1)*blockSize, n))
// and calls fn(start, end) exactly once per block, in parallel across the
// workers. Blocks are claimed from a shared counter, so a slow block does not
// hold up the others. It blocks until every block is done.
//
// blockSize < 1 panics.
func (p *Pool) ForEachBlock(n, blockSize int, fn func(start, end int)) {
	if blockSize < 1 {
		panic("workerpool: block size must be positive")
	}
	if n <= 0 {
		return
	}

	l := &blockLoop{
		n:         n,
		blockSize: blockSize,
		numBlocks: (n + blockSize - 1) / blockSize,
		fn:        fn,
	}
	if p == nil {
		l.run()
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	p.loopCount.Add(1)
	p.blockCount.Add(int64(l.numBlocks))

	helpers := min(p.numWorkers, l.numBlocks)
	if helpers == 1 || p.closed {
		l.run()
		return
	}

	l.done.Add(helpers)
	for range helpers {
		p.loops <- l
	}
	l.done.Wait()
}
