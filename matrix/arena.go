// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import "sync"

// Arena owns every matrix it creates and releases them together.
// Create one per run and defer Release so storage is freed on all exit paths.
type Arena struct {
	mu       sync.Mutex
	owned    []*Matrix
	released bool
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Random allocates an n×n matrix filled deterministically from Seed.
func (a *Arena) Random(n int) (*Matrix, error) {
	m, err := a.alloc(n)
	if err != nil {
		return nil, err
	}
	fillRandom(m)
	return m, nil
}

// Zeros allocates an n×n matrix with every entry 0.
func (a *Arena) Zeros(n int) (*Matrix, error) {
	return a.alloc(n)
}

func (a *Arena) alloc(n int) (*Matrix, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.released {
		panic("matrix: allocation from a released arena")
	}

	m, err := newMatrix(n)
	if err != nil {
		return nil, err
	}
	a.owned = append(a.owned, m)
	return m, nil
}

// Len returns the number of matrices the arena owns.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.owned)
}

// Release frees every matrix owned by the arena. The arena cannot allocate
// afterwards. Calling Release multiple times is safe.
func (a *Arena) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, m := range a.owned {
		m.Release()
	}
	a.owned = nil
	a.released = true
}
