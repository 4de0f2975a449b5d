// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package platform describes the host CPU for run reports.
package platform

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Features returns the CPU features relevant to dense float64 kernels that
// the host supports, in a fixed order. The list may be empty.
func Features() []string {
	return detectFeatures()
}

// CacheLineSize returns the cache line size assumed by golang.org/x/sys/cpu
// for this architecture.
func CacheLineSize() int {
	return int(unsafe.Sizeof(cpu.CacheLinePad{}))
}

// Describe returns a one-line summary such as
// "linux/amd64, 8 procs, cache line 64B, features: avx2 fma".
func Describe() string {
	features := "none"
	if fs := Features(); len(fs) > 0 {
		features = strings.Join(fs, " ")
	}
	return fmt.Sprintf("%s/%s, %d procs, cache line %dB, features: %s",
		runtime.GOOS, runtime.GOARCH, runtime.GOMAXPROCS(0), CacheLineSize(), features)
}
