// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

//go:build amd64

package platform

import "golang.org/x/sys/cpu"

func detectFeatures() []string {
	var fs []string
	if cpu.X86.HasSSE2 {
		fs = append(fs, "sse2")
	}
	if cpu.X86.HasAVX {
		fs = append(fs, "avx")
	}
	if cpu.X86.HasAVX2 {
		fs = append(fs, "avx2")
	}
	if cpu.X86.HasFMA {
		fs = append(fs, "fma")
	}
	if cpu.X86.HasAVX512F {
		fs = append(fs, "avx512f")
	}
	return fs
}
