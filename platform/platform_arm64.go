// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

//go:build arm64

package platform

import "golang.org/x/sys/cpu"

func detectFeatures() []string {
	var fs []string
	// ASIMD is part of ARMv8-A, but report it from the cpu package anyway.
	if cpu.ARM64.HasASIMD {
		fs = append(fs, "asimd")
	}
	if cpu.ARM64.HasFPHP {
		fs = append(fs, "fphp")
	}
	if cpu.ARM64.HasSVE {
		fs = append(fs, "sve")
	}
	if cpu.ARM64.HasSVE2 {
		fs = append(fs, "sve2")
	}
	return fs
}
