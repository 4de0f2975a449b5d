// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

//go:build !amd64 && !arm64

package platform

// Other architectures report no vector features.
func detectFeatures() []string {
	return nil
}
