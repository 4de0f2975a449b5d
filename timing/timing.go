// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package timing measures the wall-clock duration of a single operation.
// Measurements use the monotonic clock, so they are immune to wall-clock
// adjustments during the run.
package timing

import "time"

// MeasureDuration runs op once and returns how long it took.
func MeasureDuration(op func()) time.Duration {
	start := time.Now()
	op()
	return time.Since(start)
}

// Measure runs op once and returns the elapsed time in seconds.
func Measure(op func()) float64 {
	return MeasureDuration(op).Seconds()
}
