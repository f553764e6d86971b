package util

import "runtime"

// GetOptimalPoolSize returns the optimal pool size for CPU-bound tasks.
//
// Formula: min(max(runtime.NumCPU(), 2), 8)
//
// Extraction runs one file at a time, so parser pools only grow past one
// parser when several callers share a ParserManager (watch mode re-runs
// overlapping with a manual run, tests exercising concurrency).
func GetOptimalPoolSize() int {
	poolSize := runtime.NumCPU()

	if poolSize < 2 {
		poolSize = 2
	}
	if poolSize > 8 {
		poolSize = 8
	}

	return poolSize
}

// GetOptimalPoolSizeWithOverride returns pool size with optional override.
//
// If override > 0, uses override value (for testing/tuning).
// Otherwise, uses GetOptimalPoolSize().
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
