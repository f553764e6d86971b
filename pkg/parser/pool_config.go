package parser

import (
	"github.com/mx-llm/vuechunk/pkg/util"
)

// getDefaultPoolSize returns the default pool size based on CPU count.
func getDefaultPoolSize() int {
	return util.GetOptimalPoolSize()
}

// getPoolSize returns the pool size to use. An override of 0 selects the
// CPU-based default.
func getPoolSize(override int) int {
	return util.GetOptimalPoolSizeWithOverride(override)
}
