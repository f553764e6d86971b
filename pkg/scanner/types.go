// Package scanner discovers Vue component files under a root directory,
// runs the extractor over them one at a time and writes the resulting
// descriptor snapshot.
package scanner

// ScanConfig configures file discovery.
type ScanConfig struct {
	// Include glob patterns for file matching, relative to the root.
	Include []string
	// Exclude glob patterns. A matching directory is not descended into.
	Exclude []string
}

// DefaultScanConfig returns the default discovery configuration: every
// .vue file, skipping dependency caches and build output at any depth.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Include: []string{
			"**/*.vue",
		},
		Exclude: []string{
			"**/node_modules/**",
			"**/dist/**",
		},
	}
}

// ScanStats summarizes one run.
type ScanStats struct {
	FilesDiscovered  int
	FilesExtracted   int
	FilesSkipped     int
	FilesFailed      int
	DiscoveryTimeMs  int64
	ExtractionTimeMs int64
	TotalTimeMs      int64
}

// ProgressCallback is called after each file is processed.
//
// Parameters:
//   - done: Number of files processed so far
//   - total: Total number of files discovered
//   - currentFile: Root-relative path of the file just processed
type ProgressCallback func(done, total int, currentFile string)
