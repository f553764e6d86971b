// Package indexer keeps a component snapshot in sync with a source tree.
//
// An Indexer runs the scanner and writes the snapshot; in watch mode a
// FileWatcher triggers a refresh whenever component files change, and an
// OutcomeCache lets files whose content did not change skip parsing.
package indexer

// OutcomeCacheConfig configures the per-file outcome cache.
type OutcomeCacheConfig struct {
	// MaxEntries is the maximum number of outcomes kept in the LRU.
	// Default: 1000
	MaxEntries int

	// Debug enables eviction logging.
	Debug bool
}

// DefaultOutcomeCacheConfig returns recommended cache settings.
func DefaultOutcomeCacheConfig() OutcomeCacheConfig {
	return OutcomeCacheConfig{MaxEntries: 1000}
}

// OutcomeCacheStats contains cache statistics.
type OutcomeCacheStats struct {
	Entries   int
	Hits      int64
	Misses    int64
	Evictions int64
}

// HitRate returns hits / (hits + misses), or 0 before the first lookup.
func (s OutcomeCacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// WatchOptions configures file watching behavior.
type WatchOptions struct {
	// DebounceMs is the debounce delay in milliseconds.
	// Multiple rapid changes are grouped into a single refresh.
	// Default: 200ms
	DebounceMs int
}

// DefaultWatchOptions returns recommended watch options.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{DebounceMs: 200}
}

// FileWatcherStats contains file watcher statistics.
type FileWatcherStats struct {
	PendingChanges int
	WatchedDirs    int
	IsRunning      bool
}

// IndexerStats contains indexer statistics.
type IndexerStats struct {
	Refreshes int64
	Cache     OutcomeCacheStats
}
