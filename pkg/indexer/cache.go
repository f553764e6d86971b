package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mx-llm/vuechunk/pkg/extractor"
)

// OutcomeCache remembers extraction outcomes keyed by file path and
// content hash, so an unchanged file is not parsed again.
//
// It implements extractor.Cache and is safe for concurrent use.
type OutcomeCache struct {
	cache *lru.Cache[string, extractor.Outcome]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	// purgeMu keeps Add out while Purge runs, so purged entries are not
	// counted as evictions.
	purgeMu sync.RWMutex
	purging atomic.Bool

	logger *slog.Logger
}

var _ extractor.Cache = (*OutcomeCache)(nil)

// NewOutcomeCache creates an empty cache.
func NewOutcomeCache(config OutcomeCacheConfig, logger *slog.Logger) *OutcomeCache {
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultOutcomeCacheConfig().MaxEntries
	}

	oc := &OutcomeCache{logger: logger}

	cache, err := lru.NewWithEvict(config.MaxEntries, func(key string, value extractor.Outcome) {
		if oc.purging.Load() {
			return
		}
		oc.evictions.Add(1)
		if config.Debug {
			logger.Debug("LRU evicting outcome", "path", value.Path)
		}
	})
	if err != nil {
		// Only reachable with a non-positive size.
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}
	oc.cache = cache

	return oc
}

// Get returns the cached outcome for relPath with exactly this content.
func (oc *OutcomeCache) Get(relPath string, source []byte) (extractor.Outcome, bool) {
	outcome, ok := oc.cache.Get(cacheKey(relPath, source))
	if ok {
		oc.hits.Add(1)
	} else {
		oc.misses.Add(1)
	}
	return outcome, ok
}

// Add stores an outcome for relPath with this content.
func (oc *OutcomeCache) Add(relPath string, source []byte, outcome extractor.Outcome) {
	oc.purgeMu.RLock()
	defer oc.purgeMu.RUnlock()
	oc.cache.Add(cacheKey(relPath, source), outcome)
}

// Purge drops every entry. Statistics are kept; dropped entries do not
// count as evictions.
func (oc *OutcomeCache) Purge() {
	oc.purgeMu.Lock()
	defer oc.purgeMu.Unlock()
	oc.purging.Store(true)
	defer oc.purging.Store(false)
	oc.cache.Purge()
}

// Stats returns cache statistics.
func (oc *OutcomeCache) Stats() OutcomeCacheStats {
	return OutcomeCacheStats{
		Entries:   oc.cache.Len(),
		Hits:      oc.hits.Load(),
		Misses:    oc.misses.Load(),
		Evictions: oc.evictions.Load(),
	}
}

func cacheKey(relPath string, source []byte) string {
	sum := sha256.Sum256(source)
	return relPath + "@" + hex.EncodeToString(sum[:])
}
