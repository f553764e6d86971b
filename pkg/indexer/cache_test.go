package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mx-llm/vuechunk/pkg/extractor"
	"github.com/mx-llm/vuechunk/pkg/util"
)

func testCache(t *testing.T, maxEntries int) *OutcomeCache {
	t.Helper()
	logger := util.NewLogger(util.DefaultLoggerConfig())
	return NewOutcomeCache(OutcomeCacheConfig{MaxEntries: maxEntries, Debug: true}, logger)
}

func extractedOutcome(path, class string) extractor.Outcome {
	return extractor.Outcome{
		Path:       path,
		Status:     extractor.StatusExtracted,
		Descriptor: &extractor.ComponentDescriptor{FilePath: path, ClassName: class},
	}
}

func TestOutcomeCache_HitAndMiss(t *testing.T) {
	cache := testCache(t, 10)
	source := []byte("<script lang=\"ts\"></script>")

	_, ok := cache.Get("A.vue", source)
	assert.False(t, ok)

	cache.Add("A.vue", source, extractedOutcome("A.vue", "A"))

	got, ok := cache.Get("A.vue", source)
	require.True(t, ok)
	assert.Equal(t, "A", got.Descriptor.ClassName)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate(), 1e-9)
}

func TestOutcomeCache_KeyedByContent(t *testing.T) {
	cache := testCache(t, 10)
	cache.Add("A.vue", []byte("v1"), extractedOutcome("A.vue", "First"))

	_, ok := cache.Get("A.vue", []byte("v2"))
	assert.False(t, ok, "changed content misses")

	_, ok = cache.Get("B.vue", []byte("v1"))
	assert.False(t, ok, "same content under another path misses")

	got, ok := cache.Get("A.vue", []byte("v1"))
	require.True(t, ok)
	assert.Equal(t, "First", got.Descriptor.ClassName)
}

func TestOutcomeCache_Eviction(t *testing.T) {
	cache := testCache(t, 2)
	cache.Add("A.vue", []byte("a"), extractedOutcome("A.vue", "A"))
	cache.Add("B.vue", []byte("b"), extractedOutcome("B.vue", "B"))

	// Touch A so that B is the least recently used.
	_, ok := cache.Get("A.vue", []byte("a"))
	require.True(t, ok)

	cache.Add("C.vue", []byte("c"), extractedOutcome("C.vue", "C"))

	_, ok = cache.Get("B.vue", []byte("b"))
	assert.False(t, ok)
	_, ok = cache.Get("A.vue", []byte("a"))
	assert.True(t, ok)

	stats := cache.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, int64(1), stats.Evictions)
}

func TestOutcomeCache_Purge(t *testing.T) {
	cache := testCache(t, 10)
	cache.Add("A.vue", []byte("a"), extractedOutcome("A.vue", "A"))
	cache.Purge()

	_, ok := cache.Get("A.vue", []byte("a"))
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Stats().Entries)
}

func TestOutcomeCache_PurgeIsNotEviction(t *testing.T) {
	cache := testCache(t, 1)
	cache.Add("A.vue", []byte("a"), extractedOutcome("A.vue", "A"))
	cache.Add("B.vue", []byte("b"), extractedOutcome("B.vue", "B"))
	require.Equal(t, int64(1), cache.Stats().Evictions)

	cache.Purge()
	assert.Equal(t, int64(1), cache.Stats().Evictions)

	cache.Add("C.vue", []byte("c"), extractedOutcome("C.vue", "C"))
	cache.Add("D.vue", []byte("d"), extractedOutcome("D.vue", "D"))
	assert.Equal(t, int64(2), cache.Stats().Evictions)
}

func TestOutcomeCache_DefaultSize(t *testing.T) {
	cache := NewOutcomeCache(OutcomeCacheConfig{}, nil)
	for i := 0; i < 1001; i++ {
		cache.Add("A.vue", []byte{byte(i), byte(i >> 8)}, extractedOutcome("A.vue", "A"))
	}
	assert.Equal(t, 1000, cache.Stats().Entries)
}

func TestOutcomeCache_EmptyStats(t *testing.T) {
	assert.Equal(t, 0.0, OutcomeCacheStats{}.HitRate())
}
