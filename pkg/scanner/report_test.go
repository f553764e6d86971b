package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mx-llm/vuechunk/pkg/extractor"
)

func TestReport_OrderAndReplace(t *testing.T) {
	r := newReport("/repo")
	r.add(extractor.Outcome{Path: "b.vue", Status: extractor.StatusSkipped, Reason: extractor.SkipNoScript})
	r.add(extractor.Outcome{Path: "a.vue", Status: extractor.StatusFailed, Err: errors.New("boom")})
	r.add(extractor.Outcome{Path: "b.vue", Status: extractor.StatusExtracted, Descriptor: &extractor.ComponentDescriptor{FilePath: "b.vue"}})

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"b.vue", "a.vue"}, r.Paths())
	assert.Len(t, r.Descriptors(), 1)
	assert.Len(t, r.Failures(), 1)
	assert.Empty(t, r.Skipped())

	_, ok := r.Outcome("missing.vue")
	assert.False(t, ok)
}

func TestReport_EmptyDescriptorsNotNil(t *testing.T) {
	r := newReport("/repo")
	assert.NotNil(t, r.Descriptors())
	assert.Empty(t, r.Descriptors())
}
