package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMarkers(t *testing.T) {
	markers := DefaultMarkers()

	assert.Equal(t, MarkerComponent, markers.Kind("Component"))
	assert.Equal(t, MarkerEmitsEvent, markers.Kind("Emit"))
	assert.Equal(t, MarkerNone, markers.Kind("Prop"))
	assert.Equal(t, MarkerNone, markers.Kind("component"), "names are case-sensitive")
}

func TestMarkerSet_Any(t *testing.T) {
	markers := DefaultMarkers()

	assert.True(t, markers.Any([]string{"Prop", "Emit"}, MarkerEmitsEvent))
	assert.False(t, markers.Any([]string{"Prop", "Watch"}, MarkerEmitsEvent))
	assert.False(t, markers.Any(nil, MarkerComponent))
}

func TestNewMarkerSet(t *testing.T) {
	markers, err := NewMarkerSet(map[string]string{
		"Options":   "component",
		"Component": "Component",
		"Emits":     "emits-event",
	})
	require.NoError(t, err)

	assert.Equal(t, MarkerComponent, markers.Kind("Options"))
	assert.Equal(t, MarkerComponent, markers.Kind("Component"))
	assert.Equal(t, MarkerEmitsEvent, markers.Kind("Emits"))
}

func TestNewMarkerSet_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown kind": {"Component": "component", "Watch": "watcher"},
		"empty name":   {"Component": "component", " ": "emit"},
		"no component": {"Emit": "emits-event"},
		"empty map":    {},
	}

	for name, config := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewMarkerSet(config)
			assert.Error(t, err)
		})
	}
}

func TestMarkerKindString(t *testing.T) {
	assert.Equal(t, "component", MarkerComponent.String())
	assert.Equal(t, "emits-event", MarkerEmitsEvent.String())
	assert.Equal(t, "none", MarkerNone.String())

	kind, err := ParseMarkerKind("emit")
	require.NoError(t, err)
	assert.Equal(t, MarkerEmitsEvent, kind)
}
