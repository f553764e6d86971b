package extractor

import (
	"fmt"
	"sort"
	"strings"
)

// MarkerKind is the meaning of a decorator for extraction purposes.
type MarkerKind int

const (
	// MarkerNone is any decorator extraction does not care about
	MarkerNone MarkerKind = iota
	// MarkerComponent marks the class that describes the component
	MarkerComponent
	// MarkerEmitsEvent marks a property whose name is an emitted event
	MarkerEmitsEvent
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerComponent:
		return "component"
	case MarkerEmitsEvent:
		return "emits-event"
	default:
		return "none"
	}
}

// ParseMarkerKind converts a configuration value to a MarkerKind.
func ParseMarkerKind(s string) (MarkerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "component":
		return MarkerComponent, nil
	case "emits-event", "emits", "emit":
		return MarkerEmitsEvent, nil
	default:
		return MarkerNone, fmt.Errorf("unknown marker kind %q", s)
	}
}

// MarkerSet maps decorator identifiers to their kind. Names are matched
// exactly (case-sensitive), as written in source.
type MarkerSet map[string]MarkerKind

// DefaultMarkers returns the vue-property-decorator conventions.
func DefaultMarkers() MarkerSet {
	return MarkerSet{
		"Component": MarkerComponent,
		"Emit":      MarkerEmitsEvent,
	}
}

// NewMarkerSet builds a MarkerSet from decorator name → kind strings.
// It fails if a name is empty, a kind is unknown, or no component marker
// is defined.
func NewMarkerSet(config map[string]string) (MarkerSet, error) {
	set := make(MarkerSet, len(config))

	names := make([]string, 0, len(config))
	for name := range config {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("marker name must not be empty")
		}
		kind, err := ParseMarkerKind(config[name])
		if err != nil {
			return nil, fmt.Errorf("marker %s: %w", name, err)
		}
		set[name] = kind
	}

	if !set.defines(MarkerComponent) {
		return nil, fmt.Errorf("at least one component marker is required")
	}
	return set, nil
}

// Kind returns the kind for a decorator name, MarkerNone if unknown.
func (s MarkerSet) Kind(name string) MarkerKind {
	return s[name]
}

// Any reports whether one of names is a marker of the given kind.
func (s MarkerSet) Any(names []string, kind MarkerKind) bool {
	for _, n := range names {
		if s.Kind(n) == kind {
			return true
		}
	}
	return false
}

func (s MarkerSet) defines(kind MarkerKind) bool {
	for _, k := range s {
		if k == kind {
			return true
		}
	}
	return false
}
