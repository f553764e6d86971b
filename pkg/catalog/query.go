package catalog

import (
	"strings"

	"github.com/mx-llm/vuechunk/pkg/extractor"
)

// ComponentSearchResult holds a component match with the reason it matched.
type ComponentSearchResult struct {
	Component   *extractor.ComponentDescriptor
	MatchReason string
}

// QueryService provides read-only query methods over a loaded catalog.
type QueryService struct {
	Catalog *Catalog
	Index   *CatalogIndex
}

// NewQueryService creates a QueryService from a validated catalog and its index.
func NewQueryService(cat *Catalog, idx *CatalogIndex) *QueryService {
	return &QueryService{Catalog: cat, Index: idx}
}

// LoadAndQuery loads a snapshot from file and returns a ready-to-use QueryService.
func LoadAndQuery(path string) (*QueryService, error) {
	cat, idx, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return NewQueryService(cat, idx), nil
}

// GetComponent looks up a component by filePath, then by class name.
// When several files declare the same class, the first in file order wins.
func (q *QueryService) GetComponent(name string) (*extractor.ComponentDescriptor, bool) {
	if comp, ok := q.Index.ComponentByPath[name]; ok {
		return comp, true
	}
	if comps := q.Index.ComponentsByClass[name]; len(comps) > 0 {
		return comps[0], true
	}
	return nil, false
}

// ComponentsEmitting returns the components that emit the given event.
func (q *QueryService) ComponentsEmitting(event string) []*extractor.ComponentDescriptor {
	return q.Index.ComponentsByEvent[event]
}

// ListComponents performs a case-insensitive search across class names,
// file paths, method names and property names. An empty keyword lists
// every component. Each component appears at most once, with the first
// reason it matched.
func (q *QueryService) ListComponents(keyword string) []ComponentSearchResult {
	keyword = strings.ToLower(keyword)
	results := make([]ComponentSearchResult, 0)

	for i := range q.Catalog.Components {
		comp := &q.Catalog.Components[i]
		if reason, ok := matchReason(comp, keyword); ok {
			results = append(results, ComponentSearchResult{Component: comp, MatchReason: reason})
		}
	}

	return results
}

func matchReason(comp *extractor.ComponentDescriptor, keyword string) (string, bool) {
	if keyword == "" {
		return "all", true
	}
	if strings.Contains(strings.ToLower(comp.ClassName), keyword) {
		return "class", true
	}
	if strings.Contains(strings.ToLower(comp.FilePath), keyword) {
		return "path", true
	}
	for _, m := range comp.Methods {
		if strings.Contains(strings.ToLower(m), keyword) {
			return "method:" + m, true
		}
	}
	for _, p := range comp.Properties {
		if strings.Contains(strings.ToLower(p), keyword) {
			return "property:" + p, true
		}
	}
	return "", false
}
