package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mx-llm/vuechunk/pkg/extractor"
)

// Validate checks the catalog for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (c *Catalog) Validate() []error {
	var errs []error

	paths := make(map[string]bool, len(c.Components))

	for i := range c.Components {
		comp := &c.Components[i]
		if comp.FilePath == "" {
			errs = append(errs, fmt.Errorf("components[%d]: filePath is required", i))
			continue
		}
		if paths[comp.FilePath] {
			errs = append(errs, fmt.Errorf("component %q: duplicate filePath", comp.FilePath))
			continue
		}
		paths[comp.FilePath] = true

		if comp.ClassName == "" && (len(comp.Methods) > 0 || len(comp.Properties) > 0) {
			errs = append(errs, fmt.Errorf("component %q: members listed without a className", comp.FilePath))
		}

		// Emits must be a subsequence of properties.
		next := 0
		for _, event := range comp.Emits {
			for next < len(comp.Properties) && comp.Properties[next] != event {
				next++
			}
			if next == len(comp.Properties) {
				errs = append(errs, fmt.Errorf("component %q: emitted event %q is not a property", comp.FilePath, event))
				break
			}
			next++
		}
	}

	return errs
}

// BuildIndex creates lookup maps for fast access.
// Should be called after Validate() passes.
func (c *Catalog) BuildIndex() *CatalogIndex {
	idx := &CatalogIndex{
		ComponentByPath:   make(map[string]*extractor.ComponentDescriptor, len(c.Components)),
		ComponentsByClass: make(map[string][]*extractor.ComponentDescriptor),
		ComponentsByEvent: make(map[string][]*extractor.ComponentDescriptor),
	}

	for i := range c.Components {
		comp := &c.Components[i]
		idx.ComponentByPath[comp.FilePath] = comp

		if comp.ClassName != "" {
			idx.ComponentsByClass[comp.ClassName] = append(idx.ComponentsByClass[comp.ClassName], comp)
		}

		seen := make(map[string]bool, len(comp.Emits))
		for _, event := range comp.Emits {
			if seen[event] {
				continue
			}
			seen[event] = true
			idx.ComponentsByEvent[event] = append(idx.ComponentsByEvent[event], comp)
		}
	}

	return idx
}

// LoadFromFile loads a snapshot from a JSON file, validates it, and builds the index.
func LoadFromFile(path string) (*Catalog, *CatalogIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	cat, idx, err := LoadFromBytes(data)
	if err != nil {
		return nil, nil, err
	}
	cat.Source = path
	return cat, idx, nil
}

// LoadFromBytes parses a snapshot from raw JSON bytes, validates it, and builds the index.
func LoadFromBytes(data []byte) (*Catalog, *CatalogIndex, error) {
	var components []extractor.ComponentDescriptor
	if err := json.Unmarshal(data, &components); err != nil {
		return nil, nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}

	catalog := &Catalog{Components: components}
	if errs := catalog.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("snapshot validation failed: %w", errors.Join(errs...))
	}

	index := catalog.BuildIndex()
	return catalog, index, nil
}
