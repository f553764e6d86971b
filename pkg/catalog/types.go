// Package catalog loads a written component snapshot back into memory and
// answers lookups over it.
package catalog

import "github.com/mx-llm/vuechunk/pkg/extractor"

// Catalog is a loaded snapshot: the descriptors of one extraction run, in
// file order.
type Catalog struct {
	Source     string
	Components []extractor.ComponentDescriptor
}

// CatalogIndex provides O(1) lookups into the catalog.
// Built during LoadFromFile after validation passes.
type CatalogIndex struct {
	// ComponentByPath maps filePath -> descriptor.
	ComponentByPath map[string]*extractor.ComponentDescriptor

	// ComponentsByClass maps class name -> descriptors, in file order.
	// Files without a component class are not indexed here.
	ComponentsByClass map[string][]*extractor.ComponentDescriptor

	// ComponentsByEvent maps an emitted event name -> descriptors.
	ComponentsByEvent map[string][]*extractor.ComponentDescriptor
}
