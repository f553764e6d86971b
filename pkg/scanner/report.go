package scanner

import (
	"github.com/mx-llm/vuechunk/pkg/extractor"
)

// Report is the ordered collection of per-file outcomes of one run.
// Outcomes are kept in discovery order.
type Report struct {
	Root  string
	Stats ScanStats

	order    []string
	outcomes map[string]extractor.Outcome
}

func newReport(root string) *Report {
	return &Report{
		Root:     root,
		outcomes: make(map[string]extractor.Outcome),
	}
}

// add records an outcome. A second outcome for the same path replaces the
// first without changing its position.
func (r *Report) add(o extractor.Outcome) {
	if _, exists := r.outcomes[o.Path]; !exists {
		r.order = append(r.order, o.Path)
	}
	r.outcomes[o.Path] = o
}

// Len returns the number of files with an outcome.
func (r *Report) Len() int {
	return len(r.order)
}

// Paths returns the processed paths in discovery order.
func (r *Report) Paths() []string {
	return append([]string(nil), r.order...)
}

// Outcome returns the outcome for a root-relative path.
func (r *Report) Outcome(path string) (extractor.Outcome, bool) {
	o, ok := r.outcomes[path]
	return o, ok
}

// Descriptors returns the extracted descriptors in discovery order. The
// result is never nil.
func (r *Report) Descriptors() []*extractor.ComponentDescriptor {
	descriptors := make([]*extractor.ComponentDescriptor, 0, len(r.order))
	for _, o := range r.filter(extractor.StatusExtracted) {
		descriptors = append(descriptors, o.Descriptor)
	}
	return descriptors
}

// Failures returns the failed outcomes in discovery order.
func (r *Report) Failures() []extractor.Outcome {
	return r.filter(extractor.StatusFailed)
}

// Skipped returns the skipped outcomes in discovery order.
func (r *Report) Skipped() []extractor.Outcome {
	return r.filter(extractor.StatusSkipped)
}

func (r *Report) filter(status extractor.Status) []extractor.Outcome {
	var out []extractor.Outcome
	for _, path := range r.order {
		if o := r.outcomes[path]; o.Status == status {
			out = append(out, o)
		}
	}
	return out
}
