// Package extractor turns a single Vue single-file component into a
// ComponentDescriptor.
//
// Each file is split into blocks, its script is parsed once with
// tree-sitter, and the result is reported as an Outcome: extracted,
// skipped (not a typed component) or failed (unreadable or malformed).
package extractor

// ComponentDescriptor is the metadata extracted from one component file.
//
// Slices are never nil so they always encode as JSON arrays.
type ComponentDescriptor struct {
	// FilePath is the slash-separated path relative to the scan root
	FilePath string `json:"filePath"`

	// Template is the trimmed inner markup of the first <template> block
	Template string `json:"template"`

	// Script is the raw inner text of the script block
	Script string `json:"script"`

	// ClassName is the name of the class carrying the component marker,
	// "" if there is none
	ClassName string `json:"className"`

	Methods    []string `json:"methods"`
	Properties []string `json:"properties"`

	// Emits lists the properties carrying an emits-event marker. It is
	// always a subsequence of Properties.
	Emits []string `json:"emits"`
}

func newDescriptor(filePath, template, script string) *ComponentDescriptor {
	return &ComponentDescriptor{
		FilePath:   filePath,
		Template:   template,
		Script:     script,
		Methods:    []string{},
		Properties: []string{},
		Emits:      []string{},
	}
}

// Status is the result category of processing one file.
type Status int

const (
	StatusExtracted Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusExtracted:
		return "extracted"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SkipReason explains why a file produced no descriptor without failing.
type SkipReason string

const (
	// SkipNoScript means the file has no <script> block (script setup does not count)
	SkipNoScript SkipReason = "no-script"
	// SkipNotTyped means the script lang is not TypeScript
	SkipNotTyped SkipReason = "not-typed"
)

// Outcome is the per-file result of an extraction.
type Outcome struct {
	Path   string
	Status Status

	// Reason is set for StatusSkipped
	Reason SkipReason

	// Descriptor is set for StatusExtracted
	Descriptor *ComponentDescriptor

	// Err is an *ExtractionError, set for StatusFailed
	Err error
}

func extracted(d *ComponentDescriptor) Outcome {
	return Outcome{Path: d.FilePath, Status: StatusExtracted, Descriptor: d}
}

func skipped(path string, reason SkipReason) Outcome {
	return Outcome{Path: path, Status: StatusSkipped, Reason: reason}
}

func failed(path string, kind, err error) Outcome {
	return Outcome{
		Path:   path,
		Status: StatusFailed,
		Err:    &ExtractionError{Path: path, Kind: kind, Err: err},
	}
}
