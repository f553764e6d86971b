package scanner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mx-llm/vuechunk/pkg/extractor"
)

// DefaultOutputFile is the snapshot file name used when none is given.
const DefaultOutputFile = "vue_chunks_ast.json"

// ErrOutputWrite marks a failure to write the snapshot. It is the only
// error that fails a run.
var ErrOutputWrite = errors.New("output write failed")

// EncodeJSON writes descriptors as a JSON array indented with two spaces.
// HTML characters in templates are written as-is.
func EncodeJSON(w io.Writer, descriptors []*extractor.ComponentDescriptor) error {
	if descriptors == nil {
		descriptors = []*extractor.ComponentDescriptor{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(descriptors)
}

// WriteJSON writes the snapshot to path. Parent directories are created.
// The file is written to a temporary sibling and renamed into place, so an
// existing snapshot is never left truncated. Every error wraps ErrOutputWrite.
func WriteJSON(path string, descriptors []*extractor.ComponentDescriptor) error {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, descriptors); err != nil {
		return fmt.Errorf("%w: encode: %w", ErrOutputWrite, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", ErrOutputWrite, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrOutputWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrOutputWrite, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrOutputWrite, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrOutputWrite, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", ErrOutputWrite, path, err)
	}

	return nil
}
