package extractor

import (
	"errors"
	"fmt"
)

var (
	// ErrFileRead marks files that could not be read.
	ErrFileRead = errors.New("file read failed")

	// ErrSyntaxParse marks files whose component structure or script could not be parsed.
	ErrSyntaxParse = errors.New("syntax parse failed")
)

// ExtractionError is a per-file failure. Kind is one of ErrFileRead or
// ErrSyntaxParse, so callers can use errors.Is on either the kind or the
// underlying cause.
type ExtractionError struct {
	Path string
	Kind error
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is reports whether target is this error's kind.
func (e *ExtractionError) Is(target error) bool {
	return target == e.Kind
}

// SyntaxError locates the first syntax error of a script. Line and Column
// are 1-based and relative to the component file, not the script block.
type SyntaxError struct {
	Line    int
	Column  int
	Missing bool
	Token   string
}

func (e *SyntaxError) Error() string {
	if e.Missing {
		return fmt.Sprintf("line %d, column %d: missing %q", e.Line, e.Column, e.Token)
	}
	return fmt.Sprintf("line %d, column %d: unexpected %q", e.Line, e.Column, e.Token)
}
