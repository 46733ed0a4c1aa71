package entities

import (
	"fmt"
	"strings"
)

// NotFoundError indicates a config file that should exist does not.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// ParseError indicates malformed YAML. Line and Column are 1-based and zero
// when the position could not be determined.
type ParseError struct {
	Cause   error
	Path    string
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates the document failed schema validation and must
// not be saved.
type ValidationError struct {
	Findings []Finding
}

func (e *ValidationError) Error() string {
	if len(e.Findings) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		msgs[i] = f.String()
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// WriteError indicates a file write failed (disk full, permissions, rename).
type WriteError struct {
	Cause error
	Path  string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// ArchiveError indicates a backup export failed.
type ArchiveError struct {
	Cause error
	Dest  string
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("failed to export archive %s: %v", e.Dest, e.Cause)
}

func (e *ArchiveError) Unwrap() error {
	return e.Cause
}
