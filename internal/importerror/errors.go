// Package importerror defines the typed errors produced by statement imports
// and record loading.
package importerror

import "fmt"

// MissingColumnsError aborts a whole statement import before any matching
// runs: the file does not carry the required tabular columns.
type MissingColumnsError struct {
	FilePath string
	Missing  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("statement %s is missing required columns %v", e.FilePath, e.Missing)
}

// RowError marks a single unparseable statement row. The row is skipped and
// the rest of the import proceeds.
type RowError struct {
	Row    int
	Field  string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: failed to parse %s=%q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// SourceError wraps a failure to read one of the raw record collections.
// Callers leave previously computed state untouched when they see it.
type SourceError struct {
	Collection string
	Condo      string
	Err        error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to read %s collection for condo %s: %v", e.Collection, e.Condo, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
