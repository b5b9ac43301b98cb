package parsererror

import "fmt"

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFrequencyError represents an error where a repetition frequency label
// is not one of the recognized values.
type InvalidFrequencyError struct {
	Frequency string
}

func (e *InvalidFrequencyError) Error() string {
	return fmt.Sprintf("invalid frequency '%s': must be one of daily, weekly, monthly, yearly", e.Frequency)
}

// InvalidDateError represents an error where a date field could not be
// interpreted in the expected layout.
type InvalidDateError struct {
	Value  string
	Layout string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date '%s': expected layout %s", e.Value, e.Layout)
}

// MalformedDocumentError represents an error where an imported document does not
// conform to the expected structure, even if it is syntactically readable.
type MalformedDocumentError struct {
	Field  string // Optional: the top-level field that failed validation
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed document: field '%s': %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed document: %s", e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// RowError represents an error scoped to a single statement row. It carries the
// one-based line number so callers can report or skip the row without
// abandoning the rest of the file.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
