package errors

import (
	"fmt"
)

// ParseError represents a topology decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures topology document validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InvalidGraphError reports a logical graph that has no valid physical plan.
// Planning is aborted; the caller has to fix the graph.
type InvalidGraphError struct {
	Operator string
	Message  string
}

// NewInvalidGraphError constructs an InvalidGraphError for the named operator.
func NewInvalidGraphError(operator, message string) error {
	return &InvalidGraphError{Operator: operator, Message: message}
}

func (e *InvalidGraphError) Error() string {
	if e == nil {
		return ""
	}
	if e.Operator != "" {
		return fmt.Sprintf("invalid graph: operator %s: %s", e.Operator, e.Message)
	}
	return fmt.Sprintf("invalid graph: %s", e.Message)
}

// SourceError indicates a topology could not be fetched from its location.
type SourceError struct {
	Location string
	Err      error
}

// NewSourceError constructs a SourceError.
func NewSourceError(location string, err error) error {
	return &SourceError{Location: location, Err: err}
}

func (e *SourceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Location != "" {
		return fmt.Sprintf("source error [%s]: %v", e.Location, e.Err)
	}
	return fmt.Sprintf("source error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *SourceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
