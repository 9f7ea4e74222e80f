package main

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	apperrors "github.com/pmehra7/summingbird/pkg/errors"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// suggestionFor picks a hint matching the failure class of err.
func suggestionFor(err error) string {
	var (
		parseErr  *apperrors.ParseError
		valErr    *apperrors.ValidationError
		graphErr  *apperrors.InvalidGraphError
		sourceErr *apperrors.SourceError
		multi     *multierror.Error
	)

	switch {
	case errors.As(err, &sourceErr):
		return "Check that the topology path or git reference (URL[#branch]//path) exists and is readable."
	case errors.As(err, &parseErr):
		return "Fix the YAML syntax near the reported line."
	case errors.As(err, &multi), errors.As(err, &valErr):
		return "Fix the listed topology fields; 'summingbird validate' reports every problem at once."
	case errors.As(err, &graphErr):
		return "Make sure every merge reads from two different operators and every operator has its inputs."
	default:
		return "Re-run with --verbose for planner decisions."
	}
}
