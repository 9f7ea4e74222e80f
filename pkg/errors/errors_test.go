package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("topology.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "topology.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: topology.yaml:12: unexpected token", err.Error())
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("topology.yaml", 0, stdErrors.New("boom"))
	require.Equal(t, "parse error: topology.yaml: boom", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("operators[1].input", "references unknown operator", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "operators[1].input", validationErr.Field)
	require.Contains(t, err.Error(), "references unknown operator")

	bare := NewValidationError("", "empty document", nil)
	require.Equal(t, "validation error: empty document", bare.Error())
}

func TestInvalidGraphErrorNamesOperator(t *testing.T) {
	t.Parallel()

	err := NewInvalidGraphError("both", "merge inputs must be distinct operators")

	var graphErr *InvalidGraphError
	require.ErrorAs(t, err, &graphErr)
	require.Equal(t, "both", graphErr.Operator)
	require.Equal(t, "invalid graph: operator both: merge inputs must be distinct operators", err.Error())
}

func TestSourceErrorWrapsCause(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("repository not found")
	err := NewSourceError("https://example.com/repo.git", underlying)

	var sourceErr *SourceError
	require.ErrorAs(t, err, &sourceErr)
	require.Equal(t, "https://example.com/repo.git", sourceErr.Location)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestNilReceiversAreSafe(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var validationErr *ValidationError
	var graphErr *InvalidGraphError
	var sourceErr *SourceError

	require.Empty(t, parseErr.Error())
	require.Nil(t, parseErr.Unwrap())
	require.Empty(t, validationErr.Error())
	require.Nil(t, validationErr.Unwrap())
	require.Empty(t, graphErr.Error())
	require.Empty(t, sourceErr.Error())
	require.Nil(t, sourceErr.Unwrap())
}
