package compare

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	// Test error with path
	err1 := NewError(ErrParse, "test message", "data/baseline.json", nil)
	expected1 := "parse_error: test message (path: data/baseline.json)"
	assert.Equal(t, expected1, err1.Error(), "Error message doesn't match expected format")

	// Test error without path
	err2 := NewError(ErrInvalidInput, "test message", "", nil)
	expected2 := "invalid_input: test message"
	assert.Equal(t, expected2, err2.Error(), "Error message doesn't match expected format")
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NewError(ErrInvalidInput, "wrapper", "", cause)

	assert.Equal(t, cause, err.Unwrap(), "Unwrap should return the underlying error")
}

func TestNewMissingDataError(t *testing.T) {
	err := NewMissingDataError("output/comparison.json", os.ErrNotExist)

	assert.True(t, IsMissingData(err))
	assert.True(t, errors.Is(err, os.ErrNotExist), "missing data errors keep the filesystem cause")
	assert.Contains(t, err.Error(), MissingDataHint, "the message must tell the user how to produce the data")
}

func TestNewMissingInputError(t *testing.T) {
	err := NewMissingInputError(filepath.Join("comparison_output", "baseline.json"), os.ErrNotExist)

	assert.True(t, IsMissingData(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), MissingInputHint)
	assert.Contains(t, err.Error(), "check its outputs in comparison_output")
	assert.NotContains(t, err.Error(), "archcompare generate", "the comparator must not point at itself")
}

func TestNewParseError(t *testing.T) {
	err := NewParseError("baseline.json", fmt.Errorf("unexpected end of JSON input"))

	assert.True(t, IsParseError(err))
	assert.Equal(t, "parse_error: malformed document: unexpected end of JSON input (path: baseline.json)", err.Error())
}

func TestIsErrorCategory(t *testing.T) {
	// Direct error
	err1 := NewError(ErrInvalidInput, "test message", "", nil)
	assert.True(t, IsErrorCategory(err1, ErrInvalidInput), "Should identify correct category")
	assert.False(t, IsErrorCategory(err1, ErrParse), "Should not match wrong category")

	// Wrapped error
	cause := fmt.Errorf("root cause")
	innerErr := NewError(ErrMissingData, "inner", "file.json", cause)
	outerErr := fmt.Errorf("outer wrapper: %w", innerErr)

	assert.True(t, IsErrorCategory(outerErr, ErrMissingData), "Should find category in wrapped error")
	assert.False(t, IsErrorCategory(outerErr, ErrInvalidInput), "Should not match wrong category in wrapped error")

	// Nil error
	assert.False(t, IsErrorCategory(nil, ErrInvalidInput), "Should return false for nil error")

	// Regular error
	regularErr := fmt.Errorf("regular error")
	assert.False(t, IsErrorCategory(regularErr, ErrInvalidInput), "Should return false for regular error")
}
