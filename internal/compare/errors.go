package compare

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Error categories for comparator and viewer failures
const (
	// ErrMissingData means a required input or artifact file does not exist
	ErrMissingData = "missing_data"

	// ErrParse means a file exists but is not a valid structured document
	ErrParse = "parse_error"

	// ErrInvalidInput represents validation errors in input parameters
	ErrInvalidInput = "invalid_input"
)

const (
	// MissingDataHint is the instruction shown when the comparison artifact is absent.
	MissingDataHint = "run the generation step first: archcompare generate"
	// MissingInputHint is the instruction shown when a comparator input is absent.
	MissingInputHint = "run the architecture generator first"
)

// Error represents a comparison failure with context about which file or
// path it concerns.
type Error struct {
	// Category helps with programmatic error handling
	Category string

	// Message provides human-readable details
	Message string

	// Path identifies the file or document path involved (if applicable)
	Path string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path: %s)", e.Category, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap returns the underlying error (for errors.Is/As support)
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a new error with the given category and details
func NewError(category, message, path string, underlying error) *Error {
	return &Error{
		Category:   category,
		Message:    message,
		Path:       path,
		Underlying: underlying,
	}
}

// NewMissingDataError reports an absent file together with the generation hint.
func NewMissingDataError(path string, underlying error) *Error {
	return NewError(ErrMissingData, "comparison data not found, "+MissingDataHint, path, underlying)
}

// NewMissingInputError reports an absent comparator input and names the
// directory the generator is expected to write it to.
func NewMissingInputError(path string, underlying error) *Error {
	msg := fmt.Sprintf("input not found, %s and check its outputs in %s", MissingInputHint, filepath.Dir(path))
	return NewError(ErrMissingData, msg, path, underlying)
}

// NewParseError reports a malformed document.
func NewParseError(path string, underlying error) *Error {
	msg := "malformed document"
	if underlying != nil {
		msg = fmt.Sprintf("malformed document: %v", underlying)
	}
	return NewError(ErrParse, msg, path, underlying)
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category string) bool {
	if err == nil {
		return false
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Category == category
	}

	return false
}

// IsMissingData is shorthand for IsErrorCategory(err, ErrMissingData).
func IsMissingData(err error) bool {
	return IsErrorCategory(err, ErrMissingData)
}

// IsParseError is shorthand for IsErrorCategory(err, ErrParse).
func IsParseError(err error) bool {
	return IsErrorCategory(err, ErrParse)
}
