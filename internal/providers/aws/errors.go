package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrorCategory classifies failures returned while capturing a snapshot.
type ErrorCategory string

const (
	// ErrResourceNotFound is returned when a requested instance doesn't exist
	ErrResourceNotFound ErrorCategory = "resource_not_found"

	// ErrPermissionDenied is returned when the EC2 API denies access
	ErrPermissionDenied ErrorCategory = "permission_denied"

	// ErrThrottling is returned when the EC2 API throttles the request
	ErrThrottling ErrorCategory = "request_throttled"

	// ErrConfigurationError is returned for missing region or credentials
	ErrConfigurationError ErrorCategory = "configuration_error"

	// ErrNetworkError is returned when the API endpoint cannot be reached
	ErrNetworkError ErrorCategory = "network_error"

	// ErrInvalidInput is returned for malformed instance IDs or parameters
	ErrInvalidInput ErrorCategory = "invalid_input"

	// ErrCanceled is returned when the caller gave up before the request finished
	ErrCanceled ErrorCategory = "canceled"

	// ErrInternalError is returned for anything not classified above
	ErrInternalError ErrorCategory = "internal_error"
)

// EC2ResourceType is the resource type reported on instance errors.
const EC2ResourceType = "EC2"

// Error is a classified EC2 failure.
type Error struct {
	Category     ErrorCategory
	ResourceType string
	// ResourceID is a single ID or a comma separated batch
	ResourceID string
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Category, e.Message)
	switch {
	case e.ResourceID != "":
		msg += fmt.Sprintf(" [resource: %s/%s]", e.ResourceType, e.ResourceID)
	case e.ResourceType != "":
		msg += fmt.Sprintf(" [resource type: %s]", e.ResourceType)
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewAWSError creates a new classified error.
func NewAWSError(category ErrorCategory, resourceType, resourceID, message string, underlying error) *Error {
	return &Error{
		Category:     category,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Message:      message,
		Underlying:   underlying,
	}
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category ErrorCategory) bool {
	var awsErr *Error
	if errors.As(err, &awsErr) {
		return awsErr.Category == category
	}
	return false
}

// codeCategories maps EC2 API error codes to categories, most specific first.
// https://docs.aws.amazon.com/AWSEC2/latest/APIReference/errors-overview.html
var codeCategories = []struct {
	code     string
	category ErrorCategory
}{
	{"InvalidInstanceID.NotFound", ErrResourceNotFound},
	{"InvalidInstanceID.Malformed", ErrInvalidInput},
	{"UnauthorizedOperation", ErrPermissionDenied},
	{"AuthFailure", ErrPermissionDenied},
	{"InvalidClientTokenId", ErrPermissionDenied},
	{"RequestLimitExceeded", ErrThrottling},
	{"Throttling", ErrThrottling},
	{"InvalidParameter", ErrInvalidInput},
	{"MalformedQueryString", ErrInvalidInput},
	{"ValidationError", ErrInvalidInput},
}

var categoryMessages = map[ErrorCategory]string{
	ErrResourceNotFound:   "Resource not found",
	ErrPermissionDenied:   "Access denied",
	ErrThrottling:         "Request throttled",
	ErrConfigurationError: "AWS SDK configuration error",
	ErrNetworkError:       "Network error while accessing AWS API",
	ErrInvalidInput:       "Invalid input",
	ErrCanceled:           "Request canceled",
	ErrInternalError:      "Internal error occurred",
}

// ClassifyAWSError wraps err in an *Error. API errors are classified by their
// code, everything else by well known message fragments.
func ClassifyAWSError(err error, resourceType, resourceID string) *Error {
	if err == nil {
		return nil
	}
	var awsErr *Error
	if errors.As(err, &awsErr) {
		return awsErr
	}

	category := classify(err)
	return NewAWSError(category, resourceType, resourceID, categoryMessages[category], err)
}

func classify(err error) ErrorCategory {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrCanceled
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		for _, c := range codeCategories {
			if c.code == apiErr.ErrorCode() {
				return c.category
			}
		}
	}

	msg := err.Error()
	for _, c := range codeCategories {
		if containsFold(msg, c.code) {
			return c.category
		}
	}

	switch {
	case containsFold(msg, "no such host", "connection refused", "timeout"):
		return ErrNetworkError
	case containsFold(msg, "could not find region", "failed to retrieve credentials", "no EC2 IMDS role found"):
		return ErrConfigurationError
	}
	return ErrInternalError
}

func containsFold(s string, substrings ...string) bool {
	s = strings.ToLower(s)
	for _, substr := range substrings {
		if strings.Contains(s, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}
