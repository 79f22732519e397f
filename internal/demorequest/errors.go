package demorequest

import (
	"errors"
	"fmt"
)

// ErrorCode is the machine-readable failure class sent to clients.
type ErrorCode string

const (
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeHTTP       ErrorCode = "HTTP_ERROR"
	CodeTimeout    ErrorCode = "TIMEOUT_ERROR"
)

// ErrInvalidDate is returned for a timeslot date that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// APIError is the structured failure shared by both transports and the HTTP API.
type APIError struct {
	Success bool                `json:"success"`
	Message string              `json:"error"`
	Code    ErrorCode           `json:"code"`
	Details map[string][]string `json:"details,omitempty"`

	cause error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// NewAPIError builds an APIError with an optional underlying cause.
func NewAPIError(code ErrorCode, message string, details map[string][]string, cause error) *APIError {
	return &APIError{
		Success: false,
		Message: message,
		Code:    code,
		Details: details,
		cause:   cause,
	}
}

// NewValidationError builds a VALIDATION_ERROR with field messages.
func NewValidationError(message string, details map[string][]string) *APIError {
	return NewAPIError(CodeValidation, message, details, nil)
}

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Code == code
}
