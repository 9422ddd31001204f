package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Category classifies a failure for transport mapping. The category is the
// only detail a caller ever sees; internal causes stay server-side.
type Category string

const (
	// CategoryUnauthenticated covers missing, malformed, invalid and expired
	// credentials. All of them collapse to this one category on the wire.
	CategoryUnauthenticated Category = "UNAUTHENTICATED"
	// CategoryForbidden means the caller is authenticated but the role or
	// ownership check failed.
	CategoryForbidden Category = "FORBIDDEN"
	// CategoryNotFound means no record matched the (authorized) filter.
	CategoryNotFound Category = "NOT_FOUND"
	// CategoryValidation covers malformed ids, dates and missing fields.
	CategoryValidation Category = "VALIDATION"
	// CategoryConflict means a uniqueness constraint was violated.
	CategoryConflict Category = "CONFLICT"
	// CategoryTransient covers storage timeouts and connectivity failures;
	// the caller may safely retry the same request.
	CategoryTransient Category = "TRANSIENT"
	// CategoryInternal is everything else.
	CategoryInternal Category = "INTERNAL"
)

// Error is a categorized application error.
type Error struct {
	Cat     Category
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Public returns the message safe to show to a caller. Transient and
// internal failures never leak their cause.
func (e *Error) Public() string {
	switch e.Cat {
	case CategoryTransient:
		return "temporary storage failure, retry the request"
	case CategoryInternal:
		return "internal server error"
	default:
		return e.Message
	}
}

// New builds a categorized error.
func New(cat Category, message string) *Error {
	return &Error{Cat: cat, Message: message}
}

// Wrap builds a categorized error around a cause.
func Wrap(cat Category, message string, cause error) *Error {
	return &Error{Cat: cat, Message: message, cause: cause}
}

func Unauthenticated(message string) *Error { return New(CategoryUnauthenticated, message) }
func Forbidden(message string) *Error       { return New(CategoryForbidden, message) }
func NotFound(message string) *Error        { return New(CategoryNotFound, message) }
func Validation(message string) *Error      { return New(CategoryValidation, message) }
func Conflict(message string) *Error        { return New(CategoryConflict, message) }

// Transient wraps a storage failure that is safe to retry.
func Transient(cause error) *Error {
	return Wrap(CategoryTransient, "storage operation failed", cause)
}

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return Wrap(CategoryInternal, "internal error", cause)
}

// CategoryOf extracts the category of err, defaulting to CategoryInternal.
func CategoryOf(err error) Category {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Cat
	}
	return CategoryInternal
}

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps a categorized error to an HTTP error. Unknown errors
// map to 500 without exposing their message.
func MapErrorToHTTP(err error) *HTTPError {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "internal server error", Code: string(CategoryInternal)}
	}

	status := http.StatusInternalServerError
	switch appErr.Cat {
	case CategoryUnauthenticated:
		status = http.StatusUnauthorized
	case CategoryForbidden:
		status = http.StatusForbidden
	case CategoryNotFound:
		status = http.StatusNotFound
	case CategoryValidation:
		status = http.StatusBadRequest
	case CategoryConflict:
		status = http.StatusConflict
	case CategoryTransient:
		status = http.StatusServiceUnavailable
	}

	return &HTTPError{StatusCode: status, Message: appErr.Public(), Code: string(appErr.Cat)}
}
