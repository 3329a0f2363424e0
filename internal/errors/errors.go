package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrRecordNotFound is returned by repositories when a record does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrValidation marks one or more field-level rule violations.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced user or post that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation such as a duplicate email.
	ErrConflict = errors.New("conflict")
	// ErrForbidden marks a caller that lacks permission for the operation.
	ErrForbidden = errors.New("permission denied")
	// ErrPrecondition marks a destructive operation invoked without confirmation.
	ErrPrecondition = errors.New("precondition failed")
)

// Failure is a categorized business failure carrying an ordered list of
// human-readable messages. It unwraps to its category sentinel.
type Failure struct {
	Kind     error
	Messages []string
}

// NewFailure creates a failure of the given category. At least one message is
// always present; the category text is used when none is supplied.
func NewFailure(kind error, messages ...string) *Failure {
	if len(messages) == 0 {
		messages = []string{kind.Error()}
	}
	return &Failure{Kind: kind, Messages: messages}
}

func (f *Failure) Error() string {
	return strings.Join(f.Messages, "; ")
}

func (f *Failure) Unwrap() error {
	return f.Kind
}

// Validation creates a validation failure from the collected messages.
func Validation(messages ...string) *Failure {
	return NewFailure(ErrValidation, messages...)
}

// NotFound creates a not-found failure with a single message.
func NotFound(message string) *Failure {
	return NewFailure(ErrNotFound, message)
}

// Conflict creates a conflict failure with a single message.
func Conflict(message string) *Failure {
	return NewFailure(ErrConflict, message)
}

// Forbidden creates an authorization failure with a single message.
func Forbidden(message string) *Failure {
	return NewFailure(ErrForbidden, message)
}

// Precondition creates a precondition failure with a single message.
func Precondition(message string) *Failure {
	return NewFailure(ErrPrecondition, message)
}

// Messages returns the ordered message list carried by err. Errors that are not
// a *Failure yield their own text as the only message; nil yields nil.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		out := make([]string, len(f.Messages))
		copy(out, f.Messages)
		return out
	}
	return []string{err.Error()}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code"`
	Errors []string `json:"errors,omitempty"`
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

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse carrying the given
// detail messages.
func (e *HTTPError) ToErrorResponse(messages ...string) ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Errors: messages,
	}
}

// MapErrorToHTTP maps failure categories to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, "invalid data", "VALIDATION_ERROR")
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, "resource not found", "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, "resource conflict", "CONFLICT")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "permission denied", "FORBIDDEN")
	case errors.Is(err, ErrPrecondition):
		return NewHTTPError(http.StatusBadRequest, "confirmation required", "CONFIRMATION_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
