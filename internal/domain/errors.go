package domain

import "fmt"

// Client-facing messages for rejected input
const (
	MsgMissingURL        = "Missing 'url' parameter in the request body."
	MsgInvalidURL        = "Invalid YouTube URL."
	MsgInvalidResolution = "Invalid resolution."
)

// InputError is returned when a request is rejected before any backend call
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// NewInputError creates an InputError for the given field
func NewInputError(field, message string) *InputError {
	return &InputError{Field: field, Message: message}
}

// BackendError is returned when extraction, download or caption retrieval fails.
// Message is exposed to clients unchanged.
type BackendError struct {
	Op      string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	return e.Message
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError wraps err, using its text as the client message
func NewBackendError(op string, err error) *BackendError {
	return &BackendError{Op: op, Message: err.Error(), Err: err}
}

// NewBackendErrorf creates a BackendError without an underlying cause
func NewBackendErrorf(op, format string, args ...interface{}) *BackendError {
	return &BackendError{Op: op, Message: fmt.Sprintf(format, args...)}
}
