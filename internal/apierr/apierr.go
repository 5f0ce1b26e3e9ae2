// Package apierr carries HTTP status and machine-readable codes alongside
// errors, and defines the JSON error envelope shared by the API server and
// its clients.
package apierr

import "fmt"

// Codes returned in the error envelope.
const (
	CodeBadRequest        = "bad_request"
	CodeNotFound          = "not_found"
	CodeQueueEmpty        = "queue_empty"
	CodeLessonUnavailable = "lesson_unavailable"
	CodeAdvanceInProgress = "advance_in_progress"
	CodeInternal          = "internal"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// APIError is the body of an error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Envelope wraps APIError as {"error": {...}}.
type Envelope struct {
	Error APIError `json:"error"`
}
