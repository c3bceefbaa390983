package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a client error.
type Kind int

const (
	// KindTransport indicates the request never completed: unreachable
	// host, connection refused, timeout, or a malformed base URL.
	KindTransport Kind = iota
	// KindAPI indicates the backend answered with a non-2xx status.
	KindAPI
	// KindContract indicates the backend answered with a success status
	// but the response is missing data the caller requires.
	KindContract
)

// String returns a human-readable name for the error kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "Transport Error"
	case KindAPI:
		return "API Error"
	case KindContract:
		return "Contract Error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error type returned by client operations.
type Error struct {
	Kind       Kind
	StatusCode int    // HTTP status code, set for KindAPI
	Message    string // Human-readable message shown to the user
	Err        error  // Underlying error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportError creates a transport-level error.
func NewTransportError(message string, err error) *Error {
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

// NewAPIError creates an error for a non-2xx backend response.
// If message is empty, the HTTP status text is used.
func NewAPIError(statusCode int, message string) *Error {
	if message == "" {
		message = statusText(statusCode)
	}
	return &Error{Kind: KindAPI, StatusCode: statusCode, Message: message}
}

// NewContractError creates an error for a success response that is missing
// required data.
func NewContractError(message string) *Error {
	return &Error{Kind: KindContract, Message: message}
}

// IsTransportError checks whether err is a transport error.
func IsTransportError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTransport
}

// IsAPIError checks whether err is a non-2xx backend error.
func IsAPIError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAPI
}

// IsContractError checks whether err is a contract error.
func IsContractError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindContract
}

// StatusCode returns the HTTP status code carried by err, or 0 if err is
// not an API error.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// UserMessage returns the message that should be displayed to the user for
// any error coming out of this package. For API errors this is the
// backend's own message (or status text fallback) verbatim.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("cannot reach backend: %s", e.Message)
	default:
		return e.Message
	}
}

// statusText returns the standard text for an HTTP status code, with a
// numeric fallback for codes the standard library does not know.
func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", code)
}
