package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

const (
	MsgUnexpected  = "An unexpected error occurred"
	MsgServerError = "The server encountered an error. Please try again later."
	MsgNoResponse  = "No response from server. Please check your connection."
)

var ErrNotFound = errors.New("sosa: not found")

// ErrorKind is the user-facing error category.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindValidation
	KindNotFound
	KindServer
	KindRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// APIError is the single error shape surfaced by the client and services.
type APIError struct {
	Message   string              `json:"message"`
	Status    int                 `json:"status"`
	ErrorCode string              `json:"error_code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Kind      ErrorKind           `json:"-"`

	cause error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api %d: %s", e.Status, e.Message)
	}
	return "api: " + e.Message
}

func (e *APIError) Unwrap() error { return e.cause }

// Is lets errors.Is(err, ErrNotFound) match not-found API errors.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// WithCause attaches the underlying error for errors.Is/As and logging.
func (e *APIError) WithCause(err error) *APIError {
	e.cause = err
	return e
}

// NewStatusError classifies a non-2xx response. 500 bodies are never shown to users.
func NewStatusError(status int, message, code string, fields map[string][]string) *APIError {
	if message == "" {
		message = MsgUnexpected
	}
	e := &APIError{Message: message, Status: status, ErrorCode: code, Errors: fields}
	switch {
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status >= 500:
		e.Kind = KindServer
		if status == http.StatusInternalServerError {
			e.Message = MsgServerError
		}
	case status >= 400:
		e.Kind = KindValidation
	}
	return e
}

// NewNetworkError is used when no response was received at all.
func NewNetworkError(cause error) *APIError {
	return (&APIError{
		Message: MsgNoResponse,
		Status:  http.StatusInternalServerError,
		Kind:    KindNetwork,
	}).WithCause(cause)
}

// NewRequestError wraps a local failure that happened before anything was sent.
func NewRequestError(cause error) *APIError {
	msg := MsgUnexpected
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return (&APIError{Message: msg, Kind: KindRequest}).WithCause(cause)
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsNetwork(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Kind == KindNetwork
}

// IsCanceled reports caller-side cancellation, which is not a user-facing failure.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Message returns the user-facing text for err, falling back to def.
func Message(err error, def string) string {
	if ae, ok := AsAPIError(err); ok && ae.Message != "" {
		return ae.Message
	}
	return def
}
