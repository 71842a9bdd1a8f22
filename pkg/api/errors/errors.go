// Package errors defines the error values served by the HTTP API as JSON
// bodies. Every error carries the HTTP status code it maps to.
package errors

import (
	"fmt"
	"net/http"
)

// ApiError is implemented by every error the API hands back to clients.
// Implementations must marshal to JSON.
type ApiError interface {
	error
	GetHttpCode() int
}

type genericError struct {
	Err      string `json:"error"`
	Message  string `json:"message"`
	HttpCode int    `json:"-"`
}

func (e *genericError) Error() string {
	return e.Message
}

func (e *genericError) GetHttpCode() int {
	return e.HttpCode
}

// EvaluationFailedError reports an instruction the calculator rejected. The
// Err field names the evaluation failure kind and Logs keeps the diagnostic
// trace collected before the failure.
type EvaluationFailedError struct {
	genericError
	Logs []string `json:"logs,omitempty"`
}

func NewEvaluationFailedError(kind, message string, logs []string) *EvaluationFailedError {
	return &EvaluationFailedError{
		genericError: genericError{
			Err:      kind,
			Message:  message,
			HttpCode: http.StatusBadRequest,
		},
		Logs: logs,
	}
}

// ProgramNotFoundError reports an invocation of an address the runtime has no
// program registered at.
type ProgramNotFoundError struct {
	genericError
}

func NewProgramNotFoundError(address string) *ProgramNotFoundError {
	return &ProgramNotFoundError{
		genericError: genericError{
			Err:      "ProgramNotFound",
			Message:  fmt.Sprintf("no program registered at address '%s'", address),
			HttpCode: http.StatusNotFound,
		},
	}
}

// InvalidRequestError reports a request body the API could not parse.
type InvalidRequestError struct {
	genericError
}

func NewInvalidRequestError(message string) *InvalidRequestError {
	return &InvalidRequestError{
		genericError: genericError{
			Err:      "InvalidRequest",
			Message:  message,
			HttpCode: http.StatusBadRequest,
		},
	}
}

// UnknownError wraps any failure the API has no dedicated representation for.
type UnknownError struct {
	genericError
	inner error
}

func NewUnknownError(inner error) *UnknownError {
	return &UnknownError{
		genericError: genericError{
			Err:      "Unknown",
			Message:  "internal server error",
			HttpCode: http.StatusInternalServerError,
		},
		inner: inner,
	}
}

func (e *UnknownError) Unwrap() error {
	return e.inner
}
