// Package apierr provides structured error handling for the SDK.
// Every error carries a stable code for programmatic handling and a
// human-readable message; errors are returned inside Response envelopes
// rather than raised across the API boundary.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Code identifies an error class for programmatic handling.
type Code string

const (
	// CodeTransport covers non-2xx HTTP responses from the service.
	CodeTransport Code = "TransportError"

	// CodeSchema covers service responses that could not be parsed into
	// the expected shape. The raw body is attached as context.
	CodeSchema Code = "SchemaError"

	// CodeSpecSchema covers job specification bodies that could not be
	// (de)serialized.
	CodeSpecSchema Code = "SpecSchemaError"

	// CodeInvalidScene covers malformed ContextScene / CCOrientations
	// documents.
	CodeInvalidScene Code = "InvalidSceneError"

	// CodeMissingReference covers scene references that cannot be
	// translated by the reference table.
	CodeMissingReference Code = "MissingReferenceError"

	// CodeTransferCancelled is returned when a progress hook requested
	// cancellation of a bulk transfer.
	CodeTransferCancelled Code = "TransferCancelled"

	// CodeTransferFailed covers unrecoverable bulk transfer errors.
	CodeTransferFailed Code = "TransferFailed"

	// CodeInvalidState covers operations attempted in an invalid state,
	// such as cancelling a terminal job.
	CodeInvalidState Code = "InvalidStateError"

	// CodeUnknown is the fallback when the service reports an error the
	// SDK cannot classify.
	CodeUnknown Code = "UnknownError"
)

// Error is the base error type for all SDK errors.
type Error struct {
	Code    Code
	Message string
	Status  int // HTTP status, 0 when the error did not cross the wire
	Cause   error
	Context map[string]interface{}

	// Details carries per-item service error details, when present.
	Details []Detail
}

// Detail is a nested service error entry.
type Detail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Status != 0 {
		sb.WriteString(fmt.Sprintf(" (http %d)", e.Status))
	}

	if len(e.Context) > 0 {
		sb.WriteString(" (")
		first := true
		for k, v := range e.Context {
			if !first {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s=%v", k, v))
			first = false
		}
		sb.WriteString(")")
	}

	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext attaches a key/value pair to the error.
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new Error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping a cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the code from an error, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// AsError converts any error to *Error, wrapping foreign errors under the
// given fallback code.
func AsError(err error, fallback Code) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: fallback, Message: err.Error(), Cause: err}
}

// serviceErrorBody is the wire shape of a service error response.
type serviceErrorBody struct {
	Error struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []Detail `json:"details"`
	} `json:"error"`
}

// FromService decodes a non-2xx response body into an Error. When the body
// does not match the documented error shape, a synthetic UnknownError is
// returned with the raw body attached.
func FromService(status int, body []byte) *Error {
	var wire serviceErrorBody
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error.Code != "" {
		return &Error{
			Code:    CodeTransport,
			Message: wire.Error.Message,
			Status:  status,
			Details: wire.Error.Details,
			Context: map[string]interface{}{"serviceCode": wire.Error.Code},
		}
	}
	return &Error{
		Code:    CodeUnknown,
		Message: fmt.Sprintf("unexpected service response (http %d)", status),
		Status:  status,
		Context: map[string]interface{}{"body": string(body)},
	}
}

// ServiceCode returns the service-reported error code, if any.
func (e *Error) ServiceCode() string {
	if c, ok := e.Context["serviceCode"].(string); ok {
		return c
	}
	return ""
}
