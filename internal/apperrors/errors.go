package apperrors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the billing core. Wrapped errors are matched against these
// with errors.Is, and handlers map them to HTTP status codes via HTTPStatus.
var (
	ErrValidation  = newSentinel(CodeValidation, "invalid input")
	ErrAllocation  = newSentinel(CodeAllocation, "document number allocation failed")
	ErrComputation = newSentinel(CodeComputation, "invoice computation failed")
	ErrNotFound    = newSentinel(CodeNotFound, "resource not found")
	ErrDatabase    = newSentinel(CodeDatabase, "database error")
)

const (
	CodeValidation  = "validation_error"
	CodeAllocation  = "allocation_error"
	CodeComputation = "computation_error"
	CodeNotFound    = "not_found"
	CodeDatabase    = "database_error"
)

var statusCodes = map[error]int{
	ErrValidation:  http.StatusBadRequest,
	ErrAllocation:  http.StatusConflict,
	ErrComputation: http.StatusInternalServerError,
	ErrNotFound:    http.StatusNotFound,
	ErrDatabase:    http.StatusInternalServerError,
}

// Error is a coded application error. Code is machine-readable; Message is safe
// to show to the caller.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Err.Error())
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return errors.Is(e.Err, target)
	}
	return e.Code == t.Code
}

func newSentinel(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// New creates an error marked with the given sentinel so errors.Is matching works
// across wrap boundaries.
func New(sentinel *Error, message string) error {
	return errors.Mark(&Error{Code: sentinel.Code, Message: message}, sentinel)
}

// Newf is New with formatting.
func Newf(sentinel *Error, format string, args ...any) error {
	return New(sentinel, fmt.Sprintf(format, args...))
}

// Wrap attaches a cause to a coded error.
func Wrap(err error, sentinel *Error, message string) error {
	return errors.Mark(&Error{Code: sentinel.Code, Message: message, Err: err}, sentinel)
}

// HTTPStatus maps an error to the status code of its sentinel, defaulting to 500.
func HTTPStatus(err error) int {
	for sentinel, status := range statusCodes {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// Code extracts the machine-readable code from an error, defaulting to a generic
// database/system code for unrecognized errors.
func Code(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeDatabase
}

// Message extracts the caller-safe message from an error.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}

func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsAllocation(err error) bool  { return errors.Is(err, ErrAllocation) }
func IsComputation(err error) bool { return errors.Is(err, ErrComputation) }
func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
