// Package apperr defines the error taxonomy every route-level failure is
// mapped to before it reaches a client.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-readable error codes returned in the response envelope.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeConflict           = "CONFLICT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidTokenFormat = "INVALID_TOKEN_FORMAT"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
)

// FieldError describes a single validation failure on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an application error carrying the HTTP status and code it maps to.
type Error struct {
	Code    string
	Status  int
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Cause returns the wrapped underlying error, if any.
func (e *Error) Cause() error {
	return e.cause
}

// Validation reports one or more field-level input violations.
func Validation(fields ...FieldError) *Error {
	return &Error{
		Code:    CodeValidation,
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// Conflict reports a uniqueness violation, such as a duplicate email.
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Status: http.StatusConflict, Message: message}
}

// InvalidCredentials is the single generic login failure. It is intentionally
// identical for an unknown email and a wrong password.
func InvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Status: http.StatusUnauthorized, Message: "Invalid email or password"}
}

// MissingToken reports an absent Authorization header.
func MissingToken() *Error {
	return &Error{Code: CodeMissingToken, Status: http.StatusUnauthorized, Message: "Authorization token is required"}
}

// InvalidTokenFormat reports an Authorization header with no usable token segment.
func InvalidTokenFormat() *Error {
	return &Error{Code: CodeInvalidTokenFormat, Status: http.StatusUnauthorized, Message: "Authorization header format must be 'Bearer <token>'"}
}

// TokenExpired reports a well-formed token past its expiry.
func TokenExpired() *Error {
	return &Error{Code: CodeTokenExpired, Status: http.StatusUnauthorized, Message: "Token has expired"}
}

// InvalidToken reports a token with a bad signature or structure.
func InvalidToken() *Error {
	return &Error{Code: CodeInvalidToken, Status: http.StatusUnauthorized, Message: "Invalid authorization token"}
}

// NotFound reports an absent resource. Owner-scoped lookups return it for
// resources owned by someone else as well, so ownership never leaks.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: message}
}

// Internal wraps an unexpected failure. The underlying detail is only exposed
// to clients in development mode.
func Internal(err error) *Error {
	return &Error{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		cause:   err,
	}
}

// From converts any error into an *Error, wrapping unknown errors as Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
