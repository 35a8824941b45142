package respond

import (
	"fmt"
	"net/http"
)

// ErrorBody is the wire shape of every error response:
// {"error": "...", "details": ...}. Details carries a map of field to
// reason, a list of unrecognized keys, or an opaque backend payload.
type ErrorBody struct {
	Error   string `json:"error"             cbor:"error"             example:"Validation error"`
	Details any    `json:"details,omitempty" cbor:"details,omitempty"`
}

// APIError is an error that renders as an ErrorBody with an HTTP status.
type APIError struct {
	Status  int
	Message string
	Details any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// StatusCode implements echo.HTTPStatusCoder for Echo's status code detection.
func (e *APIError) StatusCode() int {
	return e.Status
}

// Body returns the response envelope for the error.
func (e *APIError) Body() ErrorBody {
	return ErrorBody{Error: e.Message, Details: e.Details}
}

// WithDetails attaches a details payload and returns the error.
func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

// NewError creates an APIError with the given status code and message.
func NewError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// Error400 returns a 400 Bad Request APIError.
func Error400(message string) *APIError {
	return NewError(http.StatusBadRequest, message)
}

// Error401 returns a 401 Unauthorized APIError.
func Error401(message string) *APIError {
	return NewError(http.StatusUnauthorized, message)
}

// Error403 returns a 403 Forbidden APIError.
func Error403(message string) *APIError {
	return NewError(http.StatusForbidden, message)
}

// Error404 returns a 404 Not Found APIError.
func Error404(message string) *APIError {
	return NewError(http.StatusNotFound, message)
}

// Error409 returns a 409 Conflict APIError.
func Error409(message string) *APIError {
	return NewError(http.StatusConflict, message)
}

// Error500 returns a 500 Internal Server Error APIError.
func Error500(message string) *APIError {
	return NewError(http.StatusInternalServerError, message)
}

// Error503 returns a 503 Service Unavailable APIError.
func Error503(message string) *APIError {
	return NewError(http.StatusServiceUnavailable, message)
}
