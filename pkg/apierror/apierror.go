package apierror

import (
	"fmt"
	"net/http"
)

// APIError carries an HTTP status alongside the user-facing message.
// Details hold diagnostic context and are only serialized when set.
type APIError struct {
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Details)
	}

	return e.Message
}

func New(message string, details string, status int) *APIError {
	return &APIError{Message: message, Details: details, HTTPStatus: status}
}

func BadRequest(message string) *APIError {
	return New(message, "", http.StatusBadRequest)
}

func Unauthorized(message string) *APIError {
	return New(message, "", http.StatusUnauthorized)
}

func Forbidden(message string) *APIError {
	return New(message, "", http.StatusForbidden)
}

func NotFound(message string) *APIError {
	return New(message, "", http.StatusNotFound)
}

func Conflict(message string) *APIError {
	return New(message, "", http.StatusConflict)
}

func Internal(message string, details string) *APIError {
	return New(message, details, http.StatusInternalServerError)
}
