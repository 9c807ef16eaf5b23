package model

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ErrorCode classifies every failure a caller can observe from the service
// or its client.
type ErrorCode string

const (
	ErrorUnauthenticated   ErrorCode = "unauthenticated"
	ErrorInvalidTransition ErrorCode = "invalid-transition"
	ErrorMissingComment    ErrorCode = "missing-comment"
	ErrorValidation        ErrorCode = "validation-error"
	ErrorNetwork           ErrorCode = "network-error"
	ErrorNotFound          ErrorCode = "not-found"
)

// ApiError is the uniform error shape surfaced by both the API and the
// client. Issues carries per-field validation messages when present.
type ApiError struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"error"`
	Issues  map[string]string `json:"issues,omitempty"`
}

// Error satisfies the error interface.
func (e *ApiError) Error() string {
	return e.Message
}

// NewApiError builds an ApiError with the given code and message.
func NewApiError(code ErrorCode, message string) *ApiError {
	return &ApiError{Code: code, Message: message}
}

// NewValidationError builds a ValidationError carrying field-level issues.
func NewValidationError(message string, issues map[string]string) *ApiError {
	return &ApiError{Code: ErrorValidation, Message: message, Issues: issues}
}

// NewNetworkError wraps a transport failure in the uniform error shape.
func NewNetworkError(err error) *ApiError {
	return &ApiError{Code: ErrorNetwork, Message: err.Error()}
}

// StatusCode maps an ErrorCode to the HTTP status the API responds with.
func (e *ApiError) StatusCode() int {
	switch e.Code {
	case ErrorUnauthenticated:
		return http.StatusUnauthorized
	case ErrorInvalidTransition:
		return http.StatusConflict
	case ErrorMissingComment, ErrorValidation:
		return http.StatusBadRequest
	case ErrorNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewApiErrorFromResponse normalizes a non-2xx HTTP response into an
// ApiError. Structured bodies are trusted as-is; anything else collapses
// into a code derived from the status line.
func NewApiErrorFromResponse(resp *http.Response) *ApiError {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(errors.Wrap(err, "failed to read error response body"))
	}

	var apiErr ApiError
	if err := json.Unmarshal(bodyBytes, &apiErr); err == nil && apiErr.Code != "" {
		return &apiErr
	}

	message := string(bodyBytes)
	if message == "" {
		message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return NewApiError(ErrorUnauthenticated, message)
	case http.StatusNotFound:
		return NewApiError(ErrorNotFound, message)
	case http.StatusConflict:
		return NewApiError(ErrorInvalidTransition, message)
	case http.StatusBadRequest:
		return NewApiError(ErrorValidation, message)
	default:
		return NewApiError(ErrorNetwork, message)
	}
}
