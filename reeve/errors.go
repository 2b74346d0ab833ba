package reeve

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError is the base error for failures reported by the Reeve API.
// It is returned directly when a logically-successful HTTP response
// still carries a populated error field in its body.
type APIError struct {
	// Message is the flattened, human-readable error message.
	Message string
	// StatusCode is the HTTP status code of the response, if any.
	StatusCode int
	// Response is the parsed response body the error was extracted from.
	Response map[string]any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// AuthenticationError indicates an authentication failure (401 Unauthorized).
type AuthenticationError struct {
	APIError
}

// ValidationError indicates a request validation failure (400 Bad Request).
type ValidationError struct {
	APIError
}

// NotFoundError indicates a missing resource (404 Not Found).
type NotFoundError struct {
	APIError
}

// ConflictError indicates a conflicting request (409 Conflict).
type ConflictError struct {
	APIError
}

// ServerError indicates a generic API failure. It covers every error
// status code not mapped to a more specific type.
type ServerError struct {
	APIError
}

func newAuthenticationError(message string, status int, response map[string]any) *AuthenticationError {
	if status == 0 {
		status = http.StatusUnauthorized
	}
	return &AuthenticationError{APIError{Message: message, StatusCode: status, Response: response}}
}

func newValidationError(message string, status int, response map[string]any) *ValidationError {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return &ValidationError{APIError{Message: message, StatusCode: status, Response: response}}
}

func newNotFoundError(message string, status int, response map[string]any) *NotFoundError {
	if status == 0 {
		status = http.StatusNotFound
	}
	return &NotFoundError{APIError{Message: message, StatusCode: status, Response: response}}
}

func newConflictError(message string, status int, response map[string]any) *ConflictError {
	if status == 0 {
		status = http.StatusConflict
	}
	return &ConflictError{APIError{Message: message, StatusCode: status, Response: response}}
}

func newServerError(message string, status int, response map[string]any) *ServerError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &ServerError{APIError{Message: message, StatusCode: status, Response: response}}
}

// flattenErrorPayload normalizes a heterogeneous error payload into one
// message string. The API reports errors as bare strings, objects (with a
// "Message" or "message" key) or lists, depending on the endpoint; this
// always produces a string and never fails.
func flattenErrorPayload(payload any) string {
	switch v := payload.(type) {
	case string:
		return v
	case map[string]any:
		if m, ok := v["Message"]; ok {
			if list, ok := m.([]any); ok {
				return joinPayloadList(list)
			}
			return fmt.Sprint(m)
		}
		if m, ok := v["message"]; ok {
			return fmt.Sprint(m)
		}
		return fmt.Sprint(v)
	case []any:
		return joinPayloadList(v)
	default:
		return fmt.Sprint(v)
	}
}

func joinPayloadList(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprint(item))
	}
	return strings.Join(parts, "; ")
}
