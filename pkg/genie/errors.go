package genie

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ConfigurationError reports a client constructed without required
// settings.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return "genie: " + e.Message }

// ErrEmptySpace reports a space whose export carried no serialized
// configuration.
var ErrEmptySpace = errors.New("genie: space export returned empty serialized_space")

// APIError is the generic error for API responses with status >= 400.
// Body holds the decoded error payload; non-JSON bodies are kept under
// the "raw" key. Specific statuses decode to AuthenticationError,
// NotFoundError, or ValidationError, each of which unwraps to its
// embedded APIError.
type APIError struct {
	StatusCode int
	Message    string
	Body       map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("genie: %d: %s", e.StatusCode, e.Message)
}

// AuthenticationError reports a 401 response.
type AuthenticationError struct{ APIError }

func (e *AuthenticationError) Unwrap() error { return &e.APIError }

// NotFoundError reports a 404 response.
type NotFoundError struct{ APIError }

func (e *NotFoundError) Unwrap() error { return &e.APIError }

// ValidationError reports a 400 response rejecting the submitted
// document or payload.
type ValidationError struct{ APIError }

func (e *ValidationError) Unwrap() error { return &e.APIError }

// IsAuthentication reports whether err is a 401 authentication failure.
func IsAuthentication(err error) bool {
	var e *AuthenticationError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a 404 for the requested resource.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsValidation reports whether err is a 400 validation rejection.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// AsAPIError extracts the API error carried anywhere in err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// parseAPIError decodes a JSON error body; non-JSON bodies are kept raw.
func parseAPIError(statusCode int, body []byte) error {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		payload = map[string]any{"raw": string(body)}
	}

	detail := "unknown error"
	if m, ok := payload["message"].(string); ok {
		detail = m
	}

	base := APIError{StatusCode: statusCode, Body: payload}
	switch statusCode {
	case http.StatusUnauthorized:
		base.Message = "authentication failed: check your token and permissions"
		return &AuthenticationError{base}
	case http.StatusNotFound:
		base.Message = "resource not found: " + detail
		return &NotFoundError{base}
	case http.StatusBadRequest:
		base.Message = "validation error: " + detail
		return &ValidationError{base}
	default:
		base.Message = "API error: " + detail
		return &base
	}
}
