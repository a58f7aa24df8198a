// ABOUTME: Error taxonomy for BlogHub API calls
// ABOUTME: Separates transport failures, HTTP status errors and malformed responses

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport marks network-level failures: refused connections, timeouts, cancellation
	ErrTransport = errors.New("transport failure")

	// ErrInvalidResponse marks a 2xx response whose body could not be decoded
	ErrInvalidResponse = errors.New("invalid response from backend")
)

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Detail     string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// ErrorResponse is the backend's error body. Detail is either a string, a list of
// validation errors ({"msg": ...}) or an object with a "reason".
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

func (r ErrorResponse) message() string {
	if len(r.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(r.Detail, &s); err == nil {
		return s
	}

	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(r.Detail, &list); err == nil {
		for _, item := range list {
			if item.Msg != "" {
				return item.Msg
			}
		}
		return ""
	}

	var obj struct {
		Code   string `json:"code"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(r.Detail, &obj); err == nil {
		if obj.Reason != "" {
			return obj.Reason
		}
		return obj.Code
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// DetailOf returns the backend-supplied detail message carried by err, or ""
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// IsUnauthorized reports a 401 response
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden reports a 403 response
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsNotFound reports a 404 response
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
