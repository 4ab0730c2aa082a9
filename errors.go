package element

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the ELEMENT client.
// All errors are defined here for easy discovery and consistent organization.
var (
	// Construction errors
	ErrEmptyAPIKey      = errors.New("element: API key cannot be empty")
	ErrInvalidBaseURL   = errors.New("element: base URL must start with http:// or https://")
	ErrInvalidSocketURL = errors.New("element: socket URL must start with ws:// or wss://")

	// Authentication errors
	ErrUnauthorized = errors.New("element: unauthorized (invalid API key)")

	// Resource errors
	ErrNotFound = errors.New("element: resource not found")

	// Rate limiting
	ErrRateLimited = errors.New("element: rate limited (too many requests)")

	// Validation errors
	ErrEmptyDeviceID     = errors.New("element: device ID cannot be empty")
	ErrEmptyTagID        = errors.New("element: tag ID cannot be empty")
	ErrEmptyInterfaceID  = errors.New("element: interface ID cannot be empty")
	ErrEmptyActionID     = errors.New("element: action ID cannot be empty")
	ErrInvalidStreamType = errors.New("element: stream type must be readings or packets")

	// Socket errors
	ErrSocketClosed = errors.New("element: socket is closed")
)

// APIError represents an error response from the ELEMENT API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("element: API error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized returns true if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsNotFound returns true if the error indicates the resource was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// IsTimeout returns true if the error indicates a timeout.
func IsTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
