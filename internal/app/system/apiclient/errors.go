package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnexpectedContent means the backend answered with something other
// than the JSON the call expects.
var ErrUnexpectedContent = errors.New("apiclient: unexpected response content")

// APIError is a non-2xx answer from the backend. Message is the backend's
// "message" field when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// NetworkError means no HTTP answer arrived: the connection failed, timed
// out, or the circuit breaker is open.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsUnauthorized reports a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// MessageOr returns the backend's message carried by err, or fallback when
// there is none.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// UserMessage picks the notice for a failed mutation: the backend's own
// message when it sent one, rejected for any other non-2xx answer, and
// unreachable when the backend could not be reached or understood.
func UserMessage(err error, rejected, unreachable string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return rejected
	}
	return unreachable
}
