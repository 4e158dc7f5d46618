package authflow

import (
	"errors"
)

// Messages shown to the user.
const (
	MsgFillAllFields   = "Please fill in all fields"
	MsgLoginFailed     = "Login failed"
	MsgServerError     = "Server Error, please try again later"
	MsgLoginSuccessful = "Login Successful"
)

// ErrStaleResponse means the backend answered after the session had moved
// on (signed out, signed in elsewhere, or the request was abandoned). The
// answer was discarded.
var ErrStaleResponse = errors.New("authflow: stale login response discarded")

// ValidationError is a blank-field submission caught before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthenticationError is a non-2xx answer from the login endpoint.
type AuthenticationError struct {
	StatusCode int
	Message    string
}

func (e *AuthenticationError) Error() string { return e.Message }

// NetworkError means the login request could not complete.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return MsgServerError }

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage is the notice to show for err. Stale responses produce no
// notice, so it returns "".
func UserMessage(err error) string {
	var ve *ValidationError
	var ae *AuthenticationError
	var ne *NetworkError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStaleResponse):
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ae):
		return ae.Message
	case errors.As(err, &ne):
		return MsgServerError
	default:
		return MsgServerError
	}
}
