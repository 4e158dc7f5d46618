package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrIncompleteLogin is a 2xx login answer without a token or user object.
var ErrIncompleteLogin = errors.New("login response missing token or user")

// LoginResult is the backend's answer to a successful sign-in.
type LoginResult struct {
	Token string         `json:"token"`
	User  map[string]any `json:"user"`
}

// Login exchanges credentials for a token and user record. A 2xx answer
// without a token or user object wraps both ErrUnexpectedContent and
// ErrIncompleteLogin.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/api/auth/login",
		in: map[string]string{
			"username": username,
			"password": password,
		},
		out: &out,
	})
	if err != nil {
		return LoginResult{}, err
	}
	if out.Token == "" || out.User == nil {
		return LoginResult{}, fmt.Errorf("%w: %w", ErrUnexpectedContent, ErrIncompleteLogin)
	}
	return out, nil
}
