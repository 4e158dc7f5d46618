// Package authflow signs a user in against the backend and installs the
// resulting session in a Store.
package authflow

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"go.uber.org/zap"
)

// Credentials is the submitted login form.
type Credentials struct {
	Username string
	Password string
}

// Validate trims the username and requires both fields. The password is
// passed on untrimmed but must not be blank.
func (c Credentials) Validate() (Credentials, error) {
	c.Username = strings.TrimSpace(c.Username)
	if c.Username == "" || strings.TrimSpace(c.Password) == "" {
		return c, &ValidationError{Message: MsgFillAllFields}
	}
	return c, nil
}

// Authenticator is the backend login call.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (apiclient.LoginResult, error)
}

// Service runs the sign-in flow.
type Service struct {
	api Authenticator
	log *zap.Logger
}

func New(api Authenticator, logger *zap.Logger) *Service {
	return &Service{api: api, log: logger}
}

// SignIn validates creds, calls the backend and, on success, logs st in.
// st is only changed if it still has the generation it had before the call.
// Persisting the session is left to the caller.
func (s *Service) SignIn(ctx context.Context, st *session.Store, creds Credentials) (session.Session, error) {
	creds, err := creds.Validate()
	if err != nil {
		return session.Session{}, err
	}

	gen := st.Generation()
	res, err := s.api.Login(ctx, creds.Username, creds.Password)
	if ctx.Err() != nil {
		s.log.Debug("login response arrived after request ended",
			zap.String("username", creds.Username),
			zap.Error(ctx.Err()))
		return session.Session{}, ErrStaleResponse
	}
	if err != nil {
		return session.Session{}, s.classify(creds.Username, err)
	}

	if err := st.LoginIfCurrent(gen, session.User(res.User), res.Token); err != nil {
		if errors.Is(err, session.ErrStaleSession) {
			return session.Session{}, ErrStaleResponse
		}
		return session.Session{}, &AuthenticationError{Message: MsgLoginFailed}
	}
	return st.Read(), nil
}

func (s *Service) classify(username string, err error) error {
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &apiErr):
		return &AuthenticationError{
			StatusCode: apiErr.StatusCode,
			Message:    apiclient.MessageOr(err, MsgLoginFailed),
		}
	case errors.Is(err, apiclient.ErrIncompleteLogin):
		s.log.Warn("login response missing token or user", zap.String("username", username))
		return &AuthenticationError{Message: MsgLoginFailed}
	case errors.Is(err, apiclient.ErrUnexpectedContent):
		s.log.Warn("login response unusable", zap.String("username", username), zap.Error(err))
		return &NetworkError{Err: err}
	default:
		s.log.Warn("login request failed", zap.String("username", username), zap.Error(err))
		return &NetworkError{Err: err}
	}
}
