package session

import "errors"

var (
	// ErrInvalidSession is returned by Login when the user is nil or the
	// token is blank.
	ErrInvalidSession = errors.New("session: user and token are both required")

	// ErrStaleSession is returned by LoginIfCurrent when the Store changed
	// after the caller captured its generation.
	ErrStaleSession = errors.New("session: store changed since generation was read")

	// ErrMalformedRecord means the persisted record could not be decoded.
	// Hydrate treats it as "signed out".
	ErrMalformedRecord = errors.New("session: malformed persisted record")
)
