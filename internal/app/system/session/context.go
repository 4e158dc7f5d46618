package session

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// WithStore returns a copy of ctx carrying st.
func WithStore(ctx context.Context, st *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, st)
}

// FromContext returns the Store installed by Bridge.Middleware.
func FromContext(ctx context.Context) (*Store, bool) {
	st, ok := ctx.Value(ctxKey{}).(*Store)
	return st, ok && st != nil
}

// FromRequest returns the request's Store, or an empty one when none was
// installed, so readers never deal with nil.
func FromRequest(r *http.Request) *Store {
	if st, ok := FromContext(r.Context()); ok {
		return st
	}
	return New()
}

// Current is shorthand for FromRequest(r).Read().
func Current(r *http.Request) Session {
	return FromRequest(r).Read()
}
