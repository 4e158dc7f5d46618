// Package session holds the signed-in identity for one page load and the
// machinery that keeps it in step with the browser cookie.
//
// A Store is created per request by Bridge.Middleware, hydrated from the
// persisted record, and carried in the request context. RequireSession reads
// it to decide whether a protected page may render.
package session

import (
	"strings"
	"sync/atomic"
)

// State is the guard's view of a Store.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Session is an immutable {user, token} pair. The zero value is the signed-out
// session.
type Session struct {
	User  User
	Token string
}

// Present reports whether the session carries a token.
func (s Session) Present() bool {
	return s.Token != ""
}

// snapshot is swapped as a whole so readers never see a user from one
// session next to a token from another.
type snapshot struct {
	sess Session
	gen  uint64
}

// Store is the single mutable holder of the current Session.
// It is safe for concurrent use.
type Store struct {
	cur atomic.Pointer[snapshot]
}

// New returns an empty (Unauthenticated) Store.
func New() *Store {
	st := &Store{}
	st.cur.Store(&snapshot{})
	return st
}

func (s *Store) load() *snapshot {
	if p := s.cur.Load(); p != nil {
		return p
	}
	return &snapshot{}
}

// Read returns the current session. It never blocks.
func (s *Store) Read() Session {
	return s.load().sess
}

// Generation changes on every Login and Logout. Callers that suspend between
// reading the Store and writing it compare generations to detect that
// someone else got there first.
func (s *Store) Generation() uint64 {
	return s.load().gen
}

// State reports Authenticated when a token is present.
func (s *Store) State() State {
	if s.Read().Present() {
		return Authenticated
	}
	return Unauthenticated
}

// Login replaces user and token in one step.
func (s *Store) Login(user User, token string) error {
	if user == nil || strings.TrimSpace(token) == "" {
		return ErrInvalidSession
	}
	for {
		old := s.load()
		next := &snapshot{sess: Session{User: user.Clone(), Token: token}, gen: old.gen + 1}
		if s.cas(old, next) {
			return nil
		}
	}
}

// LoginIfCurrent is Login guarded by the generation observed before the
// caller suspended. If the Store moved on in the meantime the result is
// discarded and ErrStaleSession is returned.
func (s *Store) LoginIfCurrent(gen uint64, user User, token string) error {
	if user == nil || strings.TrimSpace(token) == "" {
		return ErrInvalidSession
	}
	old := s.load()
	if old.gen != gen {
		return ErrStaleSession
	}
	next := &snapshot{sess: Session{User: user.Clone(), Token: token}, gen: gen + 1}
	if !s.cas(old, next) {
		return ErrStaleSession
	}
	return nil
}

// Logout clears both fields. Calling it on an empty Store leaves it empty.
func (s *Store) Logout() {
	for {
		old := s.load()
		next := &snapshot{gen: old.gen + 1}
		if s.cas(old, next) {
			return
		}
	}
}

func (s *Store) cas(old, next *snapshot) bool {
	if s.cur.Load() == nil {
		// zero-value Store: install the first snapshot directly.
		return s.cur.CompareAndSwap(nil, next)
	}
	return s.cur.CompareAndSwap(old, next)
}
