package session

import (
	"encoding/json"
	"fmt"
	"strings"
)

// User is the identity record returned by the backend at sign-in. Its shape
// belongs to the backend; this package only stores it and reads a few
// well-known fields for display.
type User map[string]any

// Username returns the "username" field, if any.
func (u User) Username() string {
	return u.str("username")
}

// Role returns the "role" field, if any.
func (u User) Role() string {
	return u.str("role")
}

// DisplayName prefers "name", then "username", then "email".
func (u User) DisplayName() string {
	for _, k := range []string{"name", "username", "email"} {
		if v := u.str(k); v != "" {
			return v
		}
	}
	return ""
}

func (u User) str(key string) string {
	if u == nil {
		return ""
	}
	if v, ok := u[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Clone returns a deep copy so callers cannot mutate a stored snapshot.
func (u User) Clone() User {
	if u == nil {
		return nil
	}
	out := make(User, len(u))
	for k, v := range u {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

// MarshalUser serializes a user record for the persisted cookie.
func MarshalUser(u User) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("marshal user: %w", err)
	}
	return string(b), nil
}

// UnmarshalUser parses a persisted user record. Anything other than a JSON
// object (including the literal null) is reported as ErrMalformedRecord.
func UnmarshalUser(raw string) (User, error) {
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user is not an object", ErrMalformedRecord)
	}
	return u, nil
}
