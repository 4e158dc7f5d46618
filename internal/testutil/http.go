package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/dalemusser/lordsadmin/internal/app/system/session"
)

// TestToken is the bearer token the fake backend issues.
const TestToken = "abc123"

// TestUser represents the identity record the backend returns at sign-in.
type TestUser struct {
	Username string
	Name     string
	Role     string
}

// AdminUser returns the default signed-in user.
func AdminUser() TestUser {
	return TestUser{Username: "admin", Name: "Test Admin", Role: "admin"}
}

// StaffUser returns a non-admin user.
func StaffUser() TestUser {
	return TestUser{Username: "waiter", Name: "Test Waiter", Role: "staff"}
}

// Record converts the user into a session.User.
func (u TestUser) Record() session.User {
	rec := session.User{"username": u.Username, "role": u.Role}
	if u.Name != "" {
		rec["name"] = u.Name
	}
	return rec
}

// WithUser installs a signed-in session Store on the request.
// This bypasses the cookie bridge and injects the session directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	st := session.New()
	_ = st.Login(user.Record(), TestToken)
	return r.WithContext(session.WithStore(r.Context(), st))
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// NewFormRequest creates a urlencoded form request.
func NewFormRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// CarryCookies copies the cookies rec set onto req, keeping only the last
// write per name the way a browser would.
func CarryCookies(rec *httptest.ResponseRecorder, req *http.Request) *http.Request {
	latest := map[string]*http.Cookie{}
	var order []string
	for _, c := range rec.Result().Cookies() {
		if _, seen := latest[c.Name]; !seen {
			order = append(order, c.Name)
		}
		latest[c.Name] = c
	}
	for _, name := range order {
		req.AddCookie(latest[name])
	}
	return req
}

// FindCookie returns the last cookie named name set on rec, or nil.
func FindCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
