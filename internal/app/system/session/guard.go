package session

import (
	"net/http"
	"strings"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// RequireSession lets the request through only when the request's Store
// holds a token. Presence is the whole check; the token is not inspected.
//
// When the token is missing:
//   - HTMX: HX-Redirect to /login with 401, so the whole page swaps
//   - JSON callers: plain 401
//   - everything else: 303 to /login
//
// A redirect never leaves the guarded URL in the browser history, so Back
// cannot return to it.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromRequest(r).State() == Authenticated {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", LoginPath)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if wantsJSON(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
	})
}

// RedirectIfSignedIn sends visitors who already hold a session away from
// public-only pages (the login form) to the app root.
func RedirectIfSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && FromRequest(r).State() == Authenticated {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// wantsJSON is true only when the caller asks for JSON and not HTML.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
