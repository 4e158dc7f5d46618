// internal/app/features/login/routes.go
package login

import (
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"github.com/go-chi/chi/v5"
)

// Routes serves /login. A visitor who already holds a session is sent to
// the app instead of seeing the form again.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.With(session.RedirectIfSignedIn).Get("/", h.ServeLogin)
	r.Post("/", h.HandleLoginPost)
	return r
}
