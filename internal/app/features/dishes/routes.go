// internal/app/features/dishes/routes.go
package dishes

import "github.com/go-chi/chi/v5"

// Routes serves /dishes. Mutations are plain form posts followed by a
// redirect, so a reload never repeats them.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/new", h.ServeNew)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}/edit", h.ServeEdit)
	r.Post("/{id}", h.HandleUpdate)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
