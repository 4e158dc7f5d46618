// internal/app/features/tables/routes.go
package tables

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Post("/{id}/availability", h.HandleAvailability)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
