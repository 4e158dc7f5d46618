// internal/app/features/orders/routes.go
package orders

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/{id}/status", h.HandleStatus)
	return r
}
