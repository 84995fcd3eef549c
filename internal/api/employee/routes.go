package employee

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers employee routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.SearchEmployees)
		r.Get("/count", h.CountEmployees)
	})
}
