package interview

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/interview", func(r chi.Router) {
		r.Post("/", h.Interview)
		r.Post("/report", h.Report)
	})
}
