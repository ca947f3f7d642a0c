package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the calculator page and its JSON API onto r.
func RegisterRoutes(r chi.Router) {
	r.Get("/", Page)
	r.Post("/", Submit)
	r.Post("/api/calculate", Calculate)
}
