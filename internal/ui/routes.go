package ui

import (
	"github.com/go-chi/chi/v5"

	"github.com/RMahshie/concrete-strength/internal/inference"
)

// SetupRoutes registers the form routes.
func SetupRoutes(router chi.Router, svc inference.PredictionService) {
	handlers := NewHandlers(svc)

	router.Get("/", handlers.FormPage)
	router.Route("/form", func(r chi.Router) {
		r.Get("/table", handlers.FormTable)
		r.Post("/predict", handlers.Predict)
	})
}
