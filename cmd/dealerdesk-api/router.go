// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dealerdesk/dealerdesk/cmd/dealerdesk-api/handlers"
	"github.com/dealerdesk/dealerdesk/cmd/dealerdesk-api/middleware"
	"github.com/dealerdesk/dealerdesk/internal/config"
	"github.com/dealerdesk/dealerdesk/internal/observability"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, deps *Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))

	healthHandler := handlers.NewHealthHandler(cfg.Observability.ServiceName, deps.Inventory)
	inventoryHandler := handlers.NewInventoryHandler(logger, deps.Inventory)
	chatHandler := handlers.NewChatHandler(logger, deps.Assistant)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/inventory", inventoryHandler.List)
		r.Get("/inventory/{stockNumber}", inventoryHandler.ByStock)
		r.Get("/stats", inventoryHandler.Stats)
		r.Post("/chat", chatHandler.Chat)
	})

	return r
}
