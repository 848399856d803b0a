// Package handlers provides HTTP handlers for the DealerDesk API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dealerdesk/dealerdesk/internal/inventory"
)

// HealthHandler serves the health check endpoints.
type HealthHandler struct {
	service   string
	inventory *inventory.Store
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service string, store *inventory.Store) *HealthHandler {
	return &HealthHandler{service: service, inventory: store}
}

// Root handles GET / and GET /health.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":          "healthy",
		"service":         h.service,
		"inventory_count": h.inventory.Count(),
	})
}
