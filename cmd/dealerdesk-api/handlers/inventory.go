package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dealerdesk/dealerdesk/internal/inventory"
	"github.com/dealerdesk/dealerdesk/internal/observability"
)

// defaultListLimit is how many vehicles the list endpoint returns when the
// caller does not pass a limit.
const defaultListLimit = 20

// InventoryHandler serves inventory browsing endpoints.
type InventoryHandler struct {
	logger *observability.Logger
	store  *inventory.Store
}

// NewInventoryHandler creates an inventory handler.
func NewInventoryHandler(logger *observability.Logger, store *inventory.Store) *InventoryHandler {
	return &InventoryHandler{logger: logger, store: store}
}

// InventoryListDTO is the response for GET /api/inventory.
type InventoryListDTO struct {
	Total    int                       `json:"total"`
	Vehicles []inventory.VehicleRecord `json:"vehicles"`
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid limit", "")
			return
		}
		limit = n
	}

	vehicles := h.store.First(limit)
	if vehicles == nil {
		vehicles = []inventory.VehicleRecord{}
	}
	h.writeJSON(w, http.StatusOK, InventoryListDTO{
		Total:    h.store.Count(),
		Vehicles: vehicles,
	})
}

// ByStock handles GET /api/inventory/{stockNumber}.
func (h *InventoryHandler) ByStock(w http.ResponseWriter, r *http.Request) {
	stockNumber := chi.URLParam(r, "stockNumber")

	rec, err := h.store.ByStock(stockNumber)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Vehicle not found", "")
			return
		}
		h.logger.Error().Err(err).Str("stock_number", stockNumber).Msg("Inventory lookup failed")
		h.writeError(w, http.StatusInternalServerError, "lookup failed", err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, rec)
}

// StatsDTO is the response for GET /api/stats.
type StatsDTO struct {
	Inventory  StatsInventoryDTO `json:"inventory"`
	PriceRange StatsPriceDTO     `json:"price_range"`
	Categories map[string]int    `json:"categories"`
}

// StatsInventoryDTO holds aggregate inventory counts.
type StatsInventoryDTO struct {
	TotalVehicles int `json:"total_vehicles"`
	Available     int `json:"available"`
	Featured      int `json:"featured"`
}

// StatsPriceDTO holds the price range. The average truncates toward zero.
type StatsPriceDTO struct {
	Min int `json:"min"`
	Max int `json:"max"`
	Avg int `json:"avg"`
}

// Stats handles GET /api/stats.
func (h *InventoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.store.ComputeStats()
	h.writeJSON(w, http.StatusOK, StatsDTO{
		Inventory: StatsInventoryDTO{
			TotalVehicles: stats.TotalVehicles,
			Available:     stats.Available,
			Featured:      stats.Featured,
		},
		PriceRange: StatsPriceDTO{
			Min: stats.MinPrice,
			Max: stats.MaxPrice,
			Avg: stats.AvgPrice,
		},
		Categories: stats.Categories,
	})
}

func (h *InventoryHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *InventoryHandler) writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
