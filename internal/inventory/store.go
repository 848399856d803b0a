package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dealerdesk/dealerdesk/internal/observability"
)

// ErrNotFound indicates the requested stock number is not in the store.
var ErrNotFound = errors.New("vehicle not found")

// Store is a read-only, load-once view of the dealership inventory.
// Records keep their original file order; the store is safe for concurrent
// readers without synchronization.
type Store struct {
	records []VehicleRecord
	byStock map[string]int
}

// NewStore builds a store from already-decoded records. Later duplicates of a
// stock number are dropped so the unique-stock-number invariant holds.
func NewStore(records []VehicleRecord) *Store {
	s := &Store{byStock: make(map[string]int, len(records))}
	for _, rec := range records {
		if _, dup := s.byStock[rec.StockNumber]; dup {
			continue
		}
		s.byStock[rec.StockNumber] = len(s.records)
		s.records = append(s.records, rec)
	}
	return s
}

// LoadStore reads the inventory JSON document. A missing file is not fatal:
// the store starts empty and the condition is logged, matching the startup
// behavior of the rest of the data layer.
func LoadStore(path string, logger *observability.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", path).Msg("Inventory file not found, starting with empty inventory")
			return NewStore(nil), nil
		}
		return nil, fmt.Errorf("read inventory: %w", err)
	}

	var records []VehicleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}

	store := NewStore(records)
	logger.Info().Int("vehicles", store.Count()).Str("path", path).Msg("Loaded inventory")
	return store, nil
}

// Count returns the number of records in the store.
func (s *Store) Count() int {
	return len(s.records)
}

// All returns every record in original order. Callers must not mutate the
// returned slice.
func (s *Store) All() []VehicleRecord {
	return s.records
}

// First returns up to limit records in original order.
func (s *Store) First(limit int) []VehicleRecord {
	if limit < 0 {
		limit = 0
	}
	if limit > len(s.records) {
		limit = len(s.records)
	}
	return s.records[:limit]
}

// ByStock looks up a record by its stock number.
func (s *Store) ByStock(stockNumber string) (VehicleRecord, error) {
	idx, ok := s.byStock[stockNumber]
	if !ok {
		return VehicleRecord{}, ErrNotFound
	}
	return s.records[idx], nil
}

// Stats summarizes the store for the stats endpoint.
type Stats struct {
	TotalVehicles int            `json:"total_vehicles"`
	Available     int            `json:"available"`
	Featured      int            `json:"featured"`
	MinPrice      int            `json:"min"`
	MaxPrice      int            `json:"max"`
	AvgPrice      int            `json:"avg"`
	Categories    map[string]int `json:"categories"`
}

// ComputeStats aggregates counts and the price range. The average uses
// integer division, truncating toward zero.
func (s *Store) ComputeStats() Stats {
	stats := Stats{Categories: make(map[string]int)}
	stats.TotalVehicles = len(s.records)

	sum := 0
	for i, rec := range s.records {
		if rec.Available {
			stats.Available++
		}
		if rec.Featured {
			stats.Featured++
		}

		cat := string(rec.Category)
		if cat == "" {
			cat = "other"
		}
		stats.Categories[cat]++

		sum += rec.Price
		if i == 0 || rec.Price < stats.MinPrice {
			stats.MinPrice = rec.Price
		}
		if rec.Price > stats.MaxPrice {
			stats.MaxPrice = rec.Price
		}
	}

	if len(s.records) > 0 {
		stats.AvgPrice = sum / len(s.records)
	}
	return stats
}
