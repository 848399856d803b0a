// Package crm persists sales leads and test-drive appointments as flat JSON
// documents, read and written wholesale.
package crm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Lead is a CRM lead captured from a qualified conversation.
type Lead struct {
	LeadID       string    `json:"lead_id"`
	CustomerName string    `json:"customer_name"`
	Interest     string    `json:"interest"`
	Budget       string    `json:"budget"`
	Timeline     string    `json:"timeline"`
	ContactInfo  string    `json:"contact_info"`
	CreatedAt    time.Time `json:"created_at"`
	Status       string    `json:"status"`
}

// LeadStore appends leads to a flat JSON file. A process-wide mutex
// serializes writers; lead numbering by table length is not collision-safe
// across processes, which matches the upstream CRM contract.
type LeadStore struct {
	mu   sync.Mutex
	path string
}

// NewLeadStore creates a store writing to path.
func NewLeadStore(path string) *LeadStore {
	return &LeadStore{path: path}
}

// Create appends a new lead and returns it with its assigned ID.
func (s *LeadStore) Create(lead Lead) (Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := loadJSON[Lead](s.path)
	if err != nil {
		return Lead{}, err
	}

	lead.LeadID = fmt.Sprintf("LEAD-%d", len(leads)+1001)
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	if lead.Status == "" {
		lead.Status = "new"
	}
	if lead.Budget == "" {
		lead.Budget = "Not specified"
	}
	if lead.Timeline == "" {
		lead.Timeline = "Not specified"
	}

	leads = append(leads, lead)
	if err := saveJSON(s.path, leads); err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// All returns every stored lead.
func (s *LeadStore) All() ([]Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadJSON[Lead](s.path)
}

// loadJSON reads a whole JSON array document, treating a missing file as
// an empty table.
func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}

// saveJSON writes the whole document back, creating parent directories.
func saveJSON[T any](path string, items []T) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
