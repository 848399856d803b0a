// Package knowledge provides the manufacturer-specification lookup table.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dealerdesk/dealerdesk/internal/observability"
)

// Powertrain holds drivetrain specification detail for a model.
type Powertrain struct {
	Engine       string `json:"engine,omitempty"`
	Horsepower   string `json:"horsepower,omitempty"`
	Torque       string `json:"torque,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Seating      string `json:"seating,omitempty"`
	Cargo        string `json:"cargo,omitempty"`
	Towing       string `json:"towing,omitempty"`
}

// FeatureSet groups manufacturer features into the three named categories.
type FeatureSet struct {
	Safety     []string `json:"safety,omitempty"`
	Technology []string `json:"technology,omitempty"`
	Comfort    []string `json:"comfort,omitempty"`
}

// Warranty holds the standard warranty terms.
type Warranty struct {
	Basic      string `json:"basic,omitempty"`
	Powertrain string `json:"powertrain,omitempty"`
	Roadside   string `json:"roadside,omitempty"`
}

// Entry is one manufacturer specification sheet, keyed by (make, model).
// The key deliberately has no year dimension: the same specs apply to every
// model-year present in inventory.
type Entry struct {
	Make       string            `json:"make"`
	Model      string            `json:"model"`
	Year       int               `json:"year,omitempty"`
	Overview   string            `json:"overview,omitempty"`
	Powertrain Powertrain        `json:"powertrain"`
	Features   FeatureSet        `json:"features"`
	Dimensions map[string]string `json:"dimensions,omitempty"`
	Warranty   Warranty          `json:"warranty"`
	Source     string            `json:"source,omitempty"`
}

// Base is the read-only in-memory knowledge table.
type Base struct {
	entries []Entry
}

// NewBase builds a base from already-decoded entries.
func NewBase(entries []Entry) *Base {
	return &Base{entries: entries}
}

// LoadBase reads the knowledge base JSON document. A missing file logs a
// warning and yields an empty base rather than refusing to start.
func LoadBase(path string, logger *observability.Logger) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", path).Msg("Knowledge base not found, starting empty")
			return NewBase(nil), nil
		}
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}

	logger.Info().Int("entries", len(entries)).Str("path", path).Msg("Loaded knowledge base")
	return NewBase(entries), nil
}

// Count returns the number of entries in the base.
func (b *Base) Count() int {
	return len(b.entries)
}

// All returns every entry. Callers must not mutate the returned slice.
func (b *Base) All() []Entry {
	return b.entries
}

// Lookup scans for a case-insensitive exact match on (make, model). The table
// is expected to carry at most one entry per pair; first match wins as the
// tie-break.
func (b *Base) Lookup(make, model string) (*Entry, bool) {
	for i := range b.entries {
		e := &b.entries[i]
		if strings.EqualFold(e.Make, make) && strings.EqualFold(e.Model, model) {
			return e, true
		}
	}
	return nil, false
}

// SafetyFeatures returns up to limit safety feature names for the pair, or
// nil when the pair is unknown.
func (b *Base) SafetyFeatures(make, model string, limit int) []string {
	entry, ok := b.Lookup(make, model)
	if !ok || len(entry.Features.Safety) == 0 {
		return nil
	}
	features := entry.Features.Safety
	if limit > 0 && len(features) > limit {
		features = features[:limit]
	}
	return features
}
