package inventory

import "strings"

// maxResults caps every filtered result set; truncation happens after
// filtering, so original store order decides which records survive the cap.
const maxResults = 10

// SearchCriteria is a sparse structured filter. A zero/nil field means "no
// constraint on this dimension", never "match empty".
type SearchCriteria struct {
	MaxPrice *int     `json:"max_price,omitempty"`
	MinPrice *int     `json:"min_price,omitempty"`
	Category Category `json:"category,omitempty"`
	Make     string   `json:"make,omitempty"`
	Year     *int     `json:"year,omitempty"`
	Features []string `json:"features,omitempty"`
}

// IsEmpty reports whether no dimension is constrained.
func (c SearchCriteria) IsEmpty() bool {
	return c.MaxPrice == nil && c.MinPrice == nil && c.Category == "" &&
		c.Make == "" && c.Year == nil && len(c.Features) == 0
}

// Search applies the criteria as a conjunction over the store, preserving
// original order, excluding unavailable vehicles, capped at 10 results.
func (s *Store) Search(criteria SearchCriteria) []VehicleRecord {
	results := make([]VehicleRecord, 0, maxResults)

	for _, rec := range s.records {
		if !matches(rec, criteria) {
			continue
		}
		if !rec.Available {
			continue
		}
		results = append(results, rec)
		if len(results) == maxResults {
			break
		}
	}
	return results
}

func matches(rec VehicleRecord, c SearchCriteria) bool {
	if c.MaxPrice != nil && rec.Price > *c.MaxPrice {
		return false
	}
	if c.MinPrice != nil && rec.Price < *c.MinPrice {
		return false
	}
	if c.Category != "" && !strings.EqualFold(string(rec.Category), string(c.Category)) {
		return false
	}
	if c.Make != "" && !strings.EqualFold(rec.Make, c.Make) {
		return false
	}
	if c.Year != nil && rec.Year != *c.Year {
		return false
	}
	for _, feature := range c.Features {
		if !rec.HasFeature(feature) {
			return false
		}
	}
	return true
}
