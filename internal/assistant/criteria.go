// Package assistant implements the intent-routing and criteria-extraction
// pipeline behind the chat endpoint.
package assistant

import (
	"strings"

	"github.com/dealerdesk/dealerdesk/internal/inventory"
)

// priceRule maps literal numeric tokens to a fixed price ceiling. Only these
// three ceilings are recognized; there is no general numeric parsing. The
// comma spelling is part of the vocabulary only for 30,000.
type priceRule struct {
	tokens  []string
	ceiling int
}

var priceRules = []priceRule{
	{tokens: []string{"30k", "30000", "30,000"}, ceiling: 30000},
	{tokens: []string{"35k", "35000"}, ceiling: 35000},
	{tokens: []string{"25k", "25000"}, ceiling: 25000},
}

// categoryRule maps keywords to a category; first match wins in order.
type categoryRule struct {
	keywords []string
	category inventory.Category
}

var categoryRules = []categoryRule{
	{keywords: []string{"suv"}, category: inventory.CategorySUV},
	{keywords: []string{"truck"}, category: inventory.CategoryTruck},
	{keywords: []string{"sedan"}, category: inventory.CategorySedan},
	{keywords: []string{"electric", "ev"}, category: inventory.CategoryElectric},
}

// knownMakes is the fixed vocabulary of recognized manufacturers.
var knownMakes = []string{"honda", "toyota", "ford", "chevrolet", "nissan", "subaru", "mazda"}

// featureRule maps keyword groups to a canonical feature name. Every group
// is evaluated independently; check order decides output order.
type featureRule struct {
	keywords []string
	feature  string
}

var featureRules = []featureRule{
	{keywords: []string{"safety", "safe"}, feature: "Blind Spot Monitoring"},
	{keywords: []string{"navigation", "nav"}, feature: "Navigation System"},
	{keywords: []string{"leather"}, feature: "Leather Seats"},
}

// ExtractCriteria maps free text to a structured inventory filter by
// case-insensitive substring matching against a fixed vocabulary. It is pure:
// the same message always yields the same criteria.
func ExtractCriteria(message string) inventory.SearchCriteria {
	lower := strings.ToLower(message)
	var criteria inventory.SearchCriteria

	// A ceiling applies only when an "under"/"below" cue co-occurs with a
	// recognized token.
	if strings.Contains(lower, "under") || strings.Contains(lower, "below") {
		for _, rule := range priceRules {
			if containsAny(lower, rule.tokens) {
				ceiling := rule.ceiling
				criteria.MaxPrice = &ceiling
				break
			}
		}
	}

	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			criteria.Category = rule.category
			break
		}
	}

	for _, make := range knownMakes {
		if strings.Contains(lower, make) {
			criteria.Make = titleCase(make)
			break
		}
	}

	for _, rule := range featureRules {
		if containsAny(lower, rule.keywords) {
			criteria.Features = append(criteria.Features, rule.feature)
		}
	}

	return criteria
}

// titleCase uppercases the first byte of a lowercase ASCII word. The make
// vocabulary is single ASCII words, so no Unicode handling is needed.
func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
