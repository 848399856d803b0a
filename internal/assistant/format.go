package assistant

import (
	"fmt"
	"strings"

	"github.com/dealerdesk/dealerdesk/internal/inventory"
	"github.com/dealerdesk/dealerdesk/internal/knowledge"
)

const (
	// presentationLimit caps how many matched vehicles make it into a prompt.
	presentationLimit = 3

	// summaryFeatureLimit caps the listed features per vehicle summary.
	summaryFeatureLimit = 5

	// safetyFeatureLimit caps the knowledge-base safety bullets per model.
	safetyFeatureLimit = 5
)

// FormatVehicleSummary renders one inventory listing as a markdown block,
// enriched with powertrain detail when the knowledge base knows the model.
func FormatVehicleSummary(rec *inventory.VehicleRecord, entry *knowledge.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**%d %s %s** (Stock #%s)\n", rec.Year, rec.Make, rec.Model, rec.StockNumber)
	fmt.Fprintf(&b, "- **Price**: $%s\n", formatThousands(rec.Price))
	fmt.Fprintf(&b, "- **Mileage**: %s miles\n", formatThousands(rec.Mileage))
	if rec.Condition != "" {
		fmt.Fprintf(&b, "- **Condition**: %s\n", rec.Condition)
	}
	if rec.FuelEconomy.CombinedMPG > 0 {
		fmt.Fprintf(&b, "- **Fuel Economy**: %d MPG combined\n", rec.FuelEconomy.CombinedMPG)
	}
	if rec.SafetyRating.Overall > 0 {
		fmt.Fprintf(&b, "- **Safety Rating**: %d/5 stars\n", rec.SafetyRating.Overall)
	}
	if len(rec.Features) > 0 {
		features := rec.Features
		if len(features) > summaryFeatureLimit {
			features = features[:summaryFeatureLimit]
		}
		fmt.Fprintf(&b, "- **Key Features**: %s\n", strings.Join(features, ", "))
	}

	if entry != nil {
		if entry.Powertrain.Engine != "" {
			fmt.Fprintf(&b, "- **Engine**: %s\n", entry.Powertrain.Engine)
		}
		if entry.Powertrain.Horsepower != "" {
			fmt.Fprintf(&b, "- **Horsepower**: %s\n", entry.Powertrain.Horsepower)
		}
		if entry.Powertrain.Seating != "" {
			fmt.Fprintf(&b, "- **Seating**: %s\n", entry.Powertrain.Seating)
		}
	}

	return b.String()
}

// formatKnowledgeContext renders the knowledge-base safety highlights for the
// distinct (make, model) pairs among the matches. Unknown pairs are skipped.
func formatKnowledgeContext(base *knowledge.Base, matches []inventory.VehicleRecord) string {
	if base == nil || len(matches) == 0 {
		return ""
	}

	seen := make(map[string]bool)
	var b strings.Builder
	for i := range matches {
		rec := &matches[i]
		key := strings.ToLower(rec.Make + " " + rec.Model)
		if seen[key] {
			continue
		}
		seen[key] = true

		features := base.SafetyFeatures(rec.Make, rec.Model, safetyFeatureLimit)
		if len(features) == 0 {
			continue
		}
		fmt.Fprintf(&b, "- **%s %s** safety: %s\n", rec.Make, rec.Model, strings.Join(features, ", "))
	}

	if b.Len() == 0 {
		return ""
	}
	return "\nManufacturer Safety Highlights:\n" + b.String()
}

// formatThousands renders a non-negative integer with comma separators.
func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
