package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealerdesk/dealerdesk/internal/inventory"
	"github.com/dealerdesk/dealerdesk/internal/knowledge"
)

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{28500, "28,500"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatThousands(tt.in))
	}
}

func TestFormatVehicleSummary(t *testing.T) {
	rec := &inventory.VehicleRecord{
		StockNumber: "AX10001",
		Year:        2023,
		Make:        "Honda",
		Model:       "CR-V",
		Price:       32500,
		Mileage:     12040,
		Condition:   "Used",
		FuelEconomy: inventory.FuelEconomy{CombinedMPG: 30},
		SafetyRating: inventory.SafetyRating{
			Overall: 5,
		},
		Features: []string{"Backup Camera", "Bluetooth", "Navigation System", "Heated Seats", "Sunroof", "Tow Package"},
	}

	t.Run("without knowledge entry", func(t *testing.T) {
		got := FormatVehicleSummary(rec, nil)
		assert.Contains(t, got, "**2023 Honda CR-V** (Stock #AX10001)")
		assert.Contains(t, got, "- **Price**: $32,500")
		assert.Contains(t, got, "- **Mileage**: 12,040 miles")
		assert.Contains(t, got, "- **Fuel Economy**: 30 MPG combined")
		assert.Contains(t, got, "- **Safety Rating**: 5/5 stars")
		assert.NotContains(t, got, "Engine")
		// Feature list is capped at five.
		assert.Contains(t, got, "Sunroof")
		assert.NotContains(t, got, "Tow Package")
	})

	t.Run("with knowledge entry", func(t *testing.T) {
		entry := &knowledge.Entry{
			Powertrain: knowledge.Powertrain{
				Engine:     "1.5L Turbo 4-cylinder",
				Horsepower: "190 hp",
				Seating:    "5 passengers",
			},
		}
		got := FormatVehicleSummary(rec, entry)
		assert.Contains(t, got, "- **Engine**: 1.5L Turbo 4-cylinder")
		assert.Contains(t, got, "- **Horsepower**: 190 hp")
		assert.Contains(t, got, "- **Seating**: 5 passengers")
	})

	t.Run("omits empty optional lines", func(t *testing.T) {
		minimal := &inventory.VehicleRecord{Year: 2022, Make: "Ford", Model: "F-150", StockNumber: "AX10002", Price: 41000}
		got := FormatVehicleSummary(minimal, nil)
		assert.NotContains(t, got, "Condition")
		assert.NotContains(t, got, "Fuel Economy")
		assert.NotContains(t, got, "Safety Rating")
		assert.NotContains(t, got, "Key Features")
	})
}

func TestFormatKnowledgeContext(t *testing.T) {
	base := knowledge.NewBase([]knowledge.Entry{
		{
			Make:  "Honda",
			Model: "CR-V",
			Features: knowledge.FeatureSet{
				Safety: []string{
					"Collision Mitigation", "Road Departure Mitigation", "Adaptive Cruise",
					"Lane Keeping", "Traffic Sign Recognition", "Blind Spot Information",
				},
			},
		},
	})

	matches := []inventory.VehicleRecord{
		{Make: "Honda", Model: "CR-V"},
		{Make: "Honda", Model: "CR-V"}, // duplicate pair collapses
		{Make: "Ford", Model: "Escape"},
	}

	got := formatKnowledgeContext(base, matches)
	assert.Contains(t, got, "Manufacturer Safety Highlights")
	assert.Equal(t, 1, strings.Count(got, "**Honda CR-V**"))
	// Safety bullets cap at five per model.
	assert.Contains(t, got, "Traffic Sign Recognition")
	assert.NotContains(t, got, "Blind Spot Information")
	assert.NotContains(t, got, "Escape")

	t.Run("empty when nothing known", func(t *testing.T) {
		unknown := []inventory.VehicleRecord{{Make: "Ford", Model: "Escape"}}
		assert.Empty(t, formatKnowledgeContext(base, unknown))
		assert.Empty(t, formatKnowledgeContext(base, nil))
	})
}
