package datagen

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerdesk/dealerdesk/internal/inventory"
	"github.com/dealerdesk/dealerdesk/internal/knowledge"
	"github.com/dealerdesk/dealerdesk/internal/observability"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		model string
		want  inventory.Category
	}{
		{"CR-V", inventory.CategorySUV},
		{"RAV4", inventory.CategorySUV},
		{"Forester", inventory.CategorySUV},
		{"F-150", inventory.CategoryTruck},
		{"Silverado", inventory.CategoryTruck},
		{"Leaf", inventory.CategoryElectric},
		{"Odyssey", inventory.CategoryMinivan},
		{"Mustang", inventory.CategoryCoupe},
		{"Camry", inventory.CategorySedan},
		{"Civic", inventory.CategorySedan},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, categorize(tt.model), tt.model)
	}
}

func TestGenerateInventory(t *testing.T) {
	g := NewGenerator(42)
	records := g.GenerateInventory(SampleBaseVehicles(), 50)
	require.Len(t, records, 50)

	stockPattern := regexp.MustCompile(`^AX\d{5,}$`)
	vinPattern := regexp.MustCompile(`^[A-Z]{2}\d{8}[A-Z]{7}$`)
	seen := make(map[string]bool)

	for _, rec := range records {
		assert.Regexp(t, stockPattern, rec.StockNumber)
		assert.False(t, seen[rec.StockNumber], "stock numbers must be unique")
		seen[rec.StockNumber] = true

		assert.Regexp(t, vinPattern, rec.VIN)
		assert.NotEmpty(t, rec.Make)
		assert.NotEmpty(t, rec.Model)
		assert.Greater(t, rec.Price, 0)
		assert.GreaterOrEqual(t, rec.MSRP, rec.Price)
		assert.GreaterOrEqual(t, rec.Mileage, 0)
		assert.GreaterOrEqual(t, len(rec.Features), 5)
		assert.LessOrEqual(t, len(rec.Features), 10)
		assert.GreaterOrEqual(t, rec.SafetyRating.Overall, 3)
		assert.LessOrEqual(t, rec.SafetyRating.Overall, 5)
		assert.GreaterOrEqual(t, rec.DaysOnLot, 1)
		assert.LessOrEqual(t, rec.DaysOnLot, 90)

		if rec.SpecialPrice != 0 {
			assert.Less(t, rec.SpecialPrice, rec.Price)
		}
		if rec.Condition == "New" {
			assert.LessOrEqual(t, rec.Mileage, 100)
		}
		if rec.Certified {
			assert.Equal(t, "Certified Pre-Owned", rec.Condition)
		}
	}

	// Stock numbers start at AX10000 and increment.
	assert.Equal(t, "AX10000", records[0].StockNumber)
	assert.Equal(t, "AX10001", records[1].StockNumber)
}

func TestGenerateInventoryIsDeterministicPerSeed(t *testing.T) {
	first := NewGenerator(7).GenerateInventory(SampleBaseVehicles(), 10)
	second := NewGenerator(7).GenerateInventory(SampleBaseVehicles(), 10)
	for i := range first {
		// ArrivalDate depends on wall-clock time; everything else must match.
		first[i].ArrivalDate = ""
		second[i].ArrivalDate = ""
	}
	assert.Equal(t, first, second)
}

func TestPriceRespectsCategoryBand(t *testing.T) {
	g := NewGenerator(1)
	for i := 0; i < 200; i++ {
		p := g.price(inventory.CategorySUV, 2024, 1.0)
		assert.GreaterOrEqual(t, p, 28000)
		assert.LessOrEqual(t, p, 52000)
	}
}

func TestBuildKnowledgeBase(t *testing.T) {
	entries := BuildKnowledgeBase(SampleBaseVehicles())

	byKey := make(map[string]knowledge.Entry)
	for _, e := range entries {
		byKey[e.Make+" "+e.Model] = e
	}

	// Only Honda and Toyota have spec templates.
	require.Len(t, entries, 4)
	require.Contains(t, byKey, "Honda CR-V")
	require.Contains(t, byKey, "Honda Civic")
	require.Contains(t, byKey, "Toyota RAV4")
	require.Contains(t, byKey, "Toyota Camry")

	crv := byKey["Honda CR-V"]
	assert.Equal(t, "190 hp @ 5,600 rpm", crv.Powertrain.Horsepower)
	assert.NotEmpty(t, crv.Features.Safety)
	assert.Equal(t, "3 years / 36,000 miles", crv.Warranty.Basic)
	assert.Contains(t, crv.Overview, "Honda CR-V")

	// SUV dimensions differ from sedan dimensions.
	assert.NotEqual(t, crv.Dimensions["height"], byKey["Honda Civic"].Dimensions["height"])
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	logger := observability.Nop()

	g := NewGenerator(3)
	records := g.GenerateInventory(SampleBaseVehicles(), 12)
	invPath := filepath.Join(dir, "inventory.json")
	require.NoError(t, SaveInventory(invPath, records))

	store, err := inventory.LoadStore(invPath, logger)
	require.NoError(t, err)
	assert.Equal(t, 12, store.Count())

	entries := BuildKnowledgeBase(SampleBaseVehicles())
	kbPath := filepath.Join(dir, "kb.json")
	require.NoError(t, SaveKnowledgeBase(kbPath, entries))

	base, err := knowledge.LoadBase(kbPath, logger)
	require.NoError(t, err)
	assert.Equal(t, len(entries), base.Count())
	_, ok := base.Lookup("honda", "cr-v")
	assert.True(t, ok)
}
