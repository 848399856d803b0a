// Package datagen produces the synthetic dealership datasets the service
// loads at startup.
package datagen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/inventory"
)

// BaseVehicle is the seed a listing is generated from.
type BaseVehicle struct {
	Year        int
	Make        string
	Model       string
	FuelEconomy inventory.FuelEconomy
}

// SampleBaseVehicles returns the built-in seed set used when no external
// vehicle data source is available.
func SampleBaseVehicles() []BaseVehicle {
	return []BaseVehicle{
		{Year: 2024, Make: "Honda", Model: "CR-V", FuelEconomy: inventory.FuelEconomy{CombinedMPG: 30}},
		{Year: 2024, Make: "Toyota", Model: "RAV4", FuelEconomy: inventory.FuelEconomy{CombinedMPG: 29}},
		{Year: 2024, Make: "Ford", Model: "F-150", FuelEconomy: inventory.FuelEconomy{CombinedMPG: 22}},
		{Year: 2024, Make: "Honda", Model: "Civic", FuelEconomy: inventory.FuelEconomy{CombinedMPG: 36}},
		{Year: 2024, Make: "Toyota", Model: "Camry", FuelEconomy: inventory.FuelEconomy{CombinedMPG: 32}},
		{Year: 2024, Make: "Subaru", Model: "Forester", FuelEconomy: inventory.FuelEconomy{CombinedMPG: 29}},
		{Year: 2024, Make: "Mazda", Model: "CX-5", FuelEconomy: inventory.FuelEconomy{CombinedMPG: 27}},
		{Year: 2024, Make: "Chevrolet", Model: "Silverado", FuelEconomy: inventory.FuelEconomy{CombinedMPG: 21}},
	}
}

// priceRanges holds the base price band per category, before year and
// condition depreciation.
var priceRanges = map[inventory.Category][2]int{
	inventory.CategorySedan:    {22000, 38000},
	inventory.CategorySUV:      {28000, 52000},
	inventory.CategoryTruck:    {32000, 65000},
	inventory.CategoryCoupe:    {25000, 48000},
	inventory.CategoryMinivan:  {30000, 45000},
	inventory.CategoryElectric: {35000, 75000},
}

var defaultPriceRange = [2]int{25000, 45000}

// weightedColor is an exterior color with its market share.
type weightedColor struct {
	name   string
	weight float64
}

var exteriorColors = []weightedColor{
	{"White", 0.25},
	{"Black", 0.20},
	{"Gray", 0.15},
	{"Silver", 0.12},
	{"Blue", 0.10},
	{"Red", 0.08},
	{"Green", 0.05},
	{"Bronze", 0.05},
}

// conditionBand ties a condition label to its mileage range and price factor.
type conditionBand struct {
	condition string
	minMiles  int
	maxMiles  int
	factor    float64
}

var conditionBands = []conditionBand{
	{"New", 0, 100, 1.0},
	{"Certified Pre-Owned", 5000, 25000, 0.85},
	{"Used - Excellent", 15000, 45000, 0.75},
	{"Used - Good", 30000, 75000, 0.60},
}

var featurePool = []string{
	"Navigation System",
	"Backup Camera",
	"Blind Spot Monitoring",
	"Leather Seats",
	"Sunroof",
	"Heated Seats",
	"Apple CarPlay/Android Auto",
	"Adaptive Cruise Control",
	"Lane Keeping Assist",
	"Wireless Charging",
	"360-Degree Camera",
	"Premium Audio System",
}

var (
	trims          = []string{"Base", "LX", "EX", "EX-L", "Touring", "Limited"}
	interiorColors = []string{"Black", "Gray", "Beige", "Brown"}
	transmissions  = []string{"Automatic", "8-Speed Automatic", "CVT"}
	drivetrains    = []string{"FWD", "AWD", "4WD", "RWD"}
	lotLocations   = []string{"Main Lot", "North Location", "Premium Showroom"}
	premiumMakes   = map[string]bool{"Honda": true, "Toyota": true, "Subaru": true, "Mazda": true, "Volvo": true}
)

// Generator produces synthetic listings. It is not safe for concurrent use.
type Generator struct {
	rng       *rand.Rand
	nextStock int
	now       time.Time
}

// NewGenerator seeds a generator. The same seed reproduces the same
// inventory, which the tests rely on.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:       rand.New(rand.NewSource(seed)),
		nextStock: 10000,
		now:       time.Now(),
	}
}

// categorize infers a body-style category from the model name.
func categorize(model string) inventory.Category {
	lower := strings.ToLower(model)
	switch {
	case containsAny(lower, "suv", "cr-v", "rav4", "explorer", "forester", "pathfinder", "cx-5"):
		return inventory.CategorySUV
	case containsAny(lower, "f-150", "silverado", "ram", "tundra", "tacoma", "ranger"):
		return inventory.CategoryTruck
	case containsAny(lower, "tesla", "leaf", "bolt", "ev", "electric"):
		return inventory.CategoryElectric
	case containsAny(lower, "odyssey", "sienna", "pacifica", "carnival"):
		return inventory.CategoryMinivan
	case containsAny(lower, "mustang", "camaro", "challenger"):
		return inventory.CategoryCoupe
	default:
		return inventory.CategorySedan
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// price derives a listing price from the category band, depreciated by model
// year and condition.
func (g *Generator) price(category inventory.Category, year int, conditionFactor float64) int {
	band, ok := priceRanges[category]
	if !ok {
		band = defaultPriceRange
	}

	yearFactor := 0.70
	switch {
	case year >= 2024:
		yearFactor = 1.0
	case year >= 2023:
		yearFactor = 0.85
	}

	min := int(float64(band[0]) * yearFactor * conditionFactor)
	max := int(float64(band[1]) * yearFactor * conditionFactor)
	return min + g.rng.Intn(max-min+1)
}

// pickColor draws an exterior color by market-share weight.
func (g *Generator) pickColor() string {
	total := 0.0
	for _, c := range exteriorColors {
		total += c.weight
	}
	r := g.rng.Float64() * total
	for _, c := range exteriorColors {
		r -= c.weight
		if r < 0 {
			return c.name
		}
	}
	return exteriorColors[len(exteriorColors)-1].name
}

// pickFeatures samples 5 to 10 distinct features from the pool.
func (g *Generator) pickFeatures() []string {
	n := 5 + g.rng.Intn(6)
	perm := g.rng.Perm(len(featurePool))
	features := make([]string, 0, n)
	for _, idx := range perm[:n] {
		features = append(features, featurePool[idx])
	}
	return features
}

// vin fabricates a plausible 17-character VIN: two letters, eight digits,
// seven letters.
func (g *Generator) vin() string {
	const letters = "ABCDEFGHJKLMNPRSTUVWXYZ"
	const digits = "0123456789"
	var b strings.Builder
	for i := 0; i < 2; i++ {
		b.WriteByte(letters[g.rng.Intn(len(letters))])
	}
	for i := 0; i < 8; i++ {
		b.WriteByte(digits[g.rng.Intn(len(digits))])
	}
	for i := 0; i < 7; i++ {
		b.WriteByte(letters[g.rng.Intn(len(letters))])
	}
	return b.String()
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

// safetyRating biases premium makes toward five-star overall ratings.
func (g *Generator) safetyRating(make string) inventory.SafetyRating {
	var overallPool []int
	if premiumMakes[make] {
		overallPool = []int{5, 5, 5, 4}
	} else {
		overallPool = []int{5, 4, 4, 3}
	}
	return inventory.SafetyRating{
		Overall:      overallPool[g.rng.Intn(len(overallPool))],
		FrontalCrash: 4 + g.rng.Intn(2),
		SideCrash:    4 + g.rng.Intn(2),
		Rollover:     3 + g.rng.Intn(3),
	}
}

// Listing expands one base vehicle into a full dealership listing.
func (g *Generator) Listing(base BaseVehicle) inventory.VehicleRecord {
	category := categorize(base.Model)
	band := conditionBands[g.rng.Intn(len(conditionBands))]
	mileage := band.minMiles + g.rng.Intn(band.maxMiles-band.minMiles+1)
	price := g.price(category, base.Year, band.factor)

	stock := fmt.Sprintf("AX%d", g.nextStock)
	g.nextStock++

	daysOnLot := 1 + g.rng.Intn(90)
	arrival := g.now.AddDate(0, 0, -daysOnLot)

	rec := inventory.VehicleRecord{
		StockNumber:   stock,
		VIN:           g.vin(),
		Year:          base.Year,
		Make:          base.Make,
		Model:         base.Model,
		Trim:          g.pick(trims),
		Category:      category,
		BodyStyle:     strings.ToUpper(string(category)),
		Price:         price,
		MSRP:          int(float64(price) * (1.05 + g.rng.Float64()*0.10)),
		Condition:     band.condition,
		Mileage:       mileage,
		Certified:     band.condition == "Certified Pre-Owned",
		ExteriorColor: g.pickColor(),
		InteriorColor: g.pick(interiorColors),
		Features:      g.pickFeatures(),
		Transmission:  g.pick(transmissions),
		Drivetrain:    g.pick(drivetrains),
		FuelEconomy:   base.FuelEconomy,
		SafetyRating:  g.safetyRating(base.Make),
		ArrivalDate:   arrival.Format("2006-01-02"),
		DaysOnLot:     daysOnLot,
		Location:      g.pick(lotLocations),
		Available:     g.rng.Float64() > 0.1,
		Featured:      g.rng.Float64() > 0.8,
	}

	// Roughly a third of listings carry a promotional price.
	if g.rng.Float64() > 0.7 {
		rec.SpecialPrice = int(float64(price) * 0.95)
	}

	return rec
}

// GenerateInventory produces count listings by drawing repeatedly from the
// base vehicles with variation.
func (g *Generator) GenerateInventory(bases []BaseVehicle, count int) []inventory.VehicleRecord {
	records := make([]inventory.VehicleRecord, 0, count)
	for len(records) < count {
		base := bases[g.rng.Intn(len(bases))]
		records = append(records, g.Listing(base))
	}
	return records
}

// SaveInventory writes listings as indented JSON.
func SaveInventory(path string, records []inventory.VehicleRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write inventory: %w", err)
	}
	return nil
}
