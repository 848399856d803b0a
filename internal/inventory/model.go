// Package inventory provides the in-memory vehicle inventory store and
// structured search over it.
package inventory

import "encoding/json"

// Category classifies a vehicle body style.
type Category string

const (
	CategorySedan    Category = "sedan"
	CategorySUV      Category = "suv"
	CategoryTruck    Category = "truck"
	CategoryCoupe    Category = "coupe"
	CategoryMinivan  Category = "minivan"
	CategoryElectric Category = "electric"
)

// FuelEconomy holds EPA-style fuel economy figures.
type FuelEconomy struct {
	CityMPG     int    `json:"city_mpg,omitempty"`
	HighwayMPG  int    `json:"highway_mpg,omitempty"`
	CombinedMPG int    `json:"combined_mpg,omitempty"`
	FuelType    string `json:"fuel_type,omitempty"`
}

// SafetyRating holds NHTSA-style star ratings.
type SafetyRating struct {
	Overall      int `json:"overall,omitempty"`
	FrontalCrash int `json:"frontal_crash,omitempty"`
	SideCrash    int `json:"side_crash,omitempty"`
	Rollover     int `json:"rollover,omitempty"`
}

// VehicleRecord is a single dealership listing. Records are created by the
// data generator, loaded once at startup, and never mutated afterwards.
type VehicleRecord struct {
	StockNumber   string       `json:"stock_number"`
	VIN           string       `json:"vin,omitempty"`
	Year          int          `json:"year"`
	Make          string       `json:"make"`
	Model         string       `json:"model"`
	Trim          string       `json:"trim,omitempty"`
	Category      Category     `json:"category"`
	BodyStyle     string       `json:"body_style,omitempty"`
	Price         int          `json:"price"`
	MSRP          int          `json:"msrp,omitempty"`
	SpecialPrice  int          `json:"special_price,omitempty"`
	Condition     string       `json:"condition,omitempty"`
	Mileage       int          `json:"mileage"`
	Certified     bool         `json:"certified,omitempty"`
	ExteriorColor string       `json:"exterior_color,omitempty"`
	InteriorColor string       `json:"interior_color,omitempty"`
	Features      []string     `json:"features,omitempty"`
	Transmission  string       `json:"transmission,omitempty"`
	Drivetrain    string       `json:"drivetrain,omitempty"`
	FuelEconomy   FuelEconomy  `json:"fuel_economy"`
	SafetyRating  SafetyRating `json:"safety_rating"`
	ArrivalDate   string       `json:"arrival_date,omitempty"`
	DaysOnLot     int          `json:"days_on_lot,omitempty"`
	Location      string       `json:"location,omitempty"`
	Available     bool         `json:"available"`
	Featured      bool         `json:"featured"`
}

// UnmarshalJSON decodes a record with explicit per-field defaults: a missing
// "available" flag means the vehicle is for sale, a missing "featured" flag
// means it is not featured.
func (v *VehicleRecord) UnmarshalJSON(data []byte) error {
	type alias VehicleRecord
	aux := struct {
		*alias
		Available *bool `json:"available"`
	}{alias: (*alias)(v)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Available == nil {
		v.Available = true
	} else {
		v.Available = *aux.Available
	}
	return nil
}

// HasFeature reports whether the listing carries the named feature exactly.
func (v *VehicleRecord) HasFeature(name string) bool {
	for _, f := range v.Features {
		if f == name {
			return true
		}
	}
	return false
}
