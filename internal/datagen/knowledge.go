package datagen

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dealerdesk/dealerdesk/internal/knowledge"
)

const specYear = 2024

var hondaSafety = []string{
	"Honda Sensing Suite",
	"Collision Mitigation Braking System",
	"Road Departure Mitigation System",
	"Adaptive Cruise Control",
	"Lane Keeping Assist System",
	"Blind Spot Information System",
}

var hondaTechnology = []string{
	"Apple CarPlay & Android Auto",
	"Wireless Phone Charger",
	"Satellite-Linked Navigation System",
	"8-inch Display Audio Touch-Screen",
	"12-Speaker Premium Audio System",
}

var hondaComfort = []string{
	"Dual-Zone Automatic Climate Control",
	"Heated Front Seats",
	"Leather-Trimmed Seats",
	"Power Moonroof",
	"Remote Engine Start",
}

var toyotaSafety = []string{
	"Toyota Safety Sense 2.5+",
	"Pre-Collision System with Pedestrian Detection",
	"Lane Departure Alert with Steering Assist",
	"Automatic High Beams",
	"Dynamic Radar Cruise Control",
	"Blind Spot Monitor",
}

var toyotaTechnology = []string{
	"Apple CarPlay & Android Auto",
	"Wi-Fi Connect",
	"Amazon Alexa Integration",
	"9-inch Touchscreen Display",
	"JBL Premium Audio",
}

var toyotaComfort = []string{
	"Dual-Zone Climate Control",
	"Heated and Ventilated Front Seats",
	"SofTex-Trimmed Seats",
	"Power Moonroof",
	"Smart Key with Push Button Start",
}

var hondaPowertrains = map[string]knowledge.Powertrain{
	"Civic": {
		Engine:       "1.5L Turbocharged 4-Cylinder",
		Horsepower:   "180 hp @ 6,000 rpm",
		Torque:       "177 lb-ft @ 1,700-4,500 rpm",
		Transmission: "CVT",
		Seating:      "5 passengers",
		Cargo:        "14.8 cubic feet",
		Towing:       "Not recommended for towing",
	},
	"Accord": {
		Engine:       "1.5L Turbocharged 4-Cylinder",
		Horsepower:   "192 hp @ 5,500 rpm",
		Torque:       "192 lb-ft @ 1,600-5,000 rpm",
		Transmission: "CVT",
		Seating:      "5 passengers",
		Cargo:        "16.7 cubic feet",
		Towing:       "Not recommended for towing",
	},
	"CR-V": {
		Engine:       "1.5L Turbocharged 4-Cylinder",
		Horsepower:   "190 hp @ 5,600 rpm",
		Torque:       "179 lb-ft @ 2,000-5,000 rpm",
		Transmission: "CVT",
		Seating:      "5 passengers",
		Cargo:        "39.2 cubic feet (76.5 with seats folded)",
		Towing:       "1,500 lbs (with proper equipment)",
	},
	"Pilot": {
		Engine:       "3.5L V6",
		Horsepower:   "280 hp @ 6,000 rpm",
		Torque:       "262 lb-ft @ 4,700 rpm",
		Transmission: "9-Speed Automatic",
		Seating:      "8 passengers",
		Cargo:        "16.5 cubic feet (83.9 with seats folded)",
		Towing:       "5,000 lbs (with AWD and towing package)",
	},
}

var toyotaPowertrains = map[string]knowledge.Powertrain{
	"Camry": {
		Engine:       "2.5L 4-Cylinder Dynamic Force Engine",
		Horsepower:   "203 hp @ 6,600 rpm",
		Torque:       "184 lb-ft @ 5,000 rpm",
		Transmission: "8-Speed Automatic",
		Seating:      "5 passengers",
		Cargo:        "15.1 cubic feet",
		Towing:       "Not recommended",
	},
	"Corolla": {
		Engine:       "2.0L 4-Cylinder",
		Horsepower:   "169 hp @ 6,600 rpm",
		Torque:       "151 lb-ft @ 4,800 rpm",
		Transmission: "CVT",
		Seating:      "5 passengers",
		Cargo:        "13.1 cubic feet",
		Towing:       "Not recommended",
	},
	"RAV4": {
		Engine:       "2.5L 4-Cylinder",
		Horsepower:   "203 hp @ 6,600 rpm",
		Torque:       "184 lb-ft @ 5,000 rpm",
		Transmission: "8-Speed Automatic",
		Seating:      "5 passengers",
		Cargo:        "37.5 cubic feet (69.8 with seats folded)",
		Towing:       "1,500 lbs (3,500 lbs with towing package)",
	},
	"Highlander": {
		Engine:       "3.5L V6",
		Horsepower:   "295 hp @ 6,600 rpm",
		Torque:       "263 lb-ft @ 4,700 rpm",
		Transmission: "8-Speed Automatic",
		Seating:      "8 passengers",
		Cargo:        "16.0 cubic feet (84.3 with seats folded)",
		Towing:       "5,000 lbs (with towing package)",
	},
}

// dimensionsFor returns class-typical exterior dimensions for a model.
func dimensionsFor(model string) map[string]string {
	switch {
	case containsAny(model, "CR-V", "RAV4", "Forester", "CX-5"):
		return map[string]string{
			"length":           "182-185 inches",
			"width":            "73-74 inches",
			"height":           "66-68 inches",
			"wheelbase":        "105-106 inches",
			"ground_clearance": "8.2-8.6 inches",
		}
	case containsAny(model, "Pilot", "Highlander", "Explorer"):
		return map[string]string{
			"length":           "194-197 inches",
			"width":            "78-79 inches",
			"height":           "69-71 inches",
			"wheelbase":        "111-112 inches",
			"ground_clearance": "7.3-8.0 inches",
		}
	default:
		return map[string]string{
			"length":           "182-192 inches",
			"width":            "70-72 inches",
			"height":           "56-58 inches",
			"wheelbase":        "106-108 inches",
			"ground_clearance": "5.5-6.2 inches",
		}
	}
}

// HondaEntry builds a Honda specification sheet for the model. Unknown
// models fall back to the Civic powertrain.
func HondaEntry(model string) knowledge.Entry {
	powertrain, ok := hondaPowertrains[model]
	if !ok {
		powertrain = hondaPowertrains["Civic"]
	}
	return knowledge.Entry{
		Make:       "Honda",
		Model:      model,
		Year:       specYear,
		Overview:   fmt.Sprintf("The %d Honda %s combines refined performance with practical versatility.", specYear, model),
		Powertrain: powertrain,
		Features: knowledge.FeatureSet{
			Safety:     hondaSafety,
			Technology: hondaTechnology,
			Comfort:    hondaComfort,
		},
		Dimensions: dimensionsFor(model),
		Warranty: knowledge.Warranty{
			Basic:      "3 years / 36,000 miles",
			Powertrain: "5 years / 60,000 miles",
			Roadside:   "3 years / 36,000 miles",
		},
		Source: "manufacturer_specs",
	}
}

// ToyotaEntry builds a Toyota specification sheet for the model. Unknown
// models fall back to the Camry powertrain.
func ToyotaEntry(model string) knowledge.Entry {
	powertrain, ok := toyotaPowertrains[model]
	if !ok {
		powertrain = toyotaPowertrains["Camry"]
	}
	return knowledge.Entry{
		Make:       "Toyota",
		Model:      model,
		Year:       specYear,
		Overview:   fmt.Sprintf("The %d Toyota %s delivers legendary reliability with modern technology.", specYear, model),
		Powertrain: powertrain,
		Features: knowledge.FeatureSet{
			Safety:     toyotaSafety,
			Technology: toyotaTechnology,
			Comfort:    toyotaComfort,
		},
		Dimensions: dimensionsFor(model),
		Warranty: knowledge.Warranty{
			Basic:      "3 years / 36,000 miles",
			Powertrain: "5 years / 60,000 miles",
			Roadside:   "3 years / 36,000 miles",
		},
		Source: "manufacturer_specs",
	}
}

// BuildKnowledgeBase generates specification sheets for every distinct
// Honda and Toyota model among the base vehicles. Other makes have no
// template and are skipped.
func BuildKnowledgeBase(bases []BaseVehicle) []knowledge.Entry {
	seen := make(map[string]bool)
	var entries []knowledge.Entry
	for _, base := range bases {
		key := strings.ToLower(base.Make + " " + base.Model)
		if seen[key] {
			continue
		}
		seen[key] = true

		switch base.Make {
		case "Honda":
			entries = append(entries, HondaEntry(base.Model))
		case "Toyota":
			entries = append(entries, ToyotaEntry(base.Model))
		}
	}
	return entries
}

// SaveKnowledgeBase writes entries as indented JSON.
func SaveKnowledgeBase(path string, entries []knowledge.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode knowledge base: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write knowledge base: %w", err)
	}
	return nil
}
