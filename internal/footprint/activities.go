package footprint

import (
	"strings"
	"unicode"
)

// Activity describes one subcategory of a category: its unit, its emission
// factor in kg CO2e per unit, and the amount range the mock generator draws from.
type Activity struct {
	Name   string  `json:"name"`
	Unit   string  `json:"unit"`
	Factor float64 `json:"factor"`

	// MinAmount and MaxAmount bound generated amounts. Only meaningful when Sampled.
	MinAmount float64 `json:"-"`
	MaxAmount float64 `json:"-"`

	// Sampled marks activities the mock generator picks from.
	Sampled bool `json:"-"`
}

//nolint:gochecknoglobals // Constant lookup table
var activityTable = map[Category][]Activity{
	Transportation: {
		{Name: "Car (Petrol)", Unit: "km", Factor: 0.17, MinAmount: 10, MaxAmount: 60, Sampled: true},
		{Name: "Car (Diesel)", Unit: "km", Factor: 0.15},
		{Name: "Car (Electric)", Unit: "km", Factor: 0.05},
		{Name: "Public Transport", Unit: "km", Factor: 0.05, MinAmount: 5, MaxAmount: 35, Sampled: true},
		{Name: "Flight (Domestic)", Unit: "km", Factor: 0.25, MinAmount: 100, MaxAmount: 600, Sampled: true},
		{Name: "Flight (International)", Unit: "km", Factor: 0.30},
		{Name: "Cycling", Unit: "km", Factor: 0, MinAmount: 5, MaxAmount: 25, Sampled: true},
		{Name: "Walking", Unit: "km", Factor: 0},
	},
	Energy: {
		{Name: "Electricity", Unit: "kWh", Factor: 0.5, MinAmount: 5, MaxAmount: 25, Sampled: true},
		{Name: "Natural Gas", Unit: "kWh", Factor: 0.2, MinAmount: 3, MaxAmount: 18, Sampled: true},
		{Name: "Heating Oil", Unit: "L", Factor: 2.5, MinAmount: 2, MaxAmount: 12, Sampled: true},
		{Name: "Solar Power", Unit: "kWh", Factor: 0},
	},
	Food: {
		{Name: "Beef", Unit: "kg", Factor: 27, MinAmount: 0.1, MaxAmount: 0.6, Sampled: true},
		{Name: "Chicken", Unit: "kg", Factor: 6.9, MinAmount: 0.1, MaxAmount: 0.4, Sampled: true},
		{Name: "Pork", Unit: "kg", Factor: 12.1},
		{Name: "Fish", Unit: "kg", Factor: 6.1},
		{Name: "Vegetables", Unit: "kg", Factor: 2, MinAmount: 0.5, MaxAmount: 1.5, Sampled: true},
		{Name: "Dairy", Unit: "kg", Factor: 3.2, MinAmount: 0.2, MaxAmount: 0.7, Sampled: true},
		{Name: "Grains", Unit: "kg", Factor: 1.4},
	},
	Waste: {
		{Name: "General Waste", Unit: "kg", Factor: 0.5, MinAmount: 1, MaxAmount: 6, Sampled: true},
		{Name: "Recycling", Unit: "kg", Factor: 0.1, MinAmount: 0.5, MaxAmount: 3.5, Sampled: true},
		{Name: "Organic Waste", Unit: "kg", Factor: 0.3, MinAmount: 0.5, MaxAmount: 2.5, Sampled: true},
		{Name: "E-waste", Unit: "kg", Factor: 1.2},
	},
	Consumption: {
		{Name: "Clothing", Unit: "items", Factor: 10, MinAmount: 0.5, MaxAmount: 2.5, Sampled: true},
		{Name: "Electronics", Unit: "items", Factor: 50, MinAmount: 0.1, MaxAmount: 0.6, Sampled: true},
		{Name: "Books/Media", Unit: "items", Factor: 2, MinAmount: 0.2, MaxAmount: 1.2, Sampled: true},
		{Name: "Furniture", Unit: "items", Factor: 25},
	},
}

// Activities returns the full activity catalogue for the category.
// The returned slice is a copy.
func (c Category) Activities() []Activity {
	src := activityTable[c]
	out := make([]Activity, len(src))
	copy(out, src)
	return out
}

// SampledActivities returns the activities the mock generator draws from.
func (c Category) SampledActivities() []Activity {
	var out []Activity
	for _, a := range activityTable[c] {
		if a.Sampled {
			out = append(out, a)
		}
	}
	return out
}

// LookupActivity finds an activity by subcategory label. Matching ignores
// case, whitespace and punctuation, so "car_petrol" and "Car (Petrol)" agree.
func (c Category) LookupActivity(subcategory string) (Activity, bool) {
	key := activityKey(subcategory)
	if key == "" {
		return Activity{}, false
	}
	for _, a := range activityTable[c] {
		if activityKey(a.Name) == key {
			return a, true
		}
	}
	return Activity{}, false
}

// EmissionFactor returns the kg CO2e per unit for a subcategory, or the
// category default when the subcategory is not catalogued.
func (c Category) EmissionFactor(subcategory string) float64 {
	if a, ok := c.LookupActivity(subcategory); ok {
		return a.Factor
	}
	return c.DefaultFactor()
}

func activityKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
