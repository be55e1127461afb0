package greenops

import "fmt"

// EquivalencyType is a real-world activity a carbon amount is compared to.
type EquivalencyType int

// Equivalency types in display priority order.
const (
	EquivalencyMilesDriven EquivalencyType = iota
	EquivalencySmartphonesCharged
	EquivalencyTreeSeedlings
	EquivalencyHomeDays
)

// String returns the equivalency type name.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", int(e))
	}
}

// CarbonInput is a carbon amount in any unit NormalizeToKg accepts.
type CarbonInput struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// EquivalencyResult is one calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput is the full set of equivalencies for an amount.
type EquivalencyOutput struct {
	// InputKg is the normalised amount in kg CO2e.
	InputKg float64 `json:"input_kg"`

	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose line, e.g. "Equivalent to driving ~781 miles or charging ~18,248 smartphones".
	DisplayText string `json:"display_text"`

	// CompactText is the short form for narrow views, e.g. "(≈ 781 mi, 18,248 phones)".
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}
