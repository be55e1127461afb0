package greenops

import (
	"math"
	"strings"
)

// unitFactor maps a carbon unit string to its kilogram multiplier.
// Matching is case-insensitive and accepts an optional CO2e/CO2 suffix.
func unitFactor(unit string) (float64, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, "co2e")
	u = strings.TrimSuffix(u, "co2")
	u = strings.TrimSpace(u)

	switch u {
	case "g":
		return GramsToKg, true
	case "kg":
		return KgToKg, true
	case "t":
		return TonsToKg, true
	case "lb":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a carbon value in g, kg, t or lb (optionally with a
// CO2e suffix, e.g. "kg CO2") to kilograms.
//
// It returns ErrCalculationOverflow for NaN or infinite input, ErrNegativeValue
// for negative input, and ErrInvalidUnit for an unrecognized unit.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// IsCarbonUnit reports whether unit is a carbon mass unit NormalizeToKg accepts.
// Goal progress uses it to tell emissions goals ("kg CO2") from activity
// goals ("trips").
func IsCarbonUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}
