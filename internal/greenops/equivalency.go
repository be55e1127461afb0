package greenops

import (
	"fmt"
	"math"
)

// Calculate normalises input to kilograms and computes its equivalencies.
//
// Totals below MinEquivalencyThresholdKg return an empty output with InputKg
// set. Miles driven and smartphones charged are always included above the
// threshold; tree seedlings and home-days are appended once the total is
// large enough to report at least one of each.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	return CalculateKg(kg)
}

// CalculateKg computes equivalencies for an amount already in kg CO2e.
func CalculateKg(kg float64) (EquivalencyOutput, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	if math.IsInf(miles, 0) || math.IsInf(phones, 0) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	results := []EquivalencyResult{
		newResult(EquivalencyMilesDriven, miles, "miles driven"),
		newResult(EquivalencySmartphonesCharged, phones, "smartphones charged"),
	}
	if kg >= TreeEquivalencyThresholdKg {
		results = append(results, newResult(EquivalencyTreeSeedlings, kg/EPATreeSeedlingFactor,
			"tree seedlings grown for 10 years"))
	}
	if kg >= EPAHomeDayFactor {
		results = append(results, newResult(EquivalencyHomeDays, kg/EPAHomeDayFactor,
			"days of home electricity"))
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			results[0].FormattedValue, results[1].FormattedValue),
		CompactText: fmt.Sprintf("(≈ %s mi, %s phones)", results[0].FormattedValue, results[1].FormattedValue),
	}, nil
}

func newResult(t EquivalencyType, v float64, label string) EquivalencyResult {
	return EquivalencyResult{Type: t, Value: v, FormattedValue: formatEquivalencyValue(v), Label: label}
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
