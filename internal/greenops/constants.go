package greenops

// EPA greenhouse gas equivalency factors, in kg CO2e per unit of activity.
// An equivalency is kg_CO2e / factor.
const (
	// EPAMilesDrivenFactor is kg CO2e per mile in an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per full smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeSeedlingFactor is kg CO2e absorbed by one tree seedling grown for 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity use.
	EPAHomeDayFactor = 18.3
)

// Conversion factors to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// GramsThresholdKg is the amount below which carbon is shown in grams.
	GramsThresholdKg = 1.0

	// MinEquivalencyThresholdKg is the smallest total that gets equivalencies.
	// Smaller totals produce fractions of a mile that read as noise.
	MinEquivalencyThresholdKg = 1.0

	// TreeEquivalencyThresholdKg is the total above which tree seedlings are
	// included, so that at least one seedling is reported.
	TreeEquivalencyThresholdKg = EPATreeSeedlingFactor

	// LargeNumberThreshold switches FormatLarge to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches FormatLarge to "~X.X billion".
	BillionThreshold = 1_000_000_000
)

// Carbon unit suffix used by FormatCarbonAmount.
const carbonSuffix = " CO₂"
