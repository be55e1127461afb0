package engine

// Health thresholds, as a percentage of the monthly carbon budget used.
const (
	// HealthThresholdWarning is where a budget moves from ok to warning.
	HealthThresholdWarning = 80.0

	// HealthThresholdCritical is where a budget moves from warning to critical.
	HealthThresholdCritical = 90.0

	// HealthThresholdExceeded is where a budget is exceeded.
	HealthThresholdExceeded = 100.0
)

// BudgetHealth classifies how much of a carbon budget has been used.
type BudgetHealth string

// Budget health values, ordered by severity.
const (
	BudgetHealthUnspecified BudgetHealth = "unspecified"
	BudgetHealthOK          BudgetHealth = "ok"
	BudgetHealthWarning     BudgetHealth = "warning"
	BudgetHealthCritical    BudgetHealth = "critical"
	BudgetHealthExceeded    BudgetHealth = "exceeded"
)

// healthSeverity orders health values. Higher is worse.
var healthSeverity = map[BudgetHealth]int{ //nolint:gochecknoglobals // Constant lookup table
	BudgetHealthUnspecified: 0,
	BudgetHealthOK:          1,
	BudgetHealthWarning:     2,
	BudgetHealthCritical:    3,
	BudgetHealthExceeded:    4,
}

// Severity returns the numeric severity of h.
func (h BudgetHealth) Severity() int {
	return healthSeverity[h]
}

// BudgetHealthFromPercentage maps a utilization percentage to a health value.
//
// Thresholds:
//   - ok: below 80%
//   - warning: 80-89%
//   - critical: 90-99%
//   - exceeded: 100% and above
func BudgetHealthFromPercentage(percentageUsed float64) BudgetHealth {
	switch {
	case percentageUsed >= HealthThresholdExceeded:
		return BudgetHealthExceeded
	case percentageUsed >= HealthThresholdCritical:
		return BudgetHealthCritical
	case percentageUsed >= HealthThresholdWarning:
		return BudgetHealthWarning
	default:
		return BudgetHealthOK
	}
}

// BudgetHealthFor returns the health of spent against limit. A non-positive
// limit has no meaningful health.
func BudgetHealthFor(spent, limit float64) BudgetHealth {
	if limit <= 0 {
		return BudgetHealthUnspecified
	}
	return BudgetHealthFromPercentage(spent / limit * PercentageMultiplier)
}

// WorstHealth returns the most severe of the given values.
func WorstHealth(values ...BudgetHealth) BudgetHealth {
	worst := BudgetHealthUnspecified
	for _, v := range values {
		if v.Severity() > worst.Severity() {
			worst = v
		}
	}
	return worst
}
