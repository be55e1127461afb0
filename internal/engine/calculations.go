// Package engine holds the pure carbon-accounting calculators that turn a
// list of footprint entries into totals, averages, trends and summaries.
//
// Nothing in this package performs I/O. Entries are expected newest first
// wherever the order matters.
package engine

import (
	"math"
	"time"

	"github.com/rshade/carbontrack/internal/footprint"
)

const (
	// DefaultAverageWindowDays is the window DailyAverage uses on the dashboard.
	DefaultAverageWindowDays = 30

	// TrendStableThreshold is the relative change, in percent, below which a
	// trend is reported as stable.
	TrendStableThreshold = 5.0

	// PercentageMultiplier converts a ratio to a percentage.
	PercentageMultiplier = 100.0
)

// Trend is the direction of change between two periods.
type Trend string

// Trend directions.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Symbol returns an arrow for the trend.
func (t Trend) Symbol() string {
	switch t {
	case TrendUp:
		return "↑"
	case TrendDown:
		return "↓"
	default:
		return "→"
	}
}

// SumFootprint sums the carbon footprint of every entry.
func SumFootprint(entries []footprint.Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.CarbonFootprint
	}
	return total
}

// CategoryTotals sums footprints per category. Every category is present in
// the result, with 0 for categories that have no entries.
func CategoryTotals(entries []footprint.Entry) map[footprint.Category]float64 {
	totals := make(map[footprint.Category]float64, len(footprint.Categories()))
	for _, c := range footprint.Categories() {
		totals[c] = 0
	}
	for _, e := range entries {
		if !e.Category.Valid() {
			continue
		}
		totals[e.Category] += e.CarbonFootprint
	}
	return totals
}

// MonthlyTotal sums footprints of entries dated in the given calendar month.
func MonthlyTotal(entries []footprint.Entry, month time.Month, year int) float64 {
	var total float64
	for _, e := range entries {
		if e.Date.Month() == month && e.Date.Year() == year {
			total += e.CarbonFootprint
		}
	}
	return total
}

// DailyAverage sums the first windowDays entries and divides by windowDays.
// Shorter histories still divide by the full window, so days without
// activity count as zero. A non-positive window yields 0.
func DailyAverage(entries []footprint.Entry, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}
	n := min(windowDays, len(entries))
	return SumFootprint(entries[:n]) / float64(windowDays)
}

// TrendDirection classifies the change from previous to current. Changes
// under TrendStableThreshold percent are stable. A zero or non-finite
// baseline is stable.
func TrendDirection(current, previous float64) Trend {
	if previous == 0 || math.IsNaN(previous) || math.IsInf(previous, 0) {
		return TrendStable
	}
	change := (current - previous) / previous * PercentageMultiplier
	if math.Abs(change) < TrendStableThreshold {
		return TrendStable
	}
	if change > 0 {
		return TrendUp
	}
	return TrendDown
}

// PercentageChange returns the relative change from previous to current in
// percent, or 0 when previous is 0.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * PercentageMultiplier
}

// GoalProgress returns the goal's completion percentage clamped to [0, 100].
// A non-positive target yields 0.
func GoalProgress(goal footprint.Goal) float64 {
	return ProgressPercent(goal.Current, goal.Target)
}

// ProgressPercent is GoalProgress over raw values.
func ProgressPercent(current, target float64) float64 {
	if target <= 0 || current <= 0 {
		return 0
	}
	return math.Min(current/target*PercentageMultiplier, PercentageMultiplier)
}
