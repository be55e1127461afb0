package engine

import "time"

// ForecastAt predicts an end-of-period total by linear extrapolation of
// currentTotal from periodStart to now.
//
// Edge cases:
//   - zero current total: returns 0
//   - now before the period or no elapsed time: returns currentTotal
//   - period already over: returns currentTotal
func ForecastAt(currentTotal float64, periodStart, periodEnd, now time.Time) float64 {
	if currentTotal == 0 {
		return 0
	}
	if now.Before(periodStart) {
		return currentTotal
	}

	total := periodEnd.Sub(periodStart)
	elapsed := now.Sub(periodStart)
	if elapsed <= 0 || elapsed >= total {
		return currentTotal
	}

	rate := currentTotal / float64(elapsed)
	return rate * float64(total)
}

// ForecastMonthTotal extrapolates a month-to-date total to the end of now's
// calendar month.
func ForecastMonthTotal(currentTotal float64, now time.Time) float64 {
	start, end := MonthBounds(now)
	return ForecastAt(currentTotal, start, end, now)
}

// ForecastedPercentage returns forecast as a percentage of limit, or 0 when
// limit is not positive.
func ForecastedPercentage(forecast, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return forecast / limit * PercentageMultiplier
}

// MonthBounds returns the first instant of t's month and of the next month,
// in t's location.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
