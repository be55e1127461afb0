package engine

import (
	"time"

	"github.com/rshade/carbontrack/internal/footprint"
)

// MonthlyData is the footprint of one calendar month.
type MonthlyData struct {
	// Month is the three-letter month label, e.g. "Jan".
	Month      string                         `json:"month"`
	Year       int                            `json:"year"`
	Total      float64                        `json:"total"`
	Categories map[footprint.Category]float64 `json:"categories"`
}

// CategoryData is one row of a category breakdown.
type CategoryData struct {
	Category   footprint.Category `json:"category"`
	Total      float64            `json:"total"`
	Percentage float64            `json:"percentage"`
	Trend      Trend              `json:"trend"`
	Change     float64            `json:"change"`
}

// MonthlySeries returns one MonthlyData per calendar month for the months
// ending with now's month, oldest first. A non-positive months yields nil.
func MonthlySeries(entries []footprint.Entry, now time.Time, months int) []MonthlyData {
	if months <= 0 {
		return nil
	}

	type key struct {
		year  int
		month time.Month
	}
	buckets := make(map[key][]footprint.Entry, months)
	for _, e := range entries {
		k := key{year: e.Date.Year(), month: e.Date.Month()}
		buckets[k] = append(buckets[k], e)
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	series := make([]MonthlyData, 0, months)
	for i := range months {
		m := first.AddDate(0, i, 0)
		bucket := buckets[key{year: m.Year(), month: m.Month()}]
		series = append(series, MonthlyData{
			Month:      m.Format("Jan"),
			Year:       m.Year(),
			Total:      SumFootprint(bucket),
			Categories: CategoryTotals(bucket),
		})
	}
	return series
}

// CategoryBreakdown compares per-category totals of two periods. Rows follow
// footprint.Categories order. Percentages are shares of the current total,
// or 0 when that total is 0.
func CategoryBreakdown(current, previous []footprint.Entry) []CategoryData {
	cur := CategoryTotals(current)
	prev := CategoryTotals(previous)
	overall := SumFootprint(current)

	rows := make([]CategoryData, 0, len(cur))
	for _, c := range footprint.Categories() {
		var pct float64
		if overall > 0 {
			pct = cur[c] / overall * PercentageMultiplier
		}
		rows = append(rows, CategoryData{
			Category:   c,
			Total:      cur[c],
			Percentage: pct,
			Trend:      TrendDirection(cur[c], prev[c]),
			Change:     PercentageChange(cur[c], prev[c]),
		})
	}
	return rows
}

// EntriesInMonth returns the entries dated in t's calendar month.
func EntriesInMonth(entries []footprint.Entry, t time.Time) []footprint.Entry {
	var out []footprint.Entry
	for _, e := range entries {
		if e.Date.Year() == t.Year() && e.Date.Month() == t.Month() {
			out = append(out, e)
		}
	}
	return out
}
