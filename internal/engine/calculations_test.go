package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/footprint"
)

var testNow = time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // Fixed clock

func entryOn(t *testing.T, date string, c footprint.Category, kg float64) footprint.Entry {
	t.Helper()
	d, err := footprint.ParseDate(date)
	require.NoError(t, err)
	return footprint.Entry{
		ID:              date + "-" + c.String(),
		Date:            d,
		Category:        c,
		Subcategory:     "Test",
		Amount:          1,
		Unit:            "unit",
		CarbonFootprint: kg,
	}
}

func TestSumAndCategoryTotals(t *testing.T) {
	entries := []footprint.Entry{
		entryOn(t, "2026-10-17", footprint.Transportation, 10.2),
		entryOn(t, "2026-10-16", footprint.Food, 5.4),
		entryOn(t, "2026-10-15", footprint.Transportation, 1.1),
	}

	totals := CategoryTotals(entries)
	require.Len(t, totals, 5)
	assert.InDelta(t, 11.3, totals[footprint.Transportation], 1e-9)
	assert.InDelta(t, 5.4, totals[footprint.Food], 1e-9)
	assert.Zero(t, totals[footprint.Energy])
	assert.Zero(t, totals[footprint.Waste])
	assert.Zero(t, totals[footprint.Consumption])

	var sum float64
	for _, v := range totals {
		sum += v
	}
	assert.InDelta(t, SumFootprint(entries), sum, 1e-9)

	empty := CategoryTotals(nil)
	assert.Len(t, empty, 5)
}

func TestMonthlyTotal(t *testing.T) {
	entries := []footprint.Entry{
		entryOn(t, "2026-10-01", footprint.Energy, 3),
		entryOn(t, "2026-10-31", footprint.Energy, 4),
		entryOn(t, "2026-09-30", footprint.Energy, 100),
		entryOn(t, "2025-10-15", footprint.Energy, 100),
	}
	assert.InDelta(t, 7.0, MonthlyTotal(entries, time.October, 2026), 1e-9)
	assert.InDelta(t, 100.0, MonthlyTotal(entries, time.September, 2026), 1e-9)
	assert.Zero(t, MonthlyTotal(entries, time.January, 2026))
	assert.Zero(t, MonthlyTotal(nil, time.October, 2026))
}

func TestDailyAverage(t *testing.T) {
	entries := make([]footprint.Entry, 0, 40)
	for i := range 40 {
		entries = append(entries, footprint.Entry{CarbonFootprint: float64(i + 1)})
	}

	tests := []struct {
		name    string
		entries []footprint.Entry
		window  int
		want    float64
	}{
		{name: "empty", entries: nil, window: 30, want: 0},
		{name: "first window only", entries: entries, window: 30, want: 465.0 / 30},
		{name: "short history divides by window", entries: entries[:3], window: 30, want: 6.0 / 30},
		{name: "zero window", entries: entries, window: 0, want: 0},
		{name: "negative window", entries: entries, window: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DailyAverage(tt.entries, tt.window), 1e-9)
		})
	}
}

func TestTrendDirection(t *testing.T) {
	tests := []struct {
		current, previous float64
		want              Trend
	}{
		{104, 100, TrendStable},
		{95.5, 100, TrendStable},
		{105, 100, TrendUp},
		{110, 100, TrendUp},
		{90, 100, TrendDown},
		{0, 100, TrendDown},
		{50, 0, TrendStable},
		{0, 0, TrendStable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TrendDirection(tt.current, tt.previous),
			"TrendDirection(%v, %v)", tt.current, tt.previous)
	}

	assert.Equal(t, "↑", TrendUp.Symbol())
	assert.Equal(t, "↓", TrendDown.Symbol())
	assert.Equal(t, "→", TrendStable.Symbol())
}

func TestPercentageChange(t *testing.T) {
	assert.InDelta(t, 10.0, PercentageChange(110, 100), 1e-9)
	assert.InDelta(t, -25.0, PercentageChange(75, 100), 1e-9)
	for _, x := range []float64{0, 1, 250, -3} {
		assert.Zero(t, PercentageChange(x, 0))
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name            string
		current, target float64
		want            float64
	}{
		{name: "clamped", current: 600, target: 500, want: 100},
		{name: "partial", current: 8, target: 12, want: 200.0 / 3},
		{name: "exact", current: 100, target: 100, want: 100},
		{name: "zero target", current: 10, target: 0, want: 0},
		{name: "negative target", current: 10, target: -1, want: 0},
		{name: "nothing yet", current: 0, target: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GoalProgress(footprint.Goal{Current: tt.current, Target: tt.target})
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}
