package engine

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/footprint"
)

func TestMonthlySeries(t *testing.T) {
	entries := []footprint.Entry{
		entryOn(t, "2026-10-02", footprint.Food, 10),
		entryOn(t, "2026-09-10", footprint.Energy, 4),
		entryOn(t, "2026-09-01", footprint.Food, 6),
		entryOn(t, "2025-12-31", footprint.Waste, 2),
		entryOn(t, "2025-10-31", footprint.Waste, 99),
	}

	series := MonthlySeries(entries, testNow, 12)
	require.Len(t, series, 12)

	assert.Equal(t, "Nov", series[0].Month)
	assert.Equal(t, 2025, series[0].Year)
	assert.Equal(t, "Dec", series[1].Month)
	assert.InDelta(t, 2.0, series[1].Total, 1e-9)
	assert.Equal(t, "Oct", series[11].Month)
	assert.Equal(t, 2026, series[11].Year)
	assert.InDelta(t, 10.0, series[11].Total, 1e-9)
	assert.InDelta(t, 10.0, series[10].Total, 1e-9)
	assert.InDelta(t, 4.0, series[10].Categories[footprint.Energy], 1e-9)

	assert.Nil(t, MonthlySeries(entries, testNow, 0))
}

func TestCategoryBreakdown(t *testing.T) {
	current := []footprint.Entry{
		entryOn(t, "2026-10-02", footprint.Food, 30),
		entryOn(t, "2026-10-03", footprint.Energy, 10),
	}
	previous := []footprint.Entry{
		entryOn(t, "2026-09-02", footprint.Food, 20),
		entryOn(t, "2026-09-03", footprint.Energy, 10),
	}

	rows := CategoryBreakdown(current, previous)
	require.Len(t, rows, 5)
	assert.Equal(t, footprint.Transportation, rows[0].Category)

	food := rows[2]
	assert.Equal(t, footprint.Food, food.Category)
	assert.InDelta(t, 75.0, food.Percentage, 1e-9)
	assert.Equal(t, TrendUp, food.Trend)
	assert.InDelta(t, 50.0, food.Change, 1e-9)

	energy := rows[1]
	assert.InDelta(t, 25.0, energy.Percentage, 1e-9)
	assert.Equal(t, TrendStable, energy.Trend)

	for _, r := range CategoryBreakdown(nil, previous) {
		assert.Zero(t, r.Percentage)
	}
}

func TestSummarize(t *testing.T) {
	entries := []footprint.Entry{
		entryOn(t, "2026-10-17", footprint.Transportation, 100),
		entryOn(t, "2026-10-16", footprint.Food, 50),
		entryOn(t, "2026-10-10", footprint.Energy, 50),
		entryOn(t, "2026-10-01", footprint.Waste, 25),
		entryOn(t, "2026-09-20", footprint.Food, 150),
		entryOn(t, "2026-09-15", footprint.Energy, 150),
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	s := Summarize(ctx, entries, SummaryOptions{Now: testNow, MonthlyGoal: 500})

	assert.Equal(t, 6, s.EntryCount)
	assert.InDelta(t, 225.0, s.MonthlyTotal, 1e-9)
	assert.InDelta(t, 300.0, s.PreviousMonthTotal, 1e-9)
	assert.InDelta(t, -25.0, s.MonthlyChange, 1e-9)
	assert.Equal(t, TrendDown, s.MonthlyTrend)
	assert.InDelta(t, 525.0/30, s.DailyAverage, 1e-9)
	assert.InDelta(t, 525.0, s.WeeklyTotal, 1e-9)
	assert.InDelta(t, 45.0, s.GoalProgress, 1e-9)
	assert.Equal(t, BudgetHealthOK, s.BudgetHealth)
	assert.Greater(t, s.ForecastedMonthTotal, s.MonthlyTotal)
	assert.Len(t, s.Categories, 5)
	assert.False(t, s.Equivalencies.IsEmpty)
	assert.Contains(t, buf.String(), "dashboard summary computed")
}

func TestSummarizeDefaults(t *testing.T) {
	s := Summarize(context.Background(), nil, SummaryOptions{Now: testNow})
	assert.InDelta(t, DefaultMonthlyGoal, s.MonthlyGoal, 1e-9)
	assert.Zero(t, s.MonthlyTotal)
	assert.Zero(t, s.DailyAverage)
	assert.Zero(t, s.WeeklyTotal)
	assert.Equal(t, TrendStable, s.MonthlyTrend)
	assert.True(t, s.Equivalencies.IsEmpty)
}

func TestSummarizeUnclampedProgress(t *testing.T) {
	entries := []footprint.Entry{entryOn(t, "2026-10-05", footprint.Consumption, 600)}
	s := Summarize(context.Background(), entries, SummaryOptions{Now: testNow, MonthlyGoal: 500})
	assert.InDelta(t, 120.0, s.GoalProgress, 1e-9)
	assert.Equal(t, BudgetHealthExceeded, s.BudgetHealth)
	assert.Equal(t, BudgetHealthExceeded, s.ForecastHealth)
	assert.InDelta(t, s.ForecastedMonthTotal/500*100, s.ForecastPercentage, 1e-9)
	assert.Greater(t, s.ForecastPercentage, s.GoalProgress)
}
