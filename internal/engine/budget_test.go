package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBudgetHealthFromPercentage(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want BudgetHealth
	}{
		{name: "0% is ok", pct: 0, want: BudgetHealthOK},
		{name: "79.99% is ok", pct: 79.99, want: BudgetHealthOK},
		{name: "80% is warning", pct: 80, want: BudgetHealthWarning},
		{name: "89.9% is warning", pct: 89.9, want: BudgetHealthWarning},
		{name: "90% is critical", pct: 90, want: BudgetHealthCritical},
		{name: "99.99% is critical", pct: 99.99, want: BudgetHealthCritical},
		{name: "100% is exceeded", pct: 100, want: BudgetHealthExceeded},
		{name: "150% is exceeded", pct: 150, want: BudgetHealthExceeded},
		{name: "negative is ok", pct: -10, want: BudgetHealthOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BudgetHealthFromPercentage(tt.pct))
		})
	}
}

func TestBudgetHealthFor(t *testing.T) {
	assert.Equal(t, BudgetHealthUnspecified, BudgetHealthFor(10, 0))
	assert.Equal(t, BudgetHealthWarning, BudgetHealthFor(425, 500))
	assert.Equal(t, BudgetHealthExceeded, BudgetHealthFor(510, 500))
}

func TestWorstHealth(t *testing.T) {
	assert.Equal(t, BudgetHealthUnspecified, WorstHealth())
	assert.Equal(t, BudgetHealthCritical,
		WorstHealth(BudgetHealthOK, BudgetHealthCritical, BudgetHealthWarning))
	assert.Greater(t, BudgetHealthExceeded.Severity(), BudgetHealthCritical.Severity())
}

func TestForecastAt(t *testing.T) {
	start := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	tests := []struct {
		name  string
		total float64
		now   time.Time
		want  float64
	}{
		{name: "zero total", total: 0, now: start.AddDate(0, 0, 10), want: 0},
		{name: "before period", total: 50, now: start.Add(-time.Hour), want: 50},
		{name: "at start", total: 50, now: start, want: 50},
		{name: "after period", total: 50, now: end.Add(time.Hour), want: 50},
		{name: "one third elapsed", total: 100, now: start.Add(end.Sub(start) / 3), want: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ForecastAt(tt.total, start, end, tt.now), 1e-6)
		})
	}
}

func TestForecastMonthTotal(t *testing.T) {
	// Halfway through a 30-day month.
	now := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 200.0, ForecastMonthTotal(100, now), 1e-6)

	start, end := MonthBounds(now)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), end)

	assert.InDelta(t, 40.0, ForecastedPercentage(200, 500), 1e-9)
	assert.Zero(t, ForecastedPercentage(200, 0))
}

func TestParseThresholdType(t *testing.T) {
	got, err := ParseThresholdType("")
	assert.NoError(t, err)
	assert.Equal(t, ThresholdActual, got)

	got, err = ParseThresholdType("Forecasted")
	assert.NoError(t, err)
	assert.Equal(t, ThresholdForecasted, got)

	_, err = ParseThresholdType("projected")
	assert.Error(t, err)
}

func TestEvaluateThresholds(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, EvaluateThresholds(ctx, 0, 100, 200, nil))

	results := EvaluateThresholds(ctx, 500, 300, 600, nil)
	assert.Len(t, results, 3)
	assert.True(t, results[0].Triggered)
	assert.False(t, results[1].Triggered)
	assert.False(t, results[2].Triggered)
	assert.InDelta(t, 60.0, results[0].Utilization, 1e-9)
	assert.True(t, AnyTriggered(results))

	forecasted := EvaluateThresholds(ctx, 500, 100, 550, []Threshold{
		{Percentage: 100, Type: ThresholdForecasted},
		{Percentage: 50, Type: ThresholdActual},
	})
	assert.True(t, forecasted[0].Triggered)
	assert.False(t, forecasted[1].Triggered)

	assert.False(t, AnyTriggered(EvaluateThresholds(ctx, 500, 10, 20, nil)))
}
