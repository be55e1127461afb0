package engine

import (
	"context"
	"math"
	"time"

	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/greenops"
	"github.com/rshade/carbontrack/internal/logging"
)

const (
	// DefaultMonthlyGoal is the monthly carbon budget in kg CO2e used when
	// none is configured.
	DefaultMonthlyGoal = 500.0

	// WeeklyWindowEntries is the number of most recent entries the weekly
	// total covers.
	WeeklyWindowEntries = 7
)

// SummaryOptions parameterises Summarize.
type SummaryOptions struct {
	Now               time.Time
	MonthlyGoal       float64
	AverageWindowDays int
}

// DashboardSummary holds the headline numbers of the dashboard.
type DashboardSummary struct {
	GeneratedAt time.Time `json:"generated_at"`
	EntryCount  int       `json:"entry_count"`

	MonthlyTotal       float64 `json:"monthly_total"`
	PreviousMonthTotal float64 `json:"previous_month_total"`
	MonthlyChange      float64 `json:"monthly_change"`
	MonthlyTrend       Trend   `json:"monthly_trend"`

	DailyAverage float64 `json:"daily_average"`
	WeeklyTotal  float64 `json:"weekly_total"`

	MonthlyGoal float64 `json:"monthly_goal"`
	// GoalProgress is the month total as a rounded, unclamped percentage of
	// MonthlyGoal.
	GoalProgress         float64      `json:"goal_progress"`
	BudgetHealth         BudgetHealth `json:"budget_health"`
	ForecastedMonthTotal float64      `json:"forecasted_month_total"`
	ForecastPercentage   float64      `json:"forecast_percentage"`
	ForecastHealth       BudgetHealth `json:"forecast_health"`

	Categories    []CategoryData             `json:"categories"`
	Equivalencies greenops.EquivalencyOutput `json:"equivalencies"`
}

// Summarize computes the dashboard summary of entries, which must be sorted
// newest first. Zero-valued options fall back to the dashboard defaults.
func Summarize(ctx context.Context, entries []footprint.Entry, opts SummaryOptions) DashboardSummary {
	log := logging.FromContext(ctx)

	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.MonthlyGoal <= 0 {
		opts.MonthlyGoal = DefaultMonthlyGoal
	}
	if opts.AverageWindowDays <= 0 {
		opts.AverageWindowDays = DefaultAverageWindowDays
	}

	now := opts.Now
	prev := now.AddDate(0, 0, -now.Day()+1).AddDate(0, -1, 0)

	current := EntriesInMonth(entries, now)
	previous := EntriesInMonth(entries, prev)

	monthly := SumFootprint(current)
	previousTotal := SumFootprint(previous)
	weekly := SumFootprint(entries[:min(WeeklyWindowEntries, len(entries))])
	progress := math.Round(monthly / opts.MonthlyGoal * PercentageMultiplier)
	forecast := ForecastMonthTotal(monthly, now)
	forecastPct := ForecastedPercentage(forecast, opts.MonthlyGoal)

	equiv, err := greenops.CalculateKg(monthly)
	if err != nil {
		log.Warn().
			Str("component", "engine").
			Str("operation", "summarize").
			Err(err).
			Msg("equivalency calculation failed")
	}

	summary := DashboardSummary{
		GeneratedAt:          now,
		EntryCount:           len(entries),
		MonthlyTotal:         monthly,
		PreviousMonthTotal:   previousTotal,
		MonthlyChange:        PercentageChange(monthly, previousTotal),
		MonthlyTrend:         TrendDirection(monthly, previousTotal),
		DailyAverage:         DailyAverage(entries, opts.AverageWindowDays),
		WeeklyTotal:          weekly,
		MonthlyGoal:          opts.MonthlyGoal,
		GoalProgress:         progress,
		BudgetHealth:         BudgetHealthFromPercentage(progress),
		ForecastedMonthTotal: forecast,
		ForecastPercentage:   forecastPct,
		ForecastHealth:       BudgetHealthFromPercentage(forecastPct),
		Categories:           CategoryBreakdown(current, previous),
		Equivalencies:        equiv,
	}

	log.Debug().
		Str("component", "engine").
		Str("operation", "summarize").
		Int("entries", len(entries)).
		Float64("monthly_total", monthly).
		Float64("forecast", forecast).
		Str("health", string(summary.BudgetHealth)).
		Msg("dashboard summary computed")

	return summary
}
