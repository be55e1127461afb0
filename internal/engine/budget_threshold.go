package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/rshade/carbontrack/internal/logging"
)

// ThresholdType selects which total a threshold is evaluated against.
type ThresholdType string

// Threshold types.
const (
	ThresholdActual     ThresholdType = "actual"
	ThresholdForecasted ThresholdType = "forecasted"
)

// ParseThresholdType parses a threshold type name. Empty means actual.
func ParseThresholdType(s string) (ThresholdType, error) {
	switch t := ThresholdType(strings.ToLower(strings.TrimSpace(s))); t {
	case "", ThresholdActual:
		return ThresholdActual, nil
	case ThresholdForecasted:
		return ThresholdForecasted, nil
	default:
		return "", fmt.Errorf("threshold type must be 'actual' or 'forecasted', got %q", s)
	}
}

// Default threshold percentages.
const (
	DefaultThreshold50  = 50.0
	DefaultThreshold80  = 80.0
	DefaultThreshold100 = 100.0
)

// Threshold is a percentage of the monthly carbon budget that raises an alert.
type Threshold struct {
	Percentage float64       `json:"percentage"`
	Type       ThresholdType `json:"type"`
}

// ThresholdResult is the outcome of evaluating one threshold.
type ThresholdResult struct {
	Threshold   Threshold `json:"threshold"`
	Triggered   bool      `json:"triggered"`
	Utilization float64   `json:"utilization"`
}

// DefaultThresholds returns 50%, 80% and 100% actual thresholds.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Percentage: DefaultThreshold50, Type: ThresholdActual},
		{Percentage: DefaultThreshold80, Type: ThresholdActual},
		{Percentage: DefaultThreshold100, Type: ThresholdActual},
	}
}

// EvaluateThresholds checks thresholds against the month-to-date total and
// its forecast. Empty thresholds use DefaultThresholds. A non-positive limit
// cannot be evaluated and yields nil.
func EvaluateThresholds(
	ctx context.Context,
	limit, current, forecast float64,
	thresholds []Threshold,
) []ThresholdResult {
	if limit <= 0 {
		return nil
	}
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds()
	}

	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", "evaluateThresholds").
		Logger()

	results := make([]ThresholdResult, 0, len(thresholds))
	for _, t := range thresholds {
		spent := current
		if t.Type == ThresholdForecasted {
			spent = forecast
		}
		utilization := spent / limit * PercentageMultiplier
		r := ThresholdResult{Threshold: t, Utilization: utilization, Triggered: utilization >= t.Percentage}
		if r.Triggered {
			logger.Info().
				Float64("threshold", t.Percentage).
				Str("type", string(t.Type)).
				Float64("utilization", utilization).
				Msg("carbon budget threshold crossed")
		}
		results = append(results, r)
	}
	return results
}

// AnyTriggered reports whether any result was triggered.
func AnyTriggered(results []ThresholdResult) bool {
	for _, r := range results {
		if r.Triggered {
			return true
		}
	}
	return false
}
