package config

import (
	"errors"
	"fmt"

	"github.com/rshade/carbontrack/internal/engine"
)

// AlertType represents the type of budget alert evaluation.
type AlertType string

// Valid alert types for budget threshold evaluation.
const (
	// AlertTypeActual triggers when the month-to-date footprint crosses the threshold.
	AlertTypeActual AlertType = "actual"
	// AlertTypeForecasted triggers when the month-end forecast crosses the threshold.
	AlertTypeForecasted AlertType = "forecasted"
)

// Budget validation limits.
const (
	MaxThresholdPercent = 1000.0 // Allow alerts up to 1000% for extreme overshoot detection
	MinThresholdPercent = 0.0
)

// Exit code limits (Unix standard).
const (
	MinExitCode = 0
	MaxExitCode = 255
)

// Budget validation errors.
var (
	ErrAlertThresholdOutOfRange = errors.New("alert threshold must be between 0 and 1000")
	ErrAlertTypeInvalid         = errors.New("alert type must be 'actual' or 'forecasted'")
	ErrExitCodeOutOfRange       = errors.New("exit code must be between 0 and 255")
)

// AlertConfig is a percentage of the monthly carbon budget that raises an alert.
type AlertConfig struct {
	// Threshold is the percentage of budget consumed that triggers this alert (e.g., 80.0 for 80%).
	Threshold float64   `yaml:"threshold" json:"threshold"`
	Type      AlertType `yaml:"type"      json:"type"`
}

// Validate checks if the alert configuration is valid.
func (a AlertConfig) Validate() error {
	if a.Threshold < MinThresholdPercent || a.Threshold > MaxThresholdPercent {
		return fmt.Errorf("%w: got %.2f", ErrAlertThresholdOutOfRange, a.Threshold)
	}
	if a.Type != AlertTypeActual && a.Type != AlertTypeForecasted {
		return fmt.Errorf("%w: got %q", ErrAlertTypeInvalid, a.Type)
	}
	return nil
}

// BudgetConfig holds the alerts evaluated against profile.monthly_goal.
type BudgetConfig struct {
	// Alerts is a list of thresholds. Empty means the 50/80/100% defaults.
	Alerts []AlertConfig `yaml:"alerts,omitempty" json:"alerts,omitempty"`

	// ExitOnThreshold makes `carbontrack summary` exit non-zero when an alert triggers.
	ExitOnThreshold bool `yaml:"exit_on_threshold,omitempty" json:"exit_on_threshold,omitempty"`
	// ExitCode is used when ExitOnThreshold is set. Defaults to 1.
	ExitCode int `yaml:"exit_code,omitempty" json:"exit_code,omitempty"`
}

// GetExitCode returns the configured exit code, defaulting to 1 if not set.
func (b BudgetConfig) GetExitCode() int {
	if b.ExitCode != 0 {
		return b.ExitCode
	}
	return 1
}

// Validate checks every alert and the exit code.
func (b BudgetConfig) Validate() error {
	for i, alert := range b.Alerts {
		if err := alert.Validate(); err != nil {
			return fmt.Errorf("alert[%d]: %w", i, err)
		}
	}
	if b.ExitOnThreshold && (b.ExitCode < MinExitCode || b.ExitCode > MaxExitCode) {
		return fmt.Errorf("%w: got %d", ErrExitCodeOutOfRange, b.ExitCode)
	}
	return nil
}

// Thresholds converts the alerts for engine.EvaluateThresholds.
func (b BudgetConfig) Thresholds() []engine.Threshold {
	out := make([]engine.Threshold, 0, len(b.Alerts))
	for _, a := range b.Alerts {
		t := engine.ThresholdActual
		if a.Type == AlertTypeForecasted {
			t = engine.ThresholdForecasted
		}
		out = append(out, engine.Threshold{Percentage: a.Threshold, Type: t})
	}
	return out
}
