package footprint

import (
	"fmt"
	"math"
	"strings"
)

// GoalStatus is the manually maintained state of a goal.
type GoalStatus string

// Goal statuses.
const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalOverdue   GoalStatus = "overdue"
)

// GoalCategoryOverall is the goal category sentinel for goals spanning all categories.
const GoalCategoryOverall = "overall"

// ParseGoalStatus resolves a status string (case-insensitive).
func ParseGoalStatus(s string) (GoalStatus, error) {
	switch st := GoalStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case GoalActive, GoalCompleted, GoalOverdue:
		return st, nil
	default:
		return "", fmt.Errorf("%w: status must be active, completed or overdue, got %q", ErrInvalidGoal, s)
	}
}

// Goal is a reduction or activity target tracked against a deadline.
//
// Status is stored as given. Nothing in this module moves a goal between
// statuses on its own.
type Goal struct {
	ID       string  `json:"id"       yaml:"id"`
	Title    string  `json:"title"    yaml:"title"`
	Target   float64 `json:"target"   yaml:"target"`
	Current  float64 `json:"current"  yaml:"current"`
	Unit     string  `json:"unit"     yaml:"unit"`
	Deadline Date    `json:"deadline" yaml:"deadline"`

	// Category is a category identifier or GoalCategoryOverall.
	Category string     `json:"category" yaml:"category"`
	Status   GoalStatus `json:"status"   yaml:"status"`
}

// NormalizeGoalCategory validates a goal category and returns its canonical form.
func NormalizeGoalCategory(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == GoalCategoryOverall {
		return GoalCategoryOverall, nil
	}
	c, err := ParseCategory(s)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// Validate checks that the goal has a title, finite non-negative values,
// a deadline, a known category and a known status.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidGoal)
	}
	for name, v := range map[string]float64{"target": g.Target, "current": g.Current} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidGoal, name)
		}
	}
	if g.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalidGoal)
	}
	if _, err := NormalizeGoalCategory(g.Category); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGoal, err)
	}
	if _, err := ParseGoalStatus(string(g.Status)); err != nil {
		return err
	}
	return nil
}

// IsOverall reports whether the goal spans every category.
func (g Goal) IsOverall() bool {
	return g.Category == GoalCategoryOverall
}
