package engine

import (
	"time"

	"github.com/rshade/carbontrack/internal/footprint"
)

// GoalStatusCounts tallies goals by stored status.
type GoalStatusCounts struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	// PastDeadline counts unfinished goals whose deadline is before today,
	// whatever their stored status.
	PastDeadline    int     `json:"past_deadline"`
	AverageProgress float64 `json:"average_progress"`
}

// PastDeadline reports whether an unfinished goal's deadline is before today.
// It is a display hint only and never replaces the stored status.
func PastDeadline(g footprint.Goal, today footprint.Date) bool {
	return g.Status != footprint.GoalCompleted && !g.Deadline.IsZero() && g.Deadline.Before(today)
}

// CountGoalStatuses tallies goals by their stored status, the unfinished
// ones past their deadline as of now, and their mean clamped progress
// rounded to a whole percent.
func CountGoalStatuses(goals []footprint.Goal, now time.Time) GoalStatusCounts {
	today := footprint.DateOf(now)
	var counts GoalStatusCounts
	var progress float64
	for _, g := range goals {
		switch g.Status {
		case footprint.GoalCompleted:
			counts.Completed++
		case footprint.GoalOverdue:
			counts.Overdue++
		case footprint.GoalActive:
			counts.Active++
		}
		if PastDeadline(g, today) {
			counts.PastDeadline++
		}
		progress += GoalProgress(g)
	}
	if len(goals) > 0 {
		counts.AverageProgress = footprint.Round(progress/float64(len(goals)), 0)
	}
	return counts
}
