package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/cli"
	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/store"
)

type goalListJSON struct {
	Goals []struct {
		ID           string               `json:"id"`
		Title        string               `json:"title"`
		Current      float64              `json:"current"`
		Category     string               `json:"category"`
		Status       footprint.GoalStatus `json:"status"`
		PastDeadline bool                 `json:"past_deadline"`
		Progress     float64              `json:"progress"`
	} `json:"goals"`
	Counts struct {
		Active       int `json:"active"`
		Completed    int `json:"completed"`
		Overdue      int `json:"overdue"`
		PastDeadline int `json:"past_deadline"`
	} `json:"counts"`
}

func listGoals(t *testing.T) goalListJSON {
	t.Helper()
	out := mustRunCLI(t, "goal", "list", "-o", "json")
	var doc goalListJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	return doc
}

func TestGoalLifecycle(t *testing.T) {
	setupCLITest(t)

	out := mustRunCLI(t, "goal", "add", "--title", "Reduce car travel", "--target", "100",
		"--current", "25", "--unit", "kg CO2", "--deadline", "2026-12-31", "--category", "Transportation")
	assert.Contains(t, out, `Added goal "Reduce car travel"`)

	doc := listGoals(t)
	require.Len(t, doc.Goals, 1)
	g := doc.Goals[0]
	assert.Equal(t, "transportation", g.Category)
	assert.Equal(t, footprint.GoalActive, g.Status)
	assert.False(t, g.PastDeadline)
	assert.InDelta(t, 25.0, g.Progress, 1e-9)

	out = mustRunCLI(t, "goal", "update", g.ID, "--current", "150")
	assert.Contains(t, out, "(100%)", "progress is clamped")

	mustRunCLI(t, "goal", "update", g.ID, "--status", "completed")
	doc = listGoals(t)
	assert.Equal(t, footprint.GoalCompleted, doc.Goals[0].Status)
	assert.Equal(t, 1, doc.Counts.Completed)

	mustRunCLI(t, "goal", "delete", g.ID)
	assert.Empty(t, listGoals(t).Goals)
}

func TestGoalList_StatusIsStored(t *testing.T) {
	setupCLITest(t)

	mustRunCLI(t, "goal", "add", "--title", "Old", "--target", "10", "--deadline", "2026-10-16")
	mustRunCLI(t, "goal", "add", "--title", "Due today", "--target", "10", "--deadline", "2026-10-17")
	mustRunCLI(t, "goal", "add", "--title", "Flagged", "--target", "10", "--deadline", "2026-11-16")

	doc := listGoals(t)
	require.Len(t, doc.Goals, 3)
	mustRunCLI(t, "goal", "update", doc.Goals[2].ID, "--status", "overdue")

	doc = listGoals(t)
	assert.Equal(t, footprint.GoalActive, doc.Goals[0].Status, "a passed deadline does not change the status")
	assert.True(t, doc.Goals[0].PastDeadline)
	assert.Equal(t, footprint.GoalActive, doc.Goals[1].Status)
	assert.False(t, doc.Goals[1].PastDeadline)
	assert.Equal(t, footprint.GoalOverdue, doc.Goals[2].Status, "a stored overdue stays overdue")
	assert.False(t, doc.Goals[2].PastDeadline)
	assert.Equal(t, 2, doc.Counts.Active)
	assert.Equal(t, 1, doc.Counts.Overdue)
	assert.Equal(t, 1, doc.Counts.PastDeadline)

	out := mustRunCLI(t, "goal", "list", "-o", "table")
	assert.Contains(t, out, "active (past deadline)")
	assert.Contains(t, out, "1 unfinished past their deadline")
}

func TestGoal_Errors(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "goal", "add", "--title", "No deadline", "--target", "5")
	require.Error(t, err, "deadline is required")

	_, err = runCLI(t, "goal", "add", "--title", "Bad", "--target", "5", "--deadline", "2026-12-31",
		"--category", "travel")
	require.ErrorIs(t, err, footprint.ErrInvalidCategory)

	_, err = runCLI(t, "goal", "add", "--title", "Negative", "--target", "-5", "--deadline", "2026-12-31")
	require.ErrorIs(t, err, footprint.ErrInvalidGoal)

	mustRunCLI(t, "goal", "add", "--title", "Keep", "--target", "5", "--deadline", "2026-12-31")
	id := listGoals(t).Goals[0].ID

	_, err = runCLI(t, "goal", "update", id)
	require.ErrorIs(t, err, cli.ErrNoGoalChanges)

	_, err = runCLI(t, "goal", "update", "missing", "--current", "1")
	require.ErrorIs(t, err, store.ErrGoalNotFound)

	_, err = runCLI(t, "goal", "delete", "missing")
	require.ErrorIs(t, err, store.ErrGoalNotFound)
}

func TestGoalList_Table(t *testing.T) {
	setupCLITest(t)

	out := mustRunCLI(t, "goal", "list", "-o", "table")
	assert.Contains(t, out, "No goals yet")

	mustRunCLI(t, "goal", "add", "--title", "Meatless Mondays", "--target", "4", "--current", "1",
		"--unit", "days", "--deadline", "2026-11-30", "--category", "food")
	out = mustRunCLI(t, "goal", "list", "-o", "table")
	assert.Contains(t, out, "Meatless Mondays")
	assert.Contains(t, out, "(25%)")
	assert.Contains(t, out, "1 active, 0 completed, 0 overdue")
}
