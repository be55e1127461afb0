package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/footprint"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		width   int
		full    int
	}{
		{name: "empty", percent: 0, width: 10, full: 0},
		{name: "half", percent: 50, width: 10, full: 5},
		{name: "over 100 clamps", percent: 250, width: 10, full: 10},
		{name: "negative clamps", percent: -5, width: 4, full: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percent, tt.width, ColorOK)
			assert.Equal(t, tt.full, strings.Count(bar, barFull))
			assert.Equal(t, tt.width-tt.full, strings.Count(bar, barEmpty))
		})
	}
	assert.Empty(t, ProgressBar(50, 0, ColorOK))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▅█", Sparkline([]float64{0, 50, 100}))
	assert.Equal(t, "▁▁", Sparkline([]float64{0, 0}))
	assert.Empty(t, Sparkline(nil))
}

func TestRenderTrendBars(t *testing.T) {
	assert.Empty(t, RenderTrendBars(nil))

	out := RenderTrendBars([]engine.MonthlyData{
		{Month: "Sep", Total: 10},
		{Month: "Oct", Total: 20},
	})
	assert.Contains(t, out, "Monthly Trend")
	assert.Contains(t, out, "Sep")
	assert.Contains(t, out, "Oct")
	assert.Contains(t, out, "peak 20.0kg")
}

func TestRenderInsights(t *testing.T) {
	assert.Contains(t, RenderInsights(nil), "No insights yet")

	out := RenderInsights([]engine.Insight{
		{Type: engine.InsightTip, Title: "Energy Usage Tip", Description: "desc", Action: "act"},
	})
	assert.Contains(t, out, "Energy Usage Tip")
	assert.Contains(t, out, "→ act")
}

func TestRenderGoal_StoredStatus(t *testing.T) {
	today, _ := footprint.ParseDate("2026-10-17")
	past, _ := footprint.ParseDate("2026-01-01")
	future, _ := footprint.ParseDate("2026-12-31")

	late := footprint.Goal{Title: "Late", Target: 10, Current: 5, Unit: "kg",
		Deadline: past, Category: "overall", Status: footprint.GoalActive}
	out := RenderGoal(late, today, 80)
	assert.Contains(t, out, "Late")
	assert.Contains(t, out, "active · past deadline")
	assert.NotContains(t, out, "overdue")
	assert.Contains(t, out, "50%")

	marked := footprint.Goal{Title: "Marked", Target: 10, Current: 1, Unit: "kg",
		Deadline: future, Category: "overall", Status: footprint.GoalOverdue}
	out = RenderGoal(marked, today, 80)
	assert.Contains(t, out, "overdue")
	assert.NotContains(t, out, "active")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
