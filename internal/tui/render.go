package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/greenops"
)

const (
	barFull  = "█"
	barEmpty = "░"

	statCardCount = 4
	labelWidth    = 16
	valueWidth    = 12
	trendBarRows  = 6
)

//nolint:gochecknoglobals // Constant lookup table
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// ProgressBar renders percent (clamped to 0..100) as a bar of width cells.
func ProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	p := math.Max(0, math.Min(percent, engine.PercentageMultiplier))
	filled := int(math.Round(p / engine.PercentageMultiplier * float64(width)))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(barFull, filled)) +
		SubtleStyle.Render(strings.Repeat(barEmpty, width-filled))
}

// RenderStatCards renders the headline numbers as a row of cards.
func RenderStatCards(s engine.DashboardSummary, width int) string {
	cardWidth := max(width/statCardCount-2, labelWidth)

	card := func(title, value, sub string) string {
		body := lipgloss.JoinVertical(lipgloss.Left,
			LabelStyle.Render(title),
			ValueStyle.Render(value),
			sub,
		)
		return CardStyle.Width(cardWidth).Render(body)
	}

	trend := TrendStyle(s.MonthlyTrend).Render(
		fmt.Sprintf("%s %s vs last month", s.MonthlyTrend.Symbol(), greenops.FormatPercent(s.MonthlyChange)))
	health := lipgloss.NewStyle().Foreground(HealthColor(s.BudgetHealth)).Render(
		fmt.Sprintf("%.0f%% of %s", s.GoalProgress, greenops.FormatCarbonAmount(s.MonthlyGoal, true)))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("This Month", greenops.FormatCarbonAmount(s.MonthlyTotal, true), trend),
		card("Daily Average", greenops.FormatCarbonAmount(s.DailyAverage, true), SubtleStyle.Render("last 30 days")),
		card("This Week", greenops.FormatCarbonAmount(s.WeeklyTotal, true), SubtleStyle.Render("last 7 entries")),
		card("Monthly Goal", ProgressBar(s.GoalProgress, cardWidth-2, HealthColor(s.BudgetHealth)), health),
	)
}

// RenderCategoryBars renders the category breakdown, one colored bar per category.
func RenderCategoryBars(rows []engine.CategoryData, width int) string {
	barWidth := max(width-labelWidth-valueWidth-labelWidth, 10) //nolint:mnd // Minimum bar width.

	lines := []string{HeaderStyle.Render("Category Breakdown")}
	for _, r := range rows {
		style := CategoryStyle(r.Category)
		label := style.Render(fmt.Sprintf("%-*s", labelWidth, r.Category.Label()))
		bar := ProgressBar(r.Percentage, barWidth, lipgloss.Color(r.Category.Color()))
		value := fmt.Sprintf("%*s", valueWidth, greenops.FormatCarbonAmount(r.Total, true))
		change := TrendStyle(r.Trend).Render(fmt.Sprintf(" %s %5.1f%%", r.Trend.Symbol(), r.Percentage))
		lines = append(lines, label+bar+value+change)
	}
	return strings.Join(lines, "\n")
}

// RenderTrendBars renders the monthly series as vertical bars scaled to the
// largest month.
func RenderTrendBars(series []engine.MonthlyData) string {
	if len(series) == 0 {
		return ""
	}

	peak := 0.0
	for _, m := range series {
		peak = math.Max(peak, m.Total)
	}

	const colWidth = 5
	rows := make([]string, 0, trendBarRows+1)
	for level := trendBarRows; level >= 1; level-- {
		var b strings.Builder
		for _, m := range series {
			b.WriteString(fmt.Sprintf("%-*s", colWidth, trendCell(m.Total, peak, level)))
		}
		rows = append(rows, InfoStyle.Render(strings.TrimRight(b.String(), " ")))
	}

	var labels strings.Builder
	for _, m := range series {
		labels.WriteString(fmt.Sprintf("%-*s", colWidth, m.Month))
	}
	rows = append(rows, SubtleStyle.Render(strings.TrimRight(labels.String(), " ")))

	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("Monthly Trend"),
		strings.Join(rows, "\n"),
		SubtleStyle.Render("peak "+greenops.FormatCarbonAmount(peak, true)),
	)
}

// trendCell returns the glyph for one row of a bar of height total/peak.
func trendCell(total, peak float64, level int) string {
	if peak <= 0 || total <= 0 {
		return ""
	}
	height := total / peak * trendBarRows
	switch {
	case height >= float64(level):
		return "███"
	case height > float64(level-1):
		idx := int((height - float64(level-1)) * float64(len(sparkLevels)-1))
		return strings.Repeat(string(sparkLevels[idx]), 3) //nolint:mnd // Bar width matches the full glyph.
	default:
		return ""
	}
}

// Sparkline renders values as a one-line sparkline.
func Sparkline(values []float64) string {
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if peak > 0 && v > 0 {
			idx = int(math.Round(v / peak * float64(len(sparkLevels)-1)))
		}
		out[i] = sparkLevels[idx]
	}
	return string(out)
}

// RenderGoal renders one goal with its progress bar and stored status. An
// unfinished goal past its deadline is flagged next to the status.
func RenderGoal(g footprint.Goal, today footprint.Date, width int) string {
	status := string(g.Status)
	progress := engine.GoalProgress(g)

	color := ColorHighlight
	if engine.PastDeadline(g, today) {
		status += " · past deadline"
		color = ColorCritical
	}
	switch g.Status {
	case footprint.GoalCompleted:
		color = ColorOK
	case footprint.GoalOverdue:
		color = ColorCritical
	case footprint.GoalActive:
	}

	title := ValueStyle.Render(g.Title)
	meta := SubtleStyle.Render(fmt.Sprintf("%s · due %s · %s",
		g.Category, g.Deadline, status))
	bar := ProgressBar(progress, max(width-valueWidth*2, 10), color) //nolint:mnd // Minimum bar width.
	amount := fmt.Sprintf(" %.0f%% (%s/%s %s)", progress,
		greenops.FormatFloat(g.Current, 1), greenops.FormatFloat(g.Target, 1), g.Unit)
	return lipgloss.JoinVertical(lipgloss.Left, title+"  "+meta, bar+amount)
}

// RenderEntryLine renders an entry as a single line for recent-activity lists.
func RenderEntryLine(e footprint.Entry) string {
	return fmt.Sprintf("%s  %s  %-24s %s",
		SubtleStyle.Render(e.Date.String()),
		CategoryStyle(e.Category).Render(fmt.Sprintf("%-15s", e.Category.Label())),
		truncate(e.Subcategory, 24), //nolint:mnd // Column width.
		ValueStyle.Render(greenops.FormatCarbonAmount(e.CarbonFootprint, true)),
	)
}

// RenderInsights renders insights as a bulleted list.
func RenderInsights(insights []engine.Insight) string {
	if len(insights) == 0 {
		return SubtleStyle.Render("No insights yet. Add a few entries first.")
	}
	lines := make([]string, 0, len(insights)*2) //nolint:mnd // Up to two lines per insight.
	for _, in := range insights {
		lines = append(lines, insightStyle(in.Type).Render(insightMarker(in.Type)+" "+in.Title))
		desc := "  " + in.Description
		if in.Action != "" {
			desc += SubtleStyle.Render(" → " + in.Action)
		}
		lines = append(lines, desc)
	}
	return strings.Join(lines, "\n")
}

func insightStyle(t engine.InsightType) lipgloss.Style {
	switch t {
	case engine.InsightWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	case engine.InsightPositive, engine.InsightAchievement:
		return lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	case engine.InsightTip:
		return lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	default:
		return ValueStyle
	}
}

func insightMarker(t engine.InsightType) string {
	switch t {
	case engine.InsightWarning:
		return "!"
	case engine.InsightPositive:
		return "↓"
	case engine.InsightAchievement:
		return "★"
	case engine.InsightTip:
		return "i"
	default:
		return "-"
	}
}

// RenderSummary renders the full styled summary used by `carbontrack summary`.
func RenderSummary(s engine.DashboardSummary, series []engine.MonthlyData, width int) string {
	sections := []string{
		HeaderStyle.Render("Carbon Footprint Summary"),
		RenderStatCards(s, width),
		RenderCategoryBars(s.Categories, width),
	}
	if len(series) > 0 {
		sections = append(sections, RenderTrendBars(series))
	}
	if !s.Equivalencies.IsEmpty {
		sections = append(sections, SubtleStyle.Render(s.Equivalencies.DisplayText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
