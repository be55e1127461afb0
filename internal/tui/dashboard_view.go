package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/greenops"
)

// View renders the current tab (Bubble Tea interface).
func (m DashboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), "", "Loading ledger...")
	case ViewStateError:
		return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), "",
			ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)),
			SubtleStyle.Render("Press 'r' to retry, 'q' to quit"))
	case ViewStateReady:
	}

	var body string
	switch m.tab {
	case TabHistory:
		body = m.renderHistory()
	case TabGoals:
		body = m.renderGoals()
	case TabDashboard, tabCount:
		body = m.renderDashboard()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), "", body, "", m.renderHelp())
}

func (m DashboardModel) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := range tabCount {
		if t == m.tab {
			tabs = append(tabs, ActiveTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, TabStyle.Render(t.String()))
		}
	}
	return HeaderStyle.Render("🌱 carbontrack") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m DashboardModel) renderDashboard() string {
	if len(m.data.Entries) == 0 {
		return SubtleStyle.Render("No entries yet. Run 'carbontrack entry add' or 'carbontrack generate'.")
	}

	sections := []string{
		RenderStatCards(m.summary, m.size.width),
		RenderCategoryBars(m.summary.Categories, m.size.width),
		RenderTrendBars(m.series),
	}

	if !m.summary.Equivalencies.IsEmpty {
		sections = append(sections, SubtleStyle.Render(m.summary.Equivalencies.DisplayText))
	}

	recent := m.data.Entries[:min(m.opts.RecentEntries, len(m.data.Entries))]
	lines := []string{HeaderStyle.Render("Recent Activity")}
	for _, e := range recent {
		lines = append(lines, RenderEntryLine(e))
	}
	sections = append(sections, strings.Join(lines, "\n"))

	if len(m.insights) > 0 {
		sections = append(sections, HeaderStyle.Render("Insights")+"\n"+RenderInsights(m.insights))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderHistory() string {
	stats := engine.HistoryStats(m.filtered)
	category := "all"
	if m.category.Valid() {
		category = m.category.Label()
	}

	filters := fmt.Sprintf("Category: %s | Period: %s", category, m.period)
	if q := m.search.Value(); q != "" {
		filters += fmt.Sprintf(" | Search: %q", q)
	}
	summary := fmt.Sprintf("%d entries | total %s | avg %s",
		stats.Count,
		greenops.FormatCarbonAmount(stats.Total, true),
		greenops.FormatCarbonAmount(stats.Average, true))

	sections := []string{LabelStyle.Render(filters), ValueStyle.Render(summary), m.history.View()}
	if m.searching {
		sections = append(sections, LabelStyle.Render("Search: ")+m.search.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderGoals() string {
	header := fmt.Sprintf("%d active | %d completed | %d overdue | avg progress %.0f%%",
		m.counts.Active, m.counts.Completed, m.counts.Overdue, m.counts.AverageProgress)
	if m.counts.PastDeadline > 0 {
		header += fmt.Sprintf(" | %d past deadline", m.counts.PastDeadline)
	}
	if m.goals.Len() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, ValueStyle.Render(header),
			SubtleStyle.Render("No goals yet. Run 'carbontrack goal add'."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, ValueStyle.Render(header), "", m.goals.View())
}

func (m DashboardModel) renderHelp() string {
	help := "tab/shift+tab switch · r reload · q quit"
	switch m.tab {
	case TabHistory:
		help = "/ search · c category · p period · esc clear · " + help
	case TabGoals:
		help = "↑/↓ select · " + help
	case TabDashboard, tabCount:
	}
	return SubtleStyle.Render(help)
}
