package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/logging"
	"github.com/rshade/carbontrack/internal/store"
	"github.com/rshade/carbontrack/internal/tui"
)

// NewDashboardCmd creates `dashboard`, the interactive terminal UI. Without
// a terminal it prints the plain summary instead.
func NewDashboardCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long: `Open the interactive dashboard with the Dashboard, History and Goals tabs.

Keys: tab/shift+tab or 1-3 switch tabs, r reloads, q quits.
History: / searches, c cycles the category, p cycles the period, esc clears.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.GetGlobalConfig()

			if tui.DetectOutputMode(plain, true) != tui.OutputModeInteractive {
				logging.FromContext(ctx).Debug().
					Str("component", "cli").
					Str("operation", "dashboard").
					Msg("no interactive terminal, printing summary")
				return printPlainDashboard(cmd, cfg)
			}

			model := tui.NewDashboardModel(ctx, tui.DashboardOptions{
				Load:              dashboardLoader,
				Now:               nowFunc,
				MonthlyGoal:       cfg.Profile.MonthlyGoal,
				AverageWindowDays: cfg.Dashboard.AverageWindowDays,
				TrendMonths:       cfg.Dashboard.TrendMonths,
				RecentEntries:     cfg.Dashboard.RecentEntries,
			})
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run interactive TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the summary instead of opening the dashboard")
	return cmd
}

// dashboardLoader opens the ledger for each (re)load so edits made in another
// terminal show up on reload.
func dashboardLoader(ctx context.Context) (tui.DashboardData, error) {
	var data tui.DashboardData
	err := withLedger(ctx, func(p store.Provider) error {
		var loadErr error
		data.Entries, data.Goals, loadErr = loadLedger(ctx, p)
		return loadErr
	})
	return data, err
}

func printPlainDashboard(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	data, err := dashboardLoader(ctx)
	if err != nil {
		return err
	}

	now := nowFunc()
	summary := engine.Summarize(ctx, data.Entries, engine.SummaryOptions{
		Now:               now,
		MonthlyGoal:       cfg.Profile.MonthlyGoal,
		AverageWindowDays: cfg.Dashboard.AverageWindowDays,
	})
	out := cmd.OutOrStdout()
	if err = renderSummaryTable(out, summary); err != nil {
		return err
	}

	recent := data.Entries[:min(cfg.Dashboard.RecentEntries, len(data.Entries))]
	if len(recent) > 0 {
		fmt.Fprintln(out, "\nRecent activity")
		for _, e := range recent {
			fmt.Fprintln(out, "  "+tui.RenderEntryLine(e))
		}
	}

	today := footprint.DateOf(now)
	for i, g := range data.Goals {
		if i == 0 {
			fmt.Fprintln(out, "\nGoals")
		}
		fmt.Fprintf(out, "  %s  %.0f%%  %s\n", g.Title, engine.GoalProgress(g),
			goalStatusLabel(g.Status, engine.PastDeadline(g, today)))
	}
	return nil
}
