package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/greenops"
	"github.com/rshade/carbontrack/internal/store"
	"github.com/rshade/carbontrack/internal/tui"
)

// summaryParams holds the flags of `summary`.
type summaryParams struct {
	output          string
	plain           bool
	monthlyGoal     float64
	exitOnThreshold bool
	exitCode        int
}

// summaryResult is the JSON document of `summary`.
type summaryResult struct {
	engine.DashboardSummary

	Alerts []engine.ThresholdResult `json:"alerts"`
}

// NewSummaryCmd creates `summary`, the dashboard numbers for the current month.
func NewSummaryCmd() *cobra.Command {
	var params summaryParams

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show this month's footprint against your budget",
		Long: `Show the month-to-date footprint, the previous month for comparison,
the daily average, a category breakdown, and the alerts configured under
budget.alerts evaluated against profile.monthly_goal.

With --exit-on-threshold (or budget.exit_on_threshold) the command exits
with budget.exit_code when any alert is triggered, for use in scripts.`,
		Example: `  # Styled summary on a terminal
  carbontrack summary

  # Machine-readable
  carbontrack summary -o json

  # Fail a script when the month is over 80% of budget
  carbontrack summary --exit-on-threshold --exit-code 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeSummary(cmd, params)
		},
	}

	addOutputFlag(cmd, &params.output)
	cmd.Flags().BoolVar(&params.plain, "plain", false, "Disable colors and styling")
	cmd.Flags().Float64Var(&params.monthlyGoal, "monthly-goal", 0,
		"Monthly budget in kg CO2e (defaults to profile.monthly_goal)")
	cmd.Flags().BoolVar(&params.exitOnThreshold, "exit-on-threshold", false,
		"Exit non-zero when a budget alert is triggered")
	cmd.Flags().IntVar(&params.exitCode, "exit-code", 1, "Exit code used with --exit-on-threshold (0 only warns)")

	return cmd
}

func executeSummary(cmd *cobra.Command, params summaryParams) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}

	goal := cfg.Profile.MonthlyGoal
	if params.monthlyGoal > 0 {
		goal = params.monthlyGoal
	}

	var entries []footprint.Entry
	err = withLedger(ctx, func(p store.Provider) error {
		var listErr error
		entries, listErr = p.ListEntries(ctx)
		return listErr
	})
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}

	now := nowFunc()
	summary := engine.Summarize(ctx, entries, engine.SummaryOptions{
		Now:               now,
		MonthlyGoal:       goal,
		AverageWindowDays: cfg.Dashboard.AverageWindowDays,
	})
	alerts := engine.EvaluateThresholds(ctx, summary.MonthlyGoal, summary.MonthlyTotal,
		summary.ForecastedMonthTotal, cfg.Budget.Thresholds())

	out := cmd.OutOrStdout()
	switch {
	case format == config.FormatJSON || format == config.FormatNDJSON:
		result := summaryResult{DashboardSummary: summary, Alerts: alerts}
		if result.Alerts == nil {
			result.Alerts = []engine.ThresholdResult{}
		}
		err = renderJSON(out, result)
	case styledEnabled(format, params.plain):
		series := engine.MonthlySeries(entries, now, cfg.Dashboard.TrendMonths)
		_, err = fmt.Fprint(out, tui.RenderSummary(summary, series, tui.TerminalWidth()))
		if err == nil {
			err = renderAlerts(out, alerts)
		}
	default:
		err = renderSummaryTable(out, summary)
		if err == nil {
			err = renderAlerts(out, alerts)
		}
	}
	if err != nil {
		return err
	}

	return checkBudgetExit(cmd, cfg.Budget, params, alerts)
}

func renderSummaryTable(w io.Writer, s engine.DashboardSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "This month\t%s\t%s %s vs last month\n",
		greenops.FormatCarbonAmount(s.MonthlyTotal, true),
		s.MonthlyTrend.Symbol(), greenops.FormatPercent(s.MonthlyChange))
	fmt.Fprintf(tw, "Last month\t%s\t\n", greenops.FormatCarbonAmount(s.PreviousMonthTotal, true))
	fmt.Fprintf(tw, "Daily average\t%s\t\n", greenops.FormatCarbonAmount(s.DailyAverage, true))
	fmt.Fprintf(tw, "Last 7 entries\t%s\t\n", greenops.FormatCarbonAmount(s.WeeklyTotal, true))
	fmt.Fprintf(tw, "Monthly goal\t%s\t%.0f%% used (%s)\n",
		greenops.FormatCarbonAmount(s.MonthlyGoal, true), s.GoalProgress, s.BudgetHealth)
	fmt.Fprintf(tw, "Forecast\t%s\t%.0f%% of goal (%s)\n",
		greenops.FormatCarbonAmount(s.ForecastedMonthTotal, true), s.ForecastPercentage, s.ForecastHealth)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.Categories) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tTOTAL\tSHARE\tTREND")
		for _, c := range s.Categories {
			fmt.Fprintf(tw, "%s\t%s\t%.0f%%\t%s %s\n",
				c.Category.Label(), greenops.FormatCarbonAmount(c.Total, true), c.Percentage,
				c.Trend.Symbol(), greenops.FormatPercent(c.Change))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if !s.Equivalencies.IsEmpty {
		if _, err := fmt.Fprintln(w, "\n"+s.Equivalencies.DisplayText); err != nil {
			return err
		}
	}
	return nil
}

func renderAlerts(w io.Writer, alerts []engine.ThresholdResult) error {
	var triggered []string
	for _, a := range alerts {
		if a.Triggered {
			triggered = append(triggered, fmt.Sprintf("%s %.0f%% (at %.0f%%)",
				a.Threshold.Type, a.Threshold.Percentage, a.Utilization))
		}
	}
	if len(triggered) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "\nBudget alerts: %s\n", strings.Join(triggered, ", "))
	return err
}

// checkBudgetExit returns a BudgetExitError when exit-on-threshold is
// enabled and an alert triggered. Flags override the configuration. An exit
// code of 0 only prints a warning.
func checkBudgetExit(
	cmd *cobra.Command,
	budget config.BudgetConfig,
	params summaryParams,
	alerts []engine.ThresholdResult,
) error {
	exitOn := budget.ExitOnThreshold
	if cmd.Flags().Changed("exit-on-threshold") {
		exitOn = params.exitOnThreshold
	}
	if !exitOn || !engine.AnyTriggered(alerts) {
		return nil
	}

	exitCode := budget.GetExitCode()
	if cmd.Flags().Changed("exit-code") {
		exitCode = params.exitCode
	}

	var highest engine.ThresholdResult
	for _, a := range alerts {
		if a.Triggered && a.Threshold.Percentage >= highest.Threshold.Percentage {
			highest = a
		}
	}
	reason := fmt.Sprintf("carbon budget %s threshold %.0f%% crossed (%.0f%% of monthly goal)",
		highest.Threshold.Type, highest.Threshold.Percentage, highest.Utilization)

	if exitCode == 0 {
		cmd.PrintErrf("WARNING: %s\n", reason)
		return nil
	}
	return &BudgetExitError{ExitCode: exitCode, Reason: reason}
}

// NewTrendCmd creates `trend`, the monthly totals over recent months.
func NewTrendCmd() *cobra.Command {
	var (
		output string
		months int
	)

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show monthly totals over time",
		Example: `  # The configured number of months
  carbontrack trend

  # The last 6 months as JSON
  carbontrack trend --months 6 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			if months <= 0 {
				months = config.GetGlobalConfig().Dashboard.TrendMonths
			}

			var entries []footprint.Entry
			err = withLedger(ctx, func(p store.Provider) error {
				var listErr error
				entries, listErr = p.ListEntries(ctx)
				return listErr
			})
			if err != nil {
				return fmt.Errorf("listing entries: %w", err)
			}

			series := engine.MonthlySeries(entries, nowFunc(), months)
			out := cmd.OutOrStdout()
			switch format {
			case config.FormatJSON:
				return renderJSON(out, series)
			case config.FormatNDJSON:
				return renderNDJSON(out, series)
			}

			totals := make([]float64, 0, len(series))
			tw := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, "MONTH\tTOTAL")
			for _, m := range series {
				totals = append(totals, m.Total)
				fmt.Fprintf(tw, "%s %d\t%s\n", m.Month, m.Year, greenops.FormatCarbonAmount(m.Total, true))
			}
			if err = tw.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "\n%s\n", tui.Sparkline(totals))
			return err
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().IntVar(&months, "months", 0, "Number of months (defaults to dashboard.trend_months)")
	return cmd
}

// NewInsightsCmd creates `insights`, the tips and observations derived from
// the ledger.
func NewInsightsCmd() *cobra.Command {
	var (
		output string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:     "insights",
		Aliases: []string{"tips"},
		Short:   "Show reduction tips and observations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}

			var (
				entries []footprint.Entry
				goals   []footprint.Goal
			)
			err = withLedger(ctx, func(p store.Provider) error {
				var loadErr error
				entries, goals, loadErr = loadLedger(ctx, p)
				return loadErr
			})
			if err != nil {
				return err
			}

			insights := engine.GenerateInsights(entries, goals, nowFunc())
			out := cmd.OutOrStdout()
			switch {
			case format == config.FormatJSON:
				if insights == nil {
					insights = []engine.Insight{}
				}
				return renderJSON(out, insights)
			case format == config.FormatNDJSON:
				return renderNDJSON(out, insights)
			case styledEnabled(format, plain):
				_, err = fmt.Fprintln(out, tui.RenderInsights(insights))
				return err
			}

			if len(insights) == 0 {
				_, err = fmt.Fprintln(out, "No insights yet. Record a few activities first.")
				return err
			}
			for _, in := range insights {
				fmt.Fprintf(out, "[%s] %s\n  %s\n", in.Type, in.Title, in.Description)
				if in.Action != "" {
					fmt.Fprintf(out, "  Action: %s\n", in.Action)
				}
			}
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors and styling")
	return cmd
}
