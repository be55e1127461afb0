package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/greenops"
	"github.com/rshade/carbontrack/internal/store"
	"github.com/rshade/carbontrack/internal/tui"
)

// ErrNoGoalChanges is returned by `goal update` when no field flag is set.
var ErrNoGoalChanges = errors.New("nothing to update: set at least one of --title, --target, --current, --unit, --deadline, --category, --status")

// goalParams holds the field flags shared by `goal add` and `goal update`.
type goalParams struct {
	title    string
	target   float64
	current  float64
	unit     string
	deadline string
	category string
	status   string
}

func (p *goalParams) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.title, "title", "", "Goal title")
	cmd.Flags().Float64Var(&p.target, "target", 0, "Target value")
	cmd.Flags().Float64Var(&p.current, "current", 0, "Current progress")
	cmd.Flags().StringVar(&p.unit, "unit", "", "Unit of target and current, e.g. \"kg CO2\" or \"days\"")
	cmd.Flags().StringVar(&p.deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.category, "category", "", "Category the goal applies to, or \"overall\"")
	cmd.Flags().StringVar(&p.status, "status", "", "Status: active, completed, or overdue")
}

// apply copies every flag the user set onto g.
func (p *goalParams) apply(cmd *cobra.Command, g *footprint.Goal) (bool, error) {
	changed := false
	flags := cmd.Flags()
	if flags.Changed("title") {
		g.Title, changed = p.title, true
	}
	if flags.Changed("target") {
		g.Target, changed = p.target, true
	}
	if flags.Changed("current") {
		g.Current, changed = p.current, true
	}
	if flags.Changed("unit") {
		g.Unit, changed = p.unit, true
	}
	if flags.Changed("deadline") {
		d, err := footprint.ParseDate(p.deadline)
		if err != nil {
			return false, fmt.Errorf("invalid --deadline: %w", err)
		}
		g.Deadline, changed = d, true
	}
	if flags.Changed("category") {
		c, err := footprint.NormalizeGoalCategory(p.category)
		if err != nil {
			return false, fmt.Errorf("invalid --category: %w", err)
		}
		g.Category, changed = c, true
	}
	if flags.Changed("status") {
		s, err := footprint.ParseGoalStatus(p.status)
		if err != nil {
			return false, fmt.Errorf("invalid --status: %w", err)
		}
		g.Status, changed = s, true
	}
	return changed, nil
}

// NewGoalAddCmd creates `goal add`.
func NewGoalAddCmd() *cobra.Command {
	var params goalParams

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a goal",
		Example: `  # Cut transport emissions to 100 kg by the end of the year
  carbontrack goal add --title "Reduce car travel" --target 100 --unit "kg CO2" \
    --deadline 2026-12-31 --category transportation`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			g := footprint.Goal{
				ID:       footprint.NewID(),
				Category: footprint.GoalCategoryOverall,
				Status:   footprint.GoalActive,
			}
			if _, err := params.apply(cmd, &g); err != nil {
				return err
			}
			if err := g.Validate(); err != nil {
				return err
			}

			err := withLedger(ctx, func(p store.Provider) error {
				return p.AddGoal(ctx, g)
			})
			audit(ctx, "goal.add", g.ID, map[string]string{"title": g.Title}, err)
			if err != nil {
				return fmt.Errorf("saving goal: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added goal %q\nID: %s\n", g.Title, g.ID)
			return err
		},
	}

	params.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("deadline")
	return cmd
}

// goalView is a goal with its derived display fields.
type goalView struct {
	footprint.Goal

	PastDeadline bool                        `json:"past_deadline"`
	Progress     float64                     `json:"progress"`
	Equivalency  *greenops.EquivalencyOutput `json:"equivalency,omitempty"`
}

// goalListResult is the JSON document of `goal list`.
type goalListResult struct {
	Goals  []goalView              `json:"goals"`
	Counts engine.GoalStatusCounts `json:"counts"`
}

// NewGoalListCmd creates `goal list`.
func NewGoalListCmd() *cobra.Command {
	var (
		output string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals with progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}

			var goals []footprint.Goal
			err = withLedger(ctx, func(p store.Provider) error {
				var listErr error
				goals, listErr = p.ListGoals(ctx)
				return listErr
			})
			if err != nil {
				return fmt.Errorf("listing goals: %w", err)
			}

			now := nowFunc()
			today := footprint.DateOf(now)
			views := make([]goalView, 0, len(goals))
			for _, g := range goals {
				views = append(views, goalView{
					Goal:         g,
					PastDeadline: engine.PastDeadline(g, today),
					Progress:     engine.GoalProgress(g),
					Equivalency:  goalEquivalency(g),
				})
			}
			counts := engine.CountGoalStatuses(goals, now)

			out := cmd.OutOrStdout()
			switch {
			case format == config.FormatJSON:
				return renderJSON(out, goalListResult{Goals: views, Counts: counts})
			case format == config.FormatNDJSON:
				return renderNDJSON(out, views)
			case styledEnabled(format, plain):
				width := tui.TerminalWidth()
				for _, g := range goals {
					fmt.Fprintln(out, tui.RenderGoal(g, today, width))
				}
				return renderGoalCounts(out, counts)
			default:
				return renderGoalTable(out, views, counts)
			}
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors and styling")
	return cmd
}

func renderGoalTable(w io.Writer, views []goalView, counts engine.GoalStatusCounts) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No goals yet. Add one with `carbontrack goal add`.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCATEGORY\tPROGRESS\tDEADLINE\tSTATUS\tID")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s (%.0f%%)\t%s\t%s\t%s\n",
			v.Title, v.Category, goalAmounts(v.Current, v.Target, v.Unit), v.Progress,
			v.Deadline, goalStatusLabel(v.Status, v.PastDeadline), v.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return renderGoalCounts(w, counts)
}

// goalAmounts renders "current/target unit". Emissions goals are shown as
// carbon amounts, so a target of "450000 g CO2" reads as "450.0kg CO₂".
func goalAmounts(current, target float64, unit string) string {
	if greenops.IsCarbonUnit(unit) {
		cur, curErr := greenops.NormalizeToKg(current, unit)
		tgt, tgtErr := greenops.NormalizeToKg(target, unit)
		if curErr == nil && tgtErr == nil {
			return greenops.FormatCarbonAmount(cur, true) + "/" + greenops.FormatCarbonAmount(tgt, true)
		}
	}
	return greenops.FormatFloat(current, 1) + "/" + greenops.FormatFloat(target, 1) + " " + unit
}

// goalEquivalency returns the equivalencies of an emissions goal's current
// value, or nil for activity goals and amounts too small to compare.
func goalEquivalency(g footprint.Goal) *greenops.EquivalencyOutput {
	if !greenops.IsCarbonUnit(g.Unit) {
		return nil
	}
	eq, err := greenops.Calculate(greenops.CarbonInput{Value: g.Current, Unit: g.Unit})
	if err != nil || eq.IsEmpty {
		return nil
	}
	return &eq
}

// goalStatusLabel is the stored status, flagged when the deadline has passed.
func goalStatusLabel(status footprint.GoalStatus, pastDeadline bool) string {
	if pastDeadline {
		return string(status) + " (past deadline)"
	}
	return string(status)
}

func renderGoalCounts(w io.Writer, c engine.GoalStatusCounts) error {
	_, err := fmt.Fprintf(w, "\n%d active, %d completed, %d overdue, average progress %.0f%%\n",
		c.Active, c.Completed, c.Overdue, c.AverageProgress)
	if err == nil && c.PastDeadline > 0 {
		_, err = fmt.Fprintf(w, "%d unfinished past their deadline\n", c.PastDeadline)
	}
	return err
}

// NewGoalUpdateCmd creates `goal update`, which changes the given fields.
func NewGoalUpdateCmd() *cobra.Command {
	var params goalParams

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a goal's fields or progress",
		Example: `  # Record progress
  carbontrack goal update 01J9Z... --current 42

  # Mark a goal done
  carbontrack goal update 01J9Z... --status completed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			var updated footprint.Goal
			err := withLedger(ctx, func(p store.Provider) error {
				g, getErr := p.GetGoal(ctx, id)
				if getErr != nil {
					return getErr
				}
				changed, applyErr := params.apply(cmd, &g)
				if applyErr != nil {
					return applyErr
				}
				if !changed {
					return ErrNoGoalChanges
				}
				if validErr := g.Validate(); validErr != nil {
					return validErr
				}
				updated = g
				return p.UpdateGoal(ctx, g)
			})
			audit(ctx, "goal.update", id, changedFlags(cmd), err)
			if err != nil {
				return fmt.Errorf("updating goal: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated goal %q (%.0f%%)\n",
				updated.Title, engine.GoalProgress(updated))
			return err
		},
	}

	params.register(cmd)
	return cmd
}

// changedFlags returns the flags the user set, for the audit log.
func changedFlags(cmd *cobra.Command) map[string]string {
	out := map[string]string{}
	for _, name := range []string{"title", "target", "current", "unit", "deadline", "category", "status"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			out[name] = f.Value.String()
		}
	}
	return out
}

// NewGoalDeleteCmd creates `goal delete`.
func NewGoalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]
			err := withLedger(ctx, func(p store.Provider) error {
				return p.DeleteGoal(ctx, id)
			})
			audit(ctx, "goal.delete", id, nil, err)
			if err != nil {
				return fmt.Errorf("deleting goal: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %s\n", id)
			return err
		},
	}
}

