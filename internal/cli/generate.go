package cli

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/greenops"
	"github.com/rshade/carbontrack/internal/logging"
	"github.com/rshade/carbontrack/internal/store"
)

// ErrReplaceNotConfirmed is returned when --replace was declined.
var ErrReplaceNotConfirmed = errors.New("replace not confirmed (pass --yes to skip the prompt)")

// generateParams holds the flags of `generate`.
type generateParams struct {
	days    int
	seed    int64
	replace bool
	goals   bool
	yes     bool
}

// NewGenerateCmd creates `generate`, which fills the ledger with synthetic
// daily entries for demos and testing.
func NewGenerateCmd() *cobra.Command {
	var params generateParams

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"seed"},
		Short:   "Generate sample entries",
		Long: `Generate one synthetic entry per day for the trailing window, drawn from
the catalogue's sampled activities. The same --seed on the same day yields
the same entries.`,
		Example: `  # 90 days of sample data plus the demo goals
  carbontrack generate --goals

  # Replace the ledger with a reproducible data set
  carbontrack generate --days 30 --seed 42 --replace --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeGenerate(cmd, params)
		},
	}

	cmd.Flags().IntVar(&params.days, "days", footprint.DefaultMockDays, "Number of days to generate")
	cmd.Flags().Int64Var(&params.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&params.replace, "replace", false, "Remove existing entries (and goals with --goals) first")
	cmd.Flags().BoolVar(&params.goals, "goals", false, "Also add the demo goals")
	cmd.Flags().BoolVarP(&params.yes, "yes", "y", false, "Do not ask before replacing")
	return cmd
}

func executeGenerate(cmd *cobra.Command, params generateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	now := nowFunc()
	seed := params.seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	//nolint:gosec // Sample data, not security sensitive.
	entries, err := footprint.GenerateMockEntries(params.days, rand.New(rand.NewSource(seed)), now)
	if err != nil {
		return err
	}

	if params.replace && !params.yes {
		res := Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), "Replace every entry in the ledger?")
		if !res.Accepted {
			return ErrReplaceNotConfirmed
		}
	}
	if !params.replace {
		// Appending: generated ids are positional and would collide with an
		// earlier run.
		for i := range entries {
			entries[i].ID = footprint.NewID()
		}
	}

	var goalsAdded int
	err = withLedger(ctx, func(p store.Provider) error {
		if importErr := p.ImportEntries(ctx, entries, params.replace); importErr != nil {
			return importErr
		}
		if !params.goals {
			return nil
		}
		var goalErr error
		goalsAdded, goalErr = addMockGoals(cmd, p, params.replace)
		return goalErr
	})
	audit(ctx, "ledger.generate", "entries", map[string]string{
		"days":    strconv.Itoa(params.days),
		"seed":    strconv.FormatInt(seed, 10),
		"replace": strconv.FormatBool(params.replace),
	}, err)
	if err != nil {
		return fmt.Errorf("generating sample data: %w", err)
	}

	var total float64
	for _, e := range entries {
		total += e.CarbonFootprint
	}
	log.Info().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "generate").
		Int("entries", len(entries)).
		Int64("seed", seed).
		Msg("sample data generated")

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Generated %d entries (%s total, seed %d)",
		len(entries), greenops.FormatCarbonAmount(total, true), seed)
	if err == nil && params.goals {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), " and %d goals", goalsAdded)
	}
	if err == nil {
		_, err = fmt.Fprintln(cmd.OutOrStdout())
	}
	return err
}

// addMockGoals adds the demo goals. With replace every existing goal is
// deleted first; otherwise goals whose id already exists are skipped.
func addMockGoals(cmd *cobra.Command, p store.Provider, replace bool) (int, error) {
	ctx := cmd.Context()
	existing, err := p.ListGoals(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[string]bool, len(existing))
	for _, g := range existing {
		if replace {
			if err = p.DeleteGoal(ctx, g.ID); err != nil {
				return 0, err
			}
			continue
		}
		have[g.ID] = true
	}

	added := 0
	for _, g := range footprint.MockGoals(nowFunc()) {
		if have[g.ID] {
			continue
		}
		if err = p.AddGoal(ctx, g); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
